package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapsite/snapsite/pkg/models"
)

func TestClient_List(t *testing.T) {
	t.Run("decodes projects", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodGet, r.Method)
			require.Equal(t, "/api/projects", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"projects": [
				{"id": 1, "name": "Acme", "website_url": "https://acme.test", "screenshot_count": 0, "created_at": "2024-03-01T10:00:00"},
				{"id": 2, "name": "Beta", "website_url": "https://beta.test", "screenshot_count": 3, "created_at": "2024-03-02T11:30:00Z"}
			]}`))
		}))
		defer server.Close()

		client := NewClient(server.URL)
		projects, err := client.List(context.Background())
		require.NoError(t, err)
		require.Len(t, projects, 2)

		assert.Equal(t, 1, projects[0].ID)
		assert.Equal(t, "Acme", projects[0].Name)
		assert.Equal(t, "https://acme.test", projects[0].WebsiteURL)
		assert.Equal(t, 0, projects[0].ScreenshotCount)
		assert.False(t, projects[0].CreatedAt.IsZero())
		assert.Equal(t, 3, projects[1].ScreenshotCount)
	})

	t.Run("empty list is empty, not nil error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"projects": []}`))
		}))
		defer server.Close()

		projects, err := NewClient(server.URL).List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, projects)
	})

	t.Run("non-success status maps to ServiceError with service text", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error": "Failed to retrieve projects"}`))
		}))
		defer server.Close()

		_, err := NewClient(server.URL).List(context.Background())
		var serviceErr *ServiceError
		require.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, http.StatusInternalServerError, serviceErr.Status)
		assert.Equal(t, "Failed to retrieve projects", serviceErr.Message)
	})

	t.Run("unreachable server maps to TransportError", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:1")
		_, err := client.List(context.Background())
		var transportErr *TransportError
		require.ErrorAs(t, err, &transportErr)
	})

	t.Run("undecodable body maps to TransportError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer server.Close()

		_, err := NewClient(server.URL).List(context.Background())
		var transportErr *TransportError
		require.ErrorAs(t, err, &transportErr)
	})
}

func TestClient_Create(t *testing.T) {
	t.Run("posts trimmed fields and decodes the created project", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/api/projects", r.URL.Path)
			require.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "Acme", body["name"])
			assert.Equal(t, "https://acme.test", body["website_url"])

			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"message": "Project created successfully", "project":
				{"id": 7, "name": "Acme", "website_url": "https://acme.test", "screenshot_count": 0, "created_at": "2024-03-01T10:00:00"}}`))
		}))
		defer server.Close()

		project, err := NewClient(server.URL).Create(context.Background(), "  Acme  ", " https://acme.test ")
		require.NoError(t, err)
		assert.Equal(t, 7, project.ID)
		assert.Equal(t, "Acme", project.Name)
		assert.Equal(t, 0, project.ScreenshotCount)
	})

	t.Run("empty fields never reach the network", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
		}))
		defer server.Close()

		client := NewClient(server.URL)

		for _, tc := range []struct{ name, url string }{
			{"", "https://acme.test"},
			{"   ", "https://acme.test"},
			{"Acme", ""},
			{"Acme", "   "},
		} {
			_, err := client.Create(context.Background(), tc.name, tc.url)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr, "name=%q url=%q", tc.name, tc.url)
		}
		assert.Zero(t, calls, "validation failures must not issue requests")
	})

	t.Run("service rejection maps to ServiceError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error": "Name and website_url are required"}`))
		}))
		defer server.Close()

		_, err := NewClient(server.URL).Create(context.Background(), "Acme", "https://acme.test")
		var serviceErr *ServiceError
		require.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, "Name and website_url are required", serviceErr.Message)
	})
}

func TestClient_Generate(t *testing.T) {
	t.Run("posts device names and returns whatever the service produced", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/api/projects/7/screenshots", r.URL.Path)

			var body map[string][]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, []string{"mobile", "desktop"}, body["devices"])

			// Two devices requested, one capture succeeded server-side.
			w.Write([]byte(`{"message": "Generated 1 screenshots", "screenshots": [
				{"id": 10, "project_id": 7, "device_type": "mobile", "device_name": "iPhone 12", "width": 390, "height": 844, "created_at": "2024-03-01T10:05:00"}
			]}`))
		}))
		defer server.Close()

		shots, err := NewClient(server.URL).Generate(context.Background(), 7,
			[]models.Device{models.DeviceMobile, models.DeviceDesktop})
		require.NoError(t, err)
		require.Len(t, shots, 1)
		assert.Equal(t, models.DeviceMobile, shots[0].DeviceType)
		assert.Equal(t, "iPhone 12", shots[0].DeviceName)
		assert.Equal(t, 390, shots[0].Width)
	})

	t.Run("empty device set never reaches the network", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
		}))
		defer server.Close()

		_, err := NewClient(server.URL).Generate(context.Background(), 7, nil)
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Zero(t, calls)
	})

	t.Run("service failure maps to ServiceError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error": "Failed to generate screenshots"}`))
		}))
		defer server.Close()

		_, err := NewClient(server.URL).Generate(context.Background(), 7,
			[]models.Device{models.DeviceMobile})
		var serviceErr *ServiceError
		require.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, "Failed to generate screenshots", serviceErr.Message)
	})
}

func TestClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/projects/7", r.URL.Path)
		w.Write([]byte(`{"project":
			{"id": 7, "name": "Acme", "website_url": "https://acme.test", "screenshot_count": 2, "created_at": "2024-03-01T10:00:00"},
			"screenshots": [
				{"id": 10, "project_id": 7, "device_type": "mobile", "device_name": "iPhone 12", "width": 390, "height": 844, "created_at": "2024-03-01T10:05:00"},
				{"id": 11, "project_id": 7, "device_type": "desktop", "device_name": "Desktop 1920x1080", "width": 1920, "height": 1080, "created_at": "2024-03-01T10:05:30"}
			]}`))
	}))
	defer server.Close()

	project, shots, err := NewClient(server.URL).Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Acme", project.Name)
	require.Len(t, shots, 2)
	assert.Equal(t, models.DeviceDesktop, shots[1].DeviceType)
}

func TestErrorTaxonomy(t *testing.T) {
	t.Run("ServiceError without message falls back to the status", func(t *testing.T) {
		err := &ServiceError{Status: 502}
		assert.Contains(t, err.Error(), "502")
	})

	t.Run("TransportError unwraps its cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := &TransportError{Op: "GET /api/projects", Err: cause}
		assert.ErrorIs(t, err, cause)
	})
}

func TestParseTimestamp(t *testing.T) {
	assert.False(t, parseTimestamp("2024-03-01T10:00:00Z").IsZero())
	assert.False(t, parseTimestamp("2024-03-01T10:00:00.123456").IsZero())
	assert.True(t, parseTimestamp("").IsZero())
	assert.True(t, parseTimestamp("yesterday").IsZero())
}
