package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/snapsite/snapsite/pkg/models"
)

const (
	// DefaultTimeout bounds list/create/detail calls.
	DefaultTimeout = 30 * time.Second
	// GenerateTimeout bounds screenshot generation, which blocks on the
	// service driving a headless browser per device.
	GenerateTimeout = 3 * time.Minute
)

// Client is the HTTP proxy for the remote screenshot service. Every
// operation is a single round-trip; nothing is retried and nothing is
// cached client-side.
type Client struct {
	baseURL        string
	defaultClient  *http.Client
	generateClient *http.Client
	logger         *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the timeout for list/create/detail calls.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.defaultClient.Timeout = d }
}

// WithGenerateTimeout overrides the timeout for generation calls.
func WithGenerateTimeout(d time.Duration) Option {
	return func(c *Client) { c.generateClient.Timeout = d }
}

// WithLogger attaches a logger for per-call diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		defaultClient:  &http.Client{Timeout: DefaultTimeout},
		generateClient: &http.Client{Timeout: GenerateTimeout},
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type projectPayload struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	WebsiteURL      string `json:"website_url"`
	ScreenshotCount int    `json:"screenshot_count"`
	CreatedAt       string `json:"created_at"`
}

type screenshotPayload struct {
	ID         int    `json:"id"`
	ProjectID  int    `json:"project_id"`
	DeviceType string `json:"device_type"`
	DeviceName string `json:"device_name"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	CreatedAt  string `json:"created_at"`
}

type errorPayload struct {
	Error string `json:"error"`
}

// List fetches all projects. The result replaces any previously known
// list wholesale.
func (c *Client) List(ctx context.Context) ([]models.Project, error) {
	var out struct {
		Projects []projectPayload `json:"projects"`
	}
	if err := c.doJSON(ctx, c.defaultClient, http.MethodGet, "/api/projects", nil, &out); err != nil {
		return nil, err
	}
	projects := make([]models.Project, 0, len(out.Projects))
	for _, p := range out.Projects {
		projects = append(projects, p.toModel())
	}
	return projects, nil
}

// Create registers a new project. Name and URL are trimmed; empty values
// are rejected locally and no request is issued.
func (c *Client) Create(ctx context.Context, name, websiteURL string) (*models.Project, error) {
	name = strings.TrimSpace(name)
	websiteURL = strings.TrimSpace(websiteURL)
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if websiteURL == "" {
		return nil, &ValidationError{Field: "website_url", Reason: "must not be empty"}
	}

	body := map[string]string{"name": name, "website_url": websiteURL}
	var out struct {
		Project projectPayload `json:"project"`
	}
	if err := c.doJSON(ctx, c.defaultClient, http.MethodPost, "/api/projects", body, &out); err != nil {
		return nil, err
	}
	project := out.Project.toModel()
	return &project, nil
}

// Generate requests screenshots of the project's website for the given
// devices. The service may legitimately return fewer screenshots than
// devices requested; the caller gets whatever was produced.
func (c *Client) Generate(ctx context.Context, projectID int, devices []models.Device) ([]models.Screenshot, error) {
	if len(devices) == 0 {
		return nil, &ValidationError{Field: "devices", Reason: "select at least one device"}
	}

	names := make([]string, 0, len(devices))
	for _, d := range devices {
		names = append(names, string(d))
	}
	body := map[string][]string{"devices": names}
	var out struct {
		Screenshots []screenshotPayload `json:"screenshots"`
	}
	path := fmt.Sprintf("/api/projects/%d/screenshots", projectID)
	if err := c.doJSON(ctx, c.generateClient, http.MethodPost, path, body, &out); err != nil {
		return nil, err
	}
	shots := make([]models.Screenshot, 0, len(out.Screenshots))
	for _, s := range out.Screenshots {
		shots = append(shots, s.toModel())
	}
	return shots, nil
}

// Get fetches a single project together with its screenshots.
func (c *Client) Get(ctx context.Context, projectID int) (*models.Project, []models.Screenshot, error) {
	var out struct {
		Project     projectPayload      `json:"project"`
		Screenshots []screenshotPayload `json:"screenshots"`
	}
	path := fmt.Sprintf("/api/projects/%d", projectID)
	if err := c.doJSON(ctx, c.defaultClient, http.MethodGet, path, nil, &out); err != nil {
		return nil, nil, err
	}
	project := out.Project.toModel()
	shots := make([]models.Screenshot, 0, len(out.Screenshots))
	for _, s := range out.Screenshots {
		shots = append(shots, s.toModel())
	}
	return &project, shots, nil
}

// doJSON performs one request/response exchange. Non-2xx responses become
// ServiceError with the service's error text when it sent one; everything
// that prevents a decoded response becomes TransportError.
func (c *Client) doJSON(ctx context.Context, client *http.Client, method, path string, body, out any) error {
	requestID := uuid.New().String()
	start := time.Now()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return &TransportError{Op: "encode request", Err: err}
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &TransportError{Op: "create request", Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		c.logger.Error("request failed",
			"request_id", requestID, "method", method, "path", path,
			"duration", time.Since(start), "error", err)
		return &TransportError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Info("request completed",
		"request_id", requestID, "method", method, "path", path,
		"status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var ep errorPayload
		if err := json.NewDecoder(resp.Body).Decode(&ep); err != nil {
			ep.Error = ""
		}
		return &ServiceError{Status: resp.StatusCode, Message: ep.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Op: "decode response", Err: err}
	}
	return nil
}

func (p projectPayload) toModel() models.Project {
	return models.Project{
		ID:              p.ID,
		Name:            p.Name,
		WebsiteURL:      p.WebsiteURL,
		ScreenshotCount: p.ScreenshotCount,
		CreatedAt:       parseTimestamp(p.CreatedAt),
	}
}

func (s screenshotPayload) toModel() models.Screenshot {
	return models.Screenshot{
		ID:         s.ID,
		ProjectID:  s.ProjectID,
		DeviceType: models.Device(s.DeviceType),
		DeviceName: s.DeviceName,
		Width:      s.Width,
		Height:     s.Height,
		CreatedAt:  parseTimestamp(s.CreatedAt),
	}
}

// parseTimestamp accepts the timestamp shapes the service emits: RFC 3339
// with or without a zone. Zoneless values are taken as UTC. Unparseable
// input yields the zero time rather than an error; timestamps are display
// data, not state the client acts on.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02T15:04:05.999999", s); err == nil {
		return t.UTC()
	}
	return time.Time{}
}
