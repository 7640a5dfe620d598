package session

import (
	"errors"
	"testing"

	"github.com/snapsite/snapsite/pkg/models"
)

func TestNewSessionIsIdle(t *testing.T) {
	s := New()

	if s.State() != StateIdle {
		t.Errorf("new session should be idle, got %v", s.State())
	}
	if _, ok := s.TargetID(); ok {
		t.Error("new session should have no target")
	}
}

func TestTargetRecordsProject(t *testing.T) {
	s := New()

	if !s.Target(42) {
		t.Fatal("targeting from idle should succeed")
	}
	if s.State() != StateTargeted {
		t.Errorf("state should be targeted, got %v", s.State())
	}
	id, ok := s.TargetID()
	if !ok || id != 42 {
		t.Errorf("target should be 42, got %d (ok=%v)", id, ok)
	}
}

func TestConfirmWithoutDevicesStaysTargeted(t *testing.T) {
	s := New()
	s.Target(42)

	_, _, err := s.Confirm()
	if !errors.Is(err, ErrNoDevices) {
		t.Fatalf("expected ErrNoDevices, got %v", err)
	}
	if s.State() != StateTargeted {
		t.Error("rejected confirm must leave the session targeted")
	}
	if id, ok := s.TargetID(); !ok || id != 42 {
		t.Error("rejected confirm must keep the target")
	}
}

func TestConfirmSubmitsSelectedDevices(t *testing.T) {
	s := New()
	s.Target(42)
	s.Toggle(models.DeviceMobile)
	s.Toggle(models.DeviceDesktop)

	id, devices, err := s.Confirm()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 42 {
		t.Errorf("expected project 42, got %d", id)
	}
	if len(devices) != 2 || devices[0] != models.DeviceMobile || devices[1] != models.DeviceDesktop {
		t.Errorf("expected [mobile desktop], got %v", devices)
	}
	if s.State() != StateSubmitting {
		t.Errorf("state should be submitting, got %v", s.State())
	}
}

func TestToggleFlipsSelection(t *testing.T) {
	s := New()
	s.Target(1)

	s.Toggle(models.DeviceTablet)
	if !s.Selected(models.DeviceTablet) {
		t.Error("tablet should be selected after one toggle")
	}
	s.Toggle(models.DeviceTablet)
	if s.Selected(models.DeviceTablet) {
		t.Error("tablet should be deselected after two toggles")
	}
}

func TestResolveAlwaysReturnsToIdle(t *testing.T) {
	s := New()
	s.Target(42)
	s.Toggle(models.DeviceMobile)
	if _, _, err := s.Confirm(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.Resolve()
	if s.State() != StateIdle {
		t.Errorf("resolve must return to idle, got %v", s.State())
	}
	if _, ok := s.TargetID(); ok {
		t.Error("resolve must clear the target")
	}
	if len(s.Devices()) != 0 {
		t.Error("resolve must clear the selection")
	}
}

func TestSecondSubmissionRequiresRetargeting(t *testing.T) {
	s := New()
	s.Target(42)
	s.Toggle(models.DeviceMobile)
	if _, _, err := s.Confirm(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Resolve()

	if _, _, err := s.Confirm(); !errors.Is(err, ErrNoTarget) {
		t.Errorf("confirm after resolve must fail with ErrNoTarget, got %v", err)
	}
}

func TestTargetIgnoredWhileSubmitting(t *testing.T) {
	s := New()
	s.Target(42)
	s.Toggle(models.DeviceMobile)
	if _, _, err := s.Confirm(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Target(99) {
		t.Error("target must be rejected while submitting")
	}
	if id, _ := s.TargetID(); id != 42 {
		t.Errorf("in-flight target must be preserved, got %d", id)
	}

	if _, _, err := s.Confirm(); err == nil {
		t.Error("confirm while submitting must be rejected")
	}
}

func TestCancelAbandonsTarget(t *testing.T) {
	s := New()
	s.Target(42)
	s.Toggle(models.DeviceMobile)

	s.Cancel()
	if s.State() != StateIdle {
		t.Errorf("cancel should return to idle, got %v", s.State())
	}
}

func TestCancelIgnoredWhileSubmitting(t *testing.T) {
	s := New()
	s.Target(42)
	s.Toggle(models.DeviceMobile)
	if _, _, err := s.Confirm(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.Cancel()
	if s.State() != StateSubmitting {
		t.Error("submitting sessions cannot be cancelled")
	}
}

func TestRetargetingResetsSelection(t *testing.T) {
	s := New()
	s.Target(1)
	s.Toggle(models.DeviceMobile)
	s.Target(2)

	if len(s.Devices()) != 0 {
		t.Error("retargeting must start with an empty selection")
	}
}
