package notify

import (
	"testing"
	"time"
)

func TestToastsExpireIndependently(t *testing.T) {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	c := NewCenter()
	c.now = func() time.Time { return base }

	success := c.Success("created")
	failure := c.Error("boom")

	if c.Len() != 2 {
		t.Fatalf("expected 2 toasts, got %d", c.Len())
	}
	if success.ID == failure.ID {
		t.Error("toasts must have distinct IDs")
	}

	// Success expires at 3s, error at 5s.
	c.Prune(base.Add(SuccessTTL + time.Millisecond))
	active := c.Active()
	if len(active) != 1 {
		t.Fatalf("expected 1 toast after success expiry, got %d", len(active))
	}
	if active[0].ID != failure.ID {
		t.Error("the error toast should have survived")
	}

	c.Prune(base.Add(ErrorTTL + time.Millisecond))
	if c.Len() != 0 {
		t.Errorf("expected no toasts after error expiry, got %d", c.Len())
	}
}

func TestPruneKeepsUnexpired(t *testing.T) {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	c := NewCenter()
	c.now = func() time.Time { return base }

	c.Error("first")
	c.Error("second")

	c.Prune(base.Add(time.Second))
	if c.Len() != 2 {
		t.Errorf("nothing should expire after 1s, got %d toasts", c.Len())
	}
}

func TestActiveReturnsCopy(t *testing.T) {
	c := NewCenter()
	c.Success("hello")

	active := c.Active()
	active[0].Message = "mutated"

	if c.Active()[0].Message != "hello" {
		t.Error("Active must return a copy, not the backing slice")
	}
}

func TestSimultaneousToastsDoNotClobber(t *testing.T) {
	c := NewCenter()
	for i := 0; i < 10; i++ {
		c.Success("s")
		c.Error("e")
	}
	if c.Len() != 20 {
		t.Errorf("expected 20 toasts, got %d", c.Len())
	}
}
