package session

import (
	"testing"

	"github.com/google/uuid"

	"github.com/deepwater-eng/buhlmann"
	"github.com/deepwater-eng/buhlmann/pkg/gas"
)

func TestCreateAndGet(t *testing.T) {
	m := NewManager()
	s, err := m.Create(buhlmann.DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := m.Get(s.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != s {
		t.Errorf("expected Get to return the same session pointer")
	}
}

func TestGetMissingReturnsErrNotFound(t *testing.T) {
	m := NewManager()
	if _, err := m.Get(uuid.New()); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteRemovesSession(t *testing.T) {
	m := NewManager()
	s, _ := m.Create(buhlmann.DefaultConfig())
	m.Delete(s.ID)
	if _, err := m.Get(s.ID); err != ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestSnapshotIsIndependentCopy(t *testing.T) {
	m := NewManager()
	s, _ := m.Create(buhlmann.DefaultConfig())
	snap := s.Snapshot()
	if snap.Depth() != 0 {
		t.Errorf("expected fresh snapshot at depth 0")
	}
	if err := s.WithLock(func(model *buhlmann.Model) error {
		return model.Record(30, 0, gas.Air())
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Depth() != 0 {
		t.Errorf("expected snapshot to stay at depth 0 after the session model moved, got %v", snap.Depth())
	}
}

func TestWithLockMutatesUnderlyingModel(t *testing.T) {
	m := NewManager()
	s, _ := m.Create(buhlmann.DefaultConfig())
	err := s.WithLock(func(model *buhlmann.Model) error {
		return model.Record(30, 0, gas.Air())
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Snapshot().Depth() != 30 {
		t.Errorf("expected the session's model to reflect the recorded depth")
	}
}
