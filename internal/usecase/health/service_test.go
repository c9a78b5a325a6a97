package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockStorePinger struct {
	err error
}

func (m *mockStorePinger) Ping(_ context.Context) error { return m.err }

type mockRecordCounter struct {
	n   int
	err error
}

func (m *mockRecordCounter) Count(_ context.Context) (int, error) { return m.n, m.err }

// --- Tests ---

func TestCheck_Healthy(t *testing.T) {
	svc := New(&mockStorePinger{}, &mockRecordCounter{n: 7})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["store"] != CheckOK {
		t.Errorf("expected store %q, got %q", CheckOK, r.Checks["store"])
	}
	if r.Records != 7 {
		t.Errorf("expected 7 records, got %d", r.Records)
	}
}

func TestCheck_StoreError(t *testing.T) {
	svc := New(&mockStorePinger{err: errors.New("closed")}, &mockRecordCounter{n: 3})
	r := svc.Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
	if r.Checks["store"] != CheckError {
		t.Errorf("expected store %q, got %q", CheckError, r.Checks["store"])
	}
	if r.Records != 0 {
		t.Error("records must not be reported when the store is down")
	}
}

func TestCheck_CounterError(t *testing.T) {
	svc := New(&mockStorePinger{}, &mockRecordCounter{n: 3, err: errors.New("boom")})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Records != 0 {
		t.Errorf("expected 0 records, got %d", r.Records)
	}
}

func TestCheck_NoCounter(t *testing.T) {
	svc := New(&mockStorePinger{}, nil)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
}
