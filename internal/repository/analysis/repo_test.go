package analysis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/stranalyzer/internal/domain"
	domanalysis "github.com/kailas-cloud/stranalyzer/internal/domain/analysis"
)

func testEntry(t *testing.T, input string) domanalysis.Entry {
	t.Helper()
	r, err := domanalysis.Analyze(input)
	if err != nil {
		t.Fatalf("Analyze(%q): %v", input, err)
	}
	return domanalysis.NewEntry(r, time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC))
}

func listInputs(t *testing.T, repo *Repo) []string {
	t.Helper()
	entries, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Input()
	}
	return out
}

func TestInsert_AndGet(t *testing.T) {
	repo := New()
	ctx := context.Background()

	if err := repo.Insert(ctx, testEntry(t, "madam")); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	e, err := repo.Get(ctx, "madam")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if e.Record().Length() != 5 {
		t.Errorf("length = %d, want 5", e.Record().Length())
	}

	ok, _ := repo.Exists(ctx, "madam")
	if !ok {
		t.Error("expected madam to exist")
	}
}

func TestInsert_Duplicate(t *testing.T) {
	repo := New()
	ctx := context.Background()

	_ = repo.Insert(ctx, testEntry(t, "madam"))
	err := repo.Insert(ctx, testEntry(t, "madam"))
	if !errors.Is(err, domain.ErrDuplicateInput) {
		t.Fatalf("expected ErrDuplicateInput, got %v", err)
	}
	if n, _ := repo.Count(ctx); n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}

func TestInsert_KeyIsExactInput(t *testing.T) {
	repo := New()
	ctx := context.Background()

	for _, in := range []string{"madam", "Madam", " madam"} {
		if err := repo.Insert(ctx, testEntry(t, in)); err != nil {
			t.Fatalf("Insert(%q): %v", in, err)
		}
	}
	if n, _ := repo.Count(ctx); n != 3 {
		t.Errorf("count = %d, want 3", n)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo := New()
	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete_KeepsOrderAndIndex(t *testing.T) {
	repo := New()
	ctx := context.Background()
	for _, in := range []string{"a", "b", "c", "d"} {
		_ = repo.Insert(ctx, testEntry(t, in))
	}

	if err := repo.Delete(ctx, "b"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	got := listInputs(t, repo)
	want := []string{"a", "c", "d"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("list = %v, want %v", got, want)
	}

	e, err := repo.Get(ctx, "d")
	if err != nil || e.Input() != "d" {
		t.Errorf("Get(d) after delete = %v, %v", e.Input(), err)
	}

	if _, err := repo.Get(ctx, "b"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for deleted key, got %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo := New()
	if err := repo.Delete(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete_ThenReinsertGoesLast(t *testing.T) {
	repo := New()
	ctx := context.Background()
	for _, in := range []string{"a", "b"} {
		_ = repo.Insert(ctx, testEntry(t, in))
	}
	_ = repo.Delete(ctx, "a")
	_ = repo.Insert(ctx, testEntry(t, "a"))

	if got := fmt.Sprint(listInputs(t, repo)); got != "[b a]" {
		t.Errorf("list = %s, want [b a]", got)
	}
}

func TestList_ReturnsSnapshot(t *testing.T) {
	repo := New()
	ctx := context.Background()
	_ = repo.Insert(ctx, testEntry(t, "a"))

	snap, _ := repo.List(ctx)
	_ = repo.Insert(ctx, testEntry(t, "b"))

	if len(snap) != 1 {
		t.Errorf("snapshot len = %d, want 1", len(snap))
	}
}

func TestConcurrentInsertSameInput(t *testing.T) {
	repo := New()
	ctx := context.Background()
	e := testEntry(t, "race")

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		okCount  int
		dupCount int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.Insert(ctx, e)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				okCount++
			case errors.Is(err, domain.ErrDuplicateInput):
				dupCount++
			}
		}()
	}
	wg.Wait()

	if okCount != 1 || dupCount != 49 {
		t.Errorf("ok = %d, dup = %d; want 1 and 49", okCount, dupCount)
	}
}

func TestSizeGauge(t *testing.T) {
	g := prometheus.NewGauge(prometheus.GaugeOpts{Name: "test_records"})
	repo := New().WithSizeGauge(g)
	ctx := context.Background()

	_ = repo.Insert(ctx, testEntry(t, "a"))
	_ = repo.Insert(ctx, testEntry(t, "b"))
	if v := testutil.ToFloat64(g); v != 2 {
		t.Errorf("gauge = %v, want 2", v)
	}

	_ = repo.Delete(ctx, "a")
	if v := testutil.ToFloat64(g); v != 1 {
		t.Errorf("gauge = %v, want 1", v)
	}
}

func TestPing(t *testing.T) {
	repo := New()
	if err := repo.Ping(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := repo.Ping(ctx); err == nil {
		t.Error("expected error for canceled context")
	}
}
