package recent

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/example/kudipay/internal/cache"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	mr := miniredis.RunT(t)
	return NewStore(cache.NewStore(redis.NewClient(&redis.Options{Addr: mr.Addr()})))
}

func TestAddNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, "u1", "airtime", "08031234567", "Mum", DefaultCap)
	s.Add(ctx, "u1", "airtime", "08052223344", "", DefaultCap)

	entries := s.List(ctx, "u1", "airtime")
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
	if entries[0].Identifier != "08052223344" {
		t.Errorf("head = %q, want most recent", entries[0].Identifier)
	}
	if entries[1].Label != "Mum" {
		t.Errorf("label = %q, want Mum", entries[1].Label)
	}
}

func TestAddDeduplicatesByIdentifier(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, "u1", "airtime", "08031234567", "", DefaultCap)
	s.Add(ctx, "u1", "airtime", "08052223344", "", DefaultCap)
	s.Add(ctx, "u1", "airtime", "08031234567", "", DefaultCap)

	entries := s.List(ctx, "u1", "airtime")
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2 after dedupe", len(entries))
	}
	if entries[0].Identifier != "08031234567" {
		t.Errorf("head = %q, want re-added identifier moved to head", entries[0].Identifier)
	}
}

func TestAddEvictsOldestAtCap(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		s.Add(ctx, "u1", "airtime", fmt.Sprintf("0803000000%d", i), "", DefaultCap)
	}

	s.Add(ctx, "u1", "airtime", "08051111111", "", DefaultCap)

	entries := s.List(ctx, "u1", "airtime")
	if len(entries) != 10 {
		t.Fatalf("len = %d, want capped at 10", len(entries))
	}
	if entries[0].Identifier != "08051111111" {
		t.Errorf("head = %q, want newest entry", entries[0].Identifier)
	}
	for _, e := range entries {
		if e.Identifier == "08030000000" {
			t.Error("oldest entry survived, want evicted")
		}
	}
}

func TestEducationCapKeepsFive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		s.Add(ctx, "u1", "education", fmt.Sprintf("0803000000%d", i), "", EducationCap)
	}

	if entries := s.List(ctx, "u1", "education"); len(entries) != 5 {
		t.Fatalf("len = %d, want 5", len(entries))
	}
}

func TestListsAreScopedByUserAndProduct(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, "u1", "airtime", "08031234567", "", DefaultCap)

	if entries := s.List(ctx, "u2", "airtime"); len(entries) != 0 {
		t.Errorf("other user sees %d entries, want 0", len(entries))
	}
	if entries := s.List(ctx, "u1", "data"); len(entries) != 0 {
		t.Errorf("other product sees %d entries, want 0", len(entries))
	}
}

func TestClear(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, "u1", "airtime", "08031234567", "", DefaultCap)
	s.Clear(ctx, "u1", "airtime")

	if entries := s.List(ctx, "u1", "airtime"); len(entries) != 0 {
		t.Errorf("len = %d after clear, want 0", len(entries))
	}
}

func TestAddIgnoresEmptyIdentifier(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, "u1", "airtime", "", "label", DefaultCap)

	if entries := s.List(ctx, "u1", "airtime"); len(entries) != 0 {
		t.Errorf("len = %d, want 0", len(entries))
	}
}
