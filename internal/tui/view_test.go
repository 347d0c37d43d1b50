package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/erosk616101/agenda/internal/config"
	"github.com/erosk616101/agenda/internal/model"
	"github.com/erosk616101/agenda/internal/store"
)

func TestTruncateKeepsRunesIntact(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"Standup", 10, "Standup"},
		{"A long appointment title", 10, "A long ..."},
		{"Café standup", 6, "Caf..."},
		{"日本語のタイトル", 5, "日本..."},
		{"Réunion", 3, "Réu"},
		{"anything", 0, ""},
	}
	for _, c := range cases {
		got := truncate(c.in, c.max)
		if got != c.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", c.in, c.max, got, c.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("truncate(%q, %d) produced invalid UTF-8: %q", c.in, c.max, got)
		}
	}
}

func newTestModel(t *testing.T) (Model, *store.Store) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	st, err := store.Open(filepath.Join(t.TempDir(), "agenda.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	return NewModel(st, config.DefaultConfig()), st
}

func TestConfirmModalDropsWhenTargetRemoved(t *testing.T) {
	m, st := newTestModel(t)
	ctx := context.Background()

	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.Local)
	a, err := st.Add(ctx, model.Appointment{Title: "Standup", Start: start, End: start.Add(time.Hour)})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	m.confirmID = a.ID
	m.mode = ModeConfirmDelete

	// The snapshot that still contains the target keeps the modal open.
	next, _ := m.Update(storeMsg(st.List()))
	m = next.(Model)
	if m.mode != ModeConfirmDelete {
		t.Fatalf("modal closed while its target still exists")
	}

	if err := st.Remove(ctx, a.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	next, _ = m.Update(storeMsg(st.List()))
	m = next.(Model)
	if m.mode != ModeNormal {
		t.Fatalf("modal still open after its target was removed, mode = %d", m.mode)
	}
	if m.confirmID != "" {
		t.Fatalf("stale confirm target kept: %q", m.confirmID)
	}
}

func TestRenderConfirmWithMissingTarget(t *testing.T) {
	m, _ := newTestModel(t)
	m.width, m.height = 80, 24
	m.confirmID = "gone"

	out := m.renderConfirm()
	if !strings.Contains(out, "no longer exists") {
		t.Fatalf("expected a missing-target notice, got %q", out)
	}
}
