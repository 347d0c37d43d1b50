package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/erosk616101/agenda/internal/model"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "agenda.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func appt(title string, day time.Time, startHour, startMin, endHour, endMin int) model.Appointment {
	start := time.Date(day.Year(), day.Month(), day.Day(), startHour, startMin, 0, 0, time.UTC)
	end := time.Date(day.Year(), day.Month(), day.Day(), endHour, endMin, 0, 0, time.UTC)
	return model.NewAppointment(title, start, end)
}

var tuesday = time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

func TestAddAssignsUniqueIDs(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	a, err := s.Add(ctx, appt("Standup", tuesday, 9, 0, 9, 30))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	b, err := s.Add(ctx, appt("Review", tuesday, 10, 0, 11, 0))
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if a.ID == "" || b.ID == "" {
		t.Fatalf("expected non-empty ids, got %q and %q", a.ID, b.ID)
	}
	if a.ID == b.ID {
		t.Fatalf("two adds produced the same id %q", a.ID)
	}
	if len(s.List()) != 2 {
		t.Fatalf("expected 2 appointments, got %d", len(s.List()))
	}
}

func TestAddKeepsExplicitID(t *testing.T) {
	s := openTemp(t)

	in := appt("Standup", tuesday, 9, 0, 9, 30)
	in.ID = "fixed-id"
	out, err := s.Add(context.Background(), in)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if out.ID != "fixed-id" {
		t.Fatalf("explicit id replaced with %q", out.ID)
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agenda.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	added, err := s.Add(context.Background(), appt("Standup", tuesday, 9, 0, 9, 30))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	got := s2.List()
	if len(got) != 1 {
		t.Fatalf("expected 1 appointment after reopen, got %d", len(got))
	}
	if got[0].ID != added.ID || got[0].Title != "Standup" {
		t.Fatalf("reloaded appointment mismatch: %+v", got[0])
	}
	if !got[0].Start.Equal(added.Start) || !got[0].End.Equal(added.End) {
		t.Fatalf("reloaded times mismatch: %v-%v", got[0].Start, got[0].End)
	}
}

func TestMalformedRowsAreSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agenda.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := s.Add(context.Background(), appt("Good", tuesday, 9, 0, 10, 0)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.db.Exec(`
		INSERT INTO appointments (id, title, start_at, end_at, created_at, updated_at)
		VALUES ('bad', 'Corrupt', 'not-a-time', 'also-not', '', '')`); err != nil {
		t.Fatalf("inject corrupt row: %v", err)
	}
	s.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen with corrupt row: %v", err)
	}
	defer s2.Close()

	got := s2.List()
	if len(got) != 1 || got[0].Title != "Good" {
		t.Fatalf("expected only the good row, got %+v", got)
	}
}

func TestUpdateUnknownIDIsNoOp(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	if _, err := s.Add(ctx, appt("Standup", tuesday, 9, 0, 9, 30)); err != nil {
		t.Fatalf("add: %v", err)
	}

	ghost := appt("Ghost", tuesday, 12, 0, 13, 0)
	ghost.ID = "does-not-exist"
	if err := s.Update(ctx, ghost); err != nil {
		t.Fatalf("update of unknown id should not error: %v", err)
	}

	got := s.List()
	if len(got) != 1 || got[0].Title != "Standup" {
		t.Fatalf("collection changed by no-op update: %+v", got)
	}
}

func TestUpdateReplacesByID(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	a, _ := s.Add(ctx, appt("Standup", tuesday, 9, 0, 9, 30))
	a.Title = "Daily standup"
	a.Start = a.Start.Add(30 * time.Minute)
	a.End = a.End.Add(30 * time.Minute)
	if err := s.Update(ctx, a); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, ok := s.Get(a.ID)
	if !ok {
		t.Fatalf("appointment vanished after update")
	}
	if got.Title != "Daily standup" || got.Start.Hour() != 9 || got.Start.Minute() != 30 {
		t.Fatalf("update not applied: %+v", got)
	}
}

func TestRemove(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	a, _ := s.Add(ctx, appt("Standup", tuesday, 9, 0, 9, 30))

	// Unknown id: silent no-op.
	if err := s.Remove(ctx, "nope"); err != nil {
		t.Fatalf("remove unknown id: %v", err)
	}
	if len(s.List()) != 1 {
		t.Fatalf("no-op remove changed collection")
	}

	if err := s.Remove(ctx, a.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(s.List()) != 0 {
		t.Fatalf("appointment still present after remove")
	}
}

func TestOverlaps(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	a, _ := s.Add(ctx, appt("A", tuesday, 10, 0, 11, 0))

	// Touching boundaries do not overlap.
	b := appt("B", tuesday, 11, 0, 12, 0)
	if s.Overlaps(b) {
		t.Fatalf("[11:00,12:00) should not overlap [10:00,11:00)")
	}

	// Containment does.
	c := appt("C", tuesday, 10, 30, 10, 45)
	if !s.Overlaps(c) {
		t.Fatalf("[10:30,10:45) should overlap [10:00,11:00)")
	}

	// An appointment is never compared against itself.
	if s.Overlaps(a) {
		t.Fatalf("appointment overlaps itself")
	}
}

func TestSubscribeDeliversSnapshotThenChanges(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	if _, err := s.Add(ctx, appt("Existing", tuesday, 8, 0, 9, 0)); err != nil {
		t.Fatalf("add: %v", err)
	}

	ch, cancel := s.Subscribe()
	defer cancel()

	// Late subscribers see the current snapshot immediately.
	first := <-ch
	if len(first) != 1 || first[0].Title != "Existing" {
		t.Fatalf("initial snapshot = %+v", first)
	}

	if _, err := s.Add(ctx, appt("New", tuesday, 9, 0, 10, 0)); err != nil {
		t.Fatalf("add: %v", err)
	}

	select {
	case snap := <-ch:
		if len(snap) != 2 {
			t.Fatalf("post-mutation snapshot has %d entries, want 2", len(snap))
		}
	case <-time.After(time.Second):
		t.Fatalf("no snapshot delivered after mutation")
	}
}

func TestForDaySortedByStart(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	s.Add(ctx, appt("Later", tuesday, 14, 0, 15, 0))
	s.Add(ctx, appt("Earlier", tuesday, 9, 0, 10, 0))
	s.Add(ctx, appt("OtherDay", tuesday.AddDate(0, 0, 1), 9, 0, 10, 0))

	got := s.ForDay(tuesday)
	if len(got) != 2 {
		t.Fatalf("ForDay returned %d appointments, want 2", len(got))
	}
	if got[0].Title != "Earlier" || got[1].Title != "Later" {
		t.Fatalf("ForDay not sorted: %s, %s", got[0].Title, got[1].Title)
	}
}

func TestUpdateKeepsMemoryOnPersistFailure(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	added, err := s.Add(ctx, appt("Standup", tuesday, 9, 0, 9, 30))
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	// Kill the database so the write-through fails.
	if err := s.db.Close(); err != nil {
		t.Fatalf("close db: %v", err)
	}

	moved := added
	moved.Title = "Moved"
	moved.Start = moved.Start.Add(2 * time.Hour)
	moved.End = moved.End.Add(2 * time.Hour)

	if err := s.Update(ctx, moved); err == nil {
		t.Fatal("expected update to fail with a closed database")
	}

	got := s.List()
	if len(got) != 1 {
		t.Fatalf("List returned %d appointments, want 1", len(got))
	}
	if got[0].Title != "Standup" || !got[0].Start.Equal(added.Start) {
		t.Fatalf("memory diverged from disk after failed update: %+v", got[0])
	}
}

func TestRemoveKeepsMemoryOnPersistFailure(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	added, err := s.Add(ctx, appt("Standup", tuesday, 9, 0, 9, 30))
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := s.db.Close(); err != nil {
		t.Fatalf("close db: %v", err)
	}

	if err := s.Remove(ctx, added.ID); err == nil {
		t.Fatal("expected remove to fail with a closed database")
	}

	if got := s.List(); len(got) != 1 {
		t.Fatalf("appointment vanished from memory after failed delete: %d entries", len(got))
	}
}
