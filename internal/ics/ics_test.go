package ics

import (
	"strings"
	"testing"
	"time"

	"github.com/erosk616101/agenda/internal/model"
)

func TestExportContainsEventFields(t *testing.T) {
	a := model.Appointment{
		ID:       "abc-123",
		Title:    "Standup",
		Start:    time.Date(2026, time.September, 1, 9, 0, 0, 0, time.UTC),
		End:      time.Date(2026, time.September, 1, 9, 30, 0, 0, time.UTC),
		Location: "Room 4",
	}

	out := Export([]model.Appointment{a})

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"BEGIN:VEVENT",
		"UID:abc-123",
		"SUMMARY:Standup",
		"LOCATION:Room 4",
		"DTSTART:20260901T090000Z",
		"DTEND:20260901T093000Z",
		"END:VEVENT",
		"END:VCALENDAR",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("export missing %q:\n%s", want, out)
		}
	}
}

func TestImportRoundTrip(t *testing.T) {
	orig := []model.Appointment{
		{
			ID:    "one",
			Title: "Standup",
			Start: time.Date(2026, time.September, 1, 9, 0, 0, 0, time.UTC),
			End:   time.Date(2026, time.September, 1, 9, 30, 0, 0, time.UTC),
		},
		{
			ID:       "two",
			Title:    "Review",
			Start:    time.Date(2026, time.September, 2, 14, 0, 0, 0, time.UTC),
			End:      time.Date(2026, time.September, 2, 15, 0, 0, 0, time.UTC),
			Location: "Room 4",
		},
	}

	got, err := Import([]byte(Export(orig)))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("imported %d appointments, want 2", len(got))
	}

	byID := map[string]model.Appointment{}
	for _, a := range got {
		byID[a.ID] = a
	}
	for _, want := range orig {
		a, ok := byID[want.ID]
		if !ok {
			t.Fatalf("missing appointment %q", want.ID)
		}
		if a.Title != want.Title || a.Location != want.Location {
			t.Fatalf("appointment %q mismatch: %+v", want.ID, a)
		}
		if !a.Start.Equal(want.Start) || !a.End.Equal(want.End) {
			t.Fatalf("appointment %q times drifted: %v-%v", want.ID, a.Start, a.End)
		}
	}
}

func TestImportEmptyBody(t *testing.T) {
	if _, err := Import(nil); err == nil {
		t.Fatalf("expected error on empty body")
	}
}

func TestImportSkipsEventsWithoutSummary(t *testing.T) {
	payload := "BEGIN:VCALENDAR\r\n" +
		"VERSION:2.0\r\n" +
		"PRODID:-//test//EN\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:no-summary\r\n" +
		"DTSTART:20260901T090000Z\r\n" +
		"DTEND:20260901T100000Z\r\n" +
		"END:VEVENT\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:ok\r\n" +
		"SUMMARY:Keep me\r\n" +
		"DTSTART:20260901T110000Z\r\n" +
		"DTEND:20260901T120000Z\r\n" +
		"END:VEVENT\r\n" +
		"END:VCALENDAR\r\n"

	got, err := Import([]byte(payload))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Keep me" {
		t.Fatalf("expected only the event with a summary, got %+v", got)
	}
}
