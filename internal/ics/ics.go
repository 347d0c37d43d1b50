// Package ics converts appointments to and from iCalendar payloads so the
// agenda can be fed to (or filled from) other calendar apps. Recurrence
// rules are not interpreted: every VEVENT is a single appointment.
package ics

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/erosk616101/agenda/internal/logger"
	"github.com/erosk616101/agenda/internal/model"
)

const prodID = "-//agenda//calendar//EN"

// Export serializes appointments into a single VCALENDAR.
func Export(appointments []model.Appointment) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(prodID)

	now := time.Now()
	for _, a := range appointments {
		ev := cal.AddEvent(a.ID)
		ev.SetDtStampTime(now)
		ev.SetStartAt(a.Start)
		ev.SetEndAt(a.End)
		ev.SetSummary(a.Title)
		if a.Description != "" {
			ev.SetDescription(a.Description)
		}
		if a.Location != "" {
			ev.SetLocation(a.Location)
		}
	}

	return cal.Serialize()
}

// Import parses a VCALENDAR payload into appointments. Malformed VEVENTs
// are logged and skipped; the rest of the payload still imports. Events
// without a UID get one assigned by the store on Add.
func Import(body []byte) ([]model.Appointment, error) {
	if len(body) == 0 {
		return nil, errors.New("empty ICS body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse calendar: %w", err)
	}

	var out []model.Appointment
	skipped := 0
	for _, ve := range cal.Events() {
		a, err := fromVEvent(ve)
		if err != nil {
			logger.Warn("Skipping malformed VEVENT", logger.F("error", err))
			skipped++
			continue
		}
		out = append(out, a)
	}
	if skipped > 0 {
		logger.Info("ICS import finished with skips",
			logger.F("imported", len(out)), logger.F("skipped", skipped))
	}

	return out, nil
}

func fromVEvent(ve *ical.VEvent) (model.Appointment, error) {
	var a model.Appointment

	if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
		a.ID = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		a.Title = p.Value
	}
	if a.Title == "" {
		return a, errors.New("missing SUMMARY")
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		a.Description = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		a.Location = p.Value
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return a, fmt.Errorf("bad DTSTART: %w", err)
	}
	end, err := ve.GetEndAt()
	if err != nil {
		return a, fmt.Errorf("bad DTEND: %w", err)
	}

	a.Start = start.In(time.Local)
	a.End = end.In(time.Local)
	a.Color = model.DefaultColor
	return a, nil
}
