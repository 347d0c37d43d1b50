// Package store owns the appointment collection. All reads are served from
// memory; every mutation is written through to SQLite before subscribers
// are notified. Views get copies, never the store's own slices.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/erosk616101/agenda/internal/logger"
	"github.com/erosk616101/agenda/internal/model"
)

// Store is the appointment collection, backed by a SQLite database.
type Store struct {
	mu           sync.RWMutex
	db           *sql.DB
	appointments []model.Appointment

	subMu   sync.Mutex
	subs    map[int]chan []model.Appointment
	nextSub int
}

// DefaultPath returns the default database path (~/.agenda/agenda.db)
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".agenda", "agenda.db"), nil
}

// Open opens or creates the store at the given database path and loads the
// persisted collection. A load failure is not fatal: the store starts empty
// and logs what happened.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Store{
		db:   db,
		subs: make(map[int]chan []model.Appointment),
	}

	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := s.loadAll(); err != nil {
		logger.Warn("Could not load persisted appointments, starting empty",
			logger.F("error", err))
		s.appointments = nil
	}

	return s, nil
}

// OpenDefault opens the store at the default path.
func OpenDefault() (*Store, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return Open(path)
}

// Close closes the underlying database and all subscriber channels.
func (s *Store) Close() error {
	s.subMu.Lock()
	for id, ch := range s.subs {
		close(ch)
		delete(s.subs, id)
	}
	s.subMu.Unlock()
	return s.db.Close()
}

func (s *Store) loadAll() error {
	rows, err := s.db.Query(`
		SELECT id, title, start_at, end_at, description, color, location
		FROM appointments ORDER BY start_at`)
	if err != nil {
		return err
	}
	defer rows.Close()

	var loaded []model.Appointment
	skipped := 0
	for rows.Next() {
		var a model.Appointment
		var start, end string
		if err := rows.Scan(&a.ID, &a.Title, &start, &end,
			&a.Description, &a.Color, &a.Location); err != nil {
			skipped++
			continue
		}
		if a.Start, err = time.Parse(time.RFC3339, start); err != nil {
			skipped++
			continue
		}
		if a.End, err = time.Parse(time.RFC3339, end); err != nil {
			skipped++
			continue
		}
		loaded = append(loaded, a)
	}
	if skipped > 0 {
		// Malformed rows degrade to absence, never to a failed startup.
		logger.Warn("Skipped malformed appointment rows", logger.F("count", skipped))
	}

	s.appointments = loaded
	return rows.Err()
}

// List returns a snapshot of the current collection.
func (s *Store) List() []model.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() []model.Appointment {
	out := make([]model.Appointment, len(s.appointments))
	copy(out, s.appointments)
	return out
}

// Subscribe registers a listener for collection changes. The current
// snapshot is delivered immediately, then a fresh snapshot after every
// mutation; a slow listener only ever misses intermediate states, never the
// latest one. The returned cancel func must be called on teardown.
func (s *Store) Subscribe() (<-chan []model.Appointment, func()) {
	ch := make(chan []model.Appointment, 4)

	s.mu.RLock()
	ch <- s.snapshotLocked()
	s.mu.RUnlock()

	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.subMu.Unlock()

	cancel := func() {
		s.subMu.Lock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
		s.subMu.Unlock()
	}
	return ch, cancel
}

func (s *Store) notify() {
	s.mu.RLock()
	snap := s.snapshotLocked()
	s.mu.RUnlock()

	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		for {
			select {
			case ch <- snap:
			default:
				// Full: drop the stalest snapshot and retry.
				select {
				case <-ch:
				default:
				}
				continue
			}
			break
		}
	}
}

// Add stores a new appointment, assigning an id when absent, and returns
// the stored copy.
func (s *Store) Add(ctx context.Context, a model.Appointment) (model.Appointment, error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.Color == "" {
		a.Color = model.DefaultColor
	}

	now := time.Now().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO appointments (id, title, start_at, end_at, description, color, location, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Title,
		a.Start.Format(time.RFC3339), a.End.Format(time.RFC3339),
		a.Description, a.Color, a.Location, now, now)
	if err != nil {
		return model.Appointment{}, fmt.Errorf("failed to insert appointment: %w", err)
	}

	s.mu.Lock()
	s.appointments = append(s.appointments, a)
	s.mu.Unlock()

	s.notify()
	logger.Debug("Appointment added", logger.F("id", a.ID), logger.F("title", a.Title))
	return a, nil
}

// Update replaces the appointment with a matching id. An unknown id is a
// silent no-op; the caller cannot tell and is not meant to.
func (s *Store) Update(ctx context.Context, a model.Appointment) error {
	if a.ID == "" {
		return nil
	}

	if _, ok := s.Get(a.ID); !ok {
		logger.Debug("Update for unknown appointment ignored", logger.F("id", a.ID))
		return nil
	}

	// Persist first: a failed write must leave memory (and subscribers)
	// on the last durable state.
	_, err := s.db.ExecContext(ctx, `
		UPDATE appointments
		SET title = ?, start_at = ?, end_at = ?, description = ?, color = ?, location = ?, updated_at = ?
		WHERE id = ?`,
		a.Title,
		a.Start.Format(time.RFC3339), a.End.Format(time.RFC3339),
		a.Description, a.Color, a.Location,
		time.Now().Format(time.RFC3339), a.ID)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}

	s.mu.Lock()
	for i := range s.appointments {
		if s.appointments[i].ID == a.ID {
			s.appointments[i] = a
			break
		}
	}
	s.mu.Unlock()

	s.notify()
	return nil
}

// Remove deletes the appointment with the given id, silently ignoring ids
// that are absent.
func (s *Store) Remove(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}

	if _, ok := s.Get(id); !ok {
		return nil
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	s.mu.Lock()
	kept := s.appointments[:0]
	for _, a := range s.appointments {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	s.appointments = kept
	s.mu.Unlock()

	s.notify()
	logger.Debug("Appointment removed", logger.F("id", id))
	return nil
}

// Get returns the appointment with the given id, if present.
func (s *Store) Get(id string) (model.Appointment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.appointments {
		if a.ID == id {
			return a, true
		}
	}
	return model.Appointment{}, false
}

// Overlaps reports whether any other appointment overlaps the candidate,
// using half-open intervals: back-to-back appointments do not overlap. An
// appointment never overlaps itself. Informational only; double-booking is
// allowed.
func (s *Store) Overlaps(candidate model.Appointment) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.appointments {
		other := &s.appointments[i]
		if other.ID == candidate.ID {
			continue
		}
		if candidate.OverlapsWith(other) {
			return true
		}
	}
	return false
}

// ForDay returns appointments starting on the given calendar date, ordered
// by start time.
func (s *Store) ForDay(day time.Time) []model.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Appointment
	for _, a := range s.appointments {
		if a.Start.Year() == day.Year() && a.Start.Month() == day.Month() && a.Start.Day() == day.Day() {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}
