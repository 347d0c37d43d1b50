package server

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/robfig/cron/v3"

	"github.com/erosk616101/agenda/internal/logger"
)

// setupBackup schedules a periodic JSON snapshot of the calendar.
// Disabled when no schedule is configured.
func (s *Server) setupBackup() error {
	if s.cfg.BackupCron == "" {
		return nil
	}

	c := cron.New()
	_, err := c.AddFunc(s.cfg.BackupCron, func() {
		if err := s.writeBackup(); err != nil {
			logger.Error("Backup failed", logger.F("error", err))
			return
		}
		logger.Info("Backup written", logger.F("path", s.cfg.BackupPath))
	})
	if err != nil {
		return fmt.Errorf("invalid backup schedule %q: %w", s.cfg.BackupCron, err)
	}

	c.Start()
	s.cron = c
	logger.Info("Backup scheduled",
		logger.F("cron", s.cfg.BackupCron),
		logger.F("path", s.cfg.BackupPath))
	return nil
}

func (s *Server) writeBackup() error {
	appts := s.store.List()

	data, err := json.MarshalIndent(appts, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.cfg.BackupPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	tmp := s.cfg.BackupPath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.cfg.BackupPath)
}
