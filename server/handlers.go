package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/erosk616101/agenda/internal/ics"
	"github.com/erosk616101/agenda/internal/logger"
	"github.com/erosk616101/agenda/internal/model"
)

func (s *Server) handleList(c echo.Context) error {
	day := c.QueryParam("day")
	if day == "" {
		return c.JSON(http.StatusOK, s.store.List())
	}

	d, err := parseDay(day)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid day, want YYYY-MM-DD"})
	}
	return c.JSON(http.StatusOK, s.store.ForDay(d))
}

func (s *Server) handleGet(c echo.Context) error {
	a, ok := s.store.Get(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "appointment not found"})
	}
	return c.JSON(http.StatusOK, a)
}

func (s *Server) handleCreate(c echo.Context) error {
	var a model.Appointment
	if err := c.Bind(&a); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	if a.Title == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "title is required"})
	}
	if !a.End.After(a.Start) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "end must be after start"})
	}

	saved, err := s.store.Add(c.Request().Context(), a)
	if err != nil {
		logger.Error("Create failed", logger.F("error", err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "create failed"})
	}

	c.Response().Header().Set("X-Overlaps", boolString(s.store.Overlaps(saved)))
	return c.JSON(http.StatusCreated, saved)
}

func (s *Server) handleUpdate(c echo.Context) error {
	id := c.Param("id")
	if _, ok := s.store.Get(id); !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "appointment not found"})
	}

	var a model.Appointment
	if err := c.Bind(&a); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	a.ID = id
	if a.Title == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "title is required"})
	}
	if !a.End.After(a.Start) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "end must be after start"})
	}

	if err := s.store.Update(c.Request().Context(), a); err != nil {
		logger.Error("Update failed", logger.F("id", id), logger.F("error", err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "update failed"})
	}

	c.Response().Header().Set("X-Overlaps", boolString(s.store.Overlaps(a)))
	return c.JSON(http.StatusOK, a)
}

func (s *Server) handleDelete(c echo.Context) error {
	id := c.Param("id")
	if _, ok := s.store.Get(id); !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "appointment not found"})
	}

	if err := s.store.Remove(c.Request().Context(), id); err != nil {
		logger.Error("Delete failed", logger.F("id", id), logger.F("error", err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleFeed(c echo.Context) error {
	body := ics.Export(s.store.List())
	return c.Blob(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}

func parseDay(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
