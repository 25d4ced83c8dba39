package api

import (
	"errors"
	"net/http"

	"github.com/devwatch/devwatch/internal/feed"
	"github.com/devwatch/devwatch/internal/snapshot"
)

// handleExport returns the complete composite snapshot.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snap.Export()
	if err != nil {
		s.sendStoreError(w, err)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="devwatch-export.json"`)
	s.sendJSON(w, http.StatusOK, snap)
}

// handleImport overwrites the collections present in the posted
// snapshot. Partial snapshots are valid.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var snap snapshot.Snapshot
	if err := decodeJSON(r, &snap); err != nil {
		s.sendError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.snap.Import(&snap); err != nil {
		s.sendStoreError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, map[string]string{"status": "imported"})
}

// handleReset wipes the store back to its first-run defaults.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.snap.Reset(); err != nil {
		s.sendStoreError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// handleEvent folds one real-time feed event into the store.
func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	var ev feed.Event
	if err := decodeJSON(r, &ev); err != nil {
		s.sendError(w, http.StatusBadRequest, err.Error())
		return
	}
	stored, err := s.feed.Fold(ev)
	if err != nil {
		if errors.Is(err, feed.ErrInvalidEvent) {
			s.sendError(w, http.StatusBadRequest, err.Error())
		} else {
			s.sendStoreError(w, err)
		}
		return
	}
	if s.metrics != nil {
		s.metrics.EventsFoldedTotal.WithLabelValues(ev.Kind).Inc()
	}
	s.sendJSON(w, http.StatusCreated, stored)
}
