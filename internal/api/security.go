package api

import (
	"net/http"

	"github.com/devwatch/devwatch/internal/model"
)

// Repositories

func (s *Server) handleListRepositories(w http.ResponseWriter, r *http.Request) {
	repos, err := s.reg.Repositories.List()
	if err != nil {
		s.sendStoreError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, repos)
}

func (s *Server) handleRepositoryStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.reg.Repositories.Stats()
	if err != nil {
		s.sendStoreError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, stats)
}

func (s *Server) handleAddRepository(w http.ResponseWriter, r *http.Request) {
	var repo model.Repository
	if err := decodeJSON(r, &repo); err != nil {
		s.sendError(w, http.StatusBadRequest, err.Error())
		return
	}
	stored, err := s.reg.Repositories.Add(repo)
	if err != nil {
		s.sendStoreError(w, err)
		return
	}
	s.sendJSON(w, http.StatusCreated, stored)
}

func (s *Server) handleUpdateRepository(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r)
	if !ok {
		return
	}
	var p model.RepositoryPatch
	if err := decodeJSON(r, &p); err != nil {
		s.sendError(w, http.StatusBadRequest, err.Error())
		return
	}
	updated, err := s.reg.Repositories.Update(id, p)
	if err != nil {
		s.sendStoreError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteRepository(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r)
	if !ok {
		return
	}
	if err := s.reg.Repositories.Delete(id); err != nil {
		s.sendStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Alerts

func (s *Server) handleListAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := s.reg.Alerts.List()
	if err != nil {
		s.sendStoreError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, alerts)
}

func (s *Server) handleAddAlert(w http.ResponseWriter, r *http.Request) {
	var a model.Alert
	if err := decodeJSON(r, &a); err != nil {
		s.sendError(w, http.StatusBadRequest, err.Error())
		return
	}
	stored, err := s.reg.Alerts.Add(a)
	if err != nil {
		s.sendStoreError(w, err)
		return
	}
	s.sendJSON(w, http.StatusCreated, stored)
}

func (s *Server) handleUpdateAlert(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r)
	if !ok {
		return
	}
	var p model.AlertPatch
	if err := decodeJSON(r, &p); err != nil {
		s.sendError(w, http.StatusBadRequest, err.Error())
		return
	}
	updated, err := s.reg.Alerts.Update(id, p)
	if err != nil {
		s.sendStoreError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteAlert(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r)
	if !ok {
		return
	}
	if err := s.reg.Alerts.Delete(id); err != nil {
		s.sendStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Security settings

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.reg.Settings.Get()
	if err != nil {
		s.sendStoreError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, settings)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings model.SecuritySettings
	if err := decodeJSON(r, &settings); err != nil {
		s.sendError(w, http.StatusBadRequest, err.Error())
		return
	}
	updated, err := s.reg.Settings.Update(settings)
	if err != nil {
		s.sendStoreError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, updated)
}

// Dashboard

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.dash.Current()
	if err != nil {
		s.sendStoreError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, d)
}
