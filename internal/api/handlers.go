package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/devwatch/devwatch/internal/model"
	"github.com/devwatch/devwatch/internal/repo"
)

// HealthResponse is the response for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

// ErrorResponse is the error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Uptime: time.Since(s.startTime).Round(time.Second).String(),
	})
}

// Users

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.reg.Users.List()
	if err != nil {
		s.sendStoreError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, users)
}

func (s *Server) handleAddUser(w http.ResponseWriter, r *http.Request) {
	var u model.User
	if err := decodeJSON(r, &u); err != nil {
		s.sendError(w, http.StatusBadRequest, err.Error())
		return
	}
	stored, err := s.reg.Users.Add(u)
	if err != nil {
		s.sendStoreError(w, err)
		return
	}
	s.sendJSON(w, http.StatusCreated, stored)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r)
	if !ok {
		return
	}
	var p model.UserPatch
	if err := decodeJSON(r, &p); err != nil {
		s.sendError(w, http.StatusBadRequest, err.Error())
		return
	}
	updated, err := s.reg.Users.Update(id, p)
	if err != nil {
		s.sendStoreError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r)
	if !ok {
		return
	}
	if err := s.reg.Users.Delete(id); err != nil {
		s.sendStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Devices

func (s *Server) handleListDevices(w http.ResponseWriter, r *http.Request) {
	devices, err := s.reg.Devices.List()
	if err != nil {
		s.sendStoreError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, devices)
}

func (s *Server) handleAddDevice(w http.ResponseWriter, r *http.Request) {
	var d model.Device
	if err := decodeJSON(r, &d); err != nil {
		s.sendError(w, http.StatusBadRequest, err.Error())
		return
	}
	stored, err := s.reg.Devices.Add(d)
	if err != nil {
		s.sendStoreError(w, err)
		return
	}
	s.sendJSON(w, http.StatusCreated, stored)
}

func (s *Server) handleUpdateDevice(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r)
	if !ok {
		return
	}
	var p model.DevicePatch
	if err := decodeJSON(r, &p); err != nil {
		s.sendError(w, http.StatusBadRequest, err.Error())
		return
	}
	updated, err := s.reg.Devices.Update(id, p)
	if err != nil {
		s.sendStoreError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteDevice(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r)
	if !ok {
		return
	}
	if err := s.reg.Devices.Delete(id); err != nil {
		s.sendStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Activities

func (s *Server) handleListActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := s.reg.Activities.List()
	if err != nil {
		s.sendStoreError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, activities)
}

func (s *Server) handleAddActivity(w http.ResponseWriter, r *http.Request) {
	var a model.Activity
	if err := decodeJSON(r, &a); err != nil {
		s.sendError(w, http.StatusBadRequest, err.Error())
		return
	}
	stored, err := s.reg.Activities.Add(a)
	if err != nil {
		s.sendStoreError(w, err)
		return
	}
	s.sendJSON(w, http.StatusCreated, stored)
}

func (s *Server) handleUpdateActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r)
	if !ok {
		return
	}
	var p model.ActivityPatch
	if err := decodeJSON(r, &p); err != nil {
		s.sendError(w, http.StatusBadRequest, err.Error())
		return
	}
	updated, err := s.reg.Activities.Update(id, p)
	if err != nil {
		s.sendStoreError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r)
	if !ok {
		return
	}
	if err := s.reg.Activities.Delete(id); err != nil {
		s.sendStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Helpers

func (s *Server) sendJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) sendError(w http.ResponseWriter, status int, msg string) {
	s.sendJSON(w, status, ErrorResponse{Error: msg})
}

// sendStoreError maps repository errors to HTTP status codes.
func (s *Server) sendStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, repo.ErrNotFound) {
		s.sendError(w, http.StatusNotFound, "not found")
		return
	}
	s.logger.Error("store operation failed", "error", err)
	s.sendError(w, http.StatusInternalServerError, "storage failure")
}

// urlID parses the {id} route parameter, responding 400 on garbage.
func (s *Server) urlID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		s.sendError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

// decodeJSON decodes a request body, rejecting unknown fields so typos
// and schema drift surface as 400s instead of silently merged data.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
