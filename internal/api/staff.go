package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/posdesk/core/internal/events"
	"github.com/posdesk/core/internal/ident"
	"github.com/posdesk/core/internal/staff"
)

// staffRequest is the request body for staff create and update. The PIN
// travels in plain text over the body and is hashed before storage; it
// is never echoed back.
type staffRequest struct {
	PIN        string  `json:"pin"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	HourlyWage float64 `json:"hourly_wage"`
	IsAdmin    bool    `json:"is_admin"`
}

// authRequest is the request body for POST /staff/auth.
type authRequest struct {
	PIN string `json:"pin"`
}

// authResponse identifies the staff member a PIN resolves to.
type authResponse struct {
	StaffID string `json:"staff_id"`
	IsAdmin bool   `json:"is_admin"`
}

// handleStaffAuth resolves a PIN to a staff identity. The endpoint is
// open: the register uses it for clock-in and to decide whether to show
// admin screens.
func (s *Server) handleStaffAuth(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.PIN == "" {
		writeBadRequest(w, "pin is required")
		return
	}

	member, err := s.staffRepo.GetByPINHash(r.Context(), staff.HashPIN(req.PIN))
	if err != nil {
		if errors.Is(err, staff.ErrStaffNotFound) {
			writeUnauthorized(w, "unknown pin")
			return
		}
		s.logger.Error("credential store lookup failed", "error", err)
		writeUnavailable(w, "authorization temporarily unavailable")
		return
	}

	writeJSON(w, http.StatusOK, authResponse{StaffID: member.ID, IsAdmin: member.IsAdmin})
}

func (s *Server) handleListStaff(w http.ResponseWriter, r *http.Request) {
	list, err := s.staffRepo.List(r.Context())
	if err != nil {
		s.logger.Error("listing staff failed", "error", err)
		writeInternalError(w, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetStaff(w http.ResponseWriter, r *http.Request) {
	member, err := s.staffRepo.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, member)
}

func (s *Server) handleCreateStaff(w http.ResponseWriter, r *http.Request) {
	var req staffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if err := staff.ValidatePIN(req.PIN); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeValidation, err.Error())
		return
	}

	member := &staff.Staff{
		PINHash:    staff.HashPIN(req.PIN),
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		HourlyWage: req.HourlyWage,
		IsAdmin:    req.IsAdmin,
	}
	if err := member.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeValidation, err.Error())
		return
	}

	err := s.createWithAllocatedID(r.Context(), ident.NamespaceStaff, func(id string) error {
		member.ID = id
		return s.staffRepo.Create(r.Context(), member)
	})
	if err != nil {
		writeRepoError(w, err)
		return
	}

	s.publishEvent(events.Created(events.EntityStaff, member))
	writeJSON(w, http.StatusCreated, member)
}

func (s *Server) handleUpdateStaff(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	existing, err := s.staffRepo.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, err)
		return
	}

	var req staffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	// An omitted PIN keeps the current credential.
	pinHash := existing.PINHash
	if req.PIN != "" {
		if err := staff.ValidatePIN(req.PIN); err != nil {
			writeError(w, http.StatusBadRequest, ErrCodeValidation, err.Error())
			return
		}
		pinHash = staff.HashPIN(req.PIN)
	}

	member := &staff.Staff{
		ID:         id,
		PINHash:    pinHash,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		HourlyWage: req.HourlyWage,
		IsAdmin:    req.IsAdmin,
	}
	if err := member.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeValidation, err.Error())
		return
	}

	if err := s.staffRepo.Update(r.Context(), member); err != nil {
		writeRepoError(w, err)
		return
	}

	s.publishEvent(events.Updated(events.EntityStaff, member))
	writeJSON(w, http.StatusOK, member)
}

func (s *Server) handleDeleteStaff(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.staffRepo.Delete(r.Context(), id); err != nil {
		writeRepoError(w, err)
		return
	}

	s.publishEvent(events.Deleted(events.EntityStaff, id))
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
