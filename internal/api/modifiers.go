package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/posdesk/core/internal/catalog"
	"github.com/posdesk/core/internal/events"
	"github.com/posdesk/core/internal/ident"
)

// handleListModifiers lists all modifier groups, or only those attached
// to one item when the item query parameter is present.
func (s *Server) handleListModifiers(w http.ResponseWriter, r *http.Request) {
	var (
		list []catalog.Modifier
		err  error
	)
	if itemID := r.URL.Query().Get("item"); itemID != "" {
		list, err = s.catalogRepo.ListModifiersByItem(r.Context(), itemID)
	} else {
		list, err = s.catalogRepo.ListModifiers(r.Context())
	}
	if err != nil {
		s.logger.Error("listing modifiers failed", "error", err)
		writeInternalError(w, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetModifier(w http.ResponseWriter, r *http.Request) {
	modifier, err := s.catalogRepo.GetModifier(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, modifier)
}

func (s *Server) handleCreateModifier(w http.ResponseWriter, r *http.Request) {
	var modifier catalog.Modifier
	if err := json.NewDecoder(r.Body).Decode(&modifier); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if err := modifier.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeValidation, err.Error())
		return
	}

	err := s.createWithAllocatedID(r.Context(), ident.NamespaceModifier, func(id string) error {
		modifier.ID = id
		return s.catalogRepo.CreateModifier(r.Context(), &modifier)
	})
	if err != nil {
		writeRepoError(w, err)
		return
	}

	s.publishEvent(events.Created(events.EntityModifier, &modifier))
	writeJSON(w, http.StatusCreated, &modifier)
}

func (s *Server) handleUpdateModifier(w http.ResponseWriter, r *http.Request) {
	var modifier catalog.Modifier
	if err := json.NewDecoder(r.Body).Decode(&modifier); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	modifier.ID = chi.URLParam(r, "id")
	if err := modifier.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeValidation, err.Error())
		return
	}

	if err := s.catalogRepo.UpdateModifier(r.Context(), &modifier); err != nil {
		writeRepoError(w, err)
		return
	}

	s.publishEvent(events.Updated(events.EntityModifier, &modifier))
	writeJSON(w, http.StatusOK, &modifier)
}

func (s *Server) handleDeleteModifier(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.catalogRepo.DeleteModifier(r.Context(), id); err != nil {
		writeRepoError(w, err)
		return
	}

	s.publishEvent(events.Deleted(events.EntityModifier, id))
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
