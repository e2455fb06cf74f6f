package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/posdesk/core/internal/catalog"
	"github.com/posdesk/core/internal/events"
	"github.com/posdesk/core/internal/ident"
)

// handleListOptions lists all options, or only those in one modifier
// group when the modifier query parameter is present.
func (s *Server) handleListOptions(w http.ResponseWriter, r *http.Request) {
	var (
		list []catalog.Option
		err  error
	)
	if modifierID := r.URL.Query().Get("modifier"); modifierID != "" {
		list, err = s.catalogRepo.ListOptionsByModifier(r.Context(), modifierID)
	} else {
		list, err = s.catalogRepo.ListOptions(r.Context())
	}
	if err != nil {
		s.logger.Error("listing options failed", "error", err)
		writeInternalError(w, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetOption(w http.ResponseWriter, r *http.Request) {
	option, err := s.catalogRepo.GetOption(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, option)
}

func (s *Server) handleCreateOption(w http.ResponseWriter, r *http.Request) {
	var option catalog.Option
	if err := json.NewDecoder(r.Body).Decode(&option); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if err := option.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeValidation, err.Error())
		return
	}

	err := s.createWithAllocatedID(r.Context(), ident.NamespaceOption, func(id string) error {
		option.ID = id
		return s.catalogRepo.CreateOption(r.Context(), &option)
	})
	if err != nil {
		writeRepoError(w, err)
		return
	}

	s.publishEvent(events.Created(events.EntityOption, &option))
	writeJSON(w, http.StatusCreated, &option)
}

func (s *Server) handleUpdateOption(w http.ResponseWriter, r *http.Request) {
	var option catalog.Option
	if err := json.NewDecoder(r.Body).Decode(&option); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	option.ID = chi.URLParam(r, "id")
	if err := option.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeValidation, err.Error())
		return
	}

	if err := s.catalogRepo.UpdateOption(r.Context(), &option); err != nil {
		writeRepoError(w, err)
		return
	}

	s.publishEvent(events.Updated(events.EntityOption, &option))
	writeJSON(w, http.StatusOK, &option)
}

func (s *Server) handleDeleteOption(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.catalogRepo.DeleteOption(r.Context(), id); err != nil {
		writeRepoError(w, err)
		return
	}

	s.publishEvent(events.Deleted(events.EntityOption, id))
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
