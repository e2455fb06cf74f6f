package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/posdesk/core/internal/catalog"
	"github.com/posdesk/core/internal/events"
	"github.com/posdesk/core/internal/ident"
)

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	list, err := s.catalogRepo.ListCategories(r.Context())
	if err != nil {
		s.logger.Error("listing categories failed", "error", err)
		writeInternalError(w, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := s.catalogRepo.GetCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var category catalog.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if err := category.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeValidation, err.Error())
		return
	}

	err := s.createWithAllocatedID(r.Context(), ident.NamespaceCategory, func(id string) error {
		category.ID = id
		return s.catalogRepo.CreateCategory(r.Context(), &category)
	})
	if err != nil {
		writeRepoError(w, err)
		return
	}

	s.publishEvent(events.Created(events.EntityCategory, &category))
	writeJSON(w, http.StatusCreated, &category)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var category catalog.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	category.ID = chi.URLParam(r, "id")
	if err := category.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeValidation, err.Error())
		return
	}

	if err := s.catalogRepo.UpdateCategory(r.Context(), &category); err != nil {
		writeRepoError(w, err)
		return
	}

	s.publishEvent(events.Updated(events.EntityCategory, &category))
	writeJSON(w, http.StatusOK, &category)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.catalogRepo.DeleteCategory(r.Context(), id); err != nil {
		writeRepoError(w, err)
		return
	}

	s.publishEvent(events.Deleted(events.EntityCategory, id))
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
