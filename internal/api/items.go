package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/posdesk/core/internal/catalog"
	"github.com/posdesk/core/internal/events"
	"github.com/posdesk/core/internal/ident"
)

// handleListItems lists all items, or only those in one category when
// the category query parameter is present.
func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	var (
		list []catalog.Item
		err  error
	)
	if categoryID := r.URL.Query().Get("category"); categoryID != "" {
		list, err = s.catalogRepo.ListItemsByCategory(r.Context(), categoryID)
	} else {
		list, err = s.catalogRepo.ListItems(r.Context())
	}
	if err != nil {
		s.logger.Error("listing items failed", "error", err)
		writeInternalError(w, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	item, err := s.catalogRepo.GetItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var item catalog.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if err := item.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeValidation, err.Error())
		return
	}

	err := s.createWithAllocatedID(r.Context(), ident.NamespaceItem, func(id string) error {
		item.ID = id
		return s.catalogRepo.CreateItem(r.Context(), &item)
	})
	if err != nil {
		writeRepoError(w, err)
		return
	}

	s.publishEvent(events.Created(events.EntityItem, &item))
	writeJSON(w, http.StatusCreated, &item)
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var item catalog.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	item.ID = chi.URLParam(r, "id")
	if err := item.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeValidation, err.Error())
		return
	}

	if err := s.catalogRepo.UpdateItem(r.Context(), &item); err != nil {
		writeRepoError(w, err)
		return
	}

	s.publishEvent(events.Updated(events.EntityItem, &item))
	writeJSON(w, http.StatusOK, &item)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.catalogRepo.DeleteItem(r.Context(), id); err != nil {
		writeRepoError(w, err)
		return
	}

	s.publishEvent(events.Deleted(events.EntityItem, id))
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
