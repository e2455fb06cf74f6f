package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/posdesk/core/internal/catalog"
	"github.com/posdesk/core/internal/events"
	"github.com/posdesk/core/internal/ident"
)

func (s *Server) handleListDiscounts(w http.ResponseWriter, r *http.Request) {
	list, err := s.catalogRepo.ListDiscounts(r.Context())
	if err != nil {
		s.logger.Error("listing discounts failed", "error", err)
		writeInternalError(w, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetDiscount(w http.ResponseWriter, r *http.Request) {
	discount, err := s.catalogRepo.GetDiscount(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, discount)
}

func (s *Server) handleCreateDiscount(w http.ResponseWriter, r *http.Request) {
	var discount catalog.Discount
	if err := json.NewDecoder(r.Body).Decode(&discount); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if err := discount.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeValidation, err.Error())
		return
	}

	err := s.createWithAllocatedID(r.Context(), ident.NamespaceDiscount, func(id string) error {
		discount.ID = id
		return s.catalogRepo.CreateDiscount(r.Context(), &discount)
	})
	if err != nil {
		writeRepoError(w, err)
		return
	}

	s.publishEvent(events.Created(events.EntityDiscount, &discount))
	writeJSON(w, http.StatusCreated, &discount)
}

func (s *Server) handleUpdateDiscount(w http.ResponseWriter, r *http.Request) {
	var discount catalog.Discount
	if err := json.NewDecoder(r.Body).Decode(&discount); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	discount.ID = chi.URLParam(r, "id")
	if err := discount.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeValidation, err.Error())
		return
	}

	if err := s.catalogRepo.UpdateDiscount(r.Context(), &discount); err != nil {
		writeRepoError(w, err)
		return
	}

	s.publishEvent(events.Updated(events.EntityDiscount, &discount))
	writeJSON(w, http.StatusOK, &discount)
}

func (s *Server) handleDeleteDiscount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.catalogRepo.DeleteDiscount(r.Context(), id); err != nil {
		writeRepoError(w, err)
		return
	}

	s.publishEvent(events.Deleted(events.EntityDiscount, id))
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
