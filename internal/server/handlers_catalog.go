//-------------------------------------------------------------------------
//
// Brew RAG Server
//
// Copyright (c) 2025 - 2026, Coffeehaus, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/coffeehaus/brew-rag-server/internal/store"
)

// CategoriesResponse is the response for the category listing.
type CategoriesResponse struct {
	Categories []store.Category `json:"categories"`
}

// handleListProducts handles GET /api/v1/products with filtering and
// pagination query parameters.
func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := store.ProductFilter{
		Search: q.Get("search"),
	}

	if v := q.Get("category_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid category_id")
			return
		}
		filter.CategoryID = &id
	}
	if v := q.Get("is_popular"); v != "" {
		popular, err := strconv.ParseBool(v)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid is_popular")
			return
		}
		filter.IsPopular = &popular
	}
	if v := q.Get("is_active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid is_active")
			return
		}
		filter.IsActive = &active
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			s.respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid limit")
			return
		}
		filter.Limit = limit
	}
	if v := q.Get("skip"); v != "" {
		skip, err := strconv.Atoi(v)
		if err != nil || skip < 0 {
			s.respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid skip")
			return
		}
		filter.Offset = skip
	}

	page, err := s.storage.ListProducts(r.Context(), filter)
	if err != nil {
		s.logger.Error("failed to list products", "error", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, page)
}

// handleGetProduct handles GET /api/v1/products/{id}.
func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid product id")
		return
	}

	product, err := s.storage.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "product not found")
			return
		}
		s.logger.Error("failed to get product", "id", id, "error", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, product)
}

// handleListCategories handles GET /api/v1/categories.
func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.storage.ListCategories(r.Context())
	if err != nil {
		s.logger.Error("failed to list categories", "error", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, CategoriesResponse{Categories: categories})
}
