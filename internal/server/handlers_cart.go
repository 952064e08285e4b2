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
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/coffeehaus/brew-rag-server/internal/store"
)

// AddCartItemRequest is the request body for adding a cart item.
type AddCartItemRequest struct {
	SessionID    string `json:"session_id"`
	ProductID    int    `json:"product_id"`
	Quantity     int    `json:"quantity"`
	SelectedSize string `json:"selected_size,omitempty"`
}

// UpdateCartItemRequest is the request body for changing a line's
// quantity.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// handleAddToCart handles POST /api/v1/cart.
func (s *Server) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	var req AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "INVALID_REQUEST",
			"invalid request body: "+err.Error())
		return
	}
	if req.SessionID == "" {
		s.respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "session_id is required")
		return
	}
	if req.Quantity <= 0 {
		s.respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "quantity must be positive")
		return
	}

	item, err := s.storage.AddToCart(r.Context(), req.SessionID, req.ProductID, req.Quantity, req.SelectedSize)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "product not found")
			return
		}
		s.logger.Error("failed to add to cart", "error", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, item)
}

// handleGetCart handles GET /api/v1/cart?session_id=...
func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		s.respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "session_id is required")
		return
	}

	cart, err := s.storage.GetCart(r.Context(), sessionID)
	if err != nil {
		s.logger.Error("failed to load cart", "error", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, cart)
}

// handleUpdateCartItem handles PUT /api/v1/cart/{id}.
func (s *Server) handleUpdateCartItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid cart item id")
		return
	}

	var req UpdateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "INVALID_REQUEST",
			"invalid request body: "+err.Error())
		return
	}
	if req.Quantity <= 0 {
		s.respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "quantity must be positive")
		return
	}

	item, err := s.storage.UpdateCartItemQuantity(r.Context(), itemID, req.Quantity)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "cart item not found")
			return
		}
		s.logger.Error("failed to update cart item", "error", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, item)
}

// handleRemoveCartItem handles DELETE /api/v1/cart/{id}.
func (s *Server) handleRemoveCartItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid cart item id")
		return
	}

	if err := s.storage.RemoveCartItem(r.Context(), itemID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "cart item not found")
			return
		}
		s.logger.Error("failed to remove cart item", "error", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleClearCart handles DELETE /api/v1/cart?session_id=...
func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		s.respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "session_id is required")
		return
	}

	if err := s.storage.ClearCart(r.Context(), sessionID); err != nil {
		s.logger.Error("failed to clear cart", "error", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
