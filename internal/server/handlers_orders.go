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

// CreateOrderRequest is the request body for placing an order from the
// session's cart.
type CreateOrderRequest struct {
	SessionID string `json:"session_id"`
	Notes     string `json:"notes,omitempty"`
}

// OrdersResponse is the response for the order listing.
type OrdersResponse struct {
	Orders []store.Order `json:"orders"`
}

// handleCreateOrder handles POST /api/v1/orders.
func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "INVALID_REQUEST",
			"invalid request body: "+err.Error())
		return
	}
	if req.SessionID == "" {
		s.respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "session_id is required")
		return
	}

	order, err := s.storage.CreateOrder(r.Context(), req.SessionID, req.Notes)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "cart is empty")
			return
		}
		s.logger.Error("failed to create order", "error", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	s.respondJSON(w, http.StatusCreated, order)
}

// handleListOrders handles GET /api/v1/orders?session_id=...
func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		s.respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "session_id is required")
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid limit")
			return
		}
		limit = n
	}

	orders, err := s.storage.ListOrders(r.Context(), sessionID, limit)
	if err != nil {
		s.logger.Error("failed to list orders", "error", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, OrdersResponse{Orders: orders})
}

// handleGetOrder handles GET /api/v1/orders/{id}.
func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid order id")
		return
	}

	order, err := s.storage.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "order not found")
			return
		}
		s.logger.Error("failed to get order", "id", orderID, "error", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, order)
}
