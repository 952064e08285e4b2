//-------------------------------------------------------------------------
//
// Brew RAG Server
//
// Copyright (c) 2025 - 2026, Coffeehaus, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package server

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check, also served at the root for storefront probes.
	s.mux.HandleFunc("GET /v1/health", s.handleHealth)
	s.mux.HandleFunc("GET /{$}", s.handleHealth)

	// Chat endpoints. /api/chatbot is the legacy shape kept for
	// existing storefront clients.
	s.mux.HandleFunc("POST /chat", s.handleChat)
	s.mux.HandleFunc("POST /api/chatbot", s.handleChatbot)

	// Shop API
	s.mux.HandleFunc("GET /api/v1/session-id", s.handleSessionID)
	s.mux.HandleFunc("GET /api/v1/products", s.handleListProducts)
	s.mux.HandleFunc("GET /api/v1/products/{id}", s.handleGetProduct)
	s.mux.HandleFunc("GET /api/v1/categories", s.handleListCategories)
	s.mux.HandleFunc("POST /api/v1/cart", s.handleAddToCart)
	s.mux.HandleFunc("GET /api/v1/cart", s.handleGetCart)
	s.mux.HandleFunc("PUT /api/v1/cart/{id}", s.handleUpdateCartItem)
	s.mux.HandleFunc("DELETE /api/v1/cart/{id}", s.handleRemoveCartItem)
	s.mux.HandleFunc("DELETE /api/v1/cart", s.handleClearCart)
	s.mux.HandleFunc("POST /api/v1/orders", s.handleCreateOrder)
	s.mux.HandleFunc("GET /api/v1/orders", s.handleListOrders)
	s.mux.HandleFunc("GET /api/v1/orders/{id}", s.handleGetOrder)
}
