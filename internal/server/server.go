//-------------------------------------------------------------------------
//
// Brew RAG Server
//
// Copyright (c) 2025 - 2026, Coffeehaus, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package server provides the HTTP API for the chat pipeline and the
// shop backend.
package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/coffeehaus/brew-rag-server/internal/config"
	"github.com/coffeehaus/brew-rag-server/internal/pipeline"
	"github.com/coffeehaus/brew-rag-server/internal/store"
)

// ChatPipeline processes chat queries into composed results.
type ChatPipeline interface {
	Process(ctx context.Context, req pipeline.Request) *pipeline.Result
}

// Storage is the persistence surface the handlers use.
type Storage interface {
	EnsureSession(ctx context.Context, sessionID string) (*store.ChatSession, error)
	AppendMessage(ctx context.Context, msg store.ChatMessage) (*store.ChatMessage, error)
	History(ctx context.Context, sessionID string, limit int) ([]store.ChatMessage, error)

	ListProducts(ctx context.Context, filter store.ProductFilter) (*store.ProductPage, error)
	GetProduct(ctx context.Context, id int) (*store.Product, error)
	ListCategories(ctx context.Context) ([]store.Category, error)

	AddToCart(ctx context.Context, sessionID string, productID, quantity int, selectedSize string) (*store.CartItem, error)
	GetCart(ctx context.Context, sessionID string) (*store.Cart, error)
	UpdateCartItemQuantity(ctx context.Context, itemID, quantity int) (*store.CartItem, error)
	RemoveCartItem(ctx context.Context, itemID int) error
	ClearCart(ctx context.Context, sessionID string) error

	CreateOrder(ctx context.Context, sessionID, notes string) (*store.Order, error)
	GetOrder(ctx context.Context, orderID int) (*store.Order, error)
	ListOrders(ctx context.Context, sessionID string, limit int) ([]store.Order, error)
}

// Server is the HTTP server for the chat and shop API.
type Server struct {
	config  *config.Config
	chat    ChatPipeline
	storage Storage
	logger  *slog.Logger
	server  *http.Server
	mux     *http.ServeMux
}

// New creates a new HTTP server.
func New(cfg *config.Config, chat ChatPipeline, storage Storage, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		config:  cfg,
		chat:    chat,
		storage: storage,
		logger:  logger,
		mux:     http.NewServeMux(),
	}

	s.setupRoutes()

	return s
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.ListenAddress, s.config.Server.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.applyMiddleware(s.mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	s.logger.Info("starting server",
		"address", addr,
		"tls", s.config.Server.TLS.Enabled)

	if s.config.Server.TLS.Enabled {
		return s.serveTLS()
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	return s.server.Serve(listener)
}

// serveTLS starts the server with TLS.
func (s *Server) serveTLS() error {
	tlsCfg := &tls.Config{
		MinVersion: tls.VersionTLS12,
	}
	s.server.TLSConfig = tlsCfg

	return s.server.ListenAndServeTLS(
		s.config.Server.TLS.CertFile,
		s.config.Server.TLS.KeyFile,
	)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")

	if s.server != nil {
		return s.server.Shutdown(ctx)
	}

	return nil
}

// Addr returns the server's address. Returns empty string if not started.
func (s *Server) Addr() string {
	if s.server != nil {
		return s.server.Addr
	}
	return ""
}
