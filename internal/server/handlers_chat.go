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
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/coffeehaus/brew-rag-server/internal/extract"
	"github.com/coffeehaus/brew-rag-server/internal/pipeline"
	"github.com/coffeehaus/brew-rag-server/internal/store"
)

// historyLimit caps how many prior turns feed a conversation.
const historyLimit = 50

// ChatTurn is one message in the returned conversation history.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the request body for both chat endpoints.
type ChatRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
	Provider  string `json:"provider,omitempty"`
}

// ChatResponse is the full structured response for POST /chat.
type ChatResponse struct {
	SessionID    string            `json:"session_id"`
	Response     string            `json:"response"`
	Intent       string            `json:"intent"`
	Agent        string            `json:"agent"`
	Products     []extract.Product `json:"products"`
	SourcesCount int               `json:"sources_count"`
	ChatHistory  []ChatTurn        `json:"chat_history"`
}

// ChatbotResponse is the legacy response shape for POST /api/chatbot.
type ChatbotResponse struct {
	Reply     string `json:"reply"`
	SessionID string `json:"session_id"`
	Intent    string `json:"intent"`
}

// runChat executes the shared chat flow: load history, persist the
// user turn, run the pipeline, persist the assistant turn.
func (s *Server) runChat(ctx context.Context, req ChatRequest) (string, []ChatTurn, *pipeline.Result, error) {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	if _, err := s.storage.EnsureSession(ctx, sessionID); err != nil {
		return "", nil, nil, err
	}

	messages, err := s.storage.History(ctx, sessionID, historyLimit)
	if err != nil {
		return "", nil, nil, err
	}

	history := make([]pipeline.Turn, 0, len(messages))
	for _, msg := range messages {
		history = append(history, pipeline.Turn{Role: msg.Role, Content: msg.Content})
	}

	if _, err := s.storage.AppendMessage(ctx, store.ChatMessage{
		SessionID: sessionID,
		Role:      "user",
		Content:   req.Message,
	}); err != nil {
		return "", nil, nil, err
	}

	result := s.chat.Process(ctx, pipeline.Request{
		Query:    req.Message,
		History:  history,
		Provider: req.Provider,
	})

	if _, err := s.storage.AppendMessage(ctx, store.ChatMessage{
		SessionID: sessionID,
		Role:      "assistant",
		Content:   result.Text,
		Intent:    string(result.Intent),
		Agent:     result.Agent,
	}); err != nil {
		return "", nil, nil, err
	}

	turns := make([]ChatTurn, 0, len(messages)+2)
	for _, msg := range messages {
		turns = append(turns, ChatTurn{Role: msg.Role, Content: msg.Content})
	}
	turns = append(turns,
		ChatTurn{Role: "user", Content: req.Message},
		ChatTurn{Role: "assistant", Content: result.Text})

	return sessionID, turns, result, nil
}

// handleChat handles POST /chat with the full structured response.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "INVALID_REQUEST",
			"invalid request body: "+err.Error())
		return
	}
	if req.Message == "" {
		s.respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "message is required")
		return
	}

	sessionID, turns, result, err := s.runChat(r.Context(), req)
	if err != nil {
		s.logger.Error("chat request failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	products := result.Products
	if products == nil {
		products = []extract.Product{}
	}

	s.respondJSON(w, http.StatusOK, ChatResponse{
		SessionID:    sessionID,
		Response:     result.Text,
		Intent:       string(result.Intent),
		Agent:        result.Agent,
		Products:     products,
		SourcesCount: len(result.Sources),
		ChatHistory:  turns,
	})
}

// handleChatbot handles POST /api/chatbot, the legacy storefront
// shape.
func (s *Server) handleChatbot(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "INVALID_REQUEST",
			"invalid request body: "+err.Error())
		return
	}
	if req.Message == "" {
		s.respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "message is required")
		return
	}

	sessionID, _, result, err := s.runChat(r.Context(), req)
	if err != nil {
		s.logger.Error("chatbot request failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, ChatbotResponse{
		Reply:     result.Text,
		SessionID: sessionID,
		Intent:    string(result.Intent),
	})
}
