//-------------------------------------------------------------------------
//
// Brew RAG Server
//
// Copyright (c) 2025 - 2026, Coffeehaus, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package store

import (
	"context"
	"fmt"
	"time"
)

// ChatSession is one conversation thread, identified by an opaque
// session ID chosen by the client.
type ChatSession struct {
	ID        int       `json:"id"`
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChatMessage is one turn in a session. Intent and Agent are recorded
// for assistant turns only.
type ChatMessage struct {
	ID        int       `json:"id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Intent    string    `json:"intent,omitempty"`
	Agent     string    `json:"agent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// EnsureSession creates the session if it does not exist and returns
// it either way.
func (s *Store) EnsureSession(ctx context.Context, sessionID string) (*ChatSession, error) {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO chat_sessions (session_id)
		VALUES ($1)
		ON CONFLICT (session_id) DO NOTHING`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	var session ChatSession
	err = s.pool.QueryRow(ctx, `
		SELECT id, session_id, created_at, updated_at
		FROM chat_sessions
		WHERE session_id = $1`, sessionID).
		Scan(&session.ID, &session.SessionID, &session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	return &session, nil
}

// AppendMessage records one turn and bumps the session timestamp.
func (s *Store) AppendMessage(ctx context.Context, msg ChatMessage) (*ChatMessage, error) {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO chat_messages (session_id, role, content, intent, agent)
		VALUES ($1, $2, $3, nullif($4, ''), nullif($5, ''))
		RETURNING id, created_at`,
		msg.SessionID, msg.Role, msg.Content, msg.Intent, msg.Agent).
		Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("appending message: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		UPDATE chat_sessions
		SET updated_at = now()
		WHERE session_id = $1`, msg.SessionID)
	if err != nil {
		return nil, fmt.Errorf("touching session: %w", err)
	}

	return &msg, nil
}

// History returns the oldest-first message history for a session.
func (s *Store) History(ctx context.Context, sessionID string, limit int) ([]ChatMessage, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, session_id, role, content,
		       coalesce(intent, ''), coalesce(agent, ''), created_at
		FROM chat_messages
		WHERE session_id = $1
		ORDER BY created_at ASC, id ASC
		LIMIT $2`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	defer rows.Close()

	messages := []ChatMessage{}
	for rows.Next() {
		var m ChatMessage
		err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content,
			&m.Intent, &m.Agent, &m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	return messages, nil
}
