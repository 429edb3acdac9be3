// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package realtime

import (
	"sync"

	uuid "github.com/gofrs/uuid"

	"github.com/redsocial/api/interactions/models"
	"github.com/redsocial/api/internal/pkg/log"
	"github.com/redsocial/api/internal/types"
)

// Session is one connected websocket client. Out is the buffered event
// queue the connection's writer drains; when it fills up the session is
// dropped rather than blocking the broadcaster.
type Session struct {
	ID  uuid.UUID
	Out chan models.ServerEvent

	mu            sync.RWMutex
	user          types.UserContext
	authenticated bool
}

// Authenticated reports whether the session completed the handshake
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// User returns the identity bound to the session after authentication
func (s *Session) User() (types.UserContext, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, s.authenticated
}

func (s *Session) bind(user types.UserContext) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.authenticated = true
}

// Hub is the in-process session registry and event broadcaster.
// All exported methods are safe for concurrent use.
type Hub struct {
	mu         sync.RWMutex
	sessions   map[uuid.UUID]*Session
	sendBuffer int
}

// NewHub creates a hub whose sessions carry outbound queues of
// sendBuffer events each
func NewHub(sendBuffer int) *Hub {
	if sendBuffer <= 0 {
		sendBuffer = 32
	}
	return &Hub{
		sessions:   make(map[uuid.UUID]*Session),
		sendBuffer: sendBuffer,
	}
}

// Register adds a new unauthenticated session to the registry
func (h *Hub) Register() *Session {
	session := &Session{
		ID:  uuid.Must(uuid.NewV4()),
		Out: make(chan models.ServerEvent, h.sendBuffer),
	}

	h.mu.Lock()
	h.sessions[session.ID] = session
	h.mu.Unlock()

	return session
}

// Authenticate binds a verified identity to a registered session
func (h *Hub) Authenticate(sessionID uuid.UUID, user types.UserContext) bool {
	h.mu.RLock()
	session, ok := h.sessions[sessionID]
	h.mu.RUnlock()
	if !ok {
		return false
	}

	session.bind(user)
	return true
}

// Unregister removes a session and closes its outbound queue.
// Safe to call more than once.
func (h *Hub) Unregister(sessionID uuid.UUID) {
	h.mu.Lock()
	session, ok := h.sessions[sessionID]
	if ok {
		delete(h.sessions, sessionID)
	}
	h.mu.Unlock()

	if ok {
		close(session.Out)
	}
}

// Lookup returns a registered session by id
func (h *Hub) Lookup(sessionID uuid.UUID) (*Session, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	session, ok := h.sessions[sessionID]
	return session, ok
}

// Len reports the number of registered sessions
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Broadcast queues an event for every authenticated session. Sessions
// whose queue is full are dropped from the registry; the slow client's
// connection notices its closed queue and shuts down.
func (h *Hub) Broadcast(event models.ServerEvent) {
	h.mu.RLock()
	targets := make([]*Session, 0, len(h.sessions))
	for _, session := range h.sessions {
		if session.Authenticated() {
			targets = append(targets, session)
		}
	}
	h.mu.RUnlock()

	for _, session := range targets {
		if !h.trySend(session, event) {
			log.Warn("realtime: dropping slow session %s", session.ID)
			h.Unregister(session.ID)
		}
	}
}

// SendTo queues an event for one session regardless of its auth state.
// Used for handshake failures and per-request errors.
func (h *Hub) SendTo(sessionID uuid.UUID, event models.ServerEvent) bool {
	h.mu.RLock()
	session, ok := h.sessions[sessionID]
	h.mu.RUnlock()
	if !ok {
		return false
	}

	if !h.trySend(session, event) {
		h.Unregister(sessionID)
		return false
	}
	return true
}

// trySend performs a non-blocking send. The recover guards the race
// between a send and Unregister closing the queue.
func (h *Hub) trySend(session *Session, event models.ServerEvent) (delivered bool) {
	defer func() {
		if recover() != nil {
			delivered = false
		}
	}()

	select {
	case session.Out <- event:
		return true
	default:
		return false
	}
}
