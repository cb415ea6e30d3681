// Package realtime carries best-effort notification delivery to connected
// users: a session registry keyed by user id, a websocket client with a
// buffered outbound channel, and a dispatcher that pushes or drops.
package realtime

import "sync"

// Registry maps a user id to its single live websocket session. It is an
// injected instance owned by the router, not a package-level singleton, and
// holds no persistent state: a restarted process starts empty.
//
// One session per user, last-connected wins: a new connection for a user
// replaces (and closes) any previous one.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]string  // userID -> sessionID
	owners   map[string]string  // sessionID -> userID
	clients  map[string]*Client // sessionID -> client
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]string),
		owners:   make(map[string]string),
		clients:  make(map[string]*Client),
	}
}

// Connect registers the client as the user's live session, replacing any
// previous session for that user.
func (r *Registry) Connect(userID string, client *Client) {
	var replaced *Client

	r.mu.Lock()
	if oldSession, ok := r.sessions[userID]; ok {
		replaced = r.clients[oldSession]
		delete(r.owners, oldSession)
		delete(r.clients, oldSession)
	}
	sessionID := client.SessionID()
	r.sessions[userID] = sessionID
	r.owners[sessionID] = userID
	r.clients[sessionID] = client
	r.mu.Unlock()

	if replaced != nil {
		replaced.Close()
	}
}

// Disconnect purges the entry owned by sessionID. A disconnect for a session
// that has already been superseded is ignored, so a slow close cannot evict
// the user's newer connection.
func (r *Registry) Disconnect(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	userID, ok := r.owners[sessionID]
	if !ok {
		return
	}
	delete(r.owners, sessionID)
	delete(r.clients, sessionID)
	if r.sessions[userID] == sessionID {
		delete(r.sessions, userID)
	}
}

// SessionFor returns the user's live session id, if any. O(1).
func (r *Registry) SessionFor(userID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sessionID, ok := r.sessions[userID]
	return sessionID, ok
}

// ClientFor returns the user's live client, if any. O(1).
func (r *Registry) ClientFor(userID string) (*Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sessionID, ok := r.sessions[userID]
	if !ok {
		return nil, false
	}
	client, ok := r.clients[sessionID]
	return client, ok
}
