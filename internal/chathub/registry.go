package chathub

import (
	"log"
	"sync"
)

// Registry is the owned, concurrency-safe map from identity to live
// sessions. One identity may hold several concurrent sessions; fan-out
// addresses all of them. Reads (fan-out lookups) never block on
// unrelated connect/disconnect activity longer than the map mutation
// itself.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]map[Client]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]map[Client]struct{}),
	}
}

// Add registers a session under its bound identity.
func (r *Registry) Add(c Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	uid := c.GetUserID()
	if r.sessions[uid] == nil {
		r.sessions[uid] = make(map[Client]struct{})
	}
	r.sessions[uid][c] = struct{}{}
	log.Printf("Session registered for %s (%d live)", uid, len(r.sessions[uid]))
}

// Remove drops a session. Removing an unknown session is a no-op.
func (r *Registry) Remove(c Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.remove(c)
}

func (r *Registry) remove(c Client) {
	uid := c.GetUserID()
	set, ok := r.sessions[uid]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(r.sessions, uid)
	}
	log.Printf("Session unregistered for %s", uid)
}

// Rebind moves a session to a new identity, keeping the map keyed
// correctly. Used when a connect frame upgrades an anonymous session to
// a verified identity, or downgrades it to a fresh anonymous one.
func (r *Registry) Rebind(c Client, userID string, authenticated bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.remove(c)
	c.Rebind(userID, authenticated)
	if r.sessions[userID] == nil {
		r.sessions[userID] = make(map[Client]struct{})
	}
	r.sessions[userID][c] = struct{}{}
}

// SessionsFor returns all live sessions bound to an identity.
func (r *Registry) SessionsFor(userID string) []Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set := r.sessions[userID]
	if len(set) == 0 {
		return nil
	}
	out := make([]Client, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	return out
}

// All returns every live session.
func (r *Registry) All() []Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Client
	for _, set := range r.sessions {
		for c := range set {
			out = append(out, c)
		}
	}
	return out
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, set := range r.sessions {
		n += len(set)
	}
	return n
}
