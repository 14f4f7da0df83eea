// Package chat implements the chat-open flow and the conversation-id cache:
// a short-lived map from peer user id to conversation id that avoids repeated
// "find or create conversation" round-trips inside one app session.
//
// The cache is purely a lookup optimization and never authoritative; the
// server conversation list is the source of truth. It lives for the current
// process only and is cleared by restart.
package chat

import "sync"

const defaultCacheSize = 256

// Cache is a bounded in-memory map: peer user id -> conversation id.
type Cache struct {
	mu      sync.RWMutex
	entries map[int64]string
	maxSize int
}

func NewCache(maxSize int) *Cache {
	if maxSize <= 0 {
		maxSize = defaultCacheSize
	}
	return &Cache{
		entries: make(map[int64]string),
		maxSize: maxSize,
	}
}

// Get returns the cached conversation id for the peer. Pure map lookup,
// no I/O.
func (c *Cache) Get(peerID int64) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.entries[peerID]
	return id, ok
}

// Set caches a conversation id, overwriting any previous entry.
func (c *Cache) Set(peerID int64, conversationID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Simple eviction if full
	if len(c.entries) >= c.maxSize {
		for k := range c.entries {
			delete(c.entries, k)
			break
		}
	}

	c.entries[peerID] = conversationID
}

// Remove evicts the entry for the peer, e.g. when a cached id turns out to
// be stale.
func (c *Cache) Remove(peerID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, peerID)
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
