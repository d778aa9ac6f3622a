// ABOUTME: Charm KV backend for preferences that follow the user across machines.
// ABOUTME: Writes sync to Charm Cloud; a second process gets a read-only handle.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
	"github.com/dgraph-io/badger/v3"
)

const charmHost = "charm.2389.dev"

// ErrReadOnly is returned on writes while another process holds the database.
var ErrReadOnly = errors.New("cannot write: preferences are locked by another process (MCP server?)")

// CharmBackend stores preferences in a Charm KV database.
type CharmBackend struct {
	kv       *kv.KV
	autoSync bool
	mu       sync.RWMutex
}

// OpenCharm opens the named Charm KV database and pulls remote state.
// CHARM_HOST is honoured when set.
func OpenCharm(name string) (*CharmBackend, error) {
	if os.Getenv("CHARM_HOST") == "" {
		if err := os.Setenv("CHARM_HOST", charmHost); err != nil {
			return nil, err
		}
	}

	db, err := kv.OpenWithDefaultsFallback(name)
	if err != nil {
		return nil, fmt.Errorf("open charm kv: %w", err)
	}

	c := &CharmBackend{kv: db, autoSync: true}
	// Pull remote data on startup (skip in read-only mode)
	if !db.IsReadOnly() {
		_ = db.Sync()
	}
	return c, nil
}

// IsReadOnly returns true if the database is open in read-only mode.
func (c *CharmBackend) IsReadOnly() bool {
	return c.kv.IsReadOnly()
}

// SetAutoSync enables or disables automatic sync after writes.
func (c *CharmBackend) SetAutoSync(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoSync = enabled
}

// Sync synchronizes local state with Charm Cloud.
func (c *CharmBackend) Sync() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.kv.IsReadOnly() {
		return nil
	}
	return c.kv.Sync()
}

// ID returns the Charm user ID for the current account.
func (c *CharmBackend) ID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("create charm client: %w", err)
	}
	return cc.ID()
}

func (c *CharmBackend) Get(key []byte) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, err := c.kv.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) || (err != nil && strings.Contains(err.Error(), "Key not found")) {
		return nil, ErrNotFound
	}
	return value, err
}

func (c *CharmBackend) Set(key, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kv.IsReadOnly() {
		return ErrReadOnly
	}
	if err := c.kv.Set(key, value); err != nil {
		return err
	}
	c.syncIfEnabled()
	return nil
}

func (c *CharmBackend) Delete(key []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kv.IsReadOnly() {
		return ErrReadOnly
	}
	if err := c.kv.Delete(key); err != nil {
		return err
	}
	c.syncIfEnabled()
	return nil
}

// Close closes the KV database connection.
func (c *CharmBackend) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kv != nil {
		return c.kv.Close()
	}
	return nil
}

func (c *CharmBackend) syncIfEnabled() {
	if c.autoSync && !c.kv.IsReadOnly() {
		_ = c.kv.Sync()
	}
}
