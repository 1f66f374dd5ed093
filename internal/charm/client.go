// ABOUTME: Charm KV backend with automatic cloud sync.
// ABOUTME: Implements storage.KV so the profile store can run over Charm Cloud.
package charm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/carewise/internal/storage"
)

const (
	// DBName is the Charm KV database name under ~/.local/share/charm/kv.
	DBName = "carewise"

	// Host is the Charm server profiles sync through.
	Host = "charm.2389.dev"
)

var (
	globalClient *Client
	clientOnce   sync.Once
	clientErr    error
)

// Client wraps a Charm KV database.
type Client struct {
	kv       *kv.KV
	autoSync bool
	mu       sync.RWMutex
}

// InitClient initializes the global Charm client.
// Thread-safe; can be called multiple times.
func InitClient() (*Client, error) {
	clientOnce.Do(func() {
		// Set server before opening KV
		if os.Getenv("CHARM_HOST") == "" {
			if err := os.Setenv("CHARM_HOST", Host); err != nil {
				clientErr = err
				return
			}
		}

		db, err := kv.OpenWithDefaultsFallback(DBName)
		if err != nil {
			clientErr = fmt.Errorf("open charm kv: %w", err)
			return
		}

		globalClient = &Client{
			kv:       db,
			autoSync: true,
		}

		// Pull remote data on startup (skip in read-only mode)
		if !db.IsReadOnly() {
			_ = db.Sync()
		}
	})

	return globalClient, clientErr
}

// Close closes the KV database connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kv != nil {
		return c.kv.Close()
	}
	return nil
}

// IsReadOnly returns true if the database is open in read-only mode.
// This happens when another process (like an MCP server) holds the lock.
func (c *Client) IsReadOnly() bool {
	return c.kv.IsReadOnly()
}

// Sync synchronizes local state with Charm Cloud.
func (c *Client) Sync() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.kv.IsReadOnly() {
		return nil
	}
	return c.kv.Sync()
}

// syncIfEnabled calls Sync if autoSync is enabled.
func (c *Client) syncIfEnabled() {
	if c.autoSync && !c.kv.IsReadOnly() {
		_ = c.kv.Sync()
	}
}

// SetAutoSync enables or disables automatic sync after writes.
func (c *Client) SetAutoSync(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoSync = enabled
}

// ID returns the Charm user ID for the current account.
func (c *Client) ID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("create charm client: %w", err)
	}
	return cc.ID()
}

// Reset wipes local data and rebuilds from Charm Cloud.
func (c *Client) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Reset()
}

// Get returns the value at key.
func (c *Client) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, err := c.kv.Get([]byte(key))
	if err != nil {
		return nil, mapError(key, err)
	}
	return value, nil
}

// Put stores value at key and syncs.
func (c *Client) Put(_ context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv.IsReadOnly() {
		return fmt.Errorf("cannot write %s: %w (locked by another process, MCP server?)", key, storage.ErrReadOnly)
	}

	if err := c.kv.Set([]byte(key), value); err != nil {
		return err
	}
	c.syncIfEnabled()
	return nil
}

// Delete removes key and syncs.
func (c *Client) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv.IsReadOnly() {
		return fmt.Errorf("cannot delete %s: %w (locked by another process, MCP server?)", key, storage.ErrReadOnly)
	}

	if err := c.kv.Delete([]byte(key)); err != nil {
		return err
	}
	c.syncIfEnabled()
	return nil
}

// Keys lists keys under prefix. Charm KV has no prefix scan, so every key
// is fetched and filtered client-side.
func (c *Client) Keys(_ context.Context, prefix string) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	raw, err := c.kv.Keys()
	if err != nil {
		return nil, err
	}
	return filterKeys(raw, prefix), nil
}

// Ping reports whether the local database is open.
func (c *Client) Ping(context.Context) error {
	if c.kv == nil {
		return errors.New("charm kv is not open")
	}
	return nil
}

// filterKeys keeps the keys under prefix, sorted.
func filterKeys(raw [][]byte, prefix string) []string {
	keys := []string{}
	for _, k := range raw {
		if s := string(k); strings.HasPrefix(s, prefix) {
			keys = append(keys, s)
		}
	}
	slices.Sort(keys)
	return keys
}

// mapError converts badger's missing-key error into storage.ErrNotFound.
func mapError(key string, err error) error {
	if errors.Is(err, badger.ErrKeyNotFound) {
		return storage.ErrNotFound
	}
	return fmt.Errorf("get %s: %w", key, err)
}
