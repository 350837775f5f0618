// Package cache stores solve results and rendered artifacts by content key.
//
// Backends implement [Cache]: [FileCache] for the CLI, [RedisCache] for
// shared deployments of the HTTP API, and [NullCache] when caching is off.
// Keys come from a [Keyer], which hashes the canonical graph encoding
// together with every option that affects the output, so a changed solver
// setting never returns a stale result.
package cache

import (
	"context"
	"time"
)

// Default time-to-live per entry kind.
const (
	TTLResult = 7 * 24 * time.Hour
	TTLRender = 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value stored under key. A missing or expired entry is
	// reported as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// ResultKeyOpts lists the solver settings that change a result.
type ResultKeyOpts struct {
	Strategy    string `json:"strategy"`
	MaxBranches int    `json:"max_branches"`
}

// RenderKeyOpts lists the settings that change a rendered artifact.
type RenderKeyOpts struct {
	Format   string `json:"format"`
	Strategy string `json:"strategy"`
	Layout   string `json:"layout"`
	Weights  bool   `json:"weights"`
	// Selection identifies the highlighted vertex set.
	Selection string `json:"selection"`
}

// Keyer derives cache keys.
type Keyer interface {
	ResultKey(graphHash string, opts ResultKeyOpts) string
	RenderKey(graphHash string, opts RenderKeyOpts) string
}

// DefaultKeyer produces "result:<sha256>" and "render:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ResultKey returns the key of a solve result.
func (DefaultKeyer) ResultKey(graphHash string, opts ResultKeyOpts) string {
	return hashKey("result", graphHash, opts)
}

// RenderKey returns the key of a rendered artifact.
func (DefaultKeyer) RenderKey(graphHash string, opts RenderKeyOpts) string {
	return hashKey("render", graphHash, opts)
}
