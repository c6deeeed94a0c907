// Package id provides prefixed ULID generation for the desktop backend.
//
// IDs are lexicographically sortable and carry a type prefix so logs stay
// readable: win_01HX..., mini_01HX..., layout_01HX..., req_01HX...
//
// Generation uses monotonic entropy, so IDs minted within the same
// millisecond still sort in creation order.
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// WindowID identifies a regular desktop window
type WindowID string

// MiniAppID identifies a mini-app panel instance
type MiniAppID string

// LayoutID identifies a saved desktop layout
type LayoutID string

// RequestID identifies an API request
type RequestID string

const (
	WindowPrefix  = "win"
	MiniAppPrefix = "mini"
	LayoutPrefix  = "layout"
	RequestPrefix = "req"
)

// Generator generates ULIDs with optional prefixes
type Generator struct {
	mu      sync.Mutex
	entropy io.Reader
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the shared generator instance
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator with monotonic, cryptographically seeded entropy
func NewGenerator() *Generator {
	return &Generator{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// NewGeneratorWithEntropy creates a generator with a custom entropy source.
// Useful for deterministic tests.
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{
		entropy: entropy,
	}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.mu.Lock()
	defer g.mu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateString creates a new ULID as a string
func (g *Generator) GenerateString() string {
	return g.Generate().String()
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.GenerateString())
}

// NewWindowID generates a new window ID
func NewWindowID() WindowID {
	return WindowID(Default().GenerateWithPrefix(WindowPrefix))
}

// NewMiniAppID generates a new mini-app ID
func NewMiniAppID() MiniAppID {
	return MiniAppID(Default().GenerateWithPrefix(MiniAppPrefix))
}

// NewLayoutID generates a new layout ID
func NewLayoutID() LayoutID {
	return LayoutID(Default().GenerateWithPrefix(LayoutPrefix))
}

// NewRequestID generates a new request ID
func NewRequestID() RequestID {
	return RequestID(Default().GenerateWithPrefix(RequestPrefix))
}

func (id WindowID) String() string  { return string(id) }
func (id MiniAppID) String() string { return string(id) }
func (id LayoutID) String() string  { return string(id) }
func (id RequestID) String() string { return string(id) }

// SplitPrefixed splits "prefix_ULID" and validates the ULID part
func SplitPrefixed(id string) (prefix string, value ulid.ULID, err error) {
	for i := len(id) - 1; i >= 0; i-- {
		if id[i] == '_' {
			value, err = ulid.Parse(id[i+1:])
			if err != nil {
				return "", ulid.ULID{}, fmt.Errorf("invalid id %q: %w", id, err)
			}
			return id[:i], value, nil
		}
	}
	return "", ulid.ULID{}, fmt.Errorf("invalid id %q: missing prefix", id)
}
