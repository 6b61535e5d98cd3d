// Package regen decides when the grid mesh must be rebuilt and publishes new
// meshes by swapping them in whole.
package regen

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"pixeloid/internal/cull"
	"pixeloid/internal/mesh"
	"pixeloid/internal/space"
)

// DefaultTileSize is the coarse signature tile, measured in screen pixels
// rather than pixeloids. At scale s one tile spans DefaultTileSize/s cells,
// which is why RequiredPadding divides by the minimum scale.
const DefaultTileSize = 50

// Mode selects how the viewport part of a signature is computed.
type Mode int

const (
	// ExactRange keys on the culled CellRange itself.
	ExactRange Mode = iota
	// CoarseTile keys on the corners snapped to TileSize screen pixels.
	CoarseTile
)

func (m Mode) String() string {
	switch m {
	case ExactRange:
		return "exact"
	case CoarseTile:
		return "coarse"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps "exact" and "coarse" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "exact", "":
		return ExactRange, nil
	case "coarse":
		return CoarseTile, nil
	}
	return 0, fmt.Errorf("regen: unknown signature mode %q", s)
}

// Key is the viewport fingerprint: four snapped corner values in coarse
// mode, the range bounds in exact mode.
type Key [4]int64

func (k Key) String() string {
	return fmt.Sprintf("%d:%d:%d:%d", k[0], k[1], k[2], k[3])
}

// Signature gates rebuilds.
type Signature struct {
	Scale float64
	Key   Key
}

// Config tunes a Cache.
type Config struct {
	Mode     Mode
	// TileSize is the CoarseTile snap width in screen pixels.
	TileSize float64
}

// RequiredPadding returns the smallest padding for which a coarse-tile cache
// never exposes unbuilt cells at scales of at least minScale. A corner moves
// less than tile/scale cells before its snapped value changes.
func RequiredPadding(tile, minScale float64) int {
	if !(tile > 0) || !(minScale > 0) {
		return 0
	}
	return int(math.Ceil(tile / minScale))
}

// Cache remembers the last published signature and mesh.
type Cache struct {
	cfg Config

	lastScale float64
	lastKey   Key
	primed    bool

	current atomic.Pointer[mesh.GridMesh]
}

// New returns a Cache. A non-positive tile size falls back to DefaultTileSize.
func New(cfg Config) *Cache {
	if !(cfg.TileSize > 0) {
		cfg.TileSize = DefaultTileSize
	}
	return &Cache{cfg: cfg}
}

// Config returns the effective configuration.
func (c *Cache) Config() Config { return c.cfg }

func snap(v, scale, tile float64) int64 {
	return int64(math.Floor(v * scale / tile))
}

// Signature fingerprints a frame's viewport.
func (c *Cache) Signature(corners space.Corners, r cull.CellRange, scale float64) Signature {
	if c.cfg.Mode == CoarseTile {
		t := c.cfg.TileSize
		return Signature{Scale: scale, Key: Key{
			snap(corners.TopLeft.X, scale, t),
			snap(corners.TopLeft.Y, scale, t),
			snap(corners.BottomRight.X, scale, t),
			snap(corners.BottomRight.Y, scale, t),
		}}
	}
	return Signature{Scale: scale, Key: Key{
		int64(r.StartX), int64(r.StartY), int64(r.EndX), int64(r.EndY),
	}}
}

// Stale reports whether sig requires a rebuild: nothing has been published
// yet, the scale changed, or the key changed.
func (c *Cache) Stale(sig Signature) bool {
	return !c.primed || sig.Scale != c.lastScale || sig.Key != c.lastKey
}

// LastScale returns the scale of the last published signature.
func (c *Cache) LastScale() float64 { return c.lastScale }

// LastKey returns the key of the last published signature.
func (c *Cache) LastKey() Key { return c.lastKey }

// Current returns the published mesh, or nil before the first publish.
func (c *Cache) Current() *mesh.GridMesh { return c.current.Load() }

// ReleaseFunc frees backend resources tied to a mesh that is no longer
// published.
type ReleaseFunc func(*mesh.GridMesh) error

// ErrReleaseFailed wraps errors returned by a ReleaseFunc.
var ErrReleaseFailed = errors.New("regen: release of previous mesh failed")

// Publish installs m under sig and then releases the previous mesh. The new
// mesh is installed even if release fails; the failure is returned wrapped in
// ErrReleaseFailed for the caller to log.
func (c *Cache) Publish(sig Signature, m *mesh.GridMesh, release ReleaseFunc) error {
	old := c.current.Swap(m)
	c.lastScale = sig.Scale
	c.lastKey = sig.Key
	c.primed = true
	if old == nil || old == m || release == nil {
		return nil
	}
	if err := release(old); err != nil {
		return fmt.Errorf("%w: generation %d: %w", ErrReleaseFailed, old.Generation(), err)
	}
	return nil
}

// Reset forgets the last signature so the next frame rebuilds. The published
// mesh stays in place until the next Publish.
func (c *Cache) Reset() {
	c.primed = false
}
