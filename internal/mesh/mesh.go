// Package mesh builds the tessellated surface that covers a cell range.
package mesh

import (
	"errors"
	"fmt"
	"math"

	"pixeloid/internal/cull"
)

// ErrTooManyCells is returned when a range exceeds the builder's ceiling.
var ErrTooManyCells = errors.New("mesh: cell range too large")

// DefaultMaxCells bounds a single build.
const DefaultMaxCells = 1 << 21

// maxSpan is the widest range whose relative positions float32 holds exactly.
const maxSpan = 1 << 24

const (
	// VerticesPerCell is the number of vertices emitted for one cell.
	VerticesPerCell = 4
	// IndicesPerCell is the number of triangle indices emitted for one cell.
	IndicesPerCell = 6
)

// corner tags in emission order: (0,0), (1,0), (1,1), (0,1).
var cornerTags = [VerticesPerCell][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// quad triangles relative to the quad's first vertex.
var quadIndices = [IndicesPerCell]uint32{0, 1, 2, 0, 2, 3}

// GridMesh is an immutable snapshot of the geometry covering a CellRange.
// Positions are pixeloid coordinates relative to Origin, two floats per
// vertex, so they stay exact however far the range is from zero. Locals are
// the per-vertex corner tags in [0,1], two floats per vertex. Callers must
// treat the slices returned by the accessors as read-only.
type GridMesh struct {
	cells      cull.CellRange
	generation uint64
	positions  []float32
	locals     []float32
	indices    []uint32
}

// Range returns the cell range the mesh covers.
func (m *GridMesh) Range() cull.CellRange { return m.cells }

// Generation returns the build sequence number assigned by the Builder.
func (m *GridMesh) Generation() uint64 { return m.generation }

// Origin returns the cell that position (0,0) refers to, the range's
// top-left cell.
func (m *GridMesh) Origin() (int, int) { return m.cells.StartX, m.cells.StartY }

// Positions returns the flattened x,y positions relative to Origin.
func (m *GridMesh) Positions() []float32 { return m.positions }

// Locals returns the flattened corner tags.
func (m *GridMesh) Locals() []float32 { return m.locals }

// Indices returns the triangle list.
func (m *GridMesh) Indices() []uint32 { return m.indices }

// VertexCount returns the number of vertices.
func (m *GridMesh) VertexCount() int { return len(m.positions) / 2 }

// IndexCount returns the number of indices.
func (m *GridMesh) IndexCount() int { return len(m.indices) }

// CellCount returns the number of quads.
func (m *GridMesh) CellCount() int { return len(m.positions) / (2 * VerticesPerCell) }

// Empty reports whether the mesh has no geometry.
func (m *GridMesh) Empty() bool { return m == nil || len(m.positions) == 0 }

// QuadCell returns the integer cell of quad q, recovered from its first
// vertex.
func (m *GridMesh) QuadCell(q int) (int, int) {
	base := q * VerticesPerCell * 2
	ox, oy := m.Origin()
	return ox + int(math.Floor(float64(m.positions[base]))), oy + int(math.Floor(float64(m.positions[base+1])))
}

// Builder produces GridMesh snapshots. The zero value is ready to use with
// DefaultMaxCells.
type Builder struct {
	// MaxCells caps the cells per build; zero means DefaultMaxCells.
	MaxCells int

	generation uint64
}

// Build emits one unit quad per cell of r in row-major order. An empty range
// yields an empty, non-nil mesh. Ranges wider or taller than 2^24 cells
// cannot be positioned exactly in float32 and fail with ErrTooManyCells.
func (b *Builder) Build(r cull.CellRange) (*GridMesh, error) {
	limit := b.MaxCells
	if limit <= 0 {
		limit = DefaultMaxCells
	}
	cells := r.Cells()
	if cells > limit {
		return nil, fmt.Errorf("%w: %v holds more than %d cells", ErrTooManyCells, r, limit)
	}
	if r.Width() > maxSpan || r.Height() > maxSpan {
		return nil, fmt.Errorf("%w: %v spans more than %d cells", ErrTooManyCells, r, maxSpan)
	}
	b.generation++
	m := &GridMesh{cells: r, generation: b.generation}
	if cells == 0 {
		return m, nil
	}

	m.positions = make([]float32, 0, cells*VerticesPerCell*2)
	m.locals = make([]float32, 0, cells*VerticesPerCell*2)
	m.indices = make([]uint32, 0, cells*IndicesPerCell)

	var base uint32
	for y := 0; y < r.Height(); y++ {
		fy := float32(y)
		for x := 0; x < r.Width(); x++ {
			fx := float32(x)
			for _, tag := range cornerTags {
				m.positions = append(m.positions, fx+tag[0], fy+tag[1])
				m.locals = append(m.locals, tag[0], tag[1])
			}
			for _, i := range quadIndices {
				m.indices = append(m.indices, base+i)
			}
			base += VerticesPerCell
		}
	}
	return m, nil
}
