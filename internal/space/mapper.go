package space

import "sort"

// Mapper converts between vertex and pixeloid space for a given offset.
type Mapper interface {
	ToVertex(p Pixeloid, offset Pixeloid) Vertex
	ToPixeloid(v Vertex, offset Pixeloid) Pixeloid
}

// Arithmetic is the reference Mapper: plain addition and subtraction.
type Arithmetic struct{}

// ToVertex implements Mapper.
func (Arithmetic) ToVertex(p Pixeloid, offset Pixeloid) Vertex { return PixeloidToVertex(p, offset) }

// ToPixeloid implements Mapper.
func (Arithmetic) ToPixeloid(v Vertex, offset Pixeloid) Pixeloid { return VertexToPixeloid(v, offset) }

// Memo caches Arithmetic results for the current offset. A different offset
// or a full table drops every entry, so a hit always equals what Arithmetic
// would return.
type Memo struct {
	limit  int
	offset Pixeloid
	toV    map[Pixeloid]Vertex
	toP    map[Vertex]Pixeloid

	hits, misses int
}

// NewMemo returns a Memo holding at most limit entries per direction.
func NewMemo(limit int) *Memo {
	if limit <= 0 {
		limit = 4096
	}
	return &Memo{
		limit: limit,
		toV:   make(map[Pixeloid]Vertex),
		toP:   make(map[Vertex]Pixeloid),
	}
}

func (m *Memo) rebase(offset Pixeloid) {
	if offset == m.offset {
		return
	}
	m.offset = offset
	clear(m.toV)
	clear(m.toP)
}

// ToVertex implements Mapper.
func (m *Memo) ToVertex(p Pixeloid, offset Pixeloid) Vertex {
	m.rebase(offset)
	if v, ok := m.toV[p]; ok {
		m.hits++
		return v
	}
	m.misses++
	v := PixeloidToVertex(p, offset)
	if len(m.toV) >= m.limit {
		clear(m.toV)
	}
	m.toV[p] = v
	return v
}

// ToPixeloid implements Mapper.
func (m *Memo) ToPixeloid(v Vertex, offset Pixeloid) Pixeloid {
	m.rebase(offset)
	if p, ok := m.toP[v]; ok {
		m.hits++
		return p
	}
	m.misses++
	p := VertexToPixeloid(v, offset)
	if len(m.toP) >= m.limit {
		clear(m.toP)
	}
	m.toP[v] = p
	return p
}

// Stats returns the hit and miss counters.
func (m *Memo) Stats() (hits, misses int) { return m.hits, m.misses }

// MapperFactory constructs a Mapper.
type MapperFactory func() Mapper

var mappers = map[string]MapperFactory{
	"arithmetic": func() Mapper { return Arithmetic{} },
	"memo":       func() Mapper { return NewMemo(0) },
}

// RegisterMapper adds a Mapper factory under the provided name.
func RegisterMapper(name string, f MapperFactory) {
	if name == "" || f == nil {
		return
	}
	mappers[name] = f
}

// LookupMapper returns the factory registered under name.
func LookupMapper(name string) (MapperFactory, bool) {
	f, ok := mappers[name]
	return f, ok
}

// MapperNames lists the registered mapper names in sorted order.
func MapperNames() []string {
	names := make([]string, 0, len(mappers))
	for name := range mappers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
