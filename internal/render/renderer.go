//go:build ebiten

package render

import (
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"

	"pixeloid/internal/core"
	"pixeloid/internal/engine"
	"pixeloid/internal/mesh"
)

// maxBatchQuads keeps every batch addressable with uint16 indices.
const maxBatchQuads = (1 << 16) / mesh.VerticesPerCell

type batch struct {
	first   int // first quad
	quads   int
	indices []uint16
}

// GridRenderer draws engine frames with the checkerboard shader, falling
// back to a CPU painted image when the shader is detached or failed to
// compile.
type GridRenderer struct {
	palette Palette
	log     *slog.Logger

	effect    Effect[*ebiten.Shader]
	shaderErr error
	parked    *ebiten.Shader

	batched  *mesh.GridMesh
	batches  []batch
	vertices []ebiten.Vertex

	painter *GridPainter
}

// NewGridRenderer compiles the grid shader and attaches it. A compile
// failure is logged and leaves the renderer on the CPU path.
func NewGridRenderer(p Palette, log *slog.Logger) *GridRenderer {
	if log == nil {
		log = engine.NopLogger()
	}
	r := &GridRenderer{palette: p, log: log, painter: NewGridPainter()}
	shader, err := ebiten.NewShader(GridShaderSource())
	if err != nil {
		r.shaderErr = err
		log.Warn("grid shader failed to compile, using cpu painter", "error", err)
		return r
	}
	if err := r.effect.Attach(shader); err != nil {
		shader.Deallocate()
		log.Warn("grid shader not attached", "error", err)
	}
	return r
}

// EffectAttached reports whether the shader path is active.
func (r *GridRenderer) EffectAttached() bool { return r.effect.State() == Attached }

// SetEffect attaches or detaches the shader. A detached shader is kept so it
// can be reattached without recompiling.
func (r *GridRenderer) SetEffect(on bool) {
	switch {
	case on && r.effect.State() == Unattached && r.parked != nil:
		if err := r.effect.Attach(r.parked); err == nil {
			r.parked = nil
		}
	case !on && r.effect.State() == Attached:
		if h, err := r.effect.Detach(); err == nil {
			r.parked = h
		}
	}
	r.log.Debug("grid effect", "state", r.effect.State().String())
}

// Draw renders f.Mesh onto screen.
func (r *GridRenderer) Draw(screen *ebiten.Image, f engine.Frame) {
	if f.Mesh.Empty() {
		screen.Fill(r.palette.Even)
		return
	}
	if shader, ok := r.effect.Handle(); ok {
		r.drawShader(screen, shader, f)
		return
	}
	r.painter.Draw(screen, f, r.palette)
}

func (r *GridRenderer) prepare(m *mesh.GridMesh) {
	if r.batched == m {
		return
	}
	r.batches = r.batches[:0]
	src := m.Indices()
	for first := 0; first < m.CellCount(); first += maxBatchQuads {
		n := min(maxBatchQuads, m.CellCount()-first)
		base := uint32(first * mesh.VerticesPerCell)
		idx := make([]uint16, n*mesh.IndicesPerCell)
		for i, v := range src[first*mesh.IndicesPerCell : (first+n)*mesh.IndicesPerCell] {
			idx[i] = uint16(v - base)
		}
		r.batches = append(r.batches, batch{first: first, quads: n, indices: idx})
	}
	r.batched = m
}

func (r *GridRenderer) drawShader(screen *ebiten.Image, shader *ebiten.Shader, f engine.Frame) {
	r.prepare(f.Mesh)
	pos := f.Mesh.Positions()
	local := f.Mesh.Locals()
	cx, cy := f.Mesh.Origin()
	// screen position of the mesh origin, in float64 before narrowing
	dx := (float64(cx) - f.Bounds.Offset.X) * f.Context.Scale
	dy := (float64(cy) - f.Bounds.Offset.Y) * f.Context.Scale
	scale := f.Context.Scale

	op := &ebiten.DrawTrianglesShaderOptions{Uniforms: ShaderUniforms(r.palette, cx, cy)}
	for _, b := range r.batches {
		count := b.quads * mesh.VerticesPerCell
		if cap(r.vertices) < count {
			r.vertices = make([]ebiten.Vertex, count)
		}
		verts := r.vertices[:count]
		start := b.first * mesh.VerticesPerCell
		for i := range verts {
			px, py := pos[2*(start+i)], pos[2*(start+i)+1]
			verts[i] = ebiten.Vertex{
				DstX:   float32(dx + float64(px)*scale),
				DstY:   float32(dy + float64(py)*scale),
				SrcX:   px,
				SrcY:   py,
				ColorR: local[2*(start+i)],
				ColorG: local[2*(start+i)+1],
				ColorA: 1,
			}
		}
		screen.DrawTrianglesShader(verts, b.indices, shader, op)
	}
}

// Release drops GPU-side state derived from m. It has the regen.ReleaseFunc
// shape so the engine can call it after a swap.
func (r *GridRenderer) Release(m *mesh.GridMesh) error {
	if r.batched == m {
		r.batched = nil
		r.batches = r.batches[:0]
	}
	r.painter.forget(m)
	return nil
}

// Close frees the shader and painter image.
func (r *GridRenderer) Close() {
	r.effect.Release()
	if r.parked != nil {
		r.parked.Deallocate()
		r.parked = nil
	}
	r.painter.Close()
}

// GridPainter uploads one pixel per cell and scales the image onto the
// screen.
type GridPainter struct {
	grid  *core.ByteGrid
	img   *ebiten.Image
	built *mesh.GridMesh
}

// NewGridPainter allocates an empty painter.
func NewGridPainter() *GridPainter {
	return &GridPainter{grid: core.NewByteGrid(1, 1)}
}

// Draw paints f.Mesh's range with nearest filtering.
func (gp *GridPainter) Draw(dst *ebiten.Image, f engine.Frame, p Palette) {
	r := f.Mesh.Range()
	if gp.built != f.Mesh {
		pix := ParityImage(gp.grid, r, p)
		if gp.img == nil || gp.img.Bounds().Dx() != gp.grid.W || gp.img.Bounds().Dy() != gp.grid.H {
			if gp.img != nil {
				gp.img.Deallocate()
			}
			gp.img = ebiten.NewImage(gp.grid.W, gp.grid.H)
		}
		gp.img.WritePixels(pix.Pix)
		gp.built = f.Mesh
	}

	scale := f.Context.Scale
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate((float64(r.StartX)-f.Bounds.Offset.X)*scale, (float64(r.StartY)-f.Bounds.Offset.Y)*scale)
	dst.DrawImage(gp.img, op)
}

func (gp *GridPainter) forget(m *mesh.GridMesh) {
	if gp.built == m {
		gp.built = nil
	}
}

// Close frees the painter image.
func (gp *GridPainter) Close() {
	if gp.img != nil {
		gp.img.Deallocate()
		gp.img = nil
	}
	gp.built = nil
}
