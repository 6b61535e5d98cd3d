package render

// gridShader colors each fragment by the parity of the cell it falls in.
// Vertices carry the mesh-relative position in SrcX/SrcY and the corner tag
// in ColorR/ColorG, so no per-cell buffer is needed. OriginParity restores
// the parity of the mesh origin cell.
const gridShader = `//kage:unit pixels

package main

var EvenColor vec4
var OddColor vec4
var LineColor vec4
var LineWidth float
var OriginParity float

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	cell := floor(srcPos)
	parity := mod(cell.x+cell.y+OriginParity, 2.0)
	if LineWidth > 0.0 {
		local := color.xy
		edge := min(min(local.x, 1.0-local.x), min(local.y, 1.0-local.y))
		if edge < LineWidth {
			return LineColor
		}
	}
	return mix(EvenColor, OddColor, parity)
}
`

// GridShaderSource returns the Kage source of the checkerboard shader.
func GridShaderSource() []byte { return []byte(gridShader) }

// ShaderUniforms returns the uniform values for p and a mesh whose origin
// cell is (ox, oy).
func ShaderUniforms(p Palette, ox, oy int) map[string]any {
	return map[string]any{
		"EvenColor":    vec4(p.Even),
		"OddColor":     vec4(p.Odd),
		"LineColor":    vec4(p.Line),
		"LineWidth":    p.LineWidth,
		"OriginParity": float32(Parity(ox, oy)),
	}
}
