package engine

import (
	"fmt"
	"strconv"

	"pixeloid/internal/core"
	"pixeloid/internal/regen"
)

// Parameters reports configuration and counters for the HUD.
func (e *Engine) Parameters() core.ParameterSnapshot {
	f := e.last
	s := e.stats
	cacheCfg := e.cfg.Cache

	view := core.ParameterGroup{
		Name: "Viewport",
		Params: []core.Parameter{
			{Key: "camera", Label: "Camera", Type: core.ParamTypeString,
				Value: fmt.Sprintf("%.2f, %.2f", f.Context.Camera.X, f.Context.Camera.Y)},
			{Key: "scale", Label: "Scale", Type: core.ParamTypeFloat,
				Value: strconv.FormatFloat(f.Context.Scale, 'f', -1, 64)},
			{Key: "viewport", Label: "Viewport", Type: core.ParamTypeString,
				Value: fmt.Sprintf("%.0fx%.0f", f.Context.Viewport.W, f.Context.Viewport.H)},
			{Key: "range", Label: "Cells", Type: core.ParamTypeString, Value: f.Range.String()},
		},
	}

	cache := core.ParameterGroup{
		Name:    "Regeneration",
		Summary: cacheCfg.Mode.String(),
		Params: []core.Parameter{
			{Key: "padding", Label: "Padding", Type: core.ParamTypeInt, Value: strconv.Itoa(f.Context.Padding)},
			{Key: "key", Label: "Key", Type: core.ParamTypeString, Value: e.cache.LastKey().String()},
		},
	}
	if cacheCfg.Mode == regen.CoarseTile {
		cache.Params = append(cache.Params,
			core.Parameter{Key: "tile", Label: "Tile", Type: core.ParamTypeFloat,
				Value: strconv.FormatFloat(cacheCfg.TileSize, 'f', -1, 64)},
			core.Parameter{Key: "required_padding", Label: "Needs", Type: core.ParamTypeInt,
				Value: strconv.Itoa(regen.RequiredPadding(cacheCfg.TileSize, f.Context.Scale))},
		)
	}

	cells := 0
	if m := e.cache.Current(); m != nil {
		cells = m.CellCount()
	}
	counters := core.ParameterGroup{
		Name: "Geometry",
		Params: []core.Parameter{
			{Key: "frames", Label: "Frames", Type: core.ParamTypeInt, Value: strconv.FormatUint(s.Frames, 10)},
			{Key: "rebuilds", Label: "Rebuilds", Type: core.ParamTypeInt, Value: strconv.FormatUint(s.Rebuilds, 10)},
			{Key: "misses", Label: "Misses", Type: core.ParamTypeInt, Value: strconv.FormatUint(s.CoverageMisses, 10)},
			{Key: "mesh_cells", Label: "Mesh", Type: core.ParamTypeInt, Value: strconv.Itoa(cells)},
			{Key: "build_time", Label: "Build", Type: core.ParamTypeString, Value: s.LastBuild.String()},
			{Key: "rebuilt", Label: "Rebuilt", Type: core.ParamTypeBool, Value: strconv.FormatBool(f.Rebuilt)},
		},
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{view, cache, counters}}
}
