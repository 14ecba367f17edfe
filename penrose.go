package staircase

import (
	"fmt"
)

// DefaultLevel is the number of inflation steps used for rendering.
const DefaultLevel = 4

var tilingCache = NewTilingCache()

// Penrose renders a Penrose P3 rhomb tiling. The tiling is generated, filtered of degenerate rhombs and validated before it is rasterized; a tiling that fails validation is never rendered.
type Penrose struct {
	Level            int
	OverlapTolerance float64
	MinArea          float64
	Mode             RasterMode

	Validator Validator    // zero value uses a CanvasSet
	Cache     *TilingCache // nil uses a package-wide cache
}

// DefaultPenrose returns the tiling renderer at DefaultLevel with the default tolerances.
func DefaultPenrose() Penrose {
	return Penrose{
		Level:            DefaultLevel,
		OverlapTolerance: DefaultOverlapTolerance,
		MinArea:          DefaultMinArea,
	}
}

// GenerateTiles returns the validated polygons of the tiling at the given level using the default tolerances.
func GenerateTiles(level int) ([]Polygon, error) {
	p := DefaultPenrose()
	p.Level = level
	return p.Tiles()
}

// Tiles returns the validated, cleaned polygons of the tiling. It returns an error wrapping a *ValidationError if the tiling fails validation. It panics for a negative level.
func (p Penrose) Tiles() ([]Polygon, error) {
	cache := p.Cache
	if cache == nil {
		cache = tilingCache
	}
	tiling := cache.Get(p.Level)

	polygons := make([]Polygon, 0, tiling.Len())
	for _, polygon := range tiling.Polygons() {
		if polygon.Area() < p.MinArea {
			continue
		}
		polygons = append(polygons, polygon)
	}
	if dropped := tiling.Len() - len(polygons); 0 < dropped {
		Logger().Debug("dropped degenerate rhombs", "level", p.Level, "dropped", dropped)
	}

	res := p.Validator.Validate(polygons, p.OverlapTolerance, p.MinArea)
	if !res.Valid() {
		Logger().Warn("penrose geometry failed validation", "level", p.Level, "reason", res.Reason, "overlap", res.Overlap)
		return nil, fmt.Errorf("Penrose geometry failed validation: %w", res.Err())
	}
	return res.Polygons, nil
}

// Render returns the validated tiling rasterized onto a w by h grid.
func (p Penrose) Render(w, h int) (*RasterGrid, error) {
	polygons, err := p.Tiles()
	if err != nil {
		return nil, err
	}
	grid := Rasterizer{p.Mode}.Rasterize(polygons, w, h)
	Logger().Debug("rendered penrose tiling", "level", p.Level, "polygons", len(polygons), "width", w, "height", h, "mean", grid.Mean())
	return grid, nil
}
