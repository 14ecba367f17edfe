package staircase

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
)

// Axis is the direction along which panel slices follow each other.
type Axis int

// see Axis
const (
	AxisX Axis = iota // left to right
	AxisY             // bottom to top
)

func (axis Axis) String() string {
	switch axis {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	}
	return fmt.Sprintf("Axis(%d)", int(axis))
}

// ParseAxis parses "x" or "y".
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "", "x", "X":
		return AxisX, nil
	case "y", "Y":
		return AxisY, nil
	}
	return 0, fmt.Errorf("unknown axis %q", s)
}

// DefaultBlendFraction is the default fraction of a slice used to cross-fade into its neighbours.
const DefaultBlendFraction = 0.15

// Panel composes several themes into equally sized slices with smooth transitions between them.
type Panel struct {
	Themes        []string
	Width, Height int
	BlendFraction float64 // in [0,0.5]
	Axis          Axis
}

// Build renders every theme concurrently and composes the slices. Seams are cross-faded over BlendFraction of a slice on either side using a cosine weight.
func (p Panel) Build(ctx context.Context) (*RasterGrid, error) {
	if len(p.Themes) == 0 {
		return nil, fmt.Errorf("panel has no themes")
	} else if p.Width < 1 || p.Height < 1 {
		return nil, fmt.Errorf("invalid panel size %dx%d", p.Width, p.Height)
	} else if !(0.0 <= p.BlendFraction && p.BlendFraction <= 0.5) {
		return nil, fmt.Errorf("blend fraction must be in [0,0.5], got %g", p.BlendFraction)
	} else if p.Axis != AxisX && p.Axis != AxisY {
		return nil, fmt.Errorf("invalid axis %v", p.Axis)
	}

	gens := make([]Generator, len(p.Themes))
	for i, name := range p.Themes {
		gen, err := Theme(name)
		if err != nil {
			return nil, err
		}
		gens[i] = gen
	}

	dim := max(p.Width, p.Height)
	imgs := make([]*RasterGrid, len(gens))
	g, ctx := errgroup.WithContext(ctx)
	for i, gen := range gens {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := gen(dim, dim)
			if err != nil {
				return fmt.Errorf("theme %s: %w", p.Themes[i], err)
			}
			imgs[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	n := len(imgs)
	length := p.Width
	if p.Axis == AxisY {
		length = p.Height
	}
	slice := length / n
	blend := int(p.BlendFraction * float64(slice))

	panel := NewRasterGrid(p.Width, p.Height)
	for k, img := range imgs {
		end := (k + 1) * slice
		if k == n-1 {
			end = length // remainder goes to the last slice
		}
		p.copySlice(panel, k*slice, end, func(i, j int) float64 {
			return img.At(i, j)
		})
	}
	for k := 0; k+1 < n; k++ {
		mid := (k + 1) * slice
		a, b := imgs[k], imgs[k+1]
		p.copySlice(panel, mid-blend, mid+blend, func(i, j int) float64 {
			pos := i
			if p.Axis == AxisY {
				pos = j
			}
			w := 0.0
			if 1 < 2*blend {
				w = float64(pos-(mid-blend)) / float64(2*blend-1)
			}
			return cosineMix(a.At(i, j), b.At(i, j), w)
		})
	}
	panel.Clamp()
	Logger().Info("built panel", "themes", p.Themes, "width", p.Width, "height", p.Height, "axis", p.Axis)
	return panel, nil
}

// copySlice sets the cells in [start,end) along the panel's axis to f.
func (p Panel) copySlice(panel *RasterGrid, start, end int, f func(i, j int) float64) {
	if p.Axis == AxisX {
		for j := 0; j < panel.H; j++ {
			for i := max(0, start); i < min(end, panel.W); i++ {
				panel.Set(i, j, f(i, j))
			}
		}
	} else {
		for j := max(0, start); j < min(end, panel.H); j++ {
			for i := 0; i < panel.W; i++ {
				panel.Set(i, j, f(i, j))
			}
		}
	}
}

// cosineMix blends from a to b with a smoothstep weight of w in [0,1].
func cosineMix(a, b, w float64) float64 {
	weight := (1.0 - math.Cos(math.Pi*w)) / 2.0
	return (1.0-weight)*a + weight*b
}
