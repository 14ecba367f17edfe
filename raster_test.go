package staircase

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/tdewolff/test"
)

func TestRasterGrid(t *testing.T) {
	grid := NewRasterGrid(3, 2)
	test.T(t, len(grid.Pix), 6)
	grid.Set(2, 1, 0.5)
	test.Float(t, grid.At(2, 1), 0.5)
	test.Float(t, grid.Pix[5], 0.5)
	test.Floats(t, grid.Row(1), []float64{0, 0, 0.5})
	test.Float(t, grid.Mean(), 0.5/6.0)

	grid.Set(0, 0, -1.0)
	grid.Set(1, 0, 2.0)
	grid.Clamp()
	test.Floats(t, grid.Pix, []float64{0, 1, 0, 0, 0, 0.5})

	grid.Set(0, 0, -1.0)
	grid.Normalize()
	test.Floats(t, grid.Pix, []float64{0, 1, 0.5, 0.5, 0.5, 0.75})

	flat := NewRasterGrid(2, 2)
	flat.Pix = []float64{3, 3, 3, 3}
	flat.Normalize()
	test.Floats(t, flat.Pix, []float64{0, 0, 0, 0})
}

func TestRasterGridPanics(t *testing.T) {
	defer func() {
		test.That(t, recover() != nil)
	}()
	NewRasterGrid(0, 10)
}

func TestRasterMode(t *testing.T) {
	for _, mode := range []RasterMode{SampleCenters, AreaCoverage} {
		parsed, err := ParseRasterMode(mode.String())
		test.Error(t, err)
		test.T(t, parsed, mode)
	}
	mode, err := ParseRasterMode("")
	test.Error(t, err)
	test.T(t, mode, SampleCenters)
	_, err = ParseRasterMode("dither")
	test.That(t, err != nil)
}

func TestFitMatrix(t *testing.T) {
	m := FitMatrix(orb.Bound{Min: orb.Point{-1, 2}, Max: orb.Point{1, 3}}, 10, 4)
	test.T(t, m.Dot(Point{-1, 2}), Point{0, 0})
	test.T(t, m.Dot(Point{1, 3}), Point{10, 5})

	m = FitMatrix(orb.Bound{Min: orb.Point{2, 2}, Max: orb.Point{2, 6}}, 8, 8)
	test.T(t, m.Dot(Point{2, 6}), Point{0, 8})
}

func TestFitMatrixPanics(t *testing.T) {
	var tts = []struct {
		name   string
		bounds orb.Bound
	}{
		{"point", orb.Bound{Min: orb.Point{1, 1}, Max: orb.Point{1, 1}}},
		{"inverted", orb.Bound{Min: orb.Point{1, 1}, Max: orb.Point{0, 0}}},
		{"infinite", orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{math.Inf(1), 1}}},
		{"nan", orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{math.NaN(), math.NaN()}}},
	}
	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				test.That(t, recover() != nil, "must panic")
			}()
			FitMatrix(tt.bounds, 10, 10)
		})
	}
}

func TestRasterizeUnitSquare(t *testing.T) {
	grid := Rasterize([]Polygon{unitSquare}, 10, 10)
	test.T(t, grid.W, 10)
	test.T(t, grid.H, 10)
	for i, v := range grid.Pix {
		test.Float(t, v, 1.0, i)
	}

	// larger dimension of the grid is fit, the rest clipped
	grid = Rasterize([]Polygon{unitSquare}, 10, 5)
	for i, v := range grid.Pix {
		test.Float(t, v, 1.0, i)
	}
}

func TestRasterizeRectangle(t *testing.T) {
	// 2x1 rectangle fills the bottom half of a square grid
	grid := Rasterize([]Polygon{{{0, 0}, {2, 0}, {2, 1}, {0, 1}}}, 4, 4)
	test.Floats(t, grid.Row(0), []float64{1, 1, 1, 1})
	test.Floats(t, grid.Row(1), []float64{1, 1, 1, 1})
	test.Floats(t, grid.Row(2), []float64{0, 0, 0, 0})
	test.Floats(t, grid.Row(3), []float64{0, 0, 0, 0})
	test.String(t, grid.String(), "....\n....\n####\n####\n")
}

func TestRasterizeTriangle(t *testing.T) {
	grid := Rasterize([]Polygon{{{0, 0}, {4, 0}, {0, 4}}}, 4, 4)
	test.String(t, grid.String(), "#...\n##..\n###.\n####\n")

	// winding does not matter
	grid = Rasterize([]Polygon{{{0, 4}, {4, 0}, {0, 0}}}, 4, 4)
	test.String(t, grid.String(), "#...\n##..\n###.\n####\n")
}

func TestRasterizeMultiple(t *testing.T) {
	// two squares on a diagonal, with the bounding box covering both
	polygons := []Polygon{unitSquare, unitSquare.Transform(Identity.Translate(1, 1))}
	grid := Rasterize(polygons, 4, 4)
	test.String(t, grid.String(), "..##\n..##\n##..\n##..\n")
}

func TestRasterizeHole(t *testing.T) {
	outer := Polygon{{0, 0}, {4, 0}, {4, 4}, {0, 4}}
	hole := Polygon{{1, 1}, {1, 3}, {3, 3}, {3, 1}}
	grid := Rasterize([]Polygon{outer, hole}, 4, 4)
	test.String(t, grid.String(), "####\n#..#\n#..#\n####\n")

	grid = Rasterizer{AreaCoverage}.Rasterize([]Polygon{outer, hole}, 4, 4)
	test.FloatDiff(t, grid.At(0, 0), 1.0, 0.01)
	test.FloatDiff(t, grid.At(1, 1), 0.0, 0.01)
	test.FloatDiff(t, grid.Mean(), 0.75, 0.01)

	// the keyhole polygon cleans into a loop and its hole
	grid = Rasterize(CanvasSet{}.Clean(keyhole), 3, 3)
	test.String(t, grid.String(), "###\n#.#\n###\n")
}

func TestRasterizeEmpty(t *testing.T) {
	var tts = []struct {
		name     string
		polygons []Polygon
	}{
		{"nil", nil},
		{"point", []Polygon{{{1, 1}, {1, 1}, {1, 1}}}},
		{"line", []Polygon{{{0, 0}, {1, 0}, {2, 0}}}},
	}
	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			grid := Rasterize(tt.polygons, 5, 3)
			test.Float(t, grid.Mean(), 0.0)
		})
	}
}

func TestRasterizeCoverage(t *testing.T) {
	grid := Rasterizer{AreaCoverage}.Rasterize([]Polygon{unitSquare}, 10, 10)
	for i, v := range grid.Pix {
		test.FloatDiff(t, v, 1.0, 0.01, i)
	}

	// half covered cells along the diagonal
	grid = Rasterizer{AreaCoverage}.Rasterize([]Polygon{{{0, 0}, {4, 0}, {0, 4}}}, 4, 4)
	test.FloatDiff(t, grid.At(0, 0), 1.0, 0.01)
	test.FloatDiff(t, grid.At(3, 0), 0.5, 0.01)
	test.FloatDiff(t, grid.At(3, 3), 0.0, 0.01)
	test.FloatDiff(t, grid.Mean(), 0.5, 0.01)
}

func TestRasterizeTiling(t *testing.T) {
	polygons, err := GenerateTiles(3)
	test.Error(t, err)
	for _, mode := range []RasterMode{SampleCenters, AreaCoverage} {
		grid := Rasterizer{mode}.Rasterize(polygons, 64, 48)
		for _, v := range grid.Pix {
			test.That(t, 0.0 <= v && v <= 1.0, mode, v)
		}
		test.That(t, 0.0 < grid.Mean(), mode)
		test.That(t, grid.Mean() < 1.0, mode)
	}
}
