package staircase

import (
	"context"
	"errors"
	"testing"

	"github.com/tdewolff/test"
)

func init() {
	RegisterTheme("test_zero", constantTheme(0.0))
	RegisterTheme("test_one", constantTheme(1.0))
	RegisterTheme("test_fail", func(w, h int) (*RasterGrid, error) {
		return nil, errors.New("out of ink")
	})
}

func TestAxis(t *testing.T) {
	for _, axis := range []Axis{AxisX, AxisY} {
		parsed, err := ParseAxis(axis.String())
		test.Error(t, err)
		test.T(t, parsed, axis)
	}
	_, err := ParseAxis("z")
	test.That(t, err != nil)
	test.String(t, Axis(5).String(), "Axis(5)")
}

func TestPanelBlend(t *testing.T) {
	seam := []float64{0, 0, 0, 0, 0, 0, 0, 0, 0, 0.25, 0.75, 1, 1, 1, 1, 1, 1, 1, 1, 1}

	p := Panel{Themes: []string{"test_zero", "test_one"}, Width: 20, Height: 4, BlendFraction: 0.25, Axis: AxisX}
	grid, err := p.Build(context.Background())
	test.Error(t, err)
	for j := 0; j < grid.H; j++ {
		test.Floats(t, grid.Row(j), seam, j)
	}

	p = Panel{Themes: []string{"test_zero", "test_one"}, Width: 3, Height: 20, BlendFraction: 0.25, Axis: AxisY}
	grid, err = p.Build(context.Background())
	test.Error(t, err)
	for j := 0; j < grid.H; j++ {
		test.Floats(t, grid.Row(j), []float64{seam[j], seam[j], seam[j]}, j)
	}
}

func TestPanelSharp(t *testing.T) {
	p := Panel{Themes: []string{"test_one", "test_zero", "test_one"}, Width: 7, Height: 1}
	grid, err := p.Build(context.Background())
	test.Error(t, err)
	test.Floats(t, grid.Row(0), []float64{1, 1, 0, 0, 1, 1, 1})
}

func TestPanelMonotonic(t *testing.T) {
	p := Panel{Themes: []string{"test_zero", "test_one"}, Width: 200, Height: 2, BlendFraction: DefaultBlendFraction}
	grid, err := p.Build(context.Background())
	test.Error(t, err)
	row := grid.Row(0)
	for i := 1; i < len(row); i++ {
		test.That(t, row[i-1] <= row[i], i)
	}
	test.Float(t, row[0], 0.0)
	test.Float(t, row[len(row)-1], 1.0)
}

func TestPanelThemes(t *testing.T) {
	p := Panel{Themes: []string{"qec", "condensed_matter", "ligo"}, Width: 60, Height: 30, BlendFraction: 0.1}
	grid, err := p.Build(context.Background())
	test.Error(t, err)
	test.T(t, grid.W, 60)
	test.T(t, grid.H, 30)
	for _, v := range grid.Pix {
		test.That(t, 0.0 <= v && v <= 1.0, v)
	}
}

func TestPanelErrors(t *testing.T) {
	var tts = []struct {
		name  string
		panel Panel
	}{
		{"no themes", Panel{Width: 10, Height: 10}},
		{"size", Panel{Themes: []string{"test_one"}, Width: 0, Height: 10}},
		{"blend", Panel{Themes: []string{"test_one"}, Width: 10, Height: 10, BlendFraction: 0.6}},
		{"axis", Panel{Themes: []string{"test_one"}, Width: 10, Height: 10, Axis: Axis(3)}},
		{"unknown", Panel{Themes: []string{"test_one", "cosmology"}, Width: 10, Height: 10}},
		{"generator", Panel{Themes: []string{"test_one", "test_fail"}, Width: 10, Height: 10}},
	}
	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			grid, err := tt.panel.Build(context.Background())
			test.That(t, err != nil)
			test.That(t, grid == nil)
		})
	}

	_, err := Panel{Themes: []string{"cosmology"}, Width: 10, Height: 10}.Build(context.Background())
	test.That(t, errors.Is(err, ErrUnknownTheme))
	_, err = Panel{Themes: []string{"test_fail"}, Width: 10, Height: 10}.Build(context.Background())
	test.String(t, err.Error(), "theme test_fail: out of ink")
}

func TestPanelCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Panel{Themes: []string{"test_one"}, Width: 10, Height: 10}.Build(ctx)
	test.That(t, errors.Is(err, context.Canceled), err)
}

func TestCosineMix(t *testing.T) {
	test.Float(t, cosineMix(2.0, 4.0, 0.0), 2.0)
	test.Float(t, cosineMix(2.0, 4.0, 0.5), 3.0)
	test.Float(t, cosineMix(2.0, 4.0, 1.0), 4.0)
}
