package staircase

import (
	"errors"
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func TestValidate(t *testing.T) {
	shifted := func(p Polygon, dx, dy float64) Polygon {
		return p.Transform(Identity.Translate(dx, dy))
	}
	var tts = []struct {
		name      string
		polygons  []Polygon
		tolerance float64
		reason    string
		area      float64
		dropped   int
	}{
		{"unit square", []Polygon{unitSquare}, DefaultOverlapTolerance, "", 1.0, 0},
		{"identical squares", []Polygon{unitSquare, unitSquare}, 1e-8, ReasonOverlap, 2.0, 0},
		{"half overlap", []Polygon{unitSquare, shifted(unitSquare, 0.5, 0)}, 1e-8, ReasonOverlap, 2.0, 0},
		{"half overlap relaxed", []Polygon{unitSquare, shifted(unitSquare, 0.5, 0)}, 0.5, "", 2.0, 0},
		{"gap", []Polygon{unitSquare, shifted(unitSquare, 2, 0)}, DefaultOverlapTolerance, "", 2.0, 0},
		{"coincident dropped", []Polygon{{{1, 1}, {1, 1}, {1, 1}, {1, 1}}, unitSquare}, DefaultOverlapTolerance, "", 1.0, 1},
		{"tiny dropped", []Polygon{{{0, 0}, {1e-7, 0}, {1e-7, 1e-7}}, unitSquare}, DefaultOverlapTolerance, "", 1.0, 1},
		{"only degenerate", []Polygon{{{1, 1}, {1, 1}, {1, 1}, {1, 1}}}, DefaultOverlapTolerance, ReasonNoPolygons, 0.0, 1},
		{"empty", nil, DefaultOverlapTolerance, ReasonNoPolygons, 0.0, 0},
		{"bowtie", []Polygon{{{0, 0}, {1, 1}, {1, 0}, {0, 1}}}, DefaultOverlapTolerance, "", 0.5, 0},
	}
	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.polygons, tt.tolerance, DefaultMinArea)
			test.String(t, res.Reason, tt.reason)
			test.T(t, res.Valid(), tt.reason == "")
			test.Float(t, res.Area, tt.area)
			test.T(t, res.Dropped, tt.dropped)
			test.That(t, res.Overlap <= res.Area, res)
		})
	}
}

func TestValidateOverlap(t *testing.T) {
	res := Validate([]Polygon{unitSquare, unitSquare.Transform(Identity.Translate(0.5, 0.5))}, 1e-9, 0.0)
	test.Float(t, res.UnionArea, 1.75)
	test.Float(t, res.Overlap, 0.25)
	test.T(t, len(res.Polygons), 2)
}

func TestValidateIdempotent(t *testing.T) {
	inputs := [][]Polygon{
		{unitSquare},
		{{{0, 0}, {1, 1}, {1, 0}, {0, 1}}, {{5, 5}, {6, 5}, {6, 5}, {6, 6}}},
		Generate(2).Polygons(),
	}
	for _, polygons := range inputs {
		res := Validate(polygons, DefaultOverlapTolerance, DefaultMinArea)
		test.That(t, res.Valid(), res)
		again := Validate(res.Polygons, DefaultOverlapTolerance, DefaultMinArea)
		test.That(t, again.Valid(), again)
		test.Float(t, again.Area, res.Area)
		test.T(t, again.Polygons, res.Polygons)
		test.T(t, again.Dropped, 0)
	}
}

func TestValidateTiling(t *testing.T) {
	for level := 0; level <= 4; level++ {
		tiling := Generate(level)
		res := Validate(tiling.Polygons(), 1e-9, DefaultMinArea)
		test.That(t, res.Valid(), level, res)
		test.FloatDiff(t, res.Area, tiling.Area(), 1e-9, level)
		test.FloatDiff(t, res.UnionArea, tiling.Area(), 1e-9, level)
	}
}

func TestValidationError(t *testing.T) {
	res := Validate([]Polygon{unitSquare, unitSquare}, 1e-8, DefaultMinArea)
	err := res.Err()
	test.That(t, err != nil)
	test.That(t, errors.Is(err, ErrInvalidGeometry))
	test.String(t, err.Error(), ReasonOverlap)

	var verr *ValidationError
	test.That(t, errors.As(err, &verr))
	test.String(t, verr.Reason, ReasonOverlap)
	test.String(t, res.String(), "Invalid(overlap area exceeds tolerance)")

	test.Error(t, Validate([]Polygon{unitSquare}, 0.0, 0.0).Err())
}

type failingSet struct{}

func (failingSet) Clean(p Polygon) []Polygon            { return []Polygon{p} }
func (failingSet) UnionArea(polygons []Polygon) float64 { return 0.0 }

func TestValidatorPolygonSet(t *testing.T) {
	res := Validator{failingSet{}}.Validate([]Polygon{unitSquare}, 1e-9, 0.0)
	test.String(t, res.Reason, ReasonOverlap)
	test.Float(t, res.Overlap, 1.0)
}

func TestValidateContractViolation(t *testing.T) {
	var tts = []struct {
		name string
		f    func()
	}{
		{"negative tolerance", func() { Validate([]Polygon{unitSquare}, -1.0, 0.0) }},
		{"negative min area", func() { Validate([]Polygon{unitSquare}, 0.0, -1.0) }},
		{"non-finite", func() { Validate([]Polygon{{{0, 0}, {1, 0}, {1, math.Inf(1)}}}, 0.0, 0.0) }},
	}
	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				test.That(t, recover() != nil, "must panic")
			}()
			tt.f()
		})
	}
}
