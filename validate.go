package staircase

import (
	"errors"
	"fmt"
	"math"
)

// Default validation tolerances.
const (
	DefaultOverlapTolerance = 1e-9
	DefaultMinArea          = 1e-12
)

// Reasons reported by an invalid ValidationResult.
const (
	ReasonNoPolygons = "no valid polygons remain"
	ReasonOverlap    = "overlap area exceeds tolerance"
)

// ErrInvalidGeometry is matched by every ValidationError.
var ErrInvalidGeometry = errors.New("invalid geometry")

// ValidationError is the error form of an invalid ValidationResult.
type ValidationError struct {
	Reason string
}

func (err *ValidationError) Error() string {
	return err.Reason
}

// Is returns true for ErrInvalidGeometry.
func (err *ValidationError) Is(target error) bool {
	return target == ErrInvalidGeometry
}

// PolygonSet cleans polygons and measures the area of their union.
type PolygonSet interface {
	// Clean returns the simple loops that make up the polygon, or nothing if it has no area. Counter clockwise loops fill and clockwise loops are holes in the preceding filling loop.
	Clean(Polygon) []Polygon

	// UnionArea returns the area covered by at least one of the polygons, as returned by Clean.
	UnionArea([]Polygon) float64
}

// ValidationResult is the outcome of validating a polygon set. It is valid when Reason is empty.
type ValidationResult struct {
	Reason string

	Polygons  []Polygon // cleaned polygons that were kept
	Dropped   int       // number of input polygons dropped as degenerate
	Area      float64   // sum of the areas of the kept polygons, minus their holes
	UnionArea float64
	Overlap   float64
}

// Valid returns true if the polygon set passed validation.
func (res ValidationResult) Valid() bool {
	return res.Reason == ""
}

// Err returns a *ValidationError for an invalid result and nil otherwise.
func (res ValidationResult) Err() error {
	if res.Valid() {
		return nil
	}
	return &ValidationError{res.Reason}
}

func (res ValidationResult) String() string {
	if res.Valid() {
		return fmt.Sprintf("Valid(polygons=%d dropped=%d area=%g overlap=%g)", len(res.Polygons), res.Dropped, res.Area, res.Overlap)
	}
	return fmt.Sprintf("Invalid(%s)", res.Reason)
}

// Validator checks that polygons do not overlap by more than a tolerance. A zero Validator uses a CanvasSet.
type Validator struct {
	Set PolygonSet
}

// Validate checks the polygons using the default PolygonSet.
func Validate(polygons []Polygon, overlapTolerance, minArea float64) ValidationResult {
	return Validator{}.Validate(polygons, overlapTolerance, minArea)
}

// Validate cleans every polygon and drops those with less than minArea, then compares the summed area against the area of the union. Gaps are allowed, but the result is invalid if the overlap exceeds overlapTolerance or nothing remains. It panics on negative tolerances or non-finite coordinates.
func (v Validator) Validate(polygons []Polygon, overlapTolerance, minArea float64) ValidationResult {
	if !(0.0 <= overlapTolerance) || !(0.0 <= minArea) {
		panic(fmt.Sprintf("tolerances must be non-negative, got overlap=%g minArea=%g", overlapTolerance, minArea))
	}
	set := v.Set
	if set == nil {
		set = CanvasSet{}
	}

	res := ValidationResult{}
	for _, polygon := range polygons {
		loops := set.Clean(polygon)
		area := NetArea(loops)
		if len(loops) == 0 || area < minArea {
			res.Dropped++
			continue
		}
		res.Polygons = append(res.Polygons, loops...)
		res.Area += area
	}
	if len(res.Polygons) == 0 {
		res.Reason = ReasonNoPolygons
		Logger().Debug("validation failed", "reason", res.Reason, "dropped", res.Dropped)
		return res
	}

	res.UnionArea = set.UnionArea(res.Polygons)
	res.Overlap = math.Max(0.0, res.Area-res.UnionArea)
	if overlapTolerance < res.Overlap {
		res.Reason = ReasonOverlap
	}
	Logger().Debug("validated polygons", "polygons", len(res.Polygons), "dropped", res.Dropped, "area", res.Area, "union", res.UnionArea, "overlap", res.Overlap, "valid", res.Valid())
	return res
}
