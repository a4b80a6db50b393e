package geometry

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// ShapeList is an ordered collection of shapes resolved to the nearest hit
type ShapeList []Shape

// Hit returns the closest intersection among all shapes within [tMin, tMax].
// On exact ties the shape that comes first wins.
func (l ShapeList) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := tMax

	for _, shape := range l {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			// Only a strictly nearer hit may replace the current one
			if closestHit != nil && hit.T >= closestHit.T {
				continue
			}
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
