package geo

import (
	"math"
	"testing"
)

func TestDistanceKmIdenticalPointsIsZero(t *testing.T) {
	points := []Point{{43.6, -79.4}, {0, 0}, {-33.9, 151.2}, {89.9, 179.9}}
	for _, p := range points {
		if got := p.DistanceKm(p); got != 0 {
			t.Fatalf("expected 0 for %+v, got %f", p, got)
		}
	}
}

func TestDistanceKmSymmetric(t *testing.T) {
	p := Point{43.6, -79.4}
	q := Point{34.0, -118.2}
	if a, b := p.DistanceKm(q), q.DistanceKm(p); math.Abs(a-b) > 1e-9 {
		t.Fatalf("expected symmetric distance, got %f vs %f", a, b)
	}
}

func TestDistanceKmAntipodal(t *testing.T) {
	got := DistanceKm(0, 0, 0, 180)
	want := math.Pi * EarthRadiusKm
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("expected ~%f, got %f", want, got)
	}
}

func TestDistanceKmTorontoToLosAngeles(t *testing.T) {
	got := DistanceKm(43.6, -79.4, 34.0, -118.2)
	if got < 3450 || got > 3550 {
		t.Fatalf("expected roughly 3500 km, got %f", got)
	}
}
