// Package geo holds the great-circle math used for travel distances.
package geo

import "math"

// EarthRadiusKm is the mean earth radius used by DistanceKm.
const EarthRadiusKm = 6371.0

// Point is a known (latitude, longitude) pair in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// DistanceKm returns the haversine distance between two points in kilometres.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := radians(lat1)
	phi2 := radians(lat2)
	dPhi := radians(lat2 - lat1)
	dLambda := radians(lon2 - lon1)

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// DistanceKm returns the distance from p to q.
func (p Point) DistanceKm(q Point) float64 {
	return DistanceKm(p.Lat, p.Lon, q.Lat, q.Lon)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
