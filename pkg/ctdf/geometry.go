package ctdf

import "math"

// Mean earth radius (IUGG)
const EarthRadiusKm = 6371.0088

const sameCoordinateEpsilon = 1e-9

// Bearing returns the initial compass bearing in degrees [0, 360) from a to b
func Bearing(a Coordinate, b Coordinate) float64 {
	lat1 := toRadians(a.Latitude)
	lon1 := toRadians(a.Longitude)
	lat2 := toRadians(b.Latitude)
	lon2 := toRadians(b.Longitude)
	dLon := lon2 - lon1

	x := math.Cos(lat2) * math.Sin(dLon)
	y := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	bearing := math.Mod(toDegrees(math.Atan2(x, y))+360, 360)

	// Mod can round 359.9999... up to exactly 360
	if bearing >= 360 {
		bearing = 0
	}

	return bearing
}

// AngularDeviation is the shorter arc between the origin->destination and
// origin->candidate bearings, in [0, 180]
func AngularDeviation(origin Coordinate, destination Coordinate, candidate Coordinate) float64 {
	difference := math.Abs(Bearing(origin, destination) - Bearing(origin, candidate))

	return math.Min(difference, 360-difference)
}

// DistanceKm is the haversine distance between two coordinates. Missing
// coordinates have no distance.
func DistanceKm(a *Coordinate, b *Coordinate) float64 {
	if a == nil || b == nil {
		return 0
	}

	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)
	dLat := lat2 - lat1
	dLon := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * EarthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

// SameCoordinate reports whether the two points coincide, in which case no
// bearing between them is defined
func SameCoordinate(a Coordinate, b Coordinate) bool {
	return math.Abs(a.Latitude-b.Latitude) < sameCoordinateEpsilon &&
		math.Abs(a.Longitude-b.Longitude) < sameCoordinateEpsilon
}

// CoveragePercentage is covered/total as a percentage, 0 when there is no total
func CoveragePercentage(covered float64, total float64) float64 {
	if total <= 0 {
		return 0
	}

	return covered / total * 100
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func toDegrees(radians float64) float64 {
	return radians * 180 / math.Pi
}
