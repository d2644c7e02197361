package geo

import "math"

const earthRadiusMeters = 6371000.0

// Distance returns the great-circle distance in meters between two coordinates
// using the haversine formula. At neighborhood scale the length of a longitude
// degree shrinks with latitude, so flat Euclidean distance on raw degrees is
// wrong, not merely imprecise.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180.0
	lng1Rad := lng1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0
	lng2Rad := lng2 * math.Pi / 180.0

	dLat := lat2Rad - lat1Rad
	dLng := lng2Rad - lng1Rad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// BoundingBox returns a coordinate box that fully contains the circle of
// radiusMeters around (lat, lng). It is intentionally generous near the poles;
// callers must still apply the exact Distance check to every candidate.
func BoundingBox(lat, lng, radiusMeters float64) (minLat, maxLat, minLng, maxLng float64) {
	latDelta := radiusMeters / earthRadiusMeters * 180.0 / math.Pi

	minLat = math.Max(lat-latDelta, -90)
	maxLat = math.Min(lat+latDelta, 90)

	// Longitude degrees shrink with latitude. Use the widest latitude in the
	// box so the circle is never clipped.
	widest := math.Max(math.Abs(minLat), math.Abs(maxLat))
	cosLat := math.Cos(widest * math.Pi / 180.0)
	if cosLat < 1e-6 {
		// Box touches a pole; every longitude is in range.
		return minLat, maxLat, -180, 180
	}

	lngDelta := latDelta / cosLat
	minLng = math.Max(lng-lngDelta, -180)
	maxLng = math.Min(lng+lngDelta, 180)
	return minLat, maxLat, minLng, maxLng
}

// ValidLatitude reports whether lat is a finite value in [-90, 90].
func ValidLatitude(lat float64) bool {
	return !math.IsNaN(lat) && !math.IsInf(lat, 0) && lat >= -90 && lat <= 90
}

// ValidLongitude reports whether lng is a finite value in [-180, 180].
func ValidLongitude(lng float64) bool {
	return !math.IsNaN(lng) && !math.IsInf(lng, 0) && lng >= -180 && lng <= 180
}
