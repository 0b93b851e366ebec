package lexicon

import "math"

const earthRadiusKm = 6371.0

// HaversineKm is the great-circle distance between two points.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(d float64) float64 { return d * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}

// NearestCity returns the closest gazetteer city within radiusKm.
func (l *Lexicon) NearestCity(lat, lon, radiusKm float64) (Place, float64, bool) {
	best := -1
	bestDist := math.MaxFloat64
	for i, p := range l.places {
		if p.Kind != PlaceCity {
			continue
		}
		d := HaversineKm(lat, lon, p.Lat, p.Lon)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 || bestDist > radiusKm {
		return Place{}, 0, false
	}
	return l.places[best], bestDist, true
}
