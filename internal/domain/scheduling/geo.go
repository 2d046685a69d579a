package scheduling

import "math"

const earthRadiusMeters = 6371e3

// HaversineMeters distancia en metros entre dos coordenadas (fórmula de Haversine).
func HaversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// WithinRadius indica si el punto (lat, lon) está dentro del radio de la
// geocerca del sitio. radius <= 0 usa el radio por defecto de 200 m.
func WithinRadius(lat, lon, siteLat, siteLon, radius float64) (bool, float64) {
	if radius <= 0 {
		radius = 200
	}
	d := HaversineMeters(lat, lon, siteLat, siteLon)
	return d <= radius, d
}
