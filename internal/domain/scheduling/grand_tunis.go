package scheduling

import "strings"

// Localidades del Gran Túnez. Si el sitio del proyecto solicitado y todos los
// proyectos en conflicto están en esta zona, un conductor/vehículo admite
// hasta 3 viajes el mismo día antes de marcarse como no disponible; fuera de
// la zona el límite es 1.
var grandTunisKeywords = []string{
	"tunis", "ariana", "ben arous", "manouba", "carthage", "marsa",
	"gammarth", "lac", "soukra", "mourouj", "bardo",
}

// Límites de viajes por día para un mismo conductor/vehículo.
const (
	SameDayTripLimit           = 1
	GrandTunisSameDayTripLimit = 3
)

// IsGrandTunis indica si una dirección pertenece al Gran Túnez.
// Se quita "tunisia" antes de comparar para que el país no haga match con "tunis".
func IsGrandTunis(address string) bool {
	if address == "" {
		return false
	}
	lower := strings.ReplaceAll(strings.ToLower(address), "tunisia", "")
	for _, k := range grandTunisKeywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// TripLimit devuelve el máximo de viajes por día permitido: 3 si tanto el
// proyecto solicitado como todos los existentes ese día son del Gran Túnez,
// 1 en cualquier otro caso.
func TripLimit(requestedGrandTunis, allExistingGrandTunis bool) int {
	if requestedGrandTunis && allExistingGrandTunis {
		return GrandTunisSameDayTripLimit
	}
	return SameDayTripLimit
}
