package scheduling

import (
	"math"
	"time"
)

// Reglas de jornada.
const (
	// MinRestHours descanso mínimo entre el fin de un turno y el inicio del siguiente.
	MinRestHours = 11
	// MaxRegularHours horas regulares por jornada; el excedente es overtime.
	MaxRegularHours = 8.0

	nightStartHour = 21 // 21:00
	nightEndHour   = 6  // 06:00
)

// ShiftHours desglose de horas de un turno cerrado.
type ShiftHours struct {
	Total    float64
	Night    float64 // minutos dentro de la ventana 21:00-06:00
	Regular  float64
	Overtime float64
}

// ComputeShiftHours calcula el desglose de horas entre check-in y check-out.
// Las horas nocturnas se acumulan con barrido por minuto sobre la ventana
// 21:00-06:00; si las horas regulares superan MaxRegularHours el excedente
// pasa a overtime. Un rango invertido devuelve cero.
func ComputeShiftHours(checkIn, checkOut time.Time) ShiftHours {
	if !checkOut.After(checkIn) {
		return ShiftHours{}
	}

	total := checkOut.Sub(checkIn).Hours()

	nightMinutes := 0
	for t := checkIn; t.Before(checkOut); t = t.Add(time.Minute) {
		h := t.Hour()
		if h >= nightStartHour || h < nightEndHour {
			nightMinutes++
		}
	}
	night := float64(nightMinutes) / 60

	regular := total - night
	overtime := 0.0
	if regular > MaxRegularHours {
		overtime = regular - MaxRegularHours
		regular = MaxRegularHours
	}

	return ShiftHours{
		Total:    round2(total),
		Night:    round2(night),
		Regular:  round2(regular),
		Overtime: round2(overtime),
	}
}

// RestWindowStart devuelve el inicio de la ventana de descanso: un check-out
// dentro de (start - 11h, start) viola el descanso mínimo.
func RestWindowStart(shiftStart time.Time) time.Time {
	return shiftStart.Add(-MinRestHours * time.Hour)
}

// ViolatesRest indica si un check-out previo viola el descanso mínimo
// respecto al inicio del turno siguiente.
func ViolatesRest(lastCheckOut, nextShiftStart time.Time) bool {
	return lastCheckOut.After(RestWindowStart(nextShiftStart)) && lastCheckOut.Before(nextShiftStart)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
