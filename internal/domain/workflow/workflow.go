// Package workflow modela el ciclo de vida del proyecto como una sola máquina
// de estados compuesta sobre el triplete (status, validationStatus,
// logisticsStatus), en lugar de mutar campos sueltos por endpoint. Todo evento
// no contemplado en la tabla se rechaza con ErrInvalidTransition, y ninguna
// transición retrocede la logística salvo el rollback explícito de
// cancel-validation (ReadyForExit -> Prep).
package workflow

import (
	"fmt"

	"github.com/brightstage/rentalops-api/internal/domain"
	"github.com/brightstage/rentalops-api/internal/domain/entity"
)

// State triplete de estado del proyecto.
type State struct {
	Status     string
	Validation string
	Logistics  string
}

// Event evento de transición del ciclo de vida.
type Event string

const (
	EventLock             Event = "lock"
	EventValidate         Event = "validate"
	EventValidateManifest Event = "validate-manifest"
	EventCancelValidation Event = "cancel-validation"
	EventIssueExitQR      Event = "qr-exit"
	EventScanExit         Event = "scan-exit"
	EventIssueReturnQR    Event = "qr-return"
	EventFinalizeReturn   Event = "return-finalize"
)

type transition struct {
	guard func(State) error
	apply func(State) State
}

var transitions = map[Event]transition{
	// Enviar a validación: sin precondición sobre el estado actual.
	EventLock: {
		apply: func(s State) State {
			s.Validation = entity.ValidationPending
			return s
		},
	},

	// Validación completa: aprueba y pasa el proyecto a fase operativa.
	EventValidate: {
		apply: func(s State) State {
			s.Validation = entity.ValidationValidated
			s.Status = entity.StatusPickup
			return s
		},
	},

	// Alias usado por la app de escritorio: valida sin forzar status=Pickup;
	// si la logística estaba en Prep, queda lista para salida.
	EventValidateManifest: {
		apply: func(s State) State {
			s.Validation = entity.ValidationValidated
			if s.Logistics == entity.LogisticsPrep {
				s.Logistics = entity.LogisticsReadyForExit
			}
			return s
		},
	},

	// Solo es legal antes de escanear la salida: el material aún no dejó la bodega.
	EventCancelValidation: {
		guard: func(s State) error {
			if s.Status != entity.StatusConfirmed {
				return fmt.Errorf("%w: no se puede cancelar la validación, el material ya salió", domain.ErrInvalidTransition)
			}
			return nil
		},
		apply: func(s State) State {
			s.Validation = entity.ValidationDraft
			if s.Logistics == entity.LogisticsReadyForExit {
				s.Logistics = entity.LogisticsPrep
			}
			return s
		},
	},

	// Emitir QR de salida requiere proyecto validado y material aún en bodega
	// (con el retorno en curso habría dos tokens vivos a la vez).
	EventIssueExitQR: {
		guard: func(s State) error {
			if s.Validation != entity.ValidationValidated {
				return fmt.Errorf("%w: el proyecto debe estar validado", domain.ErrInvalidTransition)
			}
			if s.Logistics != entity.LogisticsPrep && s.Logistics != entity.LogisticsReadyForExit {
				return fmt.Errorf("%w: el material ya salió de bodega", domain.ErrInvalidTransition)
			}
			return nil
		},
		apply: func(s State) State {
			s.Logistics = entity.LogisticsReadyForExit
			return s
		},
	},

	// Escaneo de salida: el material pasa a sitio. La igualdad del token la
	// verifica el caso de uso; aquí solo la fase logística.
	EventScanExit: {
		guard: func(s State) error {
			if s.Logistics != entity.LogisticsReadyForExit {
				return fmt.Errorf("%w: el proyecto no está listo para salida", domain.ErrInvalidTransition)
			}
			return nil
		},
		apply: func(s State) State {
			s.Logistics = entity.LogisticsOnSite
			s.Status = entity.StatusPickup
			return s
		},
	},

	// Emitir QR de retorno (la puerta de fecha la aplica el caso de uso).
	// Se permite re-emitir mientras el retorno está en curso.
	EventIssueReturnQR: {
		guard: func(s State) error {
			if s.Logistics != entity.LogisticsOnSite && s.Logistics != entity.LogisticsReturning {
				return fmt.Errorf("%w: el material no está en sitio", domain.ErrInvalidTransition)
			}
			return nil
		},
		apply: func(s State) State {
			s.Logistics = entity.LogisticsReturning
			return s
		},
	},

	// Finalización del retorno: cierra el proyecto.
	EventFinalizeReturn: {
		guard: func(s State) error {
			if s.Logistics != entity.LogisticsReturning {
				return fmt.Errorf("%w: no hay retorno en curso", domain.ErrInvalidTransition)
			}
			return nil
		},
		apply: func(s State) State {
			s.Logistics = entity.LogisticsReturned
			s.Status = entity.StatusDone
			return s
		},
	},
}

// Next aplica el evento al estado actual. Devuelve el estado resultante o
// ErrInvalidTransition (envuelto con el motivo) sin efectos secundarios.
func Next(cur State, ev Event) (State, error) {
	t, ok := transitions[ev]
	if !ok {
		return cur, fmt.Errorf("%w: evento desconocido %q", domain.ErrInvalidTransition, ev)
	}
	if t.guard != nil {
		if err := t.guard(cur); err != nil {
			return cur, err
		}
	}
	return t.apply(cur), nil
}

// StateOf extrae el triplete de un proyecto.
func StateOf(p *entity.Project) State {
	return State{Status: p.Status, Validation: p.ValidationStatus, Logistics: p.LogisticsStatus}
}

// ApplyTo escribe el triplete resultante en el proyecto.
func (s State) ApplyTo(p *entity.Project) {
	p.Status = s.Status
	p.ValidationStatus = s.Validation
	p.LogisticsStatus = s.Logistics
}
