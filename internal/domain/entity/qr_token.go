package entity

import "time"

// Estados del token QR de capacidad (un solo uso).
const (
	qrNone = iota
	qrIssued
	qrConsumed
)

// QRToken token de capacidad de un solo uso que habilita un escaneo físico
// (salida o retorno). El ciclo de vida None -> Issued -> Consumed está
// encapsulado: no hay forma de "revivir" un token consumido ni de comparar
// contra un token no emitido. El valor cero es un token no emitido.
type QRToken struct {
	state    int
	value    string
	issuedAt time.Time
}

// IssuedQRToken reconstruye un token emitido (para hidratar desde persistencia).
func IssuedQRToken(value string, issuedAt time.Time) QRToken {
	if value == "" {
		return QRToken{}
	}
	return QRToken{state: qrIssued, value: value, issuedAt: issuedAt}
}

// Issue emite un token nuevo, reemplazando cualquier estado anterior.
func (t *QRToken) Issue(value string, now time.Time) {
	t.state = qrIssued
	t.value = value
	t.issuedAt = now
}

// Consume invalida el token. Un token consumido no vuelve a coincidir.
func (t *QRToken) Consume() {
	t.state = qrConsumed
	t.value = ""
	t.issuedAt = time.Time{}
}

// Clear vuelve el token al estado no emitido (rollback de cancel-validation).
func (t *QRToken) Clear() {
	*t = QRToken{}
}

// Active indica si hay un token emitido pendiente de escaneo.
func (t QRToken) Active() bool { return t.state == qrIssued }

// Matches compara el valor presentado contra el token emitido.
// Un token no emitido o consumido nunca coincide.
func (t QRToken) Matches(presented string) bool {
	return t.state == qrIssued && presented != "" && t.value == presented
}

// Value devuelve el valor del token emitido, o cadena vacía.
func (t QRToken) Value() string {
	if t.state != qrIssued {
		return ""
	}
	return t.value
}

// IssuedAt devuelve el instante de emisión (cero si no hay token activo).
func (t QRToken) IssuedAt() time.Time { return t.issuedAt }
