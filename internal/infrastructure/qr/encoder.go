// Package qr renderiza los tokens de salida/retorno como imágenes PNG para
// que la app móvil y el manifiesto impreso puedan mostrarlos.
package qr

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const pngSize = 256

// Encoder renderizador de códigos QR.
type Encoder struct{}

// NewEncoder construye el renderizador.
func NewEncoder() *Encoder { return &Encoder{} }

// PNG devuelve el token como imagen PNG.
func (e *Encoder) PNG(token string) ([]byte, error) {
	png, err := qrcode.Encode(token, qrcode.Medium, pngSize)
	if err != nil {
		return nil, fmt.Errorf("qr: encode: %w", err)
	}
	return png, nil
}

// PNGBase64 devuelve el PNG codificado en base64, listo para incrustar en JSON.
func (e *Encoder) PNGBase64(token string) (string, error) {
	png, err := e.PNG(token)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(png), nil
}
