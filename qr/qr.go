// Package qr renders verification URLs as QR codes. It is an optional
// dependency of the client; integrators that do not need QR output simply
// never import it.
package qr

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultSize is the PNG edge length in pixels used when callers pass a
// non-positive size.
const DefaultSize = 256

// Generator renders QR codes as PNG images. It satisfies the client
// package's QRRenderer interface.
type Generator struct {
	// Level is the error correction level. Zero value is qrcode.Medium.
	Level qrcode.RecoveryLevel
}

// NewGenerator returns a Generator with medium error correction.
func NewGenerator() *Generator {
	return &Generator{Level: qrcode.Medium}
}

// Render encodes url into a size×size PNG.
func (g *Generator) Render(url string, size int) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("url is required")
	}
	if size <= 0 {
		size = DefaultSize
	}
	png, err := qrcode.Encode(url, g.Level, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	return png, nil
}
