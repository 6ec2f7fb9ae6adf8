package verification

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// Renderer turns a scanned payload into an image
type Renderer interface {
	Render(payload string) ([]byte, error)
}

// QRRenderer renders PNG QR codes
type QRRenderer struct {
	Size  int
	Level qrcode.RecoveryLevel
}

// NewQRRenderer returns a renderer producing size x size PNGs at medium recovery
func NewQRRenderer(size int) *QRRenderer {
	if size <= 0 {
		size = DefaultQRSize
	}
	return &QRRenderer{Size: size, Level: qrcode.Medium}
}

// Render encodes payload as a PNG
func (r *QRRenderer) Render(payload string) ([]byte, error) {
	png, err := qrcode.Encode(payload, r.Level, r.Size)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgRenderQR, err)
	}
	return png, nil
}
