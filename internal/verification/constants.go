package verification

import "time"

// Payload format
const (
	// PayloadPrefix versions the scanned text so scanners can reject foreign codes
	PayloadPrefix = "dw1:"

	// payloadEntropyBytes is 128 bits of randomness
	payloadEntropyBytes = 16
)

// QR rendering
const (
	DefaultQRSize     = 256
	QRContentType     = "image/png"
	QRObjectKeyPrefix = "qr/"
	QRObjectKeySuffix = ".png"
)

// Defaults used when the service is built without explicit timings
const (
	DefaultTimeout      = 120 * time.Second
	DefaultPollInterval = 2 * time.Second
)

// Log messages
const (
	LogMsgArtifactCreated      = "Verification artifact created"
	LogMsgArtifactVerified     = "Verification artifact verified"
	LogMsgArtifactCancelled    = "Verification artifact cancelled"
	LogMsgArtifactExpired      = "Verification artifact expired"
	LogMsgStaleArtifactsSwept  = "Expired stale verification artifacts"
	LogMsgQRUploadFailed       = "Failed to upload QR image, continuing without image URL"
	LogMsgQRImageURLSaveFailed = "Failed to record QR image URL"
	LogMsgWaitPollFailed       = "Verification poll failed"
)

// Error messages
const (
	ErrMsgGeneratePayload = "failed to generate verification payload"
	ErrMsgRenderQR        = "failed to render QR code"
	ErrMsgUploadQR        = "failed to upload QR image"
	ErrMsgInvalidRequest  = "invalid verification request"
)
