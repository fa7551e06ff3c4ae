package payment

import (
	"fmt"
	"os"
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"
)

// WriteQRImage renders the payload into a scannable PNG under dir,
// named after the request id. Returns the file path.
func WriteQRImage(dir, id, payload string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create qr dir: %w", err)
	}

	path := filepath.Join(dir, id+".png")
	if err := qrcode.WriteFile(payload, qrcode.Medium, 512, path); err != nil {
		return "", fmt.Errorf("failed to write qr image: %w", err)
	}
	return path, nil
}
