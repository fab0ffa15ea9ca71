// Package capture decodes transport-delivered frame payloads using GoCV (OpenCV).
package capture

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"gocv.io/x/gocv"
)

// ErrInvalidImage is returned when a frame payload cannot be decoded into
// pixels. It marks the failure as the caller's, not the server's.
var ErrInvalidImage = errors.New("invalid image data")

// DecodeImage decodes a base64 frame payload into a color image.
// The payload may be a data URL ("data:image/jpeg;base64,...") or bare
// base64. The caller owns the returned Mat and must Close it.
func DecodeImage(payload string) (*gocv.Mat, error) {
	if payload == "" {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidImage)
	}

	// Strip a data URL prefix if present
	if idx := strings.IndexByte(payload, ','); idx >= 0 {
		payload = payload[idx+1:]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if mat.Empty() {
		mat.Close()
		return nil, fmt.Errorf("%w: not a decodable image", ErrInvalidImage)
	}

	return &mat, nil
}
