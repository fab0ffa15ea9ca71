package capture

import (
	"encoding/base64"
	"errors"
	"testing"

	"gocv.io/x/gocv"
)

// encodeTestFrame produces a base64 JPEG of a small blank frame.
func encodeTestFrame(t *testing.T) string {
	t.Helper()

	mat := gocv.NewMatWithSize(48, 64, gocv.MatTypeCV8UC3)
	defer mat.Close()

	buf, err := gocv.IMEncode(".jpg", mat)
	if err != nil {
		t.Fatalf("encode test frame: %v", err)
	}
	defer buf.Close()

	return base64.StdEncoding.EncodeToString(buf.GetBytes())
}

func TestDecodeImage_BareBase64(t *testing.T) {
	payload := encodeTestFrame(t)

	mat, err := DecodeImage(payload)
	if err != nil {
		t.Fatalf("DecodeImage() error = %v", err)
	}
	defer mat.Close()

	if mat.Empty() {
		t.Error("decoded frame should not be empty")
	}
	if mat.Cols() != 64 || mat.Rows() != 48 {
		t.Errorf("decoded frame is %dx%d, want 64x48", mat.Cols(), mat.Rows())
	}
}

func TestDecodeImage_DataURL(t *testing.T) {
	payload := "data:image/jpeg;base64," + encodeTestFrame(t)

	mat, err := DecodeImage(payload)
	if err != nil {
		t.Fatalf("DecodeImage() error = %v", err)
	}
	defer mat.Close()

	if mat.Empty() {
		t.Error("decoded frame should not be empty")
	}
}

func TestDecodeImage_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"empty payload", ""},
		{"not base64", "!!!not-base64!!!"},
		{"base64 but not an image", base64.StdEncoding.EncodeToString([]byte("hello world"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeImage(tt.payload)
			if !errors.Is(err, ErrInvalidImage) {
				t.Errorf("DecodeImage() error = %v, want ErrInvalidImage", err)
			}
		})
	}
}
