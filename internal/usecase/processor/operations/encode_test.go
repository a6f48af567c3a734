package operations

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/jpeg"
	"testing"
	"time"

	"photo-brander/internal/metadata"
)

func TestEncodeJPEGWithMetadata(t *testing.T) {
	now := time.Date(2026, time.October, 16, 9, 30, 5, 0, time.UTC)
	ib, err := metadata.Build(metadata.NewRecord(metadata.Fields{Author: "Studio", Title: "Fjord"}, now))
	if err != nil {
		t.Fatalf("metadata.Build() unexpected error: %v", err)
	}

	buf := new(bytes.Buffer)
	if err := EncodeJPEG(buf, newFilled(16, 8, red), 90, ib); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data := buf.Bytes()
	if !bytes.Equal(data[:4], []byte{0xFF, 0xD8, 0xFF, 0xE1}) {
		t.Fatalf("output starts with % X, want SOI followed by APP1", data[:4])
	}

	length := int(binary.BigEndian.Uint16(data[4:6]))
	payload := data[6 : 4+length]
	if !bytes.HasPrefix(payload, []byte("Exif\x00\x00MM\x00\x2a")) {
		t.Errorf("APP1 payload starts with % X, want a big-endian Exif block", payload[:10])
	}
	if !bytes.Contains(payload, []byte("2026:10:16 09:30:05")) {
		t.Errorf("APP1 payload does not carry the run timestamp")
	}

	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output does not decode: %v", err)
	}
	if got := img.Bounds().Size(); got != image.Pt(16, 8) {
		t.Errorf("decoded size = %v, want 16x8", got)
	}
}

func TestEncodeJPEGWithoutMetadata(t *testing.T) {
	buf := new(bytes.Buffer)
	if err := EncodeJPEG(buf, newFilled(4, 4, red), 100, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bytes.Contains(buf.Bytes(), []byte("Exif\x00\x00")) {
		t.Errorf("output carries an Exif block without metadata")
	}
	if _, err := jpeg.Decode(buf); err != nil {
		t.Fatalf("output does not decode: %v", err)
	}
}

func TestEncodeJPEGQualityZero(t *testing.T) {
	buf := new(bytes.Buffer)
	if err := EncodeJPEG(buf, newFilled(8, 8, red), 0, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := jpeg.Decode(buf); err != nil {
		t.Fatalf("output does not decode: %v", err)
	}
}
