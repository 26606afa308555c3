package face

import (
	"bytes"
	"image"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}

func TestPrepareImagePassthrough(t *testing.T) {
	data := encodePNG(t, 100, 80)

	out, err := PrepareImage(data, 1600)
	if err != nil {
		t.Fatalf("prepare failed: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Error("expected in-bounds image to pass through unchanged")
	}
}

func TestPrepareImageDownscales(t *testing.T) {
	data := encodePNG(t, 2000, 500)

	out, err := PrepareImage(data, 1000)
	if err != nil {
		t.Fatalf("prepare failed: %v", err)
	}

	img, format, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decoding prepared image: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("expected jpeg output, got %s", format)
	}
	if img.Bounds().Dx() != 1000 {
		t.Errorf("expected width 1000, got %d", img.Bounds().Dx())
	}
	if img.Bounds().Dy() != 250 {
		t.Errorf("expected height 250, got %d", img.Bounds().Dy())
	}
}

func TestPrepareImageInvalidData(t *testing.T) {
	if _, err := PrepareImage([]byte("not an image"), 1600); err == nil {
		t.Error("expected decode error, got nil")
	}
}
