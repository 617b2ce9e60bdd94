package utils

import (
	"bytes"
	"encoding/hex"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func TestTimedHash(t *testing.T) {
	h := TimedHash("unicorn")
	if len(h) != 10 {
		t.Fatalf("length = %d, want 10", len(h))
	}
	if _, err := hex.DecodeString(h); err != nil {
		t.Errorf("not hex: %q", h)
	}
	// Different salts at (practically) the same time must differ
	if TimedHash("unicorn") == TimedHash("admin") {
		t.Error("distinct salts produced the same hash")
	}
}

func TestRand8BytesToBase62(t *testing.T) {
	a := Rand8BytesToBase62()
	b := Rand8BytesToBase62()
	if a == "" || a == b {
		t.Errorf("suffixes not random: %q, %q", a, b)
	}
}

func TestCreateThumb(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 200, 100))
	for x := 0; x < 200; x++ {
		for y := 0; y < 100; y++ {
			src.Set(x, y, color.RGBA{uint8(x), uint8(y), 100, 255})
		}
	}
	var in, out bytes.Buffer
	if err := png.Encode(&in, src); err != nil {
		t.Fatalf("encode source: %v", err)
	}

	result, err := CreateThumb(50, &in, &out)
	if err != nil {
		t.Fatalf("CreateThumb: %v", err)
	}
	if result.OldX != 200 || result.OldY != 100 {
		t.Errorf("source size = %dx%d, want 200x100", result.OldX, result.OldY)
	}
	if result.NewX > 50 || result.NewY > 50 {
		t.Errorf("thumb size = %dx%d, want bounded by 50", result.NewX, result.NewY)
	}
	if result.ThumbSize != int64(out.Len()) {
		t.Errorf("reported size %d, buffer holds %d", result.ThumbSize, out.Len())
	}
	if _, err := jpeg.Decode(&out); err != nil {
		t.Errorf("thumb is not a valid JPEG: %v", err)
	}
}
