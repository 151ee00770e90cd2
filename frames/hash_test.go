package frames

import (
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"reflect"
	"testing"
)

// stepImage is dark on the left half and bright on the right half, or the reverse.
func stepImage(w, h int, inverted bool) *image.NRGBA {
	dark := color.NRGBA{R: 20, G: 20, B: 20, A: 255}
	bright := color.NRGBA{R: 230, G: 230, B: 230, A: 255}
	if inverted {
		dark, bright = bright, dark
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < w/2 {
				img.SetNRGBA(x, y, dark)
			} else {
				img.SetNRGBA(x, y, bright)
			}
		}
	}
	return img
}

func TestHashFrames(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		filepath.Join(dir, "00000.png"),
		filepath.Join(dir, "00001.png"),
		filepath.Join(dir, "00002.png"),
	}
	writePNG(t, paths[0], stepImage(64, 64, false))
	writePNG(t, paths[1], stepImage(64, 64, false))
	writePNG(t, paths[2], stepImage(64, 64, true))

	hashes, err := HashFrames(paths)
	if err != nil {
		t.Fatalf("HashFrames() error = %v", err)
	}
	if len(hashes) != 3 {
		t.Fatalf("Expected 3 hashes, got %d", len(hashes))
	}

	if hashes[0].Distance != -1 {
		t.Errorf("first frame distance = %d, want -1", hashes[0].Distance)
	}
	if hashes[1].Distance != 0 {
		t.Errorf("repeated frame distance = %d, want 0", hashes[1].Distance)
	}
	if hashes[2].Distance <= 0 {
		t.Errorf("inverted frame distance = %d, want > 0", hashes[2].Distance)
	}
	if hashes[0].Hash != hashes[1].Hash {
		t.Errorf("identical frames hashed differently: %x vs %x", hashes[0].Hash, hashes[1].Hash)
	}
	for i, h := range hashes {
		if h.Path != paths[i] {
			t.Errorf("hash %d path = %s, want %s", i, h.Path, paths[i])
		}
	}
}

func TestHashFrames_DecodeError(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "00000.png")
	writeFile(t, bad, "garbage")

	_, err := HashFrames([]string{bad})
	if !errors.Is(err, ErrDecode) {
		t.Errorf("HashFrames() error = %v, want ErrDecode", err)
	}
}

func TestHashFrames_Empty(t *testing.T) {
	hashes, err := HashFrames(nil)
	if err != nil {
		t.Fatalf("HashFrames() error = %v", err)
	}
	if len(hashes) != 0 {
		t.Errorf("Expected no hashes, got %d", len(hashes))
	}
}

func TestFrozenFrames(t *testing.T) {
	hashes := []FrameHash{
		{Distance: -1},
		{Distance: 0},
		{Distance: 12},
		{Distance: 5},
		{Distance: 6},
	}

	tests := []struct {
		threshold int
		want      []int
	}{
		{0, []int{1}},
		{5, []int{1, 3}},
		{64, []int{1, 2, 3, 4}},
	}

	for _, tt := range tests {
		got := FrozenFrames(hashes, tt.threshold)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("FrozenFrames(threshold=%d) = %v, want %v", tt.threshold, got, tt.want)
		}
	}
}
