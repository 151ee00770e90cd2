package frames

import (
	"fmt"

	"github.com/corona10/goimagehash"
)

// HashFrames computes a perceptual hash for each frame, in the given order, along with the
// Hamming distance to the previous frame.
func HashFrames(paths []string) ([]FrameHash, error) {
	hashes := make([]FrameHash, 0, len(paths))
	var prev *goimagehash.ImageHash

	for _, path := range paths {
		img, err := DecodeFrame(path)
		if err != nil {
			return nil, err
		}

		hash, err := goimagehash.PerceptionHash(img)
		if err != nil {
			return nil, &DecodeError{Path: path, Err: fmt.Errorf("failed to calculate perceptual hash: %w", err)}
		}

		distance := -1
		if prev != nil {
			if distance, err = prev.Distance(hash); err != nil {
				return nil, fmt.Errorf("failed to compare %s with previous frame: %w", path, err)
			}
		}

		hashes = append(hashes, FrameHash{Path: path, Hash: hash.GetHash(), Distance: distance})
		prev = hash
	}

	return hashes, nil
}

// FrozenFrames returns the indexes of frames whose distance to the previous frame is at
// most threshold, i.e. frames that repeat their predecessor.
func FrozenFrames(hashes []FrameHash, threshold int) []int {
	var frozen []int
	for i, h := range hashes {
		if h.Distance >= 0 && h.Distance <= threshold {
			frozen = append(frozen, i)
		}
	}
	return frozen
}
