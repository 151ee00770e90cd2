package frames

import (
	"fmt"
	"math"
)

// PixelScale is the divisor that maps 8-bit pixel values onto the unit interval.
const PixelScale = 255.0

// NormalizationParams is an immutable per-channel mean and standard deviation.
// The zero value is invalid; use DefaultNormalization or NewNormalizationParams.
type NormalizationParams struct {
	mean [Channels]float64
	std  [Channels]float64
}

// DefaultNormalization returns the ImageNet statistics most pretrained video models expect.
func DefaultNormalization() NormalizationParams {
	return NormalizationParams{
		mean: [Channels]float64{0.485, 0.456, 0.406},
		std:  [Channels]float64{0.229, 0.224, 0.225},
	}
}

// NewNormalizationParams validates and copies mean and std.
func NewNormalizationParams(mean, std []float64) (NormalizationParams, error) {
	var p NormalizationParams
	if len(mean) != Channels {
		return p, fmt.Errorf("%w: mean needs %d values, got %d", ErrInvalidConfig, Channels, len(mean))
	}
	if len(std) != Channels {
		return p, fmt.Errorf("%w: std needs %d values, got %d", ErrInvalidConfig, Channels, len(std))
	}
	copy(p.mean[:], mean)
	copy(p.std[:], std)
	if err := p.Validate(); err != nil {
		return NormalizationParams{}, err
	}
	return p, nil
}

// Mean returns a copy of the per-channel means.
func (p NormalizationParams) Mean() [Channels]float64 { return p.mean }

// Std returns a copy of the per-channel standard deviations.
func (p NormalizationParams) Std() [Channels]float64 { return p.std }

// Validate rejects non-finite values and zero standard deviations.
func (p NormalizationParams) Validate() error {
	for c := 0; c < Channels; c++ {
		if math.IsNaN(p.mean[c]) || math.IsInf(p.mean[c], 0) {
			return fmt.Errorf("%w: mean[%d] is not finite", ErrInvalidConfig, c)
		}
		if math.IsNaN(p.std[c]) || math.IsInf(p.std[c], 0) {
			return fmt.Errorf("%w: std[%d] is not finite", ErrInvalidConfig, c)
		}
		if p.std[c] == 0 {
			return fmt.Errorf("%w: std[%d] is zero", ErrInvalidConfig, c)
		}
	}
	return nil
}

func (p NormalizationParams) String() string {
	return fmt.Sprintf("mean=%v std=%v", p.mean, p.std)
}

// Normalize rescales 0-255 pixel values to [0,1] and applies (x - mean[c]) / std[c]
// per channel. The input is left untouched; the result has the same shape.
func Normalize(s *FrameStack, p NormalizationParams) (*FrameStack, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	cl := ToChannelsLast(s)
	normalizeChannelsLast(cl, p)
	return cl.ToChannelsFirst(), nil
}

// NormalizeInPlace is Normalize writing the result back into s.
func NormalizeInPlace(s *FrameStack, p NormalizationParams) error {
	out, err := Normalize(s, p)
	if err != nil {
		return err
	}
	copy(s.Data, out.Data)
	return nil
}

func normalizeChannelsLast(cl *ChannelsLast, p NormalizationParams) {
	for i, v := range cl.Data {
		c := i % Channels
		x := float64(v) / PixelScale
		cl.Data[i] = float32((x - p.mean[c]) / p.std[c])
	}
}
