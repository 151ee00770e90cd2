package frames

import (
	"errors"
	"testing"
)

func TestNormalize_AllZero(t *testing.T) {
	s := NewFrameStack(2, 3, 3)
	p := DefaultNormalization()

	out, err := Normalize(s, p)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	mean, std := p.Mean(), p.Std()
	for c := 0; c < Channels; c++ {
		want := (0.0/255.0 - mean[c]) / std[c]
		for f := 0; f < s.Frames; f++ {
			for y := 0; y < s.Height; y++ {
				for x := 0; x < s.Width; x++ {
					got := float64(out.At(c, f, y, x))
					if !approxEqual(got, want, 1e-6) {
						t.Fatalf("channel %d: got %v, want %v", c, got, want)
					}
				}
			}
		}
	}
}

func TestNormalize_KnownValues(t *testing.T) {
	s := NewFrameStack(1, 1, 2)
	s.Set(0, 0, 0, 0, 255)
	s.Set(1, 0, 0, 1, 51)
	s.Set(2, 0, 0, 0, 127.5)

	p, err := NewNormalizationParams([]float64{0.5, 0.5, 0.5}, []float64{0.5, 0.25, 2})
	if err != nil {
		t.Fatalf("NewNormalizationParams() error = %v", err)
	}

	out, err := Normalize(s, p)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	tests := []struct {
		c, x int
		want float64
	}{
		{0, 0, 1},     // (1 - 0.5) / 0.5
		{0, 1, -1},    // (0 - 0.5) / 0.5
		{1, 1, -1.2},  // (0.2 - 0.5) / 0.25
		{2, 0, 0},     // (0.5 - 0.5) / 2
		{2, 1, -0.25}, // (0 - 0.5) / 2
	}
	for _, tt := range tests {
		got := float64(out.At(tt.c, 0, 0, tt.x))
		if !approxEqual(got, tt.want, 1e-6) {
			t.Errorf("At(%d, 0, 0, %d) = %v, want %v", tt.c, tt.x, got, tt.want)
		}
	}
}

func TestNormalize_PreservesShape(t *testing.T) {
	shapes := [][3]int{{0, 4, 4}, {1, 1, 1}, {5, 2, 3}, {3, 7, 7}}
	for _, sh := range shapes {
		s := NewFrameStack(sh[0], sh[1], sh[2])
		out, err := Normalize(s, DefaultNormalization())
		if err != nil {
			t.Fatalf("Normalize(%v) error = %v", s.Shape(), err)
		}
		if out.Shape() != s.Shape() {
			t.Errorf("Normalize() shape = %v, want %v", out.Shape(), s.Shape())
		}
		if len(out.Data) != len(s.Data) {
			t.Errorf("Normalize() len = %d, want %d", len(out.Data), len(s.Data))
		}
	}
}

func TestNormalize_EmptyStack(t *testing.T) {
	s := NewFrameStack(0, 224, 224)

	out, err := Normalize(s, DefaultNormalization())
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if out.Shape() != [4]int{3, 0, 224, 224} {
		t.Errorf("Normalize() shape = %v", out.Shape())
	}
	if len(out.Data) != 0 {
		t.Errorf("Expected no elements, got %d", len(out.Data))
	}
}

func TestNormalize_NotIdempotent(t *testing.T) {
	s := NewFrameStack(1, 2, 2)
	for i := range s.Data {
		s.Data[i] = float32(i * 20)
	}
	p := DefaultNormalization()

	once, err := Normalize(s, p)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	twice, err := Normalize(once, p)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	for i := range once.Data {
		if once.Data[i] == twice.Data[i] {
			t.Errorf("element %d unchanged by second normalization: %v", i, once.Data[i])
		}
	}
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	s := NewFrameStack(1, 2, 2)
	for i := range s.Data {
		s.Data[i] = 100
	}

	if _, err := Normalize(s, DefaultNormalization()); err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	for i, v := range s.Data {
		if v != 100 {
			t.Fatalf("input element %d changed to %v", i, v)
		}
	}
}

func TestNormalizeInPlace(t *testing.T) {
	s := NewFrameStack(1, 1, 1)
	want, err := Normalize(s, DefaultNormalization())
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	if err := NormalizeInPlace(s, DefaultNormalization()); err != nil {
		t.Fatalf("NormalizeInPlace() error = %v", err)
	}
	for i := range s.Data {
		if s.Data[i] != want.Data[i] {
			t.Errorf("element %d = %v, want %v", i, s.Data[i], want.Data[i])
		}
	}
}

func TestNormalize_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		stack *FrameStack
	}{
		{"nil stack", nil},
		{"short data", &FrameStack{Frames: 1, Height: 2, Width: 2, Data: make([]float32, 4)}},
		{"negative frames", &FrameStack{Frames: -1, Height: 2, Width: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.stack, DefaultNormalization())
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Normalize() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestNewNormalizationParams(t *testing.T) {
	tests := []struct {
		name    string
		mean    []float64
		std     []float64
		wantErr bool
	}{
		{"valid", []float64{0.5, 0.5, 0.5}, []float64{0.2, 0.2, 0.2}, false},
		{"short mean", []float64{0.5, 0.5}, []float64{0.2, 0.2, 0.2}, true},
		{"long std", []float64{0.5, 0.5, 0.5}, []float64{0.2, 0.2, 0.2, 0.2}, true},
		{"zero std", []float64{0.5, 0.5, 0.5}, []float64{0.2, 0, 0.2}, true},
		{"nil", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewNormalizationParams(tt.mean, tt.std)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("NewNormalizationParams() error = %v, want ErrInvalidConfig", err)
				}
				return
			}
			if err != nil {
				t.Errorf("NewNormalizationParams() unexpected error = %v", err)
			}
		})
	}
}

func TestNormalizationParams_CopiesInput(t *testing.T) {
	mean := []float64{0.1, 0.2, 0.3}
	std := []float64{1, 1, 1}
	p, err := NewNormalizationParams(mean, std)
	if err != nil {
		t.Fatalf("NewNormalizationParams() error = %v", err)
	}

	mean[0] = 99
	if got := p.Mean()[0]; got != 0.1 {
		t.Errorf("Mean()[0] = %v after caller mutation, want 0.1", got)
	}

	m := p.Mean()
	m[1] = 99
	if got := p.Mean()[1]; got != 0.2 {
		t.Errorf("Mean()[1] = %v after mutating returned copy, want 0.2", got)
	}
}

func TestNormalize_ZeroValueParams(t *testing.T) {
	_, err := Normalize(NewFrameStack(1, 1, 1), NormalizationParams{})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Normalize() error = %v, want ErrInvalidConfig", err)
	}
}
