package frames

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/sbinet/npyio"
)

// Format is an on-disk representation of a FrameStack.
type Format string

const (
	FormatNPY  Format = "npy"
	FormatCBOR Format = "cbor"
)

// FormatFromPath picks the export format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".npy":
		return FormatNPY, nil
	case ".cbor":
		return FormatCBOR, nil
	default:
		return "", fmt.Errorf("%w: cannot infer export format from %q (use .npy or .cbor)", ErrInvalidConfig, path)
	}
}

// Write encodes s to w in the given format.
func Write(w io.Writer, s *FrameStack, format Format) error {
	switch format {
	case FormatNPY:
		return WriteNPY(w, s)
	case FormatCBOR:
		return WriteCBOR(w, s)
	default:
		return fmt.Errorf("%w: unknown export format %q", ErrInvalidConfig, string(format))
	}
}

// Read decodes a stack from r in the given format.
func Read(r io.Reader, format Format) (*FrameStack, error) {
	switch format {
	case FormatNPY:
		return ReadNPY(r)
	case FormatCBOR:
		return ReadCBOR(r)
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", ErrInvalidConfig, string(format))
	}
}

// NPY header for WriteNPY. npyio.Write only records a (len,) shape for slices, so the
// rank-4 header is written here and read back through npyio.
const (
	npyMagic   = "\x93NUMPY"
	npyPreface = len(npyMagic) + 4 // magic, version, uint16 header length
)

// WriteNPY writes s as a NumPy .npy v1.0 file of little-endian float32 in C order.
func WriteNPY(w io.Writer, s *FrameStack) error {
	if err := s.validate(); err != nil {
		return err
	}

	shape := s.Shape()
	header := fmt.Sprintf("{'descr': '<f4', 'fortran_order': False, 'shape': (%d, %d, %d, %d), }",
		shape[0], shape[1], shape[2], shape[3])

	// The preamble ends on a 64-byte boundary with a newline.
	pad := 64 - (npyPreface+len(header)+1)%64
	if pad == 64 {
		pad = 0
	}
	header += strings.Repeat(" ", pad) + "\n"

	bw := bufio.NewWriter(w)
	bw.WriteString(npyMagic)
	bw.Write([]byte{1, 0})
	if err := binary.Write(bw, binary.LittleEndian, uint16(len(header))); err != nil {
		return err
	}
	bw.WriteString(header)
	if err := binary.Write(bw, binary.LittleEndian, s.Data); err != nil {
		return fmt.Errorf("failed to write npy payload: %w", err)
	}
	return bw.Flush()
}

// ReadNPY decodes a .npy file holding a C-order little-endian float32 array of shape
// (3, N, H, W), as written by WriteNPY.
func ReadNPY(r io.Reader) (*FrameStack, error) {
	limit := maxStreamElements
	if n, ok := availableBytes(r); ok {
		limit = int(min(n/4, int64(maxStreamElements)))
	}

	nr, err := npyio.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: not an npy file: %v", ErrInvalidInput, err)
	}

	descr := nr.Header.Descr
	if descr.Type != "<f4" {
		return nil, fmt.Errorf("%w: npy dtype must be '<f4', got %q", ErrInvalidInput, descr.Type)
	}
	if descr.Fortran {
		return nil, fmt.Errorf("%w: npy array must be in C order", ErrInvalidInput)
	}
	if len(descr.Shape) != 4 {
		return nil, fmt.Errorf("%w: expected 4 dimensions, got %d", ErrInvalidInput, len(descr.Shape))
	}
	if descr.Shape[0] != Channels {
		return nil, fmt.Errorf("%w: expected %d channels, got %d", ErrInvalidInput, Channels, descr.Shape[0])
	}

	s := &FrameStack{Frames: descr.Shape[1], Height: descr.Shape[2], Width: descr.Shape[3]}
	n, ok := elementCount(s.Frames, s.Height, s.Width, limit)
	if !ok {
		return nil, fmt.Errorf("%w: npy shape %v does not fit the available data", ErrInvalidInput, descr.Shape)
	}

	s.Data = make([]float32, n)
	if err := nr.Read(&s.Data); err != nil {
		return nil, fmt.Errorf("%w: truncated npy payload for shape %v: %v", ErrInvalidInput, s.Shape(), err)
	}
	if len(s.Data) != n {
		return nil, fmt.Errorf("%w: npy payload has %d elements, shape %v needs %d", ErrInvalidInput, len(s.Data), s.Shape(), n)
	}
	return s, nil
}

// maxStreamElements bounds allocations for readers whose size is unknown (8 GiB of float32).
const maxStreamElements = math.MaxInt32

// availableBytes reports how many bytes remain in r when it can tell without reading.
func availableBytes(r io.Reader) (int64, bool) {
	switch v := r.(type) {
	case interface{ Len() int }:
		return int64(v.Len()), true
	case io.Seeker:
		cur, err := v.Seek(0, io.SeekCurrent)
		if err != nil {
			return 0, false
		}
		end, err := v.Seek(0, io.SeekEnd)
		if _, serr := v.Seek(cur, io.SeekStart); err != nil || serr != nil {
			return 0, false
		}
		return end - cur, true
	}
	return 0, false
}

// RFC 8746 tags.
const (
	tagMultiDimArray = 40
	tagFloat32LE     = 85
)

// WriteCBOR writes s as an RFC 8746 multi-dimensional array of little-endian float32.
func WriteCBOR(w io.Writer, s *FrameStack) error {
	if err := s.validate(); err != nil {
		return err
	}

	payload := make([]byte, 4*len(s.Data))
	for i, v := range s.Data {
		binary.LittleEndian.PutUint32(payload[i*4:], math.Float32bits(v))
	}

	shape := s.Shape()
	value := cbor.Tag{
		Number: tagMultiDimArray,
		Content: []any{
			shape[:],
			cbor.Tag{Number: tagFloat32LE, Content: payload},
		},
	}

	if err := cbor.NewEncoder(w).Encode(value); err != nil {
		return fmt.Errorf("failed to encode cbor: %w", err)
	}
	return nil
}

// ReadCBOR decodes a stack written by WriteCBOR.
func ReadCBOR(r io.Reader) (*FrameStack, error) {
	var tag cbor.Tag
	if err := cbor.NewDecoder(r).Decode(&tag); err != nil {
		return nil, fmt.Errorf("%w: failed to decode cbor: %v", ErrInvalidInput, err)
	}
	if tag.Number != tagMultiDimArray {
		return nil, fmt.Errorf("%w: expected multidim tag %d, got %d", ErrInvalidInput, tagMultiDimArray, tag.Number)
	}

	items, ok := tag.Content.([]any)
	if !ok || len(items) != 2 {
		return nil, fmt.Errorf("%w: invalid multidim array content", ErrInvalidInput)
	}

	dimsRaw, ok := items[0].([]any)
	if !ok || len(dimsRaw) != 4 {
		return nil, fmt.Errorf("%w: expected 4 dimensions", ErrInvalidInput)
	}
	var dims [4]int
	for i, d := range dimsRaw {
		n, err := toInt(d)
		if err != nil {
			return nil, err
		}
		dims[i] = n
	}
	if dims[0] != Channels {
		return nil, fmt.Errorf("%w: expected %d channels, got %d", ErrInvalidInput, Channels, dims[0])
	}

	typed, ok := items[1].(cbor.Tag)
	if !ok || typed.Number != tagFloat32LE {
		return nil, fmt.Errorf("%w: expected float32 typed array tag %d", ErrInvalidInput, tagFloat32LE)
	}
	payload, ok := typed.Content.([]byte)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported typed array content %T", ErrInvalidInput, typed.Content)
	}

	s := &FrameStack{Frames: dims[1], Height: dims[2], Width: dims[3]}
	n, ok := elementCount(s.Frames, s.Height, s.Width, len(payload)/4)
	if !ok || 4*n != len(payload) {
		return nil, fmt.Errorf("%w: dimension mismatch: shape %v with %d payload bytes", ErrInvalidInput, s.Shape(), len(payload))
	}
	s.Data = make([]float32, n)
	if err := binary.Read(bytes.NewReader(payload), binary.LittleEndian, s.Data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s, nil
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		if n > math.MaxInt {
			return 0, fmt.Errorf("%w: dimension %d out of range", ErrInvalidInput, n)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("%w: unsupported dimension type %T", ErrInvalidInput, v)
	}
}
