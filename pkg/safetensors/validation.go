package safetensors

import (
	"fmt"
	"math"
	"sort"
)

// Validation limits for resource protection.
const (
	MaxHeaderSize  = 100 * 1024 * 1024 // 100MB
	MaxTensorCount = 1_000_000
)

// ValidateHeader checks every tensor entry against a data section of
// dataSize bytes: offsets ordered and in bounds, byte length consistent
// with dtype and shape (for known dtypes), and no two tensors overlapping.
func ValidateHeader(h *Header, dataSize uint64) error {
	if len(h.Tensors) > MaxTensorCount {
		return &FormatError{
			Reason:  "too_many_tensors",
			Details: fmt.Sprintf("got %d, max %d", len(h.Tensors), MaxTensorCount),
		}
	}

	type span struct {
		name       string
		begin, end uint64
	}
	spans := make([]span, 0, len(h.Tensors))

	for name, info := range h.Tensors {
		if name == "" {
			return &FormatError{Reason: "invalid_name", Details: "empty tensor name"}
		}
		begin, end := info.DataOffsets[0], info.DataOffsets[1]
		if begin > end {
			return &FormatError{
				Tensor:  name,
				Reason:  "invalid_offsets",
				Details: fmt.Sprintf("begin %d > end %d", begin, end),
			}
		}
		if end > dataSize {
			return &FormatError{
				Tensor:  name,
				Reason:  "out_of_bounds",
				Details: fmt.Sprintf("end %d > data size %d", end, dataSize),
			}
		}
		if err := validateShape(name, info); err != nil {
			return err
		}
		spans = append(spans, span{name: name, begin: begin, end: end})
	}

	sort.Slice(spans, func(i, j int) bool {
		if spans[i].begin != spans[j].begin {
			return spans[i].begin < spans[j].begin
		}
		return spans[i].end < spans[j].end
	})
	// reach is the span extending furthest into the data section so far.
	var reach span
	for _, cur := range spans {
		// Zero-length tensors may share an offset with their neighbour.
		if cur.end > cur.begin && cur.begin < reach.end {
			return &FormatError{
				Tensor:  cur.name,
				Reason:  "offset_overlap",
				Details: fmt.Sprintf("[%d, %d) overlaps %q [%d, %d)", cur.begin, cur.end, reach.name, reach.begin, reach.end),
			}
		}
		if cur.end > reach.end {
			reach = cur
		}
	}
	return nil
}

func validateShape(name string, info TensorInfo) error {
	numel := uint64(1)
	for _, d := range info.Shape {
		if d < 0 {
			return &FormatError{
				Tensor:  name,
				Reason:  "invalid_shape",
				Details: fmt.Sprintf("negative dimension in %v", info.Shape),
			}
		}
		if d != 0 && numel > math.MaxUint64/uint64(d) {
			return overflowError(name, info)
		}
		numel *= uint64(d)
	}
	width := info.DType.Size()
	if width == 0 {
		return nil
	}
	if numel > math.MaxUint64/uint64(width) {
		return overflowError(name, info)
	}
	if want := numel * uint64(width); want != info.Size() {
		return &FormatError{
			Tensor:  name,
			Reason:  "size_mismatch",
			Details: fmt.Sprintf("%s%v needs %d bytes, offsets span %d", info.DType, info.Shape, want, info.Size()),
		}
	}
	return nil
}

func overflowError(name string, info TensorInfo) error {
	return &FormatError{
		Tensor:  name,
		Reason:  "invalid_shape",
		Details: fmt.Sprintf("%s%v overflows uint64 bytes", info.DType, info.Shape),
	}
}
