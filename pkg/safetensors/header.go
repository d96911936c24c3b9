package safetensors

import (
	"encoding/json"
	"fmt"
)

// metadataKey is the reserved header entry holding free-form string metadata.
const metadataKey = "__metadata__"

// TensorInfo describes one tensor entry in the JSON header.
type TensorInfo struct {
	DType       DType     `json:"dtype"`
	Shape       []int64   `json:"shape"`
	DataOffsets [2]uint64 `json:"data_offsets"` // [begin, end) within the data section
}

// Size returns the byte length declared by the data offsets.
func (ti TensorInfo) Size() uint64 {
	return ti.DataOffsets[1] - ti.DataOffsets[0]
}

// Header is the decoded JSON header of a SafeTensors file.
type Header struct {
	Metadata map[string]string
	Tensors  map[string]TensorInfo
}

// UnmarshalJSON splits the reserved metadata entry from tensor entries.
func (h *Header) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if m, ok := raw[metadataKey]; ok {
		if err := json.Unmarshal(m, &h.Metadata); err != nil {
			return fmt.Errorf("metadata: %w", err)
		}
		delete(raw, metadataKey)
	}

	h.Tensors = make(map[string]TensorInfo, len(raw))
	for name, value := range raw {
		var info TensorInfo
		if err := json.Unmarshal(value, &info); err != nil {
			return fmt.Errorf("tensor %q: %w", name, err)
		}
		h.Tensors[name] = info
	}
	return nil
}

// MarshalJSON writes metadata (when present) alongside tensor entries.
// encoding/json sorts map keys, so the output is deterministic.
func (h Header) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(h.Tensors)+1)
	if len(h.Metadata) > 0 {
		out[metadataKey] = h.Metadata
	}
	for name, info := range h.Tensors {
		out[name] = info
	}
	return json.Marshal(out)
}

// Tensor is a named tensor's dtype, shape, and raw bytes.
type Tensor struct {
	DType DType
	Shape []int64
	Data  []byte
}

// NumElements returns the product of the shape dimensions.
// A scalar (empty shape) has one element.
func (t Tensor) NumElements() int64 {
	n := int64(1)
	for _, d := range t.Shape {
		n *= d
	}
	return n
}

// Clone returns a deep copy that does not alias the source buffer.
func (t Tensor) Clone() Tensor {
	shape := make([]int64, len(t.Shape))
	copy(shape, t.Shape)
	data := make([]byte, len(t.Data))
	copy(data, t.Data)
	return Tensor{DType: t.DType, Shape: shape, Data: data}
}
