package domain

// Tensor is an opaque tensor blob. Its contents are never interpreted.
type Tensor struct {
	DType string
	Shape []int64
	Data  []byte
}

// Clone returns a copy that does not share Shape or Data with t.
func (t Tensor) Clone() Tensor {
	shape := make([]int64, len(t.Shape))
	copy(shape, t.Shape)
	data := make([]byte, len(t.Data))
	copy(data, t.Data)
	return Tensor{DType: t.DType, Shape: shape, Data: data}
}

// TensorMap maps tensor names to tensors.
type TensorMap map[string]Tensor

// Bytes returns the total payload size of all tensors.
func (m TensorMap) Bytes() int64 {
	var n int64
	for _, t := range m {
		n += int64(len(t.Data))
	}
	return n
}

// Model is the accumulated result of merging shards.
type Model struct {
	Tensors  TensorMap
	Metadata map[string]string
}

// NewModel returns an empty model ready for merging.
func NewModel() *Model {
	return &Model{Tensors: make(TensorMap)}
}

// Merge inserts every tensor of src, overwriting existing keys, and
// returns how many keys were already present. Metadata merges the same way.
func (m *Model) Merge(src TensorMap, metadata map[string]string) int {
	collisions := 0
	for name, t := range src {
		if _, ok := m.Tensors[name]; ok {
			collisions++
		}
		m.Tensors[name] = t
	}
	if len(metadata) > 0 && m.Metadata == nil {
		m.Metadata = make(map[string]string, len(metadata))
	}
	for k, v := range metadata {
		m.Metadata[k] = v
	}
	return collisions
}

// Len returns the number of tensors.
func (m *Model) Len() int {
	return len(m.Tensors)
}

// Empty returns true if no tensor has been merged.
func (m *Model) Empty() bool {
	return len(m.Tensors) == 0
}
