// Package safetensors reads and writes the SafeTensors container format.
//
// A SafeTensors file is laid out as:
//
//	[8 bytes: header length N (uint64 LE)]
//	[N bytes: JSON header]
//	[tensor data: raw little-endian bytes]
//
// The JSON header maps tensor names to {dtype, shape, data_offsets} entries,
// where data_offsets are [begin, end) byte offsets relative to the start of
// the data section. An optional "__metadata__" entry holds a string map.
//
// The package treats tensor payloads as opaque bytes. Open validates the
// structure of a file (header bounds, offsets, sizes) but never inspects
// tensor values.
//
// # Usage
//
//	f, err := safetensors.Open("model-00001-of-00002.safetensors")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	for _, name := range f.Names() {
//	    t, _ := f.Tensor(name)
//	    fmt.Println(name, t.DType, t.Shape)
//	}
//
// Tensors returned by a File alias its memory mapping and are only valid
// until Close. Use Tensor.Clone to keep a tensor past that point.
package safetensors
