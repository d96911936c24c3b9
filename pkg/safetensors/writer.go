package safetensors

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// headerAlignment pads the JSON header so the data section starts on an
// 8-byte boundary, as the reference implementation does.
const headerAlignment = 8

// Write serializes tensors and optional metadata to w and returns the
// number of bytes written.
//
// Tensors are laid out in name order with contiguous offsets. For known
// dtypes the data length must match the shape; unknown dtypes are written
// as-is.
func Write(w io.Writer, tensors map[string]Tensor, metadata map[string]string) (int64, error) {
	names := make([]string, 0, len(tensors))
	for name := range tensors {
		names = append(names, name)
	}
	sort.Strings(names)

	header := Header{
		Metadata: metadata,
		Tensors:  make(map[string]TensorInfo, len(tensors)),
	}

	var offset uint64
	for _, name := range names {
		if name == "" || name == metadataKey {
			return 0, &FormatError{Tensor: name, Reason: "invalid_name", Details: "reserved or empty tensor name"}
		}
		t := tensors[name]
		shape := t.Shape
		if shape == nil {
			shape = []int64{}
		}
		size := uint64(len(t.Data))
		info := TensorInfo{
			DType:       t.DType,
			Shape:       shape,
			DataOffsets: [2]uint64{offset, offset + size},
		}
		if err := validateShape(name, info); err != nil {
			return 0, err
		}
		header.Tensors[name] = info
		offset += size
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return 0, fmt.Errorf("marshal header: %w", err)
	}
	if pad := len(headerJSON) % headerAlignment; pad != 0 {
		headerJSON = append(headerJSON, bytes.Repeat([]byte{' '}, headerAlignment-pad)...)
	}

	bw := bufio.NewWriterSize(w, 1<<20)
	var written int64

	var prefix [lengthPrefixSize]byte
	binary.LittleEndian.PutUint64(prefix[:], uint64(len(headerJSON)))
	n, err := bw.Write(prefix[:])
	written += int64(n)
	if err != nil {
		return written, fmt.Errorf("write header length: %w", err)
	}

	n, err = bw.Write(headerJSON)
	written += int64(n)
	if err != nil {
		return written, fmt.Errorf("write header: %w", err)
	}

	for _, name := range names {
		n, err = bw.Write(tensors[name].Data)
		written += int64(n)
		if err != nil {
			return written, fmt.Errorf("write tensor %s: %w", name, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return written, fmt.Errorf("flush: %w", err)
	}
	return written, nil
}

// Encode serializes tensors and metadata into a new byte slice.
func Encode(tensors map[string]Tensor, metadata map[string]string) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := Write(&buf, tensors, metadata); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
