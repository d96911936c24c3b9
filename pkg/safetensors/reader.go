package safetensors

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// lengthPrefixSize is the size of the little-endian header length field.
const lengthPrefixSize = 8

// File is an opened SafeTensors file. Tensor data aliases the underlying
// buffer, which for files returned by Open is a read-only memory mapping.
type File struct {
	path    string
	file    *os.File
	data    []byte
	header  Header
	dataOff uint64
	release func([]byte) error
	closed  bool
}

// Open memory-maps the file at path and parses its header.
// Always call Close when done to unmap the file.
func Open(path string) (*File, error) {
	//nolint:gosec // G304: shard paths come from directory discovery
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("stat: %w", err)
	}
	if stat.Size() < lengthPrefixSize {
		_ = file.Close()
		return nil, fmt.Errorf("%w: %d bytes", ErrTruncated, stat.Size())
	}

	data, err := mmapFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("mmap: %w", err)
	}

	f := &File{path: path, file: file, data: data, release: munmapFile}
	if err := f.parse(); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

// Decode parses an in-memory SafeTensors buffer. The returned File aliases
// buf; Close is a no-op apart from marking the file closed.
func Decode(buf []byte) (*File, error) {
	f := &File{data: buf}
	if err := f.parse(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) parse() error {
	size := uint64(len(f.data))
	if size < lengthPrefixSize {
		return fmt.Errorf("%w: %d bytes", ErrTruncated, size)
	}

	headerLen := binary.LittleEndian.Uint64(f.data[:lengthPrefixSize])
	if headerLen > MaxHeaderSize {
		return fmt.Errorf("%w: %d bytes", ErrHeaderTooLarge, headerLen)
	}
	end := lengthPrefixSize + headerLen
	if end > size {
		return fmt.Errorf("%w: header ends at %d, file is %d bytes", ErrTruncated, end, size)
	}

	if err := json.Unmarshal(f.data[lengthPrefixSize:end], &f.header); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}
	f.dataOff = end

	return ValidateHeader(&f.header, size-end)
}

// Path returns the path the file was opened from, empty for Decode.
func (f *File) Path() string {
	return f.path
}

// Size returns the total file size in bytes.
func (f *File) Size() int64 {
	return int64(len(f.data))
}

// Metadata returns the "__metadata__" map, nil when absent.
func (f *File) Metadata() map[string]string {
	return f.header.Metadata
}

// Header returns the parsed header.
func (f *File) Header() Header {
	return f.header
}

// Len returns the number of tensors in the file.
func (f *File) Len() int {
	return len(f.header.Tensors)
}

// Names returns all tensor names in sorted order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.header.Tensors))
	for name := range f.header.Tensors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Tensor returns the named tensor. Its Data aliases the file buffer and is
// invalid after Close.
func (f *File) Tensor(name string) (Tensor, bool) {
	info, ok := f.header.Tensors[name]
	if !ok || f.closed {
		return Tensor{}, false
	}
	begin := f.dataOff + info.DataOffsets[0]
	end := f.dataOff + info.DataOffsets[1]
	return Tensor{
		DType: info.DType,
		Shape: info.Shape,
		Data:  f.data[begin:end:end],
	}, true
}

// Tensors returns every tensor keyed by name. Data aliases the file buffer.
func (f *File) Tensors() (map[string]Tensor, error) {
	if f.closed {
		return nil, ErrClosed
	}
	out := make(map[string]Tensor, len(f.header.Tensors))
	for name := range f.header.Tensors {
		t, _ := f.Tensor(name)
		out[name] = t
	}
	return out, nil
}

// Close unmaps and closes the file. It is safe to call more than once.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true

	var err error
	if f.release != nil && f.data != nil {
		err = f.release(f.data)
	}
	f.data = nil

	if f.file != nil {
		if closeErr := f.file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}
	return err
}
