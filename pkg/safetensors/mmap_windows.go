//go:build windows

package safetensors

import (
	"os"
	"syscall"
	"unsafe"
)

// mmapFile maps the whole file read-only.
func mmapFile(f *os.File, size int64) ([]byte, error) {
	handle, err := syscall.CreateFileMapping(
		syscall.Handle(f.Fd()),
		nil,
		syscall.PAGE_READONLY,
		uint32(size>>32), //nolint:gosec // G115: high dword of the size
		uint32(size),     //nolint:gosec // G115: low dword of the size
		nil,
	)
	if err != nil {
		return nil, err
	}
	// The view keeps the mapping object alive after its handle is closed.
	defer syscall.CloseHandle(handle) //nolint:errcheck

	addr, err := syscall.MapViewOfFile(handle, syscall.FILE_MAP_READ, 0, 0, uintptr(size))
	if err != nil {
		return nil, err
	}
	//nolint:govet,gosec // addr is a live view returned by MapViewOfFile
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), int(size)), nil
}

func munmapFile(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	return syscall.UnmapViewOfFile(uintptr(unsafe.Pointer(&data[0])))
}
