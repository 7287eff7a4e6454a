// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package rulestore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// ErrNotFound is returned by Load when no rules have been saved.
var ErrNotFound = errors.New("no rules found")

// Store represents a location to which a zone's encoded rules can be
// saved and from which they can be loaded.
type Store interface {
	Save(ctx context.Context, data []byte) error
	Load(ctx context.Context) ([]byte, error)
}

// ReaderWriterAt represents byte addressable storage.
type ReaderWriterAt interface {
	io.ReaderAt
	io.WriterAt
}

// Erased is the value of a byte in erased Memory.
const Erased = 0xff

// Memory is an in-memory, byte addressable device, in the manner of an
// EEPROM, that is initially erased. Use Region to store rules at a
// specific address within it.
type Memory struct {
	mu   sync.Mutex
	data []byte
}

// NewMemory returns an erased Memory of the specified size.
func NewMemory(size int) *Memory {
	return &Memory{data: bytes.Repeat([]byte{Erased}, size)}
}

func (m *Memory) ReadAt(p []byte, off int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if off < 0 || off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (m *Memory) WriteAt(p []byte, off int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if off < 0 || off+int64(len(p)) > int64(len(m.data)) {
		return 0, fmt.Errorf("write of %v bytes at %v exceeds memory size of %v bytes", len(p), off, len(m.data))
	}
	return copy(m.data[off:], p), nil
}

// Size returns the size of the memory in bytes.
func (m *Memory) Size() int {
	return len(m.data)
}

// Region returns a Store for the length bytes starting at addr.
func (m *Memory) Region(addr int64, length int) *Region {
	return NewRegion(m, addr, length)
}

// Region is a Store that occupies a fixed range of addresses within
// byte addressable storage such as a Memory or an *os.File.
type Region struct {
	rw     ReaderWriterAt
	addr   int64
	length int
}

// NewRegion returns a Store for the length bytes at addr within rw.
func NewRegion(rw ReaderWriterAt, addr int64, length int) *Region {
	return &Region{rw: rw, addr: addr, length: length}
}

func (r *Region) String() string {
	return fmt.Sprintf("region[%#x:%#x]", r.addr, r.addr+int64(r.length))
}

// Save implements Store.
func (r *Region) Save(_ context.Context, data []byte) error {
	if len(data) > r.length {
		return fmt.Errorf("%v: %v bytes exceeds region size of %v bytes", r, len(data), r.length)
	}
	_, err := r.rw.WriteAt(data, r.addr)
	return err
}

// Load implements Store. It returns ErrNotFound if the region
// is entirely erased.
func (r *Region) Load(_ context.Context) ([]byte, error) {
	buf := make([]byte, r.length)
	n, err := r.rw.ReadAt(buf, r.addr)
	if n < r.length {
		if n == 0 && errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%v: %w", r, ErrNotFound)
		}
		return nil, fmt.Errorf("%v: short read of %v bytes: %w", r, n, err)
	}
	if bytes.Count(buf, []byte{Erased}) == len(buf) {
		return nil, fmt.Errorf("%v: %w", r, ErrNotFound)
	}
	return buf, nil
}

// File is a Store that saves to a file, replacing its contents on
// each save.
type File struct {
	path string
	perm os.FileMode
}

// NewFile returns a Store for the specified file.
func NewFile(path string) *File {
	return &File{path: path, perm: 0600}
}

func (f *File) String() string {
	return "file:" + f.path
}

// Save implements Store. The data is written to a temporary file which
// is then renamed so that a failed save never leaves a partial record.
func (f *File) Save(_ context.Context, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Chmod(f.perm); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}

// Load implements Store, it returns ErrNotFound if the file does
// not exist.
func (f *File) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%v: %w", f, ErrNotFound)
	}
	return data, err
}
