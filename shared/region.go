// region.go: path resolution, file creation, and mmap lifecycle
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package shared

import (
	"os"
	"path/filepath"
	"runtime"
	"syscall"
)

// Supported reports whether this platform has the process-shared locking
// primitives the shared backend requires (flock + mmap over a regular
// file). Spec §6.4: callers on unsupported platforms must refuse to
// instantiate the backend at construction time.
func Supported() bool {
	switch runtime.GOOS {
	case "linux", "darwin", "freebsd", "netbsd", "openbsd", "dragonfly", "solaris":
		return true
	default:
		return false
	}
}

// ResolvePath turns a caller-supplied region name into a filesystem path,
// per spec §6.4: /dev/shm on Linux, otherwise the platform temp directory
// plus an application subdirectory created at mode 0700. If name is
// already an absolute path, it is used as-is.
func ResolvePath(appName, name string) (string, error) {
	if filepath.IsAbs(name) {
		return name, nil
	}

	var dir string
	if runtime.GOOS == "linux" {
		dir = "/dev/shm"
	} else {
		dir = filepath.Join(os.TempDir(), appName)
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return "", err
		}
	}

	return filepath.Join(dir, name+".cache"), nil
}

// Params identifies the configuration a region was (or should be) created
// with. Opening a region whose on-disk header does not match Params
// triggers a reinit (spec §3 Lifecycle, §4.4 Initialization).
type Params struct {
	Capacity     uint64
	MaxKeySize   uint64
	MaxValueSize uint64
	Strategy     uint32
	TTLNanos     uint64
}

// Region is an opened, mmapped shared-cache file.
type Region struct {
	path   string
	file   *os.File
	mapped []byte
}

// OpenOrCreate opens path, creating and initializing it if absent, or
// reinitializing it if its header does not match params. The region is
// mmapped PROT_READ|PROT_WRITE, MAP_SHARED so writes are visible to every
// process that has it mapped.
func OpenOrCreate(path string, params Params) (*Region, error) {
	params.Capacity = nextPow2(params.Capacity)
	size := regionSize(params.Capacity, params.MaxKeySize, params.MaxValueSize)

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, err
	}

	// Spec §4.4 Initialization: two processes racing to create or reinit
	// the same region must not interleave their stat/truncate/header-write
	// sequences, so the whole detect-and-initialize path below runs under
	// the same inter-process writer lock Put/Clear use.
	wl, err := acquireWriterLock(path)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	defer wl.release()

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	needsInit := info.Size() != int64(size)
	if !needsInit {
		existing, err := mmapFile(f, size)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		if !magicMatches(existing) || !paramsMatch(decodeHeader(existing), params) {
			needsInit = true
			_ = syscall.Munmap(existing)
		} else {
			return &Region{path: path, file: f, mapped: existing}, nil
		}
	}

	if err := f.Truncate(0); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := f.Truncate(int64(size)); err != nil {
		_ = f.Close()
		return nil, err
	}

	mapped, err := mmapFile(f, size)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	h := header{
		Version:      formatVersion,
		Capacity:     params.Capacity,
		MaxKeySize:   params.MaxKeySize,
		MaxValueSize: params.MaxValueSize,
		Strategy:     params.Strategy,
		TTLNanos:     params.TTLNanos,
		OrderHead:    noSlot,
		OrderTail:    noSlot,
		// Spec §4.4 Initialization: "acquire the writer spinlock during
		// initialization." The header is written with an odd generation
		// (writer active) and only released to even once the slot table
		// is zeroed, so a reader that maps the region mid-initialization
		// sees an odd generation and retries.
		Seqlock: 1,
	}
	copy(mapped[0:headerSize], encodeHeader(&h))
	initSlotTable(mapped, params.Capacity)

	releaseSpinlock(mapped)

	return &Region{path: path, file: f, mapped: mapped}, nil
}

func paramsMatch(h header, p Params) bool {
	return h.Capacity == p.Capacity &&
		h.MaxKeySize == p.MaxKeySize &&
		h.MaxValueSize == p.MaxValueSize &&
		h.Strategy == p.Strategy &&
		h.TTLNanos == p.TTLNanos &&
		h.Version == formatVersion
}

func mmapFile(f *os.File, size uint64) ([]byte, error) {
	return syscall.Mmap(int(f.Fd()), 0, int(size), syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
}

// initSlotTable zeroes the slot table, which is equivalent to marking
// every slot empty (slotEmpty == 0).
func initSlotTable(mapped []byte, capacity uint64) {
	start := headerSize
	end := start + int(capacity)*slotSize
	for i := start; i < end; i++ {
		mapped[i] = 0
	}
}

// Close unmaps the region and closes the underlying file descriptor.
func (r *Region) Close() error {
	if r.mapped != nil {
		if err := syscall.Munmap(r.mapped); err != nil {
			return err
		}
		r.mapped = nil
	}
	return r.file.Close()
}

// Path returns the filesystem path backing this region.
func (r *Region) Path() string { return r.path }

// Bytes returns the raw mmapped bytes. Callers coordinate access via the
// seqlock/spinlock in lock.go; this package does not itself bounds-check
// every access beyond what slice indexing provides.
func (r *Region) Bytes() []byte { return r.mapped }
