// fastcache_test.go: constructor and backend-selection tests
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package fastcache

import "testing"

func TestNew_DefaultsToMemory(t *testing.T) {
	cache, err := New[string, int](Config{MaxSize: 10}, nil, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer cache.Close()

	if _, ok := cache.(*memoryEngine[string, int]); !ok {
		t.Errorf("expected *memoryEngine, got %T", cache)
	}
}

func TestNew_InvalidTTL(t *testing.T) {
	_, err := New[string, int](Config{MaxSize: 10, TTL: -1}, nil, nil)
	if err == nil {
		t.Fatal("expected error for negative TTL")
	}
	if !IsConfigError(err) {
		t.Errorf("expected a config error, got %v", err)
	}
}

func TestNew_DefaultMaxSize(t *testing.T) {
	cache, err := New[string, int](Config{}, nil, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer cache.Close()

	if info := cache.Info(); info.MaxSize != DefaultMaxSize {
		t.Errorf("expected MaxSize %d, got %d", DefaultMaxSize, info.MaxSize)
	}
}
