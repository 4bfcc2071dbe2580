// key_test.go
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package fastcache

import "testing"

func TestNewKey_Comparable(t *testing.T) {
	k1, err := NewKey("hello")
	if err != nil {
		t.Fatalf("NewKey() error = %v", err)
	}
	k2, err := NewKey("hello")
	if err != nil {
		t.Fatalf("NewKey() error = %v", err)
	}

	if k1.Hash() != k2.Hash() {
		t.Error("equal values should hash identically")
	}
	if k1.Value() != k2.Value() {
		t.Error("Value() should round-trip")
	}
}

func TestNewKey_DifferentValuesDifferentHash(t *testing.T) {
	k1, _ := NewKey(1)
	k2, _ := NewKey(2)
	if k1.Hash() == k2.Hash() {
		t.Error("different values should (almost certainly) hash differently")
	}
}

func TestNewKey_NotHashable(t *testing.T) {
	type box struct{ v any }

	_, err := NewKey(box{v: []int{1, 2, 3}})
	if err == nil {
		t.Fatal("expected NotHashable error for a slice-backed interface value")
	}
	if !IsNotHashable(err) {
		t.Errorf("expected IsNotHashable, got %v", err)
	}
}
