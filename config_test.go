// config_test.go
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package fastcache

import "testing"

func TestConfig_Validate_AppliesDefaults(t *testing.T) {
	c := Config{}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if c.MaxSize != DefaultMaxSize {
		t.Errorf("expected MaxSize %d, got %d", DefaultMaxSize, c.MaxSize)
	}
	if c.MaxKeySize != DefaultMaxKeySize {
		t.Errorf("expected MaxKeySize %d, got %d", DefaultMaxKeySize, c.MaxKeySize)
	}
	if c.MaxValueSize != DefaultMaxValueSize {
		t.Errorf("expected MaxValueSize %d, got %d", DefaultMaxValueSize, c.MaxValueSize)
	}
	if c.Logger == nil || c.TimeProvider == nil || c.MetricsCollector == nil {
		t.Error("expected Logger/TimeProvider/MetricsCollector to be defaulted")
	}
}

func TestConfig_Validate_RejectsNegativeTTL(t *testing.T) {
	c := Config{TTL: -1}
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for negative TTL")
	}
}

func TestConfig_Validate_NegativeCleanupIntervalClampedToZero(t *testing.T) {
	c := Config{CleanupInterval: -1}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if c.CleanupInterval != 0 {
		t.Errorf("expected CleanupInterval clamped to 0, got %v", c.CleanupInterval)
	}
}

func TestBackend_String(t *testing.T) {
	cases := map[Backend]string{Memory: "memory", Shared: "shared", Backend(99): "unknown"}
	for b, want := range cases {
		if got := b.String(); got != want {
			t.Errorf("Backend(%d).String() = %q, want %q", b, got, want)
		}
	}
}
