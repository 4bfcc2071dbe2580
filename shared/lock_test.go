// lock_test.go
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package shared

import "testing"

func TestSeqlock_AcquireReleaseBumpsToEven(t *testing.T) {
	mapped := make([]byte, headerSize)

	if !acquireSpinlock(mapped) {
		t.Fatal("expected to acquire an uncontended spinlock")
	}
	if beginRead(mapped)%2 == 0 {
		t.Error("expected odd generation while writer active")
	}

	releaseSpinlock(mapped)
	if beginRead(mapped)%2 != 0 {
		t.Error("expected even generation after release")
	}
}

func TestSeqlock_ReadStable(t *testing.T) {
	if !readStable(4, 4) {
		t.Error("expected matching even generations to be stable")
	}
	if readStable(3, 3) {
		t.Error("expected matching odd generations to be unstable")
	}
	if readStable(4, 6) {
		t.Error("expected mismatched generations to be unstable")
	}
}

func TestAcquireSpinlock_FailsWhileHeld(t *testing.T) {
	mapped := make([]byte, headerSize)

	if !acquireSpinlock(mapped) {
		t.Fatal("expected first acquire to succeed")
	}

	word := generationWord(mapped)
	if *word%2 == 0 {
		t.Fatal("test setup invariant violated: generation should be odd")
	}

	// a second acquirer spins against the odd generation until its
	// attempts run out, and never succeeds
	if acquireSpinlock(mapped) {
		t.Error("expected a second acquire to fail while the spinlock is held")
	}
}
