// policy_test.go
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package fastcache

import "testing"

func TestPolicyState_LRU_PicksLeastRecentlyUsed(t *testing.T) {
	ps := newPolicyState[string](LRU)
	ps.onInsert("A")
	ps.onInsert("B")
	ps.onHit("A")

	victim, ok := ps.pickVictim()
	if !ok || victim != "B" {
		t.Fatalf("expected B as LRU victim, got %v (ok=%v)", victim, ok)
	}
}

func TestPolicyState_MRU_PicksMostRecentlyUsed(t *testing.T) {
	ps := newPolicyState[string](MRU)
	ps.onInsert("A")
	ps.onInsert("B")
	ps.onHit("A")

	victim, ok := ps.pickVictim()
	if !ok || victim != "A" {
		t.Fatalf("expected A as MRU victim, got %v (ok=%v)", victim, ok)
	}
}

func TestPolicyState_FIFO_IgnoresHits(t *testing.T) {
	ps := newPolicyState[string](FIFO)
	ps.onInsert("A")
	ps.onInsert("B")
	ps.onHit("A") // must not change insertion order

	victim, ok := ps.pickVictim()
	if !ok || victim != "A" {
		t.Fatalf("expected A as FIFO victim despite the hit, got %v (ok=%v)", victim, ok)
	}
}

func TestPolicyState_LFU_PicksLowestFrequency(t *testing.T) {
	ps := newPolicyState[string](LFU)
	ps.onInsert("A")
	ps.onInsert("B")
	ps.onHit("A")
	ps.onHit("A")

	victim, ok := ps.pickVictim()
	if !ok || victim != "B" {
		t.Fatalf("expected B (frequency 0) as LFU victim, got %v (ok=%v)", victim, ok)
	}
}

func TestPolicyState_Clear_ResetsBookkeeping(t *testing.T) {
	ps := newPolicyState[string](LRU)
	ps.onInsert("A")
	ps.clear()

	if _, ok := ps.pickVictim(); ok {
		t.Error("expected no victim after clear")
	}
}

func TestPolicyState_OnRemove_ForgetsKey(t *testing.T) {
	ps := newPolicyState[string](LRU)
	ps.onInsert("A")
	ps.onInsert("B")
	ps.onRemove("B")

	victim, ok := ps.pickVictim()
	if !ok || victim != "A" {
		t.Fatalf("expected A as the only remaining entry, got %v (ok=%v)", victim, ok)
	}
}
