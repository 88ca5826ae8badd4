package query

import (
	"strings"
	"testing"
)

func TestMemoization(t *testing.T) {
	rt := NewRuntime()
	text := NewInput[uint32, string](rt, "text")

	computed := 0
	length := NewDerived(rt, "length", func(key uint32) (int, bool) {
		computed++
		s, ok := text.Get(key)
		if !ok {
			return 0, false
		}
		return len(s), true
	})

	text.Set(0, "hello")

	v1, ok := length.Get(0)
	if !ok || v1 != 5 {
		t.Fatalf("expected (5, true), got (%d, %v)", v1, ok)
	}
	v2, ok := length.Get(0)
	if !ok || v2 != 5 {
		t.Fatalf("expected (5, true) on second read, got (%d, %v)", v2, ok)
	}
	if computed != 1 {
		t.Errorf("expected exactly one recomputation, got %d", computed)
	}

	stats := rt.Stats()["length"]
	if stats.Misses != 1 || stats.Hits != 1 {
		t.Errorf("expected 1 miss / 1 hit, got %d / %d", stats.Misses, stats.Hits)
	}
}

func TestInvalidationOnWrite(t *testing.T) {
	rt := NewRuntime()
	text := NewInput[uint32, string](rt, "text")

	length := NewDerived(rt, "length", func(key uint32) (int, bool) {
		s, ok := text.Get(key)
		if !ok {
			return 0, false
		}
		return len(s), true
	})

	text.Set(0, "ab")
	if v, _ := length.Get(0); v != 2 {
		t.Fatalf("expected length 2, got %d", v)
	}

	text.Set(0, "abcd")
	if v, _ := length.Get(0); v != 4 {
		t.Errorf("expected length 4 after rewrite, got %d", v)
	}
}

func TestIndependentSlots(t *testing.T) {
	rt := NewRuntime()
	name := NewInput[uint32, string](rt, "name")
	text := NewInput[uint32, string](rt, "text")

	computed := 0
	length := NewDerived(rt, "length", func(key uint32) (int, bool) {
		computed++
		s, ok := text.Get(key)
		if !ok {
			return 0, false
		}
		return len(s), true
	})

	text.Set(0, "hello")
	length.Get(0)

	// Writing an unrelated input must not invalidate the cached length.
	name.Set(0, "a.txt")
	length.Get(0)
	if computed != 1 {
		t.Errorf("unrelated write invalidated the memo: %d recomputations", computed)
	}

	// Keys are independent too.
	text.Set(1, "other")
	length.Get(0)
	if computed != 1 {
		t.Errorf("write to another key invalidated the memo: %d recomputations", computed)
	}
}

func TestNestedDerivedPropagatesDeps(t *testing.T) {
	rt := NewRuntime()
	text := NewInput[uint32, string](rt, "text")

	lower := NewDerived(rt, "lower", func(key uint32) (string, bool) {
		s, ok := text.Get(key)
		if !ok {
			return "", false
		}
		return strings.ToLower(s), true
	})
	computed := 0
	firstWord := NewDerived(rt, "first_word", func(key uint32) (string, bool) {
		computed++
		s, ok := lower.Get(key)
		if !ok {
			return "", false
		}
		word, _, _ := strings.Cut(s, " ")
		return word, true
	})

	text.Set(0, "Hello World")
	if v, _ := firstWord.Get(0); v != "hello" {
		t.Fatalf("expected %q, got %q", "hello", v)
	}

	// Warm the inner query so the outer recomputation hits its cache: the
	// inner memo's cells must still flow into the outer dependency set.
	text.Set(0, "Bye World")
	if v, _ := lower.Get(0); v != "bye world" {
		t.Fatalf("expected %q, got %q", "bye world", v)
	}
	if v, _ := firstWord.Get(0); v != "bye" {
		t.Errorf("expected %q, got %q", "bye", v)
	}

	text.Set(0, "Again World")
	if v, _ := firstWord.Get(0); v != "again" {
		t.Errorf("nested dependency lost after cache hit: got %q", v)
	}
	if computed != 3 {
		t.Errorf("expected 3 recomputations of first_word, got %d", computed)
	}
}

func TestDynamicDependencies(t *testing.T) {
	rt := NewRuntime()
	selector := NewInput[uint32, bool](rt, "selector")
	left := NewInput[uint32, string](rt, "left")
	right := NewInput[uint32, string](rt, "right")

	computed := 0
	pick := NewDerived(rt, "pick", func(key uint32) (string, bool) {
		computed++
		useLeft, ok := selector.Get(key)
		if !ok {
			return "", false
		}
		if useLeft {
			return left.Get(key)
		}
		return right.Get(key)
	})

	selector.Set(0, true)
	left.Set(0, "L")
	right.Set(0, "R")

	if v, _ := pick.Get(0); v != "L" {
		t.Fatalf("expected L, got %q", v)
	}

	// The last computation never read `right`, so writing it is invisible.
	right.Set(0, "R2")
	pick.Get(0)
	if computed != 1 {
		t.Errorf("write to unread input forced a recomputation: %d", computed)
	}

	// Flipping the selector swaps the dependency set.
	selector.Set(0, false)
	if v, _ := pick.Get(0); v != "R2" {
		t.Errorf("expected R2, got %q", v)
	}
	right.Set(0, "R3")
	if v, _ := pick.Get(0); v != "R3" {
		t.Errorf("expected R3, got %q", v)
	}
	if computed != 3 {
		t.Errorf("expected 3 recomputations, got %d", computed)
	}
}

func TestNotSetIsCachedAndInvalidated(t *testing.T) {
	rt := NewRuntime()
	text := NewInput[uint32, string](rt, "text")

	computed := 0
	length := NewDerived(rt, "length", func(key uint32) (int, bool) {
		computed++
		s, ok := text.Get(key)
		if !ok {
			return 0, false
		}
		return len(s), true
	})

	// Absence is a normal cacheable outcome.
	if _, ok := length.Get(7); ok {
		t.Fatal("expected absent result for unset input")
	}
	if _, ok := length.Get(7); ok {
		t.Fatal("expected absent result to stay absent")
	}
	if computed != 1 {
		t.Errorf("absent outcome was not cached: %d recomputations", computed)
	}

	// The first write must invalidate readers that observed the absence.
	text.Set(7, "now")
	v, ok := length.Get(7)
	if !ok || v != 3 {
		t.Errorf("expected (3, true) after first write, got (%d, %v)", v, ok)
	}
}

func TestRevisionAdvancesPerWrite(t *testing.T) {
	rt := NewRuntime()
	text := NewInput[uint32, string](rt, "text")

	r0 := rt.Revision()
	text.Set(0, "a")
	text.Set(1, "b")
	if rt.Revision() != r0+2 {
		t.Errorf("expected revision %d, got %d", r0+2, rt.Revision())
	}
}
