package collection

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPrependDoesNotAlias(t *testing.T) {
	in := []int{2, 3}
	out := Prepend(in, 1)
	if diff := cmp.Diff([]int{1, 2, 3}, out); diff != "" {
		t.Fatalf("prepend mismatch (-want +got):\n%s", diff)
	}
	out[1] = 99
	if in[0] != 2 {
		t.Fatal("prepend aliased its input")
	}
}

func TestUpdateWhere(t *testing.T) {
	in := []int{1, 2, 3, 2}
	out, hit := UpdateWhere(in, func(v int) bool { return v == 2 }, func(v int) int { return v * 10 })
	if !hit {
		t.Fatal("expected a match")
	}
	if diff := cmp.Diff([]int{1, 20, 3, 20}, out); diff != "" {
		t.Fatalf("update mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2, 3, 2}, in); diff != "" {
		t.Fatalf("input mutated (-want +got):\n%s", diff)
	}

	_, hit = UpdateWhere(in, func(v int) bool { return v == 7 }, func(v int) int { return v })
	if hit {
		t.Fatal("expected no match")
	}
}

func TestRemoveWhere(t *testing.T) {
	in := []string{"a", "b", "c"}
	out, removed := RemoveWhere(in, func(s string) bool { return s == "b" })
	if !removed {
		t.Fatal("expected removal")
	}
	if diff := cmp.Diff([]string{"a", "c"}, out); diff != "" {
		t.Fatalf("remove mismatch (-want +got):\n%s", diff)
	}
	if _, removed := RemoveWhere(in, func(s string) bool { return s == "z" }); removed {
		t.Fatal("expected nothing removed")
	}
}

func TestFindFilterReversed(t *testing.T) {
	xs := []int{5, 6, 7, 8}
	if v, ok := Find(xs, func(v int) bool { return v > 6 }); !ok || v != 7 {
		t.Fatalf("find = %d,%v", v, ok)
	}
	if _, ok := Find(xs, func(v int) bool { return v > 100 }); ok {
		t.Fatal("find should miss")
	}
	if diff := cmp.Diff([]int{6, 8}, Filter(xs, func(v int) bool { return v%2 == 0 })); diff != "" {
		t.Fatalf("filter mismatch:\n%s", diff)
	}
	if diff := cmp.Diff([]int{8, 7, 6, 5}, Reversed(xs)); diff != "" {
		t.Fatalf("reversed mismatch:\n%s", diff)
	}
	if Clone[int](nil) == nil {
		t.Fatal("clone of nil should be empty, not nil")
	}
}
