package model

import "testing"

func TestOptional(t *testing.T) {
	var zero Optional[float64]
	if zero.Present() {
		t.Fatal("expected zero value to be absent")
	}
	if got := zero.OrElse(0.9); got != 0.9 {
		t.Fatalf("expected fallback, got %v", got)
	}

	some := Some(0.915)
	v, ok := some.Get()
	if !ok || v != 0.915 {
		t.Fatalf("expected present 0.915, got %v %v", v, ok)
	}
	if None[int]().Present() {
		t.Fatal("expected None to be absent")
	}
}
