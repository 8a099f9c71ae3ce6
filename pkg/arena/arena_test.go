package arena

import (
	"errors"
	"testing"
)

type token struct{ n int }

func TestArena_InsertGet(t *testing.T) {
	a := New[token](4)
	h1 := a.Insert(token{n: 1})
	h2 := a.Insert(token{n: 2})

	if a.Len() != 2 {
		t.Fatalf("Len = %d; want 2", a.Len())
	}
	got, ok := a.Get(h2)
	if !ok || got.n != 2 {
		t.Fatalf("Get(h2) = %v, %v; want n=2", got, ok)
	}
	got.n = 20
	if v, _ := a.Get(h2); v.n != 20 {
		t.Errorf("Get should return a pointer into the arena, got n=%d", v.n)
	}
	if h1.Index() != 0 || h2.Index() != 1 {
		t.Errorf("indices = %d, %d; want 0, 1", h1.Index(), h2.Index())
	}
}

func TestArena_NilHandle(t *testing.T) {
	a := New[token](0)
	a.Insert(token{})

	var h Handle[token]
	if !h.Nil() {
		t.Fatal("zero handle should be nil")
	}
	if _, err := a.Lookup(h); !errors.Is(err, ErrNilHandle) {
		t.Errorf("Lookup(nil) err = %v; want ErrNilHandle", err)
	}
}

func TestArena_StaleAfterReset(t *testing.T) {
	a := New[token](0)
	h := a.Insert(token{n: 1})
	a.Reset()
	a.Insert(token{n: 99})

	_, err := a.Lookup(h)
	if !errors.Is(err, ErrStaleHandle) {
		t.Fatalf("Lookup after Reset err = %v; want ErrStaleHandle", err)
	}
	if _, ok := a.Get(h); ok {
		t.Error("Get should refuse a stale handle")
	}
}

func TestArena_OutOfRange(t *testing.T) {
	a := New[token](0)
	h := a.Insert(token{})
	a.Reset()
	fresh := a.HandleAt(5)
	if _, err := a.Lookup(fresh); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Lookup(#5) err = %v; want ErrOutOfRange", err)
	}
	_ = h
}

func TestArena_AtMatchesInsert(t *testing.T) {
	a := New[token](0)
	for i := 0; i < 5; i++ {
		a.Insert(token{n: i})
	}
	for i := 0; i < a.Len(); i++ {
		v, h := a.At(i)
		if v.n != i {
			t.Errorf("At(%d).n = %d", i, v.n)
		}
		if got, ok := a.Get(h); !ok || got != v {
			t.Errorf("handle from At(%d) does not resolve to the same element", i)
		}
	}
}
