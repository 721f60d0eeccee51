package store

import (
	"bytes"
	"testing"
)

func TestMemoryStorePutGetRoundTrip(t *testing.T) {
	t.Parallel()
	s := NewMemoryStore()
	if _, err := s.Get("shake128"); err == nil {
		t.Fatal("expected ErrSlotNotFound before any Put")
	}
	want := []byte{1, 2, 3, 4}
	if err := s.Put("shake128", want); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get("shake128")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestMemoryStoreOverwriteSemantics(t *testing.T) {
	t.Parallel()
	s := NewMemoryStore()
	if err := s.Put("prg_16", []byte{1}); err != nil {
		t.Fatal(err)
	}
	if err := s.Put("prg_16", []byte{2}); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get("prg_16")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte{2}) {
		t.Fatalf("expected overwrite to leave only the latest value, got %x", got)
	}
}

func TestMemoryStoreCopiesOnPutAndGet(t *testing.T) {
	t.Parallel()
	s := NewMemoryStore()
	mutable := []byte{9, 9}
	if err := s.Put("ascon", mutable); err != nil {
		t.Fatal(err)
	}
	mutable[0] = 0
	got, err := s.Get("ascon")
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != 9 {
		t.Fatal("MemoryStore must not alias caller-owned slices")
	}
}
