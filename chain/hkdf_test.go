package chain

import (
	"bytes"
	"errors"
	"testing"
)

func TestHKDFChainSHA256RoundTrip(t *testing.T) {
	t.Parallel()
	c, err := NewHKDFChain(VariantHKDFSHA256, Options{})
	if err != nil {
		t.Fatal(err)
	}
	ikm := bytes.Repeat([]byte{0x55}, 32)
	s0, err := c.Instantiate(ikm)
	if err != nil {
		t.Fatal(err)
	}
	if len(s0) != 32 {
		t.Fatalf("sha256 state length = %d, want 32", len(s0))
	}
	s1, out, err := c.Update([]byte("message"), s0)
	if err != nil {
		t.Fatal(err)
	}
	if len(s1) != 32 || len(out) != 32 {
		t.Fatalf("unexpected lengths: state=%d out=%d", len(s1), len(out))
	}
	if bytes.Equal(s1, s0) {
		t.Fatal("update must advance the state")
	}
}

func TestHKDFChainSHA3512StateIsDigestSized(t *testing.T) {
	t.Parallel()
	c, err := NewHKDFChain(VariantHKDFSHA3512, Options{})
	if err != nil {
		t.Fatal(err)
	}
	s0, err := c.Instantiate(bytes.Repeat([]byte{0x01}, 64))
	if err != nil {
		t.Fatal(err)
	}
	if len(s0) != 64 {
		t.Fatalf("sha3-512 state length = %d, want 64", len(s0))
	}
}

func TestHKDFChainUpdateBeforeInstantiate(t *testing.T) {
	t.Parallel()
	c, err := NewHKDFChain(VariantHKDFSHA512, Options{})
	if err != nil {
		t.Fatal(err)
	}
	_, _, err = c.Update([]byte("x"), make([]byte, 64))
	if !errors.Is(err, ErrNotInstantiated) {
		t.Fatalf("got %v, want ErrNotInstantiated", err)
	}
}

func TestHKDFChainRejectsUnknownVariant(t *testing.T) {
	t.Parallel()
	if _, err := NewHKDFChain(VariantPRG16, Options{}); err == nil {
		t.Fatal("expected error for non-HKDF variant")
	}
}

func TestHKDFChainPersistsAcrossUpdates(t *testing.T) {
	t.Parallel()
	mem := newFakeStore()
	c, err := NewHKDFChain(VariantHKDFSHA3256, Options{Store: mem, Persist: true})
	if err != nil {
		t.Fatal(err)
	}
	s0, err := c.Instantiate(bytes.Repeat([]byte{0x09}, 32))
	if err != nil {
		t.Fatal(err)
	}
	s1, _, err := c.Update([]byte("x"), s0)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(mem.slots[VariantHKDFSHA3256.Slot()], s1) {
		t.Fatal("expected latest state persisted under the hkdf-sha3-256 slot")
	}
}
