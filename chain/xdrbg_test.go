package chain

import (
	"bytes"
	"errors"
	"testing"
)

func TestXDRBGChainShake128RoundTrip(t *testing.T) {
	t.Parallel()
	c, err := NewXDRBGChain(VariantShake128, Options{})
	if err != nil {
		t.Fatal(err)
	}
	seed := bytes.Repeat([]byte{0x11}, 24)
	s0, err := c.Instantiate(seed)
	if err != nil {
		t.Fatal(err)
	}
	if len(s0) != 32 {
		t.Fatalf("state length = %d, want 32", len(s0))
	}
	s1, out, err := c.Update(bytes.Repeat([]byte{0x22}, 16), s0)
	if err != nil {
		t.Fatal(err)
	}
	if len(s1) != 32 || len(out) != 16 {
		t.Fatalf("unexpected lengths: state=%d out=%d", len(s1), len(out))
	}
}

func TestXDRBGChainShake256OutputIsTwiceAsLong(t *testing.T) {
	t.Parallel()
	c, err := NewXDRBGChain(VariantShake256, Options{})
	if err != nil {
		t.Fatal(err)
	}
	seed := bytes.Repeat([]byte{0x11}, 48)
	s0, err := c.Instantiate(seed)
	if err != nil {
		t.Fatal(err)
	}
	_, out, err := c.Update(bytes.Repeat([]byte{0x22}, 32), s0)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 32 {
		t.Fatalf("shake256 output length = %d, want 32", len(out))
	}
}

func TestXDRBGChainAsconRoundTrip(t *testing.T) {
	t.Parallel()
	c, err := NewXDRBGChain(VariantAscon, Options{})
	if err != nil {
		t.Fatal(err)
	}
	seed := bytes.Repeat([]byte{0x33}, 24)
	s0, err := c.Instantiate(seed)
	if err != nil {
		t.Fatal(err)
	}
	s1, out, err := c.Update(bytes.Repeat([]byte{0x44}, 16), s0)
	if err != nil {
		t.Fatal(err)
	}
	if len(s1) != 32 || len(out) != 16 {
		t.Fatalf("unexpected lengths: state=%d out=%d", len(s1), len(out))
	}
}

func TestXDRBGChainUpdateBeforeInstantiate(t *testing.T) {
	t.Parallel()
	c, err := NewXDRBGChain(VariantShake128, Options{})
	if err != nil {
		t.Fatal(err)
	}
	_, _, err = c.Update(make([]byte, 16), make([]byte, 32))
	if !errors.Is(err, ErrNotInstantiated) {
		t.Fatalf("got %v, want ErrNotInstantiated", err)
	}
}

func TestXDRBGChainRejectsUnknownVariant(t *testing.T) {
	t.Parallel()
	if _, err := NewXDRBGChain(VariantHKDFSHA256, Options{}); err == nil {
		t.Fatal("expected error for non-XDRBG variant")
	}
}
