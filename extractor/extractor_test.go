package extractor

import "testing"

func TestBitsForVariant(t *testing.T) {
	t.Parallel()
	cases := map[string]int{
		"prg16":         128,
		"prg24":         192,
		"prg32":         256,
		"shake128":      192,
		"ascon":         192,
		"shake256":      384,
		"hkdf-sha256":   256,
		"hkdf-sha3-256": 256,
		"hkdf-sha512":   512,
		"hkdf-sha3-512": 512,
	}
	for variant, want := range cases {
		got, err := BitsForVariant(variant)
		if err != nil {
			t.Fatalf("%s: %v", variant, err)
		}
		if got != want {
			t.Errorf("%s: got %d bits, want %d", variant, got, want)
		}
	}
}

func TestBitsForVariantRejectsUnknown(t *testing.T) {
	t.Parallel()
	if _, err := BitsForVariant("not-a-variant"); err == nil {
		t.Fatal("expected error for unknown variant")
	}
}

func TestCryptoRandExtractBitsLength(t *testing.T) {
	t.Parallel()
	var e CryptoRand
	for _, n := range []int{0, 1, 7, 8, 9, 128, 192} {
		out, err := e.ExtractBits(n)
		if err != nil {
			t.Fatal(err)
		}
		want := (n + 7) / 8
		if len(out) != want {
			t.Errorf("n=%d: got %d bytes, want %d", n, len(out), want)
		}
	}
}

func TestCryptoRandMasksTrailingBits(t *testing.T) {
	t.Parallel()
	var e CryptoRand
	for i := 0; i < 64; i++ {
		out, err := e.ExtractBits(3)
		if err != nil {
			t.Fatal(err)
		}
		if out[0]&0x1f != 0 {
			t.Fatalf("expected low 5 bits clear for a 3-bit draw, got %08b", out[0])
		}
	}
}
