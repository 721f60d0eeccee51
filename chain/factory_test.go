package chain

import "testing"

func TestNewDispatchesByVariant(t *testing.T) {
	t.Parallel()
	for _, v := range []Variant{
		VariantPRG16, VariantPRG24, VariantPRG32,
		VariantShake128, VariantShake256, VariantAscon,
		VariantHKDFSHA256, VariantHKDFSHA3256, VariantHKDFSHA512, VariantHKDFSHA3512,
	} {
		c, err := New(v, Options{})
		if err != nil {
			t.Fatalf("%s: %v", v, err)
		}
		if c.Variant() != v {
			t.Fatalf("got variant %s, want %s", c.Variant(), v)
		}
	}
}

func TestNewRejectsUnknownVariant(t *testing.T) {
	t.Parallel()
	if _, err := New(Variant("nonsense"), Options{}); err == nil {
		t.Fatal("expected error for unrecognised variant")
	}
}
