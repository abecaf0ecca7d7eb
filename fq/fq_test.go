package fq

import "testing"

func TestAddWithoutOverflow(t *testing.T) {
	a := MustNew(11, 5)
	b := MustNew(11, 3)
	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if sum.Value() != 8 {
		t.Fatalf("5+3 mod 11 = %d, want 8", sum.Value())
	}
}

func TestAddWithOverflow(t *testing.T) {
	a := MustNew(11, 7)
	b := MustNew(11, 8)
	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if sum.Value() != 4 {
		t.Fatalf("7+8 mod 11 = %d, want 4", sum.Value())
	}
}

func TestSubUnderflow(t *testing.T) {
	a := MustNew(11, 2)
	b := MustNew(11, 5)
	diff, err := a.Sub(b)
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	if diff.Value() != 8 {
		t.Fatalf("2-5 mod 11 = %d, want 8", diff.Value())
	}
}

func TestMulOverflow(t *testing.T) {
	a := MustNew(11, 6)
	b := MustNew(11, 9)
	prod, err := a.Mul(b)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	if prod.Value() != 10 {
		t.Fatalf("6*9 mod 11 = %d, want 10", prod.Value())
	}
}

// TestMulLargeModulusNoWraparound uses a modulus above 2^32 so that a plain
// uint64 product of two near-maximal residues would overflow and wrap;
// Mul must still reduce correctly via its 128-bit intermediate.
func TestMulLargeModulusNoWraparound(t *testing.T) {
	const q = uint64(1) << 62
	a := MustNew(q, q-1) // -1 mod q
	b := MustNew(q, q-1) // -1 mod q
	prod, err := a.Mul(b)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	// (-1)*(-1) = 1 mod q.
	if prod.Value() != 1 {
		t.Fatalf("(q-1)*(q-1) mod q = %d, want 1", prod.Value())
	}
}

func TestInvKATsMod11(t *testing.T) {
	cases := map[uint64]uint64{1: 1, 2: 6, 3: 4, 4: 3, 5: 9, 6: 2}
	for v, want := range cases {
		inv, err := MustNew(11, v).Inv()
		if err != nil {
			t.Fatalf("Inv(%d): %v", v, err)
		}
		if inv.Value() != want {
			t.Fatalf("Inv(%d) = %d, want %d", v, inv.Value(), want)
		}
	}
}

func TestInvRoundTrip(t *testing.T) {
	const q = 7919 // prime
	for v := uint64(1); v < q; v += 37 {
		a := MustNew(q, v)
		inv, err := a.Inv()
		if err != nil {
			t.Fatalf("Inv(%d): %v", v, err)
		}
		prod, _ := a.Mul(inv)
		if prod.Value() != 1 {
			t.Fatalf("%d * inv(%d) = %d, want 1", v, v, prod.Value())
		}
	}
}

func TestInvZeroFails(t *testing.T) {
	if _, err := MustNew(11, 0).Inv(); err == nil {
		t.Fatal("expected error inverting zero")
	}
}

func TestInvNonPrimeModulusFails(t *testing.T) {
	// gcd(2, 4) = 2 != 1
	if _, err := MustNew(4, 2).Inv(); err == nil {
		t.Fatal("expected error: modulus 4 is not prime")
	}
}

func TestPow(t *testing.T) {
	a := MustNew(11, 2)
	if v := a.Pow(0).Value(); v != 1 {
		t.Fatalf("2^0 = %d, want 1", v)
	}
	if v := a.Pow(1).Value(); v != 2 {
		t.Fatalf("2^1 = %d, want 2", v)
	}
	if v := a.Pow(3).Value(); v != 8 {
		t.Fatalf("2^3 = %d, want 8", v)
	}
	if v := a.Pow(10).Value(); v != 1 {
		t.Fatalf("2^10 mod 11 = %d, want 1", v)
	}
}

func TestIsMinusThreeSquare(t *testing.T) {
	cases := map[uint64]bool{
		5:  false,
		7:  true,
		11: false,
		13: true,
		17: false,
		19: true,
	}
	for q, want := range cases {
		got, err := IsMinusThreeSquare(q)
		if err != nil {
			t.Fatalf("IsMinusThreeSquare(%d): %v", q, err)
		}
		if got != want {
			t.Fatalf("IsMinusThreeSquare(%d) = %v, want %v", q, got, want)
		}
	}
}

func TestNewRejectsBadModulus(t *testing.T) {
	if _, err := New(1, 0); err == nil {
		t.Fatal("expected error for q=1")
	}
	if _, err := New(0, 0); err == nil {
		t.Fatal("expected error for q=0")
	}
}
