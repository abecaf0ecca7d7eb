package dh

import (
	"testing"

	"github.com/rymnc/hessian/curve"
	"github.com/rymnc/hessian/fq"
	"github.com/rymnc/hessian/ring"
)

func ringElem(t *testing.T, q, a, b uint64) ring.Elem {
	t.Helper()
	e, err := ring.New(fq.MustNew(q, a), fq.MustNew(q, b))
	if err != nil {
		t.Fatalf("ring.New: %v", err)
	}
	return e
}

func fromField(t *testing.T, q, v uint64) ring.Elem {
	t.Helper()
	return ring.FromField(fq.MustNew(q, v))
}

// TestDiffieHellmanKAT reproduces the KAT from spec section 3.1.2: F5[ε],
// a=1+ε, d=1+ε, generator [1:2:3+ε] of order 45, Alice sk=4, Bob sk=35,
// both arriving at the shared secret 5P = [1:3+2ε:4+3ε].
func TestDiffieHellmanKAT(t *testing.T) {
	const q = 5
	a := ringElem(t, q, 1, 1)
	d := ringElem(t, q, 1, 1)

	c, err := curve.New(a, d)
	if err != nil {
		t.Fatalf("curve.New: %v", err)
	}

	generator, err := curve.NewProjective(fromField(t, q, 1), fromField(t, q, 2), ringElem(t, q, 3, 1))
	if err != nil {
		t.Fatalf("NewProjective: %v", err)
	}

	exchange, err := New(c, generator, 45)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	aliceShared, bobShared, err := SimulateKeyExchange(exchange, 4, 35)
	if err != nil {
		t.Fatalf("SimulateKeyExchange: %v", err)
	}

	equal, err := aliceShared.IsEqual(bobShared)
	if err != nil {
		t.Fatalf("IsEqual: %v", err)
	}
	if !equal {
		t.Fatal("Alice and Bob should derive the same shared secret")
	}

	expected, err := curve.NewProjective(fromField(t, q, 1), ringElem(t, q, 3, 2), ringElem(t, q, 4, 3))
	if err != nil {
		t.Fatalf("NewProjective: %v", err)
	}
	matchesExpected, err := aliceShared.IsEqual(expected)
	if err != nil {
		t.Fatalf("IsEqual: %v", err)
	}
	if !matchesExpected {
		t.Fatal("shared secret should equal 5P = [1:3+2ε:4+3ε]")
	}

	key, err := DeriveKey(aliceShared, 32)
	if err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}
	if len(key) != 32 {
		t.Fatalf("DeriveKey length = %d, want 32", len(key))
	}
	bobKey, err := DeriveKey(bobShared, 32)
	if err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}
	for i := range key {
		if key[i] != bobKey[i] {
			t.Fatal("both parties should derive the same key material from equal points")
		}
	}
}

// TestDeriveKeyNormalizesDistinctButEquivalentTriples pins down the
// literal triples Alice and Bob actually land on for the KAT-5 parameters
// (F5[ε], a=d=1+ε, generator [1:2:3+ε], Alice sk=4, Bob sk=35): they are
// projectively equal but not component-wise identical, so DeriveKey must
// normalize through Affine before hashing or the two sides would derive
// different key material.
func TestDeriveKeyNormalizesDistinctButEquivalentTriples(t *testing.T) {
	const q = 5
	aliceShared, err := curve.NewProjective(ringElem(t, q, 1, 3), ringElem(t, q, 3, 1), fromField(t, q, 4))
	if err != nil {
		t.Fatalf("NewProjective: %v", err)
	}
	bobShared, err := curve.NewProjective(ringElem(t, q, 3, 2), ringElem(t, q, 4, 2), ringElem(t, q, 2, 2))
	if err != nil {
		t.Fatalf("NewProjective: %v", err)
	}

	equal, err := aliceShared.IsEqual(bobShared)
	if err != nil {
		t.Fatalf("IsEqual: %v", err)
	}
	if !equal {
		t.Fatal("the two triples should be projectively equal (same point, different representative)")
	}

	aliceKey, err := DeriveKey(aliceShared, 32)
	if err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}
	bobKey, err := DeriveKey(bobShared, 32)
	if err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}
	for i := range aliceKey {
		if aliceKey[i] != bobKey[i] {
			t.Fatal("DeriveKey must normalize before hashing so both sides agree")
		}
	}
}

func TestGenerateKeypairRejectsZeroPrivateKey(t *testing.T) {
	const q = 5
	a := ringElem(t, q, 1, 1)
	d := ringElem(t, q, 1, 1)

	c, err := curve.New(a, d)
	if err != nil {
		t.Fatalf("curve.New: %v", err)
	}
	generator, err := curve.NewProjective(fromField(t, q, 1), fromField(t, q, 2), ringElem(t, q, 3, 1))
	if err != nil {
		t.Fatalf("NewProjective: %v", err)
	}
	exchange, err := New(c, generator, 45)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, _, err := exchange.GenerateKeypair(45); err == nil {
		t.Fatal("expected error: private key 45 reduces to 0 mod order 45")
	}
}
