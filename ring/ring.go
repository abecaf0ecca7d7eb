// Package ring implements the local ring R = F_q[ε]/(ε²) of dual numbers
// over F_q, where ε² = 0.
package ring

import (
	"errors"
	"fmt"

	"github.com/rymnc/hessian/fq"
)

// ErrNotInvertible is returned by Inv when the constant term is zero — the
// exact criterion for a + bε to be a unit of R.
var ErrNotInvertible = errors.New("ring: element is not invertible (constant term is zero)")

// Elem represents a + bε.
type Elem struct {
	a fq.Elem // constant term
	b fq.Elem // epsilon coefficient
}

// New builds a + bε.
func New(a, b fq.Elem) (Elem, error) {
	if a.Modulus() != b.Modulus() {
		return Elem{}, fmt.Errorf("ring: mismatched moduli %d != %d", a.Modulus(), b.Modulus())
	}
	return Elem{a: a, b: b}, nil
}

// FromField lifts a field element a into R as a + 0ε.
func FromField(a fq.Elem) Elem {
	zero, _ := fq.New(a.Modulus(), 0)
	return Elem{a: a, b: zero}
}

// Constant returns the a part of a + bε.
func (e Elem) Constant() fq.Elem { return e.a }

// EpsilonCoeff returns the b part of a + bε.
func (e Elem) EpsilonCoeff() fq.Elem { return e.b }

// Modulus returns the modulus of the underlying field.
func (e Elem) Modulus() uint64 { return e.a.Modulus() }

// Equal reports componentwise equality.
func (e Elem) Equal(o Elem) bool {
	return e.a.Equal(o.a) && e.b.Equal(o.b)
}

// IsInvertible reports whether e is a unit of R, i.e. whether its constant
// term is non-zero in F_q.
func (e Elem) IsInvertible() bool {
	return e.a.Value() != 0
}

// Add returns e+o, componentwise in F_q.
func (e Elem) Add(o Elem) (Elem, error) {
	a, err := e.a.Add(o.a)
	if err != nil {
		return Elem{}, err
	}
	b, err := e.b.Add(o.b)
	if err != nil {
		return Elem{}, err
	}
	return Elem{a: a, b: b}, nil
}

// Sub returns e-o, componentwise in F_q.
func (e Elem) Sub(o Elem) (Elem, error) {
	a, err := e.a.Sub(o.a)
	if err != nil {
		return Elem{}, err
	}
	b, err := e.b.Sub(o.b)
	if err != nil {
		return Elem{}, err
	}
	return Elem{a: a, b: b}, nil
}

// Mul returns (a+bε)(c+dε) = ac + (ad+bc)ε, the bdε² term vanishing since
// ε² = 0.
func (e Elem) Mul(o Elem) (Elem, error) {
	ac, err := e.a.Mul(o.a)
	if err != nil {
		return Elem{}, err
	}
	ad, err := e.a.Mul(o.b)
	if err != nil {
		return Elem{}, err
	}
	bc, err := e.b.Mul(o.a)
	if err != nil {
		return Elem{}, err
	}
	eps, err := ad.Add(bc)
	if err != nil {
		return Elem{}, err
	}
	return Elem{a: ac, b: eps}, nil
}

// Inv returns the inverse of a + bε. For a != 0, the inverse is
// a⁻¹ − b·a⁻²·ε, derived from (a+bε)(a⁻¹+xε) = 1.
func (e Elem) Inv() (Elem, error) {
	if !e.IsInvertible() {
		return Elem{}, ErrNotInvertible
	}
	aInv, err := e.a.Inv()
	if err != nil {
		return Elem{}, err
	}
	aInvSq, _ := aInv.Mul(aInv)
	bAInvSq, _ := e.b.Mul(aInvSq)
	zero, _ := fq.New(e.Modulus(), 0)
	negBAInvSq, _ := zero.Sub(bAInvSq)
	return Elem{a: aInv, b: negBAInvSq}, nil
}

// Pow raises e to the given exponent via square-and-multiply, with
// 1 + 0ε as the multiplicative identity.
func (e Elem) Pow(exponent uint64) Elem {
	one := fq.MustNew(e.Modulus(), 1)
	result := FromField(one)
	base := e
	exp := exponent
	for exp > 0 {
		if exp&1 == 1 {
			result, _ = result.Mul(base)
		}
		base, _ = base.Mul(base)
		exp >>= 1
	}
	return result
}
