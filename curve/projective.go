// Package curve implements the projective point group of a twisted Hessian
// curve aX³+Y³+Z³=dXYZ over the ring R = F_q[ε]/(ε²), and the curve object
// that gates it with a non-singularity check.
package curve

import (
	"errors"
	"fmt"
	"os"

	"github.com/rymnc/hessian/fq"
	"github.com/rymnc/hessian/internal/dbgutil"
	"github.com/rymnc/hessian/ring"
)

// ErrInvalidPoint is returned when an operation would observe or produce
// the invalid triple [0:0:0].
var ErrInvalidPoint = errors.New("curve: invalid point [0:0:0]")

// ErrBothFormulasZero is returned by Add when neither of the two addition
// formulas produces a non-zero result.
var ErrBothFormulasZero = errors.New("curve: both addition formulas produced [0:0:0]")

// Projective is a point [X:Y:Z] with X, Y, Z in R.
type Projective struct {
	x, y, z ring.Elem
}

// NewProjective builds [X:Y:Z]. All three coordinates must share a modulus.
func NewProjective(x, y, z ring.Elem) (Projective, error) {
	if x.Modulus() != y.Modulus() || y.Modulus() != z.Modulus() {
		return Projective{}, fmt.Errorf("curve: mismatched moduli %d/%d/%d", x.Modulus(), y.Modulus(), z.Modulus())
	}
	return Projective{x: x, y: y, z: z}, nil
}

// Identity returns [0:-1:1], the neutral element of the group law, for the
// field of the given modulus.
func Identity(q uint64) (Projective, error) {
	zero, err := fq.New(q, 0)
	if err != nil {
		return Projective{}, err
	}
	one, err := fq.New(q, 1)
	if err != nil {
		return Projective{}, err
	}
	negOne, err := fq.New(q, q-1)
	if err != nil {
		return Projective{}, err
	}
	return Projective{
		x: ring.FromField(zero),
		y: ring.FromField(negOne),
		z: ring.FromField(one),
	}, nil
}

// X returns the X coordinate.
func (p Projective) X() ring.Elem { return p.x }

// Y returns the Y coordinate.
func (p Projective) Y() ring.Elem { return p.y }

// Z returns the Z coordinate.
func (p Projective) Z() ring.Elem { return p.z }

// Modulus returns the modulus of the underlying field.
func (p Projective) Modulus() uint64 { return p.x.Modulus() }

func zeroField(q uint64) fq.Elem {
	z, _ := fq.New(q, 0)
	return z
}

// isZeroTriple reports whether all six limbs of p are zero — the invalid
// triple that must never escape an operation.
func (p Projective) isZeroTriple() bool {
	zero := zeroField(p.Modulus())
	return p.x.Constant().Equal(zero) && p.x.EpsilonCoeff().Equal(zero) &&
		p.y.Constant().Equal(zero) && p.y.EpsilonCoeff().Equal(zero) &&
		p.z.Constant().Equal(zero) && p.z.EpsilonCoeff().Equal(zero)
}

// IsIdentity reports whether p is exactly [0:-1:1].
func (p Projective) IsIdentity() bool {
	q := p.Modulus()
	zero := zeroField(q)
	negOne := fq.MustNew(q, q-1)
	one := fq.MustNew(q, 1)
	return p.x.Constant().Equal(zero) && p.x.EpsilonCoeff().Equal(zero) &&
		p.y.Constant().Equal(negOne) && p.y.EpsilonCoeff().Equal(zero) &&
		p.z.Constant().Equal(one) && p.z.EpsilonCoeff().Equal(zero)
}

// IsEqual reports projective equivalence: [X1:Y1:Z1] ~ [X2:Y2:Z2] iff all
// three cross products X1*Z2=X2*Z1, Y1*Z2=Y2*Z1, Z1*X2=Z2*X1 vanish in R.
// The third is redundant over a field but checked explicitly since R has
// zero divisors. Fails if either operand is the invalid triple [0:0:0].
func (p Projective) IsEqual(o Projective) (bool, error) {
	if p.isZeroTriple() || o.isZeroTriple() {
		return false, ErrInvalidPoint
	}

	x1z2, err := p.x.Mul(o.z)
	if err != nil {
		return false, err
	}
	x2z1, err := o.x.Mul(p.z)
	if err != nil {
		return false, err
	}
	y1z2, err := p.y.Mul(o.z)
	if err != nil {
		return false, err
	}
	y2z1, err := o.y.Mul(p.z)
	if err != nil {
		return false, err
	}
	z1x2, err := p.z.Mul(o.x)
	if err != nil {
		return false, err
	}
	z2x1, err := o.z.Mul(p.x)
	if err != nil {
		return false, err
	}

	return x1z2.Equal(x2z1) && y1z2.Equal(y2z1) && z1x2.Equal(z2x1), nil
}

// IsOnCurve reports whether aX³+Y³+Z³=dXYZ holds for this point under the
// given curve parameters. It first revalidates a*(27a-d³) is invertible,
// as a defense against parameters passed in loosely (TwistedHessianCurve
// already validates this once at construction).
func (p Projective) IsOnCurve(a, d ring.Elem) (bool, error) {
	ok, err := VerifyCurveConstraints(a, d)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, fmt.Errorf("curve: invalid curve parameters: a(27a-d^3) must be invertible")
	}

	xCubed, err := cube(p.x)
	if err != nil {
		return false, err
	}
	yCubed, err := cube(p.y)
	if err != nil {
		return false, err
	}
	zCubed, err := cube(p.z)
	if err != nil {
		return false, err
	}

	aXCubed, err := a.Mul(xCubed)
	if err != nil {
		return false, err
	}
	lhs, err := aXCubed.Add(yCubed)
	if err != nil {
		return false, err
	}
	lhs, err = lhs.Add(zCubed)
	if err != nil {
		return false, err
	}

	dxy, err := d.Mul(p.x)
	if err != nil {
		return false, err
	}
	dxy, err = dxy.Mul(p.y)
	if err != nil {
		return false, err
	}
	rhs, err := dxy.Mul(p.z)
	if err != nil {
		return false, err
	}

	return lhs.Equal(rhs), nil
}

// Affine returns the canonical (x, y) representative of p's projective
// class, i.e. (X*Z⁻¹, Y*Z⁻¹), the unique scaling with Z = 1. Two projective
// triples represent the same point iff they share this representative;
// callers that need a byte encoding of a point (rather than of one
// particular triple among its scalar multiples) must go through Affine
// first. Fails if Z is not a unit of R.
func (p Projective) Affine() (ring.Elem, ring.Elem, error) {
	zInv, err := p.z.Inv()
	if err != nil {
		return ring.Elem{}, ring.Elem{}, fmt.Errorf("curve: point has non-invertible Z, no affine representative: %w", err)
	}
	x, err := p.x.Mul(zInv)
	if err != nil {
		return ring.Elem{}, ring.Elem{}, err
	}
	y, err := p.y.Mul(zInv)
	if err != nil {
		return ring.Elem{}, ring.Elem{}, err
	}
	return x, y, nil
}

// Negate returns -[X:Y:Z] = [X:Z:Y], the standard twisted-Hessian
// negation.
func (p Projective) Negate() Projective {
	return Projective{x: p.x, y: p.z, z: p.y}
}

// Add computes P+Q on the curve with parameter a. The twisted-Hessian
// group law is not unified over a non-field ring: formula (I) is tried
// first, and formula (II) only if (I) yields the invalid triple [0:0:0].
// It fails if both formulas yield [0:0:0].
func (p Projective) Add(o Projective, a ring.Elem) (Projective, error) {
	x1sq, err := p.x.Mul(p.x)
	if err != nil {
		return Projective{}, err
	}
	x2sq, err := o.x.Mul(o.x)
	if err != nil {
		return Projective{}, err
	}
	y1sq, err := p.y.Mul(p.y)
	if err != nil {
		return Projective{}, err
	}
	y2sq, err := o.y.Mul(o.y)
	if err != nil {
		return Projective{}, err
	}
	z1sq, err := p.z.Mul(p.z)
	if err != nil {
		return Projective{}, err
	}
	z2sq, err := o.z.Mul(o.z)
	if err != nil {
		return Projective{}, err
	}

	// Formula (I): X3 = X1^2 Y2 Z2 - X2^2 Y1 Z1, and cyclically for Y3, Z3.
	x3, err := mulSub(x1sq, o.y, o.z, x2sq, p.y, p.z)
	if err != nil {
		return Projective{}, err
	}
	y3, err := mulSub(z1sq, o.x, o.y, z2sq, p.x, p.y)
	if err != nil {
		return Projective{}, err
	}
	z3, err := mulSub(y1sq, o.x, o.z, y2sq, p.x, p.z)
	if err != nil {
		return Projective{}, err
	}

	candidate, err := NewProjective(x3, y3, z3)
	if err != nil {
		return Projective{}, err
	}

	if !candidate.isZeroTriple() {
		dbgutil.Printf(os.Stderr, "[curve] Add: formula (I) used\n")
		return candidate, nil
	}

	// Formula (II), per Theorem 2.1: the fallback for the case formula
	// (I) degenerates (notably P == Q, i.e. doubling).
	x3p, err := mulSub(z2sq, p.x, p.z, y1sq, o.x, o.y)
	if err != nil {
		return Projective{}, err
	}

	y2y1z1, err := y2sq.Mul(p.y)
	if err != nil {
		return Projective{}, err
	}
	y2y1z1, err = y2y1z1.Mul(p.z)
	if err != nil {
		return Projective{}, err
	}
	aX1sq, err := a.Mul(x1sq)
	if err != nil {
		return Projective{}, err
	}
	aX1sqX2Z2, err := aX1sq.Mul(o.x)
	if err != nil {
		return Projective{}, err
	}
	aX1sqX2Z2, err = aX1sqX2Z2.Mul(o.z)
	if err != nil {
		return Projective{}, err
	}
	y3p, err := y2y1z1.Sub(aX1sqX2Z2)
	if err != nil {
		return Projective{}, err
	}

	aX2sq, err := a.Mul(x2sq)
	if err != nil {
		return Projective{}, err
	}
	aX2sqX1Y1, err := aX2sq.Mul(p.x)
	if err != nil {
		return Projective{}, err
	}
	aX2sqX1Y1, err = aX2sqX1Y1.Mul(p.y)
	if err != nil {
		return Projective{}, err
	}
	z1sqY2Z2, err := z1sq.Mul(o.y)
	if err != nil {
		return Projective{}, err
	}
	z1sqY2Z2, err = z1sqY2Z2.Mul(o.z)
	if err != nil {
		return Projective{}, err
	}
	z3p, err := aX2sqX1Y1.Sub(z1sqY2Z2)
	if err != nil {
		return Projective{}, err
	}

	fallback, err := NewProjective(x3p, y3p, z3p)
	if err != nil {
		return Projective{}, err
	}
	if fallback.isZeroTriple() {
		return Projective{}, ErrBothFormulasZero
	}

	dbgutil.Printf(os.Stderr, "[curve] Add: formula (II) fallback used\n")
	return fallback, nil
}

// Double returns P+P, using the same two-formula protocol as Add; the
// classic squaring shortcut is an optimization this implementation does
// not take, to keep the fallback logic in one place.
func (p Projective) Double(a ring.Elem) (Projective, error) {
	return p.Add(p, a)
}

// ScalarMul computes k*P via double-and-add, scanning bits of k from the
// least significant bit. ScalarMul(0, ...) is the identity.
func (p Projective) ScalarMul(k uint64, a ring.Elem) (Projective, error) {
	result, err := Identity(p.Modulus())
	if err != nil {
		return Projective{}, err
	}
	temp := p
	for k > 0 {
		if k&1 == 1 {
			result, err = result.Add(temp, a)
			if err != nil {
				return Projective{}, err
			}
		}
		temp, err = temp.Double(a)
		if err != nil {
			return Projective{}, err
		}
		k >>= 1
	}
	return result, nil
}

// VerifyCurveConstraints reports whether a*(27a-d³) is invertible in R,
// the non-singularity condition for a twisted Hessian curve.
func VerifyCurveConstraints(a, d ring.Elem) (bool, error) {
	q := a.Modulus()
	twentySeven := ring.FromField(fq.MustNew(q, 27%q))

	twentySevenA, err := twentySeven.Mul(a)
	if err != nil {
		return false, err
	}
	dCubed, err := cube(d)
	if err != nil {
		return false, err
	}
	term, err := twentySevenA.Sub(dCubed)
	if err != nil {
		return false, err
	}
	condition, err := a.Mul(term)
	if err != nil {
		return false, err
	}
	return condition.IsInvertible(), nil
}

func cube(e ring.Elem) (ring.Elem, error) {
	sq, err := e.Mul(e)
	if err != nil {
		return ring.Elem{}, err
	}
	return sq.Mul(e)
}

// mulSub computes (p1*p2*p3) - (n1*n2*n3), the shape shared by both
// addition formulas' coordinate expressions.
func mulSub(p1, p2, p3, n1, n2, n3 ring.Elem) (ring.Elem, error) {
	pos, err := p1.Mul(p2)
	if err != nil {
		return ring.Elem{}, err
	}
	pos, err = pos.Mul(p3)
	if err != nil {
		return ring.Elem{}, err
	}
	neg, err := n1.Mul(n2)
	if err != nil {
		return ring.Elem{}, err
	}
	neg, err = neg.Mul(n3)
	if err != nil {
		return ring.Elem{}, err
	}
	return pos.Sub(neg)
}
