package curve

import (
	"fmt"
	"os"

	"github.com/rymnc/hessian/internal/dbgutil"
	"github.com/rymnc/hessian/ring"
)

// TwistedHessianCurve holds the parameters (a, d) of a twisted Hessian
// curve aX³+Y³+Z³=dXYZ over R = F_q[ε]/(ε²), enforcing at construction
// that a*(27a-d³) is invertible in R (the curve's non-singularity
// condition). It is immutable after construction.
type TwistedHessianCurve struct {
	a, d ring.Elem
}

// New validates non-singularity and returns the curve (a, d).
func New(a, d ring.Elem) (*TwistedHessianCurve, error) {
	ok, err := VerifyCurveConstraints(a, d)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("curve: a*(27a-d^3) must be invertible for a valid curve")
	}
	return &TwistedHessianCurve{a: a, d: d}, nil
}

// A returns the curve's a parameter.
func (c *TwistedHessianCurve) A() ring.Elem { return c.a }

// D returns the curve's d parameter.
func (c *TwistedHessianCurve) D() ring.Elem { return c.d }

// Modulus returns the modulus of the underlying field.
func (c *TwistedHessianCurve) Modulus() uint64 { return c.a.Modulus() }

// Identity returns the group's neutral element.
func (c *TwistedHessianCurve) Identity() (Projective, error) {
	return Identity(c.Modulus())
}

// Contains reports whether p lies on this curve.
func (c *TwistedHessianCurve) Contains(p Projective) (bool, error) {
	return p.IsOnCurve(c.a, c.d)
}

func (c *TwistedHessianCurve) requireContains(p Projective, label string) error {
	ok, err := c.Contains(p)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("curve: %s must be on the curve", label)
	}
	return nil
}

// Add computes p+q, validating that both operands lie on the curve before
// delegating to Projective.Add.
func (c *TwistedHessianCurve) Add(p, q Projective) (Projective, error) {
	if err := c.requireContains(p, "P"); err != nil {
		return Projective{}, err
	}
	if err := c.requireContains(q, "Q"); err != nil {
		return Projective{}, err
	}
	return p.Add(q, c.a)
}

// ScalarMul computes k*p, validating membership before delegating to
// Projective.ScalarMul.
func (c *TwistedHessianCurve) ScalarMul(p Projective, k uint64) (Projective, error) {
	if err := c.requireContains(p, "P"); err != nil {
		return Projective{}, err
	}
	return p.ScalarMul(k, c.a)
}

// PointOrder returns the least positive k such that k*P is the identity,
// brute-forcing k up to 2q(q+1). The R-points form a group of order
// q·#E(F_q) (reduction mod ε onto the F_q-points has a kernel of size q),
// and the Hasse bound #E(F_q) ≤ q+1+2√q ≤ 2(q+1) caps that at 2q(q+1);
// q² alone is too small (the F5[ε] KAT point has order 45 > 25). Fails if
// point is not on the curve, or if no such k is found within that bound.
func (c *TwistedHessianCurve) PointOrder(point Projective) (uint64, error) {
	if err := c.requireContains(point, "P"); err != nil {
		return 0, err
	}

	identity, err := c.Identity()
	if err != nil {
		return 0, err
	}

	atIdentity, err := point.IsEqual(identity)
	if err != nil {
		return 0, err
	}
	if atIdentity {
		return 1, nil
	}

	q := c.Modulus()
	maxOrder := 2 * q * (q + 1)

	for order := uint64(2); order <= maxOrder; order++ {
		multiple, err := c.ScalarMul(point, order)
		if err != nil {
			return 0, err
		}
		atIdentity, err := multiple.IsEqual(identity)
		if err != nil {
			return 0, err
		}
		if !atIdentity {
			continue
		}
		prevMultiple, err := c.ScalarMul(point, order-1)
		if err != nil {
			return 0, err
		}
		prevAtIdentity, err := prevMultiple.IsEqual(identity)
		if err != nil {
			return 0, err
		}
		if !prevAtIdentity {
			dbgutil.Printf(os.Stderr, "[curve] PointOrder: found order %d\n", order)
			return order, nil
		}
	}

	return 0, fmt.Errorf("curve: could not determine point order within range 1..%d", maxOrder)
}
