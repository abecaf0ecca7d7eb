// Package dh implements an Elliptic-Curve Diffie-Hellman key exchange over
// the curve package's twisted Hessian curve group. It is thin orchestration
// over curve/ring/fq: parameter validation, key generation, and shared
// secret computation, plus a key-derivation step for turning the shared
// point into symmetric key material.
package dh

import (
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/rymnc/hessian/curve"
	"github.com/rymnc/hessian/ring"
)

// ErrZeroPrivateKey is returned by GenerateKeypair when the private key
// reduces to zero modulo the group order.
var ErrZeroPrivateKey = errors.New("dh: private key cannot be zero after reduction")

const deriveKeyLabel = "hessian-dh-v1"

// DH is a Diffie-Hellman context bound to a curve, a generator point, and
// its claimed order.
type DH struct {
	curve     *curve.TwistedHessianCurve
	generator curve.Projective
	order     uint64
}

// New validates that generator lies on curve and that order*generator is
// the identity, then returns a DH context.
func New(c *curve.TwistedHessianCurve, generator curve.Projective, order uint64) (*DH, error) {
	onCurve, err := c.Contains(generator)
	if err != nil {
		return nil, fmt.Errorf("dh: checking generator membership: %w", err)
	}
	if !onCurve {
		return nil, errors.New("dh: generator must be on the curve")
	}

	identity, err := c.Identity()
	if err != nil {
		return nil, err
	}
	check, err := c.ScalarMul(generator, order)
	if err != nil {
		return nil, fmt.Errorf("dh: scalar-multiplying generator by claimed order: %w", err)
	}
	matches, err := check.IsEqual(identity)
	if err != nil {
		return nil, err
	}
	if !matches {
		return nil, errors.New("dh: generator's order must match the provided order")
	}

	return &DH{curve: c, generator: generator, order: order}, nil
}

// GenerateKeypair reduces sk modulo the group order and scalar-multiplies
// the generator by it. It fails if the reduced private key is zero.
func (d *DH) GenerateKeypair(sk uint64) (uint64, curve.Projective, error) {
	reduced := sk % d.order
	if reduced == 0 {
		return 0, curve.Projective{}, ErrZeroPrivateKey
	}
	publicKey, err := d.curve.ScalarMul(d.generator, reduced)
	if err != nil {
		return 0, curve.Projective{}, err
	}
	return reduced, publicKey, nil
}

// ComputeSharedSecret validates peerPK is on the curve and returns
// sk*peerPK.
func (d *DH) ComputeSharedSecret(sk uint64, peerPK curve.Projective) (curve.Projective, error) {
	onCurve, err := d.curve.Contains(peerPK)
	if err != nil {
		return curve.Projective{}, fmt.Errorf("dh: checking peer public key membership: %w", err)
	}
	if !onCurve {
		return curve.Projective{}, errors.New("dh: peer public key must be on the curve")
	}
	return d.curve.ScalarMul(peerPK, sk)
}

// DeriveKey squeezes keyLen bytes of key material out of a SHAKE-256 XOF
// keyed by a fixed domain-separation label and the shared secret point's
// canonical byte encoding. It is not a general-purpose KDF: no salt, no
// cipher suite, just keying material derived from algebraic state.
//
// The shared secret is normalized to its affine representative before
// encoding: Alice and Bob's scalar multiplications generally land on
// different, merely projectively-equivalent triples (the two-formula
// addition law has no single canonical scaling), so hashing raw triple
// limbs would make the two sides derive different keys. Affine reduces
// both to the same (x, y, 1) representative first.
func DeriveKey(secret curve.Projective, keyLen int) ([]byte, error) {
	if keyLen <= 0 {
		return nil, errors.New("dh: keyLen must be positive")
	}
	x, y, err := secret.Affine()
	if err != nil {
		return nil, fmt.Errorf("dh: normalizing shared secret: %w", err)
	}
	h := sha3.NewShake256()
	if _, err := h.Write([]byte(deriveKeyLabel)); err != nil {
		return nil, fmt.Errorf("dh: writing label: %w", err)
	}
	if _, err := h.Write(encodeAffinePoint(secret.Modulus(), x, y)); err != nil {
		return nil, fmt.Errorf("dh: writing point encoding: %w", err)
	}
	out := make([]byte, keyLen)
	if _, err := h.Read(out); err != nil {
		return nil, fmt.Errorf("dh: squeezing key material: %w", err)
	}
	return out, nil
}

// encodeAffinePoint serializes an affine (x, y) representative's four
// limbs (plus modulus) as fixed-width big-endian integers. This encoding
// exists only to feed DeriveKey's XOF; it is not a wire format and carries
// no compatibility guarantee.
func encodeAffinePoint(modulus uint64, x, y ring.Elem) []byte {
	limbs := []uint64{
		modulus,
		x.Constant().Value(), x.EpsilonCoeff().Value(),
		y.Constant().Value(), y.EpsilonCoeff().Value(),
	}
	buf := make([]byte, 8*len(limbs))
	for i, limb := range limbs {
		binary.BigEndian.PutUint64(buf[i*8:(i+1)*8], limb)
	}
	return buf
}

// SimulateKeyExchange runs both sides of a key exchange under dh and
// returns (aliceShared, bobShared); on a correct exchange the two are
// projectively equal.
func SimulateKeyExchange(d *DH, alicePrivate, bobPrivate uint64) (curve.Projective, curve.Projective, error) {
	_, alicePublic, err := d.GenerateKeypair(alicePrivate)
	if err != nil {
		return curve.Projective{}, curve.Projective{}, fmt.Errorf("dh: alice keypair: %w", err)
	}
	_, bobPublic, err := d.GenerateKeypair(bobPrivate)
	if err != nil {
		return curve.Projective{}, curve.Projective{}, fmt.Errorf("dh: bob keypair: %w", err)
	}

	aliceShared, err := d.ComputeSharedSecret(alicePrivate, bobPublic)
	if err != nil {
		return curve.Projective{}, curve.Projective{}, fmt.Errorf("dh: alice shared secret: %w", err)
	}
	bobShared, err := d.ComputeSharedSecret(bobPrivate, alicePublic)
	if err != nil {
		return curve.Projective{}, curve.Projective{}, fmt.Errorf("dh: bob shared secret: %w", err)
	}

	return aliceShared, bobShared, nil
}
