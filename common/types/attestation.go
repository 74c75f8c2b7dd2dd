package types

import (
	"fmt"

	"github.com/spacemeshos/go-scale"
)

// AttestationKind distinguishes how a validator vouched for a candidate.
type AttestationKind uint8

const (
	// ImplicitAttestation is implied by a validator seconding the candidate.
	ImplicitAttestation AttestationKind = 1
	// ExplicitAttestation is a direct validity statement.
	ExplicitAttestation AttestationKind = 2
)

// String returns the kind name.
func (k AttestationKind) String() string {
	switch k {
	case ImplicitAttestation:
		return "implicit"
	case ExplicitAttestation:
		return "explicit"
	}
	return fmt.Sprintf("unknown(%d)", uint8(k))
}

// ValidityAttestation is a validator's signed statement that a candidate is valid.
// Verifying the signature is up to the caller.
type ValidityAttestation struct {
	Kind      AttestationKind
	Signature ValidatorSignature
}

// Implicit returns an implicit attestation with the given signature.
func Implicit(sig ValidatorSignature) ValidityAttestation {
	return ValidityAttestation{Kind: ImplicitAttestation, Signature: sig}
}

// Explicit returns an explicit attestation with the given signature.
func Explicit(sig ValidatorSignature) ValidityAttestation {
	return ValidityAttestation{Kind: ExplicitAttestation, Signature: sig}
}

// EncodeScale implements scale codec interface.
func (a *ValidityAttestation) EncodeScale(e *scale.Encoder) (int, error) {
	if a.Kind != ImplicitAttestation && a.Kind != ExplicitAttestation {
		return 0, fmt.Errorf("encode attestation: unknown kind %d", a.Kind)
	}
	total, err := scale.EncodeByte(e, byte(a.Kind))
	if err != nil {
		return total, err
	}
	n, err := a.Signature.EncodeScale(e)
	return total + n, err
}

// DecodeScale implements scale codec interface.
func (a *ValidityAttestation) DecodeScale(d *scale.Decoder) (int, error) {
	kind, total, err := scale.DecodeByte(d)
	if err != nil {
		return total, err
	}
	a.Kind = AttestationKind(kind)
	if a.Kind != ImplicitAttestation && a.Kind != ExplicitAttestation {
		return total, fmt.Errorf("decode attestation: unknown kind %d", kind)
	}
	n, err := a.Signature.DecodeScale(d)
	return total + n, err
}
