package types

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/spacemeshos/go-scale"
	"go.uber.org/zap/zapcore"
)

// DescriptorSize is the encoded size of a candidate descriptor in both layouts.
const DescriptorSize = 4 + Hash32Length + CollatorIDSize + 3*Hash32Length + SignatureSize + 2*Hash32Length

// Byte offsets within the encoded descriptor. V2 repurposes the region that holds the
// collator id in V1 (version, core index, session index, reserved25) and the region
// that holds the collator signature (reserved64).
const (
	offParaID      = 0
	offRelayParent = offParaID + 4
	offCollator    = offRelayParent + Hash32Length
	offVersion     = offCollator
	offCoreIndex   = offVersion + 1
	offSession     = offCoreIndex + 2
	offReserved25  = offSession + 4
	offPVDHash     = offCollator + CollatorIDSize
	offPovHash     = offPVDHash + Hash32Length
	offErasureRoot = offPovHash + Hash32Length
	offSignature   = offErasureRoot + Hash32Length
	offParaHead    = offSignature + SignatureSize
	offCodeHash    = offParaHead + Hash32Length
)

// ErrDescriptorLength is returned when decoding a descriptor from an input of the wrong size.
var ErrDescriptorLength = errors.New("invalid candidate descriptor length")

// DescriptorVersion is the layout a descriptor is interpreted with.
type DescriptorVersion uint8

const (
	// DescriptorV1 is the legacy layout carrying a collator id and signature.
	DescriptorV1 DescriptorVersion = iota + 1
	// DescriptorV2 is the layout carrying core index and session index.
	DescriptorV2
)

// String returns the version name.
func (v DescriptorVersion) String() string {
	switch v {
	case DescriptorV1:
		return "v1"
	case DescriptorV2:
		return "v2"
	}
	return fmt.Sprintf("unknown(%d)", uint8(v))
}

// InternalVersion is the raw version tag stored in a V2 descriptor.
type InternalVersion uint8

// VersionedDescriptor is a descriptor interpreted with a known layout, either
// *CandidateDescriptorV1 or *CandidateDescriptor.
type VersionedDescriptor interface {
	Version() DescriptorVersion
	Bytes() []byte
	isVersionedDescriptor()
}

// commonFields are the fields both layouts store at the same offsets.
type commonFields struct {
	paraID                      ParaID
	relayParent                 Hash32
	persistedValidationDataHash Hash32
	povHash                     Hash32
	erasureRoot                 Hash32
	paraHead                    Hash32
	validationCodeHash          ValidationCodeHash
}

func (c *commonFields) put(buf []byte) {
	binary.LittleEndian.PutUint32(buf[offParaID:], uint32(c.paraID))
	copy(buf[offRelayParent:], c.relayParent[:])
	copy(buf[offPVDHash:], c.persistedValidationDataHash[:])
	copy(buf[offPovHash:], c.povHash[:])
	copy(buf[offErasureRoot:], c.erasureRoot[:])
	copy(buf[offParaHead:], c.paraHead[:])
	copy(buf[offCodeHash:], c.validationCodeHash[:])
}

func (c *commonFields) load(buf []byte) {
	c.paraID = ParaID(binary.LittleEndian.Uint32(buf[offParaID:]))
	copy(c.relayParent[:], buf[offRelayParent:])
	copy(c.persistedValidationDataHash[:], buf[offPVDHash:])
	copy(c.povHash[:], buf[offPovHash:])
	copy(c.erasureRoot[:], buf[offErasureRoot:])
	copy(c.paraHead[:], buf[offParaHead:])
	copy(c.validationCodeHash[:], buf[offCodeHash:])
}

// CandidateDescriptor is the unique descriptor of a candidate receipt.
//
// The byte layout is shared with CandidateDescriptorV1; which interpretation applies
// is decided by Version. Values are immutable once constructed.
type CandidateDescriptor struct {
	commonFields
	version      InternalVersion
	coreIndex    uint16
	sessionIndex SessionIndex
	reserved25   [25]byte
	reserved64   [64]byte
}

// NewCandidateDescriptor creates a descriptor in the V2 layout.
// The core index is truncated to 16 bits.
func NewCandidateDescriptor(
	paraID ParaID,
	relayParent Hash32,
	coreIndex CoreIndex,
	sessionIndex SessionIndex,
	persistedValidationDataHash Hash32,
	povHash Hash32,
	erasureRoot Hash32,
	paraHead Hash32,
	validationCodeHash ValidationCodeHash,
) CandidateDescriptor {
	return CandidateDescriptor{
		commonFields: commonFields{
			paraID:                      paraID,
			relayParent:                 relayParent,
			persistedValidationDataHash: persistedValidationDataHash,
			povHash:                     povHash,
			erasureRoot:                 erasureRoot,
			paraHead:                    paraHead,
			validationCodeHash:          validationCodeHash,
		},
		coreIndex:    uint16(coreIndex),
		sessionIndex: sessionIndex,
	}
}

// DecodeDescriptor decodes a descriptor from exactly DescriptorSize bytes.
func DecodeDescriptor(buf []byte) (CandidateDescriptor, error) {
	var d CandidateDescriptor
	if len(buf) != DescriptorSize {
		return d, fmt.Errorf("%w: got %d bytes, want %d", ErrDescriptorLength, len(buf), DescriptorSize)
	}
	d.load(buf)
	return d, nil
}

// DecodeVersionedDescriptor decodes a descriptor and returns it in the layout selected by
// the version rule: *CandidateDescriptorV1 or *CandidateDescriptor.
func DecodeVersionedDescriptor(buf []byte) (VersionedDescriptor, error) {
	d, err := DecodeDescriptor(buf)
	if err != nil {
		return nil, err
	}
	return d.Variant(), nil
}

func (d *CandidateDescriptor) load(buf []byte) {
	d.commonFields.load(buf)
	d.version = InternalVersion(buf[offVersion])
	d.coreIndex = binary.LittleEndian.Uint16(buf[offCoreIndex:])
	d.sessionIndex = SessionIndex(binary.LittleEndian.Uint32(buf[offSession:]))
	copy(d.reserved25[:], buf[offReserved25:offPVDHash])
	copy(d.reserved64[:], buf[offSignature:offParaHead])
}

// Bytes returns the fixed-size encoding of the descriptor.
func (d *CandidateDescriptor) Bytes() []byte {
	buf := make([]byte, DescriptorSize)
	d.put(buf)
	buf[offVersion] = byte(d.version)
	binary.LittleEndian.PutUint16(buf[offCoreIndex:], d.coreIndex)
	binary.LittleEndian.PutUint32(buf[offSession:], uint32(d.sessionIndex))
	copy(buf[offReserved25:], d.reserved25[:])
	copy(buf[offSignature:], d.reserved64[:])
	return buf
}

// EncodeScale implements scale codec interface.
func (d *CandidateDescriptor) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeByteArray(e, d.Bytes())
}

// DecodeScale implements scale codec interface.
func (d *CandidateDescriptor) DecodeScale(dec *scale.Decoder) (int, error) {
	var buf [DescriptorSize]byte
	n, err := scale.DecodeByteArray(dec, buf[:])
	if err != nil {
		return n, err
	}
	d.load(buf[:])
	return n, nil
}

func (*CandidateDescriptor) isVersionedDescriptor() {}

// Version returns the layout the descriptor is interpreted with.
//
// The descriptor is V2 iff both reserved regions are zero and the internal version is 0.
// A legacy descriptor with an all zero collator id and signature is therefore read as V2.
func (d *CandidateDescriptor) Version() DescriptorVersion {
	if d.reserved64 != [64]byte{} || d.reserved25 != [25]byte{} {
		return DescriptorV1
	}
	if d.version != 0 {
		return DescriptorV1
	}
	return DescriptorV2
}

// Variant returns the descriptor in the layout selected by Version.
func (d *CandidateDescriptor) Variant() VersionedDescriptor {
	if d.Version() == DescriptorV1 {
		v1 := d.ToV1()
		return &v1
	}
	cp := *d
	return &cp
}

// ParaID returns the id of the para this is a candidate for.
func (d *CandidateDescriptor) ParaID() ParaID { return d.paraID }

// RelayParent returns the relay chain block the candidate is executed in the context of.
func (d *CandidateDescriptor) RelayParent() Hash32 { return d.relayParent }

// PersistedValidationDataHash returns the hash of the persisted validation data.
func (d *CandidateDescriptor) PersistedValidationDataHash() Hash32 {
	return d.persistedValidationDataHash
}

// PovHash returns the hash of the proof of validity.
func (d *CandidateDescriptor) PovHash() Hash32 { return d.povHash }

// ErasureRoot returns the root of the erasure encoding merkle tree.
func (d *CandidateDescriptor) ErasureRoot() Hash32 { return d.erasureRoot }

// ParaHead returns the hash of the para header produced by the candidate.
func (d *CandidateDescriptor) ParaHead() Hash32 { return d.paraHead }

// ValidationCodeHash returns the hash of the validation code.
func (d *CandidateDescriptor) ValidationCodeHash() ValidationCodeHash {
	return d.validationCodeHash
}

func (d *CandidateDescriptor) rebuildCollator() CollatorID {
	var id CollatorID
	id[0] = byte(d.version)
	binary.LittleEndian.PutUint16(id[1:], d.coreIndex)
	binary.LittleEndian.PutUint32(id[3:], uint32(d.sessionIndex))
	copy(id[7:], d.reserved25[:])
	return id
}

// Collator returns the collator id of a V1 descriptor.
func (d *CandidateDescriptor) Collator() (CollatorID, bool) {
	if d.Version() != DescriptorV1 {
		return CollatorID{}, false
	}
	return d.rebuildCollator(), true
}

// Signature returns the collator signature of a V1 descriptor.
func (d *CandidateDescriptor) Signature() (CollatorSignature, bool) {
	if d.Version() != DescriptorV1 {
		return CollatorSignature{}, false
	}
	return CollatorSignature(d.reserved64), true
}

// CoreIndex returns the core index of a V2 descriptor.
func (d *CandidateDescriptor) CoreIndex() (CoreIndex, bool) {
	if d.Version() != DescriptorV2 {
		return 0, false
	}
	return CoreIndex(d.coreIndex), true
}

// SessionIndex returns the session index of a V2 descriptor.
func (d *CandidateDescriptor) SessionIndex() (SessionIndex, bool) {
	if d.Version() != DescriptorV2 {
		return 0, false
	}
	return d.sessionIndex, true
}

// ToV1 returns the descriptor in the legacy layout. The collator and signature fields
// are rebuilt from the bytes they overlap, regardless of the version.
func (d *CandidateDescriptor) ToV1() CandidateDescriptorV1 {
	return CandidateDescriptorV1{
		ParaID:                      d.paraID,
		RelayParent:                 d.relayParent,
		Collator:                    d.rebuildCollator(),
		PersistedValidationDataHash: d.persistedValidationDataHash,
		PovHash:                     d.povHash,
		ErasureRoot:                 d.erasureRoot,
		Signature:                   CollatorSignature(d.reserved64),
		ParaHead:                    d.paraHead,
		ValidationCodeHash:          d.validationCodeHash,
	}
}

// MarshalLogObject implements logging interface.
func (d *CandidateDescriptor) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("version", d.Version().String())
	encoder.AddUint32("para_id", uint32(d.paraID))
	encoder.AddString("relay_parent", d.relayParent.ShortString())
	if core, ok := d.CoreIndex(); ok {
		encoder.AddUint32("core_index", uint32(core))
	}
	if session, ok := d.SessionIndex(); ok {
		encoder.AddUint32("session_index", uint32(session))
	}
	encoder.AddString("para_head", d.paraHead.ShortString())
	return nil
}

// CandidateDescriptorV1 is the legacy descriptor layout, signed by a collator.
type CandidateDescriptorV1 struct {
	ParaID                      ParaID
	RelayParent                 Hash32
	Collator                    CollatorID
	PersistedValidationDataHash Hash32
	PovHash                     Hash32
	ErasureRoot                 Hash32
	Signature                   CollatorSignature
	ParaHead                    Hash32
	ValidationCodeHash          ValidationCodeHash
}

func (*CandidateDescriptorV1) isVersionedDescriptor() {}

// Version always reports DescriptorV1.
func (*CandidateDescriptorV1) Version() DescriptorVersion { return DescriptorV1 }

// Bytes returns the fixed-size encoding of the descriptor.
func (d *CandidateDescriptorV1) Bytes() []byte {
	buf := make([]byte, DescriptorSize)
	c := commonFields{
		paraID:                      d.ParaID,
		relayParent:                 d.RelayParent,
		persistedValidationDataHash: d.PersistedValidationDataHash,
		povHash:                     d.PovHash,
		erasureRoot:                 d.ErasureRoot,
		paraHead:                    d.ParaHead,
		validationCodeHash:          d.ValidationCodeHash,
	}
	c.put(buf)
	copy(buf[offCollator:], d.Collator[:])
	copy(buf[offSignature:], d.Signature[:])
	return buf
}

func (d *CandidateDescriptorV1) load(buf []byte) {
	var c commonFields
	c.load(buf)
	d.ParaID = c.paraID
	d.RelayParent = c.relayParent
	copy(d.Collator[:], buf[offCollator:offPVDHash])
	d.PersistedValidationDataHash = c.persistedValidationDataHash
	d.PovHash = c.povHash
	d.ErasureRoot = c.erasureRoot
	copy(d.Signature[:], buf[offSignature:offParaHead])
	d.ParaHead = c.paraHead
	d.ValidationCodeHash = c.validationCodeHash
}

// SignaturePayload returns the 132 bytes a collator signs in the legacy layout: relay
// parent, para id, persisted validation data hash, pov hash and validation code hash.
func (d *CandidateDescriptorV1) SignaturePayload() []byte {
	payload := make([]byte, 0, 4+4*Hash32Length)
	payload = append(payload, d.RelayParent[:]...)
	payload = binary.LittleEndian.AppendUint32(payload, uint32(d.ParaID))
	payload = append(payload, d.PersistedValidationDataHash[:]...)
	payload = append(payload, d.PovHash[:]...)
	payload = append(payload, d.ValidationCodeHash[:]...)
	return payload
}

// ToV2 reinterprets the legacy descriptor in the current layout. The result reports
// DescriptorV2 only if the collator id and signature were all zero.
func (d *CandidateDescriptorV1) ToV2() CandidateDescriptor {
	var rst CandidateDescriptor
	rst.load(d.Bytes())
	return rst
}

// EncodeScale implements scale codec interface.
func (d *CandidateDescriptorV1) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeByteArray(e, d.Bytes())
}

// DecodeScale implements scale codec interface.
func (d *CandidateDescriptorV1) DecodeScale(dec *scale.Decoder) (int, error) {
	var buf [DescriptorSize]byte
	n, err := scale.DecodeByteArray(dec, buf[:])
	if err != nil {
		return n, err
	}
	d.load(buf[:])
	return n, nil
}
