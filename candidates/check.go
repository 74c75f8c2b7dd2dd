package candidates

import (
	"errors"
	"fmt"

	"github.com/spacemeshos/go-parachain/common/types"
)

var (
	// ErrNoAssignment is returned when the para has no cores assigned at the claim queue offset.
	ErrNoAssignment = errors.New("no cores assigned to para")
	// ErrNoCoreSelected is returned when the commitments carry no valid core selector signal.
	ErrNoCoreSelected = errors.New("no core selected")
	// ErrInvalidCoreIndex is returned when the core selector doesn't index an assigned core.
	ErrInvalidCoreIndex = errors.New("invalid core index")
	// ErrCoreIndexMismatch is returned when the descriptor commits to a core other than the selected one.
	ErrCoreIndexMismatch = errors.New("core index mismatch")
	// ErrInvalidSelectedCore is returned when the committed claim queue offset is beyond the queue depth.
	ErrInvalidSelectedCore = errors.New("invalid selected core")
	// ErrClaimQueue wraps failures to resolve the assigned cores. The verdict is unknown.
	ErrClaimQueue = errors.New("claim queue lookup failed")
)

// CheckCoreIndex checks that the receipt commits to the core selected from the cores
// assigned to its para, in claim queue order.
//
// Legacy receipts predate core commitments and always pass.
func CheckCoreIndex(receipt *types.CommittedCandidateReceipt, assigned []types.CoreIndex) error {
	descriptor := &receipt.Descriptor
	if descriptor.Version() == types.DescriptorV1 {
		return nil
	}
	if len(assigned) == 0 {
		return ErrNoAssignment
	}
	selector, _, ok := receipt.Commitments.SelectedCore()
	if !ok {
		return ErrNoCoreSelected
	}
	idx := int(selector) % len(assigned)
	if idx >= len(assigned) {
		return fmt.Errorf("%w: selector %d with %d cores", ErrInvalidCoreIndex, selector, len(assigned))
	}
	expected := assigned[idx]
	committed, _ := descriptor.CoreIndex()
	if committed != expected {
		return fmt.Errorf("%w: committed %d, expected %d", ErrCoreIndexMismatch, committed, expected)
	}
	return nil
}
