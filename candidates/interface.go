package candidates

import (
	"context"

	"github.com/spacemeshos/go-parachain/common/types"
)

//go:generate mockgen -typed -package=candidates -destination=./mocks.go -source=./interface.go

// ClaimQueue resolves the cores a para is scheduled on.
type ClaimQueue interface {
	// AssignedCores returns the cores assigned to para at the given offset of the claim
	// queue of the relay parent, in claim queue order.
	AssignedCores(
		ctx context.Context,
		relayParent types.Hash32,
		para types.ParaID,
		offset types.ClaimQueueOffset,
	) ([]types.CoreIndex, error)
}
