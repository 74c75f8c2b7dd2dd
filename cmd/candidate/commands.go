package main

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/natefinch/atomic"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spacemeshos/go-parachain/backing"
	"github.com/spacemeshos/go-parachain/candidates"
	"github.com/spacemeshos/go-parachain/codec"
	"github.com/spacemeshos/go-parachain/common/types"
	"github.com/spacemeshos/go-parachain/common/util"
	"github.com/spacemeshos/go-parachain/log"
	"github.com/spacemeshos/go-parachain/metrics"
)

var (
	out       string
	cores     coreList
	groupSize int
)

func init() {
	decodeCmd.Flags().StringVar(&out, "out", "", "write the canonical encoding of the receipt to this file")
	checkCmd.Flags().Var(&cores, "cores", "cores assigned to the para in the claim queue")
	backedCmd.Flags().IntVar(&groupSize, "group-size", 5, "size of the backing group")
}

func decodeReceipt(arg string) (*types.CommittedCandidateReceipt, error) {
	raw, err := util.Decode(arg)
	if err != nil {
		return nil, log.ErrBadInput(0, "hex string")
	}
	var receipt types.CommittedCandidateReceipt
	if err := codec.DecodeExact(raw, &receipt); err != nil {
		return nil, fmt.Errorf("%w: %w", log.ErrBadInput(0, "committed candidate receipt"), err)
	}
	return &receipt, nil
}

var decodeCmd = &cobra.Command{
	Use:   "decode <hex>",
	Short: "print the fields of a committed candidate receipt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		receipt, err := decodeReceipt(args[0])
		if err != nil {
			return err
		}
		printReceipt(cmd.OutOrStdout(), receipt)
		if out == "" {
			return nil
		}
		buf, err := codec.Encode(receipt)
		if err != nil {
			return err
		}
		if err := atomic.WriteFile(out, bytes.NewReader(buf)); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		logger.Debug("saved receipt", zap.String("path", out), zap.Int("size", len(buf)))
		return nil
	},
}

func printReceipt(w io.Writer, receipt *types.CommittedCandidateReceipt) {
	d := &receipt.Descriptor
	fmt.Fprintf(w, "version:      %s\n", d.Version())
	fmt.Fprintf(w, "para:         %s\n", d.ParaID())
	fmt.Fprintf(w, "relay parent: %s\n", d.RelayParent())
	fmt.Fprintf(w, "para head:    %s\n", d.ParaHead())
	fmt.Fprintf(w, "code hash:    %s\n", d.ValidationCodeHash())
	if core, ok := d.CoreIndex(); ok {
		fmt.Fprintf(w, "core:         %s\n", core)
	}
	if session, ok := d.SessionIndex(); ok {
		fmt.Fprintf(w, "session:      %d\n", session)
	}
	if collator, ok := d.Collator(); ok {
		fmt.Fprintf(w, "collator:     %s\n", collator)
	}
	if selector, offset, ok := receipt.Commitments.SelectedCore(); ok {
		fmt.Fprintf(w, "selector:     %d\n", selector)
		fmt.Fprintf(w, "cq offset:    %d\n", offset)
	}
	fmt.Fprintf(w, "hash:         %s\n", receipt.Hash())
}

var hashCmd = &cobra.Command{
	Use:   "hash <hex>",
	Short: "print the hash of a committed candidate receipt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		receipt, err := decodeReceipt(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), receipt.Hash())
		return nil
	},
}

// staticQueue assigns the same cores to every para at every offset.
type staticQueue []types.CoreIndex

func (q staticQueue) AssignedCores(
	context.Context,
	types.Hash32,
	types.ParaID,
	types.ClaimQueueOffset,
) ([]types.CoreIndex, error) {
	return q, nil
}

var checkCmd = &cobra.Command{
	Use:   "check <hex>",
	Short: "check that a receipt commits to one of the assigned cores",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		receipt, err := decodeReceipt(args[0])
		if err != nil {
			return err
		}
		queue := staticQueue(cores)
		vlog, err := newLogger(conf.Logging.VerifierLevel)
		if err != nil {
			return log.ErrMalformedConfig(err)
		}
		verifier, err := candidates.NewVerifier(queue,
			candidates.WithLogger(vlog.Named("verifier")),
			candidates.WithConfig(conf.Candidates),
		)
		if err != nil {
			return log.ErrMalformedConfig(err)
		}
		ctx := cmd.Context()
		verdict := verifier.Verify(ctx, receipt)
		if err := metrics.Push(ctx, conf.Metrics, prometheus.DefaultGatherer); err != nil {
			logger.Warn("failed to push metrics", log.ZContext(ctx), zap.Error(err))
		}
		if verdict != nil {
			return verdict
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s ok\n", receipt.Hash())
		return nil
	},
}

var backedCmd = &cobra.Command{
	Use:   "backed <hex>",
	Short: "check the validator bitfield and votes of a backed candidate",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := util.Decode(args[0])
		if err != nil {
			return log.ErrBadInput(0, "hex string")
		}
		var bc types.BackedCandidate
		if err := codec.DecodeExact(raw, &bc); err != nil {
			return fmt.Errorf("%w: %w", log.ErrBadInput(0, "backed candidate"), err)
		}
		core, ok, err := backing.CheckBacked(&bc, groupSize, conf.Backing.ElasticScaling)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "hash:  %s\n", bc.Hash())
		fmt.Fprintf(w, "votes: %d\n", len(bc.ValidityVotes()))
		if ok {
			fmt.Fprintf(w, "core:  %s\n", core)
		}
		return nil
	},
}
