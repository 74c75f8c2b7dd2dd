package backing

import "github.com/spacemeshos/go-parachain/metrics"

const namespace = "backing"

var (
	voteResults = metrics.NewCounter(
		"votes",
		namespace,
		"number of validity votes imported into the table",
		[]string{"result"},
	)
	importedVotes   = voteResults.WithLabelValues("imported")
	duplicateVotes  = voteResults.WithLabelValues("duplicate")
	notInGroupVotes = voteResults.WithLabelValues("not_in_group")

	backedCandidates = metrics.NewCounter(
		"backed",
		namespace,
		"number of backed candidates built from the table",
		[]string{},
	).WithLabelValues()

	trackedCandidates = metrics.NewGauge(
		"tracked_candidates",
		namespace,
		"number of candidates with votes in the table",
		[]string{},
	).WithLabelValues()
)
