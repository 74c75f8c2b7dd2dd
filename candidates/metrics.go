package candidates

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/spacemeshos/go-parachain/metrics"
)

const namespace = "candidates"

var (
	verdicts = metrics.NewCounter(
		"verdicts",
		namespace,
		"number of core assignment verdicts",
		[]string{"result"},
	)
	acceptedVerdict         = verdicts.WithLabelValues("accepted")
	legacyVerdict           = verdicts.WithLabelValues("legacy")
	noAssignmentVerdict     = verdicts.WithLabelValues("no_assignment")
	noCoreSelectedVerdict   = verdicts.WithLabelValues("no_core_selected")
	invalidCoreIndexVerdict = verdicts.WithLabelValues("invalid_core_index")
	mismatchVerdict         = verdicts.WithLabelValues("core_index_mismatch")
	invalidSelectedVerdict  = verdicts.WithLabelValues("invalid_selected_core")

	claimQueueErrors = metrics.NewCounter(
		"claim_queue_errors",
		namespace,
		"number of failed claim queue lookups",
		[]string{},
	).WithLabelValues()

	cacheLookups = metrics.NewCounter(
		"verdict_cache",
		namespace,
		"verdict cache lookups",
		[]string{"outcome"},
	)
	cacheHit  = cacheLookups.WithLabelValues("hit")
	cacheMiss = cacheLookups.WithLabelValues("miss")

	verifyLatency = metrics.NewHistogramWithBuckets(
		"verify_seconds",
		namespace,
		"time to verify core assignment of a candidate, including the claim queue lookup",
		[]string{},
		prometheus.ExponentialBuckets(0.0001, 2, 14),
	).WithLabelValues()
)
