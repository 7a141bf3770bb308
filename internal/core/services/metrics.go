package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var postingsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "farm_ledger",
		Name:      "postings_total",
		Help:      "Posting operations by operation and outcome",
	},
	[]string{"operation", "outcome"},
)

// observePosting counts one posting attempt.
func observePosting(operation string, err error) {
	outcome := "committed"
	if err != nil {
		outcome = "rolled_back"
	}
	postingsTotal.WithLabelValues(operation, outcome).Inc()
}
