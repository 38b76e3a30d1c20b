// Package measure counts key generation candidates, signing attempts and
// verifications with prometheus collectors on a package registry.
package measure

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels.
const (
	OutcomeAccepted       = "accepted"
	OutcomeGSNorm         = "gs_norm"
	OutcomeNotInvertible  = "not_invertible"
	OutcomeNoSolution     = "no_solution"
	OutcomeNormExceeded   = "norm_exceeded"
	OutcomeEncodeOverflow = "encode_overflow"
)

var (
	registerOnce sync.Once
	registry     = prometheus.NewRegistry()

	keygenCandidates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "falcon",
			Subsystem: "keygen",
			Name:      "candidates_total",
			Help:      "NTRU key candidates classified by outcome",
		},
		[]string{"outcome"},
	)

	signAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "falcon",
			Subsystem: "sign",
			Name:      "attempts_total",
			Help:      "Preimage samples drawn while signing, classified by outcome",
		},
		[]string{"outcome"},
	)

	verifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "falcon",
			Subsystem: "verify",
			Name:      "total",
			Help:      "Signature verifications classified by result",
		},
		[]string{"result"},
	)

	signSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "falcon",
			Subsystem: "sign",
			Name:      "seconds",
			Help:      "Time spent producing one signature",
			Buckets:   []float64{0.0005, 0.001, 0.002, 0.005, 0.01, 0.02, 0.05, 0.1, 0.5},
		},
	)
)

func ensureRegistered() {
	registerOnce.Do(func() {
		registry.MustRegister(keygenCandidates, signAttempts, verifications, signSeconds)
	})
}

// Registry exposes the collectors, e.g. to a promhttp handler.
func Registry() *prometheus.Registry {
	ensureRegistered()
	return registry
}

// KeygenCandidate records one key generation candidate.
func KeygenCandidate(outcome string) {
	ensureRegistered()
	keygenCandidates.WithLabelValues(outcome).Inc()
}

// SignAttempt records one preimage sample drawn by the signer.
func SignAttempt(outcome string) {
	ensureRegistered()
	signAttempts.WithLabelValues(outcome).Inc()
}

// Verification records a verification result.
func Verification(ok bool) {
	ensureRegistered()
	result := "rejected"
	if ok {
		result = "valid"
	}
	verifications.WithLabelValues(result).Inc()
}

// ObserveSign records the duration of one Sign call.
func ObserveSign(d time.Duration) {
	ensureRegistered()
	signSeconds.Observe(d.Seconds())
}

// Snapshot flattens the registry into name{label="value"} -> value.
// Histograms contribute their _count and _sum.
func Snapshot() map[string]float64 {
	families, err := Registry().Gather()
	out := make(map[string]float64)
	if err != nil {
		return out
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+`="`+lp.GetValue()+`"`)
			}
			sort.Strings(labels)
			key := mf.GetName()
			if len(labels) > 0 {
				key += "{" + strings.Join(labels, ",") + "}"
			}
			switch {
			case m.GetCounter() != nil:
				out[key] = m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				out[mf.GetName()+"_count"] = float64(m.GetHistogram().GetSampleCount())
				out[mf.GetName()+"_sum"] = m.GetHistogram().GetSampleSum()
			}
		}
	}
	return out
}

// Reset clears every counter. The histogram keeps its samples.
func Reset() {
	ensureRegistered()
	keygenCandidates.Reset()
	signAttempts.Reset()
	verifications.Reset()
}
