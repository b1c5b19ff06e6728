package claims

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/kernel-community/nfteasy/babel-api/metrics/consts"
)

// Indicators counts the off-chain claim material this process produced and
// the contract events it indexed.
type Indicators interface {
	IncrementSignaturesTotal(state string)
	AddProofsTotal(n int)
	SetAllowListSize(n int)
	IncrementEventsTotal(eventType string)
}

type PromIndicators struct {
	signaturesTotal *prometheus.CounterVec
	proofsTotal     prometheus.Counter
	allowListSize   prometheus.Gauge
	eventsTotal     *prometheus.CounterVec
}

var _ Indicators = (*PromIndicators)(nil)

func NewPromIndicators(contractName string, reg prometheus.Registerer) *PromIndicators {
	labels := prometheus.Labels{"contract": contractName}
	return &PromIndicators{
		signaturesTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   consts.BabelPromNamespace,
				Name:        "claim_signatures_total",
				Help:        "claim signatures built, by state (success, failure)",
				ConstLabels: labels,
			},
			[]string{"state"},
		),
		proofsTotal: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace:   consts.BabelPromNamespace,
				Name:        "merkle_proofs_total",
				Help:        "merkle proofs generated",
				ConstLabels: labels,
			},
		),
		allowListSize: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Namespace:   consts.BabelPromNamespace,
				Name:        "allow_list_size",
				Help:        "distinct leaves in the last built allow-list tree",
				ConstLabels: labels,
			},
		),
		eventsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   consts.BabelPromNamespace,
				Name:        "events_indexed_total",
				Help:        "contract events indexed, by event type",
				ConstLabels: labels,
			},
			[]string{"event"},
		),
	}
}

func (p *PromIndicators) IncrementSignaturesTotal(state string) {
	p.signaturesTotal.WithLabelValues(state).Inc()
}

func (p *PromIndicators) AddProofsTotal(n int) {
	p.proofsTotal.Add(float64(n))
}

func (p *PromIndicators) SetAllowListSize(n int) {
	p.allowListSize.Set(float64(n))
}

func (p *PromIndicators) IncrementEventsTotal(eventType string) {
	p.eventsTotal.WithLabelValues(eventType).Inc()
}
