/*
Copyright © 2022 Billy G. Allie <bill.allie@defiant.mug.org>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package search

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts search work.  A nil *Metrics records nothing.
type Metrics struct {
	candidates   *prometheus.CounterVec
	improvements *prometheus.CounterVec
	runs         *prometheus.CounterVec
	bestScore    *prometheus.GaugeVec
}

// NewMetrics registers the search metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	labels := []string{"algorithm", "cipher"}
	return &Metrics{
		candidates: f.NewCounterVec(prometheus.CounterOpts{
			Name: "classic_search_candidates_total",
			Help: "Candidate keys scored.",
		}, labels),
		improvements: f.NewCounterVec(prometheus.CounterOpts{
			Name: "classic_search_improvements_total",
			Help: "Candidate keys that strictly improved on the best score.",
		}, labels),
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "classic_search_runs_total",
			Help: "Completed search runs.",
		}, labels),
		bestScore: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "classic_search_best_score",
			Help: "Best score of the most recent run.",
		}, labels),
	}
}

// observer holds the label-resolved metrics for one run.
type observer struct {
	candidates   prometheus.Counter
	improvements prometheus.Counter
	runs         prometheus.Counter
	best         prometheus.Gauge
}

func (m *Metrics) observe(algorithm, cipher string) observer {
	if m == nil {
		return observer{}
	}
	return observer{
		candidates:   m.candidates.WithLabelValues(algorithm, cipher),
		improvements: m.improvements.WithLabelValues(algorithm, cipher),
		runs:         m.runs.WithLabelValues(algorithm, cipher),
		best:         m.bestScore.WithLabelValues(algorithm, cipher),
	}
}

func (o observer) candidate() {
	if o.candidates != nil {
		o.candidates.Inc()
	}
}

func (o observer) improvement(score float64) {
	if o.improvements != nil {
		o.improvements.Inc()
		o.best.Set(score)
	}
}

func (o observer) done() {
	if o.runs != nil {
		o.runs.Inc()
	}
}
