package handler

import (
	"vn-server/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	scenesRenderedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vn_scenes_rendered_total",
		Help: "Total number of scenes rendered for players.",
	})

	optionsSelectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vn_options_selected_total",
			Help: "Total number of option selections by outcome.",
		},
		[]string{"outcome"}, // applied, replayed
	)

	affinityDeltaTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vn_affinity_delta_total",
			Help: "Sum of absolute affinity changes per character.",
		},
		[]string{"character"},
	)

	transitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vn_transitions_total",
			Help: "Total number of non-choice scene transitions by kind.",
		},
		[]string{"kind"}, // advance, minigame_win, minigame_lose, load
	)

	savesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vn_save_operations_total",
			Help: "Total number of save slot operations by type.",
		},
		[]string{"op"}, // save, load, delete
	)
)

func recordEffects(effects []models.AffinityEffect) {
	for _, e := range effects {
		d := e.Delta
		if d < 0 {
			d = -d
		}
		affinityDeltaTotal.WithLabelValues(e.TargetCharacterID).Add(float64(d))
	}
}
