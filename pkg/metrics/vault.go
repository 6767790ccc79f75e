package metrics

import "github.com/prometheus/client_golang/prometheus"

// VaultMetrics counts slot persistence outcomes.
type VaultMetrics struct {
	saves     *prometheus.CounterVec
	fallbacks *prometheus.CounterVec
}

// NewVaultMetrics registers the vault counters on the provided registerer.
func NewVaultMetrics(reg prometheus.Registerer) *VaultMetrics {
	if reg == nil {
		return &VaultMetrics{}
	}
	saves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vault_slot_saves_total",
		Help: "Vault slot writes partitioned by key and result.",
	}, []string{"key", "result"})
	fallbacks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vault_load_fallback_total",
		Help: "Vault slot loads that fell back to the default value.",
	}, []string{"key"})
	reg.MustRegister(saves, fallbacks)
	return &VaultMetrics{saves: saves, fallbacks: fallbacks}
}

// ObserveSave records a slot write; a nil err counts as "ok".
func (v *VaultMetrics) ObserveSave(key string, err error) {
	if v == nil || v.saves == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	v.saves.WithLabelValues(normalizeLabel(key), result).Inc()
}

// IncFallback records a load that used the default value.
func (v *VaultMetrics) IncFallback(key string) {
	if v == nil || v.fallbacks == nil {
		return
	}
	v.fallbacks.WithLabelValues(normalizeLabel(key)).Inc()
}
