package fitness

// WeightedAggregator calculates fitness as weighted sum of metric scores
type WeightedAggregator struct {
	Weights     map[string]float64
	Normalizers map[string]NormalizeFunc
}

func (a *WeightedAggregator) Calculate(metrics Metrics) float64 {
	var fitness float64
	for key, weight := range a.Weights {
		raw, ok := metrics[key]
		if !ok {
			continue
		}

		normalized := raw
		if a.Normalizers != nil {
			if normalizer, ok := a.Normalizers[key]; ok && normalizer != nil {
				normalized = normalizer(raw)
			}
		}

		fitness += weight * normalized
	}

	return fitness
}

// Breakdown returns the per-metric weighted contributions, for
// observability alongside the scalar score.
func (a *WeightedAggregator) Breakdown(metrics Metrics) map[string]float64 {
	out := make(map[string]float64, len(a.Weights))
	for key, weight := range a.Weights {
		raw, ok := metrics[key]
		if !ok {
			continue
		}
		normalized := raw
		if a.Normalizers != nil {
			if normalizer, ok := a.Normalizers[key]; ok && normalizer != nil {
				normalized = normalizer(raw)
			}
		}
		out[key] = weight * normalized
	}
	return out
}
