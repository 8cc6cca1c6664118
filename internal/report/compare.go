package report

// Delta is the change of one metric between two runs.
type Delta struct {
	Metric string
	Base   float64
	Head   float64
}

// Change returns head minus base.
func (d Delta) Change() float64 {
	return d.Head - d.Base
}

// Compare pairs every summary metric of base and head.
func Compare(base, head Summary) []Delta {
	baseMetrics := base.Metrics()
	headMetrics := head.Metrics()
	deltas := make([]Delta, 0, len(baseMetrics))
	for i, metric := range baseMetrics {
		deltas = append(deltas, Delta{Metric: metric.Name, Base: metric.Value, Head: headMetrics[i].Value})
	}
	return deltas
}
