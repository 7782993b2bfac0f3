package internal

import "math"

// QualityReport is the derived health summary of one sample table. It is
// advisory: validation never blocks serialization, the caller decides.
type QualityReport struct {
	Kind                   string  `yaml:"kind" json:"kind"`
	SampleCount            int     `yaml:"sample_count" json:"sample_count"`
	NaNCount               int     `yaml:"nan_count" json:"nan_count"`
	InfCount               int     `yaml:"inf_count" json:"inf_count"`
	MonotonicityViolations int     `yaml:"monotonicity_violations" json:"monotonicity_violations"`
	SkippedRecords         int     `yaml:"skipped_records" json:"skipped_records"`
	FirstTimestamp         float64 `yaml:"first_timestamp" json:"first_timestamp"`
	LastTimestamp          float64 `yaml:"last_timestamp" json:"last_timestamp"`
}

// Healthy reports whether the table is clean enough to use without a second
// look: no NaN/Inf values and no timestamp clamps.
func (r *QualityReport) Healthy() bool {
	return r.NaNCount == 0 && r.InfCount == 0 && r.MonotonicityViolations == 0
}

// Validate scans a table and produces its quality report without mutating
// it. Monotonicity violations are recomputed from the timestamps; a table
// written by the reconstructor is already non-decreasing, so a fresh scan of
// it yields zero and the reconstructor's own clamp count must be carried via
// ValidateWithCounters instead.
func Validate(t *SampleTable) *QualityReport {
	violations := 0
	for i := 1; i < len(t.Samples); i++ {
		if t.Samples[i].Timestamp < t.Samples[i-1].Timestamp {
			violations++
		}
	}
	return ValidateWithCounters(t, violations, 0)
}

// ValidateWithCounters produces the quality report with the monotonicity and
// record-skip counters carried over from the reconstruction and decode
// stages. Skip counts are never swallowed; a sensor that lost records always
// surfaces a nonzero counter here.
func ValidateWithCounters(t *SampleTable, violations, skipped int) *QualityReport {
	r := &QualityReport{
		Kind:                   t.Kind.String(),
		SampleCount:            len(t.Samples),
		MonotonicityViolations: violations,
		SkippedRecords:         skipped,
	}
	for _, s := range t.Samples {
		for _, v := range s.Channels {
			switch {
			case math.IsNaN(v):
				r.NaNCount++
			case math.IsInf(v, 0):
				r.InfCount++
			}
		}
	}
	if n := len(t.Samples); n > 0 {
		r.FirstTimestamp = t.Samples[0].Timestamp
		r.LastTimestamp = t.Samples[n-1].Timestamp
	}
	return r
}
