package internal

import "fmt"

// Sample is one decoded measurement: a Unix timestamp in seconds and the
// sensor's fixed set of channel values.
type Sample struct {
	Timestamp float64
	Channels  []float64
}

// SampleTable is the canonical decoded unit for one sensor. Immutable once
// validated; the channel-count invariant is enforced at construction.
type SampleTable struct {
	Kind    Kind
	Samples []Sample
}

// NewSampleTable pairs decoded channel rows with reconstructed timestamps.
func NewSampleTable(kind Kind, rows [][]float64, timestamps []float64) (*SampleTable, error) {
	if len(rows) != len(timestamps) {
		return nil, fmt.Errorf("%s: %d rows but %d timestamps", kind, len(rows), len(timestamps))
	}
	samples := make([]Sample, len(rows))
	for i, row := range rows {
		if len(row) != kind.ChannelCount() {
			return nil, fmt.Errorf("%s sample %d: %d channels, want %d",
				kind, i, len(row), kind.ChannelCount())
		}
		samples[i] = Sample{Timestamp: timestamps[i], Channels: row}
	}
	return &SampleTable{Kind: kind, Samples: samples}, nil
}

// Duration returns the covered time span in seconds.
func (t *SampleTable) Duration() float64 {
	if len(t.Samples) < 2 {
		return 0
	}
	return t.Samples[len(t.Samples)-1].Timestamp - t.Samples[0].Timestamp
}
