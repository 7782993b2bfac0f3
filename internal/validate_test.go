package internal

import (
	"math"
	"testing"
)

func tableWith(t *testing.T, kind Kind, rows [][]float64, ts []float64) *SampleTable {
	t.Helper()
	table, err := NewSampleTable(kind, rows, ts)
	if err != nil {
		t.Fatalf("NewSampleTable() error: %v", err)
	}
	return table
}

func TestValidateCleanTable(t *testing.T) {
	table := tableWith(t, KindIMU,
		[][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}},
		[]float64{10, 10.02, 10.04})

	report := Validate(table)
	if !report.Healthy() {
		t.Errorf("Healthy() = false for clean table: %+v", report)
	}
	if report.SampleCount != 3 {
		t.Errorf("SampleCount = %d, want 3", report.SampleCount)
	}
	if report.FirstTimestamp != 10 || report.LastTimestamp != 10.04 {
		t.Errorf("timestamp range = %v..%v, want 10..10.04", report.FirstTimestamp, report.LastTimestamp)
	}
}

func TestValidateCountsNaNAndInf(t *testing.T) {
	table := tableWith(t, KindPPG,
		[][]float64{
			{math.NaN(), 2, 3},
			{4, math.Inf(1), math.Inf(-1)},
			{math.NaN(), 8, 9},
		},
		[]float64{1, 2, 3})

	report := Validate(table)
	if report.NaNCount != 2 {
		t.Errorf("NaNCount = %d, want 2", report.NaNCount)
	}
	if report.InfCount != 2 {
		t.Errorf("InfCount = %d, want 2", report.InfCount)
	}
	if report.Healthy() {
		t.Error("Healthy() = true with NaN/Inf present")
	}
}

func TestValidateRecomputesMonotonicity(t *testing.T) {
	table := tableWith(t, KindHR,
		[][]float64{{60}, {61}, {62}, {63}},
		[]float64{5, 4, 6, 2})

	report := Validate(table)
	if report.MonotonicityViolations != 2 {
		t.Errorf("MonotonicityViolations = %d, want 2", report.MonotonicityViolations)
	}
}

func TestValidateCarriesCounters(t *testing.T) {
	table := tableWith(t, KindSPO2, [][]float64{{98}}, []float64{1})

	report := ValidateWithCounters(table, 3, 5)
	if report.MonotonicityViolations != 3 || report.SkippedRecords != 5 {
		t.Errorf("carried counters = %d/%d, want 3/5", report.MonotonicityViolations, report.SkippedRecords)
	}
	if report.Healthy() {
		t.Error("Healthy() = true with carried monotonicity violations")
	}
}

func TestValidateDoesNotMutate(t *testing.T) {
	rows := [][]float64{{math.NaN(), 2, 3}}
	table := tableWith(t, KindIMU, rows, []float64{1})

	_ = Validate(table)
	if !math.IsNaN(table.Samples[0].Channels[0]) || table.Samples[0].Channels[1] != 2 {
		t.Error("Validate() mutated the table")
	}
}

func TestNewSampleTableEnforcesChannelCount(t *testing.T) {
	_, err := NewSampleTable(KindEEG, [][]float64{{1, 2, 3}}, []float64{1})
	if err == nil {
		t.Error("NewSampleTable() accepted a 3-channel EEG row")
	}
	_, err = NewSampleTable(KindEEG, [][]float64{{1, 2, 3, 4, 5, 6}}, []float64{1, 2})
	if err == nil {
		t.Error("NewSampleTable() accepted mismatched row/timestamp counts")
	}
}
