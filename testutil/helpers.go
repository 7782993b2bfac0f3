package testutil

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/earable/s3-lzma-to-data/internal"
)

// BuildArchive writes a small but complete synthetic session archive under a
// temp directory and returns its path. It contains a one-second EEG stream
// plus single IMU/HR samples, enough for command-level tests to exercise the
// whole pipeline.
func BuildArchive(t *testing.T) string {
	t.Helper()

	const start = 1753868352.0
	var buf bytes.Buffer
	buf.Write(internal.BuildAnchorFrame(internal.KindEEG, start))
	for i := 0; i < 25; i++ {
		buf.Write(internal.BuildSampleFrame(internal.KindEEG, []float64{1, 2, 3, 4, 5, 6}))
	}
	buf.Write(internal.BuildSampleFrame(internal.KindIMU, []float64{10, 20, 30}))
	buf.Write(internal.BuildSampleFrame(internal.KindHR, []float64{64}))

	dir := filepath.Join(t.TempDir(), "RAW_DATA_TESTDEV_1753868352000")
	if err := internal.WriteArchiveSegment(dir, "capture", buf.Bytes()); err != nil {
		t.Fatalf("Failed to build synthetic archive: %v", err)
	}
	return dir
}

// DecodedDir runs the pipeline over a fresh synthetic archive and returns the
// output directory with its per-sensor .dat files in place.
func DecodedDir(t *testing.T) string {
	t.Helper()

	archive := BuildArchive(t)
	out := t.TempDir()
	p := internal.NewPipeline(archive, out, nil, true)
	if _, err := p.Run(context.Background()); err != nil {
		t.Fatalf("Failed to decode synthetic archive: %v", err)
	}
	return out
}
