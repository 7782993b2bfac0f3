package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/earable/s3-lzma-to-data/internal"
	"github.com/earable/s3-lzma-to-data/testutil"
)

func TestQualityCommand(t *testing.T) {
	dir := testutil.DecodedDir(t)

	rootCmd.SetArgs([]string{"quality", dir})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("quality command failed: %v", err)
	}
}

func TestQualityCommandSingleKind(t *testing.T) {
	dir := testutil.DecodedDir(t)

	rootCmd.SetArgs([]string{"quality", dir, "--kind", "eeg", "--yaml"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("quality --kind eeg failed: %v", err)
	}
	defer func() { qualityKind = ""; qualityYAML = false }()
}

func TestQualityCommandRejectsUnknownKind(t *testing.T) {
	dir := testutil.DecodedDir(t)

	rootCmd.SetArgs([]string{"quality", dir, "--kind", "gps"})
	defer func() { qualityKind = "" }()
	if err := rootCmd.Execute(); err == nil {
		t.Error("quality --kind gps should fail")
	}
}

func TestQualityCommandServesFromCatalog(t *testing.T) {
	archive := testutil.BuildArchive(t)
	out := filepath.Join(t.TempDir(), "out")

	rootCmd.SetArgs([]string{"process", archive, "--out", out, "--product-key", "test-key"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("process command failed: %v", err)
	}

	// Remove the sample files: stored reports must still be served from
	// the catalog without re-reading them.
	for _, kind := range internal.AllKinds {
		if err := os.RemoveAll(filepath.Join(out, kind.Folder())); err != nil {
			t.Fatal(err)
		}
	}

	rootCmd.SetArgs([]string{"quality", out, "--session", filepath.Base(archive)})
	defer func() { qualitySession = "" }()
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("quality --session failed: %v", err)
	}
}

func TestQualityCommandSessionFallsBackToRecompute(t *testing.T) {
	dir := testutil.DecodedDir(t) // decoded directly, so no catalog entry

	rootCmd.SetArgs([]string{"quality", dir, "--session", "never-processed"})
	defer func() { qualitySession = "" }()
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("quality --session fallback failed: %v", err)
	}
}

func TestReadCommand(t *testing.T) {
	dir := testutil.DecodedDir(t)

	rootCmd.SetArgs([]string{"read", dir})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("read command failed: %v", err)
	}
}

func TestSessionsCommandEmptyCatalog(t *testing.T) {
	rootCmd.SetArgs([]string{"sessions", t.TempDir()})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("sessions command failed: %v", err)
	}
}
