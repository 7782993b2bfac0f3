package internal

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExtractArchiveMissingPath(t *testing.T) {
	var nfe *NotFoundError
	_, err := ExtractArchive(context.Background(), filepath.Join(t.TempDir(), "nope"))
	if !errors.As(err, &nfe) {
		t.Errorf("ExtractArchive() error = %v, want NotFoundError", err)
	}
}

func TestExtractArchiveCorruptSegment(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "RAW_DATA_TEST_1753868352000")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "seg0.lzma"), []byte("not lzma at all"), 0644); err != nil {
		t.Fatal(err)
	}

	var cae *CorruptArchiveError
	if _, err := ExtractArchive(context.Background(), dir); !errors.As(err, &cae) {
		t.Errorf("ExtractArchive() error = %v, want CorruptArchiveError", err)
	}
}

func TestExtractArchiveEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	var cae *CorruptArchiveError
	if _, err := ExtractArchive(context.Background(), dir); !errors.As(err, &cae) {
		t.Errorf("ExtractArchive() error = %v, want CorruptArchiveError for empty dir", err)
	}
}

func TestExtractArchiveRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "RAW_DATA_F24AUN05FX1U_1753868352000")
	raw0 := bytes.Repeat([]byte{0x01, 0x02, 0x03}, 100)
	raw1 := []byte("second segment")
	if err := WriteArchiveSegment(dir, "seg0", raw0); err != nil {
		t.Fatal(err)
	}
	if err := WriteArchiveSegment(dir, "seg1", raw1); err != nil {
		t.Fatal(err)
	}

	captures, err := ExtractArchive(context.Background(), dir)
	if err != nil {
		t.Fatalf("ExtractArchive() error: %v", err)
	}
	if len(captures) != 2 {
		t.Fatalf("captures = %d, want 2", len(captures))
	}
	if captures[0].Source != "seg0" || !bytes.Equal(captures[0].Data, raw0) {
		t.Error("seg0 did not decompress to its original bytes")
	}
	if captures[1].Source != "seg1" || !bytes.Equal(captures[1].Data, raw1) {
		t.Error("seg1 did not decompress to its original bytes")
	}

	want := time.UnixMilli(1753868352000).UTC()
	if !captures[0].SessionStart.Equal(want) {
		t.Errorf("SessionStart = %v, want %v", captures[0].SessionStart, want)
	}
}

func TestExtractArchiveCancellation(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "RAW_DATA_X_1")
	if err := WriteArchiveSegment(dir, "seg0", []byte("data")); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ExtractArchive(ctx, dir); !errors.Is(err, context.Canceled) {
		t.Errorf("ExtractArchive() error = %v, want context.Canceled", err)
	}
}

func TestSessionStartFromName(t *testing.T) {
	tests := []struct {
		path string
		want time.Time
	}{
		{"/data/RAW_DATA_F24AUN05FX1U_1753868352000", time.UnixMilli(1753868352000).UTC()},
		{"capture.lzma", time.Time{}},
		{"/data/RAW_DATA_DEVICE_notanumber", time.Time{}},
	}
	for _, tt := range tests {
		if got := sessionStartFromName(tt.path); !got.Equal(tt.want) {
			t.Errorf("sessionStartFromName(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
