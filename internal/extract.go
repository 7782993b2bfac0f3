package internal

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ulikunitz/xz/lzma"
)

// RawCapture is the decompressed byte buffer of one logical source in the
// capture archive. Immutable once handed to the demultiplexer.
type RawCapture struct {
	// Source identifies the segment within the archive (file base name).
	Source string
	// Data is the decompressed raw stream.
	Data []byte
	// SessionStart is the recording start time when the archive naming
	// convention carries one; zero otherwise.
	SessionStart time.Time
}

// ExtractArchive decompresses a capture archive into its raw per-source
// buffers. The archive is either a single .lzma file or a session directory
// holding one independently compressed .lzma segment per source. Segments are
// returned in source-name order so downstream output is deterministic.
func ExtractArchive(ctx context.Context, path string) ([]RawCapture, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("failed to stat archive %s: %w", path, err)
	}

	start := sessionStartFromName(path)

	var segments []string
	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read archive directory %s: %w", path, err)
		}
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), ".lzma") {
				segments = append(segments, filepath.Join(path, e.Name()))
			}
		}
		if len(segments) == 0 {
			return nil, &CorruptArchiveError{Source: path, Err: fmt.Errorf("no compressed segments")}
		}
		sort.Strings(segments)
	} else {
		segments = []string{path}
	}

	captures := make([]RawCapture, 0, len(segments))
	for _, seg := range segments {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := decompressSegment(seg)
		if err != nil {
			return nil, err
		}
		source := strings.TrimSuffix(filepath.Base(seg), ".lzma")
		LogDebug("extracted segment %s: %d bytes", source, len(data))
		captures = append(captures, RawCapture{Source: source, Data: data, SessionStart: start})
	}
	return captures, nil
}

func decompressSegment(path string) ([]byte, error) {
	compressed, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("failed to read segment %s: %w", path, err)
	}

	source := filepath.Base(path)
	r, err := lzma.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, &CorruptArchiveError{Source: source, Err: err}
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &CorruptArchiveError{Source: source, Err: err}
	}
	return data, nil
}

// sessionStartFromName recovers the session start time from the device
// naming convention RAW_DATA_<device-id>_<unix-millis>.
func sessionStartFromName(path string) time.Time {
	base := filepath.Base(strings.TrimSuffix(path, ".lzma"))
	parts := strings.Split(base, "_")
	if len(parts) < 2 {
		return time.Time{}
	}
	millis, err := strconv.ParseInt(parts[len(parts)-1], 10, 64)
	if err != nil || millis <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(millis).UTC()
}
