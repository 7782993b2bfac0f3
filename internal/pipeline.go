package internal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"
)

// SensorResult is the outcome of the pipeline for one sensor kind.
type SensorResult struct {
	Table  *SampleTable
	Report *QualityReport
	Path   string
}

// Pipeline carries one session's processing context: where the archive is,
// where output goes, and the tunables. It replaces any notion of shared
// module state; every stage receives what it needs from here.
type Pipeline struct {
	Archive    string
	OutDir     string
	Config     *Config
	Authorized bool
}

// NewPipeline builds a pipeline with the given config (nil means defaults).
// Authorization is decided by the external licensing collaborator; the
// pipeline only honors the verdict.
func NewPipeline(archive, outDir string, cfg *Config, authorized bool) *Pipeline {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Pipeline{Archive: archive, OutDir: outDir, Config: cfg, Authorized: authorized}
}

// SessionID derives the session identifier from the archive name.
func (p *Pipeline) SessionID() string {
	base := filepath.Base(p.Archive)
	if ext := filepath.Ext(base); ext == ".lzma" {
		base = base[:len(base)-len(ext)]
	}
	return base
}

// Run executes the full decode pipeline: extract, demultiplex, then one
// independent decode/reconstruct/validate/serialize lane per sensor. Lanes
// touch disjoint data and disjoint output files, so they run concurrently.
// Output is deterministic: the same archive always produces byte-identical
// files.
func (p *Pipeline) Run(ctx context.Context) (map[Kind]*SensorResult, error) {
	if !p.Authorized {
		return nil, &AuthorizationError{}
	}

	captures, err := ExtractArchive(ctx, p.Archive)
	if err != nil {
		return nil, err
	}
	if p.Config.KeepIntermediate {
		p.writeIntermediate(captures)
	}

	demux, err := Demux(captures)
	if err != nil {
		return nil, err
	}
	if demux.SkippedTags > 0 {
		LogWarn("skipped %d unrecognized frames in %s", demux.SkippedTags, p.SessionID())
	}

	results := make(map[Kind]*SensorResult)
	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)

	for kind, stream := range demux.Streams {
		kind, stream := kind, stream
		g.Go(func() error {
			res, err := p.processSensor(ctx, stream, demux.Start)
			if err != nil {
				return err
			}
			mu.Lock()
			results[kind] = res
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// processSensor runs one sensor's lane: decode, reconstruct timestamps,
// validate, serialize.
func (p *Pipeline) processSensor(ctx context.Context, stream *RecordStream, start float64) (*SensorResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	kind := stream.Kind

	decoded := DecodeStream(stream)
	if decoded.Skipped > 0 {
		LogWarn("%s: skipped %d malformed records", kind, decoded.Skipped)
	}

	rec := Reconstruct(len(decoded.Rows), decoded.Anchors,
		p.Config.IntervalFor(kind), p.Config.ToleranceFor(kind), start)

	table, err := NewSampleTable(kind, decoded.Rows, rec.Timestamps)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble %s table: %w", kind, err)
	}
	report := ValidateWithCounters(table, rec.Violations, decoded.Skipped)
	if !report.Healthy() {
		LogWarn("%s: quality flags nan=%d inf=%d monotonicity=%d",
			kind, report.NaNCount, report.InfCount, report.MonotonicityViolations)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := filepath.Join(p.OutDir, kind.Folder(), kind.FileName())
	if err := WriteTable(path, table); err != nil {
		return nil, err
	}
	LogInfo("%s: wrote %d samples to %s", kind, len(table.Samples), path)
	return &SensorResult{Table: table, Report: report, Path: path}, nil
}

// writeIntermediate dumps decompressed raw buffers for debugging. Failures
// here never fail the run.
func (p *Pipeline) writeIntermediate(captures []RawCapture) {
	dir := p.Config.WorkDir
	if dir == "" {
		dir = filepath.Join(p.OutDir, "raw")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		LogWarn("failed to create work dir %s: %v", dir, err)
		return
	}
	for _, c := range captures {
		path := filepath.Join(dir, c.Source+".bin")
		if err := os.WriteFile(path, c.Data, 0644); err != nil {
			LogWarn("failed to keep intermediate %s: %v", path, err)
		}
	}
}
