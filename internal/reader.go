package internal

import (
	"errors"
	"path/filepath"
)

// Reader loads serialized sample tables back from an output directory. This
// is the boundary used by downstream analysis; it never touches raw captures.
type Reader struct {
	dir string
}

// NewReader creates a reader rooted at a pipeline output directory.
func NewReader(dir string) *Reader {
	return &Reader{dir: dir}
}

// Path returns the sample file path for a sensor kind under this reader's
// directory.
func (r *Reader) Path(kind Kind) string {
	return filepath.Join(r.dir, kind.Folder(), kind.FileName())
}

// ReadOne loads a single sensor's table.
func (r *Reader) ReadOne(kind Kind) (*SampleTable, error) {
	return ReadTable(r.Path(kind))
}

// ReadAllSensors loads every sensor present in the directory. Sensors whose
// file is absent are skipped with a warning; a capture does not have to
// contain all five streams.
func (r *Reader) ReadAllSensors() (map[Kind]*SampleTable, error) {
	tables := make(map[Kind]*SampleTable)
	for _, kind := range AllKinds {
		table, err := r.ReadOne(kind)
		if err != nil {
			var nfe *NotFoundError
			if errors.As(err, &nfe) {
				LogWarn("no %s data in %s", kind, r.dir)
				continue
			}
			return nil, err
		}
		tables[kind] = table
	}
	return tables, nil
}

// QualityReport recomputes the quality report for one sensor's serialized
// table.
func (r *Reader) QualityReport(kind Kind) (*QualityReport, error) {
	table, err := r.ReadOne(kind)
	if err != nil {
		return nil, err
	}
	return Validate(table), nil
}
