package internal

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// Serialized sample file layout, all little-endian:
//
//	magic        4B  "ESDF"
//	version      u16 currently 1
//	kind tag     u8
//	channels     u8
//	sample count u64
//	row width    u16 bytes, (channels+1)*8
//
// followed by sample count rows of float64 values: timestamp first, then the
// channels in order. Round-trips are bit-exact.
const (
	fileMagic     = "ESDF"
	formatVersion = 1
	headerLen     = 4 + 2 + 1 + 1 + 8 + 2
)

// WriteTable persists a sample table. The write is all-or-nothing: bytes go
// to a temporary file in the target directory and the final name appears only
// via rename, so a cancelled or failed run leaves no partial output.
func WriteTable(path string, t *SampleTable) error {
	rowWidth := (t.Kind.ChannelCount() + 1) * 8
	buf := make([]byte, headerLen+len(t.Samples)*rowWidth)

	copy(buf, fileMagic)
	binary.LittleEndian.PutUint16(buf[4:], formatVersion)
	buf[6] = t.Kind.Tag()
	buf[7] = byte(t.Kind.ChannelCount())
	binary.LittleEndian.PutUint64(buf[8:], uint64(len(t.Samples)))
	binary.LittleEndian.PutUint16(buf[16:], uint16(rowWidth))

	off := headerLen
	for _, s := range t.Samples {
		binary.LittleEndian.PutUint64(buf[off:], math.Float64bits(s.Timestamp))
		off += 8
		for _, v := range s.Channels {
			binary.LittleEndian.PutUint64(buf[off:], math.Float64bits(v))
			off += 8
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to finalize %s: %w", path, err)
	}
	return nil
}

// ReadTable is the exact inverse of WriteTable.
func ReadTable(path string) (*SampleTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(data) < headerLen {
		return nil, &TruncatedFileError{Path: path, Want: headerLen, Got: int64(len(data))}
	}
	if string(data[:4]) != fileMagic {
		return nil, &FormatVersionError{Path: path, Detail: "bad magic"}
	}
	if v := binary.LittleEndian.Uint16(data[4:]); v != formatVersion {
		return nil, &FormatVersionError{Path: path, Detail: fmt.Sprintf("unsupported version %d", v)}
	}
	kind, ok := KindForTag(data[6])
	if !ok {
		return nil, &FormatVersionError{Path: path, Detail: fmt.Sprintf("unknown sensor tag 0x%02x", data[6])}
	}
	channels := int(data[7])
	if channels != kind.ChannelCount() {
		return nil, &FormatVersionError{Path: path,
			Detail: fmt.Sprintf("%s declares %d channels, want %d", kind, channels, kind.ChannelCount())}
	}
	count := binary.LittleEndian.Uint64(data[8:])
	rowWidth := int(binary.LittleEndian.Uint16(data[16:]))
	if rowWidth != (channels+1)*8 {
		return nil, &FormatVersionError{Path: path, Detail: fmt.Sprintf("row width %d", rowWidth)}
	}

	// Bound the declared count by what the file can actually hold before
	// multiplying, so a crafted header cannot wrap the size check or blow
	// up the allocation below.
	if count > uint64(len(data)-headerLen)/uint64(rowWidth) {
		want := int64(math.MaxInt64)
		if count <= (uint64(math.MaxInt64)-headerLen)/uint64(rowWidth) {
			want = int64(headerLen) + int64(count)*int64(rowWidth)
		}
		return nil, &TruncatedFileError{Path: path, Want: want, Got: int64(len(data))}
	}
	want := int64(headerLen) + int64(count)*int64(rowWidth)
	if int64(len(data)) != want {
		return nil, &TruncatedFileError{Path: path, Want: want, Got: int64(len(data))}
	}

	samples := make([]Sample, count)
	off := headerLen
	for i := range samples {
		samples[i].Timestamp = math.Float64frombits(binary.LittleEndian.Uint64(data[off:]))
		off += 8
		row := make([]float64, channels)
		for ch := range row {
			row[ch] = math.Float64frombits(binary.LittleEndian.Uint64(data[off:]))
			off += 8
		}
		samples[i].Channels = row
	}
	return &SampleTable{Kind: kind, Samples: samples}, nil
}
