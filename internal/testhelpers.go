package internal

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ulikunitz/xz/lzma"
)

// Test helpers for building synthetic captures. Shared by the package tests
// and by the CLI tests via small wrappers in testutil.

// BuildRawFrame frames an arbitrary payload with the capture record header.
func BuildRawFrame(tag, rtype byte, payload []byte) []byte {
	frame := make([]byte, recHeaderLen+len(payload))
	frame[0] = tag
	frame[1] = rtype
	binary.LittleEndian.PutUint16(frame[2:], uint16(len(payload)))
	copy(frame[recHeaderLen:], payload)
	return frame
}

// BuildSampleFrame encodes one sample record for a sensor, quantizing the
// channel values into the sensor's wire integer layout.
func BuildSampleFrame(kind Kind, values []float64) []byte {
	if len(values) != kind.ChannelCount() {
		panic(fmt.Sprintf("%s sample needs %d values, got %d", kind, kind.ChannelCount(), len(values)))
	}
	payload := make([]byte, kind.WirePayloadLen())
	switch kind {
	case KindEEG, KindPPG:
		for ch, v := range values {
			binary.LittleEndian.PutUint32(payload[ch*4:], uint32(int32(v)))
		}
	case KindIMU:
		for ch, v := range values {
			binary.LittleEndian.PutUint16(payload[ch*2:], uint16(int16(v)))
		}
	case KindHR, KindSPO2:
		payload[0] = byte(values[0])
	}
	return BuildRawFrame(kind.Tag(), recTypeSample, payload)
}

// BuildAnchorFrame encodes an anchor timestamp record (Unix seconds).
func BuildAnchorFrame(kind Kind, unixSeconds float64) []byte {
	payload := make([]byte, anchorLen)
	binary.LittleEndian.PutUint64(payload, uint64(unixSeconds*1000))
	return BuildRawFrame(kind.Tag(), recTypeAnchor, payload)
}

// CompressLZMA compresses a raw buffer the way device segments are stored.
func CompressLZMA(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := lzma.NewWriter(&buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteArchiveSegment compresses raw bytes into <dir>/<source>.lzma.
func WriteArchiveSegment(dir, source string, raw []byte) error {
	compressed, err := CompressLZMA(raw)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, source+".lzma"), compressed, 0644)
}
