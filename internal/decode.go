package internal

import "encoding/binary"

// DecodedStream is the output of one sensor decoder: channel-value rows
// without timestamps, the anchors remapped onto surviving row indexes, and
// the count of malformed records that were skipped.
type DecodedStream struct {
	Kind    Kind
	Rows    [][]float64
	Anchors []Anchor
	Skipped int
}

// DecodeStream interprets a sensor's record sequence into channel-value
// rows. A record whose payload length does not match the sensor's fixed
// width is skipped and counted; partial hardware corruption is common and
// must not discard the rest of a session.
func DecodeStream(stream *RecordStream) *DecodedStream {
	out := &DecodedStream{Kind: stream.Kind}
	nextAnchor := 0

	for i, rec := range stream.Records {
		// Remap anchors from record indexes to row indexes so skipped
		// records do not shift what an anchor points at.
		for nextAnchor < len(stream.Anchors) && stream.Anchors[nextAnchor].Index <= i {
			out.Anchors = append(out.Anchors, Anchor{
				Index: len(out.Rows),
				Time:  stream.Anchors[nextAnchor].Time,
			})
			nextAnchor++
		}

		if len(rec) != stream.Kind.WirePayloadLen() {
			err := &MalformedRecordError{Kind: stream.Kind, Index: i, Length: len(rec)}
			LogDebug("skipping record: %v", err)
			out.Skipped++
			continue
		}
		out.Rows = append(out.Rows, decodeRow(stream.Kind, rec))
	}

	// Anchors trailing the last record clamp to the final row.
	for ; nextAnchor < len(stream.Anchors); nextAnchor++ {
		idx := len(out.Rows)
		if idx > 0 {
			idx--
		}
		out.Anchors = append(out.Anchors, Anchor{Index: idx, Time: stream.Anchors[nextAnchor].Time})
	}
	return out
}

// decodeRow interprets one fixed-layout sample payload. Layouts are
// per-sensor, all little-endian:
//
//	EEG  6 x int32   raw ADC counts
//	IMU  3 x int16   accelerometer axes
//	PPG  3 x int32   optical channels
//	HR   1 x uint8   beats per minute
//	SPO2 1 x uint8   percent saturation
func decodeRow(kind Kind, payload []byte) []float64 {
	row := make([]float64, kind.ChannelCount())
	switch kind {
	case KindEEG, KindPPG:
		for ch := range row {
			v := int32(binary.LittleEndian.Uint32(payload[ch*4 : ch*4+4]))
			row[ch] = float64(v)
		}
	case KindIMU:
		for ch := range row {
			v := int16(binary.LittleEndian.Uint16(payload[ch*2 : ch*2+2]))
			row[ch] = float64(v)
		}
	case KindHR, KindSPO2:
		row[0] = float64(payload[0])
	}
	return row
}
