package internal

import "encoding/binary"

// Raw stream framing: every record is
//
//	[sensor tag 1B][record type 1B][payload length uint16 LE][payload]
//
// Record type 0x01 carries one sample in the sensor's fixed layout; record
// type 0x02 carries an anchor timestamp as uint64 LE Unix milliseconds that
// applies to the next sample of that sensor.
const (
	recHeaderLen  = 4
	recTypeSample = 0x01
	recTypeAnchor = 0x02
	anchorLen     = 8
)

// Anchor is a timestamp embedded in the raw stream, anchoring the sample at
// Index (an index into the record/sample sequence of one sensor).
type Anchor struct {
	Index int
	Time  float64 // Unix seconds
}

// RecordStream is the ordered record sequence of exactly one sensor kind,
// plus the anchors found inline.
type RecordStream struct {
	Kind    Kind
	Records [][]byte
	Anchors []Anchor
}

// DemuxResult holds the per-sensor streams split out of one or more captures.
type DemuxResult struct {
	Streams     map[Kind]*RecordStream
	SkippedTags int
	// Start is the earliest session start time across the captures, as
	// Unix seconds; zero when no capture carried one.
	Start float64
}

// Demux partitions raw capture buffers into per-sensor record streams.
// Unrecognized tags and record types skip one frame and are counted, never
// fatal. It returns UnknownFormatError only when the captures hold bytes but
// zero recognizable records, which means the capture format version does not
// match this decoder.
func Demux(captures []RawCapture) (*DemuxResult, error) {
	res := &DemuxResult{Streams: make(map[Kind]*RecordStream)}
	recognized := 0
	nonEmpty := ""

	for _, c := range captures {
		if len(c.Data) > 0 && nonEmpty == "" {
			nonEmpty = c.Source
		}
		if !c.SessionStart.IsZero() {
			s := float64(c.SessionStart.UnixMilli()) / 1000
			if res.Start == 0 || s < res.Start {
				res.Start = s
			}
		}
		recognized += demuxBuffer(c.Data, res)
	}

	if recognized == 0 && nonEmpty != "" {
		return nil, &UnknownFormatError{Source: nonEmpty}
	}
	return res, nil
}

func demuxBuffer(data []byte, res *DemuxResult) int {
	recognized := 0
	offset := 0
	for offset+recHeaderLen <= len(data) {
		tag := data[offset]
		rtype := data[offset+1]
		length := int(binary.LittleEndian.Uint16(data[offset+2 : offset+4]))
		next := offset + recHeaderLen + length
		if next > len(data) {
			// Truncated trailing frame, common in interrupted captures.
			res.SkippedTags++
			break
		}
		payload := data[offset+recHeaderLen : next]
		offset = next

		kind, ok := KindForTag(tag)
		if !ok {
			res.SkippedTags++
			continue
		}
		stream := res.Streams[kind]
		if stream == nil {
			stream = &RecordStream{Kind: kind}
			res.Streams[kind] = stream
		}

		switch rtype {
		case recTypeSample:
			stream.Records = append(stream.Records, payload)
			recognized++
		case recTypeAnchor:
			if len(payload) != anchorLen {
				res.SkippedTags++
				continue
			}
			millis := binary.LittleEndian.Uint64(payload)
			stream.Anchors = append(stream.Anchors, Anchor{
				Index: len(stream.Records),
				Time:  float64(millis) / 1000,
			})
			recognized++
		default:
			res.SkippedTags++
		}
	}
	if offset < len(data) && offset+recHeaderLen > len(data) {
		res.SkippedTags++
	}
	return recognized
}
