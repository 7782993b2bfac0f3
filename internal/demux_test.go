package internal

import (
	"bytes"
	"errors"
	"testing"
)

func mixedCapture() RawCapture {
	var buf bytes.Buffer
	buf.Write(BuildAnchorFrame(KindEEG, 1753868352))
	buf.Write(BuildSampleFrame(KindEEG, []float64{1, 2, 3, 4, 5, 6}))
	buf.Write(BuildSampleFrame(KindIMU, []float64{10, -20, 30}))
	buf.Write(BuildSampleFrame(KindEEG, []float64{7, 8, 9, 10, 11, 12}))
	buf.Write(BuildSampleFrame(KindHR, []float64{72}))
	buf.Write(BuildSampleFrame(KindSPO2, []float64{98}))
	buf.Write(BuildSampleFrame(KindPPG, []float64{100, 200, 300}))
	return RawCapture{Source: "mixed", Data: buf.Bytes()}
}

func TestDemuxSplitsPerKind(t *testing.T) {
	res, err := Demux([]RawCapture{mixedCapture()})
	if err != nil {
		t.Fatalf("Demux() error: %v", err)
	}

	wantCounts := map[Kind]int{KindEEG: 2, KindIMU: 1, KindPPG: 1, KindHR: 1, KindSPO2: 1}
	for kind, want := range wantCounts {
		stream := res.Streams[kind]
		if stream == nil {
			t.Fatalf("no stream for %s", kind)
		}
		if len(stream.Records) != want {
			t.Errorf("%s: %d records, want %d", kind, len(stream.Records), want)
		}
	}
	if res.SkippedTags != 0 {
		t.Errorf("SkippedTags = %d, want 0", res.SkippedTags)
	}

	eeg := res.Streams[KindEEG]
	if len(eeg.Anchors) != 1 || eeg.Anchors[0].Index != 0 || eeg.Anchors[0].Time != 1753868352 {
		t.Errorf("EEG anchors = %+v, want one at index 0, t=1753868352", eeg.Anchors)
	}
}

func TestDemuxSkipsUnknownTags(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(BuildRawFrame(0x7F, recTypeSample, make([]byte, 10)))
	buf.Write(BuildSampleFrame(KindHR, []float64{65}))
	buf.Write(BuildRawFrame(0x7E, 0x09, make([]byte, 3)))

	res, err := Demux([]RawCapture{{Source: "t", Data: buf.Bytes()}})
	if err != nil {
		t.Fatalf("Demux() error: %v", err)
	}
	if res.SkippedTags != 2 {
		t.Errorf("SkippedTags = %d, want 2", res.SkippedTags)
	}
	if got := len(res.Streams[KindHR].Records); got != 1 {
		t.Errorf("HR records = %d, want 1", got)
	}
}

func TestDemuxUnknownFormat(t *testing.T) {
	data := bytes.Repeat([]byte{0xAA, 0xBB, 0x00, 0x00}, 8)
	_, err := Demux([]RawCapture{{Source: "weird", Data: data}})

	var ufe *UnknownFormatError
	if !errors.As(err, &ufe) {
		t.Fatalf("Demux() error = %v, want UnknownFormatError", err)
	}
	if ufe.Source != "weird" {
		t.Errorf("UnknownFormatError.Source = %q, want %q", ufe.Source, "weird")
	}
}

func TestDemuxEmptyCapturesNotAnError(t *testing.T) {
	res, err := Demux([]RawCapture{{Source: "empty"}})
	if err != nil {
		t.Fatalf("Demux() error on empty capture: %v", err)
	}
	if len(res.Streams) != 0 {
		t.Errorf("streams = %d, want 0", len(res.Streams))
	}
}

func TestDemuxTruncatedTrailingFrame(t *testing.T) {
	data := BuildSampleFrame(KindIMU, []float64{1, 2, 3})
	data = append(data, BuildSampleFrame(KindIMU, []float64{4, 5, 6})[:7]...)

	res, err := Demux([]RawCapture{{Source: "t", Data: data}})
	if err != nil {
		t.Fatalf("Demux() error: %v", err)
	}
	if got := len(res.Streams[KindIMU].Records); got != 1 {
		t.Errorf("IMU records = %d, want 1", got)
	}
	if res.SkippedTags != 1 {
		t.Errorf("SkippedTags = %d, want 1", res.SkippedTags)
	}
}

func TestDemuxDeterministic(t *testing.T) {
	capture := mixedCapture()
	a, err := Demux([]RawCapture{capture})
	if err != nil {
		t.Fatal(err)
	}
	b, err := Demux([]RawCapture{capture})
	if err != nil {
		t.Fatal(err)
	}

	for kind, sa := range a.Streams {
		sb := b.Streams[kind]
		if len(sa.Records) != len(sb.Records) {
			t.Fatalf("%s: record counts differ between runs", kind)
		}
		for i := range sa.Records {
			if !bytes.Equal(sa.Records[i], sb.Records[i]) {
				t.Errorf("%s record %d differs between runs", kind, i)
			}
		}
	}
}

func TestDemuxMergesCapturesInOrder(t *testing.T) {
	c1 := RawCapture{Source: "a", Data: BuildSampleFrame(KindHR, []float64{60})}
	c2 := RawCapture{Source: "b", Data: BuildSampleFrame(KindHR, []float64{61})}

	res, err := Demux([]RawCapture{c1, c2})
	if err != nil {
		t.Fatal(err)
	}
	records := res.Streams[KindHR].Records
	if len(records) != 2 {
		t.Fatalf("HR records = %d, want 2", len(records))
	}
	if records[0][0] != 60 || records[1][0] != 61 {
		t.Errorf("records out of capture order: %v then %v", records[0][0], records[1][0])
	}
}
