package internal

import "fmt"

// Kind identifies one sensor stream within a capture. Each kind has a fixed
// channel layout and a nominal sample rate; both are properties of the device
// firmware, not of any individual recording.
type Kind int

const (
	KindEEG Kind = iota
	KindIMU
	KindPPG
	KindHR
	KindSPO2
)

// AllKinds lists every sensor kind in canonical output order.
var AllKinds = []Kind{KindEEG, KindIMU, KindPPG, KindHR, KindSPO2}

// layout holds the wire and on-disk constants for one sensor kind.
type layout struct {
	name       string
	tag        byte    // record tag byte in the raw capture stream
	channels   int     // values per sample
	rate       float64 // nominal sample rate in Hz
	payloadLen int     // wire bytes per sample record
	folder     string  // output subdirectory, matching the device export tree
}

var layouts = [...]layout{
	KindEEG:  {"eeg", 0x01, 6, 250, 24, "EEG2"},
	KindIMU:  {"imu", 0x02, 3, 50, 6, "IMU2"},
	KindPPG:  {"ppg", 0x03, 3, 25, 12, "PPG2"},
	KindHR:   {"hr", 0x04, 1, 1, 1, "HR"},
	KindSPO2: {"spo2", 0x05, 1, 1, 1, "SPO2"},
}

func (k Kind) valid() bool {
	return k >= KindEEG && k <= KindSPO2
}

func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return layouts[k].name
}

// Tag returns the record tag byte identifying this sensor in the raw stream.
func (k Kind) Tag() byte { return layouts[k].tag }

// ChannelCount returns the fixed number of channel values per sample.
func (k Kind) ChannelCount() int { return layouts[k].channels }

// NominalRate returns the rated sample rate in Hz.
func (k Kind) NominalRate() float64 { return layouts[k].rate }

// NominalInterval returns the expected seconds between consecutive samples.
func (k Kind) NominalInterval() float64 { return 1 / layouts[k].rate }

// WirePayloadLen returns the exact payload length of one sample record.
func (k Kind) WirePayloadLen() int { return layouts[k].payloadLen }

// Folder returns the per-sensor output subdirectory name.
func (k Kind) Folder() string { return layouts[k].folder }

// FileName returns the sample file name for this sensor.
func (k Kind) FileName() string { return layouts[k].name + "_full_data.dat" }

// KindForTag maps a raw record tag byte back to its sensor kind.
func KindForTag(tag byte) (Kind, bool) {
	for _, k := range AllKinds {
		if layouts[k].tag == tag {
			return k, true
		}
	}
	return 0, false
}

// ParseKind parses a sensor name ("eeg", "imu", ...) as used on the CLI.
func ParseKind(name string) (Kind, error) {
	for _, k := range AllKinds {
		if layouts[k].name == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown sensor kind %q", name)
}
