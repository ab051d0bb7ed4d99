package strain

import (
	"maps"
	"slices"
)

// DefaultChannel is the summary data-quality channel. It mirrors DataChannel.
const DefaultChannel = "DEFAULT"

// DataChannel flags seconds for which strain data exist.
const DataChannel = "DATA"

// Short names used by LOSC files for the bits of DQmask and Injmask, used
// when the names stored in the file cannot be decoded.
var (
	simpleShortNames = []string{
		"DATA", "CBC_CAT1", "CBC_CAT2", "CBC_CAT3",
		"BURST_CAT1", "BURST_CAT2", "BURST_CAT3",
	}
	injectionShortNames = []string{
		"NO_CBC_HW_INJ", "NO_BURST_HW_INJ", "NO_DETCHAR_HW_INJ",
		"NO_CW_HW_INJ", "NO_STOCH_HW_INJ",
	}
)

// QualityChannels maps a channel name to one flag per second of the
// recording.
type QualityChannels map[string][]int

// Names returns the channel names in sorted order.
func (q QualityChannels) Names() []string {
	return slices.Sorted(maps.Keys(q))
}

// Segments returns the contiguous runs of set flags of the named channel as
// GPS intervals, given the recording start time.
func (q QualityChannels) Segments(name string, start float64) ([]Segment, bool) {
	flags, ok := q[name]
	if !ok {
		return nil, false
	}
	return ChannelSegments(flags, start), true
}

// Segment is a half-open GPS interval [Start, Stop).
type Segment struct {
	Start float64
	Stop  float64
}

// Duration returns Stop - Start.
func (s Segment) Duration() float64 { return s.Stop - s.Start }

// ChannelSegments converts per-second flags into the list of intervals where
// the flag is non-zero. Second i covers [start+i, start+i+1).
func ChannelSegments(flags []int, start float64) []Segment {
	var out []Segment
	runStart := -1
	for i, f := range flags {
		switch {
		case f != 0 && runStart < 0:
			runStart = i
		case f == 0 && runStart >= 0:
			out = append(out, Segment{Start: start + float64(runStart), Stop: start + float64(i)})
			runStart = -1
		}
	}
	if runStart >= 0 {
		out = append(out, Segment{Start: start + float64(runStart), Stop: start + float64(len(flags))})
	}
	return out
}

// decodeMask splits a per-second bitmask into one 0/1 channel per name.
func decodeMask(dst QualityChannels, mask []int64, names []string) {
	for bit, name := range names {
		if name == "" {
			continue
		}
		flags := make([]int, len(mask))
		for i, m := range mask {
			flags[i] = int((m >> uint(bit)) & 1)
		}
		dst[name] = flags
	}
}
