package strain

import (
	"fmt"
	"math"
)

// Recording is the result of one load. It is not modified after loading.
type Recording struct {
	// Detector is the label the recording was loaded for.
	Detector string
	// Strain holds the samples, or nil for metadata-only loads.
	Strain []float64
	// Time is the representation requested with WithTimeVector.
	Time TimeBasis
	// Meta is the compact metadata, available for every load.
	Meta Compact
	// Quality holds the per-second data-quality and injection channels.
	Quality QualityChannels
}

// Duration returns the recording span in seconds.
func (r *Recording) Duration() float64 { return r.Meta.Duration() }

// SampleRate returns 1/dt in Hz.
func (r *Recording) SampleRate() float64 { return 1 / r.Meta.Dt }

// Seconds returns floor(stop-start), the length of every quality channel.
func (r *Recording) Seconds() int { return int(math.Floor(r.Meta.Duration())) }

// GoodSegments returns the intervals where the DEFAULT channel is set.
// Recordings without quality channels are treated as one good segment.
func (r *Recording) GoodSegments() []Segment {
	if segs, ok := r.Quality.Segments(DefaultChannel, r.Meta.Start); ok {
		return segs
	}
	return []Segment{{Start: r.Meta.Start, Stop: r.Meta.Stop}}
}

// Slice returns a copy of the strain samples whose times fall in seg.
func (r *Recording) Slice(seg Segment) ([]float64, error) {
	if r.Strain == nil {
		return nil, fmt.Errorf("strain: slice: recording was loaded without strain")
	}
	if seg.Stop <= seg.Start {
		return nil, fmt.Errorf("strain: slice: empty segment [%g, %g)", seg.Start, seg.Stop)
	}

	i0 := int(math.Ceil((seg.Start - r.Meta.Start) / r.Meta.Dt))
	i1 := int(math.Ceil((seg.Stop - r.Meta.Start) / r.Meta.Dt))
	i0 = max(i0, 0)
	i1 = min(i1, len(r.Strain))
	if i0 >= i1 {
		return nil, fmt.Errorf("strain: slice: segment [%g, %g) outside recording [%g, %g)",
			seg.Start, seg.Stop, r.Meta.Start, r.Meta.Stop)
	}

	return append([]float64(nil), r.Strain[i0:i1]...), nil
}
