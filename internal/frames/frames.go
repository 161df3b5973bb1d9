// Package frames turns a time sequence into an ordered set of
// probability-density curves ready for rendering.
package frames

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/qwell/internal/quantum"
)

// Frame is one renderable density curve at a fixed time.
type Frame struct {
	Index   int
	Time    float64
	Label   string
	Density []float64
}

// Bounds carries the axis ranges exporters draw against. YMax is 1.4x
// the initial peak density so the sloshing wave never clips.
type Bounds struct {
	XMin, XMax float64
	YMax       float64
}

// Result holds the frames in time order plus summary metrics:
//
//	norm_drift        max |trapezoid norm - 1| over all frames
//	peak_density      max of the t=0 density
//	revival_deviation max |last - first| density gap, relative to the peak
type Result struct {
	Frames  []Frame
	Bounds  Bounds
	Metrics map[string]float64
}

// Sampler maps a sequence of times to frames. Each frame is an
// independent pure function of (well, time); t=0 takes the same path as
// every other time.
type Sampler struct {
	well  *quantum.Well
	times []float64
}

func NewSampler(well *quantum.Well, times []float64) *Sampler {
	return &Sampler{well: well, times: times}
}

func (s *Sampler) Times() []float64 { return s.times }

func (s *Sampler) frame(i int) (Frame, error) {
	t := s.times[i]
	density, err := s.well.Density(t)
	if err != nil {
		return Frame{}, err
	}
	return Frame{
		Index:   i,
		Time:    t,
		Label:   fmt.Sprintf("t = %.2e s", t),
		Density: density,
	}, nil
}

// Sample computes one frame per time value, in time order.
func (s *Sampler) Sample(ctx context.Context) (*Result, error) {
	out := make([]Frame, len(s.times))
	for i := range s.times {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		f, err := s.frame(i)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return s.finish(out)
}

func (s *Sampler) finish(out []Frame) (*Result, error) {
	if len(out) == 0 {
		return nil, ErrNoFrames
	}

	peak := 0.0
	for _, v := range out[0].Density {
		if v > peak {
			peak = v
		}
	}

	grid := s.well.Grid()
	drift := 0.0
	for _, f := range out {
		if d := math.Abs(quantum.Norm(grid, f.Density) - 1); d > drift {
			drift = d
		}
	}

	revival := 0.0
	if peak > 0 {
		first, last := out[0].Density, out[len(out)-1].Density
		for i := range first {
			if d := math.Abs(last[i] - first[i]); d > revival {
				revival = d
			}
		}
		revival /= peak
	}

	return &Result{
		Frames: out,
		Bounds: Bounds{
			XMin: 0,
			XMax: s.well.Params().BoxLength,
			YMax: 1.4 * peak,
		},
		Metrics: map[string]float64{
			"norm_drift":        drift,
			"peak_density":      peak,
			"revival_deviation": revival,
		},
	}, nil
}
