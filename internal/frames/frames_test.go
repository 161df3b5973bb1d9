package frames

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/san-kum/qwell/internal/quantum"
)

func newTestSampler(t *testing.T, points, nmax, count int) *Sampler {
	t.Helper()
	params := quantum.DefaultParams()
	grid := params.Grid(points)
	well, err := quantum.NewWell(params, grid, nmax)
	if err != nil {
		t.Fatal(err)
	}
	times := quantum.TimeSequence(params.Tau(), count)
	return NewSampler(well, times)
}

func TestSampleOrderAndLabels(t *testing.T) {
	s := newTestSampler(t, 200, 20, 16)

	result, err := s.Sample(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Frames) != 16 {
		t.Fatalf("expected 16 frames, got %d", len(result.Frames))
	}

	for i, f := range result.Frames {
		if f.Index != i {
			t.Errorf("frame %d has index %d", i, f.Index)
		}
		if i > 0 && f.Time <= result.Frames[i-1].Time {
			t.Errorf("frame %d time %g not after previous", i, f.Time)
		}
		if want := fmt.Sprintf("t = %.2e s", f.Time); f.Label != want {
			t.Errorf("frame %d label %q, want %q", i, f.Label, want)
		}
		for j, v := range f.Density {
			if v < 0 {
				t.Fatalf("negative density at frame %d point %d: %g", i, j, v)
			}
		}
	}
}

func TestBounds(t *testing.T) {
	s := newTestSampler(t, 200, 20, 8)

	result, err := s.Sample(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	peak := 0.0
	for _, v := range result.Frames[0].Density {
		if v > peak {
			peak = v
		}
	}

	if result.Bounds.XMin != 0 {
		t.Errorf("expected XMin 0, got %g", result.Bounds.XMin)
	}
	if want := quantum.DefaultParams().BoxLength; result.Bounds.XMax != want {
		t.Errorf("expected XMax %g, got %g", want, result.Bounds.XMax)
	}
	if want := 1.4 * peak; result.Bounds.YMax != want {
		t.Errorf("expected YMax %g, got %g", want, result.Bounds.YMax)
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	s := newTestSampler(t, 200, 20, 24)

	seq, err := s.Sample(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	par, err := s.SampleParallel(context.Background(), 4)
	if err != nil {
		t.Fatal(err)
	}

	if len(par.Frames) != len(seq.Frames) {
		t.Fatalf("frame count mismatch: %d vs %d", len(par.Frames), len(seq.Frames))
	}
	for i := range seq.Frames {
		if !reflect.DeepEqual(par.Frames[i], seq.Frames[i]) {
			t.Fatalf("frame %d differs between parallel and sequential sampling", i)
		}
	}
	if !reflect.DeepEqual(par.Metrics, seq.Metrics) {
		t.Errorf("metrics differ: %v vs %v", par.Metrics, seq.Metrics)
	}
}

func TestMetrics(t *testing.T) {
	s := newTestSampler(t, 500, 50, 10)

	result, err := s.Sample(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	for _, key := range []string{"norm_drift", "peak_density", "revival_deviation"} {
		if _, ok := result.Metrics[key]; !ok {
			t.Errorf("missing metric %s", key)
		}
	}
	if drift := result.Metrics["norm_drift"]; drift > 5e-3 {
		t.Errorf("norm drift %g too large", drift)
	}
	if peak := result.Metrics["peak_density"]; math.Abs(peak*quantum.DefaultParams().BoxLength-4) > 0.2 {
		t.Errorf("initial peak %g far from 4/L", peak)
	}
}

func TestCancellation(t *testing.T) {
	s := newTestSampler(t, 200, 20, 50)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Sample(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Sample: expected context.Canceled, got %v", err)
	}
	if _, err := s.SampleParallel(ctx, 2); !errors.Is(err, context.Canceled) {
		t.Errorf("SampleParallel: expected context.Canceled, got %v", err)
	}
}

func TestEmptyTimeSequence(t *testing.T) {
	params := quantum.DefaultParams()
	well, err := quantum.NewWell(params, params.Grid(10), 5)
	if err != nil {
		t.Fatal(err)
	}
	s := NewSampler(well, nil)

	if _, err := s.Sample(context.Background()); !errors.Is(err, ErrNoFrames) {
		t.Errorf("expected ErrNoFrames, got %v", err)
	}
}
