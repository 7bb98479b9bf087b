package sequencer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smplx-poser/internal/interp"
	"smplx-poser/internal/joints"
	"smplx-poser/internal/pose"
)

type captured struct {
	index int
	shape pose.Shape
	pose  pose.Vector
}

type recorder struct {
	mu      sync.Mutex
	frames  []captured
	percent []int
	msgs    []string
}

func (r *recorder) render(i int, s pose.Shape, p pose.Vector) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, captured{i, s, p})
	return nil
}

func (r *recorder) progress(p int, msg string) {
	r.percent = append(r.percent, p)
	r.msgs = append(r.msgs, msg)
}

func (r *recorder) sorted() []captured {
	out := append([]captured(nil), r.frames...)
	sort.Slice(out, func(i, j int) bool { return out[i].index < out[j].index })
	return out
}

func TestEndToEndGlobalYaw(t *testing.T) {
	anim := Animation{
		Frames:     3,
		Mode:       interp.Linear,
		ShapeStart: 0,
		ShapeEnd:   6,
		Tracks:     []Track{{Joint: joints.Global, StartDeg: 0, EndDeg: 90}},
	}

	rec := &recorder{}
	seq := &Sequencer{}
	_, err := seq.Run(context.Background(), anim, rec.render, rec.progress)
	require.NoError(t, err)

	frames := rec.sorted()
	require.Len(t, frames, 3)

	want := []struct{ shape, yaw float64 }{
		{0, 0},
		{3, math.Pi / 4},
		{6, math.Pi / 2},
	}
	for i, w := range want {
		assert.Equal(t, i, frames[i].index)
		assert.InDelta(t, w.shape, frames[i].shape[0], 1e-12, "frame %d shape", i)
		assert.InDelta(t, w.yaw, frames[i].pose[1], 1e-12, "frame %d yaw", i)
		assert.Equal(t, 0.0, frames[i].pose[0])
		assert.Equal(t, 0.0, frames[i].pose[2])
	}
}

func TestSingleFrameRendersEndPose(t *testing.T) {
	anim := Animation{
		Frames:     1,
		ShapeStart: -2,
		ShapeEnd:   4,
		Tracks:     []Track{{Joint: 17, StartDeg: 10, EndDeg: 60}},
	}

	rec := &recorder{}
	_, err := (&Sequencer{}).Run(context.Background(), anim, rec.render, nil)
	require.NoError(t, err)

	require.Len(t, rec.frames, 1)
	assert.Equal(t, 4.0, rec.frames[0].shape[0])
	assert.InDelta(t, math.Pi/3, rec.frames[0].pose[joints.Slot(17)], 1e-12)
}

func TestInvalidFrameCount(t *testing.T) {
	rec := &recorder{}
	dir := filepath.Join(t.TempDir(), "never")
	_, err := (&Sequencer{OutputDir: dir}).Run(context.Background(), Animation{Frames: 0}, rec.render, rec.progress)

	assert.True(t, errors.Is(err, ErrInvalidFrameCount))
	assert.Empty(t, rec.frames)
	assert.Empty(t, rec.percent)
	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr), "no directory before validation passes")
}

func TestOutOfRangeTrackFailsRun(t *testing.T) {
	anim := Animation{Frames: 2, Tracks: []Track{{Joint: 60, EndDeg: 10}}}
	rec := &recorder{}
	_, err := (&Sequencer{}).Run(context.Background(), anim, rec.render, rec.progress)

	assert.True(t, errors.Is(err, pose.ErrOutOfRangeJoint))
	assert.Empty(t, rec.frames)
}

func TestValidateRejectsWrappingJointId(t *testing.T) {
	// 3 + 3*id for this id wraps to slot 4 on 64-bit ints.
	anim := Animation{Frames: 2, Tracks: []Track{{Joint: -6148914691236517205, EndDeg: 10}}}
	assert.True(t, errors.Is(anim.Validate(), pose.ErrOutOfRangeJoint))
}

func TestProgressMonotonicEndsAt100(t *testing.T) {
	for _, n := range []int{1, 2, 7, 30} {
		rec := &recorder{}
		_, err := (&Sequencer{}).Run(context.Background(), Animation{Frames: n}, rec.render, rec.progress)
		require.NoError(t, err)

		require.NotEmpty(t, rec.percent)
		for i := 1; i < len(rec.percent); i++ {
			assert.GreaterOrEqual(t, rec.percent[i], rec.percent[i-1], "n=%d", n)
		}
		last := rec.percent[len(rec.percent)-1]
		assert.Equal(t, 100, last)

		hundreds := 0
		for _, p := range rec.percent {
			if p == 100 {
				hundreds++
			}
		}
		assert.Equal(t, 1, hundreds, "n=%d reaches 100 exactly once", n)
	}
}

func TestRenderFailureAbortsRun(t *testing.T) {
	boom := errors.New("disk full")
	var rendered []int
	render := func(i int, _ pose.Shape, _ pose.Vector) error {
		if i == 2 {
			return boom
		}
		rendered = append(rendered, i)
		return nil
	}

	rec := &recorder{}
	out, err := (&Sequencer{OutputDir: t.TempDir()}).Run(context.Background(), Animation{Frames: 5}, render, rec.progress)

	assert.Empty(t, out)
	assert.True(t, errors.Is(err, ErrRenderFailure))
	assert.True(t, errors.Is(err, boom))
	assert.Equal(t, []int{0, 1}, rendered)
	assert.NotContains(t, rec.percent, 100)
}

func TestCancellationStopsAtFrameBoundary(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var rendered []int
	render := func(i int, _ pose.Shape, _ pose.Vector) error {
		rendered = append(rendered, i)
		if i == 1 {
			cancel()
		}
		return nil
	}

	_, err := (&Sequencer{}).Run(ctx, Animation{Frames: 10}, render, nil)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, []int{0, 1}, rendered)
}

func TestOutputDirCreatedAndReturned(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, os.MkdirAll(filepath.Dir(dir), 0755))

	rec := &recorder{}
	seq := &Sequencer{OutputDir: dir}
	out, err := seq.Run(context.Background(), Animation{Frames: 2}, rec.render, nil)
	require.NoError(t, err)
	assert.Equal(t, dir, out)
	assert.DirExists(t, dir)

	// Pre-existing directory is not an error.
	_, err = seq.Run(context.Background(), Animation{Frames: 1}, rec.render, nil)
	assert.NoError(t, err)
}

func TestParallelMatchesSequential(t *testing.T) {
	anim := Animation{
		Frames:     12,
		Mode:       interp.Smooth,
		ShapeStart: -1,
		ShapeEnd:   3,
		Tracks: []Track{
			{Joint: joints.Global, StartDeg: -45, EndDeg: 45},
			{Joint: 5, StartDeg: 0, EndDeg: 80},
			{Joint: 18, StartDeg: 30, EndDeg: -30},
		},
	}

	seqRec := &recorder{}
	_, err := (&Sequencer{}).Run(context.Background(), anim, seqRec.render, nil)
	require.NoError(t, err)

	parRec := &recorder{}
	_, err = (&Sequencer{Workers: 4}).Run(context.Background(), anim, parRec.render, parRec.progress)
	require.NoError(t, err)

	assert.Equal(t, seqRec.sorted(), parRec.sorted())

	for i := 1; i < len(parRec.percent); i++ {
		assert.GreaterOrEqual(t, parRec.percent[i], parRec.percent[i-1])
	}
	assert.Equal(t, 100, parRec.percent[len(parRec.percent)-1])
	for i := 0; i < anim.Frames; i++ {
		assert.Contains(t, parRec.msgs, fmt.Sprintf("rendered frame %d/%d", i+1, anim.Frames))
	}
}

func TestParallelFailure(t *testing.T) {
	boom := errors.New("encode")
	render := func(i int, _ pose.Shape, _ pose.Vector) error {
		if i == 3 {
			return boom
		}
		return nil
	}
	_, err := (&Sequencer{Workers: 3}).Run(context.Background(), Animation{Frames: 8}, render, nil)
	assert.True(t, errors.Is(err, ErrRenderFailure))
	assert.True(t, errors.Is(err, boom))
}

func TestFrameFreshVectors(t *testing.T) {
	anim := Animation{Frames: 2, Tracks: []Track{{Joint: 4, StartDeg: 10, EndDeg: 20}}}
	_, vec, err := anim.Frame(1)
	require.NoError(t, err)

	for i, v := range vec {
		if i == joints.Slot(4) {
			assert.InDelta(t, 20*math.Pi/180, v, 1e-12)
			continue
		}
		assert.Equal(t, 0.0, v, "slot %d", i)
	}
}

func TestDuplicateTrackLastWins(t *testing.T) {
	anim := Animation{Frames: 1, Tracks: []Track{
		{Joint: 16, EndDeg: 10},
		{Joint: 16, EndDeg: 40},
	}}
	_, vec, err := anim.Frame(0)
	require.NoError(t, err)
	assert.InDelta(t, 40*math.Pi/180, vec[joints.Slot(16)], 1e-12)
}

func TestFrameNames(t *testing.T) {
	var names []string
	for i := 0; i < 5; i++ {
		names = append(names, FrameName(i))
	}
	assert.Equal(t, []string{
		"frame_0000.png", "frame_0001.png", "frame_0002.png", "frame_0003.png", "frame_0004.png",
	}, names)
	assert.Equal(t, "frame_0012.webp", FrameFile(12, "webp"))
}
