package sequencer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"smplx-poser/internal/pose"
)

// ErrRenderFailure wraps any error returned by a RenderFunc. One failed frame
// fails the whole run.
var ErrRenderFailure = errors.New("render failed")

var log = logrus.WithFields(logrus.Fields{
	"pkg": "sequencer",
})

// RenderFunc produces the output of one frame.
type RenderFunc func(index int, shape pose.Shape, p pose.Vector) error

// ProgressFunc receives monotonically non-decreasing percentages (0–100).
type ProgressFunc func(percent int, message string)

// Sequencer drives an Animation frame by frame.
type Sequencer struct {
	// OutputDir is created (if missing) before the first frame and returned
	// on success. Empty means no directory is managed.
	OutputDir string

	// Workers > 1 renders frames concurrently. Progress is still reported
	// in frame order.
	Workers int
}

// Run validates anim, renders every frame and returns OutputDir.
// The first render error or a cancelled ctx aborts the remaining frames;
// frames already written are left in place.
func (s *Sequencer) Run(ctx context.Context, anim Animation, render RenderFunc, progress ProgressFunc) (string, error) {
	if progress == nil {
		progress = func(int, string) {}
	}
	if render == nil {
		return "", errors.New("sequencer: nil render func")
	}

	// INIT
	if err := anim.Validate(); err != nil {
		return "", err
	}
	if s.OutputDir != "" {
		if err := os.MkdirAll(s.OutputDir, 0755); err != nil {
			return "", fmt.Errorf("sequencer: create %s: %w", s.OutputDir, err)
		}
	}
	progress(0, "initializing")

	log.Infof("rendering %d frames (%v, workers=%d) to %s", anim.Frames, anim.Mode, s.Workers, s.OutputDir)

	// RENDERING
	var err error
	if s.Workers > 1 && anim.Frames > 1 {
		err = s.runParallel(ctx, anim, render, progress)
	} else {
		err = s.runSequential(ctx, anim, render, progress)
	}
	if err != nil {
		log.WithError(err).Warn("run failed")
		return "", err
	}

	// DONE
	progress(100, "done")
	return s.OutputDir, nil
}

func (s *Sequencer) runSequential(ctx context.Context, anim Animation, render RenderFunc, progress ProgressFunc) error {
	n := anim.Frames
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("sequencer: stopped before frame %d: %w", i, err)
		}

		shape, vec, err := anim.Frame(i)
		if err != nil {
			return err
		}

		progress(i*100/n, fmt.Sprintf("rendering frame %d/%d", i+1, n))
		log.Debugf("frame %d shape=%.3f", i, shape[0])

		if err := render(i, shape, vec); err != nil {
			return fmt.Errorf("sequencer: frame %d: %w: %w", i, ErrRenderFailure, err)
		}
	}
	return nil
}

// runParallel renders frames from independent vectors. Completed frames are
// reported once every earlier frame has completed too.
func (s *Sequencer) runParallel(ctx context.Context, anim Animation, render RenderFunc, progress ProgressFunc) error {
	n := anim.Frames
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Workers)

	var mu sync.Mutex
	done := make([]bool, n)
	next := 0

	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("sequencer: stopped before frame %d: %w", i, err)
			}

			shape, vec, err := anim.Frame(i)
			if err != nil {
				return err
			}
			if err := render(i, shape, vec); err != nil {
				return fmt.Errorf("sequencer: frame %d: %w: %w", i, ErrRenderFailure, err)
			}

			mu.Lock()
			defer mu.Unlock()
			done[i] = true
			for next < n && done[next] {
				progress(next*100/n, fmt.Sprintf("rendered frame %d/%d", next+1, n))
				next++
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	// The loop above may have stopped early without any goroutine failing.
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("sequencer: stopped: %w", err)
	}
	return nil
}
