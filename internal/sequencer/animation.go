package sequencer

import (
	"errors"
	"fmt"

	"smplx-poser/internal/interp"
	"smplx-poser/internal/joints"
	"smplx-poser/internal/pose"
)

// ErrInvalidFrameCount is returned for animations with fewer than one frame.
var ErrInvalidFrameCount = errors.New("frame count must be at least 1")

// Track animates one joint between two angles, in degrees.
type Track struct {
	Joint    joints.ID
	StartDeg float64
	EndDeg   float64
}

// Animation describes one animation request. It is consumed by a single run.
type Animation struct {
	Frames     int
	Mode       interp.Mode
	ShapeStart float64
	ShapeEnd   float64
	Tracks     []Track
}

// Validate rejects requests that cannot be rendered: a frame count below one
// or a track whose joint falls outside the pose vector.
func (a Animation) Validate() error {
	if a.Frames < 1 {
		return fmt.Errorf("sequencer: %d frames: %w", a.Frames, ErrInvalidFrameCount)
	}
	if a.Mode != interp.Linear && a.Mode != interp.Smooth {
		return fmt.Errorf("sequencer: unsupported interpolation %v", a.Mode)
	}
	var scratch pose.Vector
	for _, tr := range a.Tracks {
		if err := scratch.WriteJoint(tr.Joint, 0); err != nil {
			return fmt.Errorf("sequencer: track %v: %w", tr.Joint, err)
		}
	}
	return nil
}

// Frame computes the shape and pose of frame i from freshly allocated vectors.
// Joints without a track stay at zero. If a joint has several tracks the last
// one wins.
func (a Animation) Frame(i int) (pose.Shape, pose.Vector, error) {
	var shape pose.Shape
	var vec pose.Vector

	t := interp.FrameT(i, a.Frames)
	shape.WriteShape(interp.Interpolate(a.ShapeStart, a.ShapeEnd, t, a.Mode))

	for _, tr := range a.Tracks {
		rad := interp.Angle(tr.StartDeg, tr.EndDeg, t, a.Mode)
		if err := vec.WriteJoint(tr.Joint, rad); err != nil {
			return shape, vec, fmt.Errorf("sequencer: frame %d track %v: %w", i, tr.Joint, err)
		}
	}
	return shape, vec, nil
}

// FrameName returns the PNG file name of frame i.
func FrameName(i int) string {
	return FrameFile(i, "png")
}

// FrameFile returns the file name of frame i with the given extension.
func FrameFile(i int, ext string) string {
	return fmt.Sprintf("frame_%04d.%s", i, ext)
}
