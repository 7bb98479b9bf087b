package bodymodel

import (
	"errors"
	"fmt"
	"strings"

	"smplx-poser/internal/mathutil"
	"smplx-poser/internal/pose"
)

// ErrModelUnavailable is returned when a render is requested without a loaded model.
var ErrModelUnavailable = errors.New("body model not loaded")

// Input mirrors the keyword arguments of an SMPL-X forward call.
type Input struct {
	Betas         pose.Shape
	GlobalOrient  [3]float64
	BodyPose      [pose.LeftHandStart - pose.BodyStart]float64
	LeftHandPose  [pose.RightHandStart - pose.LeftHandStart]float64
	RightHandPose [pose.Size - pose.RightHandStart]float64
}

// InputFrom splits a pose vector into the model's named inputs.
func InputFrom(shape pose.Shape, v pose.Vector) Input {
	return Input{
		Betas:         shape,
		GlobalOrient:  v.GlobalOrient(),
		BodyPose:      v.BodyPose(),
		LeftHandPose:  v.LeftHandPose(),
		RightHandPose: v.RightHandPose(),
	}
}

// Output is the posed geometry.
type Output struct {
	Vertices []mathutil.Vec3
	Joints   []mathutil.Vec3
	Faces    [][3]int
}

// Model maps pose parameters to 3D geometry. Implementations must be pure:
// no state retained between calls affects the result.
type Model interface {
	Forward(in Input) (*Output, error)
}

// New returns the named built-in model. "none" yields a nil Model, which
// callers treat as ErrModelUnavailable.
func New(name string) (Model, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "stickman":
		return NewStickman(), nil
	case "none":
		return nil, nil
	}
	return nil, fmt.Errorf("bodymodel: unknown model %q", name)
}
