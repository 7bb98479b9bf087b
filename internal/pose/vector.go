package pose

import (
	"errors"
	"fmt"

	"smplx-poser/internal/joints"
)

// Vector layout (radians, axis-angle triples).
const (
	Size      = 156
	ShapeSize = 10

	GlobalStart    = 0
	BodyStart      = 3
	LeftHandStart  = 66
	RightHandStart = 111
)

// MaxJoint is the highest numbered joint whose triple fits in the vector.
const MaxJoint joints.ID = (Size-BodyStart)/3 - 1

// ErrOutOfRangeJoint is returned when a joint's slots fall outside the vector.
var ErrOutOfRangeJoint = errors.New("joint offset out of range")

// checkJoint rejects ids outside [0, MaxJoint] before any offset is computed,
// so huge ids cannot wrap back into the vector.
func checkJoint(id joints.ID) error {
	if id < 0 || id > MaxJoint {
		return fmt.Errorf("pose: joint %d: %w", int(id), ErrOutOfRangeJoint)
	}
	return nil
}

// Vector is the dense body-pose parameter vector consumed by the body model.
// Value type: assigning a Vector copies it.
type Vector [Size]float64

// Shape holds the shape coefficients. Only slot 0 is driven by this tool.
type Shape [ShapeSize]float64

// WriteJoint replaces all three slots of id: the dominant axis slot gets
// angle and the other two are zeroed. On ErrOutOfRangeJoint nothing is written.
func (v *Vector) WriteJoint(id joints.ID, angle float64) error {
	if id == joints.Global {
		v[0] = 0
		v[1] = angle
		v[2] = 0
		return nil
	}

	if err := checkJoint(id); err != nil {
		return err
	}
	base := joints.OffsetFor(id)
	axis := int(joints.AxisFor(id))

	v[base] = 0
	v[base+1] = 0
	v[base+2] = 0
	v[base+axis] = angle
	return nil
}

// Joint returns the three slots owned by id.
func (v *Vector) Joint(id joints.ID) ([3]float64, error) {
	if id == joints.Global {
		return v.GlobalOrient(), nil
	}
	if err := checkJoint(id); err != nil {
		return [3]float64{}, err
	}
	base := joints.OffsetFor(id)
	return [3]float64{v[base], v[base+1], v[base+2]}, nil
}

func (v *Vector) GlobalOrient() [3]float64 {
	var out [3]float64
	copy(out[:], v[GlobalStart:BodyStart])
	return out
}

func (v *Vector) BodyPose() [LeftHandStart - BodyStart]float64 {
	var out [LeftHandStart - BodyStart]float64
	copy(out[:], v[BodyStart:LeftHandStart])
	return out
}

func (v *Vector) LeftHandPose() [RightHandStart - LeftHandStart]float64 {
	var out [RightHandStart - LeftHandStart]float64
	copy(out[:], v[LeftHandStart:RightHandStart])
	return out
}

func (v *Vector) RightHandPose() [Size - RightHandStart]float64 {
	var out [Size - RightHandStart]float64
	copy(out[:], v[RightHandStart:Size])
	return out
}

// Reset zeroes every slot.
func (v *Vector) Reset() {
	*v = Vector{}
}

// WriteShape sets the overall-size coefficient (slot 0). Other slots are untouched.
func (s *Shape) WriteShape(value float64) {
	s[0] = value
}

func (s *Shape) Reset() {
	*s = Shape{}
}
