package bodymodel

import (
	"math"

	"smplx-poser/internal/mathutil"
	"smplx-poser/internal/skeleton"
)

// Kinematic tree of the 22 SMPL-X body joints. Parent of joint 0 is -1.
var parents = [22]int{-1, 0, 0, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 9, 9, 12, 13, 14, 16, 17, 18, 19}

// Rest joint positions (meters, Y-up, T-pose) of the neutral template.
var restJoints = [22]mathutil.Vec3{
	{0.000, -0.223, 0.028},   // pelvis
	{0.056, -0.306, 0.012},   // left_hip
	{-0.060, -0.314, 0.021},  // right_hip
	{0.004, -0.113, -0.004},  // spine1
	{0.102, -0.689, 0.017},   // left_knee
	{-0.107, -0.696, 0.015},  // right_knee
	{0.010, 0.025, 0.001},    // spine2
	{0.088, -1.088, -0.027},  // left_ankle
	{-0.092, -1.094, -0.035}, // right_ankle
	{0.002, 0.082, 0.024},    // spine3
	{0.114, -1.143, 0.094},   // left_foot
	{-0.118, -1.144, 0.100},  // right_foot
	{-0.014, 0.296, -0.010},  // neck
	{0.073, 0.200, -0.002},   // left_collar
	{-0.083, 0.199, -0.005},  // right_collar
	{0.006, 0.357, 0.040},    // head
	{0.172, 0.229, -0.016},   // left_shoulder
	{-0.170, 0.228, -0.013},  // right_shoulder
	{0.432, 0.207, -0.048},   // left_elbow
	{-0.435, 0.209, -0.043},  // right_elbow
	{0.681, 0.217, -0.044},   // left_wrist
	{-0.683, 0.219, -0.043},  // right_wrist
}

// Half thickness of the segment ending at each joint.
var segmentRadius = [22]float64{
	0, 0.06, 0.06, 0.07, 0.055, 0.055, 0.08, 0.045, 0.045, 0.09, 0.04, 0.04,
	0.045, 0.04, 0.04, 0.04, 0.045, 0.045, 0.038, 0.038, 0.032, 0.032,
}

const (
	headJoint       = 15
	leftWristJoint  = 20
	rightWristJoint = 21
	betaScale       = 0.06
)

// Stickman is a box-segment stand-in for the SMPL-X model. It honours the
// SMPL-X input layout: GlobalOrient rotates joint 0 and BodyPose triple k
// rotates joint k+1. Betas[0] scales the whole body; hand poses are ignored.
type Stickman struct{}

func NewStickman() *Stickman {
	return &Stickman{}
}

// Scale returns the body scale driven by beta0.
func Scale(beta0 float64) float64 {
	s := 1 + betaScale*beta0
	if s < 0.1 {
		s = 0.1
	}
	return s
}

var restSkeleton = skeleton.Skeleton{Parents: parents[:], Rest: restJoints[:]}

// Forward runs forward kinematics and rigidly skins the box mesh.
func (m *Stickman) Forward(in Input) (*Output, error) {
	scale := Scale(in.Betas[0])
	skel := restSkeleton.Scaled(scale)
	rest := skel.Rest

	worlds := skel.BuildWorldMatrices(localRotations(in))
	out := &Output{Joints: skeleton.Positions(worlds)}

	// One segment per bone, skinned to the parent joint.
	for k := 1; k < len(rest); k++ {
		p := parents[k]
		out.addBox(skel, worlds, p, rest[p], rest[k], segmentRadius[k]*scale)
	}

	// Head block above the head joint, hands past the wrists.
	head := rest[headJoint]
	out.addBox(skel, worlds, headJoint, head, head.Add(mathutil.Vec3{0, 0.2 * scale, 0}), 0.09*scale)
	for _, w := range []int{leftWristJoint, rightWristJoint} {
		wrist, elbow := rest[w], rest[parents[w]]
		tip := wrist.Add(wrist.Sub(elbow).Scale(0.35))
		out.addBox(skel, worlds, w, wrist, tip, 0.035*scale)
	}

	return out, nil
}

// localRotations maps GlobalOrient to joint 0 and BodyPose triple k to joint k+1.
func localRotations(in Input) []mathutil.Mat3 {
	rots := make([]mathutil.Mat3, len(restJoints))
	rots[0] = mathutil.AxisAngleToMat3(mathutil.Vec3{in.GlobalOrient[0], in.GlobalOrient[1], in.GlobalOrient[2]})
	for k := 1; k < len(rots); k++ {
		o := (k - 1) * 3
		rots[k] = mathutil.AxisAngleToMat3(mathutil.Vec3{in.BodyPose[o], in.BodyPose[o+1], in.BodyPose[o+2]})
	}
	return rots
}

// addBox appends a rectangular prism from a to b (rest space) rigidly
// attached to joint.
func (o *Output) addBox(skel skeleton.Skeleton, worlds []mathutil.Mat4, joint int, a, b mathutil.Vec3, r float64) {
	d := b.Sub(a).Normalize()
	if d.Len() == 0 {
		return
	}
	ref := mathutil.Vec3{0, 0, 1}
	if math.Abs(d.Dot(ref)) > 0.9 {
		ref = mathutil.Vec3{1, 0, 0}
	}
	u := d.Cross(ref).Normalize().Scale(r)
	v := d.Cross(u).Normalize().Scale(r)

	base := len(o.Vertices)
	for _, end := range []mathutil.Vec3{a, b} {
		for _, c := range [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			corner := end.Add(u.Scale(c[0])).Add(v.Scale(c[1]))
			o.Vertices = append(o.Vertices, skel.Skin(worlds, joint, corner))
		}
	}

	for _, f := range boxFaces {
		o.Faces = append(o.Faces, [3]int{base + f[0], base + f[1], base + f[2]})
	}
}

// Corners 0-3 ring at a, 4-7 ring at b.
var boxFaces = [12][3]int{
	{0, 2, 1}, {0, 3, 2}, // cap a
	{4, 5, 6}, {4, 6, 7}, // cap b
	{0, 1, 5}, {0, 5, 4},
	{1, 2, 6}, {1, 6, 5},
	{2, 3, 7}, {2, 7, 6},
	{3, 0, 4}, {3, 4, 7},
}
