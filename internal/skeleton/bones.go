package skeleton

import "smplx-poser/internal/mathutil"

// Skeleton is a kinematic tree in its rest pose. Parents[i] is the parent of
// joint i (-1 for a root) and must be smaller than i.
type Skeleton struct {
	Parents []int
	Rest    []mathutil.Vec3
}

// Scaled returns a copy whose rest positions are multiplied by k.
func (s Skeleton) Scaled(k float64) Skeleton {
	rest := make([]mathutil.Vec3, len(s.Rest))
	for i, p := range s.Rest {
		rest[i] = p.Scale(k)
	}
	return Skeleton{Parents: s.Parents, Rest: rest}
}

// BuildWorldMatrices computes the world transform of each joint from its
// local rotation. Joints beyond len(rots) keep their rest orientation.
func (s Skeleton) BuildWorldMatrices(rots []mathutil.Mat3) []mathutil.Mat4 {
	worlds := make([]mathutil.Mat4, len(s.Rest))

	for i := range s.Rest {
		rot := mathutil.Mat3Identity()
		if i < len(rots) {
			rot = rots[i]
		}

		// Chain with parent
		p := s.Parents[i]
		if p >= 0 && p < i {
			local := mathutil.FromMat3Translation(rot, s.Rest[i].Sub(s.Rest[p]))
			worlds[i] = mathutil.Mat4Mul(worlds[p], local)
		} else {
			worlds[i] = mathutil.FromMat3Translation(rot, s.Rest[i])
		}
	}

	return worlds
}

// Positions returns the posed joint locations.
func Positions(worlds []mathutil.Mat4) []mathutil.Vec3 {
	out := make([]mathutil.Vec3, len(worlds))
	for i, w := range worlds {
		out[i] = w.Translation()
	}
	return out
}

// Skin moves a rest-space point rigidly attached to joint (1 bone per
// vertex, weight = 1.0).
func (s Skeleton) Skin(worlds []mathutil.Mat4, joint int, p mathutil.Vec3) mathutil.Vec3 {
	return worlds[joint].MulPoint(p.Sub(s.Rest[joint]))
}
