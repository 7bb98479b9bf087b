package mathutil

import "math"

// Quat represents a quaternion (x, y, z, w).
type Quat [4]float64

// AxisAngleToQuat converts an axis-angle vector (direction = axis,
// length = angle in radians) to a unit quaternion. A zero vector is identity.
func AxisAngleToQuat(aa Vec3) Quat {
	angle := aa.Len()
	if angle < 1e-12 {
		return Quat{0, 0, 0, 1}
	}
	axis := aa.Scale(1 / angle)
	s, c := math.Sin(angle*0.5), math.Cos(angle*0.5)
	return Quat{axis[0] * s, axis[1] * s, axis[2] * s, c}
}

// QuatToMat3 converts a quaternion to a 3×3 rotation matrix.
func QuatToMat3(q Quat) Mat3 {
	x, y, z, w := q[0], q[1], q[2], q[3]
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	return Mat3{
		1 - 2*(yy+zz), 2 * (xy - wz), 2 * (xz + wy),
		2 * (xy + wz), 1 - 2*(xx+zz), 2 * (yz - wx),
		2 * (xz - wy), 2 * (yz + wx), 1 - 2*(xx+yy),
	}
}

// AxisAngleToMat3 is Rodrigues' formula via the quaternion form.
func AxisAngleToMat3(aa Vec3) Mat3 {
	return QuatToMat3(AxisAngleToQuat(aa))
}
