package core

// Vec4 is a homogeneous vector used to apply a Matrix4x4 to a point or direction
type Vec4 struct {
	X, Y, Z, W float64
}

// NewPoint4 lifts a point into homogeneous space (w = 1) so translation applies
func NewPoint4(v Vec3) Vec4 {
	return Vec4{v.X, v.Y, v.Z, 1}
}

// NewDirection4 lifts a direction into homogeneous space (w = 0) so translation is ignored
func NewDirection4(v Vec3) Vec4 {
	return Vec4{v.X, v.Y, v.Z, 0}
}

// Vec3 drops the w component
func (v Vec4) Vec3() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}
