package core

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Matrix4x4 is an affine transform addressed by [row][col] through At and Set.
// It is a value type; every operation returns a new matrix.
type Matrix4x4 struct {
	m mgl64.Mat4
}

// NewMatrix4x4 creates a matrix from a row-major grid
func NewMatrix4x4(rows [4][4]float64) Matrix4x4 {
	row := func(i int) mgl64.Vec4 {
		return mgl64.Vec4{rows[i][0], rows[i][1], rows[i][2], rows[i][3]}
	}
	return Matrix4x4{mgl64.Mat4FromRows(row(0), row(1), row(2), row(3))}
}

// Identity returns the identity matrix
func Identity() Matrix4x4 {
	return Matrix4x4{mgl64.Ident4()}
}

// Translate returns a translation matrix
func Translate(offset Vec3) Matrix4x4 {
	return Matrix4x4{mgl64.Translate3D(offset.X, offset.Y, offset.Z)}
}

// Scale returns a per-axis scaling matrix
func Scale(factors Vec3) Matrix4x4 {
	return Matrix4x4{mgl64.Scale3D(factors.X, factors.Y, factors.Z)}
}

// RotateX returns a rotation of angle radians around the X axis
func RotateX(angle float64) Matrix4x4 {
	return Matrix4x4{mgl64.HomogRotate3DX(angle)}
}

// RotateY returns a rotation of angle radians around the Y axis
func RotateY(angle float64) Matrix4x4 {
	return Matrix4x4{mgl64.HomogRotate3DY(angle)}
}

// RotateZ returns a rotation of angle radians around the Z axis
func RotateZ(angle float64) Matrix4x4 {
	return Matrix4x4{mgl64.HomogRotate3DZ(angle)}
}

// At returns the entry at row, col
func (m Matrix4x4) At(row, col int) float64 {
	return m.m.At(row, col)
}

// Set returns a copy of the matrix with the entry at row, col replaced
func (m Matrix4x4) Set(row, col int, value float64) Matrix4x4 {
	m.m.Set(row, col, value)
	return m
}

// MulVec4 returns m * v
func (m Matrix4x4) MulVec4(v Vec4) Vec4 {
	r := m.m.Mul4x1(mgl64.Vec4{v.X, v.Y, v.Z, v.W})
	return Vec4{r[0], r[1], r[2], r[3]}
}

// TransformPoint applies the matrix to a point (w = 1)
func (m Matrix4x4) TransformPoint(p Vec3) Vec3 {
	return m.MulVec4(NewPoint4(p)).Vec3()
}

// TransformDirection applies the matrix to a direction (w = 0), ignoring translation
func (m Matrix4x4) TransformDirection(d Vec3) Vec3 {
	return m.MulVec4(NewDirection4(d)).Vec3()
}

// Mul returns the composition m * other, which applies other first
func (m Matrix4x4) Mul(other Matrix4x4) Matrix4x4 {
	return Matrix4x4{m.m.Mul4(other.m)}
}

// Transpose returns the transposed matrix
func (m Matrix4x4) Transpose() Matrix4x4 {
	return Matrix4x4{m.m.Transpose()}
}

// Inverse returns the inverse of the matrix.
// A singular matrix yields the zero matrix; callers must not invert one.
func (m Matrix4x4) Inverse() Matrix4x4 {
	return Matrix4x4{m.m.Inv()}
}

// NormalMatrix returns the inverse-transpose, which keeps normals perpendicular to
// surfaces under non-uniform scale or shear. Apply it with TransformDirection and re-normalize.
func (m Matrix4x4) NormalMatrix() Matrix4x4 {
	return m.Inverse().Transpose()
}

// TransformNormal transforms a single normal by the inverse-transpose and re-normalizes it.
// The inverse is computed on every call; use NormalMatrix when transforming many normals.
func (m Matrix4x4) TransformNormal(n Vec3) Vec3 {
	return m.NormalMatrix().TransformDirection(n).Normalize()
}

// ApproxEqual reports whether every entry differs by at most tolerance
func (m Matrix4x4) ApproxEqual(other Matrix4x4, tolerance float64) bool {
	return m.m.ApproxEqualThreshold(other.m, tolerance)
}

// String formats the matrix row by row
func (m Matrix4x4) String() string {
	return m.m.String()
}
