package math

import m "math"

func ksqrt(x float32) float32 {
	return float32(m.Sqrt(float64(x)))
}

func NewVec3(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

/**
 * @brief Subtracts other from v and returns a copy of the result.
 */
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{
		v.X - other.X,
		v.Y - other.Y,
		v.Z - other.Z}
}

func (v Vec3) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func (v Vec3) Length() float32 {
	return ksqrt(v.LengthSquared())
}

/**
 * @brief Returns a normalized copy of v. The zero vector is returned unchanged.
 */
func (v Vec3) Normalized() Vec3 {
	length := v.Length()
	if length == 0 {
		return v
	}
	return Vec3{
		v.X / length,
		v.Y / length,
		v.Z / length}
}

/**
 * @brief Calculates and returns the cross product of v and other.
 * The cross product is a new vector which is orthoganal to both provided vectors.
 */
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X}
}

func (v Vec3) Min(other Vec3) Vec3 {
	return Vec3{min(v.X, other.X), min(v.Y, other.Y), min(v.Z, other.Z)}
}

func (v Vec3) Max(other Vec3) Vec3 {
	return Vec3{max(v.X, other.X), max(v.Y, other.Y), max(v.Z, other.Z)}
}

func NewVec4(x, y, z, w float32) Vec4 {
	return Vec4{x, y, z, w}
}

func NewVec4One() Vec4 {
	return Vec4{1, 1, 1, 1}
}
