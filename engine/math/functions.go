package math

import (
	"github.com/chewxy/math32"
)

const (
	/** @brief An approximate representation of PI. */
	K_PI float32 = 3.14159265358979323846
	/** @brief An approximate representation of PI multiplied by 2. */
	K_PI_2 float32 = 2.0 * K_PI
	/** @brief An approximate representation of PI divided by 2. */
	K_HALF_PI float32 = 0.5 * K_PI
	/** @brief A multiplier used to convert degrees to radians. */
	K_DEG2RAD_MULTIPLIER float32 = K_PI / 180.0
	/** @brief A multiplier used to convert radians to degrees. */
	K_RAD2DEG_MULTIPLIER float32 = 180.0 / K_PI
	/** @brief A huge number that should be larger than any valid number used. */
	K_INFINITY float32 = 1e30
	/** @brief Smallest positive number where 1.0 + FLOAT_EPSILON != 0 */
	K_FLOAT_EPSILON float32 = 1.192092896e-07
	/** @brief Squared length under which a vector is treated as zero when normalizing. */
	K_SMALL_NUMBER float32 = 1e-8
	/** @brief Tolerance used when comparing positions. */
	K_KINDA_SMALL_NUMBER float32 = 1e-4
)

// ------------------------------------------
// Vector 2
// ------------------------------------------

// NewVec2 returns a new 2-element vector using the supplied values.
func NewVec2(x, y float32) Vec2 {
	return Vec2{
		X: x,
		Y: y,
	}
}

func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

func (v Vec2) MulScalar(scalar float32) Vec2 {
	return Vec2{v.X * scalar, v.Y * scalar}
}

// Compare compares all elements of v and other and ensures the difference
// is less than tolerance.
func (v Vec2) Compare(other Vec2, tolerance float32) bool {
	if math32.Abs(v.X-other.X) > tolerance {
		return false
	}
	if math32.Abs(v.Y-other.Y) > tolerance {
		return false
	}
	return true
}

// ------------------------------------------
// Vector 3
// ------------------------------------------

/**
 * @brief Creates and returns a new 3-element vector using the supplied values.
 *
 * @param x The x value.
 * @param y The y value.
 * @param z The z value.
 * @return A new 3-element vector.
 */
func NewVec3(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

// NewVec3Zero returns a 3-component vector with all components set to 0.0f.
func NewVec3Zero() Vec3 {
	return Vec3{0.0, 0.0, 0.0}
}

// NewVec3One returns a 3-component vector with all components set to 1.0f.
func NewVec3One() Vec3 {
	return Vec3{1.0, 1.0, 1.0}
}

// NewVec3Up returns a 3-component vector pointing up (0, 0, 1). Z is up in
// mesh space.
func NewVec3Up() Vec3 {
	return Vec3{0.0, 0.0, 1.0}
}

func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		v.X + other.X,
		v.Y + other.Y,
		v.Z + other.Z}
}

func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{
		v.X - other.X,
		v.Y - other.Y,
		v.Z - other.Z}
}

func (v Vec3) Mul(other Vec3) Vec3 {
	return Vec3{
		v.X * other.X,
		v.Y * other.Y,
		v.Z * other.Z}
}

func (v Vec3) MulScalar(scalar float32) Vec3 {
	return Vec3{
		v.X * scalar,
		v.Y * scalar,
		v.Z * scalar}
}

func (v Vec3) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func (v Vec3) Length() float32 {
	return math32.Sqrt(v.LengthSquared())
}

// Normalize returns a unit-length copy of v and true, or the zero vector
// and false when v is too short to be normalized.
func (v Vec3) Normalize() (Vec3, bool) {
	lengthSquared := v.LengthSquared()
	if lengthSquared <= K_SMALL_NUMBER {
		return Vec3{}, false
	}
	scale := 1.0 / math32.Sqrt(lengthSquared)
	return v.MulScalar(scale), true
}

// Normalized returns a normalized copy of the supplied vector, or the zero
// vector when it cannot be normalized.
func (v Vec3) Normalized() Vec3 {
	n, _ := v.Normalize()
	return n
}

// IsNearlyZero reports whether every component is within tolerance of zero.
func (v Vec3) IsNearlyZero(tolerance float32) bool {
	return math32.Abs(v.X) <= tolerance &&
		math32.Abs(v.Y) <= tolerance &&
		math32.Abs(v.Z) <= tolerance
}

func (v Vec3) Dot(other Vec3) float32 {
	p := float32(0)
	p += v.X * other.X
	p += v.Y * other.Y
	p += v.Z * other.Z
	return p
}

// Cross calculates and returns the cross product of the supplied vectors.
// The cross product is a new vector which is orthoganal to both provided
// vectors.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X}
}

/**
 * @brief Compares all elements of v and other and ensures the difference
 * is less than tolerance.
 *
 * @param tolerance The difference tolerance. Typically K_FLOAT_EPSILON or similar.
 * @return True if within tolerance; otherwise false.
 */
func (v Vec3) Compare(other Vec3, tolerance float32) bool {
	if math32.Abs(v.X-other.X) > tolerance {
		return false
	}

	if math32.Abs(v.Y-other.Y) > tolerance {
		return false
	}

	if math32.Abs(v.Z-other.Z) > tolerance {
		return false
	}

	return true
}

// Distance returns the distance between v and other.
func (v Vec3) Distance(other Vec3) float32 {
	return v.Sub(other).Length()
}

// Lerp linearly interpolates from v towards other. Alpha is not clamped.
func (v Vec3) Lerp(other Vec3, alpha float32) Vec3 {
	return Vec3{
		v.X + alpha*(other.X-v.X),
		v.Y + alpha*(other.Y-v.Y),
		v.Z + alpha*(other.Z-v.Z)}
}

// Min returns the component-wise minimum of v and other.
func (v Vec3) Min(other Vec3) Vec3 {
	return Vec3{math32.Min(v.X, other.X), math32.Min(v.Y, other.Y), math32.Min(v.Z, other.Z)}
}

// Max returns the component-wise maximum of v and other.
func (v Vec3) Max(other Vec3) Vec3 {
	return Vec3{math32.Max(v.X, other.X), math32.Max(v.Y, other.Y), math32.Max(v.Z, other.Z)}
}

/**
 * @brief Transform v by m. NOTE: It is assumed by this function that the
 * vector v is a point, not a direction, and is calculated as if a w component
 * with a value of 1.0f is there.
 *
 * @param v The vector to transform.
 * @param m The matrix to transform by.
 * @return A transformed copy of v.
 */
func (v Vec3) Transform(m Mat4) Vec3 {
	out := Vec3{}
	out.X = v.X*m.Data[0+0] + v.Y*m.Data[4+0] + v.Z*m.Data[8+0] + 1.0*m.Data[12+0]
	out.Y = v.X*m.Data[0+1] + v.Y*m.Data[4+1] + v.Z*m.Data[8+1] + 1.0*m.Data[12+1]
	out.Z = v.X*m.Data[0+2] + v.Y*m.Data[4+2] + v.Z*m.Data[8+2] + 1.0*m.Data[12+2]
	return out
}

// RotateAngleAxis rotates v by angleDegrees about a unit-length axis
// (Rodrigues' formula).
func (v Vec3) RotateAngleAxis(angleDegrees float32, axis Vec3) Vec3 {
	s, c := math32.Sincos(DegToRad(angleDegrees))
	return v.MulScalar(c).
		Add(axis.Cross(v).MulScalar(s)).
		Add(axis.MulScalar(axis.Dot(v) * (1 - c)))
}

// ------------------------------------------
// Vector 4
// ------------------------------------------

// NewVec4 returns a new 4-element vector using the supplied values.
func NewVec4(x, y, z, w float32) Vec4 {
	return Vec4{x, y, z, w}
}

// NewVec4One returns a 4-component vector with all components set to 1.0f.
// Used as opaque white for vertex colours.
func NewVec4One() Vec4 {
	return Vec4{1.0, 1.0, 1.0, 1.0}
}

// Compare compares all elements of v and other and ensures the difference
// is less than tolerance.
func (v Vec4) Compare(other Vec4, tolerance float32) bool {
	if math32.Abs(v.X-other.X) > tolerance {
		return false
	}

	if math32.Abs(v.Y-other.Y) > tolerance {
		return false
	}

	if math32.Abs(v.Z-other.Z) > tolerance {
		return false
	}

	if math32.Abs(v.W-other.W) > tolerance {
		return false
	}

	return true
}

// ------------------------------------------
// Matrix 4
// ------------------------------------------

/**
 * @brief Creates and returns an identity matrix:
 *
 * {
 *   {1, 0, 0, 0},
 *   {0, 1, 0, 0},
 *   {0, 0, 1, 0},
 *   {0, 0, 0, 1}
 * }
 *
 * @return A new identity matrix
 */
func NewMat4Identity() Mat4 {
	out_matrix := Mat4{}
	out_matrix.Data[0] = 1.0
	out_matrix.Data[5] = 1.0
	out_matrix.Data[10] = 1.0
	out_matrix.Data[15] = 1.0
	return out_matrix
}

func (mt Mat4) Mul(other Mat4) Mat4 {
	out_matrix := NewMat4Identity()

	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			sum := float32(0)
			for i := 0; i < 4; i++ {
				sum += mt.Data[row*4+i] * other.Data[i*4+col]
			}
			out_matrix.Data[row*4+col] = sum
		}
	}

	return out_matrix
}

// NewMat4Translation returns a translation matrix from the given position.
func NewMat4Translation(position Vec3) Mat4 {
	out_matrix := NewMat4Identity()
	out_matrix.Data[12] = position.X
	out_matrix.Data[13] = position.Y
	out_matrix.Data[14] = position.Z
	return out_matrix
}

// NewMat4Scale returns a scale matrix using the provided scale.
func NewMat4Scale(scale Vec3) Mat4 {
	out_matrix := NewMat4Identity()
	out_matrix.Data[0] = scale.X
	out_matrix.Data[5] = scale.Y
	out_matrix.Data[10] = scale.Z
	return out_matrix
}

// ------------------------------------------
// Quaternion
// ------------------------------------------

// NewQuatIdentity returns an identity quaternion.
func NewQuatIdentity() Quaternion {
	return Quaternion{0, 0, 0, 1.0}
}

// Normal returns the normal of the provided quaternion.
func (q Quaternion) Normal() float32 {
	return math32.Sqrt(
		q.X*q.X +
			q.Y*q.Y +
			q.Z*q.Z +
			q.W*q.W)
}

// Normalize returns a normalized copy of the provided quaternion.
func (q Quaternion) Normalize() Quaternion {
	normal := q.Normal()
	if normal <= K_FLOAT_EPSILON {
		return NewQuatIdentity()
	}
	return Quaternion{
		q.X / normal,
		q.Y / normal,
		q.Z / normal,
		q.W / normal}
}

func (q Quaternion) Mul(other Quaternion) Quaternion {
	out_quaternion := Quaternion{}

	out_quaternion.X = q.X*other.W +
		q.Y*other.Z -
		q.Z*other.Y +
		q.W*other.X

	out_quaternion.Y = -q.X*other.Z +
		q.Y*other.W +
		q.Z*other.X +
		q.W*other.Y

	out_quaternion.Z = q.X*other.Y -
		q.Y*other.X +
		q.Z*other.W +
		q.W*other.Z

	out_quaternion.W = -q.X*other.X -
		q.Y*other.Y -
		q.Z*other.Z +
		q.W*other.W

	return out_quaternion
}

// RotateVector rotates the vector v by the quaternion.
func (q Quaternion) RotateVector(v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).MulScalar(2)
	return v.Add(t.MulScalar(q.W)).Add(u.Cross(t))
}

// ToMat4 returns a rotation matrix from the given quaternion, laid out for
// row vectors like the rest of Mat4.
func (q Quaternion) ToMat4() Mat4 {
	out_matrix := NewMat4Identity()

	n := q.Normalize()

	out_matrix.Data[0] = 1.0 - 2.0*n.Y*n.Y - 2.0*n.Z*n.Z
	out_matrix.Data[1] = 2.0*n.X*n.Y + 2.0*n.Z*n.W
	out_matrix.Data[2] = 2.0*n.X*n.Z - 2.0*n.Y*n.W

	out_matrix.Data[4] = 2.0*n.X*n.Y - 2.0*n.Z*n.W
	out_matrix.Data[5] = 1.0 - 2.0*n.X*n.X - 2.0*n.Z*n.Z
	out_matrix.Data[6] = 2.0*n.Y*n.Z + 2.0*n.X*n.W

	out_matrix.Data[8] = 2.0*n.X*n.Z + 2.0*n.Y*n.W
	out_matrix.Data[9] = 2.0*n.Y*n.Z - 2.0*n.X*n.W
	out_matrix.Data[10] = 1.0 - 2.0*n.X*n.X - 2.0*n.Y*n.Y

	return out_matrix
}

/**
 * @brief Creates a quaternion from the given axis and angle.
 *
 * @param axis The axis of rotation.
 * @param angle The angle of rotation in radians.
 * @param normalize Indicates if the quaternion should be normalized.
 * @return A new quaternion.
 */
func NewQuatFromAxisAngle(axis Vec3, angle float32, normalize bool) Quaternion {
	half_angle := 0.5 * angle
	s, c := math32.Sincos(half_angle)

	q := Quaternion{s * axis.X, s * axis.Y, s * axis.Z, c}
	if normalize {
		q = q.Normalize()
	}
	return q
}

// DegToRad converts provided degrees to radians.
func DegToRad(degrees float32) float32 {
	return degrees * K_DEG2RAD_MULTIPLIER
}

// RadToDeg converts provided radians to degrees.
func RadToDeg(radians float32) float32 {
	return radians * K_RAD2DEG_MULTIPLIER
}
