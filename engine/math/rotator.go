package math

func NewRotator(pitch, yaw, roll float32) Rotator {
	return Rotator{Pitch: pitch, Yaw: yaw, Roll: roll}
}

// Scale multiplies every angle by amount. Angles are not wrapped, so half of
// a 360 degree yaw is a 180 degree yaw.
func (r Rotator) Scale(amount float32) Rotator {
	return Rotator{Pitch: r.Pitch * amount, Yaw: r.Yaw * amount, Roll: r.Roll * amount}
}

// Quaternion returns the rotation as a unit quaternion.
func (r Rotator) Quaternion() Quaternion {
	roll := NewQuatFromAxisAngle(Vec3{1, 0, 0}, DegToRad(r.Roll), false)
	pitch := NewQuatFromAxisAngle(Vec3{0, 1, 0}, DegToRad(r.Pitch), false)
	yaw := NewQuatFromAxisAngle(Vec3{0, 0, 1}, DegToRad(r.Yaw), false)
	return yaw.Mul(pitch).Mul(roll).Normalize()
}

func (r Rotator) RotateVector(v Vec3) Vec3 {
	return r.Quaternion().RotateVector(v)
}
