package cube

// Rotation describes the rotation of an object in the world. It holds a yaw
// (Rotation[0]) and pitch value (Rotation[1]), both in degrees.
type Rotation [2]float64

// Yaw returns the yaw of r (r[0]).
func (r Rotation) Yaw() float64 {
	return r[0]
}

// Pitch returns the pitch of r (r[1]).
func (r Rotation) Pitch() float64 {
	return r[1]
}
