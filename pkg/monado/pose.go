package monado

import (
	"math"

	"github.com/monado-tools/libmonado-go/pkg/mnd"
)

// Vector3 is a position in meters.
type Vector3 struct {
	X float32 `json:"x" yaml:"x"`
	Y float32 `json:"y" yaml:"y"`
	Z float32 `json:"z" yaml:"z"`
}

// Quaternion is an orientation. Poses passed to the runtime are expected to
// carry a unit quaternion.
type Quaternion struct {
	X float32 `json:"x" yaml:"x"`
	Y float32 `json:"y" yaml:"y"`
	Z float32 `json:"z" yaml:"z"`
	W float32 `json:"w" yaml:"w"`
}

// Normalized returns q scaled to unit length. The zero quaternion
// normalizes to identity.
func (q Quaternion) Normalized() Quaternion {
	n := math.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W))
	if n == 0 {
		return Quaternion{W: 1}
	}
	inv := float32(1 / n)
	return Quaternion{X: q.X * inv, Y: q.Y * inv, Z: q.Z * inv, W: q.W * inv}
}

// Pose is a position and orientation.
type Pose struct {
	Position    Vector3    `json:"position" yaml:"position"`
	Orientation Quaternion `json:"orientation" yaml:"orientation"`
}

// IdentityPose returns the pose at the origin with no rotation.
func IdentityPose() Pose {
	return Pose{Orientation: Quaternion{W: 1}}
}

func (p Pose) wire() mnd.Pose {
	return mnd.Pose{
		Orientation: mnd.Quaternion{X: p.Orientation.X, Y: p.Orientation.Y, Z: p.Orientation.Z, W: p.Orientation.W},
		Position:    mnd.Vector3{X: p.Position.X, Y: p.Position.Y, Z: p.Position.Z},
	}
}

func poseFromWire(w mnd.Pose) Pose {
	return Pose{
		Position:    Vector3{X: w.Position.X, Y: w.Position.Y, Z: w.Position.Z},
		Orientation: Quaternion{X: w.Orientation.X, Y: w.Orientation.Y, Z: w.Orientation.Z, W: w.Orientation.W},
	}
}
