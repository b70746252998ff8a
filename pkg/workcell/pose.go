package workcell

import (
	"encoding/json"
	"fmt"
	"math"
)

// Angle is a rotation angle that remembers whether it was authored in
// degrees or radians, so round-tripping a document preserves the author's
// choice of unit. The JSON form is externally tagged: {"Deg": 90} or
// {"Rad": 1.57}.
type Angle struct {
	value   float32
	radians bool
}

// Deg creates an angle expressed in degrees.
func Deg(v float32) Angle { return Angle{value: v} }

// Rad creates an angle expressed in radians.
func Rad(v float32) Angle { return Angle{value: v, radians: true} }

// Radians returns the angle in radians.
func (a Angle) Radians() float32 {
	if a.radians {
		return a.value
	}
	return a.value * math.Pi / 180.0
}

// Degrees returns the angle in degrees.
func (a Angle) Degrees() float32 {
	if a.radians {
		return a.value * 180.0 / math.Pi
	}
	return a.value
}

func (a Angle) MarshalJSON() ([]byte, error) {
	if a.radians {
		return json.Marshal(map[string]float32{"Rad": a.value})
	}
	return json.Marshal(map[string]float32{"Deg": a.value})
}

func (a *Angle) UnmarshalJSON(data []byte) error {
	var tagged map[string]float32
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("angle must be an object tagged with Deg or Rad: %w", err)
	}
	if len(tagged) != 1 {
		return fmt.Errorf("angle must have exactly one of Deg or Rad, got %d keys", len(tagged))
	}
	for tag, value := range tagged {
		switch tag {
		case "Deg":
			*a = Deg(value)
		case "Rad":
			*a = Rad(value)
		default:
			return fmt.Errorf("unknown angle variant %q", tag)
		}
	}
	return nil
}

// rotationKind discriminates the Rotation variants.
type rotationKind uint8

const (
	rotationYaw rotationKind = iota
	rotationEulerExtrinsicXYZ
	rotationQuat
)

// Rotation is a 3D rotation in one of three representations: a yaw-only
// rotation, extrinsic XYZ Euler angles, or a quaternion [x, y, z, w].
// The zero value is the identity yaw rotation.
type Rotation struct {
	kind  rotationKind
	yaw   Angle
	euler [3]Angle
	quat  [4]float32
}

// Yaw creates a rotation about the Z axis.
func Yaw(a Angle) Rotation { return Rotation{kind: rotationYaw, yaw: a} }

// EulerExtrinsicXYZ creates a rotation from extrinsic XYZ Euler angles.
func EulerExtrinsicXYZ(x, y, z Angle) Rotation {
	return Rotation{kind: rotationEulerExtrinsicXYZ, euler: [3]Angle{x, y, z}}
}

// Quat creates a rotation from a quaternion in [x, y, z, w] order.
func Quat(q [4]float32) Rotation { return Rotation{kind: rotationQuat, quat: q} }

// AsEulerExtrinsicXYZ converts the rotation to extrinsic XYZ Euler angles.
// Yaw and Euler rotations convert exactly; quaternions go through the
// standard decomposition.
func (r Rotation) AsEulerExtrinsicXYZ() [3]Angle {
	switch r.kind {
	case rotationYaw:
		return [3]Angle{Deg(0), Deg(0), r.yaw}
	case rotationEulerExtrinsicXYZ:
		return r.euler
	default:
		return quatToEuler(r.quat)
	}
}

// AsQuat converts the rotation to a quaternion in [x, y, z, w] order.
func (r Rotation) AsQuat() [4]float32 {
	switch r.kind {
	case rotationQuat:
		return r.quat
	default:
		e := r.AsEulerExtrinsicXYZ()
		return eulerToQuat(e)
	}
}

func quatToEuler(q [4]float32) [3]Angle {
	x := float64(q[0])
	y := float64(q[1])
	z := float64(q[2])
	w := float64(q[3])

	// Roll (X axis)
	sinrCosp := 2 * (w*x + y*z)
	cosrCosp := 1 - 2*(x*x+y*y)
	roll := math.Atan2(sinrCosp, cosrCosp)

	// Pitch (Y axis), clamped to avoid NaN at the gimbal singularity
	sinp := 2 * (w*y - z*x)
	var pitch float64
	if math.Abs(sinp) >= 1 {
		pitch = math.Copysign(math.Pi/2, sinp)
	} else {
		pitch = math.Asin(sinp)
	}

	// Yaw (Z axis)
	sinyCosp := 2 * (w*z + x*y)
	cosyCosp := 1 - 2*(y*y+z*z)
	yaw := math.Atan2(sinyCosp, cosyCosp)

	return [3]Angle{Rad(float32(roll)), Rad(float32(pitch)), Rad(float32(yaw))}
}

func eulerToQuat(e [3]Angle) [4]float32 {
	roll := float64(e[0].Radians())
	pitch := float64(e[1].Radians())
	yaw := float64(e[2].Radians())

	cr := math.Cos(roll / 2)
	sr := math.Sin(roll / 2)
	cp := math.Cos(pitch / 2)
	sp := math.Sin(pitch / 2)
	cy := math.Cos(yaw / 2)
	sy := math.Sin(yaw / 2)

	return [4]float32{
		float32(sr*cp*cy - cr*sp*sy),
		float32(cr*sp*cy + sr*cp*sy),
		float32(cr*cp*sy - sr*sp*cy),
		float32(cr*cp*cy + sr*sp*sy),
	}
}

func (r Rotation) MarshalJSON() ([]byte, error) {
	switch r.kind {
	case rotationYaw:
		return json.Marshal(map[string]Angle{"Yaw": r.yaw})
	case rotationEulerExtrinsicXYZ:
		return json.Marshal(map[string][3]Angle{"EulerExtrinsicXYZ": r.euler})
	default:
		return json.Marshal(map[string][4]float32{"Quat": r.quat})
	}
}

func (r *Rotation) UnmarshalJSON(data []byte) error {
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("rotation must be a tagged object: %w", err)
	}
	if len(tagged) != 1 {
		return fmt.Errorf("rotation must have exactly one variant, got %d keys", len(tagged))
	}
	for tag, raw := range tagged {
		switch tag {
		case "Yaw":
			var a Angle
			if err := json.Unmarshal(raw, &a); err != nil {
				return err
			}
			*r = Yaw(a)
		case "EulerExtrinsicXYZ":
			var e [3]Angle
			if err := json.Unmarshal(raw, &e); err != nil {
				return err
			}
			*r = EulerExtrinsicXYZ(e[0], e[1], e[2])
		case "Quat":
			var q [4]float32
			if err := json.Unmarshal(raw, &q); err != nil {
				return err
			}
			*r = Quat(q)
		default:
			return fmt.Errorf("unknown rotation variant %q", tag)
		}
	}
	return nil
}

// Pose is a translation plus rotation.
type Pose struct {
	Trans [3]float32 `json:"trans"`
	Rot   Rotation   `json:"rot"`
}

// IsClose reports whether two poses are equal within tolerance, comparing
// translations component-wise and rotations through their Euler form.
func (p Pose) IsClose(other Pose, tolerance float64) bool {
	for i := range p.Trans {
		if math.Abs(float64(p.Trans[i]-other.Trans[i])) > tolerance {
			return false
		}
	}
	a := p.Rot.AsEulerExtrinsicXYZ()
	b := other.Rot.AsEulerExtrinsicXYZ()
	for i := range a {
		if math.Abs(float64(a[i].Radians()-b[i].Radians())) > tolerance {
			return false
		}
	}
	return true
}

// Anchor fixes an element in space. Workcells only support 3D pose
// anchors; the 2D anchor kinds of the site format are rejected on decode.
// The JSON form mirrors the site format's tagged encoding: {"Pose3D": {...}}.
type Anchor struct {
	Pose Pose
}

func (a Anchor) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]Pose{"Pose3D": a.Pose})
}

func (a *Anchor) UnmarshalJSON(data []byte) error {
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("anchor must be a tagged object: %w", err)
	}
	raw, ok := tagged["Pose3D"]
	if !ok {
		for tag := range tagged {
			return fmt.Errorf("unsupported anchor type %q, workcells require Pose3D anchors", tag)
		}
		return fmt.Errorf("anchor is missing its Pose3D variant")
	}
	return json.Unmarshal(raw, &a.Pose)
}

// IsClose reports whether two anchors are equal within tolerance.
func (a Anchor) IsClose(other Anchor, tolerance float64) bool {
	return a.Pose.IsClose(other.Pose, tolerance)
}
