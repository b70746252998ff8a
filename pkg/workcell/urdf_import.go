package workcell

import (
	"github.com/luca-della-vedova/rmf-workcell/pkg/urdf"
)

func poseFromURDF(p urdf.Pose) Pose {
	return Pose{
		Trans: [3]float32{float32(p.XYZ[0]), float32(p.XYZ[1]), float32(p.XYZ[2])},
		Rot: EulerExtrinsicXYZ(
			Rad(float32(p.RPY[0])),
			Rad(float32(p.RPY[1])),
			Rad(float32(p.RPY[2])),
		),
	}
}

func poseFromURDFOrigin(origin *urdf.Pose) Pose {
	if origin == nil {
		return poseFromURDF(urdf.Pose{})
	}
	return poseFromURDF(*origin)
}

func geometryFromURDF(g urdf.Geometry) Geometry {
	switch {
	case g.Box != nil:
		return Geometry{Primitive: &PrimitiveShape{Box: &BoxShape{
			Size: vec3To32(g.Box.Size),
		}}}
	case g.Cylinder != nil:
		return Geometry{Primitive: &PrimitiveShape{Cylinder: &CylinderShape{
			Radius: float32(g.Cylinder.Radius),
			Length: float32(g.Cylinder.Length),
		}}}
	case g.Capsule != nil:
		return Geometry{Primitive: &PrimitiveShape{Capsule: &CapsuleShape{
			Radius: float32(g.Capsule.Radius),
			Length: float32(g.Capsule.Length),
		}}}
	case g.Sphere != nil:
		return Geometry{Primitive: &PrimitiveShape{Sphere: &SphereShape{
			Radius: float32(g.Sphere.Radius),
		}}}
	case g.Mesh != nil:
		mesh := &Mesh{Source: AssetSourceFromURDFFilename(g.Mesh.Filename)}
		if g.Mesh.Scale != nil {
			scale := vec3To32(*g.Mesh.Scale)
			mesh.Scale = &scale
		}
		return Geometry{Mesh: mesh}
	default:
		// An empty geometry element degrades to a zero sized box.
		return Geometry{Primitive: &PrimitiveShape{Box: &BoxShape{}}}
	}
}

func vec3To32(v urdf.Vec3) [3]float32 {
	return [3]float32{float32(v[0]), float32(v[1]), float32(v[2])}
}

func inertiaFromURDF(inertial *urdf.Inertial) Inertia {
	if inertial == nil {
		return Inertia{}
	}
	return Inertia{
		Center: poseFromURDFOrigin(inertial.Origin),
		Mass:   Mass(inertial.Mass.Value),
		Moment: Moment{
			Ixx: float32(inertial.Inertia.Ixx),
			Ixy: float32(inertial.Inertia.Ixy),
			Ixz: float32(inertial.Inertia.Ixz),
			Iyy: float32(inertial.Inertia.Iyy),
			Iyz: float32(inertial.Inertia.Iyz),
			Izz: float32(inertial.Inertia.Izz),
		},
	}
}

func limitsFromURDF(limit urdf.Limit) JointLimits {
	lower := float32(limit.Lower)
	upper := float32(limit.Upper)
	return JointLimits{
		Position: AsymmetricLimits(&lower, &upper),
		Effort:   SymmetricLimits(float32(limit.Effort)),
		Velocity: SymmetricLimits(float32(limit.Velocity)),
	}
}

func singleDofFromURDF(joint *urdf.Joint) *SingleDofJoint {
	axis := joint.EffectiveAxis()
	return &SingleDofJoint{
		Limits: limitsFromURDF(joint.EffectiveLimit()),
		Axis:   JointAxis(vec3To32(axis.XYZ)),
	}
}

// FromURDF converts a URDF robot into a workcell. Every link becomes a
// frame parented to the root, with its inertial data as a child element
// and its visuals and collisions attached to the frame. Joints then
// re-parent the child frame under the joint and move the joint's origin
// onto the frame's anchor.
func FromURDF(robot *urdf.Robot) (*Workcell, error) {
	w := New(robot.Name)
	frameNameToID := make(map[string]uint32, len(robot.Links))
	nextID := uint32(1)
	newID := func() uint32 {
		id := nextID
		nextID++
		return id
	}

	for _, link := range robot.Links {
		frameID := newID()
		inertiaID := newID()
		frameNameToID[link.Name] = frameID
		// Pose and parent are overwritten later if a joint targets the
		// frame.
		w.Frames[frameID] = Parented[Frame]{
			Parent: w.ID,
			Bundle: Frame{Anchor: Anchor{}, Name: link.Name},
		}
		w.Inertias[inertiaID] = Parented[Inertia]{
			Parent: frameID,
			Bundle: inertiaFromURDF(link.Inertial),
		}
		for _, visual := range link.Visuals {
			w.Visuals[newID()] = Parented[Model]{
				Parent: frameID,
				Bundle: Model{
					Name:     visual.Name,
					Geometry: geometryFromURDF(visual.Geometry),
					Pose:     poseFromURDFOrigin(visual.Origin),
				},
			}
		}
		for _, collision := range link.Collisions {
			w.Collisions[newID()] = Parented[Model]{
				Parent: frameID,
				Bundle: Model{
					Name:     collision.Name,
					Geometry: geometryFromURDF(collision.Geometry),
					Pose:     poseFromURDFOrigin(collision.Origin),
				},
			}
		}
	}

	for i := range robot.Joints {
		joint := &robot.Joints[i]
		parent, ok := frameNameToID[joint.Parent.Link]
		if !ok {
			return nil, &BrokenJointReferenceError{Link: joint.Parent.Link}
		}
		child, ok := frameNameToID[joint.Child.Link]
		if !ok {
			return nil, &BrokenJointReferenceError{Link: joint.Child.Link}
		}
		var properties JointProperties
		switch joint.Type {
		case "revolute":
			properties = JointProperties{Type: JointRevolute, Dof: singleDofFromURDF(joint)}
		case "prismatic":
			properties = JointProperties{Type: JointPrismatic, Dof: singleDofFromURDF(joint)}
		case "continuous":
			properties = JointProperties{Type: JointContinuous, Dof: singleDofFromURDF(joint)}
		case "fixed":
			properties = FixedJoint()
		default:
			return nil, &UnsupportedJointTypeError{Type: joint.Type}
		}
		jointID := newID()
		// In urdf the joint origin places the joint in the parent frame
		// and the child link sits at the joint origin, so the child frame
		// is re-anchored onto the joint and re-parented under it.
		childFrame := w.Frames[child]
		childFrame.Parent = jointID
		childFrame.Bundle.Anchor = Anchor{Pose: poseFromURDFOrigin(joint.Origin)}
		w.Frames[child] = childFrame
		w.Joints[jointID] = Parented[Joint]{
			Parent: parent,
			Bundle: Joint{Name: joint.Name, Properties: properties},
		}
	}

	return w, nil
}
