package workcell

import (
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/luca-della-vedova/rmf-workcell/pkg/console"
	"github.com/luca-della-vedova/rmf-workcell/pkg/urdf"
)

// Default limits written when a workcell joint carries no usable bound.
// 0.0 is a valid urdf default for position limits, but effort and velocity
// are required attributes.
const (
	DefaultEffortLimit   = 1e3
	DefaultVelocityLimit = 10.0
)

func poseToURDF(p Pose) *urdf.Pose {
	euler := p.Rot.AsEulerExtrinsicXYZ()
	return &urdf.Pose{
		XYZ: urdf.Vec3{float64(p.Trans[0]), float64(p.Trans[1]), float64(p.Trans[2])},
		RPY: urdf.Vec3{
			float64(euler[0].Radians()),
			float64(euler[1].Radians()),
			float64(euler[2].Radians()),
		},
	}
}

func geometryToURDF(g Geometry) (urdf.Geometry, error) {
	switch {
	case g.Mesh != nil:
		mesh := &urdf.Mesh{Filename: g.Mesh.Source.URDFFilename()}
		if g.Mesh.Scale != nil {
			scale := urdf.Vec3{
				float64(g.Mesh.Scale[0]),
				float64(g.Mesh.Scale[1]),
				float64(g.Mesh.Scale[2]),
			}
			mesh.Scale = &scale
		}
		return urdf.Geometry{Mesh: mesh}, nil
	case g.Primitive != nil:
		p := g.Primitive
		switch {
		case p.Box != nil:
			return urdf.Geometry{Box: &urdf.Box{Size: urdf.Vec3{
				float64(p.Box.Size[0]), float64(p.Box.Size[1]), float64(p.Box.Size[2]),
			}}}, nil
		case p.Cylinder != nil:
			return urdf.Geometry{Cylinder: &urdf.Cylinder{
				Radius: float64(p.Cylinder.Radius),
				Length: float64(p.Cylinder.Length),
			}}, nil
		case p.Capsule != nil:
			return urdf.Geometry{Capsule: &urdf.Capsule{
				Radius: float64(p.Capsule.Radius),
				Length: float64(p.Capsule.Length),
			}}, nil
		case p.Sphere != nil:
			return urdf.Geometry{Sphere: &urdf.Sphere{
				Radius: float64(p.Sphere.Radius),
			}}, nil
		}
	}
	return urdf.Geometry{}, fmt.Errorf("geometry has no variant set")
}

func inertiaToURDF(in Inertia) *urdf.Inertial {
	return &urdf.Inertial{
		Origin: poseToURDF(in.Center),
		Mass:   urdf.Mass{Value: float64(in.Mass)},
		Inertia: urdf.Inertia{
			Ixx: float64(in.Moment.Ixx),
			Ixy: float64(in.Moment.Ixy),
			Ixz: float64(in.Moment.Ixz),
			Iyy: float64(in.Moment.Iyy),
			Iyz: float64(in.Moment.Iyz),
			Izz: float64(in.Moment.Izz),
		},
	}
}

func minOrDefault(lower, upper *float32, def float64) float64 {
	var values []float64
	if lower != nil {
		values = append(values, float64(*lower))
	}
	if upper != nil {
		values = append(values, float64(*upper))
	}
	if len(values) == 0 {
		return def
	}
	sort.Float64s(values)
	return values[0]
}

func exportScalarLimit(limits RangeLimits, quantity string, def float64) float64 {
	switch {
	case limits.IsNone():
		fmt.Fprintln(os.Stderr, console.FormatWarningMessage(fmt.Sprintf(
			"No %s limit found when exporting to urdf, setting to %v", quantity, def)))
		return def
	default:
		lower, upper := limits.Bounds()
		if lower != nil && upper != nil && *lower == *upper {
			return float64(*lower)
		}
		value := minOrDefault(lower, upper, def)
		fmt.Fprintln(os.Stderr, console.FormatWarningMessage(fmt.Sprintf(
			"Asymmetric %s limit found when exporting to urdf, setting to %v", quantity, value)))
		return value
	}
}

func limitsToURDF(limits JointLimits) *urdf.Limit {
	lower, upper := limits.Position.Bounds()
	out := &urdf.Limit{
		Effort:   exportScalarLimit(limits.Effort, "effort", DefaultEffortLimit),
		Velocity: exportScalarLimit(limits.Velocity, "velocity", DefaultVelocityLimit),
	}
	if lower != nil {
		out.Lower = float64(*lower)
	}
	if upper != nil {
		out.Upper = float64(*upper)
	}
	return out
}

// ToURDF converts the workcell to a URDF robot. Frames become links and
// joints keep their parent frame with the child resolved as the frame
// parented to the joint. When the root has more than one child frame a
// datum link named "<workcell_name>_workcell_link" is synthesized so that
// the result is a single tree, per the Industrial Workcell Coordinate
// Conventions.
func (w *Workcell) ToURDF() (*urdf.Robot, error) {
	parentToVisuals := map[uint32][]urdf.Visual{}
	for _, visual := range w.Visuals {
		geometry, err := geometryToURDF(visual.Bundle.Geometry)
		if err != nil {
			return nil, err
		}
		parentToVisuals[visual.Parent] = append(parentToVisuals[visual.Parent], urdf.Visual{
			Name:     visual.Bundle.Name,
			Origin:   poseToURDF(visual.Bundle.Pose),
			Geometry: geometry,
		})
	}
	parentToCollisions := map[uint32][]urdf.Collision{}
	for _, collision := range w.Collisions {
		geometry, err := geometryToURDF(collision.Bundle.Geometry)
		if err != nil {
			return nil, err
		}
		parentToCollisions[collision.Parent] = append(parentToCollisions[collision.Parent], urdf.Collision{
			Name:     collision.Bundle.Name,
			Origin:   poseToURDF(collision.Bundle.Pose),
			Geometry: geometry,
		})
	}
	parentToInertials := map[uint32]*urdf.Inertial{}
	for _, inertia := range w.Inertias {
		parentToInertials[inertia.Parent] = inertiaToURDF(inertia.Bundle)
	}

	// A single root child frame can serve as the base link directly;
	// otherwise a datum link holds the workcell children together.
	rootChildren := 0
	for _, frame := range w.Frames {
		if frame.Parent == w.ID {
			rootChildren++
		}
	}
	frames := make(map[uint32]Parented[Frame], len(w.Frames)+1)
	for id, frame := range w.Frames {
		frames[id] = frame
	}
	if rootChildren != 1 {
		frames[w.ID] = Parented[Frame]{
			// The root has no parent, mark it with a placeholder.
			Parent: math.MaxUint32,
			Bundle: Frame{
				Anchor: Anchor{},
				Name:   w.Name + "_workcell_link",
			},
		}
	}

	frameIDs := make([]uint32, 0, len(frames))
	for id := range frames {
		frameIDs = append(frameIDs, id)
	}
	sort.Slice(frameIDs, func(i, j int) bool { return frameIDs[i] < frameIDs[j] })

	links := make([]urdf.Link, 0, len(frames))
	for _, id := range frameIDs {
		links = append(links, urdf.Link{
			Name:       frames[id].Bundle.Name,
			Inertial:   parentToInertials[id],
			Visuals:    parentToVisuals[id],
			Collisions: parentToCollisions[id],
		})
	}

	jointIDs := make([]uint32, 0, len(w.Joints))
	for id := range w.Joints {
		jointIDs = append(jointIDs, id)
	}
	sort.Slice(jointIDs, func(i, j int) bool { return jointIDs[i] < jointIDs[j] })

	joints := make([]urdf.Joint, 0, len(w.Joints))
	for _, jointID := range jointIDs {
		parented := w.Joints[jointID]
		parentFrame, ok := w.Frames[parented.Parent]
		if !ok {
			return nil, &BrokenReferenceError{ID: parented.Parent}
		}
		var childFrame *Frame
		for _, frame := range w.Frames {
			if frame.Parent == jointID {
				f := frame.Bundle
				childFrame = &f
				break
			}
		}
		if childFrame == nil {
			return nil, &BrokenReferenceError{ID: jointID}
		}

		joint := urdf.Joint{
			Name: parented.Bundle.Name,
			// The joint pose is the anchor of the frame parented to it.
			Origin: poseToURDF(childFrame.Anchor.Pose),
			Parent: urdf.LinkName{Link: parentFrame.Bundle.Name},
			Child:  urdf.LinkName{Link: childFrame.Name},
		}
		properties := parented.Bundle.Properties
		switch properties.Type {
		case JointFixed:
			joint.Type = "fixed"
		case JointRevolute, JointPrismatic, JointContinuous:
			if properties.Dof == nil {
				return nil, fmt.Errorf("joint %q is missing its degree of freedom data", parented.Bundle.Name)
			}
			switch properties.Type {
			case JointRevolute:
				joint.Type = "revolute"
			case JointPrismatic:
				joint.Type = "prismatic"
			default:
				joint.Type = "continuous"
			}
			axis := urdf.Axis{XYZ: urdf.Vec3{
				float64(properties.Dof.Axis[0]),
				float64(properties.Dof.Axis[1]),
				float64(properties.Dof.Axis[2]),
			}}
			joint.Axis = &axis
			joint.Limit = limitsToURDF(properties.Dof.Limits)
		default:
			return nil, fmt.Errorf("unknown joint type %q", properties.Type)
		}
		joints = append(joints, joint)
	}

	return &urdf.Robot{Name: w.Name, Links: links, Joints: joints}, nil
}

// ToURDFString converts the workcell to URDF and renders it as XML.
func (w *Workcell) ToURDFString() (string, error) {
	robot, err := w.ToURDF()
	if err != nil {
		return "", err
	}
	return urdf.WriteString(robot)
}
