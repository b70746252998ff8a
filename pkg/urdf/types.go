// Package urdf reads and writes the Unified Robot Description Format, the
// XML robot description used across the ROS ecosystem. Only the subset the
// workcell format can represent is modeled; unknown elements are ignored
// on parse.
package urdf

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// Vec3 is a three element vector stored in a single space separated XML
// attribute, e.g. xyz="0 -0.22 0.25".
type Vec3 [3]float64

func (v Vec3) MarshalXMLAttr(name xml.Name) (xml.Attr, error) {
	parts := make([]string, len(v))
	for i, f := range v {
		parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
	}
	return xml.Attr{Name: name, Value: strings.Join(parts, " ")}, nil
}

func (v *Vec3) UnmarshalXMLAttr(attr xml.Attr) error {
	fields := strings.Fields(attr.Value)
	if len(fields) != 3 {
		return fmt.Errorf("attribute %s must have 3 values, got %d", attr.Name.Local, len(fields))
	}
	for i, field := range fields {
		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return fmt.Errorf("attribute %s: %w", attr.Name.Local, err)
		}
		v[i] = f
	}
	return nil
}

// Pose is an origin element with a translation and fixed-axis roll, pitch,
// yaw angles in radians. Both attributes default to zero when absent.
type Pose struct {
	XYZ Vec3 `xml:"xyz,attr"`
	RPY Vec3 `xml:"rpy,attr"`
}

// Mass is the mass element of an inertial block, in kilograms.
type Mass struct {
	Value float64 `xml:"value,attr"`
}

// Inertia is the rotational inertia matrix in its unique components.
type Inertia struct {
	Ixx float64 `xml:"ixx,attr"`
	Ixy float64 `xml:"ixy,attr"`
	Ixz float64 `xml:"ixz,attr"`
	Iyy float64 `xml:"iyy,attr"`
	Iyz float64 `xml:"iyz,attr"`
	Izz float64 `xml:"izz,attr"`
}

// Inertial is the inertial block of a link.
type Inertial struct {
	Origin  *Pose   `xml:"origin"`
	Mass    Mass    `xml:"mass"`
	Inertia Inertia `xml:"inertia"`
}

// Box is an axis-aligned box primitive.
type Box struct {
	Size Vec3 `xml:"size,attr"`
}

// Cylinder is a cylinder primitive aligned with the local Z axis.
type Cylinder struct {
	Radius float64 `xml:"radius,attr"`
	Length float64 `xml:"length,attr"`
}

// Capsule is a capsule primitive aligned with the local Z axis.
type Capsule struct {
	Radius float64 `xml:"radius,attr"`
	Length float64 `xml:"length,attr"`
}

// Sphere is a sphere primitive.
type Sphere struct {
	Radius float64 `xml:"radius,attr"`
}

// Mesh references an external mesh file, optionally scaled per axis.
type Mesh struct {
	Filename string `xml:"filename,attr"`
	Scale    *Vec3  `xml:"scale,attr,omitempty"`
}

// Geometry holds exactly one shape child element.
type Geometry struct {
	Box      *Box      `xml:"box"`
	Cylinder *Cylinder `xml:"cylinder"`
	Capsule  *Capsule  `xml:"capsule"`
	Sphere   *Sphere   `xml:"sphere"`
	Mesh     *Mesh     `xml:"mesh"`
}

// Visual is the rendered representation of a link.
type Visual struct {
	Name     string   `xml:"name,attr,omitempty"`
	Origin   *Pose    `xml:"origin"`
	Geometry Geometry `xml:"geometry"`
}

// Collision is the collision representation of a link.
type Collision struct {
	Name     string   `xml:"name,attr,omitempty"`
	Origin   *Pose    `xml:"origin"`
	Geometry Geometry `xml:"geometry"`
}

// Link is a rigid body of the robot.
type Link struct {
	Name       string      `xml:"name,attr"`
	Inertial   *Inertial   `xml:"inertial"`
	Visuals    []Visual    `xml:"visual"`
	Collisions []Collision `xml:"collision"`
}

// LinkName references a link from inside a joint element.
type LinkName struct {
	Link string `xml:"link,attr"`
}

// Axis is the axis of motion of a joint. The URDF default is (1, 0, 0)
// when the element is absent.
type Axis struct {
	XYZ Vec3 `xml:"xyz,attr"`
}

// DefaultAxis returns the axis URDF assumes when none is declared.
func DefaultAxis() Axis { return Axis{XYZ: Vec3{1, 0, 0}} }

// Limit bounds the motion of a joint. Lower and upper default to zero;
// effort and velocity are required by the URDF schema for revolute and
// prismatic joints.
type Limit struct {
	Lower    float64 `xml:"lower,attr"`
	Upper    float64 `xml:"upper,attr"`
	Effort   float64 `xml:"effort,attr"`
	Velocity float64 `xml:"velocity,attr"`
}

// Joint connects a parent link to a child link.
type Joint struct {
	Name   string   `xml:"name,attr"`
	Type   string   `xml:"type,attr"`
	Origin *Pose    `xml:"origin"`
	Parent LinkName `xml:"parent"`
	Child  LinkName `xml:"child"`
	Axis   *Axis    `xml:"axis"`
	Limit  *Limit   `xml:"limit"`
}

// EffectiveAxis returns the declared axis or the URDF default.
func (j *Joint) EffectiveAxis() Axis {
	if j.Axis != nil {
		return *j.Axis
	}
	return DefaultAxis()
}

// EffectiveLimit returns the declared limit or an all-zero one.
func (j *Joint) EffectiveLimit() Limit {
	if j.Limit != nil {
		return *j.Limit
	}
	return Limit{}
}

// EffectiveOrigin returns the declared origin or the identity pose.
func (j *Joint) EffectiveOrigin() Pose {
	if j.Origin != nil {
		return *j.Origin
	}
	return Pose{}
}

// Robot is the root element of a URDF document.
type Robot struct {
	XMLName xml.Name `xml:"robot"`
	Name    string   `xml:"name,attr"`
	Links   []Link   `xml:"link"`
	Joints  []Joint  `xml:"joint"`
}
