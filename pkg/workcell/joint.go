package workcell

import (
	"encoding/json"
	"fmt"
)

// JointAxis is the axis a single degree of freedom joint moves along or
// rotates about. It serializes as a bare three element array.
type JointAxis [3]float32

// rangeLimitsKind discriminates the RangeLimits variants.
type rangeLimitsKind uint8

const (
	rangeLimitsNone rangeLimitsKind = iota
	rangeLimitsSymmetric
	rangeLimitsAsymmetric
)

// RangeLimits bounds a joint quantity such as position, effort or
// velocity. The JSON form follows the tagged encoding: "None",
// {"Symmetric": 1.5} or {"Asymmetric": {"lower": -1, "upper": 1}} where
// either bound may be null.
type RangeLimits struct {
	kind      rangeLimitsKind
	symmetric float32
	lower     *float32
	upper     *float32
}

// NoLimits creates an unbounded range.
func NoLimits() RangeLimits { return RangeLimits{kind: rangeLimitsNone} }

// SymmetricLimits creates a range bounded by the same magnitude in both
// directions.
func SymmetricLimits(v float32) RangeLimits {
	return RangeLimits{kind: rangeLimitsSymmetric, symmetric: v}
}

// AsymmetricLimits creates a range with independent, optional bounds.
func AsymmetricLimits(lower, upper *float32) RangeLimits {
	return RangeLimits{kind: rangeLimitsAsymmetric, lower: lower, upper: upper}
}

// IsNone reports whether the range is unbounded.
func (r RangeLimits) IsNone() bool { return r.kind == rangeLimitsNone }

// Bounds returns the lower and upper bound of the range, or nil for
// bounds that are absent.
func (r RangeLimits) Bounds() (lower, upper *float32) {
	switch r.kind {
	case rangeLimitsSymmetric:
		v := r.symmetric
		return &v, &v
	case rangeLimitsAsymmetric:
		return r.lower, r.upper
	default:
		return nil, nil
	}
}

type asymmetricLimits struct {
	Lower *float32 `json:"lower"`
	Upper *float32 `json:"upper"`
}

func (r RangeLimits) MarshalJSON() ([]byte, error) {
	switch r.kind {
	case rangeLimitsNone:
		return json.Marshal("None")
	case rangeLimitsSymmetric:
		return json.Marshal(map[string]float32{"Symmetric": r.symmetric})
	default:
		return json.Marshal(map[string]asymmetricLimits{
			"Asymmetric": {Lower: r.lower, Upper: r.upper},
		})
	}
}

func (r *RangeLimits) UnmarshalJSON(data []byte) error {
	var unit string
	if err := json.Unmarshal(data, &unit); err == nil {
		if unit != "None" {
			return fmt.Errorf("unknown range limits variant %q", unit)
		}
		*r = NoLimits()
		return nil
	}
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("range limits must be \"None\" or a tagged object: %w", err)
	}
	if len(tagged) != 1 {
		return fmt.Errorf("range limits must have exactly one variant, got %d keys", len(tagged))
	}
	for tag, raw := range tagged {
		switch tag {
		case "Symmetric":
			var v float32
			if err := json.Unmarshal(raw, &v); err != nil {
				return err
			}
			*r = SymmetricLimits(v)
		case "Asymmetric":
			var a asymmetricLimits
			if err := json.Unmarshal(raw, &a); err != nil {
				return err
			}
			*r = AsymmetricLimits(a.Lower, a.Upper)
		default:
			return fmt.Errorf("unknown range limits variant %q", tag)
		}
	}
	return nil
}

// JointLimits bounds the motion of a joint.
type JointLimits struct {
	Position RangeLimits `json:"position"`
	Effort   RangeLimits `json:"effort"`
	Velocity RangeLimits `json:"velocity"`
}

// JointType names the kind of joint.
type JointType string

const (
	JointFixed      JointType = "Fixed"
	JointRevolute   JointType = "Revolute"
	JointPrismatic  JointType = "Prismatic"
	JointContinuous JointType = "Continuous"
)

// SingleDofJoint describes a joint with a single degree of freedom.
type SingleDofJoint struct {
	Limits JointLimits `json:"limits"`
	Axis   JointAxis   `json:"axis"`
}

// JointProperties is the kinematic description of a joint. Fixed joints
// carry no further data and serialize as the bare string "Fixed"; the
// single degree of freedom kinds wrap a SingleDofJoint, for example
// {"Revolute": {"limits": ..., "axis": ...}}.
type JointProperties struct {
	Type JointType
	// Dof holds the degree of freedom data for non-fixed joints and is
	// nil for fixed joints.
	Dof *SingleDofJoint
}

// FixedJoint creates the properties of a fixed joint.
func FixedJoint() JointProperties { return JointProperties{Type: JointFixed} }

// Label returns a human readable name for the joint kind.
func (p JointProperties) Label() string { return string(p.Type) }

func (p JointProperties) MarshalJSON() ([]byte, error) {
	switch p.Type {
	case JointFixed:
		return json.Marshal(string(JointFixed))
	case JointRevolute, JointPrismatic, JointContinuous:
		if p.Dof == nil {
			return nil, fmt.Errorf("%s joint is missing its degree of freedom data", p.Type)
		}
		return json.Marshal(map[JointType]*SingleDofJoint{p.Type: p.Dof})
	default:
		return nil, fmt.Errorf("unknown joint type %q", p.Type)
	}
}

func (p *JointProperties) UnmarshalJSON(data []byte) error {
	var unit string
	if err := json.Unmarshal(data, &unit); err == nil {
		if unit != string(JointFixed) {
			return fmt.Errorf("unknown joint properties variant %q", unit)
		}
		*p = FixedJoint()
		return nil
	}
	var tagged map[JointType]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("joint properties must be \"Fixed\" or a tagged object: %w", err)
	}
	if len(tagged) != 1 {
		return fmt.Errorf("joint properties must have exactly one variant, got %d keys", len(tagged))
	}
	for kind, raw := range tagged {
		switch kind {
		case JointRevolute, JointPrismatic, JointContinuous:
			dof := &SingleDofJoint{}
			if err := json.Unmarshal(raw, dof); err != nil {
				return err
			}
			*p = JointProperties{Type: kind, Dof: dof}
		default:
			return fmt.Errorf("unknown joint properties variant %q", kind)
		}
	}
	return nil
}

// Joint connects two frames and constrains their relative motion.
type Joint struct {
	Name       string          `json:"name"`
	Properties JointProperties `json:"properties"`
}
