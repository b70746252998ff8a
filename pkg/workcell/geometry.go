package workcell

import (
	"encoding/json"
	"fmt"
	"strings"
)

// BoxShape is an axis-aligned box with extents in meters.
type BoxShape struct {
	Size [3]float32 `json:"size"`
}

// CylinderShape is a cylinder aligned with the Z axis.
type CylinderShape struct {
	Radius float32 `json:"radius"`
	Length float32 `json:"length"`
}

// CapsuleShape is a capsule aligned with the Z axis. Length measures the
// cylindrical section only.
type CapsuleShape struct {
	Radius float32 `json:"radius"`
	Length float32 `json:"length"`
}

// SphereShape is a sphere.
type SphereShape struct {
	Radius float32 `json:"radius"`
}

// PrimitiveShape holds exactly one primitive variant. The JSON form is
// externally tagged, e.g. {"Box": {"size": [1, 1, 1]}}.
type PrimitiveShape struct {
	Box      *BoxShape
	Cylinder *CylinderShape
	Capsule  *CapsuleShape
	Sphere   *SphereShape
}

// Label returns a human readable name for the shape variant.
func (s PrimitiveShape) Label() string {
	switch {
	case s.Box != nil:
		return "Box"
	case s.Cylinder != nil:
		return "Cylinder"
	case s.Capsule != nil:
		return "Capsule"
	case s.Sphere != nil:
		return "Sphere"
	default:
		return "Empty"
	}
}

func (s PrimitiveShape) MarshalJSON() ([]byte, error) {
	switch {
	case s.Box != nil:
		return json.Marshal(map[string]*BoxShape{"Box": s.Box})
	case s.Cylinder != nil:
		return json.Marshal(map[string]*CylinderShape{"Cylinder": s.Cylinder})
	case s.Capsule != nil:
		return json.Marshal(map[string]*CapsuleShape{"Capsule": s.Capsule})
	case s.Sphere != nil:
		return json.Marshal(map[string]*SphereShape{"Sphere": s.Sphere})
	default:
		return nil, fmt.Errorf("primitive shape has no variant set")
	}
}

func (s *PrimitiveShape) UnmarshalJSON(data []byte) error {
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("primitive shape must be a tagged object: %w", err)
	}
	if len(tagged) != 1 {
		return fmt.Errorf("primitive shape must have exactly one variant, got %d keys", len(tagged))
	}
	*s = PrimitiveShape{}
	for tag, raw := range tagged {
		switch tag {
		case "Box":
			s.Box = &BoxShape{}
			return json.Unmarshal(raw, s.Box)
		case "Cylinder":
			s.Cylinder = &CylinderShape{}
			return json.Unmarshal(raw, s.Cylinder)
		case "Capsule":
			s.Capsule = &CapsuleShape{}
			return json.Unmarshal(raw, s.Capsule)
		case "Sphere":
			s.Sphere = &SphereShape{}
			return json.Unmarshal(raw, s.Sphere)
		default:
			return fmt.Errorf("unknown primitive shape variant %q", tag)
		}
	}
	return nil
}

// AssetSourceKind names the place an asset is loaded from.
type AssetSourceKind string

const (
	// AssetLocal is a path on the local filesystem.
	AssetLocal AssetSourceKind = "Local"
	// AssetRemote is a URL fetched over the network.
	AssetRemote AssetSourceKind = "Remote"
	// AssetPackage is a ROS package-relative path, the target of
	// package:// URIs.
	AssetPackage AssetSourceKind = "Package"
	// AssetSearch resolves the asset by name through configured search
	// paths.
	AssetSearch AssetSourceKind = "Search"
)

// AssetSource points at external asset data such as a mesh file. The JSON
// form is externally tagged, e.g. {"Package": "my_bot/meshes/arm.dae"}.
type AssetSource struct {
	Kind AssetSourceKind
	Path string
}

// AssetSourceFromURDFFilename maps a URDF mesh filename to an asset
// source. package:// URIs become package assets, everything else is
// treated as a local path.
func AssetSourceFromURDFFilename(filename string) AssetSource {
	if path, ok := strings.CutPrefix(filename, "package://"); ok {
		return AssetSource{Kind: AssetPackage, Path: path}
	}
	return AssetSource{Kind: AssetLocal, Path: filename}
}

// URDFFilename renders the asset source as a URDF mesh filename.
func (a AssetSource) URDFFilename() string {
	if a.Kind == AssetPackage {
		return "package://" + a.Path
	}
	return a.Path
}

func (a AssetSource) MarshalJSON() ([]byte, error) {
	switch a.Kind {
	case AssetLocal, AssetRemote, AssetPackage, AssetSearch:
		return json.Marshal(map[AssetSourceKind]string{a.Kind: a.Path})
	default:
		return nil, fmt.Errorf("unknown asset source kind %q", a.Kind)
	}
}

func (a *AssetSource) UnmarshalJSON(data []byte) error {
	var tagged map[AssetSourceKind]string
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("asset source must be a tagged object: %w", err)
	}
	if len(tagged) != 1 {
		return fmt.Errorf("asset source must have exactly one variant, got %d keys", len(tagged))
	}
	for kind, path := range tagged {
		switch kind {
		case AssetLocal, AssetRemote, AssetPackage, AssetSearch:
			*a = AssetSource{Kind: kind, Path: path}
		default:
			return fmt.Errorf("unknown asset source variant %q", kind)
		}
	}
	return nil
}

// Mesh references external mesh geometry with an optional per-axis scale.
type Mesh struct {
	Source AssetSource `json:"source"`
	Scale  *[3]float32 `json:"scale,omitempty"`
}

// Geometry holds exactly one of a primitive shape or a mesh. The JSON form
// is externally tagged: {"Primitive": {...}} or {"Mesh": {...}}.
type Geometry struct {
	Primitive *PrimitiveShape
	Mesh      *Mesh
}

func (g Geometry) MarshalJSON() ([]byte, error) {
	switch {
	case g.Primitive != nil:
		return json.Marshal(map[string]*PrimitiveShape{"Primitive": g.Primitive})
	case g.Mesh != nil:
		return json.Marshal(map[string]*Mesh{"Mesh": g.Mesh})
	default:
		return nil, fmt.Errorf("geometry has no variant set")
	}
}

func (g *Geometry) UnmarshalJSON(data []byte) error {
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("geometry must be a tagged object: %w", err)
	}
	if len(tagged) != 1 {
		return fmt.Errorf("geometry must have exactly one variant, got %d keys", len(tagged))
	}
	*g = Geometry{}
	for tag, raw := range tagged {
		switch tag {
		case "Primitive":
			g.Primitive = &PrimitiveShape{}
			return json.Unmarshal(raw, g.Primitive)
		case "Mesh":
			g.Mesh = &Mesh{}
			return json.Unmarshal(raw, g.Mesh)
		default:
			return fmt.Errorf("unknown geometry variant %q", tag)
		}
	}
	return nil
}

// Model is a named piece of geometry placed at a pose, used for both
// visual and collision elements.
type Model struct {
	Name     string   `json:"name"`
	Geometry Geometry `json:"geometry"`
	Pose     Pose     `json:"pose"`
}
