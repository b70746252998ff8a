// Package workcell implements the RMF workcell description format: a JSON
// (or YAML) document holding a tree of frames with attached visuals,
// collisions, inertias and joints, convertible to and from URDF.
package workcell

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/luca-della-vedova/rmf-workcell/pkg/logger"
)

var wcLog = logger.New("workcell:document")

// Format version written by this package.
const (
	CurrentMajorVersion = 0
	CurrentMinorVersion = 1
)

// Parented pairs an element with the ID of its parent in the workcell
// hierarchy. In JSON the element's fields are flattened next to the
// parent key: {"parent": 0, "name": "base", ...}.
type Parented[T any] struct {
	Parent uint32
	Bundle T
}

func (p Parented[T]) MarshalJSON() ([]byte, error) {
	bundle, err := json.Marshal(p.Bundle)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(bundle, &fields); err != nil {
		return nil, fmt.Errorf("parented element must flatten to an object: %w", err)
	}
	parent, err := json.Marshal(p.Parent)
	if err != nil {
		return nil, err
	}
	fields["parent"] = parent
	return json.Marshal(fields)
}

func (p *Parented[T]) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	parent, ok := fields["parent"]
	if !ok {
		return fmt.Errorf("element is missing its parent field")
	}
	if err := json.Unmarshal(parent, &p.Parent); err != nil {
		return fmt.Errorf("invalid parent field: %w", err)
	}
	delete(fields, "parent")
	bundle, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	return json.Unmarshal(bundle, &p.Bundle)
}

// Frame is a named coordinate frame anchored at a pose. In JSON the
// anchor is flattened next to the name: {"Pose3D": {...}, "name": "base"}.
type Frame struct {
	Anchor Anchor
	Name   string
}

func (f Frame) MarshalJSON() ([]byte, error) {
	anchor, err := json.Marshal(f.Anchor)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(anchor, &fields); err != nil {
		return nil, err
	}
	name, err := json.Marshal(f.Name)
	if err != nil {
		return nil, err
	}
	fields["name"] = name
	return json.Marshal(fields)
}

func (f *Frame) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if name, ok := fields["name"]; ok {
		if err := json.Unmarshal(name, &f.Name); err != nil {
			return fmt.Errorf("invalid frame name: %w", err)
		}
		delete(fields, "name")
	}
	anchor, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	return json.Unmarshal(anchor, &f.Anchor)
}

// Workcell is a complete workcell description. Element IDs key the maps
// and parent references knit them into a tree rooted at ID.
type Workcell struct {
	// Name of the workcell, flattened to the top level in JSON.
	Name string
	// ID of the root, which every top level frame uses as its parent.
	ID uint32
	// Frames keyed by ID.
	Frames map[uint32]Parented[Frame]
	// Visuals keyed by ID, parented to frames.
	Visuals map[uint32]Parented[Model]
	// Collisions keyed by ID, parented to frames.
	Collisions map[uint32]Parented[Model]
	// Inertias keyed by ID, parented to frames.
	Inertias map[uint32]Parented[Inertia]
	// Joints keyed by ID. A joint's parent is a frame and exactly one
	// frame must name the joint as its parent.
	Joints map[uint32]Parented[Joint]
}

// New creates an empty workcell with the given name and all element maps
// allocated.
func New(name string) *Workcell {
	return &Workcell{
		Name:       name,
		Frames:     map[uint32]Parented[Frame]{},
		Visuals:    map[uint32]Parented[Model]{},
		Collisions: map[uint32]Parented[Model]{},
		Inertias:   map[uint32]Parented[Inertia]{},
		Joints:     map[uint32]Parented[Joint]{},
	}
}

type workcellJSON struct {
	Name       string                       `json:"name"`
	ID         uint32                       `json:"id"`
	Frames     map[uint32]Parented[Frame]   `json:"frames"`
	Visuals    map[uint32]Parented[Model]   `json:"visuals"`
	Collisions map[uint32]Parented[Model]   `json:"collisions"`
	Inertias   map[uint32]Parented[Inertia] `json:"inertias"`
	Joints     map[uint32]Parented[Joint]   `json:"joints"`
}

func (w Workcell) MarshalJSON() ([]byte, error) {
	doc := workcellJSON{
		Name:       w.Name,
		ID:         w.ID,
		Frames:     w.Frames,
		Visuals:    w.Visuals,
		Collisions: w.Collisions,
		Inertias:   w.Inertias,
		Joints:     w.Joints,
	}
	// Empty maps serialize as {} rather than null.
	if doc.Frames == nil {
		doc.Frames = map[uint32]Parented[Frame]{}
	}
	if doc.Visuals == nil {
		doc.Visuals = map[uint32]Parented[Model]{}
	}
	if doc.Collisions == nil {
		doc.Collisions = map[uint32]Parented[Model]{}
	}
	if doc.Inertias == nil {
		doc.Inertias = map[uint32]Parented[Inertia]{}
	}
	if doc.Joints == nil {
		doc.Joints = map[uint32]Parented[Joint]{}
	}
	return json.Marshal(doc)
}

func (w *Workcell) UnmarshalJSON(data []byte) error {
	var doc workcellJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*w = Workcell{
		Name:       doc.Name,
		ID:         doc.ID,
		Frames:     doc.Frames,
		Visuals:    doc.Visuals,
		Collisions: doc.Collisions,
		Inertias:   doc.Inertias,
		Joints:     doc.Joints,
	}
	return nil
}

// FromBytes parses a workcell from its JSON encoding.
func FromBytes(data []byte) (*Workcell, error) {
	w := &Workcell{}
	if err := json.Unmarshal(data, w); err != nil {
		return nil, err
	}
	wcLog.Printf("parsed workcell %q with %d frames", w.Name, len(w.Frames))
	return w, nil
}

// FromReader parses a workcell from JSON read off r.
func FromReader(r io.Reader) (*Workcell, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return FromBytes(data)
}

// FromYAMLBytes parses a workcell from its YAML encoding. The document is
// bridged through JSON so both encodings share one set of rules.
func FromYAMLBytes(data []byte) (*Workcell, error) {
	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, err
	}
	return FromBytes(jsonData)
}

// Encode renders the workcell as pretty printed JSON.
func (w *Workcell) Encode() ([]byte, error) {
	return json.MarshalIndent(w, "", "  ")
}

// EncodeYAML renders the workcell as YAML.
func (w *Workcell) EncodeYAML() ([]byte, error) {
	jsonData, err := json.Marshal(w)
	if err != nil {
		return nil, err
	}
	return yaml.JSONToYAML(jsonData)
}

// EncodeTo writes the workcell as pretty printed JSON.
func (w *Workcell) EncodeTo(wr io.Writer) error {
	data, err := w.Encode()
	if err != nil {
		return err
	}
	_, err = wr.Write(data)
	return err
}

// ReadFile loads a workcell from a JSON file on disk.
func ReadFile(path string) (*Workcell, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromBytes(data)
}
