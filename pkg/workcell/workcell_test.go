//go:build !integration

package workcell

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleWorkcell() *Workcell {
	w := New("demo_cell")
	w.Frames[1] = Parented[Frame]{
		Parent: w.ID,
		Bundle: Frame{
			Anchor: Anchor{Pose: Pose{Trans: [3]float32{0, 0, 0.1}, Rot: Yaw(Deg(90))}},
			Name:   "base",
		},
	}
	w.Frames[2] = Parented[Frame]{
		Parent: 3,
		Bundle: Frame{
			Anchor: Anchor{Pose: Pose{Trans: [3]float32{0.5, 0, 0}}},
			Name:   "arm",
		},
	}
	w.Joints[3] = Parented[Joint]{
		Parent: 1,
		Bundle: Joint{
			Name: "base_to_arm",
			Properties: JointProperties{
				Type: JointRevolute,
				Dof: &SingleDofJoint{
					Limits: JointLimits{
						Position: SymmetricLimits(1.57),
						Effort:   SymmetricLimits(10),
						Velocity: SymmetricLimits(2),
					},
					Axis: JointAxis{0, 0, 1},
				},
			},
		},
	}
	w.Visuals[4] = Parented[Model]{
		Parent: 1,
		Bundle: Model{
			Name:     "base_visual",
			Geometry: Geometry{Primitive: &PrimitiveShape{Box: &BoxShape{Size: [3]float32{1, 1, 0.2}}}},
		},
	}
	w.Inertias[5] = Parented[Inertia]{
		Parent: 1,
		Bundle: Inertia{Mass: 10, Moment: Moment{Ixx: 1, Iyy: 1, Izz: 1}},
	}
	return w
}

func TestWorkcellJSONRoundTrip(t *testing.T) {
	w := sampleWorkcell()
	data, err := w.Encode()
	require.NoError(t, err)

	parsed, err := FromBytes(data)
	require.NoError(t, err)
	assert.Equal(t, "demo_cell", parsed.Name)
	assert.Equal(t, uint32(0), parsed.ID)
	require.Len(t, parsed.Frames, 2)
	require.Len(t, parsed.Joints, 1)
	require.Len(t, parsed.Visuals, 1)
	require.Len(t, parsed.Inertias, 1)

	base := parsed.Frames[1]
	assert.Equal(t, uint32(0), base.Parent)
	assert.Equal(t, "base", base.Bundle.Name)
	assert.True(t, base.Bundle.Anchor.IsClose(w.Frames[1].Bundle.Anchor, 1e-6))

	joint := parsed.Joints[3]
	assert.Equal(t, uint32(1), joint.Parent)
	assert.Equal(t, JointRevolute, joint.Bundle.Properties.Type)
	require.NotNil(t, joint.Bundle.Properties.Dof)
	assert.Equal(t, JointAxis{0, 0, 1}, joint.Bundle.Properties.Dof.Axis)
}

func TestWorkcellJSONShape(t *testing.T) {
	w := sampleWorkcell()
	data, err := json.Marshal(w)
	require.NoError(t, err)
	text := string(data)

	// Properties flatten to the top level and anchors flatten into frames.
	assert.Contains(t, text, `"name":"demo_cell"`)
	assert.Contains(t, text, `"id":0`)
	assert.Contains(t, text, `"Pose3D"`)
	assert.Contains(t, text, `"parent":0`)
	assert.Contains(t, text, `"Yaw":{"Deg":90}`)
	assert.Contains(t, text, `"Revolute"`)
	assert.Contains(t, text, `"Symmetric":1.57`)
	assert.Contains(t, text, `"Box":{"size":[1,1,0.2]}`)
	// Empty element maps stay as objects.
	assert.Contains(t, text, `"collisions":{}`)
	assert.NotContains(t, text, "null")
}

func TestWorkcellEmptyMapsEncodeAsObjects(t *testing.T) {
	w := &Workcell{Name: "empty"}
	data, err := json.Marshal(w)
	require.NoError(t, err)
	for _, key := range []string{"frames", "visuals", "collisions", "inertias", "joints"} {
		assert.Contains(t, string(data), `"`+key+`":{}`)
	}
}

func TestWorkcellYAMLRoundTrip(t *testing.T) {
	w := sampleWorkcell()
	data, err := w.EncodeYAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: demo_cell")

	parsed, err := FromYAMLBytes(data)
	require.NoError(t, err)
	assert.Equal(t, "demo_cell", parsed.Name)
	require.Len(t, parsed.Frames, 2)
	assert.Equal(t, "base", parsed.Frames[1].Bundle.Name)
	require.Len(t, parsed.Joints, 1)
	assert.Equal(t, JointRevolute, parsed.Joints[3].Bundle.Properties.Type)
}

func TestFromBytesRejectsMalformedDocuments(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "not json",
			input:   "not a document",
			wantErr: "invalid character",
		},
		{
			name:    "frame without parent",
			input:   `{"name":"x","id":0,"frames":{"1":{"Pose3D":{"trans":[0,0,0],"rot":{"Yaw":{"Deg":0}}},"name":"base"}},"visuals":{},"collisions":{},"inertias":{},"joints":{}}`,
			wantErr: "missing its parent field",
		},
		{
			name:    "anchor of the wrong kind",
			input:   `{"name":"x","id":0,"frames":{"1":{"parent":0,"Translate2D":[0,0],"name":"base"}},"visuals":{},"collisions":{},"inertias":{},"joints":{}}`,
			wantErr: "unsupported anchor type",
		},
		{
			name:    "unknown joint variant",
			input:   `{"name":"x","id":0,"frames":{},"visuals":{},"collisions":{},"inertias":{},"joints":{"1":{"parent":0,"name":"j","properties":"Floating"}}}`,
			wantErr: "unknown joint properties variant",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromBytes([]byte(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEncodeIsPrettyPrinted(t *testing.T) {
	w := sampleWorkcell()
	data, err := w.Encode()
	require.NoError(t, err)
	lines := strings.Split(string(data), "\n")
	assert.Greater(t, len(lines), 5)
	assert.Contains(t, lines[0], "{")
}

func TestEncodeToMatchesEncode(t *testing.T) {
	w := sampleWorkcell()
	var sb strings.Builder
	require.NoError(t, w.EncodeTo(&sb))
	encoded, err := w.Encode()
	require.NoError(t, err)
	assert.Equal(t, string(encoded), sb.String())
}
