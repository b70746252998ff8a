//go:build !integration

package workcell

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeometryJSONVariants(t *testing.T) {
	tests := []struct {
		name     string
		geometry Geometry
		want     string
	}{
		{
			"box",
			Geometry{Primitive: &PrimitiveShape{Box: &BoxShape{Size: [3]float32{1, 2, 3}}}},
			`{"Primitive":{"Box":{"size":[1,2,3]}}}`,
		},
		{
			"cylinder",
			Geometry{Primitive: &PrimitiveShape{Cylinder: &CylinderShape{Radius: 0.5, Length: 2}}},
			`{"Primitive":{"Cylinder":{"radius":0.5,"length":2}}}`,
		},
		{
			"sphere",
			Geometry{Primitive: &PrimitiveShape{Sphere: &SphereShape{Radius: 0.25}}},
			`{"Primitive":{"Sphere":{"radius":0.25}}}`,
		},
		{
			"mesh without scale",
			Geometry{Mesh: &Mesh{Source: AssetSource{Kind: AssetPackage, Path: "bot/arm.dae"}}},
			`{"Mesh":{"source":{"Package":"bot/arm.dae"}}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.geometry)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))

			var parsed Geometry
			require.NoError(t, json.Unmarshal(data, &parsed))
			reencoded, err := json.Marshal(parsed)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(reencoded))
		})
	}
}

func TestGeometryMeshScale(t *testing.T) {
	scale := [3]float32{0.001, 0.001, 0.001}
	geometry := Geometry{Mesh: &Mesh{
		Source: AssetSource{Kind: AssetLocal, Path: "arm.stl"},
		Scale:  &scale,
	}}
	data, err := json.Marshal(geometry)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"scale":[0.001,0.001,0.001]`)

	var parsed Geometry
	require.NoError(t, json.Unmarshal(data, &parsed))
	require.NotNil(t, parsed.Mesh)
	require.NotNil(t, parsed.Mesh.Scale)
	assert.Equal(t, scale, *parsed.Mesh.Scale)
}

func TestGeometryRejectsUnknownVariants(t *testing.T) {
	var g Geometry
	err := json.Unmarshal([]byte(`{"Plane":{"normal":[0,0,1]}}`), &g)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown geometry variant")

	var p PrimitiveShape
	err = json.Unmarshal([]byte(`{"Cone":{"radius":1}}`), &p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown primitive shape variant")
}

func TestGeometryEmptyMarshalFails(t *testing.T) {
	_, err := json.Marshal(Geometry{})
	require.Error(t, err)
}

func TestPrimitiveShapeLabel(t *testing.T) {
	assert.Equal(t, "Box", PrimitiveShape{Box: &BoxShape{}}.Label())
	assert.Equal(t, "Sphere", PrimitiveShape{Sphere: &SphereShape{}}.Label())
	assert.Equal(t, "Empty", PrimitiveShape{}.Label())
}

func TestAssetSourceJSON(t *testing.T) {
	tests := []struct {
		source AssetSource
		want   string
	}{
		{AssetSource{Kind: AssetLocal, Path: "meshes/arm.dae"}, `{"Local":"meshes/arm.dae"}`},
		{AssetSource{Kind: AssetRemote, Path: "https://example.com/arm.dae"}, `{"Remote":"https://example.com/arm.dae"}`},
		{AssetSource{Kind: AssetPackage, Path: "bot/arm.dae"}, `{"Package":"bot/arm.dae"}`},
		{AssetSource{Kind: AssetSearch, Path: "bot/arm"}, `{"Search":"bot/arm"}`},
	}
	for _, tt := range tests {
		t.Run(string(tt.source.Kind), func(t *testing.T) {
			data, err := json.Marshal(tt.source)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))

			var parsed AssetSource
			require.NoError(t, json.Unmarshal(data, &parsed))
			assert.Equal(t, tt.source, parsed)
		})
	}

	var bad AssetSource
	err := json.Unmarshal([]byte(`{"Bundled":"x"}`), &bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown asset source variant")
}
