//go:build !integration

package workcell

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float32Ptr(v float32) *float32 { return &v }

func TestRangeLimitsJSON(t *testing.T) {
	tests := []struct {
		name   string
		limits RangeLimits
		want   string
	}{
		{"none", NoLimits(), `"None"`},
		{"symmetric", SymmetricLimits(1.5), `{"Symmetric":1.5}`},
		{"asymmetric", AsymmetricLimits(float32Ptr(-1), float32Ptr(2)), `{"Asymmetric":{"lower":-1,"upper":2}}`},
		{"asymmetric open", AsymmetricLimits(nil, float32Ptr(2)), `{"Asymmetric":{"lower":null,"upper":2}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.limits)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))

			var parsed RangeLimits
			require.NoError(t, json.Unmarshal(data, &parsed))
			wantLower, wantUpper := tt.limits.Bounds()
			gotLower, gotUpper := parsed.Bounds()
			assert.Equal(t, wantLower == nil, gotLower == nil)
			assert.Equal(t, wantUpper == nil, gotUpper == nil)
			if wantLower != nil {
				assert.InDelta(t, float64(*wantLower), float64(*gotLower), 1e-6)
			}
			if wantUpper != nil {
				assert.InDelta(t, float64(*wantUpper), float64(*gotUpper), 1e-6)
			}
		})
	}

	var bad RangeLimits
	err := json.Unmarshal([]byte(`"Unbounded"`), &bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown range limits variant")
}

func TestRangeLimitsBounds(t *testing.T) {
	lower, upper := NoLimits().Bounds()
	assert.Nil(t, lower)
	assert.Nil(t, upper)

	lower, upper = SymmetricLimits(3).Bounds()
	require.NotNil(t, lower)
	require.NotNil(t, upper)
	assert.Equal(t, float32(3), *lower)
	assert.Equal(t, float32(3), *upper)
}

func TestJointPropertiesJSON(t *testing.T) {
	dof := &SingleDofJoint{
		Limits: JointLimits{
			Position: SymmetricLimits(1),
			Effort:   SymmetricLimits(10),
			Velocity: SymmetricLimits(2),
		},
		Axis: JointAxis{0, 0, 1},
	}
	tests := []struct {
		name       string
		properties JointProperties
		contains   string
	}{
		{"fixed", FixedJoint(), `"Fixed"`},
		{"revolute", JointProperties{Type: JointRevolute, Dof: dof}, `{"Revolute":{`},
		{"prismatic", JointProperties{Type: JointPrismatic, Dof: dof}, `{"Prismatic":{`},
		{"continuous", JointProperties{Type: JointContinuous, Dof: dof}, `{"Continuous":{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.properties)
			require.NoError(t, err)
			assert.Contains(t, string(data), tt.contains)

			var parsed JointProperties
			require.NoError(t, json.Unmarshal(data, &parsed))
			assert.Equal(t, tt.properties.Type, parsed.Type)
			if tt.properties.Dof != nil {
				require.NotNil(t, parsed.Dof)
				assert.Equal(t, tt.properties.Dof.Axis, parsed.Dof.Axis)
			}
		})
	}
}

func TestJointPropertiesLabel(t *testing.T) {
	assert.Equal(t, "Fixed", FixedJoint().Label())
	assert.Equal(t, "Revolute", JointProperties{Type: JointRevolute}.Label())
}

func TestJointPropertiesRejectsMissingDof(t *testing.T) {
	_, err := json.Marshal(JointProperties{Type: JointRevolute})
	require.Error(t, err)
}
