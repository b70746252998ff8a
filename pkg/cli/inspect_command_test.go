//go:build !integration

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luca-della-vedova/rmf-workcell/pkg/testutil"
	"github.com/luca-della-vedova/rmf-workcell/pkg/workcell"
)

func TestElementTree(t *testing.T) {
	w := testCell(t)
	w.Visuals[4] = workcell.Parented[workcell.Model]{Parent: 3, Bundle: workcell.Model{Name: "gripper_mesh"}}

	tree := elementTree(w)
	assert.Equal(t, "test_cell [root 0]", tree.Value)
	require.Len(t, tree.Children, 1)

	base := tree.Children[0]
	assert.Equal(t, "base [frame 1]", base.Value)
	require.Len(t, base.Children, 1)

	joint := base.Children[0]
	assert.Equal(t, "base_to_arm [Fixed joint 2]", joint.Value)
	require.Len(t, joint.Children, 1)

	arm := joint.Children[0]
	assert.Equal(t, "arm [frame 3]", arm.Value)
	require.Len(t, arm.Children, 1)
	assert.Equal(t, "gripper_mesh [visual 4]", arm.Children[0].Value)
}

func TestElementTreeSurvivesParentCycle(t *testing.T) {
	w := workcell.New("looped")
	w.Frames[1] = workcell.Parented[workcell.Frame]{Parent: 2, Bundle: workcell.Frame{Name: "a"}}
	w.Frames[2] = workcell.Parented[workcell.Frame]{Parent: 1, Bundle: workcell.Frame{Name: "b"}}

	// Neither frame reaches the root, so the tree is just the root. The
	// point is that building it terminates.
	tree := elementTree(w)
	assert.Empty(t, tree.Children)
}

func TestRunInspect(t *testing.T) {
	dir := testutil.TempDir(t, "inspect-*")
	path := writeTestCell(t, dir, "cell.workcell.json")

	require.NoError(t, RunInspect(path, false))
	require.NoError(t, RunInspect(path, true))

	urdfPath := writeTestCell(t, dir, "cell.urdf")
	require.NoError(t, RunInspect(urdfPath, false))

	require.Error(t, RunInspect(dir+"/missing.workcell.json", false))
}
