package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/luca-della-vedova/rmf-workcell/pkg/console"
	"github.com/luca-della-vedova/rmf-workcell/pkg/logger"
	"github.com/luca-della-vedova/rmf-workcell/pkg/workcell"
	"github.com/luca-della-vedova/rmf-workcell/pkg/workspace"
)

var inspectLog = logger.New("cli:inspect")

// WorkcellSummary is the machine readable output of inspect.
type WorkcellSummary struct {
	File       string `json:"file"`
	Kind       string `json:"kind"`
	Name       string `json:"name"`
	Frames     int    `json:"frames"`
	Joints     int    `json:"joints"`
	Visuals    int    `json:"visuals"`
	Collisions int    `json:"collisions"`
	Inertias   int    `json:"inertias"`
}

// NewInspectCommand creates the inspect command
func NewInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show the element tree of a workcell or URDF file",
		Long: `Show a summary and the element tree of a workcell document. URDF files
are imported first, so the tree reflects how the robot description maps
onto workcell elements.

Frames nest under their parents, joints under the frame they attach to,
and each joint shows the frame it drives.

Examples:
  workcell inspect cell.workcell.json
  workcell inspect robot.urdf
  workcell inspect cell.workcell.json --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			return RunInspect(args[0], jsonFlag)
		},
	}

	addJSONFlag(cmd)

	return cmd
}

// RunInspect prints a summary and the element tree of one file.
func RunInspect(path string, jsonOutput bool) error {
	w, kind, err := workspace.Load(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
		return err
	}
	inspectLog.Printf("inspecting %s (%d frames, %d joints)", path, len(w.Frames), len(w.Joints))

	summary := WorkcellSummary{
		File:       path,
		Kind:       kind.String(),
		Name:       w.Name,
		Frames:     len(w.Frames),
		Joints:     len(w.Joints),
		Visuals:    len(w.Visuals),
		Collisions: len(w.Collisions),
		Inertias:   len(w.Inertias),
	}

	if jsonOutput {
		out, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	table := console.RenderTable(console.TableConfig{
		Headers: []string{"Frames", "Joints", "Visuals", "Collisions", "Inertias"},
		Rows: [][]string{{
			fmt.Sprintf("%d", summary.Frames),
			fmt.Sprintf("%d", summary.Joints),
			fmt.Sprintf("%d", summary.Visuals),
			fmt.Sprintf("%d", summary.Collisions),
			fmt.Sprintf("%d", summary.Inertias),
		}},
	})
	console.RenderComposedSections(
		console.LayoutTitleBox(summary.Name, 60),
		console.FormatLocationMessage(console.ToRelativePath(summary.File)),
		console.LayoutInfoSection("Kind", summary.Kind),
		table,
	)

	fmt.Print(console.RenderTree(elementTree(w)))
	return nil
}

// elementTree lays the workcell out as a tree rooted at the workcell
// itself, with frames under their parents and attachments under frames.
func elementTree(w *workcell.Workcell) console.TreeNode {
	root := console.TreeNode{Value: fmt.Sprintf("%s [root %d]", w.Name, w.ID)}
	root.Children = frameNodes(w, w.ID, map[uint32]bool{})
	return root
}

// seen guards against parent cycles in documents that never went through
// validation.
func frameNodes(w *workcell.Workcell, parent uint32, seen map[uint32]bool) []console.TreeNode {
	var nodes []console.TreeNode
	for _, id := range sortedElementIDs(w.Frames) {
		if w.Frames[id].Parent != parent || seen[id] {
			continue
		}
		seen[id] = true
		nodes = append(nodes, frameNode(w, id, seen))
	}
	return nodes
}

func frameNode(w *workcell.Workcell, id uint32, seen map[uint32]bool) console.TreeNode {
	node := console.TreeNode{Value: fmt.Sprintf("%s [frame %d]", w.Frames[id].Bundle.Name, id)}

	for _, vid := range sortedElementIDs(w.Visuals) {
		if w.Visuals[vid].Parent == id {
			node.Children = append(node.Children, console.TreeNode{
				Value: fmt.Sprintf("%s [visual %d]", w.Visuals[vid].Bundle.Name, vid),
			})
		}
	}
	for _, cid := range sortedElementIDs(w.Collisions) {
		if w.Collisions[cid].Parent == id {
			node.Children = append(node.Children, console.TreeNode{
				Value: fmt.Sprintf("%s [collision %d]", w.Collisions[cid].Bundle.Name, cid),
			})
		}
	}
	for _, iid := range sortedElementIDs(w.Inertias) {
		if w.Inertias[iid].Parent == id {
			node.Children = append(node.Children, console.TreeNode{
				Value: fmt.Sprintf("mass %v [inertia %d]", w.Inertias[iid].Bundle.Mass, iid),
			})
		}
	}
	for _, jid := range sortedElementIDs(w.Joints) {
		if w.Joints[jid].Parent != id {
			continue
		}
		joint := w.Joints[jid].Bundle
		jointNode := console.TreeNode{
			Value: fmt.Sprintf("%s [%s joint %d]", joint.Name, joint.Properties.Label(), jid),
		}
		// The joint's child frames hang off the joint, not the frame.
		jointNode.Children = frameNodes(w, jid, seen)
		node.Children = append(node.Children, jointNode)
	}

	// Frames directly parented to this frame, without a joint between.
	node.Children = append(node.Children, frameNodes(w, id, seen)...)

	return node
}

func sortedElementIDs[T any](m map[uint32]workcell.Parented[T]) []uint32 {
	ids := make([]uint32, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
