package workcell

import (
	"fmt"
	"sort"
)

// Validate checks the referential integrity of the workcell hierarchy:
// element IDs must be unique, visuals, collisions and inertias must be
// parented to frames, joints must be parented to frames and have exactly
// one child frame, and every frame must hang off the root, a frame or a
// joint. The returned issues are ordered by element ID so output is
// stable.
func (w *Workcell) Validate() []error {
	var issues []error

	kindByID := map[uint32]string{w.ID: "root"}
	claim := func(id uint32, kind string) {
		if other, taken := kindByID[id]; taken {
			issues = append(issues, fmt.Errorf("duplicate id %d used by both %s and %s", id, other, kind))
			return
		}
		kindByID[id] = kind
	}
	for _, id := range sortedIDs(w.Frames) {
		claim(id, "frame")
	}
	for _, id := range sortedIDs(w.Visuals) {
		claim(id, "visual")
	}
	for _, id := range sortedIDs(w.Collisions) {
		claim(id, "collision")
	}
	for _, id := range sortedIDs(w.Inertias) {
		claim(id, "inertia")
	}
	for _, id := range sortedIDs(w.Joints) {
		claim(id, "joint")
	}

	requireFrameParent := func(kind string, id, parent uint32) {
		if _, ok := w.Frames[parent]; !ok {
			issues = append(issues, fmt.Errorf("%s %d is parented to %d which is not a frame", kind, id, parent))
		}
	}
	for _, id := range sortedIDs(w.Visuals) {
		requireFrameParent("visual", id, w.Visuals[id].Parent)
	}
	for _, id := range sortedIDs(w.Collisions) {
		requireFrameParent("collision", id, w.Collisions[id].Parent)
	}
	for _, id := range sortedIDs(w.Inertias) {
		requireFrameParent("inertia", id, w.Inertias[id].Parent)
	}

	childFrames := map[uint32]int{}
	for _, id := range sortedIDs(w.Frames) {
		parent := w.Frames[id].Parent
		if parent == w.ID {
			continue
		}
		if _, ok := w.Joints[parent]; ok {
			childFrames[parent]++
			continue
		}
		if _, ok := w.Frames[parent]; ok {
			continue
		}
		issues = append(issues, fmt.Errorf("frame %d (%s) is parented to unknown element %d",
			id, w.Frames[id].Bundle.Name, parent))
	}

	for _, id := range sortedIDs(w.Joints) {
		joint := w.Joints[id]
		requireFrameParent("joint", id, joint.Parent)
		switch joint.Bundle.Properties.Type {
		case JointFixed:
		case JointRevolute, JointPrismatic, JointContinuous:
			if joint.Bundle.Properties.Dof == nil {
				issues = append(issues, fmt.Errorf("joint %d (%s) is %s but has no axis or limits",
					id, joint.Bundle.Name, joint.Bundle.Properties.Label()))
			}
		default:
			issues = append(issues, fmt.Errorf("joint %d (%s) has unknown type %q",
				id, joint.Bundle.Name, joint.Bundle.Properties.Type))
		}
		if n := childFrames[id]; n != 1 {
			issues = append(issues, fmt.Errorf("joint %d (%s) must have exactly one child frame, found %d",
				id, joint.Bundle.Name, n))
		}
	}

	return issues
}

func sortedIDs[T any](m map[uint32]Parented[T]) []uint32 {
	ids := make([]uint32, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
