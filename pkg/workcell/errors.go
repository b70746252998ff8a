package workcell

import "fmt"

// BrokenJointReferenceError reports a URDF joint that names a link which
// does not exist in the document.
type BrokenJointReferenceError struct {
	Link string
}

func (e *BrokenJointReferenceError) Error() string {
	return fmt.Sprintf("a joint refers to a non existing link [%s]", e.Link)
}

// UnsupportedJointTypeError reports a URDF joint type the workcell format
// cannot represent, such as planar or floating joints.
type UnsupportedJointTypeError struct {
	Type string
}

func (e *UnsupportedJointTypeError) Error() string {
	return fmt.Sprintf("unsupported joint type found [%s]", e.Type)
}

// BrokenReferenceError reports an element whose parent or child ID does
// not resolve to anything in the workcell.
type BrokenReferenceError struct {
	ID uint32
}

func (e *BrokenReferenceError) Error() string {
	return fmt.Sprintf("broken reference: %d", e.ID)
}
