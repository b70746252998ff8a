package workcell

// Mass is a mass in kilograms. It serializes as a bare number.
type Mass float32

// Moment is the 3x3 moment of inertia matrix in its unique components.
type Moment struct {
	Ixx float32 `json:"ixx"`
	Ixy float32 `json:"ixy"`
	Ixz float32 `json:"ixz"`
	Iyy float32 `json:"iyy"`
	Iyz float32 `json:"iyz"`
	Izz float32 `json:"izz"`
}

// Inertia is the inertial description of a rigid body: the pose of its
// center of mass, its mass and its moment of inertia.
type Inertia struct {
	Center Pose   `json:"center"`
	Mass   Mass   `json:"mass"`
	Moment Moment `json:"moment"`
}
