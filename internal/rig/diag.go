package rig

import "fmt"

// DiagCode classifies a non-fatal anomaly met during rig construction.
type DiagCode string

const (
	// MissingLandmarkData: a joint could not be resolved from reference
	// vertices, or a name required by a derived rule (shoulders) was absent.
	MissingLandmarkData DiagCode = "missing_landmark_data"
	// MissingJointPosition: a tree joint has no resolved position; its bone
	// was created at identity.
	MissingJointPosition DiagCode = "missing_joint_position"
)

// Diagnostic is a warning collected during construction. Diagnostics never
// abort a build; batch runs over many meshes inspect them afterwards.
type Diagnostic struct {
	Code  DiagCode
	Joint string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Code, d.Joint)
}
