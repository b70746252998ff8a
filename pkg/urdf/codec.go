package urdf

import (
	"encoding/xml"
	"fmt"
	"os"

	"github.com/luca-della-vedova/rmf-workcell/pkg/logger"
)

var codecLog = logger.New("urdf:codec")

// Parse decodes a URDF document.
func Parse(data []byte) (*Robot, error) {
	robot := &Robot{}
	if err := xml.Unmarshal(data, robot); err != nil {
		return nil, fmt.Errorf("invalid urdf: %w", err)
	}
	if robot.Name == "" {
		return nil, fmt.Errorf("invalid urdf: robot element has no name attribute")
	}
	codecLog.Printf("parsed robot %q with %d links and %d joints",
		robot.Name, len(robot.Links), len(robot.Joints))
	return robot, nil
}

// ParseString decodes a URDF document from a string.
func ParseString(s string) (*Robot, error) {
	return Parse([]byte(s))
}

// ReadFile loads and decodes a URDF file.
func ReadFile(path string) (*Robot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	robot, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return robot, nil
}

// WriteString encodes the robot as an indented XML document.
func WriteString(robot *Robot) (string, error) {
	data, err := xml.MarshalIndent(robot, "", "  ")
	if err != nil {
		return "", err
	}
	return xml.Header + string(data) + "\n", nil
}
