// Package workspace handles workcell files on disk: detecting what kind
// of document a path holds, loading it into the in-memory model, saving it
// back out, and watching it for edits.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/luca-della-vedova/rmf-workcell/pkg/logger"
	"github.com/luca-della-vedova/rmf-workcell/pkg/urdf"
	"github.com/luca-della-vedova/rmf-workcell/pkg/workcell"
)

var wsLog = logger.New("workspace:files")

// Kind is the kind of document a file holds, decided by its suffix.
type Kind int

const (
	KindUnknown Kind = iota
	KindWorkcellJSON
	KindWorkcellYAML
	KindURDF
)

func (k Kind) String() string {
	switch k {
	case KindWorkcellJSON:
		return "workcell (json)"
	case KindWorkcellYAML:
		return "workcell (yaml)"
	case KindURDF:
		return "urdf"
	default:
		return "unknown"
	}
}

// DetectKind classifies a path by its suffix. Workcell documents end in
// .workcell.json or .workcell.yaml, robot descriptions in .urdf.
func DetectKind(path string) Kind {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(name, ".workcell.json"):
		return KindWorkcellJSON
	case strings.HasSuffix(name, ".workcell.yaml"), strings.HasSuffix(name, ".workcell.yml"):
		return KindWorkcellYAML
	case strings.HasSuffix(name, ".urdf"):
		return KindURDF
	default:
		return KindUnknown
	}
}

// Load reads the file at path and converts it into a workcell, whatever
// its kind. URDF files are imported through the URDF converter.
func Load(path string) (*workcell.Workcell, Kind, error) {
	kind := DetectKind(path)
	if kind == KindUnknown {
		return nil, kind, fmt.Errorf("%s: unsupported file type, expected .workcell.json, .workcell.yaml or .urdf", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, kind, err
	}
	wsLog.Printf("loading %s as %s", path, kind)

	switch kind {
	case KindWorkcellJSON:
		w, err := workcell.FromBytes(data)
		if err != nil {
			return nil, kind, fmt.Errorf("%s: %w", path, err)
		}
		return w, kind, nil
	case KindWorkcellYAML:
		w, err := workcell.FromYAMLBytes(data)
		if err != nil {
			return nil, kind, fmt.Errorf("%s: %w", path, err)
		}
		return w, kind, nil
	default:
		robot, err := urdf.Parse(data)
		if err != nil {
			return nil, kind, fmt.Errorf("%s: %w", path, err)
		}
		w, err := workcell.FromURDF(robot)
		if err != nil {
			return nil, kind, fmt.Errorf("%s: %w", path, err)
		}
		return w, kind, nil
	}
}

// Save writes the workcell to path in the format implied by the path's
// suffix. Unknown suffixes default to the JSON workcell encoding.
func Save(w *workcell.Workcell, path string) error {
	return SaveAs(w, path, DetectKind(path))
}

// SaveAs writes the workcell to path in the given kind's encoding,
// regardless of what the path suffix says. KindUnknown falls back to the
// JSON workcell encoding.
func SaveAs(w *workcell.Workcell, path string, kind Kind) error {
	var data []byte
	var err error
	switch kind {
	case KindWorkcellYAML:
		data, err = w.EncodeYAML()
	case KindURDF:
		var rendered string
		rendered, err = w.ToURDFString()
		data = []byte(rendered)
	default:
		data, err = w.Encode()
	}
	if err != nil {
		return err
	}
	wsLog.Printf("saving %d bytes to %s", len(data), path)
	return os.WriteFile(path, data, 0644)
}

// DefaultExportPath derives the output path for a conversion when none is
// given, swapping the source suffix for the target kind's suffix.
func DefaultExportPath(input string, target Kind) string {
	base := strings.ToLower(filepath.Base(input))
	stem := input
	for _, suffix := range []string{".workcell.json", ".workcell.yaml", ".workcell.yml", ".urdf"} {
		if strings.HasSuffix(base, suffix) {
			stem = input[:len(input)-len(suffix)]
			break
		}
	}
	switch target {
	case KindWorkcellYAML:
		return stem + ".workcell.yaml"
	case KindURDF:
		return stem + ".urdf"
	default:
		return stem + ".workcell.json"
	}
}
