package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/luca-della-vedova/rmf-workcell/pkg/console"
	"github.com/luca-della-vedova/rmf-workcell/pkg/logger"
	"github.com/luca-della-vedova/rmf-workcell/pkg/workspace"
)

var listLog = logger.New("cli:list")

// WorkcellListItem represents a single file for list output
type WorkcellListItem struct {
	File   string
	Kind   string
	Name   string
	Frames int
	Joints int
	Status string
	err    error
}

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [directory]",
		Short: "List workcell and URDF files under a directory",
		Long: `List workcell documents and URDF files under a directory, recursively.

Each file is loaded to report its workcell name and element counts.
Files that fail to load are listed with an invalid status instead of
aborting the listing.

Examples:
  workcell list                   # List files under the current directory
  workcell list cells/            # List files under cells/
  workcell list --json            # Output in JSON format`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			jsonFlag, _ := cmd.Flags().GetBool("json")
			return RunList(dir, jsonFlag)
		},
	}

	addJSONFlag(cmd)

	return cmd
}

// RunList scans dir for workcell and URDF files and lists them.
func RunList(dir string, jsonOutput bool) error {
	files, err := findWorkcellFiles(dir)
	if err != nil {
		fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
		return err
	}
	listLog.Printf("found %d candidate files under %s", len(files), dir)

	items := make([]WorkcellListItem, 0, len(files))
	for _, file := range files {
		item := WorkcellListItem{
			File: console.ToRelativePath(file),
			Kind: workspace.DetectKind(file).String(),
		}
		if w, _, err := workspace.Load(file); err != nil {
			item.Status = "invalid"
			item.err = err
			listLog.Printf("%s failed to load: %v", file, err)
		} else {
			item.Status = "ok"
			item.Name = w.Name
			item.Frames = len(w.Frames)
			item.Joints = len(w.Joints)
		}
		items = append(items, item)
	}

	if jsonOutput {
		out, err := console.RenderTableAsJSON(listTableConfig(items))
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(out)
		return nil
	}

	if len(items) == 0 {
		fmt.Fprintln(os.Stderr, console.FormatInfoMessage("No workcell or URDF files found."))
		return nil
	}

	if len(items) == 1 {
		fmt.Fprintln(os.Stderr, console.FormatSuccessMessage("Found 1 file"))
	} else {
		fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(fmt.Sprintf("Found %d files", len(items))))
	}

	fmt.Fprint(os.Stderr, console.RenderTable(listTableConfig(items)))
	for _, item := range items {
		if item.err != nil {
			fmt.Fprintln(os.Stderr, console.FormatVerboseMessage(fmt.Sprintf("%s: %v", item.File, item.err)))
		}
	}

	return nil
}

// listTableConfig lays the items out as rows under a fixed header set,
// shared by the table and JSON renderings.
func listTableConfig(items []WorkcellListItem) console.TableConfig {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			item.File,
			item.Kind,
			item.Name,
			fmt.Sprintf("%d", item.Frames),
			fmt.Sprintf("%d", item.Joints),
			item.Status,
		})
	}
	return console.TableConfig{
		Headers: []string{"File", "Kind", "Name", "Frames", "Joints", "Status"},
		Rows:    rows,
	}
}

// findWorkcellFiles walks dir collecting files the workspace recognizes,
// skipping hidden directories.
func findWorkcellFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if workspace.DetectKind(path) != workspace.KindUnknown {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
