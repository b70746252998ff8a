package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/luca-della-vedova/rmf-workcell/pkg/console"
	"github.com/luca-della-vedova/rmf-workcell/pkg/logger"
	"github.com/luca-della-vedova/rmf-workcell/pkg/workcell"
	"github.com/luca-della-vedova/rmf-workcell/pkg/workspace"
)

var newLog = logger.New("cli:new")

// NewNewCommand creates the new command
func NewNewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new <file>",
		Short: "Create an empty workcell document",
		Long: `Create a new workcell document at the given path. The file suffix
selects the encoding (.workcell.json or .workcell.yaml) and the workcell
name defaults to the file stem.

With --interactive the name is asked for in a prompt instead.

Examples:
  workcell new assembly.workcell.json
  workcell new line3.workcell.yaml --name "Line 3"
  workcell new cell.workcell.json --interactive`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			interactive, _ := cmd.Flags().GetBool("interactive")
			force, _ := cmd.Flags().GetBool("force")
			return RunNew(args[0], name, interactive, force)
		},
	}

	cmd.Flags().String("name", "", "Workcell name (defaults to the file stem)")
	cmd.Flags().BoolP("interactive", "i", false, "Prompt for the workcell name")
	cmd.Flags().Bool("force", false, "Overwrite an existing file")

	return cmd
}

// RunNew writes an empty workcell document to path.
func RunNew(path, name string, interactive, force bool) error {
	kind := workspace.DetectKind(path)
	if kind != workspace.KindWorkcellJSON && kind != workspace.KindWorkcellYAML {
		err := fmt.Errorf("%s: new documents must end in .workcell.json or .workcell.yaml", path)
		stem := strings.TrimSuffix(path, filepath.Ext(path))
		fmt.Fprintln(os.Stderr, console.FormatErrorWithSuggestions(err.Error(), []string{
			fmt.Sprintf("workcell new %s.workcell.json", stem),
			fmt.Sprintf("workcell new %s.workcell.yaml", stem),
		}))
		return err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			err := fmt.Errorf("%s already exists, pass --force to overwrite", path)
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			return err
		}
	}

	if name == "" {
		name = workcellNameFromPath(path)
	}

	if interactive {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Workcell name:").
					Description("A short human readable name for this workcell.").
					Value(&name).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return fmt.Errorf("the name cannot be empty")
						}
						return nil
					}),
			),
		).WithAccessible(console.IsAccessibleMode())

		if err := form.Run(); err != nil {
			return fmt.Errorf("failed to read workcell name: %w", err)
		}
	}

	newLog.Printf("creating %s (name=%q)", path, name)
	if err := workspace.Save(workcell.New(name), path); err != nil {
		fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
		return err
	}
	fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(fmt.Sprintf("Created %s", console.ToRelativePath(path))))
	fmt.Fprintln(os.Stderr, "Check it at any point with:")
	fmt.Fprintln(os.Stderr, console.FormatCommandMessage(fmt.Sprintf("  workcell validate %s", console.ToRelativePath(path))))
	return nil
}

// workcellNameFromPath derives a name from the file stem, so
// "cells/line3.workcell.json" becomes "line3".
func workcellNameFromPath(path string) string {
	base := filepath.Base(path)
	for _, suffix := range []string{".workcell.json", ".workcell.yaml", ".workcell.yml"} {
		if strings.HasSuffix(strings.ToLower(base), suffix) {
			return base[:len(base)-len(suffix)]
		}
	}
	return base
}
