package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/luca-della-vedova/rmf-workcell/pkg/console"
	"github.com/luca-della-vedova/rmf-workcell/pkg/logger"
	"github.com/luca-della-vedova/rmf-workcell/pkg/workcell"
	"github.com/luca-della-vedova/rmf-workcell/pkg/workspace"
)

var fmtLog = logger.New("cli:fmt")

// NewFmtCommand creates the fmt command
func NewFmtCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt <files...>",
		Short: "Rewrite workcell documents in canonical form",
		Long: `Rewrite workcell documents in their canonical encoding: two-space
indented JSON or block-style YAML, with map keys in stable order.

With --check no file is written; the command instead exits with a nonzero
status when any file differs from its canonical form, which makes it
usable as a formatting gate in CI.

Examples:
  workcell fmt cell.workcell.json
  workcell fmt --check cells/*.workcell.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			check, _ := cmd.Flags().GetBool("check")
			return RunFmt(args, check)
		},
	}

	cmd.Flags().Bool("check", false, "Report unformatted files without rewriting them")

	return cmd
}

// RunFmt formats files in place, or reports drift when check is set.
func RunFmt(files []string, check bool) error {
	unformatted := 0
	for _, file := range files {
		changed, err := formatFile(file, check)
		if err != nil {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			return err
		}
		if !changed {
			continue
		}
		unformatted++
		if check {
			fmt.Fprintln(os.Stderr, console.FormatWarningMessage(fmt.Sprintf("%s is not in canonical form", console.ToRelativePath(file))))
		} else {
			fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(fmt.Sprintf("Formatted %s", console.ToRelativePath(file))))
		}
	}

	if check && unformatted > 0 {
		return fmt.Errorf("%d file(s) not in canonical form, run 'workcell fmt' to fix", unformatted)
	}
	if unformatted == 0 {
		fmt.Fprintln(os.Stderr, console.FormatInfoMessage(fmt.Sprintf("%d file(s) already canonical", len(files))))
	}
	return nil
}

// formatFile reports whether the file differs from its canonical
// encoding, rewriting it unless check is set.
func formatFile(file string, check bool) (bool, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return false, err
	}

	var canonical []byte
	switch workspace.DetectKind(file) {
	case workspace.KindWorkcellJSON:
		w, err := workcell.FromBytes(data)
		if err != nil {
			return false, fmt.Errorf("%s: %w", file, err)
		}
		canonical, err = w.Encode()
		if err != nil {
			return false, err
		}
	case workspace.KindWorkcellYAML:
		w, err := workcell.FromYAMLBytes(data)
		if err != nil {
			return false, fmt.Errorf("%s: %w", file, err)
		}
		canonical, err = w.EncodeYAML()
		if err != nil {
			return false, err
		}
	default:
		return false, fmt.Errorf("%s: only workcell documents can be formatted", file)
	}

	if bytes.Equal(data, canonical) {
		return false, nil
	}
	fmtLog.Printf("%s drifts from canonical form (%d -> %d bytes)", file, len(data), len(canonical))
	if check {
		return true, nil
	}
	return true, os.WriteFile(file, canonical, 0644)
}
