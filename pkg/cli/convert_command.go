package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/luca-della-vedova/rmf-workcell/pkg/console"
	"github.com/luca-della-vedova/rmf-workcell/pkg/logger"
	"github.com/luca-della-vedova/rmf-workcell/pkg/workspace"
)

var convertLog = logger.New("cli:convert")

// NewConvertCommand creates the convert command
func NewConvertCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert between workcell and URDF formats",
		Long: `Convert a workcell document to URDF, or import a URDF robot description
into a workcell document.

The output format is taken from --format, from the --output suffix, or
defaults to the opposite of the input: workcell files convert to URDF and
URDF files convert to workcell JSON.

With --watch the input file is re-converted every time it changes on
disk, which pairs well with an editor on one side and a simulator
reloading the output on the other.

Examples:
  workcell convert cell.workcell.json                    # Write cell.urdf
  workcell convert robot.urdf -o robot.workcell.yaml     # Import URDF as YAML
  workcell convert cell.workcell.json --format yaml      # Re-encode as YAML
  workcell convert cell.workcell.json --watch            # Re-export on change`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			format, _ := cmd.Flags().GetString("format")
			check, _ := cmd.Flags().GetBool("validate")
			watch, _ := cmd.Flags().GetBool("watch")
			return RunConvert(args[0], output, format, check, watch)
		},
	}

	cmd.Flags().StringP("output", "o", "", "Output file path (derived from the input when omitted)")
	cmd.Flags().String("format", "", "Output format: json, yaml or urdf")
	cmd.Flags().Bool("validate", true, "Check the workcell hierarchy before writing")
	cmd.Flags().Bool("watch", false, "Re-convert whenever the input file changes")

	return cmd
}

// RunConvert converts input once, or repeatedly when watch is set.
func RunConvert(input, output, format string, validate, watch bool) error {
	target, err := resolveTargetKind(input, output, format)
	if err != nil {
		fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
		return err
	}
	if output == "" {
		output = workspace.DefaultExportPath(input, target)
	}
	convertLog.Printf("converting %s to %s (target=%s, watch=%v)", input, output, target, watch)

	if !watch {
		return convertOnce(input, output, target, validate)
	}

	watcher, err := workspace.NewWatcher(input, func(path string) {
		console.ClearScreen()
		if err := convertOnce(path, output, target, validate); err != nil {
			convertLog.Printf("conversion failed, waiting for next change: %v", err)
		}
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
		return err
	}

	// Convert once up front so the output exists before the first edit.
	if err := convertOnce(input, output, target, validate); err != nil {
		convertLog.Printf("initial conversion failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Fprintln(os.Stderr, console.FormatInfoMessage(fmt.Sprintf("Watching %s, press Ctrl+C to stop", input)))
	watcher.Run(ctx)
	fmt.Fprintln(os.Stderr, console.FormatInfoMessage("Stopped watching"))
	return nil
}

// convertOnce converts input to output in the target encoding. The
// encoding is passed explicitly so --format wins even when the output
// suffix disagrees with it.
func convertOnce(input, output string, target workspace.Kind, validate bool) error {
	w, _, err := workspace.Load(input)
	if err != nil {
		fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
		return err
	}

	if validate {
		if errs := w.Validate(); len(errs) > 0 {
			for _, verr := range errs {
				fmt.Fprintln(os.Stderr, console.FormatErrorMessage(fmt.Sprintf("%s: %v", input, verr)))
			}
			return fmt.Errorf("%s: %d validation errors", input, len(errs))
		}
	}

	if err := workspace.SaveAs(w, output, target); err != nil {
		fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
		return err
	}
	fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(fmt.Sprintf("Wrote %s", console.ToRelativePath(output))))
	return nil
}

// resolveTargetKind picks the output kind from the format flag, the
// output suffix, or the input kind in that order.
func resolveTargetKind(input, output, format string) (workspace.Kind, error) {
	switch strings.ToLower(format) {
	case "json":
		return workspace.KindWorkcellJSON, nil
	case "yaml", "yml":
		return workspace.KindWorkcellYAML, nil
	case "urdf":
		return workspace.KindURDF, nil
	case "":
	default:
		return workspace.KindUnknown, fmt.Errorf("unknown format %q, expected json, yaml or urdf", format)
	}

	if output != "" {
		if kind := workspace.DetectKind(output); kind != workspace.KindUnknown {
			return kind, nil
		}
		return workspace.KindUnknown, fmt.Errorf("cannot infer format from output path %s, pass --format", output)
	}

	switch workspace.DetectKind(input) {
	case workspace.KindURDF:
		return workspace.KindWorkcellJSON, nil
	case workspace.KindWorkcellJSON, workspace.KindWorkcellYAML:
		return workspace.KindURDF, nil
	default:
		return workspace.KindUnknown, fmt.Errorf("%s: unsupported file type", input)
	}
}
