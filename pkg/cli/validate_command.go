package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"

	"github.com/luca-della-vedova/rmf-workcell/pkg/console"
	"github.com/luca-della-vedova/rmf-workcell/pkg/logger"
	"github.com/luca-della-vedova/rmf-workcell/pkg/parser"
	"github.com/luca-della-vedova/rmf-workcell/pkg/workspace"
)

var validateLog = logger.New("cli:validate")

// ValidationIssue is a single finding in a validated file.
type ValidationIssue struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

// FileValidationResult is the validation outcome for one file.
type FileValidationResult struct {
	File   string            `json:"file"`
	Valid  bool              `json:"valid"`
	Issues []ValidationIssue `json:"issues,omitempty"`

	// diagnostics keep the rendered source context for text output.
	diagnostics []console.CompilerError
}

// NewValidateCommand creates the validate command
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <files...>",
		Short: "Validate workcell documents",
		Long: `Validate one or more workcell documents against the format: syntax,
schema, element references and joint hierarchy.

Files are validated in parallel and findings are reported in compiler
format with the offending source lines. The command exits with a nonzero
status when any file is invalid, so it can gate CI.

URDF files are checked by importing them; findings on URDF input carry
no source position.

Examples:
  workcell validate cell.workcell.json
  workcell validate testdata/*.workcell.yaml --json
  workcell validate cell.workcell.json robot.urdf`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			return RunValidate(args, jsonFlag)
		},
	}

	addJSONFlag(cmd)

	return cmd
}

// RunValidate validates files in parallel and reports findings.
func RunValidate(files []string, jsonOutput bool) error {
	validateLog.Printf("validating %d files", len(files))

	results := make([]FileValidationResult, len(files))
	var mu sync.Mutex

	workers := pool.New().WithMaxGoroutines(runtime.NumCPU())
	for i, file := range files {
		workers.Go(func() {
			result := validateFile(file)
			mu.Lock()
			results[i] = result
			mu.Unlock()
		})
	}
	workers.Wait()

	invalid := 0
	for _, result := range results {
		if !result.Valid {
			invalid++
		}
	}

	if jsonOutput {
		out, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(out))
	} else {
		for _, result := range results {
			printFileResult(result)
		}
		if invalid == 0 {
			fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(fmt.Sprintf("%d file(s) valid", len(files))))
		} else {
			for _, line := range console.RenderErrorBox(fmt.Sprintf("%d file(s) failed validation", invalid)) {
				fmt.Fprintln(os.Stderr, line)
			}
			for _, result := range results {
				if !result.Valid {
					for _, line := range console.RenderInfoSection(result.File) {
						fmt.Fprintln(os.Stderr, line)
					}
				}
			}
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d files failed validation", invalid, len(files))
	}
	return nil
}

func validateFile(file string) FileValidationResult {
	result := FileValidationResult{File: file, Valid: true}
	fail := func(message string) FileValidationResult {
		result.Valid = false
		result.Issues = append(result.Issues, ValidationIssue{Line: 1, Column: 1, Type: "error", Message: message})
		result.diagnostics = append(result.diagnostics, console.CompilerError{
			Position: console.ErrorPosition{File: file, Line: 1, Column: 1},
			Type:     "error",
			Message:  message,
		})
		return result
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return fail(err.Error())
	}

	switch workspace.DetectKind(file) {
	case workspace.KindWorkcellJSON:
		result.diagnostics = parser.ValidateDocument(file, data, parser.DocumentJSON)
	case workspace.KindWorkcellYAML:
		result.diagnostics = parser.ValidateDocument(file, data, parser.DocumentYAML)
	case workspace.KindURDF:
		// Import exercises every check URDF input can fail.
		if _, _, err := workspace.Load(file); err != nil {
			return fail(err.Error())
		}
		return result
	default:
		return fail("unsupported file type, expected .workcell.json, .workcell.yaml or .urdf")
	}

	for _, diag := range result.diagnostics {
		if diag.Type == "error" {
			result.Valid = false
		}
		result.Issues = append(result.Issues, ValidationIssue{
			Line:    diag.Position.Line,
			Column:  diag.Position.Column,
			Type:    diag.Type,
			Message: diag.Message,
		})
	}
	validateLog.Printf("%s: %d findings", file, len(result.diagnostics))
	return result
}

func printFileResult(result FileValidationResult) {
	for _, diag := range result.diagnostics {
		fmt.Fprint(os.Stderr, console.FormatError(diag))
	}
}
