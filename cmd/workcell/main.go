package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/luca-della-vedova/rmf-workcell/pkg/cli"
	"github.com/luca-della-vedova/rmf-workcell/pkg/workcell"
)

// version is set at build time through -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "workcell",
	Short: "Work with RMF workcell documents",
	Long: `workcell reads, writes, validates and converts RMF workcell documents.

Workcell documents describe a tree of coordinate frames with visual and
collision geometry, inertia and joints, stored as JSON or YAML. They
convert both ways to URDF robot descriptions.

Examples:
  workcell new cell.workcell.json
  workcell validate cell.workcell.json
  workcell convert cell.workcell.json --watch
  workcell inspect robot.urdf`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("workcell %s (format %d.%d)\n", version, workcell.CurrentMajorVersion, workcell.CurrentMinorVersion)
	},
}

func init() {
	rootCmd.AddCommand(
		cli.NewConvertCommand(),
		cli.NewValidateCommand(),
		cli.NewFmtCommand(),
		cli.NewNewCommand(),
		cli.NewInspectCommand(),
		cli.NewListCommand(),
		versionCmd,
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
