// Package cli implements the planner command line tool.
package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/course-planner-api/pkg/logger"
)

// NewRootCommand assembles the planner command tree.
func NewRootCommand() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:   "planner",
		Short: "Plan clash-free course timetables",
		Long: `planner enumerates every clash-free timetable for a set of courses and
ranks them by days on campus, then by idle time between classes.

Catalogs are YAML files; "planner fetch" writes one from the registration system.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log diagnostics to stderr")

	newLogger := func() *zap.Logger { return logger.NewCLI(verbose) }
	root.AddCommand(
		newPlanCommand(newLogger),
		newFetchCommand(newLogger),
		newParseTimeCommand(),
	)
	return root
}
