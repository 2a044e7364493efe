package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/course-planner-api/internal/planner"
)

func newParseTimeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "parse-time WINDOW",
		Short:   "Show the numeric form of a meeting time",
		Example: `  planner parse-time "09:30 am-10:20 am"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			window, err := planner.ParseTime(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "start=%.4f end=%.4f (%s-%s)\n",
				window.Start, window.End, planner.FormatClock(window.Start), planner.FormatClock(window.End))
			return nil
		},
	}
}
