package cli

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/course-planner-api/internal/planner"
)

type planOptions struct {
	catalog     string
	split       []string
	constraints []string
	workers     int
	all         bool
}

func newPlanCommand(newLogger func() *zap.Logger) *cobra.Command {
	opts := planOptions{}
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Rank every clash-free timetable of a catalog",
		Example: `  planner plan --catalog fall.yaml
  planner plan --catalog fall.yaml --constraint F:allday --constraint W:morning
  planner plan --catalog fall.yaml --constraint "R:customize=02:30 pm-03:20 pm" --all`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, opts, newLogger())
		},
	}
	cmd.Flags().StringVarP(&opts.catalog, "catalog", "c", "", "catalog YAML file")
	cmd.Flags().StringArrayVar(&opts.split, "split", nil, "course whose second weekly meeting must use the same section (repeatable)")
	cmd.Flags().StringArrayVar(&opts.constraints, "constraint", nil, `availability rule DAY:PERIOD or DAY:customize=WINDOW (repeatable)`)
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 1, "parallel search workers")
	cmd.Flags().BoolVar(&opts.all, "all", false, "list every timetable, not only the best")
	_ = cmd.MarkFlagRequired("catalog")
	return cmd
}

func runPlan(cmd *cobra.Command, opts planOptions, log *zap.Logger) error {
	defer log.Sync() //nolint:errcheck

	catalog, err := readCatalog(opts.catalog)
	if err != nil {
		return err
	}
	constraints := make([]planner.Constraint, 0, len(opts.constraints))
	for _, raw := range opts.constraints {
		c, err := parseConstraintFlag(raw)
		if err != nil {
			return err
		}
		constraints = append(constraints, c)
	}

	groups, rejections := planner.BuildGroups(catalog.Groups)
	for _, r := range rejections {
		log.Warn("section skipped", zap.String("group", r.Group), zap.String("section", r.SectionID), zap.Error(r.Err))
	}

	split := lo.Uniq(append(append([]string{}, catalog.Split...), opts.split...))
	set, err := planner.Enumerator{Workers: opts.workers}.Plan(cmd.Context(), groups, split)
	if err != nil {
		return err
	}
	log.Debug("enumerated", zap.Int("timetables", set.Count))
	if len(constraints) > 0 {
		if set, err = planner.ApplyConstraints(set, constraints...); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderSummary(catalog.Term, set))
	fmt.Fprintln(out, renderWeek(set.Best))
	if opts.all {
		fmt.Fprintln(out, renderAll(set))
	}
	return nil
}

// parseConstraintFlag reads "W:morning" or "R:customize=02:30 pm-03:20 pm".
func parseConstraintFlag(raw string) (planner.Constraint, error) {
	day, rest, ok := strings.Cut(raw, ":")
	if !ok {
		return planner.Constraint{}, fmt.Errorf("constraint %q: want DAY:PERIOD", raw)
	}
	period, custom, _ := strings.Cut(rest, "=")
	return planner.ParseConstraint(
		strings.ToUpper(strings.TrimSpace(day)),
		strings.ToLower(strings.TrimSpace(period)),
		strings.TrimSpace(custom),
	)
}
