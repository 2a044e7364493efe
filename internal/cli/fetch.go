package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/course-planner-api/internal/service"
	"github.com/noah-isme/course-planner-api/pkg/registrar"
)

const defaultRegistrarURL = "https://aurora-registration.umanitoba.ca/StudentRegistrationSsb/ssb"

type fetchOptions struct {
	term    string
	courses string
	output  string
	baseURL string
	timeout time.Duration
}

func newFetchCommand(newLogger func() *zap.Logger) *cobra.Command {
	opts := fetchOptions{}
	cmd := &cobra.Command{
		Use:     "fetch",
		Short:   "Download a catalog from the registration system",
		Example: `  planner fetch --term "fall 2024" --courses "COMP1020 MATH1240" -o fall.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, opts, newLogger())
		},
	}
	cmd.Flags().StringVarP(&opts.term, "term", "t", "", `term such as "fall 2024" or 202490`)
	cmd.Flags().StringVar(&opts.courses, "courses", "", "space separated course codes")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the catalog here instead of stdout")
	cmd.Flags().StringVar(&opts.baseURL, "registrar-url", defaultRegistrarURL, "registration system base URL")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 20*time.Second, "per request timeout")
	_ = cmd.MarkFlagRequired("term")
	_ = cmd.MarkFlagRequired("courses")
	return cmd
}

func runFetch(cmd *cobra.Command, opts fetchOptions, log *zap.Logger) error {
	defer log.Sync() //nolint:errcheck

	term, err := service.ResolveTerm(opts.term)
	if err != nil {
		return err
	}
	codes, err := service.ParseCourseList(opts.courses, 0)
	if err != nil {
		return err
	}
	client, err := registrar.NewClient(registrar.Config{BaseURL: opts.baseURL, Timeout: opts.timeout, RequestsPerSecond: 5}, log)
	if err != nil {
		return err
	}

	queries := make([]registrar.Query, len(codes))
	for i, c := range codes {
		queries[i] = registrar.Query{Subject: c.Subject, Number: c.Number}
	}
	courses, err := client.Search(cmd.Context(), term.Code, queries)
	if err != nil {
		return err
	}
	built, err := service.BuildCatalog(courses)
	if err != nil {
		return err
	}
	for _, w := range built.Warnings {
		log.Warn(w)
	}

	out := cmd.OutOrStdout()
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("create %s: %w", opts.output, err)
		}
		defer f.Close()
		out = f
	}
	return writeCatalog(out, catalogFile{Term: term.Code, Split: built.SplitCourses, Groups: built.Groups})
}
