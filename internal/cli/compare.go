package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ArvindGuruRK/construction-3d-plan/internal/engine"
)

type compareOpts struct {
	request requestFlags
	output  string
}

func newCompareCmd(root *rootOpts) *cobra.Command {
	opts := &compareOpts{}

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare layouts of one room program under varied settings",
		Long: `Compare generates the same room program under the current settings and a
set of what-if variations (looser circulation, square envelope, finer grid,
randomized aspect trials) and ranks them by rooms placed, then coverage.`,
		Example: `  planforge compare --template Cottage
  planforge compare --area 200 --rooms bedroom=4,bathroom=2,kitchen=1 -o best`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			out := cmd.OutOrStdout()

			req, settings, err := opts.request.resolve(cmd, root)
			if err != nil {
				return err
			}

			scenarios := engine.BuildDefaultScenarios(settings)
			prog := newProgress(logger)
			results := engine.CompareScenarios(scenarios, req, engine.WithLogger(logger))
			prog.done(fmt.Sprintf("Compared %d scenarios", len(scenarios)))

			printComparison(out, results)

			best := engine.BestScenario(results)
			if best < 0 {
				return fmt.Errorf("no scenario produced a layout: %w", results[0].Err)
			}
			printSuccess(out, "Best: %s", results[best].Scenario.Name)

			if opts.output != "" {
				path, err := writeFormat(formatJSON, opts.output, results[best].Result, results[best].Scenario.Settings, 0)
				if err != nil {
					return err
				}
				printFile(out, path)
			}
			return nil
		},
	}

	opts.request.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the best layout as JSON to this path (without extension)")

	return cmd
}
