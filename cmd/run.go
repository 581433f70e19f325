package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/opportunity-cli/internal/config"
	"github.com/sells-group/opportunity-cli/internal/model"
	"github.com/sells-group/opportunity-cli/internal/report"
)

var (
	runCompany string
	runJSON    bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate the AI opportunity report for one company",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initPipeline(cfg)
		if err != nil {
			return err
		}

		state, path, writeErr := runOne(cmd.Context(), env.Pipeline.Run, cfg.Report, runCompany)
		if err := printState(cmd.OutOrStdout(), state, runJSON); err != nil {
			return err
		}
		if writeErr != nil {
			return writeErr
		}

		zap.L().Info("report saved",
			zap.String("company", state.CompanyName),
			zap.String("path", path),
			zap.Float64("estimated_cost_usd", env.Costs.Total()),
		)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runCompany, "company", "", "company name (required)")
	runCmd.Flags().BoolVar(&runJSON, "json", false, "print the final state as JSON instead of the summary")
	_ = runCmd.MarkFlagRequired("company")
	rootCmd.AddCommand(runCmd)
}

// runFunc runs the pipeline for one company.
type runFunc func(ctx context.Context, company string) model.State

// runOne runs the pipeline and writes the report file.
func runOne(ctx context.Context, run runFunc, rc config.ReportConfig, company string) (model.State, string, error) {
	state := run(ctx, company)
	path, err := report.Write(rc.OutputDir, rc.Prefix, rc.Suffix, state)
	if err != nil {
		return state, "", eris.Wrapf(err, "write report for %s", company)
	}
	return state, path, nil
}

func printState(w io.Writer, s model.State, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}
	_, err := fmt.Fprint(w, renderState(s))
	return err
}
