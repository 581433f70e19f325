package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/opportunity-cli/internal/config"
)

var (
	batchFile  string
	batchLimit int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Generate reports for a list of companies",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		companies, err := loadCompanies(batchFile, cfg.Companies)
		if err != nil {
			return err
		}

		env, err := initPipeline(cfg)
		if err != nil {
			return err
		}

		sum, err := processBatch(ctx, companies, batchLimit, cfg.Report, env.Pipeline.Run, cmd.OutOrStdout())
		zap.L().Info("batch cost", zap.Float64("estimated_cost_usd", env.Costs.Total()))
		if err != nil {
			return err
		}
		if sum.WriteFailed > 0 {
			return eris.Errorf("batch: %d of %d reports could not be written", sum.WriteFailed, sum.Processed)
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchFile, "companies-file", "", "YAML list of company names (defaults to the companies config key)")
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, "max number of companies to process (0 = all)")
	rootCmd.AddCommand(batchCmd)
}

// loadCompanies reads company names from a YAML file, either a bare list or
// a document with a companies key. With no path it returns fallback.
func loadCompanies(path string, fallback []string) ([]string, error) {
	if path == "" {
		return cleanCompanies(fallback), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "batch: read companies file %s", path)
	}

	var list []string
	if err := yaml.Unmarshal(data, &list); err != nil {
		var doc struct {
			Companies []string `yaml:"companies"`
		}
		if docErr := yaml.Unmarshal(data, &doc); docErr != nil {
			return nil, eris.Wrapf(docErr, "batch: parse companies file %s", path)
		}
		list = doc.Companies
	}

	return cleanCompanies(list), nil
}

func cleanCompanies(in []string) []string {
	out := make([]string, 0, len(in))
	for _, c := range in {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// batchSummary counts batch outcomes.
type batchSummary struct {
	Processed   int
	WithErrors  int // runs whose state recorded a stage failure
	WriteFailed int
}

// processBatch runs each company in order with a fresh state. A failed
// report write is logged and the batch moves on.
func processBatch(ctx context.Context, companies []string, limit int, rc config.ReportConfig, run runFunc, out io.Writer) (batchSummary, error) {
	var sum batchSummary
	if len(companies) == 0 {
		zap.L().Info("no companies to process")
		return sum, nil
	}

	if limit > 0 && len(companies) > limit {
		companies = companies[:limit]
	}

	zap.L().Info("processing batch", zap.Int("companies", len(companies)))

	rule := strings.Repeat("=", 60)
	for _, company := range companies {
		if err := ctx.Err(); err != nil {
			return sum, eris.Wrap(err, "batch processing")
		}

		log := zap.L().With(zap.String("company", company))
		fmt.Fprintf(out, "\n%s\nANALYZING: %s\n%s\n", rule, company, rule)

		state, path, err := runOne(ctx, run, rc, company)
		sum.Processed++
		if state.HasError() {
			sum.WithErrors++
		}
		fmt.Fprint(out, renderState(state))

		if err != nil {
			sum.WriteFailed++
			log.Error("report write failed", zap.Error(err))
			continue
		}
		log.Info("report saved", zap.String("path", path), zap.Bool("has_error", state.HasError()))
		fmt.Fprintf(out, "\n%s\nCOMPLETED: %s\n%s\n", rule, company, rule)
	}

	zap.L().Info("batch complete",
		zap.Int("processed", sum.Processed),
		zap.Int("with_errors", sum.WithErrors),
		zap.Int("write_failed", sum.WriteFailed),
	)
	return sum, nil
}
