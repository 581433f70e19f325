// Package report persists a finished pipeline state as a markdown file.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sells-group/opportunity-cli/internal/model"
)

// Defaults for the output file name.
const (
	DefaultPrefix = "consultation_report_"
	DefaultSuffix = ".md"
)

// NoReport is written in place of a missing final report.
const NoReport = "No report generated"

var pathSeparators = strings.NewReplacer("/", "-", `\`, "-")

// Filename derives the output file name from the company name:
// prefix + lower-cased name + suffix. Path separators become dashes so the
// file always lands in the output directory.
func Filename(company, prefix, suffix string) string {
	return prefix + pathSeparators.Replace(cases.Lower(language.Und).String(company)) + suffix
}

// Render returns the document body: an H1 title followed by the final
// report verbatim, or NoReport when the report stage produced nothing.
func Render(s model.State) string {
	body := NoReport
	if s.FinalReport != nil {
		body = *s.FinalReport
	}
	return fmt.Sprintf("# AI Consultation Report for %s\n\n%s", s.CompanyName, body)
}

// Write renders s into dir and returns the path written.
func Write(dir, prefix, suffix string, s model.State) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", eris.Wrapf(err, "report: create output dir %s", dir)
	}

	path := filepath.Join(dir, Filename(s.CompanyName, prefix, suffix))
	if err := os.WriteFile(path, []byte(Render(s)), 0o644); err != nil {
		return "", eris.Wrapf(err, "report: write %s", path)
	}
	return path, nil
}
