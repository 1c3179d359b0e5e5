// -- cmd/lint.go --
package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kuhnmi/find-sec-bugs/internal/lint"
	"github.com/kuhnmi/find-sec-bugs/internal/observability"
)

// ErrInvalidEntries is returned by the lint command when a run is not clean,
// so strict callers get a non-zero exit code.
var ErrInvalidEntries = errors.New("catalog contains invalid entries")

var (
	lintJSON   bool
	lintStrict bool
)

var lintCmd = &cobra.Command{
	Use:   "lint <catalog-file>...",
	Short: "Pre-flight taint catalog entries before loading them.",
	Long: `Validates every "descriptor:summary" entry of the given catalog files
against the type-descriptor and class-summary grammars and resolves each
state token against the taint-state domain. Nothing is loaded into a live
catalog; this is the pre-flight check configuration tooling runs before
committing entries.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := observability.GetLogger()

		cfg := appConfig.Lint
		if lintStrict {
			cfg.Strict = true
		}

		runner := lint.NewRunner(nil, logger, cfg)
		report, err := runner.Run(args)
		if err != nil {
			logger.Error("Lint run failed", zap.Error(err))
			return err
		}

		out := cmd.OutOrStdout()
		if lintJSON {
			if err := report.WriteJSON(out); err != nil {
				return err
			}
		} else {
			if err := report.WriteText(out); err != nil {
				return err
			}
		}

		if !report.Clean() && cfg.Strict {
			return ErrInvalidEntries
		}
		return nil
	},
}

func init() {
	lintCmd.Flags().BoolVar(&lintJSON, "json", false, "emit the report as JSON")
	lintCmd.Flags().BoolVar(&lintStrict, "strict", false, "exit non-zero when any entry is invalid")
	rootCmd.AddCommand(lintCmd)
}
