package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/snapkeep/cmd/snapkeep/commands/cmdutil"
	"github.com/thoreinstein/snapkeep/internal/doctor"
	"github.com/thoreinstein/snapkeep/internal/errors"
)

var (
	doctorJSON    bool
	doctorVerbose bool
	doctorFix     bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorVerbose, "all", false, "show passed checks too")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "repair fixable issues, then check again")
	doctorCmd.MarkFlagsMutuallyExclusive("json", "all")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose registry and backup root problems",
	Long: `Check that the registry parses and is private, that enabled sources
exist, and that every backup root is a writable directory outside the
source it stores snapshots of.

Exit codes:
  0 - All checks passed
  1 - Warnings present, no errors
  2 - Errors present`,
	Example: `  # Show problems
  snapkeep doctor

  # Create missing backup roots and tighten registry permissions
  snapkeep doctor --fix

  See Also: snapkeep status, snapkeep config path`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runDoctorWithWriter(cmd.Context(), cmd.OutOrStdout())
	},
}

var (
	errDoctorWarnings = errors.New("doctor found warnings")
	errDoctorErrors   = errors.New("doctor found errors")
)

func runDoctorWithWriter(ctx context.Context, w io.Writer) error {
	s, err := cmdutil.Open(ctx)
	if err != nil {
		return err
	}

	items := s.Engine.Items()
	runner := doctor.NewRunner()
	runner.AddCheck(doctor.NewRegistryCheck(s.Store))
	runner.AddCheck(doctor.NewSourceCheck(items))
	runner.AddCheck(doctor.NewBackupRootCheck(items))

	report := runner.Run()
	if doctorFix {
		for _, fix := range runner.Fix() {
			mark := cmdutil.Green("✓")
			if !fix.Fixed {
				mark = cmdutil.Red("✗")
			}
			fmt.Fprintf(w, "%s fix %s: %s\n", mark, fix.Path, fix.Description)
		}
		report = runner.Run()
	}

	if doctorJSON {
		if err := cmdutil.WriteJSON(w, report); err != nil {
			return err
		}
	} else {
		printDoctorReport(w, report)
	}

	switch {
	case report.HasErrors():
		return errors.NewExitError(errDoctorErrors, errors.ExitSystem)
	case report.HasWarnings():
		return errors.NewExitError(errDoctorWarnings, errors.ExitUser)
	}
	return nil
}

func printDoctorReport(w io.Writer, report *doctor.Report) {
	for _, res := range report.Results {
		if !doctorVerbose && res.Status != doctor.SeverityError && res.Status != doctor.SeverityWarning {
			continue
		}
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(res.Status), res.Category, res.Name, res.Message)
		for _, p := range res.Problems {
			fmt.Fprintf(w, "    %s\n", p)
		}
		if res.FixHint != "" && res.Status >= doctor.SeverityWarning {
			fmt.Fprintf(w, "  hint: %s\n", res.FixHint)
		}
	}

	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return cmdutil.Green("✓")
	case doctor.SeverityInfo:
		return cmdutil.Gray("ℹ")
	case doctor.SeverityWarning:
		return cmdutil.Yellow("⚠")
	case doctor.SeverityError:
		return cmdutil.Red("✗")
	default:
		return "?"
	}
}
