package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmmoran/valuegen/pkg/action/verify"
)

func init() {
	rootCmd.AddCommand(NewVerifyCommand())
}

func NewVerifyCommand() *cobra.Command {
	var showDiff bool

	// verifyCmd represents the valuegen verify command
	var verifyCmd = &cobra.Command{
		Use:   "verify [descriptor...]",
		Short: "check generated files are up to date",
		Long:  "Regenerate the given descriptors in memory and report generated files that are missing, outdated, edited or orphaned",
		RunE: func(c *cobra.Command, args []string) error {
			opts, err := loadOptions(c, args)
			if err != nil {
				return err
			}
			stale, err := verify.Verify(c.Context(), opts)
			for _, s := range stale {
				_, _ = fmt.Fprintf(c.OutOrStdout(), "%s: %s\n", s.Reason, s.File)
				if showDiff && s.Diff != "" {
					_, _ = fmt.Fprintln(c.OutOrStdout(), s.Diff)
				}
			}
			return err
		},
	}
	optionFlags(verifyCmd)
	verifyCmd.Flags().BoolVarP(&showDiff, "diff", "d", false, "print what regenerating would change")

	return verifyCmd
}
