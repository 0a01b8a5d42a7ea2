package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmmoran/valuegen/pkg/action/generate"
)

func init() {
	rootCmd.AddCommand(NewGenerateCommand())
}

func NewGenerateCommand() *cobra.Command {
	// generateCmd represents the valuegen generate command
	var generateCmd = &cobra.Command{
		Use:     "generate [descriptor...]",
		Aliases: []string{"gen"},
		Short:   "generate value types",
		Long: "Generate the value type, builder and partial of every type in the given descriptors.\n" +
			"Descriptors may be glob patterns. Typically run from a go:generate directive:\n\n" +
			"  //go:generate go run github.com/cmmoran/valuegen generate person.yaml",
		RunE: func(c *cobra.Command, args []string) error {
			opts, err := loadOptions(c, args)
			if err != nil {
				return err
			}
			report, err := generate.Generate(c.Context(), opts)
			if err != nil {
				return err
			}
			for _, f := range report.Written {
				_, _ = fmt.Fprintln(c.OutOrStdout(), f)
			}
			return nil
		},
	}
	optionFlags(generateCmd)

	return generateCmd
}
