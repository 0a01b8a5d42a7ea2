package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/cmmoran/valuegen/internal/feature"
	"github.com/cmmoran/valuegen/pkg/generator"
)

func init() {
	rootCmd.AddCommand(NewFeaturesCommand())
}

func NewFeaturesCommand() *cobra.Command {
	var featureStrings []string

	// featuresCmd represents the valuegen features command
	var featuresCmd = &cobra.Command{
		Use:   "features [module-dir]",
		Short: "show the features generated code may use",
		Long:  "Detect the features of the module enclosing module-dir (default the current directory) and print them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			opts := generator.NewOptions()
			if err := opts.Normalize(featureStrings...); err != nil {
				return err
			}
			mod, err := feature.FindModule(dir)
			if err != nil && !errors.Is(err, feature.ErrNoModule) {
				return err
			}
			env := feature.Detect(mod, opts.Overrides())

			w := tabwriter.NewWriter(c.OutOrStdout(), 0, 4, 2, ' ', 0)
			if mod != nil {
				_, _ = fmt.Fprintf(w, "module\t%s\tgo %s\n", mod.Path, mod.GoVersion)
			} else {
				_, _ = fmt.Fprintf(w, "module\t(none)\tdefaults\n")
			}
			for _, f := range feature.All {
				state := "off"
				if env.Enabled(f.Name) {
					state = "on"
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", f.Name, state, f.Description)
			}
			return w.Flush()
		},
	}
	featuresCmd.Flags().StringSliceVarP(&featureStrings, "feature", "F", []string{}, "force a feature on or off: name, name=false or !name")

	return featuresCmd
}
