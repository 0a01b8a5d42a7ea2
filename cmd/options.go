package cmd

import (
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cmmoran/valuegen/pkg/generator"
)

// config is the layout of config files. Every command reads its options from
// the generate section.
type config struct {
	Generate generator.Options `mapstructure:"generate"`
}

// optionFlags registers the flags shared by the commands that load descriptors.
func optionFlags(c *cobra.Command) {
	c.Flags().StringP("module-dir", "m", "", "directory whose go.mod decides the features, default the descriptor's module")
	c.Flags().String("manifest", generator.DefaultManifest, "manifest of generated files, empty to disable")
	c.Flags().IntP("parallelism", "p", runtime.GOMAXPROCS(0), "maximum number of files generated at once")
	c.Flags().StringSliceP("feature", "F", []string{}, "force a feature on or off: name, name=false or !name")
}

// loadOptions merges config, environment and the flags of c, then adds the
// descriptor arguments. Flags are bound when the command runs, so every command
// shares the generate section.
func loadOptions(c *cobra.Command, args []string) (*generator.Options, error) {
	for flag, key := range map[string]string{
		"module-dir":  "generate.module_dir",
		"manifest":    "generate.manifest",
		"parallelism": "generate.parallelism",
	} {
		if f := c.Flags().Lookup(flag); f != nil {
			if err := viper.BindPFlag(key, f); err != nil {
				return nil, errors.Wrapf(err, "bind --%s", flag)
			}
		}
	}

	cfg := config{Generate: *generator.NewOptions()}
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "read configuration")
	}
	opts := &cfg.Generate
	opts.Version = version
	opts.Descriptors = append(opts.Descriptors, args...)
	if used := viper.ConfigFileUsed(); used != "" {
		opts.Exclude = append(opts.Exclude, used)
	}
	opts.Exclude = append(opts.Exclude, configFiles...)
	if len(opts.Descriptors) == 0 {
		return nil, errors.WithHint(errors.New("no descriptors"),
			"pass descriptor files as arguments or list them under generate.descriptors")
	}

	features, _ := c.Flags().GetStringSlice("feature")
	if err := opts.Normalize(features...); err != nil {
		return nil, err
	}
	return opts, nil
}
