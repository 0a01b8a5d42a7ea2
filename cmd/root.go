package cmd

import (
	"bytes"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configFiles    []string
	level, version string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "valuegen",
	Short:         "generate immutable value types and their builders",
	Long:          "Generate immutable Go value types, builders and partials from YAML descriptors",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(v string) {
	version = v
	rootCmd.Version = v
	if err := rootCmd.Execute(); err != nil {
		slog.Error("valuegen failed", "error", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVarP(&level, "level", "l", "info", "log level (trace, debug, info, warn, error, debug+1, etc)")
	rootCmd.PersistentFlags().StringSliceVar(&configFiles, "config", []string{}, "config file(s) - multiple config files are merged with last specified file having highest priority")
}

// parseLevel accepts slog level names plus trace.
func parseLevel(s string) (slog.Level, error) {
	if strings.EqualFold(s, "trace") {
		return slog.Level(-8), nil
	}
	var ll slog.Level
	err := ll.UnmarshalText([]byte(s))
	return ll, err
}

func setLogger(ll slog.Level) *slog.Logger {
	l := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		AddSource: false,
		Level:     ll,
	}))
	slog.SetDefault(l)
	return l
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	ll, err := parseLevel(level)
	if err != nil {
		cobra.CheckErr("invalid log level: " + level)
	}
	l := setLogger(ll)

	if len(configFiles) > 0 {
		// Use config file from the flag.
		viper.SetConfigFile(configFiles[0])
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".valuegen")
	}

	viper.SetEnvPrefix("valuegen")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err = viper.ReadInConfig(); err == nil {
		l.With("config", viper.ConfigFileUsed()).Debug("using config file(s)")
	} else if len(configFiles) > 0 {
		l.With("error", err, "config", viper.ConfigFileUsed()).Warn("unable to use config file(s)")
	}
	if len(configFiles) > 1 {
		for _, file := range configFiles[1:] {
			if configBytes, err := os.ReadFile(file); err == nil {
				if err = viper.MergeConfig(bytes.NewReader(configBytes)); err != nil {
					l.With("error", err, "file", file).Warn("failed to merge config file")
				} else {
					l.With("file", file).Debug("merged config file")
				}
			}
		}
	}
	if len(version) > 0 {
		viper.Set("version", version)
	}

	// log.level from the config applies when --level was left alone.
	if llstr := viper.GetString("log.level"); llstr != "" && !rootCmd.PersistentFlags().Changed("level") {
		if ll, err = parseLevel(llstr); err != nil {
			cobra.CheckErr("invalid log level: " + llstr)
		}
		setLogger(ll)
	}
}
