package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tliron/commonlog"
)

const (
	configBaseName   = "classgraph"
	configFolderPath = "."
	envPrefix        = "CLASSGRAPH"

	sourceKey        = "source"
	formatKey        = "format"
	parallelKey      = "parallel"
	colorKey         = "color"
	logVerbosityKey  = "log.verbosity"
	logFileKey       = "log.file"
	watchDebounceKey = "watch.debounce"

	parallelFlagName   = "parallel"
	verboseFlagName    = "verbose"
	logFileFlagName    = "log-file"
	noColorFlagName    = "no-color"
	formatFlagName     = "format"
	debounceFlagName   = "debounce"
	unresolvedFlagName = "unresolved"

	defaultSource    = "."
	defaultFormat    = "json"
	defaultParallel  = 0
	defaultVerbosity = 0
	defaultDebounce  = 100 * time.Millisecond
	defaultColor     = true
	defaultLogFile   = ""
)

// initConfig loads classgraph.yaml from the working directory, if present,
// and CLASSGRAPH_* environment variables. A missing config file is not an
// error.
func initConfig() error {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(sourceKey, defaultSource)
	viper.SetDefault(formatKey, defaultFormat)
	viper.SetDefault(parallelKey, defaultParallel)
	viper.SetDefault(colorKey, defaultColor)
	viper.SetDefault(logVerbosityKey, defaultVerbosity)
	viper.SetDefault(logFileKey, defaultLogFile)
	viper.SetDefault(watchDebounceKey, defaultDebounce)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

func configureRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.IntP(parallelFlagName, "p", viper.GetInt(parallelKey), "number of files parsed concurrently (0 means one per CPU)")
	bindFlagToConfig(flags.Lookup(parallelFlagName), parallelKey)

	flags.CountP(verboseFlagName, "v", "increase log verbosity (repeatable)")
	bindFlagToConfig(flags.Lookup(verboseFlagName), logVerbosityKey)

	flags.String(logFileFlagName, viper.GetString(logFileKey), "write logs to this file instead of stderr")
	bindFlagToConfig(flags.Lookup(logFileFlagName), logFileKey)

	flags.Bool(noColorFlagName, false, "disable colored diagnostics")
}

// bindFlagToConfig wires a flag to a viper key so config and environment
// values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}
	cobra.CheckErr(viper.BindPFlag(key, flag))
}

func configureLogging() {
	var path *string
	if file := viper.GetString(logFileKey); file != "" {
		path = &file
	}
	commonlog.Configure(viper.GetInt(logVerbosityKey), path)
}

func useColor(cmd *cobra.Command) bool {
	if noColor, _ := cmd.Flags().GetBool(noColorFlagName); noColor {
		return false
	}
	return viper.GetBool(colorKey)
}

// sourceArg returns the directory argument, falling back to the configured
// source location.
func sourceArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return viper.GetString(sourceKey)
}
