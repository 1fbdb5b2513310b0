package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dhamidi/classgraph/format"
	"github.com/dhamidi/classgraph/java/codebase"
)

func newScanCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "scan [dir]",
		Short: "Parse and resolve every .java file below a directory",
		Long: `Parse and resolve every .java file below a directory or storage URL.

Files that fail to parse are reported on stderr and left out of the output.
The command fails if any file failed to parse.

Examples:
  classgraph scan src/main/java
  classgraph scan -f table .
  classgraph scan -f yaml file:///srv/checkout`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := codebase.LoadDir(cmd.Context(), sourceArg(args))
			if err != nil {
				return err
			}
			project, failures, err := buildProject(cmd, files)
			if err != nil {
				return err
			}
			if err := encode(cmd, outputFormat, project); err != nil {
				return err
			}
			if len(failures) > 0 {
				return fmt.Errorf("%d of %d files failed to parse", len(failures), len(files))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, formatFlagName, "f", viper.GetString(formatKey), formatUsage())

	return cmd
}

func workers() codebase.Option {
	return codebase.WithWorkers(viper.GetInt(parallelKey))
}

// buildProject parses files, reports failures on stderr and resolves what
// parsed.
func buildProject(cmd *cobra.Command, files codebase.Files) (*codebase.Project, codebase.Failures, error) {
	project, failures, err := codebase.ParsePartial(cmd.Context(), files, workers())
	if err != nil {
		return nil, nil, err
	}
	if err := reportFailures(cmd, failures); err != nil {
		return nil, nil, err
	}
	codebase.ResolveImports(project)
	codebase.ResolveTypes(project)
	return project, failures, nil
}

func reportFailures(cmd *cobra.Command, failures codebase.Failures) error {
	if len(failures) == 0 {
		return nil
	}
	return format.NewDiagnosticWriter(cmd.ErrOrStderr(), useColor(cmd)).Write(failures)
}

func encode(cmd *cobra.Command, name string, project *codebase.Project) error {
	encoder, err := format.NewEncoder(name, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if err := encoder.Encode(project); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func formatUsage() string {
	return "output format (" + strings.Join(format.Names, ", ") + ")"
}
