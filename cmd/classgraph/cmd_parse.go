package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/viant/afs"

	"github.com/dhamidi/classgraph/java/codebase"
)

func newParseCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a single .java file and dump its declarations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			if !codebase.IsSourceFile(filename) {
				return fmt.Errorf("unsupported file extension: %s (expected .java)", filename)
			}

			data, err := codebase.LoadFile(cmd.Context(), afs.New(), filename)
			if err != nil {
				return err
			}
			files := codebase.Files{codebase.FileKey(filename): data}

			project, failures, err := buildProject(cmd, files)
			if err != nil {
				return err
			}
			if len(failures) > 0 {
				return fmt.Errorf("%s failed to parse", filename)
			}
			return encode(cmd, outputFormat, project)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, formatFlagName, "f", viper.GetString(formatKey), formatUsage())

	return cmd
}
