package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/classgraph/format"
	"github.com/dhamidi/classgraph/java/codebase"
)

func newSymbolsCmd() *cobra.Command {
	var unresolved bool

	cmd := &cobra.Command{
		Use:   "symbols [dir]",
		Short: "List every type reference with its resolution",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := codebase.LoadDir(cmd.Context(), sourceArg(args))
			if err != nil {
				return err
			}
			project, _, err := buildProject(cmd, files)
			if err != nil {
				return err
			}
			return format.NewRefsEncoder(cmd.OutOrStdout()).UnresolvedOnly(unresolved).Encode(project)
		},
	}

	cmd.Flags().BoolVarP(&unresolved, unresolvedFlagName, "u", false, "only list references that did not resolve")

	return cmd
}
