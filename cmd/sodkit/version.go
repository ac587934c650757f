package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/go-sod/sodkit/internal/buildinfo"
)

func runVersion(w io.Writer) error {
	if _, err := fmt.Fprint(w, buildinfo.Graffiti); err != nil {
		return err
	}
	_, err := fmt.Fprintf(
		w,
		"%s: %s, %s\n",
		buildinfo.Info.Name(),
		buildinfo.Info.Time(),
		buildinfo.Info.Tag(),
	)
	return err
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(cmd.OutOrStdout())
		},
	}
}
