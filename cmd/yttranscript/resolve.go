package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"yttranscript/youtube"
)

func newResolveCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <input>",
		Short: "Print the video id a URL or id resolves to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := youtube.ResolveVideoID(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), id)
			return err
		},
	}
}
