package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"yttranscript/youtube"
)

func newTracksCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tracks <video>",
		Short: "List the caption tracks of a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := a.transcriber(nil).Inspect(cmd.Context(), args[0], youtube.TranscriptConfig{})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}

			fmt.Fprintf(out, "Video ID: %s\n", info.VideoID)
			if info.Title != "" {
				fmt.Fprintf(out, "Title:    %s\n", info.Title)
			}
			fmt.Fprintln(out)

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "LANG\tKIND")
			for _, track := range info.Tracks {
				kind := "manual"
				if track.Kind == "asr" {
					kind = "auto-generated"
				}
				fmt.Fprintf(w, "%s\t%s\n", track.LanguageCode, kind)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print tracks as JSON")
	return cmd
}
