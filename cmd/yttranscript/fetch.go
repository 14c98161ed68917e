package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"yttranscript/internal/output"
	"yttranscript/youtube"
)

func newFetchCmd(a *app) *cobra.Command {
	var (
		lang    string
		format  string
		outFile string
	)

	cmd := &cobra.Command{
		Use:   "fetch <video>",
		Short: "Print the transcript of a video",
		Example: `  yttranscript fetch https://www.youtube.com/watch?v=dQw4w9WgXcQ
  yttranscript fetch dQw4w9WgXcQ --lang fr --format srt -o talk.srt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("lang") {
				lang = a.cfg.Lang
			}
			if !cmd.Flags().Changed("format") {
				format = a.cfg.Format
			}
			f, err := youtube.ParseFormatName(format)
			if err != nil {
				return err
			}

			tr := a.transcriber(nil)
			segments, err := tr.Fetch(cmd.Context(), args[0], youtube.TranscriptConfig{Lang: lang})
			if err != nil {
				return err
			}

			rendered, err := youtube.NewFormatConverter(segments).ToFormat(f)
			if err != nil {
				return err
			}
			if outFile != "" {
				if err := output.WriteFile(outFile, []byte(rendered)); err != nil {
					return fmt.Errorf("write %s: %w", outFile, err)
				}
				a.logger.Info().Str("path", outFile).Int("segments", len(segments)).Msg("transcript written")
				return nil
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "caption language code, e.g. en or pt-BR (default: first listed track)")
	cmd.Flags().StringVarP(&format, "format", "f", string(youtube.FormatPlainText), "output format: txt, json, srt, vtt")
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "output file path (default: stdout)")
	return cmd
}
