package main

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	httpclient "yttranscript/http"
	"yttranscript/internal/config"
	"yttranscript/internal/logging"
	"yttranscript/internal/metrics"
	"yttranscript/youtube"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	logLevel   string
	watchURL   string

	cfg       *config.Config
	logger    zerolog.Logger
	logCloser io.Closer
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "yttranscript",
		Short: "Fetch YouTube transcripts without the Data API",
		Long: `yttranscript reads the caption manifest embedded in a YouTube watch page,
downloads one caption track and prints it as text, JSON, SRT or WebVTT.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.init()
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return a.close()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: ./yttranscript.yaml or ~/.config/yttranscript/yttranscript.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&a.watchURL, "watch-url", youtube.DefaultWatchURL, "watch page endpoint")
	_ = root.PersistentFlags().MarkHidden("watch-url")

	root.AddCommand(
		newFetchCmd(a),
		newTracksCmd(a),
		newResolveCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	a.logCloser = closer
	return nil
}

// close releases the log output opened by init.
func (a *app) close() error {
	if a.logCloser == nil {
		return nil
	}
	err := a.logCloser.Close()
	a.logCloser = nil
	a.logger = zerolog.Nop()
	return err
}

// transcriber wires a Transcriber from configuration. collector may be nil.
func (a *app) transcriber(collector *metrics.Collector) *youtube.Transcriber {
	clientCfg := a.cfg.HTTPClientConfig()
	clientCfg.Logger = &a.logger
	if collector != nil {
		clientCfg.CircuitBreaker.OnStateChange = collector.CircuitStateChanged
	}

	tr := youtube.NewTranscriber(httpclient.New(clientCfg))
	if fetcher, ok := tr.Pages.(*youtube.HTTPFetcher); ok {
		fetcher.WatchURL = a.watchURL
	}
	tr.Logger = a.logger
	if collector != nil {
		tr.Observer = collector
	}
	return tr
}
