package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/quocvuong92/hadoop-repl/internal/constants"
	"github.com/quocvuong92/hadoop-repl/internal/display"
	"github.com/quocvuong92/hadoop-repl/internal/logging"
	"github.com/quocvuong92/hadoop-repl/internal/minicluster"
)

func (app *App) newStandaloneCmd() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "standalone [local-root] [cluster-config-file]",
		Short: "Start an in-process mini-cluster and open a REPL on it",
		Long: `Start a single-process mini-cluster and open a REPL on it.

The contents of local-root, when given, are copied into the cluster under
/<basename of local-root>. The generated cluster configuration is written to
cluster-config-file (default: ./` + constants.DefaultClusterConfigFile + `) and removed on exit,
together with all cluster state. Use "save" to keep a copy.

Examples:
  hadoop-repl standalone
  hadoop-repl standalone ./fixtures
  hadoop-repl standalone ./fixtures /tmp/cluster.yaml`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := minicluster.Options{DataDir: dataDir}
			if len(args) >= 1 {
				opts.LocalRoot = args[0]
			}
			if len(args) == 2 {
				opts.ConfigFile = args[1]
			}
			return app.runStandalone(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Keep cluster data in this directory instead of a temporary one")

	return cmd
}

func (app *App) runStandalone(ctx context.Context, opts minicluster.Options) error {
	if app.cfg.Verbose {
		logging.Configure(logging.LevelDebug, logging.FormatText, app.err)
	}
	opts.Logger = logging.DefaultLogger
	opts.Progress = app.err

	mc := minicluster.New(opts)
	if err := mc.Start(ctx); err != nil {
		return err
	}
	defer mc.Stop()

	// The REPL owns the terminal, so only termination signals stop the
	// cluster from outside.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGHUP)
	done := make(chan struct{})
	watcherDone := watchSignals(sigChan, done, func() {
		mc.Stop()
		os.Exit(constants.ExitFailure)
	})
	defer func() {
		signal.Stop(sigChan)
		close(done)
		<-watcherDone
	}()

	fc := mc.FileConfig()
	app.cfg.FileSystem = fc.FileSystem.Type
	app.cfg.LocalRoot = fc.FileSystem.Root
	app.cfg.Cluster = fc.Cluster
	if app.cfg.Prompt == "" {
		app.cfg.Prompt = constants.StandalonePrompt
	}
	if err := app.setup(); err != nil {
		return err
	}

	display.ShowBanner(app.out, "", []display.Endpoint{
		{Label: "DFS HTTP", URL: mc.DFSHTTPAddress()},
		{Label: "JobTracker HTTP", URL: mc.JobTrackerHTTPAddress()},
	})

	return app.runSession(ctx, mc.FS(), app.cfg.Prompt)
}

// watchSignals runs onSignal for the first signal on sigChan, unless done is
// closed first. The returned channel is closed when the watcher exits.
func watchSignals(sigChan <-chan os.Signal, done <-chan struct{}, onSignal func()) <-chan struct{} {
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		select {
		case <-sigChan:
			onSignal()
		case <-done:
		}
	}()
	return exited
}
