package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/quocvuong92/hadoop-repl/internal/cluster"
	"github.com/quocvuong92/hadoop-repl/internal/commands"
	"github.com/quocvuong92/hadoop-repl/internal/config"
	"github.com/quocvuong92/hadoop-repl/internal/constants"
	"github.com/quocvuong92/hadoop-repl/internal/dfs"
	"github.com/quocvuong92/hadoop-repl/internal/display"
	"github.com/quocvuong92/hadoop-repl/internal/history"
	"github.com/quocvuong92/hadoop-repl/internal/logging"
	"github.com/quocvuong92/hadoop-repl/internal/minicluster"
	"github.com/quocvuong92/hadoop-repl/internal/repl"
	"github.com/quocvuong92/hadoop-repl/internal/repl/editor"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=..."
var Version = "dev"

// App holds the application state
type App struct {
	cfg *config.Config
	out io.Writer
	err io.Writer

	// newEditor is replaced in tests
	newEditor func(kind string, opts editor.Options) (repl.LineEditor, error)
}

// NewApp creates a new App instance with default configuration
func NewApp() *App {
	return &App{
		cfg:       config.NewConfig(),
		out:       os.Stdout,
		err:       os.Stderr,
		newEditor: editor.New,
	}
}

// Execute runs the root command and exits with its status
func Execute() {
	os.Exit(NewApp().Run(os.Args[1:]))
}

// Run executes the command line and returns the process exit code
func (app *App) Run(args []string) int {
	root := app.newRootCmd()
	root.SetArgs(args)
	root.SetOut(app.out)
	root.SetErr(app.err)
	return app.report(root.Execute())
}

func (app *App) newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   constants.AppName,
		Short: "An interactive shell for Hadoop filesystems",
		Long: `hadoop-repl is an interactive shell for HDFS with tab completion of
remote and local paths.

Namenodes come from --namenode, HADOOP_REPL_NAMENODE, the config file or
the core-site.xml / hdfs-site.xml found in HADOOP_CONF_DIR.

Examples:
  hadoop-repl                                # connect using HADOOP_CONF_DIR
  hadoop-repl -n namenode:8020 -u hdfs
  hadoop-repl --editor readline
  hadoop-repl standalone ./fixtures          # in-process mini-cluster`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runRemote(cmd.Context())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.cfg.ConfigFile, "config", "", "Config file (default: search ./.hadoop-repl, user config dir)")
	flags.StringSliceVarP(&app.cfg.NameNodes, "namenode", "n", nil, "Namenode address host:port (repeatable)")
	flags.StringVarP(&app.cfg.User, "user", "u", "", "User to act as on HDFS")
	flags.StringVar(&app.cfg.HadoopConfDir, "hadoop-conf-dir", "", "Directory holding core-site.xml and hdfs-site.xml")
	flags.StringVarP(&app.cfg.Prompt, "prompt", "p", "", "Prompt shown before each line")
	flags.StringVarP(&app.cfg.Editor, "editor", "e", "", "Line editor: prompt or readline")
	flags.StringVar(&app.cfg.HistoryFile, "history-file", "", "Persist command history to this file")
	flags.BoolVarP(&app.cfg.Verbose, "verbose", "v", false, "Log debug output to stderr")
	flags.BoolVarP(&app.cfg.Render, "render", "r", false, "Render help listings as markdown")

	rootCmd.AddCommand(app.newStandaloneCmd())
	rootCmd.AddCommand(app.newStatusCmd())
	rootCmd.AddCommand(app.newInitCmd())

	return rootCmd
}

// setup validates the config and applies the logging settings
func (app *App) setup() error {
	if err := app.cfg.Validate(); err != nil {
		return err
	}
	logging.Configure(
		logging.ParseLevel(app.cfg.LogLevel),
		logging.ParseFormat(app.cfg.LogFormat),
		app.err,
	)
	if app.cfg.Render {
		if err := display.InitRenderer(); err != nil {
			logging.Warn("Failed to initialize renderer", logging.Fields{"error": err.Error()})
		}
	}
	return nil
}

func (app *App) runRemote(ctx context.Context) error {
	if err := app.setup(); err != nil {
		return err
	}

	logging.Debug("Connecting", logging.Fields{
		"filesystem": app.cfg.FileSystem,
		"namenodes":  app.cfg.NameNodesString(),
		"user":       app.cfg.User,
	})
	fs, err := dfs.Open(app.cfg)
	if err != nil {
		return err
	}
	defer fs.Close()

	return app.runSession(ctx, fs, app.cfg.Prompt)
}

// runSession drives one REPL over fs until the user quits
func (app *App) runSession(ctx context.Context, fs dfs.FileSystem, prompt string) error {
	hist := history.NewHistory()
	if app.cfg.HistoryFile != "" {
		hist = history.NewFileHistory(app.cfg.HistoryFile)
		if err := hist.Load(); err != nil {
			display.ShowWarning(err.Error())
		}
	}

	ed, err := app.newEditor(app.cfg.Editor, editor.Options{
		Title: constants.AppName,
		Out:   app.out,
		Err:   app.err,
	})
	if err != nil {
		return err
	}

	local := afero.NewOsFs()
	r, err := repl.New(repl.Options{
		Config:    app.cfg,
		FS:        fs,
		Editor:    ed,
		Providers: []repl.Provider{commands.SessionProvider{}, commands.FSProvider{}},
		Out:       app.out,
		Err:       app.err,
		History:   hist,
		Local:     local,
		State:     cluster.NewStateManager(fs, local, logging.DefaultLogger),
		Logger:    logging.DefaultLogger,
		Context:   ctx,
	})
	if err != nil {
		ed.Close()
		return err
	}
	defer r.Close()

	loopErr := r.Loop(prompt)
	if err := hist.Save(); err != nil {
		display.ShowWarning(err.Error())
	}
	return loopErr
}

// report prints err and maps it to an exit code
func (app *App) report(err error) int {
	if err == nil {
		return constants.ExitOK
	}

	var exit *repl.ExitSignal
	if errors.As(err, &exit) {
		if exit.Code == constants.ExitOK {
			if exit.Message != "" {
				fmt.Fprintln(app.out, exit.Message)
			}
			return constants.ExitOK
		}
		fmt.Fprintln(app.err, exit.Error())
		return exit.Code
	}

	fmt.Fprintln(app.err, err.Error())
	if errors.Is(err, minicluster.ErrIO) {
		return constants.ExitIO
	}
	return constants.ExitFailure
}
