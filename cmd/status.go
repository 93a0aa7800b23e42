package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quocvuong92/hadoop-repl/internal/config"
	"github.com/quocvuong92/hadoop-repl/internal/dfs"
	"github.com/quocvuong92/hadoop-repl/internal/display"
)

func (app *App) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the effective configuration and test the connection",
		Long: `Show the effective configuration and test the connection.

Connects to the configured filesystem and prints its capacity, the same
figures "df" reports inside the REPL.

Examples:
  hadoop-repl status
  hadoop-repl status -n namenode:8020`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runStatus()
		},
	}
}

func (app *App) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a commented default config file",
		Long: `Write a commented default config file to the user config directory.

An existing file is never overwritten.

Examples:
  hadoop-repl init`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.CreateDefaultConfigFile()
			if err != nil {
				return err
			}
			fmt.Fprintf(app.out, "Created %s\n", path)
			return nil
		},
	}
}

func (app *App) runStatus() error {
	if err := app.setup(); err != nil {
		return err
	}

	fmt.Fprintln(app.out, "Configuration:")
	fmt.Fprintln(app.out)
	fmt.Fprintf(app.out, "  Filesystem: %s\n", app.cfg.FileSystem)
	if app.cfg.IsLocal() {
		fmt.Fprintf(app.out, "  Root:       %s\n", app.cfg.LocalRoot)
	} else {
		fmt.Fprintf(app.out, "  Namenodes:  %s\n", app.cfg.NameNodesString())
		if app.cfg.User != "" {
			fmt.Fprintf(app.out, "  User:       %s\n", app.cfg.User)
		}
		if app.cfg.HadoopConfDir != "" {
			fmt.Fprintf(app.out, "  Conf dir:   %s\n", app.cfg.HadoopConfDir)
		}
	}
	fmt.Fprintf(app.out, "  Editor:     %s\n", app.cfg.Editor)
	if app.cfg.Cluster != nil {
		fmt.Fprintf(app.out, "  Cluster:    %s\n", app.cfg.Cluster.ID)
	}
	fmt.Fprintln(app.out)

	sp := display.NewSpinnerTo(app.err, "Connecting...")
	sp.Start()
	fs, err := dfs.Open(app.cfg)
	if err != nil {
		sp.Stop()
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer fs.Close()
	usage, err := fs.Usage()
	sp.Stop()
	if err != nil {
		return fmt.Errorf("failed to read usage of %s: %w", fs.URI(), err)
	}

	fmt.Fprintf(app.out, "  Connected:  %s\n", fs.URI())
	fmt.Fprintf(app.out, "  Capacity:   %d\n", usage.Capacity)
	fmt.Fprintf(app.out, "  Used:       %d\n", usage.Used)
	fmt.Fprintf(app.out, "  Remaining:  %d\n", usage.Remaining)
	return nil
}
