package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/crewdeck/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "crewdeck: %v\n", err)
		return 1
	}
	return 0
}

func newRootCommand() *cobra.Command {
	var (
		configPath  string
		pollSeconds int
		screen      string
	)

	root := &cobra.Command{
		Use:           "crewdeck",
		Short:         "Terminal dashboard for crew and vessel administration",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), app.Options{
				ConfigPath: configPath,
				PollEvery:  pollSeconds,
				Screen:     screen,
			})
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "override config path (optional)")
	root.PersistentFlags().IntVar(&pollSeconds, "poll", 0, "refresh interval in seconds (optional, defaults to refresh_seconds)")
	root.Flags().StringVar(&screen, "screen", "", "screen to open first")

	root.AddCommand(
		tableCommand(&configPath),
		importCommand(&configPath),
		screensCommand(),
	)
	return root
}

func tableCommand(configPath *string) *cobra.Command {
	var opts app.TableOptions
	cmd := &cobra.Command{
		Use:   "table <screen>",
		Short: "Print one screen as a plain table",
		Long:  "Load records once, apply search, facet filters, sort and hidden columns, and print the resulting table.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.ConfigPath = *configPath
			opts.Screen = args[0]
			return app.Print(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.Search, "search", "", "case-insensitive text search")
	cmd.Flags().StringArrayVar(&opts.Facets, "facet", nil, "facet selection as key=value (repeatable)")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "sort column as key or key:desc")
	cmd.Flags().StringArrayVar(&opts.Hide, "hide", nil, "column key to hide (repeatable)")
	return cmd
}

func importCommand(configPath *string) *cobra.Command {
	var opts app.ImportOptions
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Seed the SQLite database from a YAML fixture",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.ConfigPath = *configPath
			return app.Import(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.From, "from", "", "fixture file (default: embedded demo data)")
	cmd.Flags().StringVar(&opts.DB, "db", "", "database path (default: db_path from config)")
	return cmd
}

func screensCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "screens",
		Short: "List screen ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.ListScreens(cmd.OutOrStdout())
		},
	}
}
