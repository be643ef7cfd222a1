package commands

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/deweydb/dewey/internal/app"
)

// Execute runs the CLI application. Without a subcommand it opens the window.
func Execute(version string) error {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	root := NewRootCmd(version)
	err := root.Execute()
	if err != nil {
		slog.Error("command failed", "error", err.Error())
	}
	return err
}

// NewRootCmd builds the command tree
func NewRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:           "dewey",
		Short:         "Desktop database manager",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			return app.Run(cmd.Context(), app.Options{ConfigPath: path, Version: version})
		},
	}
	root.SetContext(context.Background())

	root.PersistentFlags().String("config", "", "Path to config.yaml (default: user config dir, then ./config.yaml)")

	root.AddCommand(NewRouteCmd())
	root.AddCommand(NewNormalizeCmd())
	root.AddCommand(NewVersionCmd(version))
	return root
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
