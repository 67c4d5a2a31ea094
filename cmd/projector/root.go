package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rpgo/projection-engine/internal/calculation"
	"github.com/rpgo/projection-engine/internal/config"
)

// app carries process settings and the logger across subcommands
type app struct {
	envFile  string
	settings config.Settings
	logger   *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{settings: config.DefaultSettings()}

	root := &cobra.Command{
		Use:           "projector",
		Short:         "Periodic projection engine for savings buckets, contributions and benefits",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var files []string
			if a.envFile != "" {
				files = append(files, a.envFile)
			}
			settings, err := config.LoadSettings(files...)
			if err != nil {
				return err
			}
			a.settings = settings
			a.logger = newLogger(settings, cmd.ErrOrStderr())
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.envFile, "env-file", "", "load settings from this .env file instead of ./.env")

	root.AddCommand(
		newRunCmd(a),
		newValidateCmd(),
		newAccumulateCmd(a),
		newExampleCmd(),
		newServeCmd(a),
	)
	return root
}

// newLogger builds the slog logger described by the settings
func newLogger(settings config.Settings, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(settings.LogLevel))); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(settings.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// engine returns a calculation engine wired to the app logger
func (a *app) engine() *calculation.CalculationEngine {
	ce := calculation.NewCalculationEngine()
	ce.Parallelism = a.settings.Parallelism
	if a.logger != nil {
		ce.SetLogger(calculation.NewSlogLogger(a.logger))
	}
	return ce
}

// printIssues lists field-level validation problems, one per line
func printIssues(w io.Writer, err error) {
	issues := config.Issues(err)
	if len(issues) == 0 {
		fmt.Fprintf(w, "  %v\n", err)
		return
	}
	for _, is := range issues {
		fmt.Fprintf(w, "  [%s] %s\n", is.Kind, is.Message)
	}
}
