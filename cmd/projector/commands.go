package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rpgo/projection-engine/internal/config"
	"github.com/rpgo/projection-engine/internal/domain"
	"github.com/rpgo/projection-engine/internal/output"
	"github.com/rpgo/projection-engine/internal/server"
)

const shutdownTimeout = 30 * time.Second

// outputFlags are shared by commands that produce a report
type outputFlags struct {
	format string
	outDir string
	save   bool
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "format", "f", "", "output format: "+strings.Join(output.AvailableFormatterNames(), ", ")+" (default from PROJECTOR_FORMAT)")
	cmd.Flags().StringVarP(&o.outDir, "out", "o", "", "write output files into this directory")
	cmd.Flags().BoolVar(&o.save, "save", false, "write output files into PROJECTOR_OUTPUT_DIR")
}

// emit renders the report to stdout, or to files when an output directory applies
func (a *app) emit(cmd *cobra.Command, report *domain.Report, o outputFlags) error {
	name := o.format
	if name == "" {
		name = a.settings.Format
	}
	f, err := output.LookupFormatter(name)
	if err != nil {
		return err
	}

	dir := o.outDir
	if dir == "" && o.save {
		dir = a.settings.OutputDir
	}
	if dir == "" {
		data, err := f.Format(report)
		if err != nil {
			return fmt.Errorf("failed to format report: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	if f.Name() == "csv" {
		paths, err := output.ExportCSV(dir, report)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return nil
	}
	path, err := output.WriteFormatted(f, report, dir)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func newRunCmd(a *app) *cobra.Command {
	var o outputFlags
	cmd := &cobra.Command{
		Use:   "run <config>",
		Short: "Run every calculator present in a YAML, TOML or JSON configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				printIssues(cmd.ErrOrStderr(), err)
				return err
			}
			report, err := a.engine().Run(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return a.emit(cmd, report, o)
		},
	}
	o.register(cmd)
	return cmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config>",
		Short: "Check a configuration file without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s is invalid:\n", args[0])
				printIssues(cmd.ErrOrStderr(), err)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid (%s)\n", args[0], strings.Join(sections(cfg), ", "))
			return nil
		},
	}
}

// sections names the calculator sections present in a configuration
func sections(cfg *domain.Configuration) []string {
	var out []string
	if cfg.Buckets != nil {
		out = append(out, "buckets")
	}
	if cfg.Accumulation != nil {
		out = append(out, "accumulation")
	}
	if cfg.LumpSum != nil {
		out = append(out, "lump_sum")
	}
	if cfg.SharePlan != nil {
		out = append(out, "share_plan")
	}
	if cfg.SocialSecurity != nil {
		out = append(out, "social_security")
	}
	return out
}

func newAccumulateCmd(a *app) *cobra.Command {
	var (
		form config.AccumulationForm
		o    outputFlags
	)
	cmd := &cobra.Command{
		Use:   "accumulate",
		Short: "Forecast service-tiered contributions from form-style inputs",
		Example: "  projector accumulate --dob 03/10/1970 --years-of-service 20 \\\n" +
			"    --eligible-pay 100,000.00 --return 5.50 --pay-growth 3.00 --target-age 65",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := config.ParseAccumulationForm(form)
			if err != nil {
				printIssues(cmd.ErrOrStderr(), err)
				return err
			}
			report, err := a.engine().Run(cmd.Context(), &domain.Configuration{Accumulation: plan})
			if err != nil {
				return err
			}
			return a.emit(cmd, report, o)
		},
	}
	cmd.Flags().StringVar(&form.BirthDate, "dob", "", "date of birth (MM/DD/YYYY)")
	cmd.Flags().StringVar(&form.HireDate, "hire-date", "", "hire date (MM/DD/YYYY)")
	cmd.Flags().StringVar(&form.YearsOfService, "years-of-service", "", "completed years of service")
	cmd.Flags().StringVar(&form.EligiblePay, "eligible-pay", "", "eligible pay (1,234.56)")
	cmd.Flags().StringVar(&form.ReturnRate, "return", "", "annual return percent (5.50)")
	cmd.Flags().StringVar(&form.PayGrowthRate, "pay-growth", "", "annual pay growth percent (3.00)")
	cmd.Flags().StringVar(&form.TargetAge, "target-age", "", "target age")
	o.register(cmd)
	return cmd
}

func newExampleCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "example",
		Short: "Write an example configuration covering every calculator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.NewInputParser().WriteExample(out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "example configuration written to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "example_config.yaml", "destination file")
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculators over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := a.settings
			if addr != "" {
				settings.Addr = addr
			}
			srv := server.NewHTTPServer(a.engine(), settings, a.logger)
			return serve(cmd.Context(), srv, a.logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from PROJECTOR_ADDR)")
	return cmd
}

// serve runs srv until ctx is cancelled, then shuts it down gracefully
func serve(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed to start: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("server exited")
	return nil
}
