package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	service "github.com/okian/clubrecords/internal/app"
	"github.com/okian/clubrecords/internal/config"
	"github.com/okian/clubrecords/internal/verify"
	"github.com/okian/clubrecords/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// runFlags mirror the config fields that may be set on the command line.
// A flag only overrides the loaded config when it was given.
type runFlags struct {
	powerOf10   string
	runbritain  string
	firstYear   int
	lastYear    int
	clubID      int
	output      string
	cache       string
	serve       string
	metricsFile string
	grades      string
	ageGrades   string
	workers     int
	logLevel    string
}

func newRootCmd() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "clubrecords [records.xlsx ...]",
		Short: "Build club records and rankings from Po10, Runbritain and spreadsheets",
		Long: `Reads club records spreadsheets, fetches the club's ranking pages from
thepowerof10.info and runbritainrankings.com, and writes the top performances
per event, age group and gender as an HTML report.

Configuration is layered: defaults, the YAML file named by CLUBRECORDS_CONFIG,
CLUBRECORDS_* environment variables, then these flags.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecords(cmd, args, f)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.powerOf10, "powerof10", "y", "fetch Po10 rankings (y/n)")
	fl.StringVar(&f.runbritain, "runbritain", "y", "fetch Runbritain rankings (y/n)")
	fl.IntVar(&f.firstYear, "firstyear", 0, "first ranking year")
	fl.IntVar(&f.lastYear, "lastyear", 0, "last ranking year")
	fl.IntVar(&f.clubID, "clubid", 0, "club id on both ranking sites")
	fl.StringVar(&f.output, "output", "", "HTML report path")
	fl.StringVar(&f.cache, "cache", "", "SQLite page cache path; empty disables caching")
	fl.StringVar(&f.serve, "serve", "", "after the run, serve the results on this address, e.g. :9080")
	fl.StringVar(&f.metricsFile, "metrics", "", "write Prometheus metrics to this file")
	fl.StringVar(&f.grades, "grades", "", "club PB grade tables (YAML)")
	fl.StringVar(&f.ageGrades, "age-grades", "", "age grade tables (YAML)")
	fl.IntVar(&f.workers, "workers", 0, "concurrent fetch workers")
	fl.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")

	cmd.AddCommand(newVerifyCmd())
	return cmd
}

func runRecords(cmd *cobra.Command, args []string, f runFlags) error {
	ctx := cmd.Context()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if err := applyFlags(cfg, cmd.Flags(), f); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logger.Init(logger.WithWriter(cmd.OutOrStdout()), logger.WithJSON(cfg.LogJSON)); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	log := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc := service.New(cfg, service.WithLogger(log.Named("service")), service.WithFiles(args...))
	if err := svc.Run(ctx); err != nil {
		log.Error(ctx, "run failed", logger.Error(err))
		return err
	}
	if cfg.Addr == "" {
		return nil
	}
	return svc.Serve(ctx)
}

func applyFlags(cfg *config.Config, fs *pflag.FlagSet, f runFlags) error {
	if fs.Changed("powerof10") {
		v, err := parseYesNo(f.powerOf10)
		if err != nil {
			return fmt.Errorf("--powerof10: %w", err)
		}
		cfg.PowerOf10 = v
	}
	if fs.Changed("runbritain") {
		v, err := parseYesNo(f.runbritain)
		if err != nil {
			return fmt.Errorf("--runbritain: %w", err)
		}
		cfg.Runbritain = v
	}
	setInt := func(name string, dst *int, v int) {
		if fs.Changed(name) {
			*dst = v
		}
	}
	setString := func(name string, dst *string, v string) {
		if fs.Changed(name) {
			*dst = v
		}
	}
	setInt("firstyear", &cfg.FirstYear, f.firstYear)
	setInt("lastyear", &cfg.LastYear, f.lastYear)
	setInt("clubid", &cfg.ClubID, f.clubID)
	setInt("workers", &cfg.WorkerCount, f.workers)
	setString("output", &cfg.Output, f.output)
	setString("cache", &cfg.CacheFile, f.cache)
	setString("serve", &cfg.Addr, f.serve)
	setString("metrics", &cfg.MetricsFile, f.metricsFile)
	setString("grades", &cfg.GradesFile, f.grades)
	setString("age-grades", &cfg.AgeGradesFile, f.ageGrades)
	setString("log-level", &cfg.LogLevel, f.logLevel)
	return nil
}

func parseYesNo(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true", "1":
		return true, nil
	case "n", "no", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("want y or n, got %q", s)
}

func newVerifyCmd() *cobra.Command {
	cfg := verify.Config{}
	cmd := &cobra.Command{
		Use:          "verify",
		Short:        "Check the leaderboards served by a running instance",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr())); err != nil {
				return err
			}
			rep, err := verify.Run(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, v := range rep.Violations {
				fmt.Fprintln(out, v)
			}
			fmt.Fprintf(out, "%d boards, %d rows, %d violations\n", rep.Boards, rep.Entries, len(rep.Violations))
			if len(rep.Violations) > 0 {
				return verify.ErrViolation
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&cfg.BaseURL, "url", "http://localhost:9080", "base URL of the server")
	cmd.Flags().IntVar(&cfg.Concurrency, "concurrency", 4, "boards fetched at once")
	cmd.Flags().DurationVar(&cfg.Timeout, "timeout", 10*time.Second, "per request timeout")
	return cmd
}
