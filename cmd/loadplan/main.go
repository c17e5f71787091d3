// Command loadplan is the CLI front-end to the loading-plan engine. It
// owns all I/O (manifest import, report rendering, metrics serving)
// and talks to the core packages only through the narrow contracts
// internal/importer, internal/planner and internal/report expose.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/piwi3910/loadplan/internal/cliconfig"
	"github.com/piwi3910/loadplan/internal/importer"
	"github.com/piwi3910/loadplan/internal/logx"
	"github.com/piwi3910/loadplan/internal/metrics"
	"github.com/piwi3910/loadplan/internal/model"
	"github.com/piwi3910/loadplan/internal/planner"
	"github.com/piwi3910/loadplan/internal/progress"
	"github.com/piwi3910/loadplan/internal/report"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

func main() {
	var strategyFlag string
	var formatFlag string
	var logLevelFlag string
	var metricsAddrFlag string

	root := &cobra.Command{
		Use:   "loadplan",
		Short: "loadplan — deterministic 3D container loading engine",
		Long:  "Packs a cargo manifest into shipping containers under one of several loading strategies, and reports the resulting plan.",
	}

	packCmd := &cobra.Command{
		Use:   "pack [manifest]",
		Short: "Pack a cargo manifest into containers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := logx.Init(logLevelFlag, ""); err != nil {
				return fmt.Errorf("init logging: %w", err)
			}

			cfg, err := cliconfig.Load(cliconfig.DefaultPath())
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			catalogue := cliconfig.CatalogueWithOverrides(cfg)

			strategy := strategyFlag
			if strategy == "" {
				strategy = cfg.DefaultStrategy
			}

			manifestPath := args[0]
			specs, err := loadManifest(manifestPath)
			if err != nil {
				return err
			}
			pool := planner.Presort(model.Expand(specs))

			if metricsAddrFlag != "" {
				go serveMetrics(metricsAddrFlag)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			shipment, err := runStrategy(ctx, strategy, catalogue, pool)
			if err != nil {
				return err
			}

			metrics.ItemsUnplacedTotal.Add(float64(len(shipment.Residual())))

			if err := cliconfig.Save(cliconfig.DefaultPath(), cliconfig.RememberManifest(cfg, manifestPath)); err != nil {
				logx.Warn("failed to persist config", "error", err)
			}

			return printReport(shipment, formatFlag)
		},
	}
	packCmd.Flags().StringVar(&strategyFlag, "strategy", "", "smart-mix | uniform:<type> | plan:<type,type,...> (default from config)")
	packCmd.Flags().StringVar(&formatFlag, "format", "text", "report format: text|json")
	packCmd.Flags().StringVar(&logLevelFlag, "log-level", "info", "debug|info|warn|error")
	packCmd.Flags().StringVar(&metricsAddrFlag, "metrics-addr", "", "if set, serve Prometheus metrics on this address (e.g. :9090)")

	root.AddCommand(packCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadManifest dispatches to the JSON or Excel importer based on the
// manifest's file extension and surfaces any per-row import problems
// before returning the usable specs.
func loadManifest(path string) ([]model.CargoSpec, error) {
	var result importer.ImportResult
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		result = importer.ImportExcel(path)
	} else {
		result = importer.ImportJSONFile(path)
	}

	for _, w := range result.Warnings {
		logx.Warn(w)
	}
	for _, e := range result.Errors {
		logx.Error(e)
	}
	if len(result.Specs) == 0 {
		return nil, fmt.Errorf("manifest %s produced no usable cargo specs", path)
	}
	return result.Specs, nil
}

// runStrategy parses the --strategy flag into a model.Strategy and
// dispatches to the matching planner entry point.
func runStrategy(ctx context.Context, strategyFlag string, catalogue *model.Catalogue, pool []model.Box) (model.Shipment, error) {
	reporter := progress.Func(func(stage string) { logx.Info(stage) })

	strategy, err := model.ParseStrategy(strategyFlag)
	if err != nil {
		return model.Shipment{}, err
	}

	switch strategy.Kind {
	case model.SmartMix:
		return planner.SmartMix(ctx, catalogue, pool, reporter), nil

	case model.Uniform:
		container, ok := catalogue.Get(strategy.UniformType)
		if !ok {
			return model.Shipment{}, fmt.Errorf("unknown container type %q", strategy.UniformType)
		}
		return planner.Uniform(ctx, container, pool, reporter), nil

	case model.Plan:
		var sequence []model.ContainerSpec
		for _, name := range strategy.PlanTypes {
			container, ok := catalogue.Get(name)
			if !ok {
				return model.Shipment{}, fmt.Errorf("unknown container type %q", name)
			}
			sequence = append(sequence, container)
		}
		return planner.Plan(ctx, sequence, pool, reporter), nil

	default:
		return model.Shipment{}, fmt.Errorf("unrecognized strategy kind %v", strategy.Kind)
	}
}

func printReport(shipment model.Shipment, format string) error {
	summary := report.Collect(shipment)
	switch format {
	case "json":
		data, err := report.RenderJSON(summary)
		if err != nil {
			return fmt.Errorf("render report: %w", err)
		}
		fmt.Println(string(data))
	default:
		fmt.Print(report.RenderText(summary))
	}
	return nil
}

// serveMetrics runs the Prometheus /metrics endpoint until the process
// exits. Errors are logged rather than propagated since metrics are an
// optional side-channel, not load-bearing for the pack itself.
func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logx.Error("metrics server stopped", "error", err)
	}
}
