package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/kbukum/taskflow/blueprint"
	"github.com/kbukum/taskflow/bootstrap"
	"github.com/kbukum/taskflow/config"
	"github.com/kbukum/taskflow/engine"
	"github.com/kbukum/taskflow/errors"
	"github.com/kbukum/taskflow/httpclient"
	"github.com/kbukum/taskflow/logger"
	"github.com/kbukum/taskflow/observability"
	"github.com/kbukum/taskflow/task"
	"github.com/kbukum/taskflow/taskio"
	"github.com/kbukum/taskflow/version"
)

const usage = "Usage: taskflow [flags] <tasks.csv>"

// flagKeys maps flag names onto config keys.
var flagKeys = map[string]string{
	"threshold":        "engine.threshold",
	"channel-capacity": "engine.channel_capacity",
	"max-in-flight":    "engine.max_in_flight",
	"fetch-url":        "blueprint.fetch_url",
	"fetch-timeout":    "blueprint.fetch_timeout",
	"delay":            "blueprint.delay",
	"rate-limit":       "http.rate_limiter.rate",
	"log-level":        "logging.level",
	"log-format":       "logging.format",
	"telemetry":        "telemetry.enabled",
	"otlp-endpoint":    "telemetry.endpoint",
	"environment":      "environment",
}

func newFlagSet(stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(serviceName, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, usage)
		fs.PrintDefaults()
	}

	fs.String("config", "", "path to config.yml")
	fs.String("env-file", "", "path to a .env file")
	fs.Bool("version", false, "print version and exit")

	fs.Int("threshold", engine.DefaultThreshold, "largest batch run with the bounded strategy")
	fs.Int("channel-capacity", engine.DefaultChannelCapacity, "bounded strategy channel capacity")
	fs.Int("max-in-flight", 0, "streaming strategy concurrency cap (0 = uncapped)")
	fs.String("fetch-url", blueprint.DefaultFetchURL, "endpoint requested by fetch_data")
	fs.Duration("fetch-timeout", blueprint.DefaultFetchTimeout, "fetch_data timeout")
	fs.Duration("delay", blueprint.DefaultDelay, "long_delay duration")
	fs.Float64("rate-limit", 0, "outbound requests per second (0 = unlimited)")
	fs.String("log-level", "info", "log level")
	fs.String("log-format", "console", "log format (console, json)")
	fs.Bool("telemetry", false, "export traces and metrics over OTLP/HTTP")
	fs.String("otlp-endpoint", "", "OTLP/HTTP collector endpoint (host:port)")
	fs.String("environment", "development", "deployment environment")
	return fs
}

// run executes the command and returns the process exit code. Results go to
// stdout; usage and diagnostics go to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet(stderr)
	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return errors.ExitOK
		}
		return errors.ExitBadInput
	}
	if v, _ := fs.GetBool("version"); v {
		fmt.Fprintln(stdout, version.Get().String())
		return errors.ExitOK
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, usage)
		return errors.ExitBadInput
	}
	path := fs.Arg(0)

	cfg := newAppConfig()
	configFile, _ := fs.GetString("config")
	envFile, _ := fs.GetString("env-file")
	if err := config.LoadConfig(serviceName, cfg,
		config.WithConfigFile(configFile),
		config.WithEnvFile(envFile),
		config.WithEnvPrefix("TASKFLOW"),
		config.WithFlags(fs, flagKeys),
	); err != nil {
		fmt.Fprintln(stderr, err)
		return errors.ExitBadInput
	}

	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return errors.ExitCode(err)
	}
	log := app.Logger

	inputs, err := taskio.ReadFile(path)
	if err != nil {
		log.Error("Cannot read batch", logger.F{}.Op("read_csv").Err(err))
		return errors.ExitCode(err)
	}

	if err := execute(ctx, app, inputs, stdout); err != nil {
		return errors.ExitCode(err)
	}
	return errors.ExitOK
}

// execute wires the components, runs the batch and writes the results.
func execute(ctx context.Context, app *bootstrap.App[*AppConfig], inputs []task.Input, stdout io.Writer) error {
	cfg := app.Cfg

	telemetry := observability.NewTelemetry(cfg.Telemetry, cfg.Name, cfg.Version, cfg.Environment)
	httpComp := httpclient.NewComponent(cfg.HTTP)
	if err := app.RegisterComponent(telemetry); err != nil {
		return err
	}
	if err := app.RegisterComponent(httpComp); err != nil {
		return err
	}

	app.Logger.Info("Build", version.Get().Fields())

	var orch *engine.Orchestrator
	app.OnStart(func(context.Context) error {
		metrics, err := observability.NewMetrics(observability.Meter(serviceName))
		if err != nil {
			return err
		}
		bpLog := logger.Get(logger.ComponentBlueprint)
		bp := blueprint.Default(
			cfg.Blueprint,
			blueprint.NewHTTPFetcher(httpComp.Client(), cfg.Blueprint.FetchURL),
			blueprint.NewLogNotifier(bpLog),
		).Instrument(bpLog, metrics)

		orch, err = engine.New(bp,
			engine.WithConfig(cfg.Engine),
			engine.WithLogger(logger.Get(logger.ComponentEngine)),
			engine.WithMetrics(metrics),
		)
		return err
	})

	return app.RunTask(ctx, func(ctx context.Context) error {
		final, err := orch.Execute(ctx, inputs)
		if err != nil {
			return err
		}
		completed, failed := final.Counts()
		app.Logger.Info("Batch results", map[string]interface{}{
			"rows":      len(inputs),
			"tasks":     final.Len(),
			"completed": completed,
			"failed":    failed,
		})
		return taskio.WriteCSV(stdout, final)
	})
}
