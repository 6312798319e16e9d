// Command orderlyd runs the orderly platform daemon: the HTTP API, the
// tenant-aware capability bindings, and the background job runner.
package main

import (
	"context"
	"fmt"
	nethttp "net/http"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/orderly-app/orderly"
	"github.com/orderly-app/orderly/bolt"
	"github.com/orderly-app/orderly/customers/acme"
	"github.com/orderly-app/orderly/customers/beta"
	"github.com/orderly-app/orderly/customers/wayneent"
	"github.com/orderly-app/orderly/health"
	orderlyhttp "github.com/orderly-app/orderly/http"
	"github.com/orderly-app/orderly/job"
	"github.com/orderly-app/orderly/jsonweb"
	"github.com/orderly-app/orderly/kit/cli"
	"github.com/orderly-app/orderly/logger"
	"github.com/orderly-app/orderly/notification"
	"github.com/orderly-app/orderly/order"
	"github.com/orderly-app/orderly/tenancy"
)

var (
	version = "dev"
)

func main() {
	var opts daemonOpts

	cmd := cli.NewCommand(&cli.Program{
		Name: "orderlyd",
		Run:  func() error { return run(&opts) },
		Opts: []cli.Opt{
			{
				DestP:   &opts.httpBindAddress,
				Flag:    "http-bind-address",
				Default: ":8086",
				Desc:    "bind address for the HTTP API",
			},
			{
				DestP:   &opts.boltPath,
				Flag:    "bolt-path",
				Default: defaultBoltPath(),
				Desc:    "path to boltdb database",
			},
			{
				DestP:   &opts.logLevel,
				Flag:    "log-level",
				Default: zapcore.InfoLevel,
				Desc:    "supported log levels are debug, info, warn and error",
			},
			{
				DestP:   &opts.logFormat,
				Flag:    "log-format",
				Default: "auto",
				Desc:    "log output format: auto, logfmt, console or json",
			},
			{
				DestP:   &opts.tenants,
				Flag:    "tenants",
				Default: []string{"AcMe", "Beta", "WayneEnt"},
				Desc:    "known tenant identifiers, in canonical casing",
			},
			{
				DestP:   &opts.defaultTenant,
				Flag:    "default-tenant",
				Default: "",
				Desc:    "tenant assumed when no request signal resolves; trusted as-is",
			},
			{
				DestP:   &opts.tokenSecret,
				Flag:    "token-secret",
				Default: "",
				Desc:    "HMAC secret for API bearer tokens",
			},
			{
				DestP:   &opts.jobWorkers,
				Flag:    "job-workers",
				Default: job.DefaultWorkers,
				Desc:    "number of background job workers",
			},
		},
	})

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type daemonOpts struct {
	httpBindAddress string
	boltPath        string
	logLevel        zapcore.Level
	logFormat       string
	tenants         []string
	defaultTenant   string
	tokenSecret     string
	jobWorkers      int
}

func defaultBoltPath() string {
	dir := "."
	if u, err := user.Current(); err == nil {
		dir = u.HomeDir
	} else if home := os.Getenv("HOME"); home != "" {
		dir = home
	}
	return filepath.Join(dir, ".orderly", "orderly.bolt")
}

func run(opts *daemonOpts) error {
	logconf := logger.Config{
		Format: opts.logFormat,
		Level:  opts.logLevel,
	}
	log, err := logconf.New(os.Stdout)
	if err != nil {
		return err
	}
	defer log.Sync()
	log.Info("Starting orderlyd", zap.String("version", version))

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	ctx := context.Background()

	boltClient := bolt.NewClient(log.With(zap.String("service", "bolt")))
	boltClient.Path = opts.boltPath
	if err := boltClient.Open(ctx); err != nil {
		return fmt.Errorf("failed to open bolt db: %w", err)
	}
	defer boltClient.Close()

	registry := tenancy.NewRegistry(opts.tenants...)
	bindings := tenancy.NewBindings()

	// Default variants. Tenant-specific variants layer on top of these;
	// a tenant without a variant silently gets the default.
	var orderSvc orderly.OrderService = order.NewService(boltClient)
	orderSvc = order.NewLogger(log.With(zap.String("service", "order")), orderSvc)
	orderSvc = order.NewMetrics(reg, orderSvc)

	mailer := notification.NewLogMailer(log.With(zap.String("service", "mailer")))
	notificationSvc := notification.NewService(boltClient, mailer, log.With(zap.String("service", "notification")))

	healthSvc := health.NewService("orderlyd", version,
		health.WithCheck("bolt", boltClient),
	)

	if err := multierr.Combine(
		bindings.RegisterDefault(tenancy.OrderCapability, orderSvc),
		bindings.RegisterDefault(tenancy.NotificationCapability, notificationSvc),
		bindings.RegisterDefault(tenancy.HealthCapability, healthSvc),
	); err != nil {
		return err
	}

	// Tenant variants.
	if err := multierr.Combine(
		bindings.Register(tenancy.OrderCapability, "AcMe", acme.NewOrderService(orderSvc)),
		bindings.Register(tenancy.HealthCapability, "WayneEnt", wayneent.NewHealthService(healthSvc)),
		bindings.Register(tenancy.NotificationCapability, "Beta", beta.NewNotificationService(boltClient, mailer, log.With(zap.String("service", "notification"), zap.String("tenant", "beta")))),
	); err != nil {
		return err
	}

	// A broken binding table must abort startup, never surface mid-request.
	if err := bindings.Validate(); err != nil {
		return fmt.Errorf("invalid capability bindings: %w", err)
	}

	binder := tenancy.NewBinder(tenancy.BinderConfig{
		Registry:      registry,
		Bindings:      bindings,
		Organizations: boltClient,
		DefaultTenant: orderly.TenantID(opts.defaultTenant),
		Log:           log.With(zap.String("service", "tenancy")),
	})

	runner := job.NewRunner(job.RunnerConfig{
		Binder:  binder,
		Log:     log.With(zap.String("service", "job")),
		Workers: opts.jobWorkers,
	}, reg)

	handler := orderlyhttp.NewAPIHandler(&orderlyhttp.APIBackend{
		Log:         log.With(zap.String("service", "http")),
		TokenParser: jsonweb.NewTokenParser([]byte(opts.tokenSecret)),
		UserService: boltClient,
		Binder:      binder,
		Jobs:        runner,
		Registry:    reg,
	})

	srv := &nethttp.Server{
		Addr:    opts.httpBindAddress,
		Handler: handler,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("Listening", zap.String("addr", opts.httpBindAddress))
		errc <- srv.ListenAndServe()
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errc:
		return err
	case sig := <-sigc:
		log.Info("Shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return multierr.Combine(
		srv.Shutdown(shutdownCtx),
		runner.Close(),
	)
}
