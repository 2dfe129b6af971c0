package main

import (
	"context"
	"log"
	"os"
	"runtime/debug"

	internalassets "github.com/NilushkaAI/vehicle-registration-frontend-new/internal/assets"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/internal/server"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/modules"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/modules/registry/presentation/controllers"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/application"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/configuration"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/eventbus"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/logging"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/metrics"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	logger := conf.Logger()

	// Set up OpenTelemetry if enabled
	var tracingCleanup func()
	if conf.OpenTelemetry.Enabled {
		tracingCleanup = logging.SetupTracing(
			context.Background(),
			conf.OpenTelemetry.ServiceName,
			conf.OpenTelemetry.TempoURL,
		)
		defer tracingCleanup()
		logger.Info("OpenTelemetry tracing enabled, exporting to Tempo at " + conf.OpenTelemetry.TempoURL)
	}

	bundle := application.LoadBundle()
	app := application.New(&application.ApplicationOptions{
		Bundle:   bundle,
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})
	if err := modules.Load(app, modules.BuiltInModules...); err != nil {
		log.Fatalf("failed to load modules: %v", err)
	}

	app.RegisterNavItems(modules.NavLinks...)
	app.RegisterHashFsAssets(internalassets.HashFS)
	app.RegisterControllers(
		controllers.NewStaticFilesController(app.HashFsAssets()),
	)
	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path))
	}
	options := &server.DefaultOptions{
		Logger:        logger,
		Configuration: conf,
		Application:   app,
		Entrypoint:    "server",
	}
	serverInstance, err := server.Default(options)
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}
	log.Printf("Listening on: %s\n", conf.Origin)
	if err := serverInstance.Start(conf.SocketAddress); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
