package server

import (
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"

	"github.com/NilushkaAI/vehicle-registration-frontend-new/modules/registry/presentation/controllers"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/application"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/configuration"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/constants"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/middleware"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
	Entrypoint    string
}

func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	app := options.Application
	conf := options.Configuration

	// Core middleware stack with tracing capabilities
	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(options.Logger, middleware.DefaultLoggerOptions()), // This now creates the root span for each request

		middleware.TracedMiddleware("application"),
		middleware.Provide(constants.AppKey, app),

		middleware.TracedMiddleware("cors"),
		middleware.Cors(conf.Origin),

		middleware.TracedMiddleware("opsGuard"),
		middleware.OpsGuard(conf, options.Entrypoint),
	}

	// Add rate limiting middleware if enabled
	if conf.RateLimit.Enabled {
		var store limiter.Store
		var err error

		// Choose storage backend
		switch conf.RateLimit.Storage {
		case "redis":
			store, err = middleware.NewRedisStore(conf.RateLimit.RedisURL)
			if err != nil {
				options.Logger.WithError(err).Warn("Failed to create Redis store for rate limiting, falling back to memory")
				store = middleware.NewMemoryStore()
			}
		default:
			store = middleware.NewMemoryStore()
		}

		// Add global rate limiting middleware
		middlewares = append(middlewares,
			middleware.TracedMiddleware("rateLimit"),
			middleware.RateLimit(middleware.RateLimitConfig{
				RequestsPerPeriod: conf.RateLimit.GlobalRPS,
				Store:             store,
			}),
		)
	}

	if conf.Csrf.Enabled {
		middlewares = append(middlewares,
			middleware.TracedMiddleware("csrf"),
			csrf.Protect(
				[]byte(conf.Csrf.Secret),
				csrf.Secure(conf.Csrf.Secure),
				csrf.Path("/"),
			),
		)
	}

	middlewares = append(middlewares,
		middleware.TracedMiddleware("requestParams"),
		middleware.RequestParams(),
	)

	app.RegisterMiddleware(middlewares...)

	handlerOpts := controllers.ErrorHandlersOptions{
		Entrypoint: options.Entrypoint,
	}
	serverInstance := server.NewHTTPServer(
		app,
		controllers.NotFound(options.Application, handlerOpts),
		controllers.MethodNotAllowed(handlerOpts),
	)
	return serverInstance, nil
}
