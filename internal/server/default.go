package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/middleware"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/server"
)

type DefaultOptions struct {
	Logger      *logrus.Logger
	Pool        *pgxpool.Pool
	Controllers []server.Controller
}

func Default(options *DefaultOptions) *server.HTTPServer {
	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(options.Logger),
		middleware.WithPool(options.Pool),
	}
	return &server.HTTPServer{
		Controllers:             options.Controllers,
		Middlewares:             middlewares,
		NotFoundHandler:         http.NotFoundHandler(),
		MethodNotAllowedHandler: methodNotAllowed(),
	}
}

func methodNotAllowed() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	})
}
