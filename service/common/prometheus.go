package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type PrometheusArgs struct {
	// MetricsPort of zero leaves the metrics server off.
	MetricsPort uint `arg:"--metrics-port,env:TABULA_METRICS_PORT" default:"0"`
}

// StartPromMetricsServer serves /metrics in the background until the returned
// server is closed.
func StartPromMetricsServer(port uint, logger *zap.Logger) *http.Server {
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: router}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped unexpectedly", zap.Error(err))
		}
	}()
	logger.Info("serving metrics", zap.String("addr", srv.Addr))
	return srv
}
