package common

import (
	"fmt"
	"net/http"
	_ "net/http/pprof"

	"go.uber.org/zap"
)

type PprofArgs struct {
	// PprofPort of zero leaves the profiler off.
	PprofPort uint `arg:"--pprof-port,env:TABULA_PPROF_PORT" default:"0"`
}

// StartPprofServer exposes the standard pprof endpoints on the default mux.
func StartPprofServer(port uint, logger *zap.Logger) {
	go func() {
		logger.Warn("pprof server stopped", zap.Error(http.ListenAndServe(fmt.Sprintf(":%d", port), nil)))
	}()
}
