package api

import (
	"net/http"
	"sync"

	"coffee-order/app"
	"coffee-order/config"
	"coffee-order/libs"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	router  *gin.Engine
	initErr error
	once    sync.Once
)

func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)

		cfg := config.LoadConfig()
		logger, err := libs.NewLogger(cfg.AppEnv, cfg.LogLevel)
		if err != nil {
			logger = zap.NewNop()
		}

		application, err := app.New(cfg, logger)
		if err != nil {
			initErr = err
			logger.Error("init failed", zap.Error(err))
			return
		}
		router = application.Router
	})
}

// Handler is the serverless entry point.
func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	if initErr != nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}
	router.ServeHTTP(w, r)
}
