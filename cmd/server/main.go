package main

import (
	"context"

	"github.com/BerylCAtieno/social-content-agent/internal/config"
	"github.com/BerylCAtieno/social-content-agent/internal/generator"
	"github.com/BerylCAtieno/social-content-agent/internal/logging"
	"github.com/BerylCAtieno/social-content-agent/internal/web"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	bootLogger := logging.NewLoggerWithService("content-agent", config.GetEnv("LOG_LEVEL", "info"))
	config.LoadEnv(bootLogger)

	cfg, err := config.Load()
	if err != nil {
		bootLogger.WithError(err).Fatal("Failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		bootLogger.Fatal(err.Error())
	}
	logger := logging.NewLoggerWithService("content-agent", cfg.LogLevel)

	ctx := context.Background()

	geminiClient, err := generator.NewGeminiClient(ctx, cfg.APIKey, cfg.PostsModel, cfg.ImagePromptModel)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create Gemini client")
	}
	defer geminiClient.Close()

	imagenClient, err := generator.NewImagenClient(ctx, cfg.APIKey, cfg.ImageModel)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create Imagen client")
	}

	gen, err := generator.New(geminiClient, imagenClient, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create generator")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := web.NewMetrics(registry)

	handler := web.NewHandler(gen, logger, metrics, cfg.GenerationTimeout)

	router := gin.New()
	router.Use(gin.Recovery(), web.RequestLoggingMiddleware(logger))
	handler.Register(router)

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	router.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	logger.WithField("port", cfg.Port).Info("Social content agent starting")
	logger.Infof("Open http://localhost:%s/ in a browser", cfg.Port)

	if err := router.Run(":" + cfg.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
