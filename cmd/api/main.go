package main

import (
	"context"
	"net/http"

	"neighborhood-value-api/internal/config"
	"neighborhood-value-api/internal/handler"
	"neighborhood-value-api/internal/observability"
	"neighborhood-value-api/internal/repository"
	"neighborhood-value-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := observability.NewLogger(cfg.LogLevel)
	metrics := observability.NewMetrics()

	// Database connection
	conn, err := pgxpool.New(context.Background(), cfg.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close()

	// Initialize layers
	repo := repository.NewRepository(conn)

	rankingService := service.NewRankingService(repo, metrics, cfg.CacheTTL)
	marketService := service.NewMarketService(repo)

	rankingHandler := handler.NewRankingHandler(rankingService, metrics)
	marketHandler := handler.NewMarketHandler(marketService)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	v1.GET("/rankings", rankingHandler.Rankings)
	v1.GET("/overview", marketHandler.Overview)
	v1.GET("/counties", marketHandler.Counties)
	v1.GET("/counties/top", marketHandler.TopCounties)
	v1.GET("/counties/:county/stats", marketHandler.CountyStats)

	logger.Info().Str("address", cfg.ServerAddress).Msg("starting server")
	if err := r.Run(cfg.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
