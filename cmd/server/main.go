package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/trogers1052/etf-analytics/internal/api"
	"github.com/trogers1052/etf-analytics/internal/config"
	"github.com/trogers1052/etf-analytics/internal/kafka"
	"github.com/trogers1052/etf-analytics/internal/marketdata"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg := config.Load()

	var fetcher marketdata.Fetcher = marketdata.NewYahooClient(cfg.MarketData.RequestTimeout)
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unreachable, running without cache")
		} else {
			fetcher = marketdata.NewCachedFetcher(fetcher, rdb, cfg.Redis.CacheTTL)
			log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.CacheTTL).Msg("OHLCV cache enabled")
		}
	}

	var producer *kafka.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		producer = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close()
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("analysis event publishing enabled")
	}

	handler := api.NewHandler(fetcher, producer, cfg.MarketData.DefaultPeriod)
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      api.SetupRoutes(handler),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("etf analytics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
