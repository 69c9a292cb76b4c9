package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/marcelsud/webhook-relay/channel"
	"github.com/marcelsud/webhook-relay/channel/jsonstore"
	channelredis "github.com/marcelsud/webhook-relay/channel/redis"
	"github.com/marcelsud/webhook-relay/config"
	"github.com/marcelsud/webhook-relay/hooklog/file"
	"github.com/marcelsud/webhook-relay/internal/http/chi"
	"github.com/marcelsud/webhook-relay/metrics"
	"github.com/marcelsud/webhook-relay/notify/telegram"
	"github.com/marcelsud/webhook-relay/provision"
	"github.com/marcelsud/webhook-relay/relay"
)

const TIMEOUT = 30 * time.Second

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Println(err)
		return
	}
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	repo, err := newChannelRepository(cfg)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer repo.Close(ctx)

	logStore, err := file.NewStore(cfg.DataDir)
	if err != nil {
		fmt.Println(err)
		return
	}

	channelService := channel.NewService(repo)

	// Every instance gets a default channel so unsigned testing works out of the box
	err = channelService.Ensure(ctx, channel.Channel{
		ID:             "default",
		Name:           "Default",
		TelegramChatID: cfg.TelegramChatID,
		CreatedAt:      time.Now().UTC(),
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	if cfg.ChannelsFile != "" {
		loader := provision.NewLoader()
		if err := loader.Load(cfg.ChannelsFile); err != nil {
			fmt.Println(err)
			return
		}
		if err := loader.Apply(ctx, channelService); err != nil {
			fmt.Println(err)
			return
		}
	}

	notifier := telegram.NewClient(cfg.TelegramBotToken)
	relayService := relay.NewService(repo, logStore, notifier, cfg.TelegramChatID, cfg.LogRejected)

	collector := metrics.NewStoreCollector(repo, logStore)
	exporter, err := metrics.NewOTelExporter(collector)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer exporter.Shutdown(ctx)

	r := chi.Handlers(ctx, channelService, relayService, logStore, exporter.ServeHTTP())
	srv := &http.Server{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Addr:         ":" + cfg.Port,
		Handler:      r,
	}

	errShutdown := make(chan error, 1)
	go shutdown(srv, ctx, errShutdown)
	fmt.Printf("Listening on port %s\n", cfg.Port)
	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		fmt.Println(err)
		return
	}
	err = <-errShutdown
	if err != nil {
		fmt.Println(err)
		return
	}
}

func newChannelRepository(cfg *config.Config) (channel.Repository, error) {
	switch cfg.Storage {
	case "redis":
		return channelredis.NewRepository(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	default:
		return jsonstore.NewRepository(cfg.DataDir)
	}
}

func shutdown(server *http.Server, ctxShutdown context.Context, errShutdown chan error) {
	<-ctxShutdown.Done()

	ctxTimeout, stop := context.WithTimeout(context.Background(), TIMEOUT)
	defer stop()

	err := server.Shutdown(ctxTimeout)
	switch err {
	case nil:
		fmt.Printf("\nShutting down server...\n")
		errShutdown <- nil
	case context.DeadlineExceeded:
		errShutdown <- fmt.Errorf("Forcing closing the server")
	default:
		errShutdown <- fmt.Errorf("Forcing closing the server")
	}
}
