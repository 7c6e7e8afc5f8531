package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/AbdulManan133/chatbot-Ui/internal/config"
	"github.com/AbdulManan133/chatbot-Ui/internal/handler"
	widgetHandler "github.com/AbdulManan133/chatbot-Ui/internal/handler/widget"
	"github.com/AbdulManan133/chatbot-Ui/internal/service/respond"
	"github.com/AbdulManan133/chatbot-Ui/internal/store"
	"github.com/AbdulManan133/chatbot-Ui/internal/telemetry"
	"github.com/AbdulManan133/chatbot-Ui/internal/widget"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file, using system environment only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	setupLogging(cfg.Log)

	opts, err := widget.LoadOptionsFile(cfg.Widget.OptionsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load widget options")
	}
	overrides := widget.Overrides{}
	if cfg.Widget.APIEndpoint != "" {
		overrides.APIEndpoint = &cfg.Widget.APIEndpoint
		opts = opts.Merge(overrides)
	}

	snapshotStore, cleanup, err := buildStore(ctx, cfg.Store)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize snapshot store")
	}
	defer cleanup()

	responder := buildResponder(ctx, cfg, opts)
	recorder := telemetry.NewLogRecorder(log.With().Str("component", "telemetry").Logger())

	surface := widgetHandler.NewWebSurface(log.With().Str("component", "surface").Logger())
	controller := widget.New(
		surface,
		snapshotStore,
		responder,
		recorder,
		log.With().Str("component", "widget").Logger(),
		optionsToOverrides(opts),
	)
	if err := controller.Init(ctx); err != nil {
		log.Fatal().Err(err).Msg("widget initialization failed")
	}
	defer controller.Destroy()

	router := handler.NewRouter(widgetHandler.New(controller, surface, log.With().Str("component", "handler").Logger()))

	startServer(ctx, cfg.Server, router)
}

func setupLogging(cfg config.LogConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func buildStore(ctx context.Context, cfg config.StoreConfig) (widget.Store, func(), error) {
	switch cfg.Backend {
	case config.StoreMemory:
		return store.NewMemory(), func() {}, nil
	case config.StoreRedis:
		rs, err := store.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("addr", cfg.RedisAddr).Msg("redis snapshot store connected")
		return rs, func() { _ = rs.Close() }, nil
	default:
		fs, err := store.NewFile(cfg.Dir)
		if err != nil {
			return nil, nil, err
		}
		return fs, func() {}, nil
	}
}

// buildResponder prefers the configured remote endpoint; the Ark model
// responder is the alternative. With neither, the widget runs on the
// keyword policy alone.
func buildResponder(ctx context.Context, cfg *config.Config, opts widget.Options) widget.Responder {
	if opts.APIEndpoint != "" {
		log.Info().Str("endpoint", opts.APIEndpoint).Msg("using remote HTTP responder")
		return respond.NewHTTP(opts.APIEndpoint)
	}
	if cfg.Ark.Enabled() {
		model, err := respond.NewModel(ctx, cfg.Ark, opts.BotName)
		if err != nil {
			log.Warn().Err(err).Msg("model responder unavailable, falling back to keyword policy")
			return nil
		}
		log.Info().Str("model", cfg.Ark.Model).Msg("using model responder")
		return model
	}
	log.Info().Msg("no responder configured, keyword policy only")
	return nil
}

// optionsToOverrides replays a fully merged Options value through the
// controller's own merge so the controller remains the single owner of
// its configuration.
func optionsToOverrides(opts widget.Options) widget.Overrides {
	typingMS := int(opts.TypingDelay.Milliseconds())
	messageMS := int(opts.MessageDelay.Milliseconds())
	return widget.Overrides{
		BotName:        &opts.BotName,
		WelcomeMessage: &opts.WelcomeMessage,
		APIEndpoint:    &opts.APIEndpoint,
		Responses:      opts.Responses,
		TypingDelayMS:  &typingMS,
		MessageDelayMS: &messageMS,
		AutoOpen:       &opts.AutoOpen,
		Theme:          &opts.Theme,
	}
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Info().Str("addr", serverCfg.Addr).Msg("chatbot widget listening")
	if err := runServer(ctx, srv); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
