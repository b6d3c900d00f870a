package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/DomRamond/feeling-whatsapp-app/internal/analysis/transcript"
	"github.com/DomRamond/feeling-whatsapp-app/internal/config"
	"github.com/DomRamond/feeling-whatsapp-app/internal/handler"
	model "github.com/DomRamond/feeling-whatsapp-app/internal/model/analysis"
	analysisservice "github.com/DomRamond/feeling-whatsapp-app/internal/service/analysis"
	sentimentservice "github.com/DomRamond/feeling-whatsapp-app/internal/service/sentiment"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	classifier, err := buildClassifier(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize sentiment classifier: %v; "+
			"set ARK_API_KEY and ARK_MODEL for the llm backend, or SENTIMENT_BACKEND=lexicon to run without credentials", err)
	}
	log.Printf("sentiment classifier ready (backend=%s, language=%s)", cfg.Sentiment.Backend, cfg.Sentiment.Language)

	labeler := sentimentservice.NewLabeler(classifier, cfg.Sentiment.Concurrency)
	analysisSvc := analysisservice.NewService(labeler, model.NewMemoryStore(), analysisservice.Options{
		FilterEnabled: cfg.Sentiment.FilterSystem || cfg.Sentiment.MinTextLength > 0,
		Filter: transcript.FilterOptions{
			DropSystemNotices: cfg.Sentiment.FilterSystem,
			MinTextLength:     cfg.Sentiment.MinTextLength,
		},
	})

	router := handler.NewRouter(analysisSvc, cfg.Upload.MaxBytes)

	startServer(ctx, cfg.Server, router)
}

func buildClassifier(ctx context.Context, cfg *config.Config) (sentimentservice.Classifier, error) {
	switch cfg.Sentiment.Backend {
	case config.BackendLexicon:
		return sentimentservice.LexiconClassifier{}, nil
	default:
		chatModel, err := cfg.AI.NewChatModel(ctx)
		if err != nil {
			return nil, err
		}
		return sentimentservice.NewLLMClassifier(ctx, chatModel, sentimentservice.Config{
			Language: cfg.Sentiment.Language,
			MaxChars: cfg.Sentiment.MaxChars,
			Timeout:  cfg.Sentiment.Timeout,
		})
	}
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("feeling-whatsapp backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
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
