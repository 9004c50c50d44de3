package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/humanbelnik/cinebot/internal/config"
	stdio_chat "github.com/humanbelnik/cinebot/internal/delivery/stdio/chat"
	"github.com/humanbelnik/cinebot/internal/service/intent_classifier"
	"github.com/humanbelnik/cinebot/internal/service/reply_composer"
	usecase_suggest "github.com/humanbelnik/cinebot/internal/usecase/suggest"
)

// Run answers a single chat request read from stdin. Logs go to stderr only,
// stdout carries nothing but the reply document.
func Run(ctx context.Context, cfg *config.Config, stdin io.Reader, stdout, stderr io.Writer) error {
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.Logging.Level})).
		With(slog.String("run_id", uuid.NewString()))

	logger.Debug("chatbot config",
		slog.String("log_level", cfg.Logging.Level.String()),
		slog.Int("max_results", cfg.Ranking.MaxResults),
	)

	classifier := intent_classifier.New()
	composer := reply_composer.New()
	suggestUC := usecase_suggest.New(classifier, composer,
		usecase_suggest.WithLimit(cfg.Ranking.MaxResults),
		usecase_suggest.WithLogger(logger),
	)

	controller := stdio_chat.New(suggestUC, stdio_chat.WithLogger(logger))
	return controller.Serve(ctx, stdin, stdout)
}
