// Command formguard-demo serves a single form protected by package csrf.
//
// Submitting the form unchanged succeeds; editing the hidden token, removing
// the binding cookie or waiting past the validity window makes it fail.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/formguard/pkg/config"
	"github.com/dmitrymomot/formguard/pkg/csrf"
	"github.com/dmitrymomot/formguard/pkg/entropy"
	"github.com/dmitrymomot/formguard/pkg/environment"
	"github.com/dmitrymomot/formguard/pkg/httpserver"
	"github.com/dmitrymomot/formguard/pkg/logger"
	"github.com/dmitrymomot/formguard/pkg/requestid"
)

type AppConfig struct {
	Env  string `env:"APP_ENV" envDefault:"development"`
	Name string `env:"APP_NAME" envDefault:"formguard-demo"`

	HTTP httpserver.Config
	CSRF csrf.Config
}

func main() {
	cfg := config.MustLoad[AppConfig]()
	env := environment.Parse(cfg.Env)

	log := logger.New(
		logger.WithEnvironment(string(env), cfg.Name),
		logger.WithContextExtractors(requestid.LogExtractor),
	)
	logger.SetAsDefault(log)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("demo stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg AppConfig, log *slog.Logger) error {
	router, err := newRouter(cfg, log)
	if err != nil {
		return err
	}

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, router)
}

func newRouter(cfg AppConfig, log *slog.Logger) (http.Handler, error) {
	src := entropy.New(entropy.WithLogger(log))

	protector, err := csrf.NewFromConfig(cfg.CSRF,
		csrf.WithLogger(log),
		csrf.WithEntropy(src),
		csrf.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			render(w, r, http.StatusBadRequest, page(pageParams{
				Title:   cfg.Name,
				Message: "Token INVALID.",
			}))
		}),
	)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(requestid.New(src).Middleware)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.Group(func(r chi.Router) {
		r.Use(protector.Middleware)

		form := func(message string) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				tok, err := csrf.Token(r)
				if err != nil {
					log.ErrorContext(r.Context(), "issue token", logger.Error(err))
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					return
				}
				render(w, r, http.StatusOK, page(pageParams{
					Title:     cfg.Name,
					Message:   message,
					FieldName: protector.FieldName(),
					Token:     tok,
				}))
			}
		}

		r.Get("/", form(""))
		r.Post("/", form("Form submission ok."))
	})

	return r, nil
}
