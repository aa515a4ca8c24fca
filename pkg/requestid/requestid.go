package requestid

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/google/uuid"

	"github.com/dmitrymomot/formguard/pkg/entropy"
	"github.com/dmitrymomot/formguard/pkg/logger"
)

const (
	Header      = "X-Request-ID"
	maxIDLength = 128
)

var validID = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

type contextKey struct{}

func WithContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}

// LogExtractor adds request_id to records logged with a request context.
func LogExtractor(ctx context.Context) (slog.Attr, bool) {
	if id := FromContext(ctx); id != "" {
		return logger.RequestID(id), true
	}
	return slog.Attr{}, false
}

// Generator assigns request ids.
type Generator struct {
	source *entropy.Source
}

// New returns a Generator drawing ids from src, or from entropy.Default when
// src is nil.
func New(src *entropy.Source) *Generator {
	if src == nil {
		src = entropy.Default()
	}
	return &Generator{source: src}
}

// NewID returns a fresh UUID v4. If the strong entropy chain fails it falls
// back to the weak hex generator, which is acceptable for correlation ids.
func (g *Generator) NewID() string {
	id, err := uuid.NewRandomFromReader(g.source.Reader())
	if err != nil {
		return g.source.HexString(32)
	}
	return id.String()
}

func (g *Generator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if !isValid(id) {
			id = g.NewID()
		}
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
	})
}

func isValid(id string) bool {
	return id != "" && len(id) <= maxIDLength && validID.MatchString(id)
}
