package main

import (
	"context"
	"html"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formguard/pkg/csrf"
	"github.com/dmitrymomot/formguard/pkg/logger"
	"github.com/dmitrymomot/formguard/pkg/requestid"
)

var tokenInput = regexp.MustCompile(`name="_token" value="([^"]+)"`)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	h, err := newRouter(AppConfig{
		Name: "demo",
		CSRF: csrf.Config{
			Secret:    "948thksehbf23fnoug2p4g2o7d3c1a0f",
			Validity:  csrf.DefaultValidity,
			FieldName: "_token",
		},
	}, logger.Noop())
	require.NoError(t, err)
	return h
}

func TestDemoForm(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	m := tokenInput.FindStringSubmatch(rec.Body.String())
	require.Len(t, m, 2)
	// Browsers decode attribute entities such as &#43; before submitting.
	tok := html.UnescapeString(m[1])
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	post := func(token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(url.Values{"_token": {token}}.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(cookies[0])
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	rec = post(tok)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Form submission ok.")
	assert.Regexp(t, tokenInput, rec.Body.String())

	rec = post(tok + "x")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token INVALID.")
}

func TestPageEscapesValues(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	err := page(pageParams{
		Title:     "demo",
		Message:   `<script>alert("x")</script>`,
		FieldName: "_token",
		Token:     `1:a"b:c`,
	}).Render(context.Background(), &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, `a"b`)
	assert.Contains(t, out, `name="_token"`)

	buf.Reset()
	err = page(pageParams{Title: "demo", Message: "Token INVALID."}).Render(context.Background(), &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Token INVALID.")
	assert.Contains(t, buf.String(), `href="/"`)
	assert.NotContains(t, buf.String(), "<form")
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequestIDHeader(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, rec.Header().Get(requestid.Header))
}
