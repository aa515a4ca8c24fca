package csrf

import (
	"net/http"
)

// Extractor pulls the presented token from a request.
type Extractor func(r *http.Request) (string, error)

// HeaderExtractor reads the token from a request header.
func HeaderExtractor(name string) Extractor {
	return func(r *http.Request) (string, error) {
		if tok := r.Header.Get(name); tok != "" {
			return tok, nil
		}
		return "", ErrTokenMissing
	}
}

// FormExtractor reads the token from a url-encoded or multipart form field.
func FormExtractor(field string) Extractor {
	return func(r *http.Request) (string, error) {
		if tok := r.PostFormValue(field); tok != "" {
			return tok, nil
		}
		return "", ErrTokenMissing
	}
}

// ChainExtractors returns the first token any extractor finds.
func ChainExtractors(extractors ...Extractor) Extractor {
	return func(r *http.Request) (string, error) {
		for _, ex := range extractors {
			if tok, err := ex(r); err == nil {
				return tok, nil
			}
		}
		return "", ErrTokenMissing
	}
}
