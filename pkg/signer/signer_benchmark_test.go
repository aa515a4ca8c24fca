package signer_test

import (
	"testing"

	"github.com/dmitrymomot/formguard/pkg/signer"
)

func BenchmarkSignature(b *testing.B) {
	s, err := signer.New("benchmark-secret")
	if err != nil {
		b.Fatal(err)
	}
	s.AddValue("foo")
	s.AddKeyValue("session", "0f8fad5b-d9cb-469f-a165-70867728950e")

	for b.Loop() {
		if _, err := s.Signature(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkValidate(b *testing.B) {
	s, err := signer.New("benchmark-secret")
	if err != nil {
		b.Fatal(err)
	}
	s.AddValue("foo")
	s.AddKeyValue("session", "0f8fad5b-d9cb-469f-a165-70867728950e")

	tok, err := s.Signature()
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for b.Loop() {
		ok, err := s.Validate(tok)
		if err != nil || !ok {
			b.Fatal("validation failed", err)
		}
	}
}
