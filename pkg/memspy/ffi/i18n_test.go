package ffi

import (
	"testing"

	"github.com/memspy-dev/memspy/pkg/memspy"
)

func TestLocalizedMessageKnownLocale(t *testing.T) {
	got := LocalizedMessage("de", "process-not-attached")
	want := "Prozess nicht angehängt"
	if got != want {
		t.Errorf("LocalizedMessage(de, process-not-attached) = %q, want %q", got, want)
	}
}

func TestLocalizedMessageFallsBackToKey(t *testing.T) {
	got := LocalizedMessage("xx-unknown-locale", "process-not-attached")
	if got != "process-not-attached" {
		t.Errorf("LocalizedMessage() = %q, want fallback to key", got)
	}

	got = LocalizedMessage("en", "no-such-key")
	if got != "no-such-key" {
		t.Errorf("LocalizedMessage() = %q, want fallback to key", got)
	}
}

func TestLocalizedErrorUsesTaxonomy(t *testing.T) {
	got := LocalizedError("en", memspy.ErrMalformedPattern)
	want := LocalizedMessage("en", "malformed-pattern")
	if got != want {
		t.Errorf("LocalizedError() = %q, want %q", got, want)
	}
}
