package source

import (
	"context"
	"errors"
	"strings"
	"testing"

	"radiohost/core"
	"radiohost/services/wikipedia"
)

type fakeEncyclopedia struct {
	result wikipedia.LookupResult
	err    error
	calls  int
}

func (f *fakeEncyclopedia) Lookup(ctx context.Context, title string) (wikipedia.LookupResult, error) {
	f.calls++
	return f.result, f.err
}

func TestFetchTruncates(t *testing.T) {
	cfg := core.DefaultRunConfig()
	cfg.SourceMaxChars = 500
	cfg.SourceMinChars = 100

	enc := &fakeEncyclopedia{result: wikipedia.LookupResult{
		Exists: true,
		Text:   strings.Repeat("x", 2000),
	}}

	text, err := Fetch(context.Background(), enc, "MS Dhoni", cfg)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(text) != 500 {
		t.Errorf("Fetch returned %d chars, want 500", len(text))
	}
}

func TestFetchNotFound(t *testing.T) {
	cfg := core.DefaultRunConfig()
	enc := &fakeEncyclopedia{result: wikipedia.LookupResult{Exists: false}}

	_, err := Fetch(context.Background(), enc, "No Such Page", cfg)
	if !errors.Is(err, core.ErrPageNotFound) {
		t.Fatalf("Fetch error = %v, want ErrPageNotFound", err)
	}
}

func TestFetchTooShort(t *testing.T) {
	cfg := core.DefaultRunConfig()

	enc := &fakeEncyclopedia{result: wikipedia.LookupResult{
		Exists: true,
		Text:   "A stub.",
	}}

	_, err := Fetch(context.Background(), enc, "Stub Page", cfg)
	if !errors.Is(err, core.ErrSourceTooShort) {
		t.Fatalf("Fetch error = %v, want ErrSourceTooShort", err)
	}
}

func TestFetchTruncationBeforeMinimumCheck(t *testing.T) {
	// A page long enough before truncation but under minimum after it
	// still fails: the remainder is discarded, not re-fetched.
	cfg := core.DefaultRunConfig()
	cfg.SourceMaxChars = 200
	cfg.SourceMinChars = 300

	enc := &fakeEncyclopedia{result: wikipedia.LookupResult{
		Exists: true,
		Text:   strings.Repeat("y", 1000),
	}}

	_, err := Fetch(context.Background(), enc, "Any", cfg)
	if !errors.Is(err, core.ErrSourceTooShort) {
		t.Fatalf("Fetch error = %v, want ErrSourceTooShort", err)
	}
	if enc.calls != 1 {
		t.Errorf("Lookup called %d times, want 1", enc.calls)
	}
}
