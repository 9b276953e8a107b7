package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/drivefetch/drivefetch/internal/app/model"
)

type mockRecorder struct {
	mu     sync.Mutex
	events []model.ConversionEvent
	err    error
}

func (m *mockRecorder) Record(event model.ConversionEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

func (m *mockRecorder) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}

func newTestConverter(rec ConversionRecorder) *Converter {
	return NewConverter(ConverterDeps{
		Delay:    0,
		Notifier: NewNotifier(time.Minute, time.Second),
		Recorder: rec,
	})
}

func TestConverter_Generate_Success(t *testing.T) {
	rec := &mockRecorder{}
	c := newTestConverter(rec)

	res := c.Generate(context.Background(), "s1",
		"https://drive.google.com/file/d/1A2b_3C-xyz/view?usp=sharing")

	want := "https://drive.google.com/uc?export=download&id=1A2b_3C-xyz"
	if res.OutputLink != want {
		t.Fatalf("output = %q, want %q", res.OutputLink, want)
	}
	if !res.CopyEnabled {
		t.Fatal("copy should be enabled after a successful generation")
	}
	if res.Status.Message != model.MsgGenerated || res.Status.Severity != model.SeveritySuccess {
		t.Fatalf("unexpected status: %+v", res.Status)
	}
	if rec.count() != 1 {
		t.Fatalf("expected 1 recorded conversion, got %d", rec.count())
	}
	if rec.events[0].FileID != "1A2b_3C-xyz" {
		t.Fatalf("recorded file id = %q", rec.events[0].FileID)
	}
}

func TestConverter_Generate_EmptyInput(t *testing.T) {
	rec := &mockRecorder{}
	c := NewConverter(ConverterDeps{
		// A delay is configured, but the empty-input path must return
		// immediately without entering the pause.
		Delay:    2 * time.Second,
		Notifier: NewNotifier(time.Minute, time.Second),
		Recorder: rec,
	})

	start := time.Now()
	res := c.Generate(context.Background(), "s1", "   ")
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Fatalf("empty input entered the processing pause (took %v)", elapsed)
	}

	if res.OutputLink != "" || res.CopyEnabled {
		t.Fatalf("empty input must not produce output: %+v", res)
	}
	if res.Status.Message != model.MsgEmptyInput || res.Status.Severity != model.SeverityError {
		t.Fatalf("unexpected status: %+v", res.Status)
	}
	if rec.count() != 0 {
		t.Fatal("empty input must not be recorded")
	}
}

func TestConverter_Generate_NoMatch(t *testing.T) {
	rec := &mockRecorder{}
	c := newTestConverter(rec)

	res := c.Generate(context.Background(), "s1", "https://example.com/not-a-drive-link")

	if res.OutputLink != "" || res.CopyEnabled {
		t.Fatalf("no-match must not produce output: %+v", res)
	}
	if res.Status.Message != model.MsgInvalidLink || res.Status.Severity != model.SeverityError {
		t.Fatalf("unexpected status: %+v", res.Status)
	}
	if rec.count() != 0 {
		t.Fatal("no-match must not be recorded")
	}
}

func TestConverter_Generate_ClearsPreviousOutput(t *testing.T) {
	c := newTestConverter(nil)

	c.Generate(context.Background(), "s1", "https://drive.google.com/open?id=XyZ789_-")
	if !c.CopyEnabled("s1") {
		t.Fatal("expected output after first generation")
	}

	res := c.Generate(context.Background(), "s1", "https://example.com/other")
	if res.OutputLink != "" || c.CopyEnabled("s1") {
		t.Fatal("failed generation must clear the previous output")
	}
}

func TestConverter_RecordDeduplicatesFileIDs(t *testing.T) {
	rec := &mockRecorder{}
	c := newTestConverter(rec)

	c.Generate(context.Background(), "s1", "https://drive.google.com/file/d/same-id/view")
	c.Generate(context.Background(), "s2", "https://drive.google.com/open?id=same-id")

	if rec.count() != 1 {
		t.Fatalf("expected duplicate file id to be recorded once, got %d", rec.count())
	}
}

func TestConverter_Copy(t *testing.T) {
	c := newTestConverter(nil)

	// No output yet: informational status, clipboard untouched.
	status := c.Copy("s1", true)
	if status.Message != model.MsgNothingToCopy || status.Severity != model.SeverityInfo {
		t.Fatalf("unexpected status: %+v", status)
	}

	c.Generate(context.Background(), "s1", "https://drive.google.com/open?id=XyZ789_-")

	status = c.Copy("s1", true)
	if status.Message != model.MsgCopied || status.Severity != model.SeveritySuccess {
		t.Fatalf("unexpected status: %+v", status)
	}

	status = c.Copy("s1", false)
	if status.Message != model.MsgCopyFailed || status.Severity != model.SeverityError {
		t.Fatalf("unexpected status: %+v", status)
	}
}

func TestConverter_SessionsAreIndependent(t *testing.T) {
	c := newTestConverter(nil)

	c.Generate(context.Background(), "a", "https://drive.google.com/open?id=aaa")
	c.Generate(context.Background(), "b", "not a link")

	if got := c.Output("a"); got != "https://drive.google.com/uc?export=download&id=aaa" {
		t.Fatalf("session a output = %q", got)
	}
	if c.Output("b") != "" {
		t.Fatal("session b should have no output")
	}
}
