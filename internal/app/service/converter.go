package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/drivefetch/drivefetch/internal/app/model"
	infraprom "github.com/drivefetch/drivefetch/internal/infra/prometheus"
	"go.uber.org/zap"
)

// ConversionRecorder receives successful conversions for the history pipeline.
type ConversionRecorder interface {
	Record(event model.ConversionEvent) error
}

const (
	bloomExpectedItems = 100_000
	bloomFalsePositive = 0.01
)

// Converter sequences a generation request: clear previous state, validate,
// pause for the fixed artificial delay, extract, then publish the outcome.
//
// Each session owns one output slot. Nothing serializes concurrent requests
// for the same session: if two generations overlap, the later-completing one
// overwrites the earlier one's output and status.
type Converter struct {
	delay    time.Duration
	notifier *Notifier
	recorder ConversionRecorder
	logger   *zap.Logger

	mu      sync.Mutex
	outputs map[string]string
	seen    *bloom.BloomFilter
}

// ConverterDeps groups dependencies for the converter.
type ConverterDeps struct {
	Delay    time.Duration
	Notifier *Notifier
	Recorder ConversionRecorder
	Logger   *zap.Logger
}

// NewConverter creates a converter with the provided dependencies.
func NewConverter(deps ConverterDeps) *Converter {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{
		delay:    deps.Delay,
		notifier: deps.Notifier,
		recorder: deps.Recorder,
		logger:   logger,
		outputs:  make(map[string]string),
		seen:     bloom.NewWithEstimates(bloomExpectedItems, bloomFalsePositive),
	}
}

// GenerateResult is what a generation attempt hands back to the caller.
type GenerateResult struct {
	OutputLink  string
	CopyEnabled bool
	Status      model.Status
}

// Generate runs one conversion attempt for the session.
func (c *Converter) Generate(ctx context.Context, sessionID, input string) GenerateResult {
	// Stale state never leaks into a new attempt.
	c.setOutput(sessionID, "")
	c.notifier.Clear(sessionID)

	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		infraprom.ConversionsTotal.WithLabelValues(infraprom.OutcomeEmpty).Inc()
		c.notifier.Show(sessionID, model.MsgEmptyInput, model.SeverityError)
		return c.result(sessionID)
	}

	// Fixed processing pause. Deliberately not tied to the request context:
	// the pause is cosmetic and always runs to completion.
	start := time.Now()
	time.Sleep(c.delay)
	infraprom.ConversionDelaySeconds.Observe(time.Since(start).Seconds())

	fileID, ok := ExtractFileID(trimmed)
	if !ok {
		infraprom.ConversionsTotal.WithLabelValues(infraprom.OutcomeNoMatch).Inc()
		c.notifier.Show(sessionID, model.MsgInvalidLink, model.SeverityError)
		return c.result(sessionID)
	}

	output := DirectDownloadURL(fileID)
	c.setOutput(sessionID, output)

	infraprom.ConversionsTotal.WithLabelValues(infraprom.OutcomeSuccess).Inc()
	c.notifier.Show(sessionID, model.MsgGenerated, model.SeveritySuccess)
	c.recordConversion(fileID, trimmed, output)

	return c.result(sessionID)
}

// Copy resolves a clipboard attempt against the session's output state.
// wrote reports whether the browser-side clipboard write succeeded; it is
// ignored when there is no output to copy.
func (c *Converter) Copy(sessionID string, wrote bool) model.Status {
	if c.Output(sessionID) == "" {
		infraprom.CopiesTotal.WithLabelValues(infraprom.CopyOutcomeNoLink).Inc()
		c.notifier.Show(sessionID, model.MsgNothingToCopy, model.SeverityInfo)
	} else if wrote {
		infraprom.CopiesTotal.WithLabelValues(infraprom.CopyOutcomeSuccess).Inc()
		c.notifier.Show(sessionID, model.MsgCopied, model.SeveritySuccess)
	} else {
		infraprom.CopiesTotal.WithLabelValues(infraprom.CopyOutcomeFailed).Inc()
		c.notifier.Show(sessionID, model.MsgCopyFailed, model.SeverityError)
		c.logger.Error("clipboard write failed in client",
			zap.String("session_id", sessionID))
	}

	status, _ := c.notifier.Status(sessionID)
	return status
}

// Output returns the session's current output link, empty when none.
func (c *Converter) Output(sessionID string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outputs[sessionID]
}

// CopyEnabled mirrors the copy control's enablement: true exactly when the
// session holds a non-empty output value.
func (c *Converter) CopyEnabled(sessionID string) bool {
	return c.Output(sessionID) != ""
}

func (c *Converter) setOutput(sessionID, output string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if output == "" {
		delete(c.outputs, sessionID)
		return
	}
	c.outputs[sessionID] = output
}

func (c *Converter) recordConversion(fileID, input, output string) {
	if c.recorder == nil {
		return
	}

	c.mu.Lock()
	dup := c.seen.TestString(fileID)
	if !dup {
		c.seen.AddString(fileID)
	}
	c.mu.Unlock()
	if dup {
		// Probably recorded already; a false positive only costs a history row.
		return
	}

	event := model.ConversionEvent{
		FileID:    fileID,
		InputURL:  input,
		OutputURL: output,
		Timestamp: time.Now(),
	}
	if err := c.recorder.Record(event); err != nil {
		c.logger.Error("failed to record conversion",
			zap.String("file_id", fileID), zap.Error(err))
	}
}

func (c *Converter) result(sessionID string) GenerateResult {
	status, _ := c.notifier.Status(sessionID)
	return GenerateResult{
		OutputLink:  c.Output(sessionID),
		CopyEnabled: c.CopyEnabled(sessionID),
		Status:      status,
	}
}
