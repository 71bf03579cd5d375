package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ekaya-inc/metaseed/pkg/llm"
	"github.com/ekaya-inc/metaseed/pkg/logging"
	"github.com/ekaya-inc/metaseed/pkg/prompts"
)

// DescriptionResult is the outcome of describing one column. When Fallback
// is set, Text holds the fixed fallback sentence and Err says why.
type DescriptionResult struct {
	Text     string
	Fallback bool
	Err      error
}

// FallbackDescription is the text used whenever generation fails.
func FallbackDescription(column, table string) string {
	return fmt.Sprintf("Auto-description for %s in %s.", column, table)
}

// ColumnDescriber produces a business description for a column.
// It never fails: any generation error yields the fallback text.
type ColumnDescriber interface {
	Describe(ctx context.Context, col prompts.ColumnContext) DescriptionResult
}

type columnDescriber struct {
	generator llm.TextGenerator
	timeout   time.Duration
	logger    *zap.Logger
}

// NewColumnDescriber creates a describer making exactly one generation call
// per column. timeout bounds each call; zero means no per-call bound.
func NewColumnDescriber(generator llm.TextGenerator, timeout time.Duration, logger *zap.Logger) ColumnDescriber {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &columnDescriber{
		generator: generator,
		timeout:   timeout,
		logger:    logger.Named("column-describer"),
	}
}

func (d *columnDescriber) Describe(ctx context.Context, col prompts.ColumnContext) DescriptionResult {
	if d.generator == nil {
		return d.fallback(col, fmt.Errorf("no text generator configured"))
	}

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	text, err := d.generator.Generate(ctx, prompts.BuildColumnDescriptionPrompt(col))
	if err != nil {
		return d.fallback(col, err)
	}

	d.logger.Debug("Generated column description",
		zap.String("table", col.Table),
		zap.String("column", col.Column),
		zap.String("description", logging.TruncateString(text, logging.MaxLoggedTextLength)))

	return DescriptionResult{Text: text}
}

func (d *columnDescriber) fallback(col prompts.ColumnContext, err error) DescriptionResult {
	classified := llm.ClassifyError(err)
	d.logger.Warn("Column description fell back",
		zap.String("table", col.Table),
		zap.String("column", col.Column),
		zap.String("error_type", string(classified.Type)),
		zap.Bool("retryable", classified.Retryable),
		zap.String("error", logging.SanitizeError(err)))

	return DescriptionResult{
		Text:     FallbackDescription(col.Column, col.Table),
		Fallback: true,
		Err:      err,
	}
}
