// Package recommend packages solver and comparator output into RecommendationRecords.
// Numbers are carried through unchanged; the only arithmetic is savings clamping.
package recommend

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"gosupply/domain/core"
	"gosupply/domain/planning"
)

// Formatter builds recommendation records
type Formatter struct {
	now     core.Clock
	newID   func() core.ID
	printer *message.Printer
}

// Option configures a Formatter
type Option func(*Formatter)

// WithClock overrides the creation timestamp source
func WithClock(c core.Clock) Option {
	return func(f *Formatter) { f.now = c }
}

// WithIDs overrides record id generation
func WithIDs(gen func() core.ID) Option {
	return func(f *Formatter) { f.newID = gen }
}

// WithLanguage sets the locale used for number grouping in justifications
func WithLanguage(tag language.Tag) Option {
	return func(f *Formatter) { f.printer = message.NewPrinter(tag) }
}

// NewFormatter creates a formatter using the wall clock and UUIDv7 ids
func NewFormatter(opts ...Option) *Formatter {
	f := &Formatter{
		now:     core.SystemClock,
		newID:   core.NewID,
		printer: message.NewPrinter(language.English),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Formatter) record(s planning.Scenario, actions []planning.Action, justification string, details planning.Details) planning.RecommendationRecord {
	return planning.RecommendationRecord{
		ID:            f.newID(),
		Scenario:      s,
		Actions:       actions,
		Justification: justification,
		Details:       details,
		CreatedAt:     f.now().UTC(),
	}
}

func (f *Formatter) money(v float64) string {
	return f.printer.Sprintf("%.2f", v)
}

func (f *Formatter) units(v int64) string {
	return f.printer.Sprintf("%d", v)
}

// Savings is baseline - chosen, clamped to 0 when the chosen path is not strictly better.
func Savings(baseline, chosen float64) float64 {
	if chosen >= baseline {
		return 0
	}
	return baseline - chosen
}

func action(kind planning.ActionKind, target string, qty *int64, note string) planning.Action {
	return planning.Action{Kind: kind, Target: target, Quantity: qty, Note: note}
}
