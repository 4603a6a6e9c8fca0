package core

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Clock returns the current time. Services take one so date windows are testable.
type Clock func() time.Time

// SystemClock is the wall clock.
func SystemClock() time.Time { return time.Now() }

// PeriodUnit is the calendar unit of a planning period
type PeriodUnit string

const (
	UnitDay     PeriodUnit = "day"
	UnitWeek    PeriodUnit = "week"
	UnitMonth   PeriodUnit = "month"
	UnitQuarter PeriodUnit = "quarter"
	UnitYear    PeriodUnit = "year"
)

// Period is a span such as "1 quarter" or "2 years"
type Period struct {
	Count int        `json:"count"`
	Unit  PeriodUnit `json:"unit"`
}

var periodPattern = regexp.MustCompile(`(?i)^\s*(\d+)\s+(quarter|month|year|week|day)s?\s*$`)

// ParsePeriod parses "<integer> <quarter|month|year|week|day>", case-insensitive and
// plural-tolerant.
func ParsePeriod(s string) (Period, error) {
	m := periodPattern.FindStringSubmatch(s)
	if m == nil {
		return Period{}, NewInvalidPeriod(s)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return Period{}, NewInvalidPeriod(s)
	}
	return Period{Count: n, Unit: PeriodUnit(strings.ToLower(m[2]))}, nil
}

// String renders the period in its canonical form
func (p Period) String() string {
	unit := string(p.Unit)
	if p.Count != 1 {
		unit += "s"
	}
	return strconv.Itoa(p.Count) + " " + unit
}

// AddTo moves t forward (sign=1) or backward (sign=-1) by the period.
func (p Period) AddTo(t time.Time, sign int) time.Time {
	n := p.Count * sign
	switch p.Unit {
	case UnitDay:
		return t.AddDate(0, 0, n)
	case UnitWeek:
		return t.AddDate(0, 0, 7*n)
	case UnitMonth:
		return t.AddDate(0, n, 0)
	case UnitQuarter:
		return t.AddDate(0, 3*n, 0)
	case UnitYear:
		return t.AddDate(n, 0, 0)
	}
	return t
}

// Window is a closed date range
type Window struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Ahead returns [today, today+p].
func (p Period) Ahead(now time.Time) Window {
	today := Day(now)
	return Window{From: today, To: p.AddTo(today, 1)}
}

// Behind returns [today-p, today].
func (p Period) Behind(now time.Time) Window {
	today := Day(now)
	return Window{From: p.AddTo(today, -1), To: today}
}

// Day truncates t to midnight in its location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// MonthKey formats t the way forecast target periods are stored ("2006-01").
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}
