package review

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ReadError reports that one domain's store read failed. A failed read
// aborts the whole generation; no partial report is produced.
type ReadError struct {
	Domain string
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Domain, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Options configures a Generator.
type Options struct {
	// Location is the timezone for period boundaries and hours of day.
	// Nil means time.Local.
	Location *time.Location
	// Now returns the current time. Nil means time.Now.
	Now func() time.Time
	// Thresholds is the insight rule policy. The zero value means DefaultThresholds.
	Thresholds *Thresholds
}

// Generator produces review reports from a store.
type Generator struct {
	q          Querier
	loc        *time.Location
	now        func() time.Time
	thresholds Thresholds
}

// NewGenerator creates a Generator reading from q.
func NewGenerator(q Querier, opts Options) *Generator {
	g := &Generator{
		q:          q,
		loc:        opts.Location,
		now:        opts.Now,
		thresholds: DefaultThresholds(),
	}
	if g.loc == nil {
		g.loc = time.Local
	}
	if g.now == nil {
		g.now = time.Now
	}
	if opts.Thresholds != nil {
		g.thresholds = *opts.Thresholds
	}
	return g
}

// Location returns the generator's timezone.
func (g *Generator) Location() *time.Location {
	return g.loc
}

// GenerateWeekly reviews the last seven days through the end of today.
func (g *Generator) GenerateWeekly(ctx context.Context) (*Report, error) {
	return g.Generate(ctx, WeeklyPeriod(g.now(), g.loc))
}

// GenerateMonthly reviews the current calendar month.
func (g *Generator) GenerateMonthly(ctx context.Context) (*Report, error) {
	return g.Generate(ctx, MonthlyPeriod(g.now(), g.loc))
}

// GenerateCustom reviews the caller-supplied window. The bounds are used
// as-is; ErrInvalidPeriod is returned if start is after end.
func (g *Generator) GenerateCustom(ctx context.Context, start, end time.Time) (*Report, error) {
	p, err := CustomPeriod(start, end)
	if err != nil {
		return nil, err
	}
	return g.Generate(ctx, p)
}

// Generate runs every aggregator for p concurrently, then the insight rules.
// The first read failure cancels the remaining reads and is returned as a
// *ReadError.
func (g *Generator) Generate(ctx context.Context, p Period) (*Report, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	log := zerolog.Ctx(ctx).With().
		Str("kind", string(p.Kind)).
		Time("start", p.Start).
		Time("end", p.End).
		Logger()
	began := time.Now()

	var (
		tasks    TasksSummary
		habits   HabitsSummary
		focus    FocusSummary
		pomodoro PomodoroSummary
		finance  FinanceSummary
	)

	eg, egCtx := errgroup.WithContext(ctx)
	aggregate(eg, egCtx, g, p, &log, "tasks", &tasks, AggregateTasks)
	aggregate(eg, egCtx, g, p, &log, "habits", &habits, AggregateHabits)
	aggregate(eg, egCtx, g, p, &log, "focus", &focus, AggregateFocus)
	aggregate(eg, egCtx, g, p, &log, "pomodoro", &pomodoro, AggregatePomodoro)
	aggregate(eg, egCtx, g, p, &log, "finance", &finance, AggregateFinance)
	if err := eg.Wait(); err != nil {
		log.Error().Err(err).Msg("review generation failed")
		return nil, err
	}

	report := Report{
		Period:   p,
		Tasks:    tasks,
		Habits:   habits,
		Focus:    focus,
		Pomodoro: pomodoro,
		Finance:  finance,
	}
	report.Insights = GenerateInsights(report, g.thresholds)

	log.Debug().
		Dur("elapsed", time.Since(began)).
		Int("insights", len(report.Insights)).
		Msg("review generated")
	return &report, nil
}

// aggregate schedules one aggregator on eg, storing its summary in dst.
func aggregate[T any](
	eg *errgroup.Group,
	ctx context.Context,
	g *Generator,
	p Period,
	log *zerolog.Logger,
	domain string,
	dst *T,
	fn func(context.Context, Querier, Period, *time.Location) (T, error),
) {
	eg.Go(func() error {
		began := time.Now()
		summary, err := fn(ctx, g.q, p, g.loc)
		if err != nil {
			return &ReadError{Domain: domain, Err: err}
		}
		*dst = summary
		log.Debug().Str("domain", domain).Dur("elapsed", time.Since(began)).Msg("aggregated")
		return nil
	})
}
