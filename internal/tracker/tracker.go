// ABOUTME: Tracker service tying storage to the nutrient engine.
// ABOUTME: Writes trigger a serialized per-day recompute that atomically replaces the snapshot.
package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/harperreed/nutrients/internal/models"
	"github.com/harperreed/nutrients/internal/nutrition"
	"github.com/harperreed/nutrients/internal/storage"
)

// Tracker owns a repository and the profile needed to compute statuses.
type Tracker struct {
	repo   storage.Repository
	isMale bool
	logger *slog.Logger
	now    func() time.Time
	days   dayLocks
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithClock overrides the source of "today".
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// New creates a Tracker over repo. isMale selects RDAs.
func New(repo storage.Repository, isMale bool, opts ...Option) *Tracker {
	t := &Tracker{
		repo:   repo,
		isMale: isMale,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Repo returns the underlying repository.
func (t *Tracker) Repo() storage.Repository { return t.repo }

// IsMale reports the profile sex flag.
func (t *Tracker) IsMale() bool { return t.isMale }

// Today returns the current calendar day.
func (t *Tracker) Today() time.Time { return models.Day(t.now()) }

// LogFood validates and stores item, then recomputes its day.
func (t *Tracker) LogFood(ctx context.Context, item *models.FoodLogItem) (*models.DailySnapshot, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if err := t.repo.CreateFood(item); err != nil {
		return nil, fmt.Errorf("log food: %w", err)
	}
	t.logger.Debug("food logged",
		slog.String("id", item.ID.String()),
		slog.String("date", models.DateKey(item.Date)),
		slog.Bool("needs_confirmation", item.NeedsConfirmation))
	return t.Recompute(ctx, item.Date)
}

// DeleteFood removes a food by id or prefix and recomputes its day.
func (t *Tracker) DeleteFood(ctx context.Context, idOrPrefix string) (*models.FoodLogItem, error) {
	item, err := t.repo.GetFood(idOrPrefix)
	if err != nil {
		return nil, err
	}
	if err := t.repo.DeleteFood(item.ID.String()); err != nil {
		return nil, err
	}
	if _, err := t.Recompute(ctx, item.Date); err != nil {
		return item, err
	}
	return item, nil
}

// RecordMetric validates and stores a burn reading, then recomputes its day.
func (t *Tracker) RecordMetric(ctx context.Context, m *models.Metric) (*models.DailySnapshot, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := t.repo.CreateMetric(m); err != nil {
		return nil, fmt.Errorf("record metric: %w", err)
	}
	return t.Recompute(ctx, m.RecordedAt)
}

// DeleteMetric removes a burn reading and recomputes its day.
func (t *Tracker) DeleteMetric(ctx context.Context, idOrPrefix string) (*models.Metric, error) {
	m, err := t.repo.GetMetric(idOrPrefix)
	if err != nil {
		return nil, err
	}
	if err := t.repo.DeleteMetric(m.ID.String()); err != nil {
		return nil, err
	}
	if _, err := t.Recompute(ctx, m.RecordedAt); err != nil {
		return m, err
	}
	return m, nil
}

// Recompute rebuilds a day's snapshot from its food log and burn readings
// and replaces the stored one. Only one recompute per day runs at a time.
// A cancelled context leaves the previous snapshot in place.
func (t *Tracker) Recompute(ctx context.Context, date time.Time) (*models.DailySnapshot, error) {
	day := models.Day(date)
	key := models.DateKey(day)

	unlock := t.days.lock(key)
	defer unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	foods, err := t.repo.ListFoodsByDate(day)
	if err != nil {
		return nil, fmt.Errorf("recompute %s: %w", key, err)
	}
	metrics, err := t.repo.ListMetricsByDate(day)
	if err != nil {
		return nil, fmt.Errorf("recompute %s: %w", key, err)
	}

	statuses := nutrition.ComputeDailyStatus(foods, t.isMale, models.BurnFromMetrics(metrics))

	if err := ctx.Err(); err != nil {
		t.logger.Warn("recompute abandoned", slog.String("date", key), slog.String("error", err.Error()))
		return nil, err
	}
	if err := t.repo.ReplaceSnapshot(day, statuses); err != nil {
		t.logger.Warn("snapshot write failed", slog.String("date", key), slog.String("error", err.Error()))
		return nil, fmt.Errorf("recompute %s: %w", key, err)
	}

	t.logger.Debug("snapshot recomputed",
		slog.String("date", key),
		slog.Int("foods", len(foods)),
		slog.Int("burn_readings", len(metrics)))
	return &models.DailySnapshot{Date: day, Statuses: statuses}, nil
}

// Status returns the stored snapshot for date, or the zero state when the
// day was never computed.
func (t *Tracker) Status(ctx context.Context, date time.Time) (*models.DailySnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	day := models.Day(date)
	snap, err := t.repo.GetSnapshot(day)
	if err != nil {
		return nil, fmt.Errorf("status %s: %w", models.DateKey(day), err)
	}
	if snap == nil {
		return &models.DailySnapshot{Date: day, Statuses: nutrition.ComputeDailyStatus(nil, t.isMale, nil)}, nil
	}
	return snap, nil
}

// Nudge ranks nutrients over the nudge window ending at date.
// Returns nil when none of those days has a snapshot.
func (t *Tracker) Nudge(ctx context.Context, date time.Time) (*nutrition.Nudge, error) {
	history, err := t.history(ctx, date, nutrition.NudgeWindow)
	if err != nil {
		return nil, err
	}
	return nutrition.CalculateNudge(history), nil
}

// Trends returns per-nutrient series for days ending at end.
func (t *Tracker) Trends(ctx context.Context, end time.Time, days int) ([]models.TrendSeries, error) {
	if days <= 0 {
		days = nutrition.DefaultTrendDays
	}
	history, err := t.history(ctx, end, days)
	if err != nil {
		return nil, err
	}
	return nutrition.BuildTrends(history, end, days), nil
}

// history loads the stored snapshots for days calendar days ending at end.
// Reads run concurrently; missing days are omitted.
func (t *Tracker) history(ctx context.Context, end time.Time, days int) ([]models.DailySnapshot, error) {
	last := models.Day(end)
	found := make([]*models.DailySnapshot, days)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < days; i++ {
		date := last.AddDate(0, 0, -i)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			snap, err := t.repo.GetSnapshot(date)
			if err != nil {
				return fmt.Errorf("load snapshot %s: %w", models.DateKey(date), err)
			}
			found[i] = snap
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	history := make([]models.DailySnapshot, 0, days)
	for _, s := range found {
		if s != nil {
			history = append(history, *s)
		}
	}
	return history, nil
}
