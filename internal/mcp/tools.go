// ABOUTME: MCP tool implementations for the nutrient tracker.
// ABOUTME: Logging food or burn recomputes the day; reads return persisted snapshots.
package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/nutrients/internal/models"
	"github.com/harperreed/nutrients/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_food",
		Description: "Log a food with its macros and recompute that day's nutrient status",
	}, s.handleLogFood)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_foods",
		Description: "List logged foods for a day, or the most recent foods",
	}, s.handleListFoods)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_food",
		Description: "Delete a logged food by ID or ID prefix and recompute its day",
	}, s.handleDeleteFood)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "record_burn",
		Description: "Record an activity or sleep reading (active_calories, steps, sleep_hours)",
	}, s.handleRecordBurn)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_status",
		Description: "Get the nutrient status snapshot for a day",
	}, s.handleGetStatus)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_nudge",
		Description: "Get the recommendation for the nutrient most at risk over the last three days",
	}, s.handleGetNudge)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_trend",
		Description: "Get daily percent-of-target history per nutrient",
	}, s.handleGetTrend)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "classify",
		Description: "Classify a fraction of target into a deficiency tier",
	}, s.handleClassify)
}

// Tool input/output types

type logFoodInput struct {
	Name       string  `json:"name" jsonschema:"Food name"`
	Calories   float64 `json:"calories" jsonschema:"Calories (kcal)"`
	Protein    float64 `json:"protein,omitempty" jsonschema:"Protein in grams"`
	Carbs      float64 `json:"carbs,omitempty" jsonschema:"Carbohydrates in grams"`
	Fat        float64 `json:"fat,omitempty" jsonschema:"Fat in grams"`
	Meal       string  `json:"meal,omitempty" jsonschema:"Meal (breakfast, lunch, dinner, snack, other), defaults to other"`
	Date       string  `json:"date,omitempty" jsonschema:"Day to log against (YYYY-MM-DD), defaults to today"`
	LoggedAt   string  `json:"logged_at,omitempty" jsonschema:"Time eaten (ISO 8601), sets the day when given"`
	SourceNote string  `json:"source_note,omitempty" jsonschema:"Where the entry came from (manual, voice, camera)"`
}

type statusView struct {
	Nutrient   string `json:"nutrient"`
	Name       string `json:"name"`
	Display    string `json:"display"`
	Target     string `json:"target"`
	Percent    int    `json:"percent"`
	Tier       string `json:"tier"`
	NeedsBadge bool   `json:"needs_badge"`
	OverLimit  bool   `json:"over_limit,omitempty"`
	SourceHint string `json:"source_hint,omitempty"`
}

type foodOutput struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Date              string       `json:"date"`
	NeedsConfirmation bool         `json:"needs_confirmation"`
	Message           string       `json:"message"`
	Flagged           []statusView `json:"flagged,omitempty"`
}

type listFoodsInput struct {
	Date  string `json:"date,omitempty" jsonschema:"Day to list (YYYY-MM-DD); omit for most recent foods"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max results when no date is given (default 20)"`
}

type deleteInput struct {
	ID string `json:"id" jsonschema:"ID or unique ID prefix"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type recordBurnInput struct {
	MetricType string  `json:"metric_type" jsonschema:"Reading type (active_calories, steps, sleep_hours)"`
	Value      float64 `json:"value" jsonschema:"The reading value"`
	RecordedAt string  `json:"recorded_at,omitempty" jsonschema:"Timestamp (ISO 8601), defaults to now"`
	Notes      string  `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type metricOutput struct {
	ID         string  `json:"id"`
	MetricType string  `json:"metric_type"`
	Value      float64 `json:"value"`
	Unit       string  `json:"unit"`
	Date       string  `json:"date"`
	Message    string  `json:"message"`
}

type getStatusInput struct {
	Date        string `json:"date,omitempty" jsonschema:"Day (YYYY-MM-DD), defaults to today"`
	OnlyFlagged bool   `json:"only_flagged,omitempty" jsonschema:"Only return low, deficient and critical nutrients"`
}

type statusOutput struct {
	Date     string       `json:"date"`
	Statuses []statusView `json:"statuses"`
}

type getNudgeInput struct {
	Date string `json:"date,omitempty" jsonschema:"Last day of the window (YYYY-MM-DD), defaults to today"`
}

type nudgeOutput struct {
	Nutrient          string  `json:"nutrient,omitempty"`
	Name              string  `json:"name,omitempty"`
	Message           string  `json:"message"`
	PredictionPercent int     `json:"prediction_percent"`
	RiskScore         float64 `json:"risk_score"`
}

type getTrendInput struct {
	Days     int    `json:"days,omitempty" jsonschema:"Number of days ending today (default 7)"`
	Nutrient string `json:"nutrient,omitempty" jsonschema:"Only this nutrient (e.g. iron, vit_d)"`
}

type trendView struct {
	Nutrient string    `json:"nutrient"`
	Name     string    `json:"name"`
	Tier     string    `json:"tier"`
	Dates    []string  `json:"dates"`
	Percents []float64 `json:"percents"`
}

type classifyInput struct {
	Fraction float64 `json:"fraction" jsonschema:"Effective intake divided by target (0.0-1.0)"`
}

type classifyOutput struct {
	Tier       string `json:"tier"`
	Label      string `json:"label"`
	NeedsBadge bool   `json:"needs_badge"`
}

// Tool handlers

func (s *Server) handleLogFood(ctx context.Context, req *mcp.CallToolRequest, input logFoodInput) (*mcp.CallToolResult, foodOutput, error) {
	meal := models.MealOther
	if input.Meal != "" {
		if !models.IsValidMealCategory(input.Meal) {
			return nil, foodOutput{}, fmt.Errorf("unknown meal: %s", input.Meal)
		}
		meal = models.MealCategory(input.Meal)
	}

	item := models.NewFoodLogItem(input.Name, meal, models.Macros{
		Calories: input.Calories,
		Protein:  input.Protein,
		Carbs:    input.Carbs,
		Fat:      input.Fat,
	}).WithDate(s.tracker.Today())

	if input.Date != "" {
		day, err := storage.ParseDateKey(input.Date)
		if err != nil {
			return nil, foodOutput{}, fmt.Errorf("invalid date %q: %w", input.Date, err)
		}
		item.WithDate(day)
	}
	if input.LoggedAt != "" {
		at, err := parseTimestamp(input.LoggedAt)
		if err != nil {
			return nil, foodOutput{}, err
		}
		item.WithLoggedAt(at)
	}
	if input.SourceNote != "" {
		item.WithSourceNote(input.SourceNote)
	}

	snap, err := s.tracker.LogFood(ctx, item)
	if err != nil {
		return nil, foodOutput{}, fmt.Errorf("failed to log food: %w", err)
	}

	msg := fmt.Sprintf("Logged %s for %s (ID: %s)", item.Name, models.DateKey(item.Date), shortID(item.ID.String()))
	if item.NeedsConfirmation {
		msg += fmt.Sprintf("; %.0f kcal is unusually high, please confirm", item.Macros.Calories)
	}

	return nil, foodOutput{
		ID:                shortID(item.ID.String()),
		Name:              item.Name,
		Date:              models.DateKey(item.Date),
		NeedsConfirmation: item.NeedsConfirmation,
		Message:           msg,
		Flagged:           statusViews(snap.Statuses, true),
	}, nil
}

func (s *Server) handleListFoods(ctx context.Context, req *mcp.CallToolRequest, input listFoodsInput) (*mcp.CallToolResult, any, error) {
	repo := s.tracker.Repo()

	var (
		foods []*models.FoodLogItem
		err   error
	)
	if input.Date != "" {
		day, perr := storage.ParseDateKey(input.Date)
		if perr != nil {
			return nil, nil, fmt.Errorf("invalid date %q: %w", input.Date, perr)
		}
		foods, err = repo.ListFoodsByDate(day)
	} else {
		if input.Limit <= 0 {
			input.Limit = 20
		}
		foods, err = repo.ListFoods(input.Limit)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list foods: %w", err)
	}

	if len(foods) == 0 {
		return nil, map[string]interface{}{"message": "No foods found."}, nil
	}

	return nil, foods, nil
}

func (s *Server) handleDeleteFood(ctx context.Context, req *mcp.CallToolRequest, input deleteInput) (*mcp.CallToolResult, simpleOutput, error) {
	item, err := s.tracker.DeleteFood(ctx, input.ID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete food: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted %s from %s", item.Name, models.DateKey(item.Date)),
	}, nil
}

func (s *Server) handleRecordBurn(ctx context.Context, req *mcp.CallToolRequest, input recordBurnInput) (*mcp.CallToolResult, metricOutput, error) {
	if !models.IsValidMetricType(input.MetricType) {
		return nil, metricOutput{}, fmt.Errorf("unknown metric type: %s", input.MetricType)
	}

	m := models.NewMetric(models.MetricType(input.MetricType), input.Value)

	if input.RecordedAt != "" {
		at, err := parseTimestamp(input.RecordedAt)
		if err != nil {
			return nil, metricOutput{}, err
		}
		m.WithRecordedAt(at)
	}

	if input.Notes != "" {
		m.WithNotes(input.Notes)
	}

	if _, err := s.tracker.RecordMetric(ctx, m); err != nil {
		return nil, metricOutput{}, fmt.Errorf("failed to record burn: %w", err)
	}

	return nil, metricOutput{
		ID:         shortID(m.ID.String()),
		MetricType: input.MetricType,
		Value:      m.Value,
		Unit:       m.Unit,
		Date:       models.DateKey(m.RecordedAt),
		Message:    fmt.Sprintf("Recorded %s: %.2f %s (ID: %s)", input.MetricType, m.Value, m.Unit, shortID(m.ID.String())),
	}, nil
}

func (s *Server) handleGetStatus(ctx context.Context, req *mcp.CallToolRequest, input getStatusInput) (*mcp.CallToolResult, statusOutput, error) {
	day, err := s.dayOrToday(input.Date)
	if err != nil {
		return nil, statusOutput{}, err
	}

	snap, err := s.tracker.Status(ctx, day)
	if err != nil {
		return nil, statusOutput{}, fmt.Errorf("failed to get status: %w", err)
	}

	return nil, statusOutput{
		Date:     models.DateKey(snap.Date),
		Statuses: statusViews(snap.Statuses, input.OnlyFlagged),
	}, nil
}

func (s *Server) handleGetNudge(ctx context.Context, req *mcp.CallToolRequest, input getNudgeInput) (*mcp.CallToolResult, nudgeOutput, error) {
	day, err := s.dayOrToday(input.Date)
	if err != nil {
		return nil, nudgeOutput{}, err
	}

	nudge, err := s.tracker.Nudge(ctx, day)
	if err != nil {
		return nil, nudgeOutput{}, fmt.Errorf("failed to compute nudge: %w", err)
	}
	if nudge == nil {
		return nil, nudgeOutput{Message: "No history yet. Log some food first."}, nil
	}

	return nil, nudgeOutput{
		Nutrient:          nudge.HighestRisk.String(),
		Name:              nudge.HighestRisk.Name(),
		Message:           nudge.Message,
		PredictionPercent: nudge.PredictionPercent,
		RiskScore:         nudge.RiskScore,
	}, nil
}

func (s *Server) handleGetTrend(ctx context.Context, req *mcp.CallToolRequest, input getTrendInput) (*mcp.CallToolResult, any, error) {
	var only *models.NutrientID
	if input.Nutrient != "" {
		id, err := models.ParseNutrientID(input.Nutrient)
		if err != nil {
			return nil, nil, err
		}
		only = &id
	}

	series, err := s.tracker.Trends(ctx, s.tracker.Today(), input.Days)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build trends: %w", err)
	}

	views := make([]trendView, 0, len(series))
	for _, ts := range series {
		if only != nil && ts.Nutrient != *only {
			continue
		}
		v := trendView{
			Nutrient: ts.Nutrient.String(),
			Name:     ts.Nutrient.Name(),
			Tier:     ts.Tier.String(),
			Dates:    make([]string, 0, len(ts.Points)),
			Percents: make([]float64, 0, len(ts.Points)),
		}
		for _, p := range ts.Points {
			v.Dates = append(v.Dates, models.DateKey(p.Date))
			v.Percents = append(v.Percents, p.Percent)
		}
		views = append(views, v)
	}

	return nil, views, nil
}

func (s *Server) handleClassify(ctx context.Context, req *mcp.CallToolRequest, input classifyInput) (*mcp.CallToolResult, classifyOutput, error) {
	tier := models.Classify(input.Fraction)
	return nil, classifyOutput{
		Tier:       tier.String(),
		Label:      tier.Label(),
		NeedsBadge: tier.NeedsBadge(),
	}, nil
}

// Helpers

func (s *Server) dayOrToday(key string) (time.Time, error) {
	if key == "" {
		return s.tracker.Today(), nil
	}
	day, err := storage.ParseDateKey(key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", key, err)
	}
	return day, nil
}

func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(time.Local), nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q: use RFC 3339 or YYYY-MM-DD HH:MM", s)
}

func statusViews(statuses []models.NutrientStatus, onlyFlagged bool) []statusView {
	views := make([]statusView, 0, len(statuses))
	for _, st := range statuses {
		if onlyFlagged && !st.Tier.NeedsBadge() {
			continue
		}
		views = append(views, statusView{
			Nutrient:   st.Nutrient.String(),
			Name:       st.Nutrient.Name(),
			Display:    st.DisplayValue,
			Target:     strings.TrimSpace(fmt.Sprintf("%.1f %s", st.AdjustedTarget, st.Nutrient.Unit())),
			Percent:    int(st.PercentOfTarget() * 100),
			Tier:       st.Tier.String(),
			NeedsBadge: st.Tier.NeedsBadge(),
			OverLimit:  st.OverLimit(),
			SourceHint: st.SourceHint,
		})
	}
	return views
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
