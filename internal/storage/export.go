// ABOUTME: Export and import functionality for tracker data.
// ABOUTME: Supports JSON (round-trippable), YAML, and Markdown export formats.
package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/harperreed/nutrients/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is bumped when the JSON layout changes incompatibly.
const ExportVersion = "1.0"

// ExportData represents the full export format for tracker data.
type ExportData struct {
	Version    string                 `json:"version" yaml:"version"`
	ExportedAt time.Time              `json:"exported_at" yaml:"exported_at"`
	Tool       string                 `json:"tool" yaml:"tool"`
	Foods      []*models.FoodLogItem  `json:"foods" yaml:"foods"`
	Metrics    []*models.Metric       `json:"metrics" yaml:"metrics"`
	Snapshots  []models.DailySnapshot `json:"snapshots" yaml:"snapshots"`
}

// CollectExport gathers every record from repo through its list methods.
func CollectExport(repo Repository) (*ExportData, error) {
	foods, err := repo.ListFoods(0)
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}

	metrics, err := repo.ListMetrics(nil, 0)
	if err != nil {
		return nil, fmt.Errorf("list metrics: %w", err)
	}

	dates, err := repo.ListSnapshotDates()
	if err != nil {
		return nil, fmt.Errorf("list snapshot dates: %w", err)
	}
	snapshots := make([]models.DailySnapshot, 0, len(dates))
	for _, date := range dates {
		snap, err := repo.GetSnapshot(date)
		if err != nil {
			return nil, fmt.Errorf("get snapshot %s: %w", models.DateKey(date), err)
		}
		if snap != nil {
			snapshots = append(snapshots, *snap)
		}
	}

	return &ExportData{
		Version:    ExportVersion,
		ExportedAt: time.Now(),
		Tool:       "nutrients",
		Foods:      foods,
		Metrics:    metrics,
		Snapshots:  snapshots,
	}, nil
}

// ApplyImport writes every record in data into repo. Snapshots replace any
// existing rows for their day.
func ApplyImport(repo Repository, data *ExportData) error {
	for _, f := range data.Foods {
		if err := repo.CreateFood(f); err != nil {
			return fmt.Errorf("import food %s: %w", f.ID, err)
		}
	}
	for _, m := range data.Metrics {
		if err := repo.CreateMetric(m); err != nil {
			return fmt.Errorf("import metric %s: %w", m.ID, err)
		}
	}
	for _, s := range data.Snapshots {
		if err := repo.ReplaceSnapshot(s.Date, s.Statuses); err != nil {
			return fmt.Errorf("import snapshot %s: %w", models.DateKey(s.Date), err)
		}
	}
	return nil
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData() (*ExportData, error) {
	return CollectExport(d)
}

// ImportData imports data from an export file.
func (d *DB) ImportData(data *ExportData) error {
	return ApplyImport(d, data)
}

// Since returns a copy of data keeping only records on or after day.
func (e *ExportData) Since(day time.Time) *ExportData {
	cutoff := models.Day(day)
	out := *e
	out.Foods = nil
	out.Metrics = nil
	out.Snapshots = nil

	for _, f := range e.Foods {
		if !f.Date.Before(cutoff) {
			out.Foods = append(out.Foods, f)
		}
	}
	for _, m := range e.Metrics {
		if !m.RecordedAt.Before(cutoff) {
			out.Metrics = append(out.Metrics, m)
		}
	}
	for _, s := range e.Snapshots {
		if !s.Date.Before(cutoff) {
			out.Snapshots = append(out.Snapshots, s)
		}
	}
	return &out
}

// ExportJSON exports all data as JSON.
func ExportJSON(repo Repository, since *time.Time) ([]byte, error) {
	data, err := exportFrom(repo, since)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ImportJSON imports data from JSON bytes.
func ImportJSON(repo Repository, raw []byte) error {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	return repo.ImportData(&data)
}

func exportFrom(repo Repository, since *time.Time) (*ExportData, error) {
	data, err := repo.GetAllData()
	if err != nil {
		return nil, err
	}
	if since != nil {
		data = data.Since(*since)
	}
	return data, nil
}

// ExportYAML exports data as YAML grouped by day.
func ExportYAML(repo Repository, since *time.Time) ([]byte, error) {
	data, err := exportFrom(repo, since)
	if err != nil {
		return nil, err
	}

	out := struct {
		Version    string    `yaml:"version"`
		ExportedAt string    `yaml:"exported_at"`
		Tool       string    `yaml:"tool"`
		Days       []yamlDay `yaml:"days"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
	}

	for _, day := range groupByDay(data) {
		yd := yamlDay{Date: day.key}
		for _, f := range day.foods {
			yd.Foods = append(yd.Foods, yamlFood{
				ID:       f.ID.String()[:8],
				Name:     f.Name,
				Meal:     string(f.Meal),
				Calories: f.Macros.Calories,
				Protein:  f.Macros.Protein,
				Carbs:    f.Macros.Carbs,
				Fat:      f.Macros.Fat,
				Note:     f.SourceNote,
			})
		}
		for _, m := range day.metrics {
			yd.Burn = append(yd.Burn, yamlMetric{
				ID:         m.ID.String()[:8],
				Type:       string(m.MetricType),
				Value:      m.Value,
				Unit:       m.Unit,
				RecordedAt: m.RecordedAt.Format(time.RFC3339),
			})
		}
		if day.snapshot != nil {
			for _, st := range day.snapshot.Statuses {
				yd.Nutrients = append(yd.Nutrients, yamlStatus{
					Nutrient: st.Nutrient.String(),
					Intake:   st.DisplayValue,
					Target:   st.AdjustedTarget,
					Percent:  int(st.PercentOfTarget() * 100),
					Tier:     st.Tier.String(),
				})
			}
		}
		out.Days = append(out.Days, yd)
	}

	return yaml.Marshal(out)
}

type yamlDay struct {
	Date      string       `yaml:"date"`
	Foods     []yamlFood   `yaml:"foods,omitempty"`
	Burn      []yamlMetric `yaml:"burn,omitempty"`
	Nutrients []yamlStatus `yaml:"nutrients,omitempty"`
}

type yamlFood struct {
	ID       string  `yaml:"id"`
	Name     string  `yaml:"name"`
	Meal     string  `yaml:"meal"`
	Calories float64 `yaml:"calories"`
	Protein  float64 `yaml:"protein"`
	Carbs    float64 `yaml:"carbs"`
	Fat      float64 `yaml:"fat"`
	Note     string  `yaml:"note,omitempty"`
}

type yamlMetric struct {
	ID         string  `yaml:"id"`
	Type       string  `yaml:"type"`
	Value      float64 `yaml:"value"`
	Unit       string  `yaml:"unit"`
	RecordedAt string  `yaml:"recorded_at"`
}

type yamlStatus struct {
	Nutrient string  `yaml:"nutrient"`
	Intake   string  `yaml:"intake"`
	Target   float64 `yaml:"target"`
	Percent  int     `yaml:"percent"`
	Tier     string  `yaml:"tier"`
}

// ExportMarkdown exports data as Markdown, one section per day.
func ExportMarkdown(repo Repository, since *time.Time) (string, error) {
	data, err := exportFrom(repo, since)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# Nutrient Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	for _, day := range groupByDay(data) {
		sb.WriteString(fmt.Sprintf("## %s\n\n", day.key))

		if len(day.foods) > 0 {
			sb.WriteString("### Foods\n\n")
			sb.WriteString("| Time | Meal | Food | kcal | Protein | Carbs | Fat |\n")
			sb.WriteString("|------|------|------|------|---------|-------|-----|\n")
			for _, f := range day.foods {
				sb.WriteString(fmt.Sprintf("| %s | %s | %s | %.0f | %.1f g | %.1f g | %.1f g |\n",
					f.LoggedAt.Format("15:04"), f.Meal, f.Name,
					f.Macros.Calories, f.Macros.Protein, f.Macros.Carbs, f.Macros.Fat))
			}
			sb.WriteString("\n")
		}

		if len(day.metrics) > 0 {
			sb.WriteString("### Burn\n\n")
			sb.WriteString("| Time | Type | Value |\n")
			sb.WriteString("|------|------|-------|\n")
			for _, m := range day.metrics {
				sb.WriteString(fmt.Sprintf("| %s | %s | %.1f %s |\n",
					m.RecordedAt.Format("15:04"), m.MetricType, m.Value, m.Unit))
			}
			sb.WriteString("\n")
		}

		if day.snapshot != nil {
			sb.WriteString("### Nutrients\n\n")
			sb.WriteString("| Nutrient | Intake | Target | % | Tier |\n")
			sb.WriteString("|----------|--------|--------|---|------|\n")
			for _, st := range day.snapshot.Statuses {
				tier := st.Tier.Label()
				if st.Tier.NeedsBadge() {
					tier = "**" + tier + "**"
				}
				sb.WriteString(fmt.Sprintf("| %s | %s | %s | %d%% | %s |\n",
					st.Nutrient.Name(), st.DisplayValue,
					formatTarget(st.AdjustedTarget, st.Nutrient.Unit()),
					int(st.PercentOfTarget()*100), tier))
			}
			sb.WriteString("\n")
		}
	}

	return sb.String(), nil
}

func formatTarget(v float64, unit string) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d %s", int64(v), unit)
	}
	return fmt.Sprintf("%.1f %s", v, unit)
}

type exportDay struct {
	key      string
	foods    []*models.FoodLogItem
	metrics  []*models.Metric
	snapshot *models.DailySnapshot
}

// groupByDay buckets export records by calendar day, newest day first and
// records within a day in time order.
func groupByDay(data *ExportData) []*exportDay {
	days := make(map[string]*exportDay)
	get := func(key string) *exportDay {
		d, ok := days[key]
		if !ok {
			d = &exportDay{key: key}
			days[key] = d
		}
		return d
	}

	for _, f := range data.Foods {
		d := get(models.DateKey(f.Date))
		d.foods = append(d.foods, f)
	}
	for _, m := range data.Metrics {
		d := get(models.DateKey(m.RecordedAt))
		d.metrics = append(d.metrics, m)
	}
	for i := range data.Snapshots {
		s := &data.Snapshots[i]
		get(models.DateKey(s.Date)).snapshot = s
	}

	out := make([]*exportDay, 0, len(days))
	for _, d := range days {
		sort.Slice(d.foods, func(i, j int) bool { return d.foods[i].LoggedAt.Before(d.foods[j].LoggedAt) })
		sort.Slice(d.metrics, func(i, j int) bool { return d.metrics[i].RecordedAt.Before(d.metrics[j].RecordedAt) })
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].key > out[j].key })
	return out
}
