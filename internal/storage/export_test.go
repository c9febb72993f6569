// ABOUTME: Tests for export and import of tracker data.
// ABOUTME: Covers JSON round-trip, YAML day grouping, Markdown, and since filters.
package storage

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/nutrients/internal/models"
	"gopkg.in/yaml.v3"
)

func seedExportDB(t *testing.T, db *DB) {
	t.Helper()

	foods := []*models.FoodLogItem{
		testFood("Oatmeal", testDay.Add(8*time.Hour), models.Macros{Calories: 300, Protein: 10, Carbs: 54, Fat: 5}),
		testFood("Salmon", testDay.AddDate(0, 0, -3).Add(19*time.Hour), models.Macros{Calories: 450, Protein: 40, Fat: 28}),
	}
	for _, f := range foods {
		if err := db.CreateFood(f); err != nil {
			t.Fatalf("CreateFood failed: %v", err)
		}
	}

	if err := db.CreateMetric(models.NewMetric(models.MetricSteps, 8000).WithRecordedAt(testDay.Add(20 * time.Hour))); err != nil {
		t.Fatalf("CreateMetric failed: %v", err)
	}

	if err := db.ReplaceSnapshot(testDay, testStatuses(0.3)); err != nil {
		t.Fatalf("ReplaceSnapshot failed: %v", err)
	}
}

func TestExportJSON(t *testing.T) {
	db := setupTestDB(t)
	seedExportDB(t, db)

	raw, err := ExportJSON(db, nil)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("exported JSON does not parse: %v", err)
	}
	if data.Tool != "nutrients" || data.Version != ExportVersion {
		t.Errorf("unexpected header: tool=%q version=%q", data.Tool, data.Version)
	}
	if len(data.Foods) != 2 || len(data.Metrics) != 1 || len(data.Snapshots) != 1 {
		t.Errorf("counts: foods=%d metrics=%d snapshots=%d", len(data.Foods), len(data.Metrics), len(data.Snapshots))
	}
	if !strings.Contains(string(raw), `"nutrient": "vit_a"`) {
		t.Error("expected nutrient keys in JSON")
	}
}

func TestExportJSONSince(t *testing.T) {
	db := setupTestDB(t)
	seedExportDB(t, db)

	since := testDay.AddDate(0, 0, -1)
	raw, err := ExportJSON(db, &since)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(data.Foods) != 1 || data.Foods[0].Name != "Oatmeal" {
		t.Errorf("expected only Oatmeal after since filter, got %d foods", len(data.Foods))
	}
}

func TestImportJSONRoundTrip(t *testing.T) {
	src := setupTestDB(t)
	seedExportDB(t, src)

	raw, err := ExportJSON(src, nil)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	dst := setupTestDB(t)
	if err := ImportJSON(dst, raw); err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}

	foods, err := dst.ListFoods(0)
	if err != nil {
		t.Fatalf("ListFoods failed: %v", err)
	}
	if len(foods) != 2 {
		t.Errorf("expected 2 foods, got %d", len(foods))
	}

	want, _ := src.GetSnapshot(testDay)
	got, err := dst.GetSnapshot(testDay)
	if err != nil || got == nil {
		t.Fatalf("GetSnapshot after import: %v, %v", got, err)
	}
	for i := range want.Statuses {
		if got.Statuses[i] != want.Statuses[i] {
			t.Errorf("status %d changed across import: %+v vs %+v", i, got.Statuses[i], want.Statuses[i])
		}
	}
}

func TestImportJSONInvalid(t *testing.T) {
	db := setupTestDB(t)
	if err := ImportJSON(db, []byte("{not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestExportYAML(t *testing.T) {
	db := setupTestDB(t)
	seedExportDB(t, db)

	raw, err := ExportYAML(db, nil)
	if err != nil {
		t.Fatalf("ExportYAML failed: %v", err)
	}

	var parsed struct {
		Tool string `yaml:"tool"`
		Days []struct {
			Date      string           `yaml:"date"`
			Foods     []map[string]any `yaml:"foods"`
			Burn      []map[string]any `yaml:"burn"`
			Nutrients []map[string]any `yaml:"nutrients"`
		} `yaml:"days"`
	}
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("YAML does not parse: %v", err)
	}
	if len(parsed.Days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(parsed.Days))
	}
	today := parsed.Days[0]
	if today.Date != "2025-04-12" {
		t.Errorf("expected newest day first, got %s", today.Date)
	}
	if len(today.Foods) != 1 || len(today.Burn) != 1 || len(today.Nutrients) != models.NutrientCount {
		t.Errorf("today: foods=%d burn=%d nutrients=%d", len(today.Foods), len(today.Burn), len(today.Nutrients))
	}
}

func TestExportMarkdown(t *testing.T) {
	db := setupTestDB(t)
	seedExportDB(t, db)

	md, err := ExportMarkdown(db, nil)
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}

	for _, want := range []string{
		"# Nutrient Export",
		"## 2025-04-12",
		"### Foods",
		"Oatmeal",
		"### Burn",
		"### Nutrients",
		"**Deficient**",
		"| Iron |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestExportMarkdownEmptyDB(t *testing.T) {
	db := setupTestDB(t)

	md, err := ExportMarkdown(db, nil)
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}
	if !strings.HasPrefix(md, "# Nutrient Export") {
		t.Errorf("unexpected header: %q", md)
	}
	if strings.Contains(md, "## ") {
		t.Error("empty export should have no day sections")
	}
}
