// ABOUTME: Food log CRUD operations for SQLite storage.
// ABOUTME: Foods are keyed by calendar day so a day's log is one indexed scan.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/nutrients/internal/models"
)

const foodColumns = `id, day, name, calories, protein, carbs, fat, meal, source_note, needs_confirmation, logged_at, created_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// CreateFood stores a new food log item.
func (d *DB) CreateFood(f *models.FoodLogItem) error {
	query := `
		INSERT INTO foods (` + foodColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := d.db.Exec(query,
		f.ID.String(),
		models.DateKey(f.Date),
		f.Name,
		f.Macros.Calories,
		f.Macros.Protein,
		f.Macros.Carbs,
		f.Macros.Fat,
		string(f.Meal),
		nullString(f.SourceNote),
		f.NeedsConfirmation,
		f.LoggedAt.Format(time.RFC3339),
		f.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create food: %w", err)
	}
	return nil
}

// GetFood retrieves a food by ID or ID prefix.
func (d *DB) GetFood(idOrPrefix string) (*models.FoodLogItem, error) {
	id, err := d.resolveID("foods", idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("get food: %w", err)
	}

	row := d.db.QueryRow(`SELECT `+foodColumns+` FROM foods WHERE id = ?`, id)
	f, err := scanFood(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get food: %w: %s", ErrNotFound, idOrPrefix)
	}
	return f, err
}

// ListFoodsByDate returns one day's foods in the order they were eaten.
func (d *DB) ListFoodsByDate(date time.Time) ([]*models.FoodLogItem, error) {
	rows, err := d.db.Query(`
		SELECT `+foodColumns+`
		FROM foods
		WHERE day = ?
		ORDER BY logged_at ASC, created_at ASC
	`, models.DateKey(date))
	if err != nil {
		return nil, fmt.Errorf("list foods by date: %w", err)
	}
	defer rows.Close()

	return scanFoods(rows)
}

// ListFoods returns foods most recent first. A limit of 0 returns all.
func (d *DB) ListFoods(limit int) ([]*models.FoodLogItem, error) {
	query := `
		SELECT ` + foodColumns + `
		FROM foods
		ORDER BY logged_at DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	defer rows.Close()

	return scanFoods(rows)
}

// DeleteFood removes a food by ID or prefix.
func (d *DB) DeleteFood(idOrPrefix string) error {
	if err := d.deleteByID("foods", idOrPrefix); err != nil {
		return fmt.Errorf("delete food: %w", err)
	}
	return nil
}

func scanFood(row rowScanner) (*models.FoodLogItem, error) {
	var f models.FoodLogItem
	var idStr, day, meal, loggedAt, createdAt string
	var note sql.NullString

	err := row.Scan(&idStr, &day, &f.Name,
		&f.Macros.Calories, &f.Macros.Protein, &f.Macros.Carbs, &f.Macros.Fat,
		&meal, &note, &f.NeedsConfirmation, &loggedAt, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan food: %w", err)
	}

	f.ID, _ = uuid.Parse(idStr)
	f.Date, _ = ParseDateKey(day)
	f.Meal = models.MealCategory(meal)
	f.SourceNote = note.String
	f.LoggedAt, _ = time.Parse(time.RFC3339, loggedAt)
	f.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

	return &f, nil
}

func scanFoods(rows *sql.Rows) ([]*models.FoodLogItem, error) {
	var foods []*models.FoodLogItem
	for rows.Next() {
		f, err := scanFood(rows)
		if err != nil {
			return nil, err
		}
		foods = append(foods, f)
	}
	return foods, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
