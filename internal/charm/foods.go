// ABOUTME: Food log CRUD operations for Charm KV storage.
// ABOUTME: Uses type-prefixed keys and client-side filtering by day.
package charm

import (
	"fmt"
	"sort"
	"time"

	"github.com/harperreed/nutrients/internal/models"
)

// CreateFood stores a new food log item in the KV store.
func (c *Client) CreateFood(f *models.FoodLogItem) error {
	data, err := marshalJSON(f)
	if err != nil {
		return fmt.Errorf("marshal food: %w", err)
	}
	return c.set(FoodPrefix+f.ID.String(), data)
}

// GetFood retrieves a food by ID or ID prefix.
func (c *Client) GetFood(idOrPrefix string) (*models.FoodLogItem, error) {
	data, err := c.getByIDPrefix(FoodPrefix, idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("get food: %w", err)
	}

	f, err := unmarshalJSON[models.FoodLogItem](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal food: %w", err)
	}
	return f, nil
}

// ListFoodsByDate returns one day's foods in the order they were eaten.
func (c *Client) ListFoodsByDate(date time.Time) ([]*models.FoodLogItem, error) {
	foods, err := c.allFoods()
	if err != nil {
		return nil, err
	}
	return foodsOnDay(foods, date), nil
}

// ListFoods returns foods most recent first. A limit of 0 returns all.
func (c *Client) ListFoods(limit int) ([]*models.FoodLogItem, error) {
	foods, err := c.allFoods()
	if err != nil {
		return nil, err
	}

	sort.Slice(foods, func(i, j int) bool {
		return foods[i].LoggedAt.After(foods[j].LoggedAt)
	})
	if limit > 0 && len(foods) > limit {
		foods = foods[:limit]
	}
	return foods, nil
}

// DeleteFood removes a food by ID or prefix.
func (c *Client) DeleteFood(idOrPrefix string) error {
	if err := c.deleteByIDPrefix(FoodPrefix, idOrPrefix); err != nil {
		return fmt.Errorf("delete food: %w", err)
	}
	return nil
}

func (c *Client) allFoods() ([]*models.FoodLogItem, error) {
	raw, err := c.listByPrefix(FoodPrefix)
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	return decodeAll[models.FoodLogItem](raw), nil
}

// foodsOnDay keeps the foods dated on date's calendar day, eaten order.
func foodsOnDay(foods []*models.FoodLogItem, date time.Time) []*models.FoodLogItem {
	key := models.DateKey(date)
	var out []*models.FoodLogItem
	for _, f := range foods {
		if models.DateKey(f.Date) == key {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LoggedAt.Before(out[j].LoggedAt)
	})
	return out
}
