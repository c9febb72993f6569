// ABOUTME: MCP resource implementations for the nutrient tracker.
// ABOUTME: Provides nutrients://today and nutrients://reference resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harperreed/nutrients/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	todayURI     = "nutrients://today"
	referenceURI = "nutrients://reference"
)

func (s *Server) registerResources() {
	// nutrients://today - today's persisted snapshot or the zero state
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         todayURI,
		Name:        "Today's Nutrient Status",
		Description: "Status, tier and display value for every tracked nutrient today",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	// nutrients://reference - the fixed reference table
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         referenceURI,
		Name:        "Nutrient Reference Table",
		Description: "RDA, unit, upper limit and food source for each nutrient",
		MIMEType:    "application/json",
	}, s.handleReferenceResource)
}

type referenceRow struct {
	Nutrient   string   `json:"nutrient"`
	Name       string   `json:"name"`
	ShortName  string   `json:"short_name"`
	Unit       string   `json:"unit"`
	RDA        float64  `json:"rda"`
	UpperLimit *float64 `json:"upper_limit,omitempty"`
	FoodSource string   `json:"food_source"`
}

// Resource handlers

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	snap, err := s.tracker.Status(ctx, s.tracker.Today())
	if err != nil {
		return nil, fmt.Errorf("failed to load today's status: %w", err)
	}

	result := map[string]interface{}{
		"date":     models.DateKey(snap.Date),
		"statuses": statusViews(snap.Statuses, false),
	}
	return jsonResource(todayURI, result)
}

func (s *Server) handleReferenceResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	isMale := s.tracker.IsMale()
	rows := make([]referenceRow, 0, models.NutrientCount)
	for _, id := range models.AllNutrients {
		ref := id.Reference()
		rows = append(rows, referenceRow{
			Nutrient:   id.String(),
			Name:       ref.Name,
			ShortName:  ref.ShortName,
			Unit:       ref.Unit,
			RDA:        id.RDA(isMale),
			UpperLimit: ref.UpperLimit,
			FoodSource: ref.FoodSource,
		})
	}
	return jsonResource(referenceURI, rows)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(data),
			},
		},
	}, nil
}
