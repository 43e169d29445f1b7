// ABOUTME: MCP tool implementations for lifeops reports.
// ABOUTME: Exposes the daily joined table and the weight reading list.
package mcp

import (
	"context"
	"fmt"

	"github.com/harperreed/lifeops/internal/models"
	"github.com/harperreed/lifeops/internal/report"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	defaultDailyLimit  = 30
	defaultWeightLimit = 20
)

func (s *Server) registerTools() {
	// daily_health
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "daily_health",
		Description: "Daily health table (weight, steps, resting HR, sleep) keyed by local date, newest first",
	}, s.handleDailyHealth)

	// weight_readings
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "weight_readings",
		Description: "Individual weight readings with local measured and ingested times, newest first",
	}, s.handleWeightReadings)
}

// Tool input types

type dailyHealthInput struct {
	Since string `json:"since,omitempty" jsonschema:"Only include dates on or after this local date (YYYY-MM-DD)"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max days returned (default 30)"`
}

type weightReadingsInput struct {
	Since string `json:"since,omitempty" jsonschema:"Only include readings measured on or after this local date (YYYY-MM-DD)"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max readings returned (default 20)"`
}

// Tool handlers

func (s *Server) handleDailyHealth(ctx context.Context, req *mcp.CallToolRequest, input dailyHealthInput) (*mcp.CallToolResult, any, error) {
	filter, err := buildFilter(input.Since, input.Limit, defaultDailyLimit)
	if err != nil {
		return nil, nil, err
	}

	records, err := s.agg.Daily(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to compute daily health: %w", err)
	}

	return nil, report.NewDaily(s.agg.Normalizer().Zone(), filter.Days(records)), nil
}

func (s *Server) handleWeightReadings(ctx context.Context, req *mcp.CallToolRequest, input weightReadingsInput) (*mcp.CallToolResult, any, error) {
	filter, err := buildFilter(input.Since, input.Limit, defaultWeightLimit)
	if err != nil {
		return nil, nil, err
	}

	rows, err := s.agg.Weights(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list weight readings: %w", err)
	}

	return nil, report.NewWeights(s.agg.Normalizer().Zone(), filter.Readings(rows)), nil
}

func buildFilter(since string, limit, defaultLimit int) (report.Filter, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	filter := report.Filter{Limit: limit}

	if since != "" {
		d, err := models.ParseDate(since)
		if err != nil {
			return report.Filter{}, err
		}
		filter.Since = &d
	}
	return filter, nil
}
