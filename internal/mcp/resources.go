// ABOUTME: MCP resource implementations for lifeops reports.
// ABOUTME: Provides lifeops://daily/recent and lifeops://weights/recent resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harperreed/lifeops/internal/report"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	dailyResourceURI   = "lifeops://daily/recent"
	weightsResourceURI = "lifeops://weights/recent"

	recentDays     = 14
	recentReadings = 10
)

func (s *Server) registerResources() {
	// lifeops://daily/recent - last two weeks of joined daily rows
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         dailyResourceURI,
		Name:        "Recent Daily Health",
		Description: "Joined daily health rows for the 14 most recent weigh-in dates",
		MIMEType:    "application/json",
	}, s.handleDailyResource)

	// lifeops://weights/recent - latest individual readings
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         weightsResourceURI,
		Name:        "Recent Weight Readings",
		Description: "The 10 most recent weight readings in local time",
		MIMEType:    "application/json",
	}, s.handleWeightsResource)
}

// Resource handlers

func (s *Server) handleDailyResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	records, err := s.agg.Daily(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute daily health: %w", err)
	}

	rep := report.NewDaily(s.agg.Normalizer().Zone(), report.Filter{Limit: recentDays}.Days(records))
	return jsonResource(dailyResourceURI, rep)
}

func (s *Server) handleWeightsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	rows, err := s.agg.Weights(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list weight readings: %w", err)
	}

	rep := report.NewWeights(s.agg.Normalizer().Zone(), report.Filter{Limit: recentReadings}.Readings(rows))
	return jsonResource(weightsResourceURI, rep)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
