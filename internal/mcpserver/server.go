// Package mcpserver exposes schedule pressure reports as Model Context
// Protocol tools over streamable HTTP.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/domain/games"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/domain/teams"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/fatigue"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/logging"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/timeutil"
)

const (
	serverName = "nhl-schedule-pressure"
	toolName   = "schedule_pressure"
)

// Reports is the read side of the pressure service.
type Reports interface {
	Today() string
	Cached(ctx context.Context, date string) (fatigue.Report, error)
}

// PressureArgs is the input schema of the schedule_pressure tool.
type PressureArgs struct {
	Date string `json:"date,omitempty" jsonschema:"Target date YYYY-MM-DD (default: today in the service timezone)"`
	Team string `json:"team,omitempty" jsonschema:"Optional team code (e.g. TOR) to restrict the result to one team"`
}

// PressureResult is the JSON text returned by the tool.
type PressureResult struct {
	Date  string             `json:"date"`
	RunID string             `json:"run_id"`
	Games []gameLine         `json:"games"`
	Loads []fatigue.TeamLoad `json:"loads"`
	Hot   []teams.ID         `json:"hot_teams"`
}

type gameLine struct {
	Away  teams.ID `json:"away"`
	Home  teams.ID `json:"home"`
	Start string   `json:"start_utc,omitempty"`
}

// NewServer builds an MCP server with the schedule_pressure tool registered.
func NewServer(svc Reports, version string, logger *slog.Logger) *mcp.Server {
	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: version}, nil)
	mcp.AddTool(server, &mcp.Tool{
		Name:        toolName,
		Description: "Back-to-back, 3-in-4, 4-in-6 and 7-day travel load for every NHL team playing on a date",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args PressureArgs) (*mcp.CallToolResult, any, error) {
		result, err := pressure(ctx, svc, args)
		if err != nil {
			logging.Warn(logger, "mcp tool failed", "tool", toolName, "error", err)
			return toolError(err), nil, nil
		}
		return toolJSON(result)
	})
	return server
}

// Handler serves server over streamable HTTP with JSON responses.
func Handler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})
}

func pressure(ctx context.Context, svc Reports, args PressureArgs) (PressureResult, error) {
	date := strings.TrimSpace(args.Date)
	if date == "" {
		date = svc.Today()
	}
	if _, err := timeutil.ParseDate(date); err != nil {
		return PressureResult{}, fmt.Errorf("date must be YYYY-MM-DD, got %q", date)
	}
	report, err := svc.Cached(ctx, date)
	if err != nil {
		return PressureResult{}, err
	}

	out := PressureResult{
		Date:  report.Date,
		RunID: report.RunID,
		Games: make([]gameLine, 0, len(report.Games)),
		Loads: report.Loads.Sorted(),
		Hot:   report.HotTeams(),
	}
	for _, g := range games.SortByStart(report.Games) {
		line := gameLine{Away: g.AwayTeam, Home: g.HomeTeam}
		if g.StartTime != nil {
			line.Start = g.StartTime.UTC().Format("2006-01-02T15:04:05Z")
		}
		out.Games = append(out.Games, line)
	}

	if args.Team != "" {
		team := teams.Normalize(args.Team)
		load, ok := report.TeamLoad(team)
		if !ok {
			return PressureResult{}, fmt.Errorf("%s does not play on %s", team, report.Date)
		}
		out.Loads = []fatigue.TeamLoad{load}
		filtered := out.Games[:0]
		for _, g := range out.Games {
			if g.Away == team || g.Home == team {
				filtered = append(filtered, g)
			}
		}
		out.Games = filtered
		out.Hot = nil
		if load.Flagged() {
			out.Hot = []teams.ID{team}
		}
	}
	return out, nil
}

func toolJSON(v any) (*mcp.CallToolResult, any, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}, nil, nil
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
