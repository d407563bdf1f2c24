// Command planner loads a stored roster and reports its weekly summaries
// and staffing warnings.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/example/shift-planner/internal/application"
	"github.com/example/shift-planner/internal/config"
	"github.com/example/shift-planner/internal/logging"
	"github.com/example/shift-planner/internal/persistence"
	"github.com/example/shift-planner/internal/persistence/sqlite"
	"github.com/example/shift-planner/internal/timeutil"
)

func main() {
	// A missing .env file is fine; the environment wins either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel)
	ctx := logging.ContextWithLogger(context.Background(), logger)

	snap, err := loadSnapshot(ctx, cfg)
	if err != nil {
		logger.Error("failed to load roster", "error", err)
		os.Exit(1)
	}

	reports := application.NewReportServiceWithLogger(logger)

	logger.Info("roster loaded",
		"title", snap.Plan.Title,
		"employees", len(snap.Employees),
		"groups", len(snap.Groups),
		"shifts", len(snap.Plan.Shifts),
	)

	for _, employee := range snap.Employees {
		summary, err := reports.WeeklySummary(ctx, snap, employee.ID)
		if err != nil {
			logger.Error("failed to compute weekly summary", "employee_id", employee.ID, "error", err)
			os.Exit(1)
		}
		logger.Info("weekly summary",
			"employee", employee.Name,
			"work_hours", timeutil.FormatDuration(summary.WorkMinutes),
			"break_hours", timeutil.FormatDuration(summary.BreakMinutes),
			"disposal_hours", timeutil.FormatDuration(summary.DisposalMinutes),
			"warnings", summary.Warnings,
		)

		for _, day := range application.Workdays {
			daily, err := reports.DailyMetrics(ctx, snap, employee.ID, day)
			if err != nil {
				logger.Error("failed to compute daily metrics", "employee_id", employee.ID, "error", err)
				os.Exit(1)
			}
			if len(daily.Warnings) == 0 {
				continue
			}
			logger.Warn("daily warnings",
				"employee", employee.Name,
				"day", day.String(),
				"warnings", daily.Warnings,
			)
		}
	}

	staffing, err := reports.WeeklyStaffingReport(ctx, snap)
	if err != nil {
		logger.Error("failed to compute staffing report", "error", err)
		os.Exit(1)
	}
	for _, entry := range staffing {
		group, _ := snap.GroupByID(entry.GroupID)
		logger.Warn("staffing warnings",
			"group", group.Name,
			"day", entry.Day.String(),
			"warnings", entry.Result.TextWarnings,
		)
	}
	if len(staffing) == 0 {
		logger.Info("staffing satisfied on all group-days")
	}
}

// loadSnapshot reads the roster from the configured JSON file when set,
// otherwise from the SQLite store.
func loadSnapshot(ctx context.Context, cfg config.Config) (application.Snapshot, error) {
	if cfg.RosterFile != "" {
		raw, err := os.ReadFile(cfg.RosterFile)
		if err != nil {
			return application.Snapshot{}, fmt.Errorf("failed to read roster file: %w", err)
		}
		var doc persistence.Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			return application.Snapshot{}, fmt.Errorf("failed to parse roster file: %w", err)
		}
		return persistence.ToSnapshot(doc)
	}

	store, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		return application.Snapshot{}, err
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		return application.Snapshot{}, err
	}

	doc, err := store.GetRoster(ctx, cfg.RosterName)
	if errors.Is(err, persistence.ErrNotFound) {
		return application.Snapshot{}, fmt.Errorf("roster %q does not exist", cfg.RosterName)
	}
	if err != nil {
		return application.Snapshot{}, err
	}
	return persistence.ToSnapshot(doc)
}
