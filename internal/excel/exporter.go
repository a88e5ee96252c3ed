package excel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/studysprint/internal/database"
	"github.com/example/studysprint/pkg/models"
	"github.com/xuri/excelize/v2"
)

// ExportVersion identifies the export document format
const ExportVersion = "2.0.0"

// ExportDay is a plan day with its tasks inlined
type ExportDay struct {
	models.PlanDay
	Tasks []models.Task `json:"tasks"`
}

// ExportDocument is the full backup of a user's plan and history. It
// contains everything needed to restore the plan elsewhere.
type ExportDocument struct {
	Version    string            `json:"version"`
	ExportedAt time.Time         `json:"exported_at"`
	Plan       *models.Plan      `json:"plan"`
	Settings   *models.Settings  `json:"settings"`
	Days       []ExportDay       `json:"days"`
	Logs       []models.DailyLog `json:"logs"`
}

// BuildExport assembles the export document for the user's active plan
func BuildExport(ctx context.Context, userID string) (*ExportDocument, error) {
	planRepo := database.NewPlanRepository()
	dayRepo := database.NewPlanDayRepository()
	taskRepo := database.NewTaskRepository()
	logRepo := database.NewLogRepository()
	settingsRepo := database.NewSettingsRepository()

	plan, err := planRepo.GetActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get active plan: %v", err)
	}
	if plan == nil {
		return nil, fmt.Errorf("no active plan to export")
	}

	settings, err := settingsRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %v", err)
	}

	days, err := dayRepo.GetByPlan(ctx, plan.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan days: %v", err)
	}

	tasksByDay, err := taskRepo.GetByPlan(ctx, plan.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks: %v", err)
	}

	logs, err := logRepo.GetAll(ctx, userID, "", "")
	if err != nil {
		return nil, fmt.Errorf("failed to get logs: %v", err)
	}

	doc := &ExportDocument{
		Version:    ExportVersion,
		ExportedAt: time.Now().UTC(),
		Plan:       plan,
		Settings:   settings,
		Logs:       logs,
	}
	for _, day := range days {
		doc.Days = append(doc.Days, ExportDay{
			PlanDay: day,
			Tasks:   tasksByDay[day.ID],
		})
	}

	return doc, nil
}

// JSON renders the document as an indented JSON backup
func (d *ExportDocument) JSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// planSheetHeader matches the columns expected by the importer, so an
// exported workbook can be re-imported as-is
var planSheetHeader = []interface{}{"Day", "Day title", "Theme", "Task", "Minutes", "Category", "Required"}

// XLSX renders the plan as a workbook with one row per task
func (d *ExportDocument) XLSX() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Plan"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %v", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	if err := f.SetSheetRow(sheet, "A1", &planSheetHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %v", err)
	}

	rowNum := 2
	for _, day := range d.Days {
		for _, task := range day.Tasks {
			required := "yes"
			if !task.Required {
				required = "no"
			}
			row := []interface{}{
				day.DayIndex,
				day.Title,
				day.Theme,
				task.Title,
				task.EstimatedMinutes,
				string(task.Category),
				required,
			}
			cell := fmt.Sprintf("A%d", rowNum)
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %v", rowNum, err)
			}
			rowNum++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %v", err)
	}
	return buf.Bytes(), nil
}
