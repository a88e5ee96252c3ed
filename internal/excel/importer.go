package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/example/studysprint/internal/database"
	"github.com/example/studysprint/pkg/models"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// ImportConfig defines the plan import configuration
type ImportConfig struct {
	FilePath       string // Path to the Excel or CSV file
	PlanName       string // Name for the created plan
	DayColumn      string // Column with the day number
	DayTitleColumn string // Column with the day title
	ThemeColumn    string // Column with the day theme
	TaskColumn     string // Column with the task title
	MinutesColumn  string // Column with the estimated minutes
	CategoryColumn string // Column with the task category
	RequiredColumn string // Column with the required flag
	SheetName      string // Name of the sheet to import
	SkipHeader     bool   // Skip the header row
	StartRow       int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		PlanName:       "Imported plan",
		DayColumn:      "A",
		DayTitleColumn: "B",
		ThemeColumn:    "C",
		TaskColumn:     "D",
		MinutesColumn:  "E",
		CategoryColumn: "F",
		RequiredColumn: "G",
		SheetName:      "Plan",
		SkipHeader:     true,
		StartRow:       2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	DaysCreated    int
	TasksCreated   int
	Skipped        int
	Errors         []string
	PlanID         string
}

// taskRow is one parsed spreadsheet row: a task with its day context
type taskRow struct {
	DayIndex int
	DayTitle string
	Theme    string
	Title    string
	Minutes  int
	Category string
	Required bool
}

// ImportPlan imports a study plan from an Excel or CSV file and creates
// the plan, its days and its tasks for the given user. The new plan is
// left inactive so the current plan keeps driving the dashboard until
// the user switches.
func ImportPlan(ctx context.Context, userID string, config ImportConfig) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))

	var rows []taskRow
	var result *ImportResult
	var err error

	if ext == ".csv" {
		rows, result, err = readCSV(config)
	} else {
		rows, result, err = readExcel(config)
	}
	if err != nil {
		return nil, err
	}

	if err := applyRows(ctx, userID, config.PlanName, rows, result); err != nil {
		return nil, err
	}

	return result, nil
}

// readExcel parses rows from an Excel file
func readExcel(config ImportConfig) ([]taskRow, *ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	result := &ImportResult{Errors: make([]string, 0)}

	sheetRows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get rows: %v", err)
	}

	var rows []taskRow
	for i, row := range sheetRows {
		// Skip header rows
		if i < config.StartRow-1 {
			continue
		}

		result.TotalProcessed++

		parsed, err := parseRow(row, config)
		if err != nil {
			if err == errSkipRow {
				result.Skipped++
			} else {
				result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
			}
			continue
		}
		rows = append(rows, *parsed)
	}

	return rows, result, nil
}

// readCSV parses rows from a CSV file
func readCSV(config ImportConfig) ([]taskRow, *ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	result := &ImportResult{Errors: make([]string, 0)}

	var rows []taskRow
	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("error reading CSV: %v", err)
		}

		rowNum++

		// Skip header rows
		if rowNum < config.StartRow {
			continue
		}

		result.TotalProcessed++

		parsed, err := parseRow(row, config)
		if err != nil {
			if err == errSkipRow {
				result.Skipped++
			} else {
				result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			}
			continue
		}
		rows = append(rows, *parsed)
	}

	return rows, result, nil
}

var errSkipRow = fmt.Errorf("skipping row")

// parseRow turns a single spreadsheet row into a task with its day
// context. Blank rows are skipped, malformed rows are reported.
func parseRow(row []string, config ImportConfig) (*taskRow, error) {
	dayStr := cellValue(row, config.DayColumn)
	title := cellValue(row, config.TaskColumn)

	if dayStr == "" && title == "" {
		return nil, errSkipRow
	}
	if dayStr == "" {
		return nil, fmt.Errorf("missing day number")
	}
	if title == "" {
		return nil, fmt.Errorf("missing task title")
	}

	dayIndex, err := parseIntInRange(dayStr, 1, 1000)
	if err != nil {
		return nil, fmt.Errorf("invalid day number %q", dayStr)
	}

	minutes := parseIntOrDefault(cellValue(row, config.MinutesColumn), 1, 24*60, 30)

	category := cellValue(row, config.CategoryColumn)
	if !models.IsValidCategory(category) {
		category = string(models.CategoryOther)
	}

	return &taskRow{
		DayIndex: dayIndex,
		DayTitle: cellValue(row, config.DayTitleColumn),
		Theme:    cellValue(row, config.ThemeColumn),
		Title:    title,
		Minutes:  minutes,
		Category: category,
		Required: parseBool(cellValue(row, config.RequiredColumn), true),
	}, nil
}

// applyRows groups parsed rows by day and persists the plan
func applyRows(ctx context.Context, userID, planName string, rows []taskRow, result *ImportResult) error {
	if len(rows) == 0 {
		return fmt.Errorf("no valid rows found in file")
	}

	planRepo := database.NewPlanRepository()
	dayRepo := database.NewPlanDayRepository()
	taskRepo := database.NewTaskRepository()

	if planName == "" {
		planName = fmt.Sprintf("Imported plan %s", time.Now().Format("2006-01-02"))
	}

	plan := &models.Plan{
		ID:     uuid.NewString(),
		UserID: userID,
		Name:   planName,
	}
	if err := planRepo.Create(ctx, plan); err != nil {
		return fmt.Errorf("failed to create plan: %v", err)
	}
	result.PlanID = plan.ID

	// Group rows by day index, keeping spreadsheet order inside each day
	byDay := make(map[int][]taskRow)
	var dayIndexes []int
	for _, row := range rows {
		if _, seen := byDay[row.DayIndex]; !seen {
			dayIndexes = append(dayIndexes, row.DayIndex)
		}
		byDay[row.DayIndex] = append(byDay[row.DayIndex], row)
	}
	sort.Ints(dayIndexes)

	for _, dayIndex := range dayIndexes {
		dayRows := byDay[dayIndex]

		title := dayRows[0].DayTitle
		if title == "" {
			title = fmt.Sprintf("Day %d", dayIndex)
		}

		day := &models.PlanDay{
			ID:       uuid.NewString(),
			PlanID:   plan.ID,
			DayIndex: dayIndex,
			Title:    title,
			Theme:    dayRows[0].Theme,
		}
		if err := dayRepo.Create(ctx, day); err != nil {
			return fmt.Errorf("failed to create day %d: %v", dayIndex, err)
		}
		result.DaysCreated++

		for _, row := range dayRows {
			task := &models.Task{
				ID:               uuid.NewString(),
				PlanDayID:        day.ID,
				Title:            row.Title,
				Category:         models.TaskCategory(row.Category),
				EstimatedMinutes: row.Minutes,
				Required:         row.Required,
			}
			if err := taskRepo.Create(ctx, task); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("Day %d, task %q: %v", dayIndex, row.Title, err))
				continue
			}
			result.TasksCreated++
		}
	}

	return nil
}

// cellValue returns the trimmed cell at the given column letter
func cellValue(row []string, column string) string {
	idx := columnToIndex(column)
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// columnToIndex converts an Excel column letter to a 0-based index
func columnToIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	if column == "" {
		return -1
	}
	index := 0
	for _, c := range column {
		if c < 'A' || c > 'Z' {
			return -1
		}
		index = index*26 + int(c-'A') + 1
	}
	return index - 1
}

func parseIntInRange(s string, min, max int) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if value < min || value > max {
		return 0, fmt.Errorf("value %d out of range [%d, %d]", value, min, max)
	}
	return value, nil
}

func parseIntOrDefault(s string, min, max, defaultVal int) int {
	value, err := parseIntInRange(s, min, max)
	if err != nil {
		return defaultVal
	}
	return value
}

// parseBool interprets spreadsheet truthiness: yes/no, true/false, 1/0.
// Empty cells fall back to the default.
func parseBool(s string, defaultVal bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return defaultVal
	case "yes", "y", "true", "1", "required", "да":
		return true
	case "no", "n", "false", "0", "optional", "нет":
		return false
	default:
		return defaultVal
	}
}
