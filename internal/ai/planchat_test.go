package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPlanJSON = `{
	"name": "Go Interview Prep",
	"days": [
		{"dayIndex": 1, "title": "Fundamentals", "theme": "Basics", "tasks": [
			{"title": "Read docs", "minutes": 45, "category": "Backend", "required": true},
			{"title": "Exercises", "minutes": 30, "category": "Backend", "required": false}
		]},
		{"dayIndex": 2, "title": "Concurrency", "tasks": [
			{"title": "Goroutines", "minutes": 60, "category": "Backend", "required": true}
		]}
	]
}`

func TestExtractPlanValid(t *testing.T) {
	plan, feedback := ExtractPlan("Here is your plan:\n" + validPlanJSON)

	require.NotNil(t, plan)
	assert.Empty(t, feedback)
	assert.Equal(t, "Go Interview Prep", plan.Name)
	require.Len(t, plan.Days, 2)
	assert.Equal(t, 135, plan.TotalMinutes())
	assert.Equal(t, 3, plan.TotalTasks())
}

func TestExtractPlanPlainConversation(t *testing.T) {
	plan, feedback := ExtractPlan("How many minutes per day can you study?")

	assert.Nil(t, plan)
	assert.Empty(t, feedback)
}

func TestExtractPlanInvalidJSON(t *testing.T) {
	plan, feedback := ExtractPlan(`{"name": "Broken", "days": [}`)

	assert.Nil(t, plan)
	assert.NotEmpty(t, feedback)
}

func TestExtractPlanMissingName(t *testing.T) {
	plan, feedback := ExtractPlan(`{"days": [{"dayIndex": 1, "title": "A", "tasks": [{"title": "T", "minutes": 10}]}]}`)

	assert.Nil(t, plan)
	assert.Contains(t, feedback, `"name"`)
}

func TestExtractPlanEmptyDays(t *testing.T) {
	plan, feedback := ExtractPlan(`{"name": "Empty", "days": []}`)

	assert.Nil(t, plan)
	assert.Contains(t, feedback, `"days"`)
}

func TestExtractPlanDayWithoutTasks(t *testing.T) {
	plan, feedback := ExtractPlan(`{"name": "P", "days": [{"dayIndex": 1, "title": "A", "tasks": []}]}`)

	assert.Nil(t, plan)
	assert.Contains(t, feedback, "no tasks")
}

func TestExtractPlanBadTaskMinutes(t *testing.T) {
	plan, feedback := ExtractPlan(`{"name": "P", "days": [{"dayIndex": 1, "title": "A", "tasks": [{"title": "T", "minutes": 0}]}]}`)

	assert.Nil(t, plan)
	assert.NotEmpty(t, feedback)
}

func TestPlanSummary(t *testing.T) {
	plan, _ := ExtractPlan(validPlanJSON)
	require.NotNil(t, plan)

	summary := PlanSummary(plan)

	assert.Contains(t, summary, "Go Interview Prep")
	assert.Contains(t, summary, "2 study days")
	assert.Contains(t, summary, "3 tasks in total")
	assert.Contains(t, summary, "Day 1: Fundamentals")
	assert.NotContains(t, summary, "more days")
}

func TestPlanSummaryTruncatesLongPlans(t *testing.T) {
	plan := &PlanDraft{Name: "Long"}
	for i := 1; i <= 8; i++ {
		plan.Days = append(plan.Days, DayDraft{
			DayIndex: i,
			Title:    "Day",
			Tasks:    []TaskDraft{{Title: "T", Minutes: 10}},
		})
	}

	summary := PlanSummary(plan)

	assert.Contains(t, summary, "and 3 more days")
	assert.NotContains(t, summary, "Day 6:")
}
