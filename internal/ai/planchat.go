package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PlanSystemPrompt steers the model through a short interview and makes
// it emit the finished schedule as bare JSON matching PlanDraft.
const PlanSystemPrompt = `You are a study coach who builds personalized multi-day study plans.

Your job:
1. Understand what the user wants to learn or prepare for.
2. Ask 3-6 short, direct questions, one at a time: current level, time
   available per day (in minutes), deadline if any, focus areas.
3. Once you have enough information, reply with ONLY a JSON object (no
   text before or after it) in exactly this shape:

{
  "name": "Plan name",
  "days": [
    {
      "dayIndex": 1,
      "title": "Day title",
      "theme": "Optional theme",
      "tasks": [
        {"title": "Task name", "minutes": 30, "category": "Backend", "required": true}
      ]
    }
  ]
}

Rules:
- "days" MUST be a JSON array, never an object.
- Every day needs dayIndex (number, 1-based and consecutive), title and
  a tasks array with 2-4 practical tasks.
- Valid categories: Frontend, Backend, SQL/DB, Redis/Caching,
  System Design, Writing, Pipeline, Review, Other.
- Mark the essential tasks of each day as required.
- The daily task minutes must fit the time the user said they have.
- Keep conversational replies short, at most 2-3 sentences.`

// PlanDraft is the schedule the model produces before it is persisted
type PlanDraft struct {
	Name string      `json:"name"`
	Days []DayDraft  `json:"days"`
}

// DayDraft is one day of a drafted plan
type DayDraft struct {
	DayIndex int         `json:"dayIndex"`
	Title    string      `json:"title"`
	Theme    string      `json:"theme"`
	Tasks    []TaskDraft `json:"tasks"`
}

// TaskDraft is one task of a drafted plan
type TaskDraft struct {
	Title    string `json:"title"`
	Minutes  int    `json:"minutes"`
	Category string `json:"category"`
	Required bool   `json:"required"`
}

// TotalMinutes sums the estimated minutes of every task in the draft
func (p *PlanDraft) TotalMinutes() int {
	total := 0
	for _, day := range p.Days {
		for _, task := range day.Tasks {
			total += task.Minutes
		}
	}
	return total
}

// TotalTasks counts every task in the draft
func (p *PlanDraft) TotalTasks() int {
	total := 0
	for _, day := range p.Days {
		total += len(day.Tasks)
	}
	return total
}

// ExtractPlan looks for a plan JSON object in an assistant reply.
// Returns (nil, "") when the reply is plain conversation, (plan, "")
// on success, and (nil, feedback) when the reply contained JSON that
// does not satisfy the draft contract — the feedback is phrased so it
// can be sent straight back to the model as a correction request.
func ExtractPlan(text string) (*PlanDraft, string) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, ""
	}

	var plan PlanDraft
	if err := json.Unmarshal([]byte(text[start:end+1]), &plan); err != nil {
		return nil, "The JSON was invalid. Please produce the complete plan again as valid JSON."
	}

	if plan.Name == "" {
		return nil, `The JSON is missing the "name" field. Please produce the complete plan again.`
	}
	if len(plan.Days) == 0 {
		return nil, `The "days" array is empty or missing. Please produce the complete plan again with "days": [...].`
	}

	for i, day := range plan.Days {
		if day.DayIndex == 0 || day.Title == "" {
			return nil, fmt.Sprintf("Day %d is incomplete: every day needs dayIndex and title. Please produce the complete plan again.", i+1)
		}
		if len(day.Tasks) == 0 {
			return nil, fmt.Sprintf(`Day %d has no tasks. Every day needs a "tasks" array. Please produce the complete plan again.`, day.DayIndex)
		}
		for _, task := range day.Tasks {
			if task.Title == "" || task.Minutes <= 0 {
				return nil, fmt.Sprintf("Day %d has a task without a title or with non-positive minutes. Please produce the complete plan again.", day.DayIndex)
			}
		}
	}

	return &plan, ""
}

// PlanSummary renders a short confirmation message for a drafted plan
func PlanSummary(plan *PlanDraft) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📚 %s\n\n", plan.Name)
	fmt.Fprintf(&b, "📅 %d study days\n", len(plan.Days))
	fmt.Fprintf(&b, "✅ %d tasks in total\n", plan.TotalTasks())
	if len(plan.Days) > 0 {
		fmt.Fprintf(&b, "⏱ ~%d min/day\n", plan.TotalMinutes()/len(plan.Days))
	}
	b.WriteString("\nContent:\n")

	for i, day := range plan.Days {
		if i == 5 {
			fmt.Fprintf(&b, "• ... and %d more days\n", len(plan.Days)-5)
			break
		}
		fmt.Fprintf(&b, "• Day %d: %s\n", day.DayIndex, day.Title)
	}

	return b.String()
}
