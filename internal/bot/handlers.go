package bot

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/example/studysprint/internal/ai"
	"github.com/example/studysprint/internal/excel"
	"github.com/example/studysprint/internal/planner"
	"github.com/example/studysprint/internal/progress"
	"github.com/example/studysprint/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
)

// handleStartCommand handles the /start command
func (b *Bot) handleStartCommand(message *tgbotapi.Message) {
	ctx := context.Background()
	userID := b.userRepo.CurrentUser()

	// Привязываем Telegram к локальному пользователю
	if err := b.userRepo.SetTelegramID(ctx, userID, message.From.ID); err != nil {
		log.Printf("Error linking telegram id for user %s: %v", userID, err)
	}

	welcomeText := `Welcome to StudySprint! 🎓

I track your study plan day by day and tell you when you fall behind.

Available commands:
/today - Today's tasks
/done - Mark tasks as completed
/log - Log hours and pipeline activity
/status - Today's progress
/dashboard - Streak, XP and charts summary
/recovery - Catch-up order for overdue tasks
/streak - Current streak
/newplan - Build a new plan with the AI coach
/plans - Manage your plans
/importplan - Import a plan from Excel or CSV
/export - Export your plan and history
/settings - Configure reminders and streak rules`

	msg := tgbotapi.NewMessage(message.Chat.ID, welcomeText)
	msg.ReplyMarkup = createKeyboard(b.MainMenuButtons())
	b.send(msg)
}

// activeSnapshot loads the snapshot and reports the no-plan case to the
// user. Returns nil when there is nothing to show.
func (b *Bot) activeSnapshot(chatID int64) *planner.Snapshot {
	ctx := context.Background()
	snap, err := b.planner.ActiveSnapshot(ctx, b.userRepo.CurrentUser())
	if err == planner.ErrNoActivePlan {
		b.reply(chatID, "You have no active plan yet. Create one with /newplan or /importplan.")
		return nil
	}
	if err != nil {
		log.Printf("Error loading snapshot: %v", err)
		b.reply(chatID, "Something went wrong loading your plan. Please try again.")
		return nil
	}
	return snap
}

// statusEmoji maps a day status to its marker
func statusEmoji(status models.DayStatus) string {
	switch status {
	case models.StatusDone:
		return "✅"
	case models.StatusToday:
		return "📍"
	case models.StatusPartial:
		return "🟡"
	case models.StatusBehind:
		return "🔴"
	default:
		return "⬜"
	}
}

// renderDay formats one plan day with task checkmarks
func renderDay(day *models.GeneratedDay, log models.DailyLog) string {
	var text strings.Builder

	fmt.Fprintf(&text, "%s Day %d — %s (%s)\n", statusEmoji(day.Status), day.DayIndex, day.Title, day.Date)
	if day.Theme != "" {
		fmt.Fprintf(&text, "Theme: %s\n", day.Theme)
	}
	text.WriteString("\n")

	for _, task := range day.Tasks {
		mark := "⬜"
		if log.HasCompleted(task.ID) {
			mark = "✅"
		}
		required := ""
		if !task.Required {
			required = " (optional)"
		}
		fmt.Fprintf(&text, "%s %s — %d min, %s%s\n", mark, task.Title, task.EstimatedMinutes, task.Category, required)
	}

	fmt.Fprintf(&text, "\nProgress: %d%% (%d/%d tasks, %d/%d min)",
		day.Progress.Percent,
		day.Progress.CompletedTasks, day.Progress.TotalTasks,
		day.Progress.MinutesDone, day.Progress.MinutesPlanned)

	return text.String()
}

// handleTodayCommand shows today's tasks
func (b *Bot) handleTodayCommand(message *tgbotapi.Message) {
	snap := b.activeSnapshot(message.Chat.ID)
	if snap == nil {
		return
	}

	day := snap.DayByDate(snap.Today)
	if day == nil {
		b.reply(message.Chat.ID, fmt.Sprintf("No plan day is scheduled for today (%s). The plan runs %d day(s) from %s.",
			snap.Today, len(snap.Days), snap.Settings.StartDate))
		return
	}

	b.reply(message.Chat.ID, renderDay(day, snap.Logs[snap.Today]))
}

// handleDoneCommand shows toggle buttons for today's tasks
func (b *Bot) handleDoneCommand(message *tgbotapi.Message) {
	snap := b.activeSnapshot(message.Chat.ID)
	if snap == nil {
		return
	}

	day := snap.DayByDate(snap.Today)
	if day == nil {
		b.reply(message.Chat.ID, "No plan day is scheduled for today.")
		return
	}

	todayLog := snap.Logs[snap.Today]
	var buttons [][]MenuButton
	for _, task := range day.Tasks {
		mark := "⬜"
		if todayLog.HasCompleted(task.ID) {
			mark = "✅"
		}
		buttons = append(buttons, []MenuButton{{
			Text:         fmt.Sprintf("%s %s (%d min)", mark, task.Title, task.EstimatedMinutes),
			CallbackData: "toggle:" + task.ID,
		}})
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, "Tap a task to toggle it. Overdue tasks from earlier days are in /recovery.")
	msg.ReplyMarkup = createKeyboard(buttons)
	b.send(msg)
}

// toggleTask flips one task's completion in today's log
func (b *Bot) toggleTask(chatID int64, taskID string) {
	ctx := context.Background()
	userID := b.userRepo.CurrentUser()

	snap := b.activeSnapshot(chatID)
	if snap == nil {
		return
	}

	task, day := snap.FindTask(taskID)
	if task == nil {
		b.reply(chatID, "That task no longer exists.")
		return
	}

	updated, err := b.logRepo.ToggleTask(ctx, userID, snap.Today, taskID)
	if err != nil {
		log.Printf("Error toggling task %s: %v", taskID, err)
		b.reply(chatID, "Could not update the task. Please try again.")
		return
	}

	if updated.HasCompleted(taskID) {
		xp := progress.XPPerTask
		if task.Required {
			xp += progress.XPBonusRequired
		}
		b.reply(chatID, fmt.Sprintf("✅ %s — done! +%d XP (Day %d)", task.Title, xp, day.DayIndex))
	} else {
		b.reply(chatID, fmt.Sprintf("⬜ %s — unmarked.", task.Title))
	}
}

// handleLogCommand starts the daily log entry flow
func (b *Bot) handleLogCommand(message *tgbotapi.Message) {
	b.userStates[message.From.ID] = UserState{
		State:     "waiting_for_log_entry",
		Timestamp: time.Now(),
		Data:      make(map[string]interface{}),
	}

	instructions := "📝 *Daily log*\n\n" +
		"Send today's numbers in one line:\n\n" +
		"```\n" +
		"hours applications messages\n" +
		"```\n\n" +
		"For example: `2.5 3 5` — 2.5 hours studied, 3 applications sent, 5 outreach messages.\n\n" +
		"To cancel, send /cancel"

	msg := tgbotapi.NewMessage(message.Chat.ID, instructions)
	msg.ParseMode = "Markdown"
	b.send(msg)
}

// processLogEntry parses "hours applications messages" and saves the log
func (b *Bot) processLogEntry(message *tgbotapi.Message) {
	ctx := context.Background()
	userID := b.userRepo.CurrentUser()

	fields := strings.Fields(message.Text)
	if len(fields) < 1 || len(fields) > 3 {
		b.reply(message.Chat.ID, "Please send 1 to 3 numbers: hours [applications] [messages].")
		return
	}

	hours, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || hours < 0 || hours > 24 {
		b.reply(message.Chat.ID, "Hours must be a number between 0 and 24.")
		return
	}

	applications := 0
	if len(fields) > 1 {
		applications, err = strconv.Atoi(fields[1])
		if err != nil || applications < 0 {
			b.reply(message.Chat.ID, "Applications must be a non-negative number.")
			return
		}
	}

	messages := 0
	if len(fields) > 2 {
		messages, err = strconv.Atoi(fields[2])
		if err != nil || messages < 0 {
			b.reply(message.Chat.ID, "Messages must be a non-negative number.")
			return
		}
	}

	settings, err := b.settingsRepo.GetByUser(ctx, userID)
	if err != nil {
		log.Printf("Error getting settings: %v", err)
		b.reply(message.Chat.ID, "Something went wrong. Please try again.")
		return
	}
	today := progress.Today(settings.Timezone)

	entry, err := b.logRepo.GetByDate(ctx, userID, today)
	if err != nil {
		log.Printf("Error getting log for %s: %v", today, err)
		b.reply(message.Chat.ID, "Something went wrong. Please try again.")
		return
	}
	if entry == nil {
		entry = &models.DailyLog{UserID: userID, Date: today}
	}
	entry.HoursSpent = hours
	entry.PipelineApplications = applications
	entry.PipelineMessages = messages

	if err := b.logRepo.Upsert(ctx, entry); err != nil {
		log.Printf("Error saving log for %s: %v", today, err)
		b.reply(message.Chat.ID, "Could not save the log. Please try again.")
		return
	}

	b.userStates[message.From.ID] = UserState{
		State:     "waiting_for_reflection",
		Timestamp: time.Now(),
		Data:      make(map[string]interface{}),
	}
	b.reply(message.Chat.ID, fmt.Sprintf("Saved: %.1fh, %d applications, %d messages.\n\nSend a short reflection to close the day, or /cancel to skip.", hours, applications, messages))
}

// processReflection saves the reflection and finalizes the day
func (b *Bot) processReflection(message *tgbotapi.Message) {
	ctx := context.Background()
	userID := b.userRepo.CurrentUser()
	delete(b.userStates, message.From.ID)

	settings, err := b.settingsRepo.GetByUser(ctx, userID)
	if err != nil {
		log.Printf("Error getting settings: %v", err)
		return
	}
	today := progress.Today(settings.Timezone)

	entry, err := b.logRepo.GetByDate(ctx, userID, today)
	if err != nil || entry == nil {
		b.reply(message.Chat.ID, "No log found for today. Use /log first.")
		return
	}

	now := time.Now()
	entry.ReflectionText = strings.TrimSpace(message.Text)
	entry.FinalizedAt = &now

	if err := b.logRepo.Upsert(ctx, entry); err != nil {
		log.Printf("Error finalizing log for %s: %v", today, err)
		b.reply(message.Chat.ID, "Could not save the reflection. Please try again.")
		return
	}

	b.reply(message.Chat.ID, "🌙 Day closed. See you tomorrow!")
}

// handleStatusCommand shows today's progress numbers
func (b *Bot) handleStatusCommand(message *tgbotapi.Message) {
	snap := b.activeSnapshot(message.Chat.ID)
	if snap == nil {
		return
	}

	day := snap.DayByDate(snap.Today)
	if day == nil {
		b.reply(message.Chat.ID, "No plan day is scheduled for today.")
		return
	}

	p := day.Progress
	text := fmt.Sprintf(`📍 Day %d — %s

Progress: %d%%
Tasks: %d/%d done (%d/%d required)
Minutes: %d/%d
XP earned today: %d`,
		day.DayIndex, day.Title,
		p.Percent,
		p.CompletedTasks, p.TotalTasks, p.CompletedRequiredTasks, p.RequiredTasks,
		p.MinutesDone, p.MinutesPlanned,
		day.XP)

	b.reply(message.Chat.ID, text)
}

// handleDashboardCommand shows the aggregated overview
func (b *Bot) handleDashboardCommand(message *tgbotapi.Message) {
	ctx := context.Background()
	dash, err := b.planner.Dashboard(ctx, b.userRepo.CurrentUser())
	if err == planner.ErrNoActivePlan {
		b.reply(message.Chat.ID, "You have no active plan yet. Create one with /newplan or /importplan.")
		return
	}
	if err != nil {
		log.Printf("Error loading dashboard: %v", err)
		b.reply(message.Chat.ID, "Something went wrong loading your dashboard. Please try again.")
		return
	}

	var text strings.Builder
	fmt.Fprintf(&text, "📊 %s\n\n", dash.Snapshot.Plan.Name)
	fmt.Fprintf(&text, "🔥 Streak: %d day(s)\n", dash.Streak)
	fmt.Fprintf(&text, "⭐ Total XP: %d\n", dash.TotalXP)
	fmt.Fprintf(&text, "✅ Days done: %d/%d\n", dash.DoneDays, len(dash.Snapshot.Days))

	if n := len(dash.Charts.Progress); n > 0 {
		last := dash.Charts.Progress[n-1]
		fmt.Fprintf(&text, "📈 Minutes completed: %d (linear target %d)\n", last.Cumulative, last.Target)
	}

	if dash.Behind.IsBehind {
		fmt.Fprintf(&text, "\n⚠️ Behind schedule: %d required task(s) overdue. Use /recovery.", dash.Behind.PendingRequiredCount)
	} else {
		text.WriteString("\n👍 You are on track.")
	}

	b.reply(message.Chat.ID, text.String())
}

// handleRecoveryCommand lists overdue required tasks in catch-up order
func (b *Bot) handleRecoveryCommand(message *tgbotapi.Message) {
	ctx := context.Background()
	dash, err := b.planner.Dashboard(ctx, b.userRepo.CurrentUser())
	if err == planner.ErrNoActivePlan {
		b.reply(message.Chat.ID, "You have no active plan yet. Create one with /newplan or /importplan.")
		return
	}
	if err != nil {
		log.Printf("Error loading dashboard: %v", err)
		b.reply(message.Chat.ID, "Something went wrong. Please try again.")
		return
	}

	if !dash.Behind.IsBehind {
		b.reply(message.Chat.ID, "🎉 Nothing to catch up on — you are not behind.")
		return
	}

	var text strings.Builder
	fmt.Fprintf(&text, "🚑 Recovery plan — %d required task(s) overdue.\nSuggested order (quick wins first):\n\n", dash.Behind.PendingRequiredCount)

	var buttons [][]MenuButton
	for i, pending := range dash.RecoveryPlan {
		if i == b.config.MaxRecoveryTasks {
			fmt.Fprintf(&text, "... and %d more\n", len(dash.RecoveryPlan)-i)
			break
		}
		fmt.Fprintf(&text, "%d. %s — %d min (Day %d, %s)\n",
			i+1, pending.Task.Title, pending.Task.EstimatedMinutes, pending.DayIndex, pending.Date)
		buttons = append(buttons, []MenuButton{{
			Text:         fmt.Sprintf("✅ %s", pending.Task.Title),
			CallbackData: "toggle:" + pending.Task.ID,
		}})
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, text.String())
	msg.ReplyMarkup = createKeyboard(buttons)
	b.send(msg)
}

// handleStreakCommand shows the current streak
func (b *Bot) handleStreakCommand(message *tgbotapi.Message) {
	ctx := context.Background()
	dash, err := b.planner.Dashboard(ctx, b.userRepo.CurrentUser())
	if err == planner.ErrNoActivePlan {
		b.reply(message.Chat.ID, "You have no active plan yet. Create one with /newplan or /importplan.")
		return
	}
	if err != nil {
		log.Printf("Error loading dashboard: %v", err)
		b.reply(message.Chat.ID, "Something went wrong. Please try again.")
		return
	}

	minTasks := dash.Snapshot.Settings.StreakRuleMinTasks
	if dash.Streak == 0 {
		b.reply(message.Chat.ID, fmt.Sprintf("No streak yet. Complete at least %d task(s) today to start one.", minTasks))
		return
	}
	b.reply(message.Chat.ID, fmt.Sprintf("🔥 %d day streak! Keep completing at least %d task(s) a day to extend it.", dash.Streak, minTasks))
}

// handleNewPlanCommand starts the AI plan-building conversation
func (b *Bot) handleNewPlanCommand(message *tgbotapi.Message) {
	if !b.openAiEnabled {
		b.reply(message.Chat.ID, "AI plan building is not configured. Use /importplan to load a plan from a file instead.")
		return
	}

	b.planChats[message.From.ID] = &planChat{
		Messages: []ai.Message{
			{Role: "system", Content: ai.PlanSystemPrompt},
		},
		StartedAt: time.Now(),
	}

	b.reply(message.Chat.ID, "🧑‍🏫 Let's build your study plan. Tell me: what are you preparing for, how many days do you have, and how much time per day? Send /cancel to stop.")
}

// continuePlanChat relays the user's message to the model and handles the
// reply. When the model produces malformed plan JSON it is asked to
// correct itself once before the error is surfaced.
func (b *Bot) continuePlanChat(userID, chatID int64, text string) {
	chat := b.planChats[userID]
	chat.Messages = append(chat.Messages, ai.Message{Role: "user", Content: text})

	reply, err := b.chatGPT.Complete(chat.Messages)
	if err != nil {
		log.Printf("Error from chat completion: %v", err)
		b.reply(chatID, "The AI coach is unavailable right now. Please try again in a moment.")
		return
	}
	chat.Messages = append(chat.Messages, ai.Message{Role: "assistant", Content: reply})

	plan, feedback := ai.ExtractPlan(reply)
	if plan == nil && feedback != "" {
		// Просим модель исправить план один раз
		chat.Messages = append(chat.Messages, ai.Message{Role: "user", Content: feedback})
		reply, err = b.chatGPT.Complete(chat.Messages)
		if err != nil {
			log.Printf("Error from corrective chat completion: %v", err)
			b.reply(chatID, "The AI coach is unavailable right now. Please try again in a moment.")
			return
		}
		chat.Messages = append(chat.Messages, ai.Message{Role: "assistant", Content: reply})
		plan, feedback = ai.ExtractPlan(reply)
	}

	if plan == nil {
		if feedback != "" {
			b.reply(chatID, "The coach could not produce a valid plan. Try rephrasing your goals or /cancel.")
			return
		}
		// Обычный ход беседы
		b.reply(chatID, reply)
		return
	}

	chat.Draft = plan

	msg := tgbotapi.NewMessage(chatID, ai.PlanSummary(plan)+"\nSave this plan and start it today?")
	msg.ReplyMarkup = createKeyboard([][]MenuButton{{
		{Text: "💾 Save and start", CallbackData: "plan_confirm"},
		{Text: "❌ Discard", CallbackData: "plan_cancel"},
	}})
	b.send(msg)
}

// savePlanDraft persists a confirmed draft as the new active plan
func (b *Bot) savePlanDraft(userID, chatID int64) {
	chat, ok := b.planChats[userID]
	if !ok || chat.Draft == nil {
		b.reply(chatID, "There is no plan draft to save. Start with /newplan.")
		return
	}
	draft := chat.Draft
	delete(b.planChats, userID)

	ctx := context.Background()
	dbUserID := b.userRepo.CurrentUser()

	plan := &models.Plan{
		ID:     uuid.NewString(),
		UserID: dbUserID,
		Name:   draft.Name,
	}
	if err := b.planRepo.Create(ctx, plan); err != nil {
		log.Printf("Error creating plan: %v", err)
		b.reply(chatID, "Could not save the plan. Please try again.")
		return
	}

	for _, dayDraft := range draft.Days {
		day := &models.PlanDay{
			ID:       uuid.NewString(),
			PlanID:   plan.ID,
			DayIndex: dayDraft.DayIndex,
			Title:    dayDraft.Title,
			Theme:    dayDraft.Theme,
		}
		if err := b.dayRepo.Create(ctx, day); err != nil {
			log.Printf("Error creating day %d: %v", dayDraft.DayIndex, err)
			continue
		}
		for _, taskDraft := range dayDraft.Tasks {
			category := taskDraft.Category
			if !models.IsValidCategory(category) {
				category = string(models.CategoryOther)
			}
			task := &models.Task{
				ID:               uuid.NewString(),
				PlanDayID:        day.ID,
				Title:            taskDraft.Title,
				Category:         models.TaskCategory(category),
				EstimatedMinutes: taskDraft.Minutes,
				Required:         taskDraft.Required,
			}
			if err := b.taskRepo.Create(ctx, task); err != nil {
				log.Printf("Error creating task %q: %v", taskDraft.Title, err)
			}
		}
	}

	if err := b.planRepo.SetActive(ctx, dbUserID, plan.ID); err != nil {
		log.Printf("Error activating plan: %v", err)
	}

	// День 1 нового плана — сегодня
	settings, err := b.settingsRepo.GetByUser(ctx, dbUserID)
	if err == nil {
		settings.StartDate = progress.Today(settings.Timezone)
		if err := b.settingsRepo.Update(ctx, settings); err != nil {
			log.Printf("Error updating start date: %v", err)
		}
	}

	b.reply(chatID, fmt.Sprintf("💾 Saved \"%s\" — %d days, %d tasks. Day 1 is today. Use /today to begin!",
		draft.Name, len(draft.Days), draft.TotalTasks()))
}

// handlePlansCommand lists plans with activation buttons
func (b *Bot) handlePlansCommand(message *tgbotapi.Message) {
	ctx := context.Background()
	plans, err := b.planRepo.GetAll(ctx, b.userRepo.CurrentUser())
	if err != nil {
		log.Printf("Error listing plans: %v", err)
		b.reply(message.Chat.ID, "Something went wrong. Please try again.")
		return
	}

	if len(plans) == 0 {
		b.reply(message.Chat.ID, "You have no plans yet. Create one with /newplan or /importplan.")
		return
	}

	var text strings.Builder
	text.WriteString("📚 Your plans:\n\n")
	var buttons [][]MenuButton
	for _, plan := range plans {
		marker := "  "
		if plan.IsActive {
			marker = "▶️"
		}
		fmt.Fprintf(&text, "%s %s\n", marker, plan.Name)
		if !plan.IsActive {
			buttons = append(buttons, []MenuButton{{
				Text:         "Activate: " + plan.Name,
				CallbackData: "activate:" + plan.ID,
			}})
		}
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, text.String())
	if len(buttons) > 0 {
		msg.ReplyMarkup = createKeyboard(buttons)
	}
	b.send(msg)
}

// activatePlan switches the active plan and restarts the schedule today
func (b *Bot) activatePlan(chatID int64, planID string) {
	ctx := context.Background()
	userID := b.userRepo.CurrentUser()

	plan, err := b.planRepo.GetByID(ctx, planID)
	if err != nil {
		b.reply(chatID, "That plan no longer exists.")
		return
	}

	if err := b.planRepo.SetActive(ctx, userID, planID); err != nil {
		log.Printf("Error activating plan %s: %v", planID, err)
		b.reply(chatID, "Could not activate the plan. Please try again.")
		return
	}

	settings, err := b.settingsRepo.GetByUser(ctx, userID)
	if err == nil {
		settings.StartDate = progress.Today(settings.Timezone)
		if err := b.settingsRepo.Update(ctx, settings); err != nil {
			log.Printf("Error updating start date: %v", err)
		}
	}

	b.reply(chatID, fmt.Sprintf("▶️ \"%s\" is now active. Day 1 is today.", plan.Name))
}

// handleSettingsCommand shows settings with edit buttons
func (b *Bot) handleSettingsCommand(message *tgbotapi.Message) {
	ctx := context.Background()
	settings, err := b.settingsRepo.GetByUser(ctx, b.userRepo.CurrentUser())
	if err != nil {
		log.Printf("Error getting settings: %v", err)
		b.reply(message.Chat.ID, "Something went wrong. Please try again.")
		return
	}

	text := fmt.Sprintf(`⚙️ Settings

Start date: %s
Timezone: %s
Reminder time: %s
Streak rule: at least %d task(s) per day
Weekly goals: %d applications, %d messages`,
		settings.StartDate, settings.Timezone, settings.ReminderTime,
		settings.StreakRuleMinTasks,
		settings.WeeklyGoalApplications, settings.WeeklyGoalMessages)

	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ReplyMarkup = createKeyboard([][]MenuButton{
		{
			{Text: "⏰ Reminder time", CallbackData: "set_reminder"},
			{Text: "🔥 Streak rule", CallbackData: "set_streak_rule"},
		},
		{
			{Text: "↩️ Reset to defaults", CallbackData: "settings_reset"},
		},
	})
	b.send(msg)
}

// processReminderTime validates and saves a new HH:MM reminder time
func (b *Bot) processReminderTime(message *tgbotapi.Message) {
	value := strings.TrimSpace(message.Text)
	if _, err := time.Parse("15:04", value); err != nil {
		b.reply(message.Chat.ID, "Please send the time as HH:MM, for example 09:00.")
		return
	}
	delete(b.userStates, message.From.ID)

	ctx := context.Background()
	settings, err := b.settingsRepo.GetByUser(ctx, b.userRepo.CurrentUser())
	if err != nil {
		log.Printf("Error getting settings: %v", err)
		b.reply(message.Chat.ID, "Something went wrong. Please try again.")
		return
	}
	settings.ReminderTime = value
	if err := b.settingsRepo.Update(ctx, settings); err != nil {
		log.Printf("Error updating settings: %v", err)
		b.reply(message.Chat.ID, "Could not save the setting. Please try again.")
		return
	}
	b.reply(message.Chat.ID, fmt.Sprintf("⏰ Reminder time set to %s.", value))
}

// processStreakRule validates and saves the streak minimum
func (b *Bot) processStreakRule(message *tgbotapi.Message) {
	count, err := strconv.Atoi(strings.TrimSpace(message.Text))
	if err != nil || count < 1 || count > 10 {
		b.reply(message.Chat.ID, "Пожалуйста, введите число от 1 до 10.")
		return
	}
	delete(b.userStates, message.From.ID)

	ctx := context.Background()
	settings, err := b.settingsRepo.GetByUser(ctx, b.userRepo.CurrentUser())
	if err != nil {
		log.Printf("Error getting settings: %v", err)
		b.reply(message.Chat.ID, "Something went wrong. Please try again.")
		return
	}
	settings.StreakRuleMinTasks = count
	if err := b.settingsRepo.Update(ctx, settings); err != nil {
		log.Printf("Error updating settings: %v", err)
		b.reply(message.Chat.ID, "Could not save the setting. Please try again.")
		return
	}
	b.reply(message.Chat.ID, fmt.Sprintf("🔥 Streak now requires at least %d task(s) per day.", count))
}

// handleImportPlanCommand asks for a plan file
func (b *Bot) handleImportPlanCommand(message *tgbotapi.Message) {
	b.awaitingFileUpload[message.Chat.ID] = true

	instructions := "📥 *Plan import*\n\n" +
		"Send an .xlsx or .csv file with one task per row:\n\n" +
		"```\n" +
		"Day | Day title | Theme | Task | Minutes | Category | Required\n" +
		"```\n\n" +
		"The first row is treated as a header. To cancel, send /cancel"

	msg := tgbotapi.NewMessage(message.Chat.ID, instructions)
	msg.ParseMode = "Markdown"
	b.send(msg)
}

// processPlanUpload downloads the document and imports it as a plan
func (b *Bot) processPlanUpload(message *tgbotapi.Message) {
	delete(b.awaitingFileUpload, message.Chat.ID)
	ctx := context.Background()

	doc := message.Document
	url, err := b.api.GetFileDirectURL(doc.FileID)
	if err != nil {
		log.Printf("Error getting file URL: %v", err)
		b.reply(message.Chat.ID, "Could not download the file. Please try again.")
		return
	}

	resp, err := http.Get(url)
	if err != nil {
		log.Printf("Error downloading file: %v", err)
		b.reply(message.Chat.ID, "Could not download the file. Please try again.")
		return
	}
	defer resp.Body.Close()

	tmp, err := os.CreateTemp("", "plan-*"+filepath.Ext(doc.FileName))
	if err != nil {
		log.Printf("Error creating temp file: %v", err)
		b.reply(message.Chat.ID, "Could not process the file. Please try again.")
		return
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		log.Printf("Error saving file: %v", err)
		b.reply(message.Chat.ID, "Could not process the file. Please try again.")
		return
	}
	tmp.Close()

	config := excel.DefaultImportConfig()
	config.FilePath = tmp.Name()
	config.PlanName = strings.TrimSuffix(doc.FileName, filepath.Ext(doc.FileName))

	result, err := excel.ImportPlan(ctx, b.userRepo.CurrentUser(), config)
	if err != nil {
		log.Printf("Error importing plan: %v", err)
		b.reply(message.Chat.ID, fmt.Sprintf("Import failed: %v", err))
		return
	}

	var text strings.Builder
	fmt.Fprintf(&text, "📥 Import finished:\n• %d rows processed\n• %d days created\n• %d tasks created\n",
		result.TotalProcessed, result.DaysCreated, result.TasksCreated)
	if result.Skipped > 0 {
		fmt.Fprintf(&text, "• %d blank rows skipped\n", result.Skipped)
	}
	if len(result.Errors) > 0 {
		fmt.Fprintf(&text, "• %d row(s) had errors, first: %s\n", len(result.Errors), result.Errors[0])
	}
	text.WriteString("\nThe plan is not active yet. Use /plans to switch to it.")

	b.reply(message.Chat.ID, text.String())
}

// handleExportCommand sends the plan and history as JSON and XLSX files
func (b *Bot) handleExportCommand(message *tgbotapi.Message) {
	ctx := context.Background()
	doc, err := excel.BuildExport(ctx, b.userRepo.CurrentUser())
	if err != nil {
		log.Printf("Error building export: %v", err)
		b.reply(message.Chat.ID, fmt.Sprintf("Export failed: %v", err))
		return
	}

	jsonData, err := doc.JSON()
	if err != nil {
		log.Printf("Error rendering export JSON: %v", err)
		b.reply(message.Chat.ID, "Export failed. Please try again.")
		return
	}

	stamp := time.Now().Format("2006-01-02")
	jsonFile := tgbotapi.FileBytes{Name: fmt.Sprintf("studysprint-%s.json", stamp), Bytes: jsonData}
	b.send(tgbotapi.NewDocument(message.Chat.ID, jsonFile))

	xlsxData, err := doc.XLSX()
	if err != nil {
		log.Printf("Error rendering export XLSX: %v", err)
		return
	}
	xlsxFile := tgbotapi.FileBytes{Name: fmt.Sprintf("studysprint-plan-%s.xlsx", stamp), Bytes: xlsxData}
	b.send(tgbotapi.NewDocument(message.Chat.ID, xlsxFile))
}

// handleResetCommand asks for confirmation before wiping data
func (b *Bot) handleResetCommand(message *tgbotapi.Message) {
	msg := tgbotapi.NewMessage(message.Chat.ID,
		"⚠️ This deletes ALL your plans and logs and resets settings to defaults. This cannot be undone.")
	msg.ReplyMarkup = createKeyboard([][]MenuButton{{
		{Text: "🗑 Yes, delete everything", CallbackData: "reset_confirm"},
		{Text: "Cancel", CallbackData: "reset_cancel"},
	}})
	b.send(msg)
}

// performReset wipes plans, logs and settings for the user
func (b *Bot) performReset(chatID int64) {
	ctx := context.Background()
	userID := b.userRepo.CurrentUser()

	if err := b.logRepo.DeleteAllForUser(ctx, userID); err != nil {
		log.Printf("Error deleting logs: %v", err)
		b.reply(chatID, "Reset failed. Please try again.")
		return
	}
	if err := b.planRepo.DeleteAllForUser(ctx, userID); err != nil {
		log.Printf("Error deleting plans: %v", err)
		b.reply(chatID, "Reset failed. Please try again.")
		return
	}
	if err := b.settingsRepo.ResetToDefaults(ctx, userID); err != nil {
		log.Printf("Error resetting settings: %v", err)
	}

	b.reply(chatID, "🗑 Everything deleted. Start fresh with /newplan or /importplan.")
}

// handleRemindCommand triggers an immediate reminder check
func (b *Bot) handleRemindCommand(message *tgbotapi.Message) {
	if b.scheduler == nil {
		b.reply(message.Chat.ID, "The scheduler is not running.")
		return
	}
	if err := b.scheduler.RunManualCheck(message.Chat.ID); err != nil {
		log.Printf("Error running manual reminder check: %v", err)
		b.reply(message.Chat.ID, "Reminder check failed.")
		return
	}
	b.reply(message.Chat.ID, "Reminder check done.")
}

// handleCancelCommand clears any pending conversation state
func (b *Bot) handleCancelCommand(message *tgbotapi.Message) {
	userID := message.From.ID
	delete(b.userStates, userID)
	delete(b.planChats, userID)
	delete(b.awaitingFileUpload, message.Chat.ID)
	b.reply(message.Chat.ID, "Cancelled. Use /menu to show the main menu.")
}

// handleCallbackQuery routes button presses
func (b *Bot) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	// Закрываем "часики" на кнопке
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		log.Printf("Error answering callback: %v", err)
	}

	chatID := query.Message.Chat.ID
	userID := query.From.ID
	data := query.Data

	switch {
	case data == "menu_today":
		b.handleTodayCommand(query.Message)
	case data == "menu_done":
		b.handleDoneCommand(query.Message)
	case data == "menu_dashboard":
		b.handleDashboardCommand(query.Message)
	case data == "menu_streak":
		b.handleStreakCommand(query.Message)
	case data == "menu_recovery":
		b.handleRecoveryCommand(query.Message)
	case data == "menu_settings":
		b.handleSettingsCommand(query.Message)
	case strings.HasPrefix(data, "toggle:"):
		b.toggleTask(chatID, strings.TrimPrefix(data, "toggle:"))
	case data == "plan_confirm":
		b.savePlanDraft(userID, chatID)
	case data == "plan_cancel":
		delete(b.planChats, userID)
		b.reply(chatID, "Draft discarded. Start again with /newplan.")
	case strings.HasPrefix(data, "activate:"):
		b.activatePlan(chatID, strings.TrimPrefix(data, "activate:"))
	case data == "set_reminder":
		b.userStates[userID] = UserState{State: "waiting_for_reminder_time", Timestamp: time.Now(), Data: make(map[string]interface{})}
		b.reply(chatID, "Send the new reminder time as HH:MM, for example 09:00.")
	case data == "set_streak_rule":
		b.userStates[userID] = UserState{State: "waiting_for_streak_rule", Timestamp: time.Now(), Data: make(map[string]interface{})}
		b.reply(chatID, "How many completed tasks should a day need to count toward the streak? Send a number from 1 to 10.")
	case data == "settings_reset":
		ctx := context.Background()
		if err := b.settingsRepo.ResetToDefaults(ctx, b.userRepo.CurrentUser()); err != nil {
			log.Printf("Error resetting settings: %v", err)
			b.reply(chatID, "Could not reset settings. Please try again.")
			return
		}
		b.reply(chatID, "↩️ Settings reset to defaults.")
	case data == "reset_confirm":
		b.performReset(chatID)
	case data == "reset_cancel":
		b.reply(chatID, "Reset cancelled.")
	default:
		log.Printf("Unknown callback data: %s", data)
	}
}
