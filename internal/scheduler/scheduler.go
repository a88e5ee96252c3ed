package scheduler

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/example/studysprint/internal/database"
	"github.com/example/studysprint/internal/planner"
	"github.com/go-co-op/gocron"
)

// Константы для настроек уведомлений по умолчанию
const (
	DefaultNotificationStartHour = 7  // Время начала уведомлений
	DefaultNotificationEndHour   = 22 // Время окончания уведомлений
)

// Scheduler manages scheduled reminder tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	notifier  Notifier
	planner   *planner.Service
}

// Notifier interface for sending notifications
type Notifier interface {
	SendReminder(chatID int64, pendingToday int, behindCount int) error
}

// New creates a new scheduler instance
func New(notifier Notifier) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		notifier:  notifier,
		planner:   planner.New(),
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	// Schedule hourly check for pending reminders
	s.scheduler.Every(1).Hour().Do(s.checkAndSendReminder)

	// Start the scheduler in a non-blocking manner
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// notificationWindow returns the allowed hour range for reminders
func notificationWindow() (int, int) {
	// Используем значения по умолчанию
	startHour := DefaultNotificationStartHour
	endHour := DefaultNotificationEndHour

	// Проверяем, задано ли время в переменных окружения
	if startHourStr := os.Getenv("NOTIFICATION_START_HOUR"); startHourStr != "" {
		if h, err := strconv.Atoi(startHourStr); err == nil && h >= 0 && h <= 23 {
			startHour = h
		}
	}

	if endHourStr := os.Getenv("NOTIFICATION_END_HOUR"); endHourStr != "" {
		if h, err := strconv.Atoi(endHourStr); err == nil && h >= 0 && h <= 23 {
			endHour = h
		}
	}

	return startHour, endHour
}

// reminderHour parses the hour component of a "HH:MM" reminder time
func reminderHour(reminderTime string) (int, bool) {
	parts := strings.SplitN(reminderTime, ":", 2)
	if len(parts) == 0 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	return h, true
}

// checkAndSendReminder checks whether the user should be reminded at the
// current hour and sends the reminder
func (s *Scheduler) checkAndSendReminder() {
	ctx := context.Background()

	userRepo := database.NewUserRepository()
	settingsRepo := database.NewSettingsRepository()

	userID := userRepo.CurrentUser()

	settings, err := settingsRepo.GetByUser(ctx, userID)
	if err != nil {
		log.Printf("Error getting settings for user %s: %v", userID, err)
		return
	}

	// Текущий час в часовом поясе пользователя
	loc, err := time.LoadLocation(settings.Timezone)
	if err != nil {
		loc = time.UTC
	}
	currentHour := time.Now().In(loc).Hour()

	startHour, endHour := notificationWindow()
	if currentHour < startHour || currentHour > endHour {
		log.Printf("Current hour %d is outside notification hours (%d-%d), skipping reminder",
			currentHour, startHour, endHour)
		return
	}

	hour, ok := reminderHour(settings.ReminderTime)
	if !ok || currentHour != hour {
		return
	}

	chatID, err := userRepo.GetTelegramID(ctx, userID)
	if err != nil || chatID == 0 {
		// Пользователь еще не привязал Telegram
		return
	}

	if err := s.sendFor(ctx, userID, chatID); err != nil {
		log.Printf("Error sending reminder to chat %d: %v", chatID, err)
	}
}

// RunManualCheck forces a reminder check for a specific chat
func (s *Scheduler) RunManualCheck(chatID int64) error {
	ctx := context.Background()
	userID := database.NewUserRepository().CurrentUser()
	return s.sendFor(ctx, userID, chatID)
}

// sendFor computes what is pending for the user and notifies when there
// is anything to do
func (s *Scheduler) sendFor(ctx context.Context, userID string, chatID int64) error {
	dash, err := s.planner.Dashboard(ctx, userID)
	if err == planner.ErrNoActivePlan {
		return nil
	}
	if err != nil {
		return err
	}

	pendingToday := 0
	if dash.TodayDay != nil {
		todayLog := dash.Snapshot.Logs[dash.Snapshot.Today]
		for _, task := range dash.TodayDay.Tasks {
			if !todayLog.HasCompleted(task.ID) {
				pendingToday++
			}
		}
	}

	behindCount := dash.Behind.PendingRequiredCount

	if pendingToday == 0 && behindCount == 0 {
		return nil
	}

	return s.notifier.SendReminder(chatID, pendingToday, behindCount)
}
