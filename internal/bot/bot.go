package bot

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/example/studysprint/internal/ai"
	"github.com/example/studysprint/internal/database"
	"github.com/example/studysprint/internal/planner"
	"github.com/example/studysprint/internal/scheduler"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MenuButton represents a button in the menu
type MenuButton struct {
	Text         string
	CallbackData string
}

// createKeyboard creates a keyboard from menu buttons
func createKeyboard(buttons [][]MenuButton) tgbotapi.InlineKeyboardMarkup {
	var keyboard [][]tgbotapi.InlineKeyboardButton
	for _, row := range buttons {
		var keyboardRow []tgbotapi.InlineKeyboardButton
		for _, button := range row {
			keyboardRow = append(keyboardRow, tgbotapi.NewInlineKeyboardButtonData(button.Text, button.CallbackData))
		}
		keyboard = append(keyboard, keyboardRow)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}

// UserState represents the current state of a user in conversation with the bot
type UserState struct {
	State     string
	Timestamp time.Time
	Data      map[string]interface{}
}

// planChat is an ongoing plan-building conversation with the model
type planChat struct {
	Messages  []ai.Message
	Draft     *ai.PlanDraft
	StartedAt time.Time
}

// Bot represents the Telegram bot application
type Bot struct {
	api                *tgbotapi.BotAPI
	token              string
	planner            *planner.Service
	userRepo           *database.UserRepository
	settingsRepo       *database.SettingsRepository
	planRepo           *database.PlanRepository
	dayRepo            *database.PlanDayRepository
	taskRepo           *database.TaskRepository
	logRepo            *database.LogRepository
	openAiEnabled      bool
	schedulerEnabled   bool
	scheduler          *scheduler.Scheduler
	userStates         map[int64]UserState
	planChats          map[int64]*planChat
	adminUserIDs       map[int64]bool
	awaitingFileUpload map[int64]bool
	chatGPT            *ai.ChatGPT
	config             *BotConfig
}

// New creates a new bot instance
func New() (*Bot, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}

	if database.DB == nil {
		return nil, fmt.Errorf("database connection is not established")
	}

	openAiEnabled := os.Getenv("OPENAI_API_KEY") != ""
	var chatGPT *ai.ChatGPT

	if openAiEnabled {
		var err error
		chatGPT, err = ai.New()
		if err != nil {
			log.Printf("Warning: Unable to initialize OpenAI client: %v", err)
			openAiEnabled = false
		}
	}

	schedulerEnabled := os.Getenv("ENABLE_SCHEDULER") != "false"

	bot := &Bot{
		token:              token,
		planner:            planner.New(),
		userRepo:           database.NewUserRepository(),
		settingsRepo:       database.NewSettingsRepository(),
		planRepo:           database.NewPlanRepository(),
		dayRepo:            database.NewPlanDayRepository(),
		taskRepo:           database.NewTaskRepository(),
		logRepo:            database.NewLogRepository(),
		openAiEnabled:      openAiEnabled,
		schedulerEnabled:   schedulerEnabled,
		userStates:         make(map[int64]UserState),
		planChats:          make(map[int64]*planChat),
		adminUserIDs:       make(map[int64]bool),
		awaitingFileUpload: make(map[int64]bool),
		chatGPT:            chatGPT,
		config:             DefaultConfig(),
	}

	adminIDs := os.Getenv("ADMIN_USER_IDS")
	if adminIDs != "" {
		for _, idStr := range strings.Split(adminIDs, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64)
			if err != nil {
				log.Printf("Warning: Invalid admin user ID: %s", idStr)
				continue
			}
			bot.adminUserIDs[id] = true
		}
	}

	return bot, nil
}

// Start initializes and starts the bot
func (b *Bot) Start() error {
	botAPI, err := tgbotapi.NewBotAPI(b.token)
	if err != nil {
		return fmt.Errorf("unable to create bot: %v", err)
	}

	b.api = botAPI
	log.Printf("Authorized on account %s", botAPI.Self.UserName)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates := b.api.GetUpdatesChan(updateConfig)

	if b.schedulerEnabled {
		// Запускаем планировщик напоминаний
		b.scheduler = scheduler.New(b)
		b.scheduler.Start()
		log.Println("Reminder scheduler started")
	}

	for update := range updates {
		b.handleUpdate(update)
	}

	return nil
}

// Stop gracefully stops the bot
func (b *Bot) Stop() {
	if b.scheduler != nil {
		b.scheduler.Stop()
	}
	if b.api != nil {
		b.api.StopReceivingUpdates()
	}
	log.Println("Bot stopped")
}

// SendReminder implements the scheduler.Notifier interface
func (b *Bot) SendReminder(chatID int64, pendingToday int, behindCount int) error {
	var text strings.Builder
	text.WriteString("⏰ Study reminder\n\n")
	if pendingToday > 0 {
		fmt.Fprintf(&text, "📋 %d task(s) still open today. Use /today to see them.\n", pendingToday)
	}
	if behindCount > 0 {
		fmt.Fprintf(&text, "⚠️ %d required task(s) overdue from earlier days. Use /recovery for a catch-up order.\n", behindCount)
	}

	msg := tgbotapi.NewMessage(chatID, text.String())
	_, err := b.api.Send(msg)
	if err != nil {
		log.Printf("Error sending reminder to chat %d: %v", chatID, err)
	} else {
		log.Printf("Sent reminder to chat %d: %d pending today, %d behind", chatID, pendingToday, behindCount)
	}
	return err
}

// isAdmin checks if a user is an admin
func (b *Bot) isAdmin(userID int64) bool {
	return b.adminUserIDs[userID]
}

// send is a small helper that logs delivery failures
func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

// reply sends a plain text message to a chat
func (b *Bot) reply(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

// handleUpdate handles incoming updates from Telegram
func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.Message != nil {
		if update.Message.IsCommand() {
			b.handleCommand(update.Message)
		} else if b.awaitingFileUpload[update.Message.Chat.ID] {
			if update.Message.Document != nil {
				b.processPlanUpload(update.Message)
			} else {
				b.reply(update.Message.Chat.ID, "Please send the plan as an .xlsx or .csv file, or /cancel.")
			}
		} else {
			b.handleText(update.Message)
		}
	} else if update.CallbackQuery != nil {
		b.handleCallbackQuery(update.CallbackQuery)
	}
}

// handleCommand dispatches a bot command to its handler
func (b *Bot) handleCommand(message *tgbotapi.Message) {
	// Любая команда прерывает ожидание файла
	delete(b.awaitingFileUpload, message.Chat.ID)

	switch message.Command() {
	case "start":
		b.handleStartCommand(message)
	case "menu":
		b.showMainMenu(message.Chat.ID)
	case "today":
		b.handleTodayCommand(message)
	case "done":
		b.handleDoneCommand(message)
	case "log":
		b.handleLogCommand(message)
	case "status":
		b.handleStatusCommand(message)
	case "dashboard":
		b.handleDashboardCommand(message)
	case "recovery":
		b.handleRecoveryCommand(message)
	case "streak":
		b.handleStreakCommand(message)
	case "newplan":
		b.handleNewPlanCommand(message)
	case "plans":
		b.handlePlansCommand(message)
	case "settings":
		b.handleSettingsCommand(message)
	case "importplan":
		b.handleImportPlanCommand(message)
	case "export":
		b.handleExportCommand(message)
	case "reset":
		b.handleResetCommand(message)
	case "remind":
		// Admin-only command
		if b.isAdmin(message.From.ID) {
			b.handleRemindCommand(message)
		} else {
			b.reply(message.Chat.ID, "This command is only available for administrators.")
		}
	case "cancel":
		b.handleCancelCommand(message)
	default:
		msg := tgbotapi.NewMessage(message.Chat.ID, "Unknown command. Use /menu to show the main menu.")
		msg.ReplyMarkup = createKeyboard(b.MainMenuButtons())
		b.send(msg)
	}
}

// handleText handles free text according to the user's conversation state
func (b *Bot) handleText(message *tgbotapi.Message) {
	userID := message.From.ID

	if chat, ok := b.planChats[userID]; ok {
		if time.Since(chat.StartedAt) > b.config.PlanChatTimeout {
			delete(b.planChats, userID)
			b.reply(message.Chat.ID, "The plan conversation timed out. Start again with /newplan.")
			return
		}
		b.continuePlanChat(userID, message.Chat.ID, message.Text)
		return
	}

	state, exists := b.userStates[userID]
	if !exists {
		msg := tgbotapi.NewMessage(message.Chat.ID, "I don't understand. Use /menu to show the main menu.")
		msg.ReplyMarkup = createKeyboard(b.MainMenuButtons())
		b.send(msg)
		return
	}

	switch state.State {
	case "waiting_for_log_entry":
		b.processLogEntry(message)
	case "waiting_for_reflection":
		b.processReflection(message)
	case "waiting_for_reminder_time":
		b.processReminderTime(message)
	case "waiting_for_streak_rule":
		b.processStreakRule(message)
	default:
		delete(b.userStates, userID)
		b.reply(message.Chat.ID, "I don't understand. Use /menu to show the main menu.")
	}
}

// MainMenuButtons returns the rows of the main menu keyboard
func (b *Bot) MainMenuButtons() [][]MenuButton {
	return [][]MenuButton{
		{
			{Text: "📋 Today", CallbackData: "menu_today"},
			{Text: "✅ Mark done", CallbackData: "menu_done"},
		},
		{
			{Text: "📊 Dashboard", CallbackData: "menu_dashboard"},
			{Text: "🔥 Streak", CallbackData: "menu_streak"},
		},
		{
			{Text: "🚑 Recovery", CallbackData: "menu_recovery"},
			{Text: "⚙️ Settings", CallbackData: "menu_settings"},
		},
	}
}

// showMainMenu displays the main menu
func (b *Bot) showMainMenu(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "What would you like to do?")
	msg.ReplyMarkup = createKeyboard(b.MainMenuButtons())
	b.send(msg)
}
