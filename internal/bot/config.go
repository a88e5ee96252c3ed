package bot

import (
	"time"
)

// BotConfig represents the configuration for the bot
type BotConfig struct {
	// Maximum recovery tasks listed in a single message
	MaxRecoveryTasks int
	// Maximum days listed in the plan overview
	MaxPlanDays int
	// How long an unfinished plan conversation is kept
	PlanChatTimeout time.Duration
}

// DefaultConfig returns the default bot configuration
func DefaultConfig() *BotConfig {
	return &BotConfig{
		MaxRecoveryTasks: 10,
		MaxPlanDays:      14,
		PlanChatTimeout:  time.Minute * 30,
	}
}
