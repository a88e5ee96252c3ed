package progress

import (
	"testing"

	"github.com/example/studysprint/pkg/models"
	"github.com/stretchr/testify/assert"
)

func threeDays() []models.GeneratedDay {
	return []models.GeneratedDay{
		newDay(1, "2024-01-01"),
		newDay(2, "2024-01-02"),
		newDay(3, "2024-01-03"),
	}
}

func TestComputeStreakNoActivity(t *testing.T) {
	assert.Zero(t, ComputeStreak(threeDays(), nil, 1, "2024-01-03"))
}

func TestComputeStreakConsecutiveDays(t *testing.T) {
	logs := logsByDate(
		newLog("2024-01-01", "t1", "t2"),
		newLog("2024-01-02", "t3", "t4"),
		newLog("2024-01-03", "t5"),
	)

	assert.Equal(t, 3, ComputeStreak(threeDays(), logs, 1, "2024-01-03"))
}

func TestComputeStreakGapBreaks(t *testing.T) {
	logs := logsByDate(
		newLog("2024-01-01", "t1", "t2"),
		newLog("2024-01-02"), // gap
		newLog("2024-01-03", "t5", "t6"),
	)

	// The gap at day 2 stops the backward walk immediately; day 1 never
	// counts even though it meets the threshold.
	assert.Equal(t, 1, ComputeStreak(threeDays(), logs, 2, "2024-01-03"))
}

func TestComputeStreakMissingLogBreaks(t *testing.T) {
	logs := logsByDate(
		newLog("2024-01-01", "t1"),
		newLog("2024-01-03", "t5"),
	)

	assert.Equal(t, 1, ComputeStreak(threeDays(), logs, 1, "2024-01-03"))
}

func TestComputeStreakEmptyTodayKeepsRun(t *testing.T) {
	logs := logsByDate(
		newLog("2024-01-01", "t1"),
		newLog("2024-01-02", "t3"),
	)

	// Nothing logged today yet: the streak built on days 1-2 survives,
	// it just is not extended.
	assert.Equal(t, 2, ComputeStreak(threeDays(), logs, 1, "2024-01-03"))
}

func TestComputeStreakEmptyPastDayAlwaysBreaks(t *testing.T) {
	logs := logsByDate(
		newLog("2024-01-01", "t1"),
	)

	// Day 2 (a past day) under threshold terminates the walk even though
	// day 1 would qualify. Only the empty "today" is exempt.
	assert.Zero(t, ComputeStreak(threeDays(), logs, 1, "2024-01-03"))
}

func TestComputeStreakIgnoresFutureDays(t *testing.T) {
	days := append(threeDays(), newDay(4, "2024-01-04"), newDay(5, "2024-01-05"))
	logs := logsByDate(
		newLog("2024-01-02", "t3"),
		newLog("2024-01-03", "t5"),
		newLog("2024-01-05", "t9"), // future relative to today
	)

	assert.Equal(t, 2, ComputeStreak(days, logs, 1, "2024-01-03"))
}

func TestComputeStreakThreshold(t *testing.T) {
	logs := logsByDate(
		newLog("2024-01-02", "t3", "t4", "t5"),
		newLog("2024-01-03", "t6", "t7"),
	)

	assert.Equal(t, 2, ComputeStreak(threeDays(), logs, 2, "2024-01-03"))
	assert.Equal(t, 1, ComputeStreak(threeDays(), logs, 3, "2024-01-03"))
}
