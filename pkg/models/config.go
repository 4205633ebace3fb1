package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultAgendaTime     = "08:00"
	DefaultMinimumDelayMs = 1
)

// Config holds application configuration
type Config struct {
	AutoStart       bool   `json:"auto_start"`
	PlaySound       bool   `json:"play_sound"`        // chime when a reminder is delivered
	SoundPath       string `json:"sound_path"`        // optional WAV file, built-in tone when empty
	RetractOnChange bool   `json:"retract_on_change"` // cancel pending reminders when their event is edited or deleted
	AgendaEnabled   bool   `json:"agenda_enabled"`    // send a daily summary of today's events
	AgendaTime      string `json:"agenda_time"`       // "HH:MM", local time
	MinimumDelayMs  int    `json:"minimum_delay_ms"`  // floor for reminder timers
}

// DefaultConfig returns the configuration used on first run
func DefaultConfig() *Config {
	return &Config{
		AutoStart:       false,
		PlaySound:       true,
		RetractOnChange: true,
		AgendaEnabled:   false,
		AgendaTime:      DefaultAgendaTime,
		MinimumDelayMs:  DefaultMinimumDelayMs,
	}
}

// Normalize replaces invalid values with defaults
func (c *Config) Normalize() {
	if _, _, err := ParseClock(c.AgendaTime); err != nil {
		c.AgendaTime = DefaultAgendaTime
	}
	if c.MinimumDelayMs < 1 {
		c.MinimumDelayMs = DefaultMinimumDelayMs
	}
	c.SoundPath = strings.TrimSpace(c.SoundPath)
}

// MinimumDelay returns the reminder timer floor as a duration
func (c *Config) MinimumDelay() time.Duration {
	if c.MinimumDelayMs < 1 {
		return time.Duration(DefaultMinimumDelayMs) * time.Millisecond
	}
	return time.Duration(c.MinimumDelayMs) * time.Millisecond
}

// AgendaSpec returns the cron spec ("M H * * *") for the daily agenda
func (c *Config) AgendaSpec() (string, error) {
	hour, minute, err := ParseClock(c.AgendaTime)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}

// ParseClock parses an "HH:MM" wall-clock time
func ParseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time format: %q", s)
	}

	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour, minute, nil
}
