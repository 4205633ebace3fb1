package store

import (
	"fyne.io/fyne/v2"
	"github.com/borgmon/remindcal/pkg/models"
)

// ConfigStore handles configuration persistence using Fyne preferences
type ConfigStore struct {
	prefs fyne.Preferences
}

// NewConfigStore creates a new ConfigStore instance
func NewConfigStore(app fyne.App) *ConfigStore {
	return &ConfigStore{prefs: app.Preferences()}
}

// Load loads configuration from preferences, falling back to defaults
func (cs *ConfigStore) Load() *models.Config {
	def := models.DefaultConfig()

	config := &models.Config{
		AutoStart:       cs.prefs.BoolWithFallback("auto_start", def.AutoStart),
		PlaySound:       cs.prefs.BoolWithFallback("play_sound", def.PlaySound),
		SoundPath:       cs.prefs.StringWithFallback("sound_path", def.SoundPath),
		RetractOnChange: cs.prefs.BoolWithFallback("retract_on_change", def.RetractOnChange),
		AgendaEnabled:   cs.prefs.BoolWithFallback("agenda_enabled", def.AgendaEnabled),
		AgendaTime:      cs.prefs.StringWithFallback("agenda_time", def.AgendaTime),
		MinimumDelayMs:  cs.prefs.IntWithFallback("minimum_delay_ms", def.MinimumDelayMs),
	}
	config.Normalize()

	return config
}

// Save saves configuration to preferences
func (cs *ConfigStore) Save(config *models.Config) {
	config.Normalize()

	cs.prefs.SetBool("auto_start", config.AutoStart)
	cs.prefs.SetBool("play_sound", config.PlaySound)
	cs.prefs.SetString("sound_path", config.SoundPath)
	cs.prefs.SetBool("retract_on_change", config.RetractOnChange)
	cs.prefs.SetBool("agenda_enabled", config.AgendaEnabled)
	cs.prefs.SetString("agenda_time", config.AgendaTime)
	cs.prefs.SetInt("minimum_delay_ms", config.MinimumDelayMs)
}
