package main

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/borgmon/remindcal/pkg/agenda"
	"github.com/borgmon/remindcal/pkg/audio"
	"github.com/borgmon/remindcal/pkg/models"
	"github.com/borgmon/remindcal/pkg/planner"
	"github.com/borgmon/remindcal/pkg/reminder"
	"github.com/borgmon/remindcal/pkg/store"
)

const appID = "com.borgmon.remindcal"

type RemindCal struct {
	app            fyne.App
	configStore    *store.ConfigStore
	configMu       sync.RWMutex
	config         *models.Config
	events         *store.EventStore
	reminders      *reminder.Scheduler
	planner        *planner.Planner
	briefing       *agenda.Briefing
	chime          *audio.Chime // guarded by configMu
	mainWindow     *MainWindow
	settingsWindow *SettingsWindow

	// set once the fyne loop has exited; fyne.Do must not be called after that
	stopping atomic.Bool
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	rc := &RemindCal{
		app:    app.NewWithID(appID),
		events: store.NewEventStore(),
	}

	if err := rc.initialize(); err != nil {
		log.Fatal(err)
	}

	rc.run()
}

func (rc *RemindCal) initialize() error {
	rc.configStore = store.NewConfigStore(rc.app)
	rc.config = rc.configStore.Load()

	// Sync autostart state with config on startup
	if err := setupAutostart(rc.config.AutoStart); err != nil {
		log.Printf("Warning: failed to setup autostart: %v", err)
	}

	rc.chime = rc.loadChime(rc.config.SoundPath)

	rc.reminders = reminder.New(reminder.SystemClock{},
		reminder.WithMinimumDelay(rc.config.MinimumDelay()),
		reminder.WithReleaseHook(func(reminder.Ticket) {
			if !rc.stopping.Load() {
				fyne.Do(rc.updateSystemTrayMenu)
			}
		}),
	)
	rc.planner = planner.New(rc.events, rc.reminders, rc.deliverReminder, rc.config.RetractOnChange)

	rc.mainWindow = NewMainWindow(rc.app, rc.planner, rc.events.Location(), func() {
		rc.updateSystemTrayMenu()
	}, rc.showSettingsWindow)

	rc.setupSystemTray()
	rc.startAgenda()

	rc.mainWindow.Show()
	return nil
}

func (rc *RemindCal) run() {
	rc.app.Run()
	rc.shutdown()
}

func (rc *RemindCal) quit() {
	rc.app.Quit()
}

func (rc *RemindCal) shutdown() {
	rc.stopping.Store(true)
	rc.stopAgenda()
	rc.reminders.Stop()
	log.Println("RemindCal stopped")
}

func (rc *RemindCal) loadChime(path string) *audio.Chime {
	if path == "" {
		return audio.NewChime()
	}
	chime, err := audio.LoadChime(path)
	if err != nil {
		log.Printf("Error loading sound %q, using built-in chime: %v", path, err)
		return audio.NewChime()
	}
	return chime
}

// currentConfig returns the active config and chime. Delivery runs on timer
// goroutines, so both are read under configMu.
func (rc *RemindCal) currentConfig() (*models.Config, *audio.Chime) {
	rc.configMu.RLock()
	defer rc.configMu.RUnlock()
	return rc.config, rc.chime
}

func (rc *RemindCal) startAgenda() {
	config, _ := rc.currentConfig()
	if !config.AgendaEnabled {
		return
	}

	spec, err := config.AgendaSpec()
	if err != nil {
		log.Printf("[AGENDA] Invalid agenda time: %v", err)
		return
	}

	rc.briefing = agenda.New(rc.events, rc.events.Location(), rc.deliverAgenda)
	if err := rc.briefing.Start(spec); err != nil {
		log.Printf("[AGENDA] %v", err)
		rc.briefing = nil
		return
	}
	log.Printf("[AGENDA] Next agenda at %s", rc.briefing.Next().Format(time.RFC1123))
}

func (rc *RemindCal) stopAgenda() {
	if rc.briefing != nil {
		rc.briefing.Stop()
		rc.briefing = nil
	}
}

// applyConfig takes effect immediately for everything except the reminder floor,
// which is read once when the scheduler is created.
func (rc *RemindCal) applyConfig(newConfig *models.Config) {
	chime := rc.loadChime(newConfig.SoundPath)

	rc.configMu.Lock()
	rc.config = newConfig
	rc.chime = chime
	rc.configMu.Unlock()

	rc.planner.SetRetractOnChange(newConfig.RetractOnChange)

	rc.stopAgenda()
	rc.startAgenda()
}

func (rc *RemindCal) showSettingsWindow() {
	if rc.settingsWindow != nil && rc.settingsWindow.window != nil {
		rc.settingsWindow.window.RequestFocus()
		rc.settingsWindow.window.Show()
		return
	}

	config, _ := rc.currentConfig()
	rc.settingsWindow = NewSettingsWindow(rc.app, config, rc.configStore, func(newConfig *models.Config) {
		rc.applyConfig(newConfig)
	}, func() {
		if err := rc.deliverReminder("Sample Event", "This is how reminders will appear."); err != nil {
			log.Printf("Error previewing reminder: %v", err)
		}
	}, func() {
		rc.settingsWindow = nil
	})
	rc.settingsWindow.Show()
}
