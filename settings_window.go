package main

import (
	"fmt"
	"log"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/remindcal/pkg/models"
	"github.com/borgmon/remindcal/pkg/store"
)

const savedMessage = "Settings saved successfully"

type SettingsWindow struct {
	window      fyne.Window
	app         fyne.App
	config      *models.Config
	configStore *store.ConfigStore
	onSave      func(*models.Config)
	onPreview   func()

	autoStartCheck    *widget.Check
	playSoundCheck    *widget.Check
	soundPathEntry    *widget.Entry
	retractCheck      *widget.Check
	agendaCheck       *widget.Check
	agendaTimeEntry   *widget.Entry
	minimumDelayEntry *widget.Entry

	saveStatusLabel *widget.Label
	saveButton      *widget.Button
}

func NewSettingsWindow(app fyne.App, config *models.Config, configStore *store.ConfigStore, onSave func(*models.Config), onPreview func(), onClosed func()) *SettingsWindow {
	sw := &SettingsWindow{
		app:         app,
		config:      config,
		configStore: configStore,
		onSave:      onSave,
		onPreview:   onPreview,
	}

	sw.window = app.NewWindow("RemindCal - Settings")
	sw.buildUI()
	sw.window.SetOnClosed(onClosed)

	return sw
}

func (sw *SettingsWindow) buildUI() {
	sw.saveStatusLabel = widget.NewLabel("")
	sw.saveStatusLabel.Importance = widget.SuccessImportance

	sw.saveButton = widget.NewButton("Save", sw.save)
	sw.saveButton.Importance = widget.HighImportance
	sw.saveButton.Disable() // Initially disabled until changes are made

	previewButton := widget.NewButton("Preview Reminder", func() {
		if sw.onPreview != nil {
			sw.onPreview()
		}
	})

	closeButton := widget.NewButton("Close", func() {
		sw.handleClose()
	})

	buttonRow := container.NewBorder(
		nil,
		nil,
		container.NewHBox(sw.saveButton, sw.saveStatusLabel),
		container.NewHBox(previewButton, closeButton),
		container.NewHBox(),
	)

	content := container.NewBorder(
		nil,
		container.NewPadded(buttonRow),
		nil,
		nil,
		sw.buildForm(),
	)

	sw.window.SetContent(content)
	sw.window.Resize(fyne.NewSize(720, 560))
	sw.window.CenterOnScreen()

	sw.window.Canvas().SetOnTypedKey(func(key *fyne.KeyEvent) {
		if key.Name == fyne.KeyEscape {
			sw.handleClose()
		}
	})

	sw.window.SetCloseIntercept(func() {
		sw.handleClose()
	})
}

func (sw *SettingsWindow) buildForm() fyne.CanvasObject {
	changed := func(bool) { sw.markChanged() }
	edited := func(string) { sw.markChanged() }

	sw.autoStartCheck = widget.NewCheck("Auto Start on System Boot", nil)
	sw.autoStartCheck.SetChecked(sw.config.AutoStart)
	sw.autoStartCheck.OnChanged = changed

	sw.playSoundCheck = widget.NewCheck("Play a chime with each reminder", nil)
	sw.playSoundCheck.SetChecked(sw.config.PlaySound)
	sw.playSoundCheck.OnChanged = changed

	sw.soundPathEntry = widget.NewEntry()
	sw.soundPathEntry.SetPlaceHolder("Built-in chime")
	sw.soundPathEntry.SetText(sw.config.SoundPath)
	sw.soundPathEntry.OnChanged = edited

	browseButton := widget.NewButton("Browse...", func() {
		open := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				return
			}
			defer reader.Close()
			sw.soundPathEntry.SetText(reader.URI().Path())
		}, sw.window)
		open.SetFilter(storage.NewExtensionFileFilter([]string{".wav"}))
		open.Show()
	})

	sw.retractCheck = widget.NewCheck("Cancel reminders when their event is edited or deleted", nil)
	sw.retractCheck.SetChecked(sw.config.RetractOnChange)
	sw.retractCheck.OnChanged = changed

	sw.agendaCheck = widget.NewCheck("Send a summary of today's events", nil)
	sw.agendaCheck.SetChecked(sw.config.AgendaEnabled)
	sw.agendaCheck.OnChanged = changed

	sw.agendaTimeEntry = widget.NewEntry()
	sw.agendaTimeEntry.SetPlaceHolder(models.DefaultAgendaTime)
	sw.agendaTimeEntry.SetText(sw.config.AgendaTime)
	sw.agendaTimeEntry.Validator = func(s string) error {
		_, _, err := models.ParseClock(s)
		return err
	}
	sw.agendaTimeEntry.OnChanged = edited

	sw.minimumDelayEntry = widget.NewEntry()
	sw.minimumDelayEntry.SetText(strconv.Itoa(sw.config.MinimumDelayMs))
	sw.minimumDelayEntry.Validator = func(s string) error {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err != nil || n < 1 {
			return fmt.Errorf("must be a whole number of milliseconds, at least 1")
		}
		return nil
	}
	sw.minimumDelayEntry.OnChanged = edited

	minimumDelayHelp := widget.NewLabel("Applies after restart")
	minimumDelayHelp.Importance = widget.MediumImportance

	storageURIEntry := widget.NewEntry()
	storageURIEntry.SetText(sw.app.Storage().RootURI().String())
	storageURIEntry.Disable()

	openStorageButton := widget.NewButton("Open in File Manager", func() {
		openInFileManager(sw.app.Storage().RootURI().Path())
	})

	form := container.New(layout.NewFormLayout(),
		widget.NewLabel("Auto Start:"),
		sw.autoStartCheck,

		widget.NewLabel("Sound:"),
		container.NewVBox(
			sw.playSoundCheck,
			container.NewBorder(nil, nil, nil, browseButton, sw.soundPathEntry),
		),

		widget.NewLabel("Reminders:"),
		sw.retractCheck,

		widget.NewLabel("Daily Agenda:"),
		container.NewVBox(sw.agendaCheck, sw.agendaTimeEntry),

		widget.NewLabel("Minimum Delay (ms):"),
		container.NewVBox(sw.minimumDelayEntry, minimumDelayHelp),

		widget.NewLabel("Storage Location:"),
		container.NewBorder(nil, container.NewPadded(openStorageButton), nil, nil, storageURIEntry),
	)

	content := container.NewVBox(
		widget.NewLabel("Settings"),
		widget.NewSeparator(),
		form,
	)

	return container.NewPadded(container.NewVScroll(content))
}

func (sw *SettingsWindow) getConfigFromUI() *models.Config {
	minimumDelay, err := strconv.Atoi(strings.TrimSpace(sw.minimumDelayEntry.Text))
	if err != nil {
		minimumDelay = sw.config.MinimumDelayMs
	}

	return &models.Config{
		AutoStart:       sw.autoStartCheck.Checked,
		PlaySound:       sw.playSoundCheck.Checked,
		SoundPath:       strings.TrimSpace(sw.soundPathEntry.Text),
		RetractOnChange: sw.retractCheck.Checked,
		AgendaEnabled:   sw.agendaCheck.Checked,
		AgendaTime:      strings.TrimSpace(sw.agendaTimeEntry.Text),
		MinimumDelayMs:  minimumDelay,
	}
}

func (sw *SettingsWindow) save() {
	if err := sw.agendaTimeEntry.Validate(); err != nil {
		sw.setStatus("Error: agenda time must be HH:MM", widget.DangerImportance)
		return
	}
	if err := sw.minimumDelayEntry.Validate(); err != nil {
		sw.setStatus("Error: "+err.Error(), widget.DangerImportance)
		return
	}

	sw.saveButton.Disable()
	sw.setStatus("Saving...", widget.MediumImportance)

	newConfig := sw.getConfigFromUI()
	go func() {
		if err := setupAutostart(newConfig.AutoStart); err != nil {
			log.Printf("Error setting autostart: %v", err)
			fyne.Do(func() {
				sw.setStatus("Error: Failed to set autostart", widget.DangerImportance)
				sw.updateSaveButtonState()
			})
			return
		}

		sw.configStore.Save(newConfig)

		fyne.Do(func() {
			sw.config = newConfig
			if sw.onSave != nil {
				sw.onSave(newConfig)
			}
			sw.setStatus(savedMessage, widget.SuccessImportance)
			sw.updateSaveButtonState()

			// Clear success message after 3 seconds
			go func() {
				time.Sleep(3 * time.Second)
				fyne.Do(func() {
					if sw.saveStatusLabel.Text == savedMessage {
						sw.setStatus("", widget.SuccessImportance)
					}
				})
			}()
		})
	}()
}

func (sw *SettingsWindow) Show() {
	sw.window.Show()
}

func (sw *SettingsWindow) setStatus(text string, importance widget.Importance) {
	sw.saveStatusLabel.SetText(text)
	sw.saveStatusLabel.Importance = importance
	sw.saveStatusLabel.Refresh()
}

func (sw *SettingsWindow) markChanged() {
	sw.updateSaveButtonState()
}

// updateSaveButtonState enables the save button while the form differs from the saved config
func (sw *SettingsWindow) updateSaveButtonState() {
	if sw.saveButton == nil {
		return
	}
	if sw.hasActualChanges() {
		sw.saveButton.Enable()
	} else {
		sw.saveButton.Disable()
	}
}

// hasActualChanges checks if the current UI state differs from the saved config
func (sw *SettingsWindow) hasActualChanges() bool {
	return *sw.getConfigFromUI() != *sw.config
}

// handleClose handles window close with unsaved changes check
func (sw *SettingsWindow) handleClose() {
	if !sw.hasActualChanges() {
		sw.window.Close()
		return
	}

	dialog.ShowConfirm("Unsaved Changes",
		"You have unsaved changes. Are you sure you want to close?",
		func(confirmed bool) {
			if confirmed {
				sw.window.Close()
			}
		}, sw.window)
}

func openInFileManager(path string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("explorer", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	default:
		log.Printf("Unsupported OS: %s", runtime.GOOS)
		return
	}

	if err := cmd.Start(); err != nil {
		log.Printf("Error opening file manager: %v", err)
	}
}
