package main

import (
	"fmt"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/remindcal/pkg/models"
	"github.com/borgmon/remindcal/pkg/planner"
	"github.com/borgmon/remindcal/pkg/platform"
	"github.com/borgmon/remindcal/pkg/ui/components"
)

type MainWindow struct {
	window   fyne.Window
	planner  *planner.Planner
	loc      *time.Location
	onChange func()

	selectedDate time.Time
	dateLabel    *widget.Label
	eventList    *components.EventList
	editButton   *widget.Button
	deleteButton *widget.Button
}

func NewMainWindow(app fyne.App, p *planner.Planner, loc *time.Location, onChange func(), onSettings func()) *MainWindow {
	mw := &MainWindow{
		planner:      p,
		loc:          loc,
		onChange:     onChange,
		selectedDate: models.StartOfDay(time.Now(), loc),
	}

	mw.window = app.NewWindow("RemindCal")
	mw.buildUI(onSettings)

	// Keep running in the tray when the window is closed
	if _, ok := app.(desktop.App); ok {
		mw.window.SetCloseIntercept(func() {
			mw.window.Hide()
		})
	}

	return mw
}

func (mw *MainWindow) buildUI(onSettings func()) {
	cal := widget.NewCalendar(mw.selectedDate, func(date time.Time) {
		mw.selectDate(date)
	})

	mw.dateLabel = widget.NewLabel("")
	mw.dateLabel.TextStyle = fyne.TextStyle{Bold: true}

	var listView fyne.CanvasObject
	mw.eventList, listView = components.NewEventList(components.EventListConfig{
		OnSelect: func(models.Event) {
			mw.updateButtons()
		},
	})

	addButton := widget.NewButtonWithIcon("Add", theme.ContentAddIcon(), func() {
		showEventDialog(mw.window, "New Event", newFormForDate(mw.selectedDate, time.Now()), mw.loc, mw.planner.Add, mw.changed)
	})
	addButton.Importance = widget.HighImportance

	mw.editButton = widget.NewButtonWithIcon("Edit", theme.DocumentCreateIcon(), func() {
		mw.editSelected()
	})
	mw.deleteButton = widget.NewButtonWithIcon("Delete", theme.DeleteIcon(), func() {
		mw.deleteSelected()
	})

	importButton := widget.NewButtonWithIcon("Import", theme.FolderOpenIcon(), func() {
		mw.showImportDialog()
	})
	exportDayButton := widget.NewButtonWithIcon("Export Day", theme.DocumentSaveIcon(), func() {
		mw.showExportDialog(false)
	})
	exportAllButton := widget.NewButton("Export All", func() {
		mw.showExportDialog(true)
	})
	settingsButton := widget.NewButtonWithIcon("", theme.SettingsIcon(), onSettings)

	eventButtons := container.NewHBox(addButton, mw.editButton, mw.deleteButton)
	fileButtons := container.NewHBox(importButton, exportDayButton, exportAllButton, settingsButton)

	eventsPane := container.NewBorder(
		mw.dateLabel,
		container.NewPadded(eventButtons),
		nil,
		nil,
		listView,
	)

	split := container.NewHSplit(container.NewPadded(cal), eventsPane)
	split.SetOffset(0.4)

	content := container.NewBorder(
		nil,
		container.NewPadded(container.NewBorder(nil, nil, nil, fileButtons)),
		nil,
		nil,
		split,
	)

	mw.window.SetContent(content)
	mw.window.Resize(fyne.NewSize(820, 480))
	mw.window.CenterOnScreen()

	mw.refresh()
}

func (mw *MainWindow) Show() {
	mw.window.Show()
	platform.Activate()
	mw.window.RequestFocus()
}

func (mw *MainWindow) selectDate(date time.Time) {
	mw.selectedDate = models.StartOfDay(date, mw.loc)
	mw.refresh()
}

// refresh reloads the selected day's events
func (mw *MainWindow) refresh() {
	mw.dateLabel.SetText(mw.selectedDate.Format("Monday, January 2, 2006"))
	mw.eventList.SetEvents(mw.planner.ListByDate(mw.selectedDate))
	mw.updateButtons()
}

func (mw *MainWindow) changed() {
	mw.refresh()
	if mw.onChange != nil {
		mw.onChange()
	}
}

func (mw *MainWindow) updateButtons() {
	if _, ok := mw.eventList.Selected(); ok {
		mw.editButton.Enable()
		mw.deleteButton.Enable()
	} else {
		mw.editButton.Disable()
		mw.deleteButton.Disable()
	}
}

func (mw *MainWindow) editSelected() {
	event, ok := mw.eventList.Selected()
	if !ok {
		dialog.ShowInformation("No Selection", "Please select an event to edit.", mw.window)
		return
	}

	update := func(in models.EventInput) (models.Event, error) {
		return mw.planner.Update(event.ID, in)
	}
	showEventDialog(mw.window, "Edit Event", formFromEvent(event), mw.loc, update, mw.changed)
}

func (mw *MainWindow) deleteSelected() {
	event, ok := mw.eventList.Selected()
	if !ok {
		dialog.ShowInformation("No Selection", "Please select an event to delete.", mw.window)
		return
	}

	dialog.ShowConfirm("Delete Event",
		fmt.Sprintf("Delete \"%s\"?", event.Title),
		func(confirmed bool) {
			if !confirmed {
				return
			}
			if err := mw.planner.Remove(event.ID); err != nil {
				dialog.ShowError(err, mw.window)
			}
			mw.changed()
		}, mw.window)
}

func (mw *MainWindow) showImportDialog() {
	open := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, mw.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		added, err := mw.planner.Import(reader)
		if err != nil {
			log.Printf("[IMPORT] %s: %v", reader.URI().Name(), err)
			dialog.ShowError(fmt.Errorf("import %s: %w", reader.URI().Name(), err), mw.window)
			return
		}

		mw.changed()
		dialog.ShowInformation("Import Complete", fmt.Sprintf("Imported %d event(s).", added), mw.window)
	}, mw.window)
	open.SetFilter(storage.NewExtensionFileFilter([]string{".ics"}))
	open.Show()
}

func (mw *MainWindow) showExportDialog(all bool) {
	name := "remindcal-" + mw.selectedDate.Format(formDateLayout) + ".ics"
	if all {
		name = "remindcal.ics"
	}

	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, mw.window)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		if all {
			err = mw.planner.ExportAll(writer)
		} else {
			err = mw.planner.ExportDay(writer, mw.selectedDate)
		}
		if err != nil {
			log.Printf("Error exporting %s: %v", writer.URI().Name(), err)
			dialog.ShowError(fmt.Errorf("export %s: %w", writer.URI().Name(), err), mw.window)
		}
	}, mw.window)
	save.SetFileName(name)
	save.SetFilter(storage.NewExtensionFileFilter([]string{".ics"}))
	save.Show()
}
