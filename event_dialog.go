package main

import (
	"errors"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/remindcal/pkg/models"
	"github.com/borgmon/remindcal/pkg/store"
)

// commitFunc stores the dialog's values, e.g. Planner.Add
type commitFunc func(models.EventInput) (models.Event, error)

// submitForm parses a form and hands it to commit
func submitForm(form eventForm, loc *time.Location, commit commitFunc) (models.Event, error) {
	in, err := form.toInput(loc)
	if err != nil {
		return models.Event{}, err
	}
	return commit(in)
}

// showEventDialog opens the add/edit form. A validation error is shown and the
// form re-opens with what the user entered.
func showEventDialog(parent fyne.Window, title string, form eventForm, loc *time.Location, commit commitFunc, onDone func()) {
	titleEntry := widget.NewEntry()
	titleEntry.SetPlaceHolder("Title")
	titleEntry.SetText(form.Title)

	descEntry := widget.NewMultiLineEntry()
	descEntry.SetPlaceHolder("Description (optional)")
	descEntry.SetText(form.Description)
	descEntry.SetMinRowsVisible(3)

	dateEntry := widget.NewEntry()
	dateEntry.SetPlaceHolder(formDateLayout)
	dateEntry.SetText(form.Date)

	timeEntry := widget.NewEntry()
	timeEntry.SetPlaceHolder(formTimeLayout)
	timeEntry.SetText(form.Time)

	notifyCheck := widget.NewCheck("Remind me at this time", nil)
	notifyCheck.SetChecked(form.Notify)

	items := []*widget.FormItem{
		widget.NewFormItem("Title", titleEntry),
		widget.NewFormItem("Description", descEntry),
		widget.NewFormItem("Date", dateEntry),
		widget.NewFormItem("Time", timeEntry),
		widget.NewFormItem("Notify", notifyCheck),
	}

	d := dialog.NewForm(title, "Save", "Cancel", items, func(confirmed bool) {
		if !confirmed {
			return
		}

		entered := eventForm{
			Title:       titleEntry.Text,
			Description: descEntry.Text,
			Date:        dateEntry.Text,
			Time:        timeEntry.Text,
			Notify:      notifyCheck.Checked,
		}

		if _, err := submitForm(entered, loc, commit); err != nil {
			errDialog := dialog.NewError(err, parent)
			if errors.Is(err, store.ErrValidation) {
				errDialog.SetOnClosed(func() {
					showEventDialog(parent, title, entered, loc, commit, onDone)
				})
			}
			errDialog.Show()
			return
		}

		if onDone != nil {
			onDone()
		}
	}, parent)
	d.Resize(fyne.NewSize(460, 360))
	d.Show()
}
