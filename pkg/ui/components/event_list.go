package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/remindcal/pkg/models"
)

// EventList shows one day's events and tracks the selected one
type EventList struct {
	list        *widget.List
	data        []models.Event
	selectedIdx int
	onSelect    func(models.Event)
	emptyLabel  *widget.Label
}

// EventListConfig configures the event list
type EventListConfig struct {
	OnSelect func(models.Event) // Called when a row is selected
}

// FormatEventRow renders an event as a single list line
func FormatEventRow(e models.Event) string {
	text := fmt.Sprintf("%s  %s", e.OccursAt.Format("15:04"), e.Title)
	if e.Description != "" {
		text += " - " + e.Description
	}
	return text
}

// NewEventList creates a new event list component
func NewEventList(config EventListConfig) (*EventList, fyne.CanvasObject) {
	el := &EventList{
		selectedIdx: -1,
		onSelect:    config.OnSelect,
	}

	el.list = widget.NewList(
		func() int {
			return len(el.data)
		},
		func() fyne.CanvasObject {
			icon := widget.NewIcon(theme.InfoIcon())
			label := widget.NewLabel("template")
			label.Truncation = fyne.TextTruncateEllipsis
			return container.NewBorder(nil, nil, icon, nil, label)
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if i >= len(el.data) {
				return
			}
			event := el.data[i]
			row := o.(*fyne.Container)
			label := row.Objects[0].(*widget.Label)
			icon := row.Objects[1].(*widget.Icon)

			label.SetText(FormatEventRow(event))
			if event.Notify {
				icon.SetResource(theme.MediaRecordIcon())
			} else {
				icon.SetResource(theme.CalendarIcon())
			}
		})

	el.list.OnSelected = func(id widget.ListItemID) {
		if id >= len(el.data) {
			return
		}
		el.selectedIdx = id
		if el.onSelect != nil {
			el.onSelect(el.data[id])
		}
	}
	el.list.OnUnselected = func(id widget.ListItemID) {
		if id == el.selectedIdx {
			el.selectedIdx = -1
		}
	}

	el.emptyLabel = widget.NewLabel("No events on this day")
	el.emptyLabel.Importance = widget.LowImportance
	el.emptyLabel.Alignment = fyne.TextAlignCenter

	listWithBorder := container.NewBorder(
		widget.NewSeparator(),
		widget.NewSeparator(),
		nil,
		nil,
		container.NewStack(el.list, container.NewCenter(el.emptyLabel)),
	)

	return el, listWithBorder
}

// SetEvents replaces the displayed events and clears the selection
func (el *EventList) SetEvents(events []models.Event) {
	el.data = events
	el.selectedIdx = -1
	el.list.UnselectAll()
	if len(events) == 0 {
		el.emptyLabel.Show()
	} else {
		el.emptyLabel.Hide()
	}
	el.list.Refresh()
}

// Selected returns the selected event, if any
func (el *EventList) Selected() (models.Event, bool) {
	if el.selectedIdx < 0 || el.selectedIdx >= len(el.data) {
		return models.Event{}, false
	}
	return el.data[el.selectedIdx], true
}

// Len returns the number of displayed events
func (el *EventList) Len() int {
	return len(el.data)
}
