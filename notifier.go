package main

import (
	"errors"
	"log"

	"fyne.io/fyne/v2"
)

// errNotifierStopped is returned for deliveries that arrive after the fyne loop exited
var errNotifierStopped = errors.New("notifier stopped, app is shutting down")

// deliverReminder surfaces a reminder as a desktop notification. It runs on the
// scheduler's timer goroutine.
func (rc *RemindCal) deliverReminder(title, description string) error {
	return rc.notify("Reminder: "+title, description)
}

// deliverAgenda surfaces the daily agenda
func (rc *RemindCal) deliverAgenda(title, body string) error {
	return rc.notify(title, body)
}

// notify posts a notification and plays the chime. SendNotification reports no
// failure and the chime plays asynchronously, so the only error is a stopped app.
func (rc *RemindCal) notify(title, content string) error {
	if rc.stopping.Load() {
		return errNotifierStopped
	}

	notification := fyne.NewNotification(title, content)
	fyne.Do(func() {
		rc.app.SendNotification(notification)
	})

	config, chime := rc.currentConfig()
	if config.PlaySound && chime != nil {
		go func() {
			if err := chime.Play(); err != nil {
				log.Printf("Error playing chime: %v", err)
			}
		}()
	}
	return nil
}
