package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"github.com/borgmon/remindcal/pkg/reminder"
)

const trayUpcomingLimit = 5

func (rc *RemindCal) setupSystemTray() {
	rc.updateSystemTrayMenu()
}

func (rc *RemindCal) updateSystemTrayMenu() {
	desk, ok := rc.app.(desktop.App)
	if !ok {
		return
	}

	menuItems := []*fyne.MenuItem{}

	// Add upcoming reminders section at the top
	upcoming := rc.planner.UpcomingToday(trayUpcomingLimit)
	if len(upcoming) > 0 {
		headerItem := fyne.NewMenuItem("Upcoming Today:", nil)
		headerItem.Disabled = true
		menuItems = append(menuItems, headerItem)

		for _, tk := range upcoming {
			item := fyne.NewMenuItem(trayLabel(tk), nil)
			item.Disabled = true
			menuItems = append(menuItems, item)
		}

		menuItems = append(menuItems, fyne.NewMenuItemSeparator())
	}

	menuItems = append(menuItems,
		fyne.NewMenuItem("Show Calendar", func() {
			rc.mainWindow.Show()
		}),
		fyne.NewMenuItem("Settings", func() {
			rc.showSettingsWindow()
		}),
	)

	menuItems = append(menuItems, fyne.NewMenuItemSeparator())
	menuItems = append(menuItems, fyne.NewMenuItem("Quit", func() {
		rc.quit()
	}))

	menu := fyne.NewMenu("RemindCal", menuItems...)
	desk.SetSystemTrayMenu(menu)
	desk.SetSystemTrayIcon(theme.CalendarIcon())
}

func trayLabel(tk reminder.Ticket) string {
	return fmt.Sprintf("  %s - %s", tk.FireAt.Format("3:04 PM"), truncateString(tk.Snapshot.Title, 35))
}

// truncateString truncates a string to maxLen runes, adding "..." if needed
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
