//go:build darwin

// Package platform holds the few OS hooks fyne does not expose.
package platform

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa
#import <Cocoa/Cocoa.h>

void remindcalActivate() {
    [NSApp activateIgnoringOtherApps:YES];
}
*/
import "C"

// Activate brings the application in front of other apps, so a window shown
// from the tray menu is not left behind the frontmost one.
func Activate() {
	C.remindcalActivate()
}
