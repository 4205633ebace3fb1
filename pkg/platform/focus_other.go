//go:build !darwin

// Package platform holds the few OS hooks fyne does not expose.
package platform

// Activate is a no-op; RequestFocus is enough outside macOS.
func Activate() {}
