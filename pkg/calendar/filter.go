package calendar

import (
	"log"
	"strings"
)

type filterStats struct {
	totalComponents     int
	totalEvents         int
	filteredMissingTime int
	filteredCancelled   int
	filteredUntitled    int
}

func shouldImport(event parsedEvent, stats *filterStats) bool {
	// Filter events with missing time information
	if event.input.OccursAt.IsZero() {
		stats.filteredMissingTime++
		log.Printf("  [FILTERED] Missing time - Event: \"%s\" (UID: %s)", event.input.Title, event.uid)
		return false
	}

	// Filter out cancelled events
	if event.status == "CANCELLED" {
		stats.filteredCancelled++
		log.Printf("  [FILTERED] [Cancelled] - Event: \"%s\" (Start: %s)",
			event.input.Title, event.input.OccursAt.Format("2006-01-02 15:04"))
		return false
	}

	// The store rejects blank titles, skip them here so one bad VEVENT does not abort an import
	if strings.TrimSpace(event.input.Title) == "" {
		stats.filteredUntitled++
		log.Printf("  [FILTERED] [Untitled] - Event at %s (UID: %s)",
			event.input.OccursAt.Format("2006-01-02 15:04"), event.uid)
		return false
	}

	return true
}

func (s *filterStats) logSummary(includedCount int) {
	totalFiltered := s.filteredMissingTime + s.filteredCancelled + s.filteredUntitled
	log.Printf("  [SUMMARY] Total components: %d, Events: %d, Imported: %d, Filtered: %d",
		s.totalComponents, s.totalEvents, includedCount, totalFiltered)
	if totalFiltered > 0 {
		log.Printf("  Filtered breakdown: %d cancelled, %d missing time, %d untitled",
			s.filteredCancelled, s.filteredMissingTime, s.filteredUntitled)
	}
}
