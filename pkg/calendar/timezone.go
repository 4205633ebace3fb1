package calendar

import (
	"time"

	"github.com/emersion/go-ical"
)

// Outlook exports Windows zone names in TZID; map the common ones to IANA
var windowsToIANA = map[string]string{
	"Pacific Standard Time":        "America/Los_Angeles",
	"Mountain Standard Time":       "America/Denver",
	"Central Standard Time":        "America/Chicago",
	"Eastern Standard Time":        "America/New_York",
	"GMT Standard Time":            "Europe/London",
	"Central Europe Standard Time": "Europe/Paris",
	"China Standard Time":          "Asia/Shanghai",
	"Tokyo Standard Time":          "Asia/Tokyo",
	"Korea Standard Time":          "Asia/Seoul",
	"India Standard Time":          "Asia/Kolkata",
	"AUS Eastern Standard Time":    "Australia/Sydney",
}

// normalizeComponentTimezones rewrites Windows TZIDs on DTSTART in place
func normalizeComponentTimezones(comp *ical.Component) {
	dtstart := comp.Props.Get(ical.PropDateTimeStart)
	if dtstart == nil {
		return
	}
	if tzid := dtstart.Params.Get(ical.ParamTimezoneID); tzid != "" {
		if ianaName, ok := windowsToIANA[tzid]; ok {
			dtstart.Params.Set(ical.ParamTimezoneID, ianaName)
		}
	}
}

// dropUnknownTimezone removes a TZID the system zone database cannot load,
// so the value is read as floating local time instead of failing.
func dropUnknownTimezone(prop *ical.Prop) {
	tzid := prop.Params.Get(ical.ParamTimezoneID)
	if tzid == "" {
		return
	}
	if _, err := time.LoadLocation(tzid); err != nil {
		prop.Params.Del(ical.ParamTimezoneID)
	}
}
