package utils

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// defaultCountryCode is prefixed onto local phone numbers (leading zero)
// when building wa.me links.  Matches the deployment region.
const defaultCountryCode = "60"

// NormalizeMSISDN strips formatting from a phone number and converts local
// notation (leading zero) to international form using the default country
// code.  It returns "" when no digits remain.
func NormalizeMSISDN(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return ""
	}
	if strings.HasPrefix(digits, "0") {
		return defaultCountryCode + digits[1:]
	}
	return digits
}

// WALink builds the pre-filled WhatsApp deep link handed to an attendee
// after a successful admission.  Returns "" when the event has no usable
// support phone.  Pure string formatting; no network calls.
func WALink(phone, attendeeName, eventTitle, venueName string, dateStart time.Time) string {
	to := NormalizeMSISDN(phone)
	if to == "" {
		return ""
	}
	when := dateStart.UTC().Format("2 Jan 2006 15:04")
	msg := fmt.Sprintf("Hi, saya %s dah RSVP untuk %q (%s) di %s.",
		attendeeName, eventTitle, when, venueName)
	return "https://wa.me/" + to + "?text=" + url.QueryEscape(msg)
}
