package utils

import (
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestNormalizeMSISDN(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"012-345 6789", "60123456789"},
		{"0123456789", "60123456789"},
		{"+60 12 345 6789", "60123456789"},
		{"60123456789", "60123456789"},
		{"(012) 345-6789", "60123456789"},
		{"no digits", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeMSISDN(tc.in); got != tc.want {
			t.Errorf("NormalizeMSISDN(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestWALink(t *testing.T) {
	start := time.Date(2026, 10, 1, 19, 30, 0, 0, time.UTC)
	link := WALink("012-345 6789", "Aisyah", "Tech Meetup", "Dewan Utama", start)

	if !strings.HasPrefix(link, "https://wa.me/60123456789?text=") {
		t.Fatalf("link = %q", link)
	}
	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	msg := u.Query().Get("text")
	want := `Hi, saya Aisyah dah RSVP untuk "Tech Meetup" (1 Oct 2026 19:30) di Dewan Utama.`
	if msg != want {
		t.Errorf("message = %q, want %q", msg, want)
	}
}

func TestWALinkNoPhone(t *testing.T) {
	if got := WALink("", "A", "T", "V", time.Now()); got != "" {
		t.Errorf("link without phone = %q, want empty", got)
	}
}
