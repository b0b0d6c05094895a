package tips

import (
	"strings"
	"testing"
)

func TestQualifiesAsTipAcceptsProse(t *testing.T) {
	prose := "The historic tram line twenty-eight climbs through the old quarter and is the nicest way to see the hills."
	if !QualifiesAsTip(prose) {
		t.Errorf("digit-free prose of adequate length must qualify: %q", prose)
	}
}

func TestQualifiesAsTipRejectsBusinessListing(t *testing.T) {
	listing := "Hotel Example, Rua das Flores 123, (+55) 11 4002-8922"
	if QualifiesAsTip(listing) {
		t.Errorf("business listing must be rejected: %q", listing)
	}
	if !LooksLikeContactListing(listing) {
		t.Errorf("listing should trip the contact-listing predicate: %q", listing)
	}
}

func TestQualifiesAsTipLengthWindow(t *testing.T) {
	short := "Too short to be a tip."
	if QualifiesAsTip(short) {
		t.Errorf("text below %d characters must not qualify", minTipLength)
	}

	long := strings.Repeat("Quite a long sentence about the city and its many charms. ", 10)
	if QualifiesAsTip(long) {
		t.Errorf("text above %d characters must not qualify", maxTipLength)
	}
}

func TestIsDigitHeavy(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want bool
	}{
		{"opening hours grid", "Mon 09:00-18:00 Tue 09:00-18:00 Wed 09:00-18:00", true},
		{"prose with one year", "The cathedral survived the earthquake of 1755 almost intact.", false},
		{"empty", "", false},
	}
	for _, tc := range cases {
		if got := IsDigitHeavy(tc.in); got != tc.want {
			t.Errorf("%s: IsDigitHeavy(%q) = %v, want %v", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestLooksLikeContactListing(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want bool
	}{
		{"parenthesized area code", "Call (21) 555 0199 for reservations", true},
		{"international prefix", "Reach the consulate at +351 21 123 4567 during weekdays", true},
		{"phone label", "Tel: 4002-8922", true},
		{"contact glyph", "Central Hostel ☎ ask at the desk", true},
		{"name address shape", "Pensão Central, Avenida da Liberdade 45, near the park", true},
		{"plain prose", "Trams are the most charming way to move around the old town", false},
		{"prose with clause and number", "In summer, temperatures often reach 35 degrees in the afternoon", false},
	}
	for _, tc := range cases {
		if got := LooksLikeContactListing(tc.in); got != tc.want {
			t.Errorf("%s: LooksLikeContactListing(%q) = %v, want %v", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestHasEmailMarker(t *testing.T) {
	if !HasEmailMarker("Write to bookings@example.com for group rates") {
		t.Errorf("expected email address to be detected")
	}
	if HasEmailMarker("The post office closes early on saturdays") {
		t.Errorf("false positive on plain prose")
	}
}

func TestIsPunctuationOnly(t *testing.T) {
	if !IsPunctuationOnly("12345 --- ???") {
		t.Errorf("digits and punctuation only must be detected")
	}
	if IsPunctuationOnly("some words.") {
		t.Errorf("text with letters is not punctuation-only")
	}
}

func TestCleanTextStripsCitations(t *testing.T) {
	in := "The castle[1] was rebuilt[citation needed] twice.\n  Extra   spacing."
	want := "The castle was rebuilt twice. Extra spacing."
	if got := CleanText(in); got != want {
		t.Errorf("CleanText = %q, want %q", got, want)
	}
}
