// Package wienerzeit formats a clock time as the Viennese German word
// phrases the panel displays. It is pure string formatting: the caller feeds
// it hour and minute and renders the returned lines.
package wienerzeit

import (
	"fmt"
	"math/rand"
)

var minuteWords = [...]string{
	"", "eins", "zwei", "drei", "vier", "fünf", "sechs", "sieben",
	"acht", "neun", "zehn", "elf", "zwölf", "dreizehn", "vierzehn",
}

var hourWords = [...]string{
	"Eins", "Zwei", "Drei", "Vier", "Fünf", "Sechs", "Sieben",
	"Acht", "Neun", "Zehn", "Elf", "Zwölf",
}

// months holds the lowercase month names used in background file names.
var months = [...]string{
	"januar", "februar", "maerz", "april", "mai", "juni",
	"juli", "august", "september", "oktober", "november", "dezember",
}

// useAlternative decides deterministically whether the colloquial alternative
// phrasing is used for the 10/20/40/50 minute marks, seeded from the time so
// a given minute always reads the same.
func useAlternative(hour, minute int) bool {
	r := rand.New(rand.NewSource(int64(hour*100 + minute)))
	return r.Intn(2) == 0
}

// Phrase converts a time to its Viennese wording. It returns the minute
// qualifier, an optional second qualifier ("viertel", "halb", "dreiviertel")
// and the spoken hour. Trailing spaces in the qualifiers are part of the
// phrasing and must be preserved by renderers that join lines.
func Phrase(hour, minute int) (qualifier, qualifier2, hourWord string) {
	var hourOffset int

	switch {
	case minute == 0:
		qualifier = "punkt"
	case minute == 10 && useAlternative(hour, minute):
		qualifier = "zehn nach "
	case minute == 20 && useAlternative(hour, minute):
		qualifier = "zehn vor "
		qualifier2 = "halb"
		hourOffset = 1
	case minute == 40 && useAlternative(hour, minute):
		qualifier = "zehn nach "
		qualifier2 = "halb"
		hourOffset = 1
	case minute == 50 && useAlternative(hour, minute):
		qualifier = "zehn vor"
		hourOffset = 1
	case minute < 15:
		if minute < 7 {
			qualifier = minuteWords[minute] + " nach "
		} else {
			qualifier = minuteWords[15-minute] + " vor "
			qualifier2 = "viertel"
			hourOffset = 1
		}
	case minute == 15:
		qualifier = "viertel"
		hourOffset = 1
	case minute < 30:
		if minute < 23 {
			qualifier = minuteWords[minute-15] + " nach "
			qualifier2 = "viertel"
		} else {
			qualifier = minuteWords[30-minute] + " vor "
			qualifier2 = "halb"
		}
		hourOffset = 1
	case minute == 30:
		qualifier = "halb"
		hourOffset = 1
	case minute < 45:
		if minute < 38 {
			qualifier = minuteWords[minute-30] + " nach "
			qualifier2 = "halb"
		} else {
			qualifier = minuteWords[45-minute] + " vor "
			qualifier2 = "dreiviertel"
		}
		hourOffset = 1
	case minute == 45:
		qualifier = "dreiviertel"
		hourOffset = 1
	default: // minute > 45
		if minute < 53 {
			qualifier = minuteWords[minute-45] + " nach "
			qualifier2 = "dreiviertel"
		} else {
			qualifier = minuteWords[60-minute] + " vor"
		}
		hourOffset = 1
	}

	// The spoken hour is on a 12-hour dial; hour 0 minus one wraps to Zwölf.
	spoken := (hour + hourOffset - 1) % 12
	if spoken < 0 {
		spoken += 12
	}
	return qualifier, qualifier2, hourWords[spoken]
}

// Lines assembles the display lines for a time: "Es ist", the qualifier(s)
// and the spoken hour. The second qualifier gets its own line only when it
// carries a word.
func Lines(hour, minute int) []string {
	qualifier, qualifier2, hourWord := Phrase(hour, minute)
	if len(qualifier2) > 2 {
		return []string{"Es ist", qualifier, qualifier2, hourWord}
	}
	return []string{"Es ist", qualifier, hourWord}
}

// MonthName returns the lowercase name of month (1 to 12) used in background
// file names, or an empty string when out of range.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return months[month-1]
}

// BackgroundFile returns the monthly background image file name, following
// the <month>_8bit.bmp asset naming convention.
func BackgroundFile(month int) string {
	name := MonthName(month)
	if name == "" {
		return ""
	}
	return fmt.Sprintf("%s_8bit.bmp", name)
}
