// Package when extracts dates and times from free-form chat text. It covers
// the two supported locales: numeric forms (12/05, 18:30, 18h), relative days
// (hoje, amanhã, today, tomorrow), weekday names mapped to their next
// occurrence, and Portuguese spelled-out clock times ("dez e meia").
package when

import (
	"regexp"
	"strings"
	"time"

	"github.com/campuscalm/brain/internal/textnorm"
)

var (
	datePattern  = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})(?:/(\d{2,4}))?\b`)
	clockPattern = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
	hourPattern  = regexp.MustCompile(`\b(\d{1,2})h(\d{2})?\b`)
)

var weekdays = map[string]time.Weekday{
	"domingo": time.Sunday,
	"segunda": time.Monday,
	"terca":   time.Tuesday,
	"quarta":  time.Wednesday,
	"quinta":  time.Thursday,
	"sexta":   time.Friday,
	"sabado":  time.Saturday,
	"sunday":  time.Sunday,
	"monday":  time.Monday,
	"tuesday": time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

var spelledHours = map[string]int{
	"uma": 1, "duas": 2, "tres": 3, "quatro": 4, "cinco": 5, "seis": 6,
	"sete": 7, "oito": 8, "nove": 9, "dez": 10, "onze": 11, "doze": 12,
}

// ParseDate extracts a due date from the message, resolved against now.
// Recognized forms, first match wins: dd/mm[/yyyy], hoje/today,
// amanhã/tomorrow, weekday name (next strictly-future occurrence).
func ParseDate(message string, now time.Time) (time.Time, bool) {
	raw := strings.ToLower(message)
	normalized := textnorm.Normalize(message)
	words := textnorm.Words(normalized)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if m := datePattern.FindStringSubmatch(raw); m != nil {
		day := atoi(m[1])
		month := atoi(m[2])
		year := now.Year()
		if m[3] != "" {
			year = atoi(m[3])
			if year < 100 {
				year += 2000
			}
		}
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location())
			if d.Day() == day {
				return d, true
			}
		}
	}

	if words["hoje"] || words["today"] {
		return today, true
	}
	if words["amanha"] || words["tomorrow"] {
		return today.AddDate(0, 0, 1), true
	}

	for name, wd := range weekdays {
		if !words[name] {
			continue
		}
		ahead := (int(wd) - int(today.Weekday()) + 7) % 7
		if ahead == 0 {
			ahead = 7
		}
		return today.AddDate(0, 0, ahead), true
	}

	return time.Time{}, false
}

// ParseClock extracts an hour and minute. Numeric forms are matched against
// the raw text (normalization eats the colon); spelled-out Portuguese forms
// against the normalized text.
func ParseClock(message string) (hour, minute int, ok bool) {
	raw := strings.ToLower(message)

	if m := clockPattern.FindStringSubmatch(raw); m != nil {
		h, min := atoi(m[1]), atoi(m[2])
		if h <= 23 && min <= 59 {
			return h, min, true
		}
	}
	if m := hourPattern.FindStringSubmatch(raw); m != nil {
		h, min := atoi(m[1]), 0
		if m[2] != "" {
			min = atoi(m[2])
		}
		if h <= 23 && min <= 59 {
			return h, min, true
		}
	}

	normalized := textnorm.Normalize(message)
	if strings.Contains(normalized, "meio dia") {
		return 12, 0, true
	}
	if strings.Contains(normalized, "meia noite") {
		return 0, 0, true
	}

	fields := strings.Fields(normalized)
	for i, w := range fields {
		h, isHour := spelledHours[w]
		if !isHour {
			continue
		}
		// "dez e meia" / "dez e quinze" / "dez horas"
		if i+2 < len(fields) && fields[i+1] == "e" {
			switch fields[i+2] {
			case "meia":
				return h, 30, true
			case "quinze":
				return h, 15, true
			}
		}
		if i+1 < len(fields) && (fields[i+1] == "horas" || fields[i+1] == "hora") {
			return h, 0, true
		}
	}

	return 0, 0, false
}

// HasDateHint reports whether the message carries any recognizable date form.
func HasDateHint(message string) bool {
	_, ok := ParseDate(message, time.Now())
	return ok
}

// HasTimeHint reports whether the message carries any recognizable time form.
func HasTimeHint(message string) bool {
	_, _, ok := ParseClock(message)
	return ok
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
