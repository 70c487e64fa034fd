package when

import (
	"testing"
	"time"
)

// Wednesday, 2026-09-02 10:00 local.
var now = time.Date(2026, 9, 2, 10, 0, 0, 0, time.Local)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    time.Time
		ok      bool
	}{
		{"numeric day month", "entrega dia 15/09", date(2026, 9, 15), true},
		{"numeric with year", "prova 10/01/2027", date(2027, 1, 10), true},
		{"two digit year", "até 05/10/26", date(2026, 10, 5), true},
		{"hoje", "preciso terminar hoje", date(2026, 9, 2), true},
		{"amanha accented", "amanhã sem falta", date(2026, 9, 3), true},
		{"tomorrow", "tomorrow at noon", date(2026, 9, 3), true},
		{"weekday ahead", "sexta feira", date(2026, 9, 4), true},
		{"same weekday rolls a week", "quarta que vem", date(2026, 9, 9), true},
		{"english weekday", "next monday", date(2026, 9, 7), true},
		{"invalid day", "35/09", time.Time{}, false},
		{"invalid month overflow", "dia 31/02", time.Time{}, false},
		{"no date", "revisar o capítulo três", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.message, now)
			if ok != tt.ok {
				t.Fatalf("ParseDate(%q) ok = %v, want %v", tt.message, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.message, got, tt.want)
			}
		})
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		message string
		hour    int
		minute  int
		ok      bool
	}{
		{"colon form", "amanhã às 18:30", 18, 30, true},
		{"h form", "prova às 14h", 14, 0, true},
		{"h with minutes", "reunião 9h45", 9, 45, true},
		{"spelled half past", "dez e meia", 10, 30, true},
		{"spelled quarter past", "as sete e quinze", 7, 15, true},
		{"spelled whole hour", "às oito horas", 8, 0, true},
		{"noon", "ao meio dia", 12, 0, true},
		{"midnight", "meia noite", 0, 0, true},
		{"invalid hour rejected", "25:30", 0, 0, false},
		{"no time", "semana que vem", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m, ok := ParseClock(tt.message)
			if ok != tt.ok {
				t.Fatalf("ParseClock(%q) ok = %v, want %v", tt.message, ok, tt.ok)
			}
			if ok && (h != tt.hour || m != tt.minute) {
				t.Errorf("ParseClock(%q) = %d:%02d, want %d:%02d", tt.message, h, m, tt.hour, tt.minute)
			}
		})
	}
}

func TestHints(t *testing.T) {
	if !HasDateHint("amanhã") {
		t.Error("HasDateHint(amanhã) = false")
	}
	if HasDateHint("qualquer coisa") {
		t.Error("HasDateHint(neutral) = true")
	}
	if !HasTimeHint("18h") {
		t.Error("HasTimeHint(18h) = false")
	}
	if HasTimeHint("sem horario") {
		t.Error("HasTimeHint(neutral) = true")
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
