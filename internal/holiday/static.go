package holiday

import (
	"context"
	"time"
)

// StaticSource serves the built-in Turkish holiday calendar. National
// holidays fall on fixed dates; religious holidays follow the lunar calendar
// and are pinned per year.
type StaticSource struct{}

// NewStaticSource returns the built-in calendar.
func NewStaticSource() *StaticSource {
	return &StaticSource{}
}

type fixedHoliday struct {
	month time.Month
	day   int
	name  string
}

var nationalHolidays = []fixedHoliday{
	{time.January, 1, "Yılbaşı"},
	{time.April, 23, "Ulusal Egemenlik ve Çocuk Bayramı"},
	{time.May, 1, "Emek ve Dayanışma Günü"},
	{time.May, 19, "Atatürk'ü Anma, Gençlik ve Spor Bayramı"},
	{time.July, 15, "Demokrasi ve Milli Birlik Günü"},
	{time.August, 30, "Zafer Bayramı"},
	{time.October, 29, "Cumhuriyet Bayramı"},
}

type pinnedHoliday struct {
	month time.Month
	day   int
	name  string
}

var religiousHolidays = map[int][]pinnedHoliday{
	2024: {
		{time.April, 10, "Ramazan Bayramı Arifesi (Yarım Gün)"},
		{time.April, 11, "Ramazan Bayramı 1. Gün"},
		{time.April, 12, "Ramazan Bayramı 2. Gün"},
		{time.April, 13, "Ramazan Bayramı 3. Gün"},
		{time.June, 16, "Kurban Bayramı Arifesi (Yarım Gün)"},
		{time.June, 17, "Kurban Bayramı 1. Gün"},
		{time.June, 18, "Kurban Bayramı 2. Gün"},
		{time.June, 19, "Kurban Bayramı 3. Gün"},
		{time.June, 20, "Kurban Bayramı 4. Gün"},
	},
	2025: {
		{time.March, 30, "Ramazan Bayramı Arifesi (Yarım Gün)"},
		{time.March, 31, "Ramazan Bayramı 1. Gün"},
		{time.April, 1, "Ramazan Bayramı 2. Gün"},
		{time.April, 2, "Ramazan Bayramı 3. Gün"},
		{time.June, 6, "Kurban Bayramı Arifesi (Yarım Gün)"},
		{time.June, 7, "Kurban Bayramı 1. Gün"},
		{time.June, 8, "Kurban Bayramı 2. Gün"},
		{time.June, 9, "Kurban Bayramı 3. Gün"},
		{time.June, 10, "Kurban Bayramı 4. Gün"},
	},
	2026: {
		{time.March, 19, "Ramazan Bayramı Arifesi (Yarım Gün)"},
		{time.March, 20, "Ramazan Bayramı 1. Gün"},
		{time.March, 21, "Ramazan Bayramı 2. Gün"},
		{time.March, 22, "Ramazan Bayramı 3. Gün"},
		{time.May, 26, "Kurban Bayramı Arifesi (Yarım Gün)"},
		{time.May, 27, "Kurban Bayramı 1. Gün"},
		{time.May, 28, "Kurban Bayramı 2. Gün"},
		{time.May, 29, "Kurban Bayramı 3. Gün"},
		{time.May, 30, "Kurban Bayramı 4. Gün"},
	},
}

// HolidaysForYear returns the holidays of the given year. National entries
// are always present; religious entries only for years the table pins.
func (s *StaticSource) HolidaysForYear(_ context.Context, year int) ([]Holiday, error) {
	out := make([]Holiday, 0, len(nationalHolidays)+9)
	for _, h := range nationalHolidays {
		out = append(out, Holiday{
			Date: time.Date(year, h.month, h.day, 0, 0, 0, 0, time.UTC),
			Name: h.name,
		})
	}
	for _, h := range religiousHolidays[year] {
		out = append(out, Holiday{
			Date:      time.Date(year, h.month, h.day, 0, 0, 0, 0, time.UTC),
			Name:      h.name,
			Religious: true,
		})
	}
	return out, nil
}
