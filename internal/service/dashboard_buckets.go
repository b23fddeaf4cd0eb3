package service

import (
	"fmt"
	"time"

	"hosteria/internal/utils"
)

// Grouping modes for dashboard telemetry.
const (
	GroupByDay    = "day"
	GroupByWeek   = "week"
	GroupByMonth  = "month"
	GroupByYear   = "year"
	GroupByCustom = "custom"
)

// Label modes. LabelAuto picks one from the grouping.
const (
	LabelAuto       = "auto"
	LabelMonth      = "month"
	LabelMonthShort = "monthShort"
	LabelYear       = "year"
	LabelDate       = "date"
	LabelDateShort  = "dateShort"
	LabelWeekRange  = "weekRange"
	LabelRange      = "range"
)

var monthNamesES = [12]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

var monthNamesShortES = [12]string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sep", "oct", "nov", "dic",
}

// bucketStart maps a day to the start of its bucket. Custom buckets are
// fixed-width windows of bucketDays anchored at anchor; day is assumed to be
// at or after anchor.
func bucketStart(day time.Time, groupBy string, anchor time.Time, bucketDays int) time.Time {
	day = utils.TruncateToDay(day)
	switch groupBy {
	case GroupByWeek:
		// ISO weeks start on Monday.
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case GroupByMonth:
		return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	case GroupByYear:
		return time.Date(day.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	case GroupByCustom:
		if bucketDays < 1 {
			bucketDays = 1
		}
		anchor = utils.TruncateToDay(anchor)
		n := int(day.Sub(anchor).Hours()/24) / bucketDays
		return anchor.AddDate(0, 0, n*bucketDays)
	default:
		return day
	}
}

// bucketEnd is the inclusive last day of the bucket starting at start.
func bucketEnd(start time.Time, groupBy string, bucketDays int) time.Time {
	switch groupBy {
	case GroupByWeek:
		return start.AddDate(0, 0, 6)
	case GroupByMonth:
		return start.AddDate(0, 1, -1)
	case GroupByYear:
		return start.AddDate(1, 0, -1)
	case GroupByCustom:
		if bucketDays < 1 {
			bucketDays = 1
		}
		return start.AddDate(0, 0, bucketDays-1)
	default:
		return start
	}
}

func monthName(m time.Month, locale string, short bool) string {
	if locale == "en" {
		if short {
			return m.String()[:3]
		}
		return m.String()
	}
	if short {
		return monthNamesShortES[m-1]
	}
	return monthNamesES[m-1]
}

func shortDate(day time.Time, locale string) string {
	if locale == "en" {
		return day.Format("01/02")
	}
	return day.Format("02/01")
}

func fullDate(day time.Time, locale string) string {
	if locale == "en" {
		return day.Format("01/02/2006")
	}
	return day.Format("02/01/2006")
}

// bucketLabel renders the human label for one bucket. LabelAuto resolves to
// the natural mode for the grouping before formatting.
func bucketLabel(mode, locale, groupBy string, start, end time.Time) string {
	if mode == "" || mode == LabelAuto {
		switch groupBy {
		case GroupByWeek:
			mode = LabelWeekRange
		case GroupByMonth:
			mode = LabelMonthShort
		case GroupByYear:
			mode = LabelYear
		case GroupByCustom:
			mode = LabelRange
		default:
			mode = LabelDateShort
		}
	}
	switch mode {
	case LabelMonth:
		return fmt.Sprintf("%s %d", monthName(start.Month(), locale, false), start.Year())
	case LabelMonthShort:
		return fmt.Sprintf("%s %d", monthName(start.Month(), locale, true), start.Year())
	case LabelYear:
		return fmt.Sprintf("%d", start.Year())
	case LabelDate:
		return fullDate(start, locale)
	case LabelWeekRange, LabelRange:
		return shortDate(start, locale) + " - " + shortDate(end, locale)
	default:
		return shortDate(start, locale)
	}
}
