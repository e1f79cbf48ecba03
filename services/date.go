package services

import (
	"context"
	"fmt"
	"time"
)

// DateLayout is the wire format of dates such as birth_date
const DateLayout = "2006-01-02"

// ParseDate parses a date string in typical formats (YYYY-MM-DD)
func ParseDate(dateStr string) (time.Time, error) {
	parsedTime, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: expected YYYY-MM-DD")
	}
	return parsedTime, nil
}

// AgeOn returns completed years between birth and today
func AgeOn(birth, today time.Time) int {
	age := today.Year() - birth.Year()
	if today.Month() < birth.Month() || (today.Month() == birth.Month() && today.Day() < birth.Day()) {
		age--
	}
	return age
}

type todayKey struct{}

// WithToday pins the date used by the birth_date rules
func WithToday(ctx context.Context, today time.Time) context.Context {
	return context.WithValue(ctx, todayKey{}, today)
}

// TodayFrom returns the pinned date from ctx, or the current UTC date
func TodayFrom(ctx context.Context) time.Time {
	t, ok := ctx.Value(todayKey{}).(time.Time)
	if !ok {
		t = time.Now().UTC()
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
