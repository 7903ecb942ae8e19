package utils

import "time"

// India Standard Time (+05:30).
var istLoc = func() *time.Location {
	if loc, err := time.LoadLocation("Asia/Kolkata"); err == nil {
		return loc
	}
	return time.FixedZone("IST", 5*3600+1800)
}()

// TodayIST returns midnight of the current IST calendar day.
func TodayIST(now time.Time) time.Time {
	t := now.In(istLoc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, istLoc)
}

func FormatDisplayIST(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(istLoc).Format("02 Jan 2006 15:04 MST")
}
