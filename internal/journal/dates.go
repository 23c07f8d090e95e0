package journal

import "time"

// Today returns now's local calendar date as YYYY-MM-DD. The local date is taken
// literally; no timezone normalization happens anywhere in the journal.
func Today(now time.Time) string {
	return now.Format(dateLayout)
}

// ShiftDate moves a YYYY-MM-DD date by days calendar days.
func ShiftDate(date string, days int) (string, error) {
	d, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	t, _ := time.Parse(dateLayout, d)
	return t.AddDate(0, 0, days).Format(dateLayout), nil
}

// ClockOf formats now as the 24h HH:MM stamp stored on thought entries.
func ClockOf(now time.Time) string {
	return now.Format("15:04")
}
