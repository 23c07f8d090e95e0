package storage

// Storage keys. Day-scoped collections are keyed by their YYYY-MM-DD date;
// thought and gratitude entries carry their own date and live under one key each.
const (
	ThoughtLogKey = "thought_log"
	GratitudeKey  = "gratitude_entries"
	SettingsKey   = "settings"

	todosPrefix    = "todos_"
	schedulePrefix = "schedule_"
)

func TodosKey(date string) string    { return todosPrefix + date }
func ScheduleKey(date string) string { return schedulePrefix + date }
