package journal

// TodoItem is a task on a single day's to-do list.
type TodoItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Time      string `json:"time,omitempty"`
}

// ScheduleItem is a timed entry on a day's schedule. Time is zero-padded HH:MM.
type ScheduleItem struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Time string `json:"time"`
}

// ThoughtEntry is one cognitive-behavioral thought record.
// Evidence is the only field that may change after creation.
type ThoughtEntry struct {
	ID        string `json:"id"`
	Thought   string `json:"thought"`
	Emotion   string `json:"emotion"`
	Intensity int    `json:"intensity"`
	Evidence  string `json:"evidence"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}

type GratitudeEntry struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Date string `json:"date"`
}

// DayRecords is everything the export needs for one calendar date.
type DayRecords struct {
	Date     string
	Todos    []TodoItem
	Schedule []ScheduleItem
	Thoughts []ThoughtEntry
}

const (
	MinIntensity = 1
	MaxIntensity = 10
)

type IntensityTier string

const (
	TierLow      IntensityTier = "low"
	TierModerate IntensityTier = "moderate"
	TierHigh     IntensityTier = "high"
)

// TierFor bands an intensity: 1-3 low, 4-6 moderate, 7 and above high.
func TierFor(intensity int) IntensityTier {
	switch {
	case intensity <= 3:
		return TierLow
	case intensity <= 6:
		return TierModerate
	default:
		return TierHigh
	}
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) IsValid() bool {
	switch t {
	case ThemeLight, ThemeDark:
		return true
	default:
		return false
	}
}

type Language string

const (
	LanguageEN Language = "en"
	LanguageVI Language = "vi"
)

func (l Language) IsValid() bool {
	switch l {
	case LanguageEN, LanguageVI:
		return true
	default:
		return false
	}
}

// Tab names a feature area. Each has its own first-run tutorial flag.
type Tab string

const (
	TabGratitude Tab = "gratitude"
	TabSchedule  Tab = "schedule"
	TabCoping    Tab = "coping"
	TabThoughts  Tab = "thoughts"
	TabMusic     Tab = "music"
	TabExport    Tab = "export"
)

var Tabs = []Tab{TabGratitude, TabSchedule, TabCoping, TabThoughts, TabMusic, TabExport}

func (t Tab) IsValid() bool {
	for _, v := range Tabs {
		if v == t {
			return true
		}
	}
	return false
}

type MusicSettings struct {
	Enabled bool    `json:"enabled"`
	Volume  float64 `json:"volume"`
}

// Settings replaces the scattered per-feature preference keys with one record.
type Settings struct {
	Theme        Theme         `json:"theme"`
	Language     Language      `json:"language"`
	TutorialSeen map[Tab]bool  `json:"tutorialSeen"`
	Music        MusicSettings `json:"backgroundMusic"`
}

const DefaultMusicVolume = 0.3

func DefaultSettings() Settings {
	return Settings{
		Theme:        ThemeLight,
		Language:     LanguageEN,
		TutorialSeen: map[Tab]bool{},
		Music:        MusicSettings{Enabled: false, Volume: DefaultMusicVolume},
	}
}
