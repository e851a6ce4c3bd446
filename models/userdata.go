package models

import "time"

// WorkMode selects between local catalog search and AI-assisted answers
type WorkMode string

const (
	WorkModeLocal WorkMode = "local"
	WorkModeAI    WorkMode = "ai"
)

// Settings holds the persisted user preferences
type Settings struct {
	WorkMode    WorkMode `json:"work_mode"`
	Provider    string   `json:"provider"`
	APIKey      string   `json:"api_key"`
	SaveHistory bool     `json:"save_history"`
	AutoCopy    bool     `json:"auto_copy"`
}

// DefaultSettings returns the settings seeded on first run
func DefaultSettings() *Settings {
	return &Settings{
		WorkMode:    WorkModeLocal,
		Provider:    "claude",
		SaveHistory: true,
		AutoCopy:    true,
	}
}

// HistoryEntry is one recorded search query
type HistoryEntry struct {
	Query     string    `json:"query"`
	Timestamp time.Time `json:"timestamp"`
}

// Favorite is a catalog function pinned by the user
type Favorite struct {
	Name    string    `json:"name"`
	Syntax  string    `json:"syntax"`
	AddedAt time.Time `json:"added_at"`
}
