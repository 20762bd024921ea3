package main

type botConfig struct {
	Token       string `json:"token"`        // The bot token, from @BotFather.
	NotesDir    string `json:"notes_dir"`    // Directory holding the ".md" notes.
	Database    string `json:"database"`     // Bolt database for conversation state.
	LogPath     string `json:"log"`          // Log file path.
	PollTimeout int    `json:"poll_timeout"` // Long poll timeout in seconds.
}
