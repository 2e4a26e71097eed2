package contracts

// Level is the severity of a user-facing banner
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Banner is one inline status message shown above the report
type Banner struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// Info builds an info banner
func Info(text string) Banner { return Banner{Level: LevelInfo, Text: text} }

// Success builds a success banner
func Success(text string) Banner { return Banner{Level: LevelSuccess, Text: text} }

// Warning builds a warning banner
func Warning(text string) Banner { return Banner{Level: LevelWarning, Text: text} }

// Error builds an error banner
func Error(text string) Banner { return Banner{Level: LevelError, Text: text} }
