package config

// Log configures the process-wide slog handler.
type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[simplebank]"`
}

// Shell configures the interactive menu.
type Shell struct {
	Color  string `envconfig:"COLOR" default:"auto"`
	Prompt string `envconfig:"PROMPT" default:"Choose an option: "`
}

// Ledger configures the account registry.
type Ledger struct {
	Audit bool `envconfig:"AUDIT" default:"true"`
}

type App struct {
	Env    string  `envconfig:"APP_ENV" default:"development"`
	Log    *Log    `envconfig:"LOG"`
	Shell  *Shell  `envconfig:"MENU"`
	Ledger *Ledger `envconfig:"LEDGER"`
}

// Color modes accepted by Shell.Color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)
