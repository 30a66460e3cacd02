package config

const (
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultFreeSpaceMarginMiB = 64
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Transfer: Transfer{
			CheckFreeSpace:     true,
			FreeSpaceMarginMiB: defaultFreeSpaceMarginMiB,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
