package internal

const (
	ConfigFile       = "config.json"
	LegacyConfigFile = "config.yml"
)

const (
	DefaultPlatform       = "tg5040"
	DefaultRowCount       = 6
	DefaultAliasCacheSize = 64
	DefaultTempDir        = "/tmp"
	DefaultLanguage       = "en"
)
