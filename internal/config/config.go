package config

type Config interface {
	EnvConfig
	APIConfig
	StorageConfig
	LogConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
	API
	Storage
	Log
}

func New() Config {
	return mainConfig{}
}
