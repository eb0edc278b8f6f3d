package config

type LogConfig interface {
	GetLogLevel() string
	GetLogFormat() string
}

type Log struct{}

var _ LogConfig = Log{}

func (Log) GetLogLevel() string {
	return GetEnv("PORTAL_LOG_LEVEL", "info")
}

func (Log) GetLogFormat() string {
	return GetEnv("PORTAL_LOG_FORMAT", "text")
}
