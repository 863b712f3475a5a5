package config

import "time"

type Logger interface {
	Level() string
	AsJSON() bool
}

type Storage interface {
	Driver() string
	ReadTimeout() time.Duration
	WriteTimeout() time.Duration
	ShutdownTimeout() time.Duration
}

type File interface {
	Dir() string
}

type Mongo interface {
	DatabaseName() string
	KVCollection() string
	DSN() string
}

type Postgres interface {
	DSN() string
}
