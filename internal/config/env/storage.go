package envconfig

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

type storageEnv struct {
	Driver          string        `env:"STORAGE_DRIVER" envDefault:"file"`
	ReadTimeout     time.Duration `env:"STORAGE_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout    time.Duration `env:"STORAGE_WRITE_TIMEOUT" envDefault:"5s"`
	ShutdownTimeout time.Duration `env:"STORAGE_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type storage struct {
	raw storageEnv
}

func NewStorageConfig() (*storage, error) {
	var raw storageEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}

	raw.Driver = strings.ToLower(strings.TrimSpace(raw.Driver))
	switch raw.Driver {
	case DriverMemory, DriverFile, DriverMongo, DriverPostgres:
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", raw.Driver)
	}

	return &storage{raw: raw}, nil
}

func (cfg *storage) Driver() string                 { return cfg.raw.Driver }
func (cfg *storage) ReadTimeout() time.Duration     { return cfg.raw.ReadTimeout }
func (cfg *storage) WriteTimeout() time.Duration    { return cfg.raw.WriteTimeout }
func (cfg *storage) ShutdownTimeout() time.Duration { return cfg.raw.ShutdownTimeout }
