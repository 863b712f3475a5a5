package envconfig

import "github.com/caarlos0/env/v11"

type fileEnv struct {
	Dir string `env:"STORAGE_DIR" envDefault:".pcbuild"`
}

type file struct {
	raw fileEnv
}

func NewFileConfig() (*file, error) {
	var raw fileEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &file{raw: raw}, nil
}

func (cfg *file) Dir() string { return cfg.raw.Dir }
