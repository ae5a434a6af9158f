package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// ErrParsingConfig is returned when environment variables cannot be
	// parsed into the target struct.
	ErrParsingConfig = errors.New("config.parsing_failed")

	// ErrNilPointer is returned when Load is given a nil target.
	ErrNilPointer = errors.New("config.nil_pointer")

	dotenvOnce sync.Once
)

// Load populates v from the environment. The default .env file is loaded
// once per process; a missing file is fine.
func Load[T any](v *T) error {
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	if v == nil {
		return ErrNilPointer
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics on failure. For configuration the
// process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}
