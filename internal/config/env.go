package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Env looks up environment variables. Process variables take precedence
// over entries read from a dotenv file.
type Env struct {
	lookup func(string) (string, bool)
	file   map[string]string
}

// NewEnv builds an Env backed by lookup, usually os.LookupEnv.
func NewEnv(lookup func(string) (string, bool)) *Env {
	if lookup == nil {
		lookup = func(string) (string, bool) { return "", false }
	}
	return &Env{lookup: lookup, file: map[string]string{}}
}

// LoadDotenv merges entries from a dotenv file. A missing file is not an
// error so the default ".env" can be tried unconditionally.
func (e *Env) LoadDotenv(path string) error {
	if path == "" {
		return nil
	}

	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read env file %s: %w", path, err)
	}

	for k, v := range values {
		e.file[k] = v
	}
	return nil
}

// Get returns the value for key, or "" when unset.
func (e *Env) Get(key string) string {
	if v, ok := e.lookup(key); ok {
		return v
	}
	return e.file[key]
}

// OSEnv is the Env used by the command.
func OSEnv() *Env {
	return NewEnv(os.LookupEnv)
}
