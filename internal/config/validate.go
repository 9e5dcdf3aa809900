package config

import (
	"io/fs"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/thoreinstein/snapkeep/internal/errors"
)

var envReplacer = strings.NewReplacer(".", "_")

var registryExt = validation.By(func(value any) error {
	s, _ := value.(string)
	for _, ext := range []string{".yaml", ".yml", ".toml", ".json"} {
		if strings.HasSuffix(s, ext) {
			return nil
		}
	}
	return errors.New("must end in .yaml, .yml, .toml or .json")
})

var noNUL = validation.By(func(value any) error {
	s, _ := value.(string)
	if strings.ContainsRune(s, '\x00') {
		return errors.New("must not contain NUL bytes")
	}
	return nil
})

// Validate checks a Config for validity.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Version, validation.Required, validation.Min(1)),
		validation.Field(&c.BackupRoot, validation.Required, noNUL),
		validation.Field(&c.Registry, validation.Required, noNUL, registryExt),
		validation.Field(&c.Retention, validation.Min(0)),
	); err != nil {
		return err
	}
	return c.Watch.Validate()
}

// Validate validates the watch configuration.
func (c *WatchConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Debounce, validation.Min(0)),
	)
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
