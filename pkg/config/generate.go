package config

import (
	toml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/stattab/pkg/errors"
)

// GenerateDefault renders the default configuration as a TOML document,
// suitable for seeding a user config file
func GenerateDefault() (string, error) {
	d := Defaults()
	// seed an example column list so the generated file shows the shape
	d.Columns = []Column{
		{Key: "epoch", Name: "epoch"},
		{Key: "loss", Name: "train loss"},
	}
	out, err := toml.Marshal(d)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "marshaling default config")
	}
	return string(out), nil
}
