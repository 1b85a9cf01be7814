package shortcode

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config describes a Codec. Empty alphabets select the defaults.
type Config struct {
	Alphabet          string `toml:"alphabet"`
	SecondaryAlphabet string `toml:"secondary_alphabet"`
	UseSecondary      bool   `toml:"use_secondary"`
	Offset            int64  `toml:"offset"`
	Strict            bool   `toml:"strict"`
}

// DefaultConfig returns the default configuration with both alphabets
// spelled out.
func DefaultConfig() Config {
	return Config{
		Alphabet:          Base62Alphabet,
		SecondaryAlphabet: Shuffled62Alphabet,
	}
}

// ParseConfig decodes a TOML document. Unknown keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("shortcode: parse config: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads and decodes the TOML file at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("shortcode: read config: %w", err)
	}
	return ParseConfig(data)
}

// TOML encodes cfg as a TOML document.
func (cfg Config) TOML() ([]byte, error) {
	return toml.Marshal(cfg)
}

// Normalize fills empty alphabets with the defaults.
func (cfg Config) Normalize() Config {
	if cfg.Alphabet == "" {
		cfg.Alphabet = Base62Alphabet
	}
	if cfg.SecondaryAlphabet == "" {
		cfg.SecondaryAlphabet = Shuffled62Alphabet
	}
	return cfg
}

// ActiveAlphabet returns the alphabet selected by UseSecondary.
func (cfg Config) ActiveAlphabet() string {
	cfg = cfg.Normalize()
	if cfg.UseSecondary {
		return cfg.SecondaryAlphabet
	}
	return cfg.Alphabet
}
