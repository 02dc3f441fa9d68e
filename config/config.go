// Package config loads cipher profiles from configuration files.
package config

import (
	"encoding/hex"
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mmcloughlin/keystream"
	"github.com/mmcloughlin/keystream/suite"
)

// Config holds a set of named cipher profiles.
type Config struct {
	Profiles []*Profile `yaml:"profiles"`
}

// Profile describes one counter mode setup: the cipher suite, where its key
// lives, and the layout of the initial counter block. Nonce and Suffix are
// hex encoded; the counter field is whatever space they leave free.
type Profile struct {
	Name      string `yaml:"name"`
	Cipher    string `yaml:"cipher"`
	KeyFile   string `yaml:"keyfile"`
	Nonce     string `yaml:"nonce"`
	Suffix    string `yaml:"suffix"`
	Initial   uint64 `yaml:"initial"`
	ByteOrder string `yaml:"byteorder"`
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}
	return Parse(b)
}

// Parse decodes YAML configuration data.
func Parse(b []byte) (*Config, error) {
	cfg := new(Config)
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}
	return cfg, nil
}

// Profile looks up a profile by name.
func (c *Config) Profile(name string) (*Profile, error) {
	for _, p := range c.Profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, errors.Errorf("no profile named %q", name)
}

// Order parses the byte order field. An empty value defaults to big-endian.
func (p *Profile) Order() (keystream.ByteOrder, error) {
	switch p.ByteOrder {
	case "", "big":
		return keystream.BigEndian, nil
	case "little":
		return keystream.LittleEndian, nil
	}
	return 0, errors.Errorf("unknown byte order %q", p.ByteOrder)
}

// Counter builds the counter block layout the profile describes.
func (p *Profile) Counter() (keystream.Counter, error) {
	order, err := p.Order()
	if err != nil {
		return keystream.Counter{}, err
	}
	nonce, err := hex.DecodeString(p.Nonce)
	if err != nil {
		return keystream.Counter{}, errors.Wrap(err, "bad nonce")
	}
	suffix, err := hex.DecodeString(p.Suffix)
	if err != nil {
		return keystream.Counter{}, errors.Wrap(err, "bad suffix")
	}
	return keystream.Counter{
		Prefix:  nonce,
		Suffix:  suffix,
		Initial: p.Initial,
		Order:   order,
	}, nil
}

// Start loads the profile's key and opens a counter mode session.
func (p *Profile) Start() (*keystream.Cipher, error) {
	key, err := LoadKeyFromFile(p.KeyFile)
	if err != nil {
		return nil, err
	}
	block, err := suite.New(p.Cipher, key)
	if err != nil {
		return nil, err
	}
	ctr, err := p.Counter()
	if err != nil {
		return nil, err
	}
	return keystream.NewWithCounter(block, ctr)
}
