package cmd

import (
	"github.com/mmcloughlin/keystream/config"
	"github.com/spf13/pflag"
)

// Defined argument sets.
var (
	profileArgs = new(ProfileArgs)
)

// Module is something that can be configured with command line arguments.
type Module interface {
	Attach(*pflag.FlagSet)
}

// Register adds a list of modules to the given flag set.
func Register(f *pflag.FlagSet, modules ...Module) {
	for _, m := range modules {
		m.Attach(f)
	}
}

// ProfileArgs selects a cipher profile from a configuration file.
type ProfileArgs struct {
	config  string
	profile string
}

func (a *ProfileArgs) Attach(f *pflag.FlagSet) {
	f.StringVarP(&a.config, "config", "c", "keystream.yaml", "config file")
	f.StringVarP(&a.profile, "profile", "p", "default", "cipher profile")
}

// Profile loads the selected profile from the config file.
func (a *ProfileArgs) Profile() (*config.Profile, error) {
	cfg, err := config.Load(a.config)
	if err != nil {
		return nil, err
	}
	return cfg.Profile(a.profile)
}
