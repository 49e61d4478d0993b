// Package config resolves the CLI's visibility flags into the fixed set of
// fields to display, and resolves provider API keys from the environment
// and an optional YAML file.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Flags mirrors the boolean CLI switches of the root command verbatim.
type Flags struct {
	All           bool
	Provider      bool
	IP            bool
	ASN           bool
	ISP           bool
	Country       bool
	Region        bool
	City          bool
	Coordinates   bool
	TimeZone      bool
	Risk          bool
	Tags          bool
	Time          bool
	SetIP         string
	Cls           bool
	NoLogo        bool
	NoUpload      bool
	Logger        bool
	JSON          bool
	SpecialForGUI bool
}

// Visibility is the resolved set of fields the table/stream/JSON renderers
// should include, after mode precedence has been applied.
type Visibility struct {
	Provider    bool
	IP          bool
	ASN         bool
	ISP         bool
	Country     bool
	Region      bool
	City        bool
	Coordinates bool
	TimeZone    bool
	Risk        bool
	Tags        bool
	Time        bool
}

func anyFieldFlagSet(f Flags) bool {
	return f.Provider || f.IP || f.ASN || f.ISP || f.Country || f.Region ||
		f.City || f.Coordinates || f.TimeZone || f.Risk || f.Tags || f.Time
}

// Resolve applies the five-rule mode precedence: json > individual field
// flags > all > special-for-gui > default field set.
func Resolve(f Flags) Visibility {
	switch {
	case f.JSON:
		return Visibility{
			Provider: true, IP: true, ASN: true, ISP: true, Country: true,
			Region: true, City: true, Coordinates: true, TimeZone: true,
			Risk: true, Tags: true, Time: true,
		}
	case anyFieldFlagSet(f):
		return Visibility{
			Provider: f.Provider, IP: f.IP, ASN: f.ASN, ISP: f.ISP,
			Country: f.Country, Region: f.Region, City: f.City,
			Coordinates: f.Coordinates, TimeZone: f.TimeZone,
			Risk: f.Risk, Tags: f.Tags, Time: f.Time,
		}
	case f.All:
		return Visibility{
			Provider: true, IP: true, ASN: true, ISP: true, Country: true,
			Region: true, City: true, Coordinates: true, TimeZone: true,
			Risk: true, Tags: true, Time: true,
		}
	case f.SpecialForGUI:
		return Visibility{
			Provider: true, IP: true, ASN: true, ISP: true, Country: true,
			Region: true, City: true, Coordinates: true, TimeZone: true,
			Risk: true, Tags: true, Time: true,
		}
	default:
		return Visibility{
			Provider: true, IP: true, ASN: true, ISP: true,
			Country: true, Region: true, City: true,
		}
	}
}

// EffectiveNoLogo/NoUpload/Logger fold in the side effects the json and
// special-for-gui modes impose beyond field visibility (forcing no-logo,
// disabling upload, disabling the logger, etc). Mirrors default_config's
// struct-update behavior one field at a time since Go has no record
// update syntax.
func EffectiveNoLogo(f Flags) bool {
	return f.NoLogo || f.JSON || f.SpecialForGUI
}

func EffectiveNoUpload(f Flags) bool {
	return f.NoUpload || f.JSON || f.SpecialForGUI
}

func EffectiveLogger(f Flags) bool {
	if f.JSON || f.SpecialForGUI {
		return false
	}
	return f.Logger
}

// KeyStore resolves per-provider API keys from the environment first, then
// an optional YAML file, in that order.
type KeyStore struct {
	file map[string]string
}

// fileFormat is the shape of the optional providers.yaml config file.
type fileFormat struct {
	Providers map[string]string `yaml:"providers"`
}

// LoadKeyStore reads path if it exists; a missing file is not an error,
// matching the "optional" nature of the YAML config layer.
func LoadKeyStore(path string) (*KeyStore, error) {
	ks := &KeyStore{file: map[string]string{}}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ks, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var parsed fileFormat
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	ks.file = parsed.Providers
	return ks, nil
}

// Key returns the API key for provider, or "" if none is configured.
// Environment variable IPFAN_<PROVIDER>_KEY (provider upper-cased, each non
// alphanumeric character replaced by "_") takes precedence over the YAML file.
func (ks *KeyStore) Key(provider string) string {
	envName := "IPFAN_" + envSafe(provider) + "_KEY"
	if v := os.Getenv(envName); v != "" {
		return v
	}
	if ks == nil {
		return ""
	}
	return ks.file[provider]
}

func envSafe(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
