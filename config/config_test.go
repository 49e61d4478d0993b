package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolveJSONModeOverridesEverything(t *testing.T) {
	f := Flags{JSON: true, Provider: true}
	v := Resolve(f)
	if !v.Provider || !v.Coordinates || !v.Time {
		t.Fatalf("json mode should show all fields, got %+v", v)
	}
}

func TestResolveIndividualFlagsBeatAll(t *testing.T) {
	f := Flags{All: true, IP: true}
	v := Resolve(f)
	if !v.IP || v.Provider || v.ASN {
		t.Fatalf("individual field flags should suppress --all, got %+v", v)
	}
}

func TestResolveAllEnablesEveryField(t *testing.T) {
	f := Flags{All: true}
	v := Resolve(f)
	if !v.Time {
		t.Fatalf("--all should enable every field, got %+v", v)
	}
}

func TestResolveDefaultFieldSet(t *testing.T) {
	v := Resolve(Flags{})
	if !v.Provider || !v.IP || v.Coordinates || v.Risk {
		t.Fatalf("default mode should show the base set only, got %+v", v)
	}
}

func TestResolveAllAndJSONProduceIdenticalVisibility(t *testing.T) {
	all := Resolve(Flags{All: true})
	json := Resolve(Flags{JSON: true})
	if diff := cmp.Diff(all, json); diff != "" {
		t.Fatalf("--all and --json visibility differ (-all +json):\n%s", diff)
	}
}

func TestKeyStorePrefersEnvOverFile(t *testing.T) {
	t.Setenv("IPFAN_IPDATA_CO_KEY", "from-env")
	ks := &KeyStore{file: map[string]string{"ipdata.co": "from-file"}}
	if got := ks.Key("ipdata.co"); got != "from-env" {
		t.Fatalf("Key() = %q, want from-env", got)
	}
}

func TestKeyStoreFallsBackToFile(t *testing.T) {
	ks := &KeyStore{file: map[string]string{"ipdata.co": "from-file"}}
	if got := ks.Key("ipdata.co"); got != "from-file" {
		t.Fatalf("Key() = %q, want from-file", got)
	}
}

func TestLoadKeyStoreMissingFileIsNotAnError(t *testing.T) {
	ks, err := LoadKeyStore("/nonexistent/path/providers.yaml")
	if err != nil {
		t.Fatalf("LoadKeyStore() error = %v, want nil", err)
	}
	if got := ks.Key("anything"); got != "" {
		t.Fatalf("Key() = %q, want empty", got)
	}
}
