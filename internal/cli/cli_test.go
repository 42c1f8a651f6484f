package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mhalvors/golevels/pkg/errors"
	"github.com/mhalvors/golevels/pkg/ontology"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", "golevels")
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg-cache", "golevels") {
		t.Errorf("cacheDir() = %q, should honor XDG_CACHE_HOME", dir)
	}
}

func TestDataDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "")

	dir, err := dataDir()
	if err != nil {
		t.Fatalf("dataDir() error: %v", err)
	}
	if !strings.HasSuffix(dir, filepath.Join(".local", "share", "golevels")) {
		t.Errorf("dataDir() = %q, unexpected layout", dir)
	}
}

func TestConfigPathXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")

	path, err := configPath()
	if err != nil {
		t.Fatalf("configPath() error: %v", err)
	}
	if path != filepath.Join("/tmp/xdg-config", "golevels", "config.toml") {
		t.Errorf("configPath() = %q, should honor XDG_CONFIG_HOME", path)
	}
}

func TestParseOntologies(t *testing.T) {
	onts, err := parseOntologies("bp, MF")
	if err != nil {
		t.Fatalf("parseOntologies() error: %v", err)
	}
	if len(onts) != 2 || onts[0] != ontology.BP || onts[1] != ontology.MF {
		t.Errorf("parseOntologies() = %v", onts)
	}

	if onts, err := parseOntologies(""); err != nil || onts != nil {
		t.Errorf("parseOntologies(\"\") = %v, %v, want nil, nil", onts, err)
	}

	_, err = parseOntologies("bp,xx")
	if !errors.Is(err, errors.ErrCodeInvalidOntology) {
		t.Errorf("error code = %q, want INVALID_ONTOLOGY", errors.GetCode(err))
	}
}

func TestShortHash(t *testing.T) {
	if got := shortHash("0123456789abcdef"); got != "0123456789ab" {
		t.Errorf("shortHash() = %q", got)
	}
	if got := shortHash("abc"); got != "abc" {
		t.Errorf("shortHash() short input = %q", got)
	}
}
