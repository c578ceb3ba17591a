package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/blockfall/pkg/errors"
	"github.com/matzehuels/blockfall/pkg/game"
	"github.com/matzehuels/blockfall/pkg/store"
)

func TestDefault(t *testing.T) {
	f := Default()
	if got, want := f.GameConfig(), game.DefaultConfig(); got != want {
		t.Errorf("GameConfig() = %+v, want %+v", got, want)
	}
	if f.Store.Backend != store.BackendFile {
		t.Errorf("Store.Backend = %q, want file", f.Store.Backend)
	}
	if err := f.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
	c, err := f.Catalog()
	if err != nil {
		t.Fatalf("Catalog() error: %v", err)
	}
	if len(c) != len(game.StandardCatalog()) {
		t.Errorf("default catalog has %d kinds, want %d", len(c), len(game.StandardCatalog()))
	}
}

func TestParse(t *testing.T) {
	data := `
[board]
width = 6
height = 12
speed = "750ms"

[game]
seed = 99

[[pieces]]
name = "bar"
color = "#fff"
shape = ["#..", "#..", "#.."]

[[pieces]]
name = "dot"
color = "#123456"
shape = ["#"]

[store]
backend = "redis"
redis_addr = "cache:6380"
redis_db = 2
`
	f, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	cfg := f.GameConfig()
	if cfg.Width != 6 || cfg.Height != 12 {
		t.Errorf("board = %dx%d, want 6x12", cfg.Width, cfg.Height)
	}
	if cfg.BlockSize != game.DefaultBlockSize {
		t.Errorf("BlockSize = %d, want default %d", cfg.BlockSize, game.DefaultBlockSize)
	}
	if cfg.Speed != 750*time.Millisecond {
		t.Errorf("Speed = %s, want 750ms", cfg.Speed)
	}
	if f.Game.Seed != 99 {
		t.Errorf("Seed = %d, want 99", f.Game.Seed)
	}

	c, err := f.Catalog()
	if err != nil {
		t.Fatalf("Catalog() error: %v", err)
	}
	if got := c.Names(); len(got) != 2 || got[0] != "bar" || got[1] != "dot" {
		t.Errorf("catalog names = %v, want [bar dot]", got)
	}

	sc := f.StoreConfig()
	if sc.Backend != store.BackendRedis || sc.Redis.Addr != "cache:6380" || sc.Redis.DB != 2 {
		t.Errorf("StoreConfig() = %+v", sc)
	}
	if sc.Mongo.URI != "mongodb://localhost:27017" {
		t.Errorf("unset mongo_uri should keep default, got %q", sc.Mongo.URI)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		code errors.Code
	}{
		{"syntax", "[board\nwidth = 1", errors.ErrCodeInvalidConfig},
		{"unknown key", "[board]\ndepth = 3", errors.ErrCodeInvalidConfig},
		{"unknown section", "[sound]\nvolume = 3", errors.ErrCodeInvalidConfig},
		{"zero width", "[board]\nwidth = 0", errors.ErrCodeInvalidConfig},
		{"negative speed", "[board]\nspeed = \"-1s\"", errors.ErrCodeInvalidConfig},
		{"bad duration", "[board]\nspeed = \"fast\"", errors.ErrCodeInvalidConfig},
		{"bad backend", "[store]\nbackend = \"tape\"", errors.ErrCodeInvalidConfig},
		{"non-square piece", "[[pieces]]\nname = \"a\"\ncolor = \"#fff\"\nshape = [\"##\"]", errors.ErrCodeInvalidCatalog},
		{"empty piece", "[[pieces]]\nname = \"a\"\ncolor = \"#fff\"\nshape = [\"..\", \"..\"]", errors.ErrCodeInvalidCatalog},
		{"bad color", "[[pieces]]\nname = \"a\"\ncolor = \"red\"\nshape = [\"#\"]", errors.ErrCodeInvalidCatalog},
		{"unnamed piece", "[[pieces]]\ncolor = \"#fff\"\nshape = [\"#\"]", errors.ErrCodeInvalidCatalog},
		{"bad shape char", "[[pieces]]\nname = \"a\"\ncolor = \"#fff\"\nshape = [\"?\"]", errors.ErrCodeInvalidCatalog},
		{"duplicate piece", "[[pieces]]\nname = \"a\"\ncolor = \"#fff\"\nshape = [\"#\"]\n[[pieces]]\nname = \"a\"\ncolor = \"#fff\"\nshape = [\"#\"]", errors.ErrCodeInvalidCatalog},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("Parse() should fail")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s (err: %v)", got, tt.code, err)
			}
		})
	}
}

func TestParseUnknownKeysListed(t *testing.T) {
	_, err := Parse([]byte("[board]\nwidht = 3\n[game]\nsede = 1"))
	if err == nil {
		t.Fatal("Parse() should fail")
	}
	msg := err.Error()
	for _, key := range []string{"board.widht", "game.sede"} {
		if !strings.Contains(msg, key) {
			t.Errorf("error %q should mention %s", msg, key)
		}
	}
}

func TestLoad(t *testing.T) {
	f, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if f.GameConfig() != game.DefaultConfig() {
		t.Error("Load(\"\") should return defaults")
	}

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) = %v, want FILE_NOT_FOUND", err)
	}

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[board]\nheight = 8\n"), 0600); err != nil {
		t.Fatal(err)
	}
	f, err = Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if f.Board.Height != 8 || f.Board.Width != game.DefaultWidth {
		t.Errorf("board = %+v", f.Board)
	}

	bad := filepath.Join(t.TempDir(), "bad.toml")
	os.WriteFile(bad, []byte("[board]\nwidth = -1\n"), 0600)
	_, err = Load(bad)
	if err == nil || !strings.Contains(err.Error(), bad) {
		t.Errorf("Load(bad) error should name the file, got %v", err)
	}
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Load(bad) code = %s, want INVALID_CONFIG", errors.GetCode(err))
	}
}

func TestLoadDefault(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	f, path, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() error: %v", err)
	}
	if path != "" {
		t.Errorf("path = %q, want empty when no file exists", path)
	}
	if f.GameConfig() != game.DefaultConfig() {
		t.Error("LoadDefault() without a file should return defaults")
	}

	want := filepath.Join(dir, appName, fileName)
	os.MkdirAll(filepath.Dir(want), 0700)
	os.WriteFile(want, []byte("[game]\nseed = 5\n"), 0600)

	f, path, err = LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() error: %v", err)
	}
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	if f.Game.Seed != 5 {
		t.Errorf("Seed = %d, want 5", f.Game.Seed)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath() error: %v", err)
	}
	if want := filepath.Join("/cfg", "blockfall", "config.toml"); path != want {
		t.Errorf("DefaultPath() = %q, want %q", path, want)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	f := Default()
	f.Board.Width = 8
	f.Board.Speed = Duration{1500 * time.Millisecond}
	f.Game.Seed = 1234
	f.Pieces = []Piece{{Name: "dot", Color: "#abc", Shape: []string{"#"}}}

	var buf bytes.Buffer
	if err := f.Encode(&buf); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if !strings.Contains(buf.String(), `speed = "1.5s"`) {
		t.Errorf("encoded speed not a duration string:\n%s", buf.String())
	}

	got, err := Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("Parse(encoded) error: %v\n%s", err, buf.String())
	}
	if got.GameConfig() != f.GameConfig() {
		t.Errorf("GameConfig() = %+v, want %+v", got.GameConfig(), f.GameConfig())
	}
	if got.Game.Seed != 1234 || len(got.Pieces) != 1 || got.Pieces[0].Name != "dot" {
		t.Errorf("round trip lost data: %+v", got)
	}
}
