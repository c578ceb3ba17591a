// Package config loads blockfall configuration files.
//
// Configuration is TOML. Every section is optional; values that are not set
// keep their defaults:
//
//	[board]
//	width = 10
//	height = 20
//	block_size = 30
//	speed = "1s"
//
//	[game]
//	seed = 0          # 0 picks a random seed per run
//
//	[[pieces]]        # optional; replaces the standard catalog
//	name = "I"
//	color = "#00f0f0"
//	shape = ["....", "####", "....", "...."]
//
//	[store]
//	backend = "file"  # file | redis | mongo | none
//	dir = ""          # default $XDG_DATA_HOME/blockfall/saves
//	redis_addr = "localhost:6379"
//	mongo_uri = "mongodb://localhost:27017"
//	mongo_database = "blockfall"
//
// Unknown keys are rejected so that typos surface instead of being ignored.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/blockfall/pkg/errors"
	"github.com/matzehuels/blockfall/pkg/game"
	"github.com/matzehuels/blockfall/pkg/store"
)

const (
	appName  = "blockfall"
	fileName = "config.toml"
)

// File is the decoded configuration file.
type File struct {
	Board  Board   `toml:"board"`
	Game   Game    `toml:"game"`
	Pieces []Piece `toml:"pieces,omitempty"`
	Store  Store   `toml:"store"`
}

// Board holds the [board] section.
type Board struct {
	Width     int      `toml:"width"`
	Height    int      `toml:"height"`
	BlockSize int      `toml:"block_size"`
	Speed     Duration `toml:"speed"`
}

// Game holds the [game] section.
type Game struct {
	Seed uint64 `toml:"seed"`
}

// Piece is one [[pieces]] entry. Shape rows use '#' for occupied cells and
// '.' for empty ones.
type Piece struct {
	Name  string   `toml:"name"`
	Color string   `toml:"color"`
	Shape []string `toml:"shape"`
}

// Store holds the [store] section.
type Store struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password,omitempty"`
	RedisDB       int    `toml:"redis_db"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// Duration is a time.Duration written as a Go duration string ("1s", "750ms").
type Duration struct {
	time.Duration
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Default returns the built-in configuration.
func Default() *File {
	cfg := game.DefaultConfig()
	return &File{
		Board: Board{
			Width:     cfg.Width,
			Height:    cfg.Height,
			BlockSize: cfg.BlockSize,
			Speed:     Duration{cfg.Speed},
		},
		Store: Store{
			Backend:       store.BackendFile,
			RedisAddr:     "localhost:6379",
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: appName,
		},
	}
}

// Parse decodes TOML on top of the defaults and validates the result.
func Parse(data []byte) (*File, error) {
	f := Default()
	md, err := toml.Decode(string(data), f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Load reads and parses the file at path. An empty path yields the defaults;
// a path that does not exist is an error.
func Load(path string) (*File, error) {
	if path == "" {
		return Default(), nil
	}
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// LoadDefault reads the file at DefaultPath if it exists and otherwise returns
// the defaults. The resolved path is empty when no file was read.
func LoadDefault() (*File, string, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), "", nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), "", nil
	}
	f, err := Load(path)
	if err != nil {
		return nil, "", err
	}
	return f, path, nil
}

// Validate checks the board settings, the catalog and the store backend.
func (f *File) Validate() error {
	if err := f.GameConfig().Validate(); err != nil {
		return err
	}
	if _, err := f.Catalog(); err != nil {
		return err
	}
	switch f.Store.Backend {
	case "", store.BackendFile, store.BackendRedis, store.BackendMongo, store.BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q (want file, redis, mongo or none)", f.Store.Backend)
	}
	return nil
}

// GameConfig returns the engine configuration from the [board] section.
func (f *File) GameConfig() game.Config {
	return game.Config{
		Width:     f.Board.Width,
		Height:    f.Board.Height,
		BlockSize: f.Board.BlockSize,
		Speed:     f.Board.Speed.Duration,
	}
}

// Catalog returns the configured pieces, or the standard catalog when the
// file defines none.
func (f *File) Catalog() (game.Catalog, error) {
	if len(f.Pieces) == 0 {
		return game.StandardCatalog(), nil
	}
	c := make(game.Catalog, 0, len(f.Pieces))
	for i, p := range f.Pieces {
		if p.Name == "" {
			return nil, errors.New(errors.ErrCodeInvalidCatalog, "pieces[%d]: name is required", i)
		}
		shape, err := game.ParseShape(p.Shape...)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "piece %q", p.Name)
		}
		c = append(c, game.Kind{Name: p.Name, Shape: shape, Color: p.Color})
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// StoreConfig returns the save-slot backend configuration.
func (f *File) StoreConfig() store.Config {
	return store.Config{
		Backend: f.Store.Backend,
		Dir:     f.Store.Dir,
		Redis: store.RedisConfig{
			Addr:     f.Store.RedisAddr,
			Password: f.Store.RedisPassword,
			DB:       f.Store.RedisDB,
		},
		Mongo: store.MongoConfig{
			URI:      f.Store.MongoURI,
			Database: f.Store.MongoDatabase,
		},
	}
}

// Encode writes the configuration as TOML.
func (f *File) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(f)
}

// DefaultPath returns the config file location using the XDG standard
// (~/.config/blockfall/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}
