package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	bferrors "github.com/matzehuels/blockfall/pkg/errors"
	"github.com/matzehuels/blockfall/pkg/config"
	"github.com/matzehuels/blockfall/pkg/game"
)

func TestConfigShow(t *testing.T) {
	isolate(t)
	out, err := execute(t, "", "config", "show")
	if err != nil {
		t.Fatalf("config show error: %v", err)
	}
	for _, want := range []string{"[board]", "width = 10", `speed = "1s"`, "[store]", `backend = "file"`} {
		if !strings.Contains(out, want) {
			t.Errorf("config show missing %q:\n%s", want, out)
		}
	}

	cfg := writeFile(t, t.TempDir(), "config.toml", squareConfig)
	out, err = execute(t, "", "config", "show", "--config", cfg)
	if err != nil {
		t.Fatalf("config show --config error: %v", err)
	}
	if !strings.Contains(out, "width = 4") || !strings.Contains(out, "[[pieces]]") {
		t.Errorf("config show should reflect the file:\n%s", out)
	}
}

func TestConfigPath(t *testing.T) {
	configHome, _ := isolate(t)
	out, err := execute(t, "", "config", "path")
	if err != nil {
		t.Fatalf("config path error: %v", err)
	}
	if want := filepath.Join(configHome, appName, "config.toml"); strings.TrimSpace(out) != want {
		t.Errorf("config path = %q, want %q", strings.TrimSpace(out), want)
	}
}

func TestConfigInit(t *testing.T) {
	configHome, _ := isolate(t)

	if _, err := execute(t, "", "config", "init"); err != nil {
		t.Fatalf("config init error: %v", err)
	}
	path := filepath.Join(configHome, appName, "config.toml")
	f, err := config.Load(path)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if f.GameConfig() != config.Default().GameConfig() {
		t.Errorf("written config = %+v, want defaults", f.GameConfig())
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config mode = %o, want 600", perm)
	}

	if _, err := execute(t, "", "config", "init"); !bferrors.Is(err, bferrors.ErrCodeInvalidInput) {
		t.Errorf("second init: got %v, want INVALID_INPUT", err)
	}
	if _, err := execute(t, "", "config", "init", "--force"); err != nil {
		t.Errorf("init --force error: %v", err)
	}
}

func TestCatalogCommand(t *testing.T) {
	isolate(t)
	out, err := execute(t, "", "catalog", "--format", "json")
	if err != nil {
		t.Fatalf("catalog error: %v", err)
	}
	for _, name := range []string{"I", "O", "T", "S", "Z", "J", "L"} {
		if !strings.Contains(out, `"name": "`+name+`"`) {
			t.Errorf("catalog json missing %s", name)
		}
	}

	text, err := execute(t, "", "catalog")
	if err != nil {
		t.Fatalf("catalog (text) error: %v", err)
	}
	for _, want := range []string{"Piece", "#00f0f0", "4x4", "2x2", cellFilled} {
		if !strings.Contains(text, want) {
			t.Errorf("catalog table missing %q:\n%s", want, text)
		}
	}
}

func TestRenderShape(t *testing.T) {
	k := game.Kind{Name: "I", Color: "#00f0f0", Shape: game.MustParseShape("....", "####", "....", "....")}
	if got := renderShape(k); strings.Count(got, cellFilled) != 4 || strings.Contains(got, "\n") {
		t.Errorf("renderShape(I) = %q, want one row of four cells", got)
	}

	k = game.Kind{Name: "T", Color: "#a000f0", Shape: game.MustParseShape(".#.", "###", "...")}
	if got := renderShape(k); strings.Count(got, "\n") != 1 {
		t.Errorf("renderShape(T) = %q, want two rows", got)
	}
}
