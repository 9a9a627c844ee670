// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spsswrap/spss-wrapper/internal/issue"
	"github.com/spsswrap/spss-wrapper/internal/testutil"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	testutil.MustMkdirAll(t, filepath.Dir(path), 0o755)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func strPtr(s string) *string { return &s }

func TestConfigDir(t *testing.T) {
	t.Run("xdg config home", func(t *testing.T) {
		dir, err := ConfigDir(envMap(map[string]string{"XDG_CONFIG_HOME": "/tmp/xdg"}))
		if err != nil {
			t.Fatalf("ConfigDir() returned error: %v", err)
		}
		if want := filepath.Join("/tmp/xdg", AppName); dir != want {
			t.Errorf("ConfigDir() = %s, want %s", dir, want)
		}
	})

	t.Run("home fallback", func(t *testing.T) {
		home := t.TempDir()
		t.Cleanup(testutil.SetHomeDir(t, home))

		path, err := FilePath(envMap(nil))
		if err != nil {
			t.Fatalf("FilePath() returned error: %v", err)
		}
		if want := filepath.Join(home, ".config", AppName, "config.toml"); path != want {
			t.Errorf("FilePath() = %s, want %s", path, want)
		}
	})
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		content   *string
		want      FileValues
		wantIssue issue.Id
	}{
		{
			name: "missing file is an empty source",
		},
		{
			name:    "valid file",
			content: strPtr("bottle_name = \"Stats\"\nprogram_name = \"SPSS 29\"\nflatpak_app_id = \"org.example.Bottles\"\n"),
			want:    FileValues{BottleName: "Stats", ProgramName: "SPSS 29", FlatpakAppID: "org.example.Bottles"},
		},
		{
			name:    "partial file and unknown keys",
			content: strPtr("program_name = \"SPSS 29\"\ntheme = \"dark\"\n"),
			want:    FileValues{ProgramName: "SPSS 29"},
		},
		{
			name:    "keys are case-sensitive",
			content: strPtr("BOTTLE_NAME = \"Upper\"\nProgram_Name = \"Mixed\"\nflatpak_app_id = \"org.example.Bottles\"\n"),
			want:    FileValues{FlatpakAppID: "org.example.Bottles"},
		},
		{
			name:      "malformed file",
			content:   strPtr("bottle_name = \"unterminated\nprogram_name = \n"),
			wantIssue: issue.ConfigFileUnreadableId,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "config.toml")
			if tt.content != nil {
				writeFile(t, path, *tt.content)
			}

			got, err := LoadFile(path)
			if tt.wantIssue != 0 {
				if issue.IdOf(err) != tt.wantIssue {
					t.Fatalf("LoadFile() error = %v, want issue %s", err, tt.wantIssue)
				}
			} else if err != nil {
				t.Fatalf("LoadFile() returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("LoadFile() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoadFile_Directory(t *testing.T) {
	t.Parallel()

	_, err := LoadFile(t.TempDir())
	if issue.IdOf(err) != issue.ConfigFileUnreadableId {
		t.Errorf("LoadFile(dir) error = %v, want ConfigFileUnreadable", err)
	}
}

func TestWriteFile_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, force := range []bool{false, true} {
		err := WriteFile(dir, DefaultConfig(), force)
		if err == nil {
			t.Fatalf("WriteFile(dir, force=%v) should fail", force)
		}
		if id := issue.IdOf(err); id == issue.ConfigFileExistsId {
			t.Errorf("WriteFile(dir, force=%v) reported ConfigFileExists", force)
		}
		var ae *issue.ActionableError
		if !errors.As(err, &ae) {
			t.Fatalf("error should be *issue.ActionableError, got %T", err)
		}
		if strings.Contains(ae.Format(false), "--force") {
			t.Errorf("directory error should not suggest --force: %v", err)
		}
		if !strings.Contains(err.Error(), "directory") {
			t.Errorf("error should say the path is a directory: %v", err)
		}
	}
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Config{BottleName: "Stats", ProgramName: "SPSS 29", FlatpakAppID: DefaultFlatpakAppID}

	if err := WriteFile(path, cfg, false); err != nil {
		t.Fatalf("WriteFile() returned error: %v", err)
	}

	values, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() returned error: %v", err)
	}
	if values.BottleName != "Stats" || values.ProgramName != "SPSS 29" || values.FlatpakAppID != DefaultFlatpakAppID {
		t.Errorf("round trip = %+v", values)
	}

	err = WriteFile(path, DefaultConfig(), false)
	if issue.IdOf(err) != issue.ConfigFileExistsId {
		t.Fatalf("second WriteFile() error = %v, want ConfigFileExists", err)
	}
	if values, _ = LoadFile(path); values.BottleName != "Stats" {
		t.Errorf("refused write modified the file: %+v", values)
	}

	if err := WriteFile(path, DefaultConfig(), true); err != nil {
		t.Fatalf("forced WriteFile() returned error: %v", err)
	}
	if values, _ = LoadFile(path); values.BottleName != DefaultBottleName {
		t.Errorf("forced write did not replace the file: %+v", values)
	}
}

func TestGenerateTOML(t *testing.T) {
	t.Parallel()

	out, err := GenerateTOML(DefaultConfig())
	if err != nil {
		t.Fatalf("GenerateTOML() returned error: %v", err)
	}
	for _, key := range []string{KeyBottleName, KeyProgramName, KeyFlatpakAppID} {
		if !strings.Contains(string(out), key) {
			t.Errorf("GenerateTOML() missing key %q:\n%s", key, out)
		}
	}
}

func TestProvider_Load(t *testing.T) {
	t.Parallel()

	t.Run("explicit file path", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "custom.toml")
		writeFile(t, path, "bottle_name = \"Custom\"\n")

		res, err := NewProvider(nil).Load(context.Background(), LoadOptions{
			ConfigFilePath: path,
			Overrides:      Overrides{ProgramName: "flag-program"},
		})
		if err != nil {
			t.Fatalf("Load() returned error: %v", err)
		}
		if res.Warning != nil {
			t.Errorf("unexpected warning: %v", res.Warning)
		}
		want := Config{BottleName: "Custom", ProgramName: "flag-program", FlatpakAppID: DefaultFlatpakAppID}
		if res.Config != want {
			t.Errorf("Load().Config = %+v, want %+v", res.Config, want)
		}
	})

	t.Run("xdg location", func(t *testing.T) {
		t.Parallel()

		xdg := t.TempDir()
		writeFile(t, filepath.Join(xdg, AppName, "config.toml"), "flatpak_app_id = \"org.example.Bottles\"\n")

		res, err := NewProvider(nil).Load(context.Background(), LoadOptions{
			Getenv: envMap(map[string]string{"XDG_CONFIG_HOME": xdg, EnvBottleName: "EnvBottle"}),
		})
		if err != nil {
			t.Fatalf("Load() returned error: %v", err)
		}
		want := Config{BottleName: "EnvBottle", ProgramName: DefaultProgramName, FlatpakAppID: "org.example.Bottles"}
		if res.Config != want {
			t.Errorf("Load().Config = %+v, want %+v", res.Config, want)
		}
	})

	t.Run("malformed file still resolves", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.toml")
		writeFile(t, path, "[[[ not toml")

		res, err := NewProvider(nil).Load(context.Background(), LoadOptions{ConfigFilePath: path})
		if err != nil {
			t.Fatalf("Load() returned error: %v", err)
		}
		if issue.IdOf(res.Warning) != issue.ConfigFileUnreadableId {
			t.Errorf("Warning = %v, want ConfigFileUnreadable", res.Warning)
		}
		if res.Config != DefaultConfig() {
			t.Errorf("Load().Config = %+v, want defaults", res.Config)
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := NewProvider(nil).Load(ctx, LoadOptions{}); err == nil {
			t.Error("Load() with canceled context should fail")
		}
	})
}
