// SPDX-License-Identifier: MPL-2.0

package config

import "testing"

func envMap(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestResolve_Defaults(t *testing.T) {
	t.Parallel()

	got := Resolve(Sources{})
	if got != DefaultConfig() {
		t.Errorf("Resolve(empty) = %+v, want %+v", got, DefaultConfig())
	}
}

func TestResolve_Priority(t *testing.T) {
	t.Parallel()

	override := Overrides{BottleName: "flag-bottle", ProgramName: "flag-program", FlatpakAppID: "flag.app"}
	env := map[string]string{
		EnvBottleName:   "env-bottle",
		EnvProgramName:  "env-program",
		EnvFlatpakAppID: "env.app",
	}
	file := FileValues{BottleName: "file-bottle", ProgramName: "file-program", FlatpakAppID: "file.app"}

	tests := []struct {
		name string
		src  Sources
		want Config
	}{
		{
			name: "override beats everything",
			src:  Sources{Overrides: override, Getenv: envMap(env), File: file},
			want: Config{BottleName: "flag-bottle", ProgramName: "flag-program", FlatpakAppID: "flag.app"},
		},
		{
			name: "environment beats file",
			src:  Sources{Getenv: envMap(env), File: file},
			want: Config{BottleName: "env-bottle", ProgramName: "env-program", FlatpakAppID: "env.app"},
		},
		{
			name: "file beats default",
			src:  Sources{File: file},
			want: Config{BottleName: "file-bottle", ProgramName: "file-program", FlatpakAppID: "file.app"},
		},
		{
			name: "fields resolve independently",
			src: Sources{
				Overrides: Overrides{ProgramName: "flag-program"},
				Getenv:    envMap(map[string]string{EnvFlatpakAppID: "env.app"}),
				File:      FileValues{BottleName: "file-bottle"},
			},
			want: Config{BottleName: "file-bottle", ProgramName: "flag-program", FlatpakAppID: "env.app"},
		},
		{
			name: "empty override falls through",
			src: Sources{
				Overrides: Overrides{BottleName: ""},
				Getenv:    envMap(map[string]string{EnvBottleName: "env-bottle"}),
			},
			want: Config{BottleName: "env-bottle", ProgramName: DefaultProgramName, FlatpakAppID: DefaultFlatpakAppID},
		},
		{
			name: "blank values count as empty",
			src: Sources{
				Overrides: Overrides{BottleName: "   "},
				Getenv:    envMap(map[string]string{EnvBottleName: "\t"}),
				File:      FileValues{BottleName: " file-bottle "},
			},
			want: Config{BottleName: "file-bottle", ProgramName: DefaultProgramName, FlatpakAppID: DefaultFlatpakAppID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Resolve(tt.src); got != tt.want {
				t.Errorf("Resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// TestResolve_EveryLayerCombination checks, for each field and every subset of
// populated layers, that the highest populated layer wins.
func TestResolve_EveryLayerCombination(t *testing.T) {
	t.Parallel()

	for mask := range 8 {
		src := Sources{}
		env := map[string]string{}
		want := DefaultConfig()

		if mask&1 != 0 {
			src.File = FileValues{BottleName: "f", ProgramName: "f", FlatpakAppID: "f"}
			want = Config{BottleName: "f", ProgramName: "f", FlatpakAppID: "f"}
		}
		if mask&2 != 0 {
			env[EnvBottleName], env[EnvProgramName], env[EnvFlatpakAppID] = "e", "e", "e"
			want = Config{BottleName: "e", ProgramName: "e", FlatpakAppID: "e"}
		}
		if mask&4 != 0 {
			src.Overrides = Overrides{BottleName: "o", ProgramName: "o", FlatpakAppID: "o"}
			want = Config{BottleName: "o", ProgramName: "o", FlatpakAppID: "o"}
		}
		src.Getenv = envMap(env)

		if got := Resolve(src); got != want {
			t.Errorf("mask %03b: Resolve() = %+v, want %+v", mask, got, want)
		}
	}
}
