// SPDX-License-Identifier: MPL-2.0

package config

const (
	// DefaultBottleName is the bottle used when no source names one.
	DefaultBottleName = "SPSS"
	// DefaultProgramName is the program launched when no source names one.
	DefaultProgramName = "SPSS"
	// DefaultFlatpakAppID is the Flatpak application ID of Bottles on Flathub.
	DefaultFlatpakAppID = "com.usebottles.bottles"

	// EnvBottleName overrides the bottle name.
	EnvBottleName = "SPSS_BOTTLE_NAME"
	// EnvProgramName overrides the program name.
	EnvProgramName = "SPSS_PROGRAM_NAME"
	// EnvFlatpakAppID overrides the Flatpak application ID.
	EnvFlatpakAppID = "BOTTLES_FLATPAK_APP_ID"

	// KeyBottleName is the config file key for the bottle name.
	KeyBottleName = "bottle_name"
	// KeyProgramName is the config file key for the program name.
	KeyProgramName = "program_name"
	// KeyFlatpakAppID is the config file key for the Flatpak application ID.
	KeyFlatpakAppID = "flatpak_app_id"
)

type (
	// Config is the resolved configuration. All fields are non-empty when
	// produced by Resolve.
	Config struct {
		BottleName   string
		ProgramName  string
		FlatpakAppID string
	}

	// Overrides holds explicit values, typically from command-line flags.
	// Empty fields do not override anything.
	Overrides struct {
		BottleName   string
		ProgramName  string
		FlatpakAppID string
	}

	// FileValues holds the values read from the persisted config file.
	// Any field may be empty.
	FileValues struct {
		BottleName   string `toml:"bottle_name"`
		ProgramName  string `toml:"program_name"`
		FlatpakAppID string `toml:"flatpak_app_id"`
	}

	// Sources are the inputs to Resolve, ranked override > environment > file > default.
	Sources struct {
		Overrides Overrides
		// Getenv looks up an environment variable. A nil Getenv is an empty environment.
		Getenv func(string) string
		File   FileValues
	}
)

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		BottleName:   DefaultBottleName,
		ProgramName:  DefaultProgramName,
		FlatpakAppID: DefaultFlatpakAppID,
	}
}
