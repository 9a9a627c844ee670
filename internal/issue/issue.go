// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"

	"github.com/spsswrap/spss-wrapper/pkg/types"
)

// Id identifies a kind of failure. Each Id has a remediation page in the catalog.
type Id int

const (
	ConfigFileUnreadableId Id = iota + 1
	HostPathNotFoundId
	LauncherMissingId
	TranslationFailedId
	EmptyTranslationId
	LaunchFailedId
	ConfigFileExistsId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	extLinks []HttpLink  // external links that might be useful for the user
}

// String returns the name of the issue kind.
func (id Id) String() string {
	switch id {
	case ConfigFileUnreadableId:
		return "ConfigFileUnreadable"
	case HostPathNotFoundId:
		return "HostPathNotFound"
	case LauncherMissingId:
		return "LauncherMissing"
	case TranslationFailedId:
		return "TranslationFailed"
	case EmptyTranslationId:
		return "EmptyTranslation"
	case LaunchFailedId:
		return "LaunchFailed"
	case ConfigFileExistsId:
		return "ConfigFileExists"
	default:
		return "Unknown"
	}
}

// ExitCode maps an issue kind to the process exit code. LaunchFailed errors
// normally carry the launched program's own code instead (see ActionableError.Code).
func (id Id) ExitCode() types.ExitCode {
	return 1
}

func (i *Issue) Id() Id {
	return i.id
}

// ExtLinks returns a copy of the entry's external help links.
func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also:\n"
		for _, link := range i.extLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	configFileUnreadableIssue = &Issue{
		id: ConfigFileUnreadableId,
		mdMsg: `
# Could not read the configuration file

The file exists but is not valid TOML or cannot be read. Its values are ignored
and the remaining sources (flags, environment, defaults) are used instead.

## Things you can try:
- Check the syntax, every value must be a quoted string:
~~~toml
bottle_name = "SPSS"
program_name = "SPSS"
flatpak_app_id = "com.usebottles.bottles"
~~~

- Regenerate the file:
~~~
$ spss-wrapper --init-config --force
~~~`,
		extLinks: []HttpLink{"https://toml.io/en/v1.0.0"},
	}

	hostPathNotFoundIssue = &Issue{
		id: HostPathNotFoundId,
		mdMsg: `
# File not found

One of the files you asked to open does not exist on this machine, so SPSS was
not started.

## Things you can try:
- Check the file name for typos
- Pass an absolute path
- Make sure a symlink does not point to a deleted file`,
	}

	launcherMissingIssue = &Issue{
		id: LauncherMissingId,
		mdMsg: `
# Flatpak is not installed

SPSS runs inside a Bottles bottle, and Bottles is started through Flatpak.

## Install Flatpak:
- Ubuntu/Debian: ` + "`sudo apt install flatpak`" + `
- Fedora: ` + "`sudo dnf install flatpak`" + `
- Arch: ` + "`sudo pacman -S flatpak`" + `

## Then install Bottles:
~~~
$ flatpak install flathub com.usebottles.bottles
~~~`,
		extLinks: []HttpLink{"https://flatpak.org/setup/", "https://docs.usebottles.com/"},
	}

	translationFailedIssue = &Issue{
		id: TranslationFailedId,
		mdMsg: `
# Path translation failed

Running ` + "`winepath`" + ` inside the bottle returned an error.

## Possible causes:
- The bottle does not exist
- Bottles or Flatpak is not properly installed
- The Flatpak app ID is wrong

## Things you can try:
- List the available bottles:
~~~
$ flatpak run --command=bottles-cli com.usebottles.bottles list bottles
~~~

- Select another bottle with ` + "`--bottle`" + ` or ` + "`SPSS_BOTTLE_NAME`",
		extLinks: []HttpLink{"https://docs.usebottles.com/"},
	}

	emptyTranslationIssue = &Issue{
		id: EmptyTranslationId,
		mdMsg: `
# Path translation returned nothing

` + "`winepath`" + ` ran successfully but printed no Windows path.

## This may indicate:
- The bottle is not properly configured
- The path is not accessible from within the bottle (check the Flatpak
  filesystem permissions of Bottles, e.g. with Flatseal)

## Things you can try:
- Run the translation manually and inspect the output
- Move the file below your home directory`,
	}

	launchFailedIssue = &Issue{
		id: LaunchFailedId,
		mdMsg: `
# SPSS exited with an error

The program started but returned a non-zero exit status.

## Things you can try:
- Re-run with ` + "`--verbose`" + ` to see the exact command
- Start the program from the Bottles UI to see its own error dialog
- Check the program name with ` + "`--program`" + ` or ` + "`SPSS_PROGRAM_NAME`",
	}

	configFileExistsIssue = &Issue{
		id: ConfigFileExistsId,
		mdMsg: `
# Configuration file already exists

` + "`--init-config`" + ` does not overwrite an existing file.

## Things you can try:
- Overwrite it:
~~~
$ spss-wrapper --init-config --force
~~~

- Edit the file by hand`,
	}

	issues = map[Id]*Issue{
		configFileUnreadableIssue.Id(): configFileUnreadableIssue,
		hostPathNotFoundIssue.Id():     hostPathNotFoundIssue,
		launcherMissingIssue.Id():      launcherMissingIssue,
		translationFailedIssue.Id():    translationFailedIssue,
		emptyTranslationIssue.Id():     emptyTranslationIssue,
		launchFailedIssue.Id():         launchFailedIssue,
		configFileExistsIssue.Id():     configFileExistsIssue,
	}
)

func Get(id Id) *Issue {
	return issues[id]
}
