package constants

import "time"

const (
	Version        = `0.1.0`
	AppName        = `sidenotes`
	ConfigFile     = `config`
	ConfigFileType = `yaml`
	ConfigDir      = `.sidenotes-cli`
	EnvPrefix      = `SIDENOTES`

	// DefaultRootDir is created under the user's home directory when no
	// root folder is configured.
	DefaultRootDir = `.sidenotes`
	TrashDir       = `.trash`

	NoteExt      = `.md`
	HiddenPrefix = `.`

	SearchLimit    = 12
	SearchDebounce = 200 * time.Millisecond
	CoalesceWindow = 200 * time.Millisecond
)
