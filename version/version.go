// Package version exposes build metadata for the taskflow binary.
//
// Values are stamped at link time:
//
//	go build -ldflags "-X github.com/kbukum/taskflow/version.Version=1.2.0 -X github.com/kbukum/taskflow/version.GitCommit=$(git rev-parse --short HEAD)"
//
// Anything left unset falls back to the module's embedded VCS settings.
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

// Set at build time using -ldflags.
var (
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

// Info describes the running build.
type Info struct {
	Version   string    `json:"version"`
	GitCommit string    `json:"git_commit,omitempty"`
	GoVersion string    `json:"go_version"`
	BuildDate time.Time `json:"build_date,omitzero"`
	IsDirty   bool      `json:"is_dirty"`
}

var readBuildInfo = debug.ReadBuildInfo

// Get collects the build metadata.
func Get() Info {
	info := Info{Version: Version, GitCommit: GitCommit}
	if t, err := time.Parse(time.RFC3339, BuildTime); err == nil {
		info.BuildDate = t
	}

	bi, ok := readBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "" {
				info.GitCommit = shortCommit(s.Value)
			}
		case "vcs.modified":
			info.IsDirty = s.Value == "true"
		case "vcs.time":
			if info.BuildDate.IsZero() {
				if t, err := time.Parse(time.RFC3339, s.Value); err == nil {
					info.BuildDate = t
				}
			}
		}
	}
	return info
}

// IsRelease reports whether the build carries a real, clean version.
func (i Info) IsRelease() bool {
	return i.Version != "dev" && !i.IsDirty && !strings.Contains(i.Version, "dirty")
}

// Short returns "version[-commit][-dirty]".
func (i Info) Short() string {
	s := i.Version
	if i.GitCommit != "" {
		s += "-" + i.GitCommit
	}
	if i.IsDirty {
		s += "-dirty"
	}
	return s
}

// String returns the short version followed by the build date when known.
func (i Info) String() string {
	if i.BuildDate.IsZero() {
		return i.Short()
	}
	return fmt.Sprintf("%s (built %s)", i.Short(), i.BuildDate.UTC().Format(time.RFC3339))
}

// Fields returns the build metadata as structured log fields.
func (i Info) Fields() map[string]interface{} {
	return map[string]interface{}{
		"version":    i.Version,
		"git_commit": i.GitCommit,
		"go_version": i.GoVersion,
		"dirty":      i.IsDirty,
	}
}

// UserAgent returns the User-Agent sent on outbound requests.
func UserAgent(product string) string {
	return product + "/" + Version
}

func shortCommit(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}
