package version

import (
	"fmt"
	"runtime"
)

var (
	// Tag and GitCommit are set at build time with -ldflags "-X".
	Tag       = "v0.0.0-dev"
	GitCommit = "HEAD"
)

type Version struct {
	Tag       string `json:"tag,omitempty"`
	GitCommit string `json:"gitCommit,omitempty"`
	GoVersion string `json:"goVersion,omitempty"`
}

func (v Version) String() string {
	return fmt.Sprintf("%s (%s)", v.Tag, v.GitCommit)
}

func Get() Version {
	return Version{
		Tag:       Tag,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
	}
}
