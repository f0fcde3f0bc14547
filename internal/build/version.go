package build

// Set at link time, e.g.
//
//	go build -ldflags "-X github.com/rohmanhakim/weburl/internal/build.Version=1.0.0"
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// Info is a snapshot of the link-time build variables.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildTime string `json:"buildTime" yaml:"buildTime"`
}

func Current() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
	}
}

// FullVersion returns the version string with commit hash appended.
// Format: "Version+Commit" (e.g., "1.0.0+abc123")
func FullVersion() string {
	return Version + "+" + Commit
}

// ShortCommit returns the first 7 characters of the commit hash.
func ShortCommit() string {
	if len(Commit) <= 7 {
		return Commit
	}
	return Commit[:7]
}
