package cli

import (
	"fmt"
	"runtime"
)

// VersionInfo contains version information
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

func currentVersionInfo() VersionInfo {
	return VersionInfo{
		Version:   Version,
		GoVersion: runtime.Version(),
		Commit:    GitCommit,
		BuildDate: BuildDate,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// versionTemplate renders the output of --version.
func versionTemplate() string {
	info := currentVersionInfo()
	return fmt.Sprintf("shaderpp version %s\nBuilt with: %s\nCommit: %s\nBuild date: %s\nOS/Arch: %s/%s\n",
		info.Version, info.GoVersion, info.Commit, info.BuildDate, info.OS, info.Arch)
}
