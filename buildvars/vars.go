// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

// Package buildvars contains variables injected at build time.
package buildvars

import "runtime/debug"

const modulePath = "github.com/toeirei/sshkeys"

// Set at link time via `-ldflags -X github.com/toeirei/sshkeys/buildvars.Version=...`.
// They are empty for local or development builds.
var (
	Version string
	Commit  string
	Date    string
)

// VersionOrDefault returns `Version` if set, otherwise returns the provided default.
func VersionOrDefault(def string) string {
	if len(Version) > 0 {
		return Version
	}
	return def
}

// Info is the resolved build identity of the running binary.
type Info struct {
	Version string `yaml:"version"`
	Commit  string `yaml:"commit"`
	Date    string `yaml:"built,omitempty"`
}

func (i Info) String() string {
	s := i.Version
	if i.Commit != "" && i.Commit != "dev" && i.Commit != i.Version {
		s += " (" + i.Commit + ")"
	}
	if i.Date != "" {
		s += " built: " + i.Date
	}
	return s
}

// Resolve combines the linker variables with the module build info. A nil
// info reads the build info of the running binary.
func Resolve(info *debug.BuildInfo) Info {
	out := Info{Version: VersionOrDefault("dev"), Commit: Commit, Date: Date}
	if out.Commit == "" {
		out.Commit = "dev"
	}

	if info == nil {
		if bi, ok := debug.ReadBuildInfo(); ok {
			info = bi
		}
	}
	if info != nil {
		if Version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			out.Version = info.Main.Version
		}
		// Used as a library the module shows up as a dependency instead.
		if out.Version == "dev" {
			for _, dep := range info.Deps {
				if dep.Path == modulePath && dep.Version != "" {
					out.Version = dep.Version
					break
				}
			}
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if s.Value != "" && Commit == "" {
					out.Commit = s.Value
				}
			case "vcs.time":
				if s.Value != "" && Date == "" {
					out.Date = s.Value
				}
			}
		}
	}

	if out.Version == "dev" && out.Commit != "dev" {
		out.Version = out.Commit
	}
	return out
}
