// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

package buildvars

import (
	"runtime/debug"
	"testing"
)

func withVars(t *testing.T, version, commit, date string) {
	t.Helper()
	ov, oc, od := Version, Commit, Date
	Version, Commit, Date = version, commit, date
	t.Cleanup(func() { Version, Commit, Date = ov, oc, od })
}

func TestResolve_MainVersion(t *testing.T) {
	withVars(t, "", "", "")
	info := &debug.BuildInfo{Main: debug.Module{Path: modulePath, Version: "v1.2.3"}}
	got := Resolve(info)
	if got.Version != "v1.2.3" || got.Commit != "dev" || got.Date != "" {
		t.Fatalf("unexpected %+v", got)
	}
}

func TestResolve_DependencyFallback(t *testing.T) {
	withVars(t, "", "", "")
	info := &debug.BuildInfo{
		Main: debug.Module{Path: "example.com/tool", Version: "(devel)"},
		Deps: []*debug.Module{{Path: modulePath, Version: "v0.4.1"}},
	}
	if got := Resolve(info); got.Version != "v0.4.1" {
		t.Fatalf("expected dependency version fallback, got %s", got.Version)
	}
}

func TestResolve_CommitFallback(t *testing.T) {
	withVars(t, "", "deadbeef", "")
	info := &debug.BuildInfo{Main: debug.Module{Path: modulePath, Version: "(devel)"}}
	got := Resolve(info)
	if got.Version != "deadbeef" {
		t.Fatalf("expected commit fallback, got %s", got.Version)
	}
	if got.String() != "deadbeef" {
		t.Fatalf("commit repeated in %q", got.String())
	}
}

func TestResolve_VCSSettings(t *testing.T) {
	withVars(t, "", "", "")
	info := &debug.BuildInfo{
		Main: debug.Module{Path: modulePath, Version: "v1.0.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	}
	got := Resolve(info)
	if got.Commit != "abc123" || got.Date != "2026-01-02T03:04:05Z" {
		t.Fatalf("vcs settings not applied: %+v", got)
	}
	if got.String() != "v1.0.0 (abc123) built: 2026-01-02T03:04:05Z" {
		t.Fatalf("unexpected string %q", got.String())
	}
}

func TestResolve_LinkerVariablesWin(t *testing.T) {
	withVars(t, "v9.9.9", "cafe", "today")
	info := &debug.BuildInfo{
		Main:     debug.Module{Path: modulePath, Version: "v1.0.0"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}},
	}
	got := Resolve(info)
	if got != (Info{Version: "v9.9.9", Commit: "cafe", Date: "today"}) {
		t.Fatalf("linker values not preferred: %+v", got)
	}
	if VersionOrDefault("x") != "v9.9.9" {
		t.Fatalf("VersionOrDefault ignored Version")
	}
}
