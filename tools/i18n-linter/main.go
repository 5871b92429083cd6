// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-linter checks the sshkeys locale files against the message IDs used
// in the Go sources. It fails when a locale misses an English ID or the code
// uses an ID no locale defines, and warns about IDs nothing uses.
//
// Usage (from the module root):
//
//	go run ./tools/i18n-linter
package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bobg/go-generics/v4/slices"
	"gopkg.in/yaml.v3"
)

const (
	localesDir    = "internal/i18n/locales"
	primaryLocale = "en.yaml"
)

// keyRe matches i18n.T("id") calls and bare literals shaped like message IDs.
// Only calls must resolve; literals (tables such as the error kind map) just
// keep an ID from being reported as orphaned.
var keyRe = regexp.MustCompile(`i18n\.T\("([^"]+)"|"([a-z]+\.[a-z_.]+)"`)

// report is the outcome of one lint run.
type report struct {
	Undefined []string            // used in code, absent from the primary locale
	Orphaned  []string            // in the primary locale, unused
	Missing   map[string][]string // locale file -> IDs it lacks
}

func (r report) failed() bool {
	return len(r.Undefined) > 0 || len(r.Missing) > 0
}

func main() {
	r, err := lint(".", localesDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "i18n-linter: %v\n", err)
		os.Exit(2)
	}
	printReport(os.Stdout, r)
	if r.failed() {
		os.Exit(1)
	}
}

func lint(root, locales string) (report, error) {
	r := report{Missing: map[string][]string{}}

	called, mentioned, err := findUsedKeys(root)
	if err != nil {
		return r, fmt.Errorf("scan sources: %w", err)
	}
	primary, err := loadKeysFromLocale(filepath.Join(locales, primaryLocale))
	if err != nil {
		return r, fmt.Errorf("load %s: %w", primaryLocale, err)
	}

	r.Undefined = slices.Filter(sortedKeys(called), func(k string) bool {
		_, ok := primary[k]
		return !ok
	})
	r.Orphaned = slices.Filter(sortedKeys(primary), func(k string) bool {
		_, c := called[k]
		_, m := mentioned[k]
		return !c && !m
	})

	files, err := filepath.Glob(filepath.Join(locales, "*.yaml"))
	if err != nil {
		return r, err
	}
	for _, f := range files {
		if filepath.Base(f) == primaryLocale {
			continue
		}
		keys, err := loadKeysFromLocale(f)
		if err != nil {
			return r, fmt.Errorf("load %s: %w", f, err)
		}
		missing := slices.Filter(sortedKeys(primary), func(k string) bool {
			_, ok := keys[k]
			return !ok
		})
		if len(missing) > 0 {
			r.Missing[filepath.Base(f)] = missing
		}
	}
	return r, nil
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func printReport(w io.Writer, r report) {
	section := func(title string, items []string) {
		fmt.Fprintf(w, "--- %s ---\n", title)
		if len(items) == 0 {
			fmt.Fprintln(w, "  none")
			return
		}
		fmt.Fprintln(w, strings.Join(slices.Map(items, func(it string) string { return "  - " + it }), "\n"))
	}
	section("Undefined IDs (used in code, not in "+primaryLocale+")", r.Undefined)
	section("Orphaned IDs (in "+primaryLocale+", unused)", r.Orphaned)

	names := make([]string, 0, len(r.Missing))
	for n := range r.Missing {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		section("Missing in "+n, r.Missing[n])
	}
}

// findUsedKeys scans non-test .go files below root, skipping tools and
// underscore or dot directories. It returns the IDs passed to i18n.T and the
// other ID-shaped literals separately.
func findUsedKeys(root string) (called, mentioned map[string]struct{}, err error) {
	called = make(map[string]struct{})
	mentioned = make(map[string]struct{})
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (name == "tools" || strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, m := range keyRe.FindAllStringSubmatch(string(content), -1) {
			if m[1] != "" {
				called[m[1]] = struct{}{}
			} else if m[2] != "" {
				mentioned[m[2]] = struct{}{}
			}
		}
		return nil
	})
	return called, mentioned, err
}

// loadKeysFromLocale reads a YAML file and returns a flat set of its keys.
func loadKeysFromLocale(path string) (map[string]struct{}, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, err
	}
	keys := make(map[string]struct{})
	flattenYAML("", data, keys)
	return keys, nil
}

// flattenYAML converts nested maps into dot-separated keys.
func flattenYAML(prefix string, node any, keys map[string]struct{}) {
	switch v := node.(type) {
	case map[string]any:
		for k, val := range v {
			p := k
			if prefix != "" {
				p = prefix + "." + k
			}
			flattenYAML(p, val, keys)
		}
	default:
		if prefix != "" {
			keys[prefix] = struct{}{}
		}
	}
}
