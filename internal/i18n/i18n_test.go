// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

package i18n

import (
	"io/fs"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestInitAndAvailableLocales(t *testing.T) {
	Init("en")
	if GetLang() != "en" {
		t.Fatalf("expected lang 'en', got %q", GetLang())
	}
	av := GetAvailableLocales()
	for _, k := range []string{"en", "de"} {
		if _, ok := av[k]; !ok {
			t.Fatalf("expected available locale %q to be present", k)
		}
	}
	if av["de"] != "Deutsch" {
		t.Fatalf("unexpected display name for de: %q", av["de"])
	}
}

func TestUnknownLanguageFallsBack(t *testing.T) {
	Init("xx")
	if GetLang() != "en" {
		t.Fatalf("expected fallback to en, got %q", GetLang())
	}
	if got := T("inspect.yes"); got != "yes" {
		t.Fatalf("expected English text, got %q", got)
	}
}

func TestT_BasicAndFormatting(t *testing.T) {
	Init("en")
	if got := T("inspect.fingerprint"); got != "Fingerprint" {
		t.Fatalf("expected 'Fingerprint', got %q", got)
	}
	if got := T("config.written", "/tmp/x.yaml"); got != "Configuration written to /tmp/x.yaml" {
		t.Fatalf("unexpected formatted translation: %q", got)
	}

	SetLang("de")
	defer SetLang("en")
	if GetLang() != "de" {
		t.Fatalf("expected lang 'de', got %q", GetLang())
	}
	if got := T("inspect.yes"); got != "ja" {
		t.Fatalf("expected German 'ja', got %q", got)
	}
}

func TestT_UnknownIDReturnsID(t *testing.T) {
	Init("en")
	if got := T("does.not.exist"); got != "does.not.exist" {
		t.Fatalf("expected ID back, got %q", got)
	}
}

func TestT_TemplateData(t *testing.T) {
	Init("en")
	// Plain messages ignore template data.
	if got := T("inspect.no", map[string]any{"X": 1}); got != "no" {
		t.Fatalf("unexpected %q", got)
	}
}

// Every locale must define the same message IDs as English.
func TestLocalesComplete(t *testing.T) {
	load := func(name string) map[string]string {
		data, err := fs.ReadFile(localeFS, "locales/"+name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		m := map[string]string{}
		if err := yaml.Unmarshal(data, &m); err != nil {
			t.Fatalf("parse %s: %v", name, err)
		}
		return m
	}
	en := load("en.yaml")
	for tag := range GetAvailableLocales() {
		if tag == "en" {
			continue
		}
		other := load(tag + ".yaml")
		for id, text := range en {
			got, ok := other[id]
			if !ok {
				t.Fatalf("%s is missing %q", tag, id)
			}
			if strings.Count(got, "%") != strings.Count(text, "%") {
				t.Fatalf("%s: %q has different format verbs", tag, id)
			}
		}
	}
}
