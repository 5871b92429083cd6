// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

package fingerprint

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/toeirei/sshkeys/core/keyerr"
)

// publicBlob decodes the key data of an OpenSSH public key file shared with
// the sshkey package tests.
func publicBlob(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "sshkey", "testdata", name+".pub"))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	fields := strings.Fields(string(data))
	blob, err := base64.StdEncoding.DecodeString(fields[1])
	if err != nil {
		t.Fatalf("decode %s: %v", name, err)
	}
	return blob
}

func golden(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read golden %s: %v", name, err)
	}
	return strings.TrimSuffix(string(data), "\n")
}

func TestFingerprintStringsMatchSSHKeygen(t *testing.T) {
	cases := []struct {
		key  string
		kind HashKind
		want string
	}{
		{"ed25519", MD5, "MD5:84:09:17:cf:ba:a3:b3:ea:76:6e:3c:bd:60:ed:12:ed"},
		{"ed25519", SHA256, "SHA256:PiFKjpkxcsBpiOSeSzIjK8Fq6svZkKibPujAWQmxjho"},
		{"rsa", MD5, "MD5:fa:43:c4:fb:be:91:20:4b:1e:f3:53:ef:82:23:30:b3"},
		{"rsa", SHA256, "SHA256:9SmHZyNxJ5Jas3N+NPuYeFvwq/JIWTq4TIUBUkOD/2k"},
		{"dsa", SHA256, "SHA256:lD2agBBCVA4C1sQSchVrnied7x1GGnv07UHd4Hs3xDI"},
		{"ecdsa256", MD5, "MD5:a6:65:1a:ad:02:22:6e:5e:4f:7d:16:d6:75:99:31:7e"},
		{"ecdsa384", SHA256, "SHA256:HrBUlQvn5OpSOvCrkOUVkOH9dHin5B/IMMo4vGw7HDU"},
		{"ecdsa521", SHA512, "SHA512:Rmw8hVbuMb7K6i/nM152T+gwwxjp6qOIWDk6C67nZnvawKImVjZD0+MoKO6UpT3KZxVevd0otEemXoZaHJzQ2w"},
	}
	for _, c := range cases {
		d, err := Compute(publicBlob(t, c.key), c.kind)
		if err != nil {
			t.Fatalf("%s/%v: %v", c.key, c.kind, err)
		}
		if got := d.String(); got != c.want {
			t.Fatalf("%s/%v: got %s, want %s", c.key, c.kind, got, c.want)
		}
	}
}

func TestRandomArtMatchesSSHKeygen(t *testing.T) {
	cases := []struct {
		key     string
		kind    HashKind
		keyType string
		bits    int
		golden  string
	}{
		{"ed25519", MD5, "ED25519", 256, "ed25519_md5.art"},
		{"ed25519", SHA256, "ED25519", 256, "ed25519_sha256.art"},
		{"rsa", SHA256, "RSA", 2048, "rsa_sha256.art"},
		{"ecdsa521", SHA512, "ECDSA", 521, "ecdsa521_sha512.art"},
		{"dsa", MD5, "DSA", 1024, "dsa_md5.art"},
	}
	for _, c := range cases {
		d, err := Compute(publicBlob(t, c.key), c.kind)
		if err != nil {
			t.Fatalf("%s: %v", c.golden, err)
		}
		want := golden(t, c.golden)
		if got := d.Art(c.keyType, c.bits); got != want {
			t.Fatalf("%s mismatch:\n%s\nwant:\n%s", c.golden, got, want)
		}
	}
}

func TestRandomArtShape(t *testing.T) {
	art := NewRandomArt(make([]byte, 16))
	lines := strings.Split(art.Render("[T]", "H"), "\n")
	if len(lines) != Height+2 {
		t.Fatalf("got %d lines", len(lines))
	}
	for _, l := range lines {
		if len(l) != Width+2 {
			t.Fatalf("line %q has width %d", l, len(l))
		}
	}
	// All-zero input walks up-left into the corner and stays there.
	if x, y := art.End(); x != 0 || y != 0 {
		t.Fatalf("end = (%d,%d), want (0,0)", x, y)
	}
	if art.Count(Width/2, Height/2) != markStart || art.Count(0, 0) != markEnd {
		t.Fatalf("start/end markers not set")
	}
}

func TestRandomArtVisitCap(t *testing.T) {
	// 0x99 steps up-right and back to the start, twice per byte.
	art := NewRandomArt([]byte{0x99, 0x99, 0x99, 0x99, 0x99, 0x99, 0x99, 0x99, 0x99, 0x99})
	if got := art.Count(Width/2+1, Height/2-1); got != maxVisits {
		t.Fatalf("count = %d, want capped at %d", got, maxVisits)
	}
}

func TestTitleFallsBackWhenTooLong(t *testing.T) {
	if got := Title("ED25519", 256); got != "[ED25519 256]" {
		t.Fatalf("Title = %q", got)
	}
	if got := Title("ECDSA-SK-CERT", 256); got != "[ECDSA-SK-CERT]" {
		t.Fatalf("Title = %q", got)
	}
	top := strings.SplitN(NewRandomArt(nil).Render("[ABCDEFGHIJKLMNOPQRSTU]", ""), "\n", 2)[0]
	if len(top) != Width+2 {
		t.Fatalf("long title not truncated: %q", top)
	}
}

func TestParseHashKind(t *testing.T) {
	for in, want := range map[string]HashKind{"md5": MD5, "SHA256": SHA256, "sha512": SHA512, "": SHA256} {
		got, err := ParseHashKind(in)
		if err != nil || got != want {
			t.Fatalf("ParseHashKind(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseHashKind("sha1"); keyerr.KindOf(err) != keyerr.InvalidArgument {
		t.Fatalf("sha1: %v", err)
	}
	if _, err := Compute(nil, HashKind(42)); keyerr.KindOf(err) != keyerr.InvalidArgument {
		t.Fatalf("unknown kind: %v", err)
	}
}

func TestFingerprintDeterministic(t *testing.T) {
	blob := publicBlob(t, "ecdsa256")
	a, _ := Compute(blob, SHA256)
	b, _ := Compute(blob, SHA256)
	if a.String() != b.String() || a.Art("ECDSA", 256) != b.Art("ECDSA", 256) {
		t.Fatalf("fingerprint not deterministic")
	}
}
