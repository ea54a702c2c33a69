// Package options implements the read-only string map used to carry
// encoder options and container metadata through the conversion core.
package options

import (
	"strconv"
	"strings"

	"github.com/ideamans/ugoira2mp4/pkg/ugoiraerr"
)

// Map is a case-sensitive string-to-string map. It is built once before
// conversion begins and never mutated afterward.
type Map map[string]string

// Get returns the value for key and whether it was present.
func (m Map) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// ForceYUV420P reports whether the force_yuv420p key is present with any
// value.
func (m Map) ForceYUV420P() bool {
	_, ok := m["force_yuv420p"]
	return ok
}

// CRF returns the configured CRF, defaulting to 18, validated to lie in
// [0, 51].
func (m Map) CRF() (int, error) {
	v, ok := m["crf"]
	if !ok {
		return 18, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 || n > 51 {
		return 0, ugoiraerr.Newf(ugoiraerr.InvalidCRF, "crf must be an integer in [0, 51], got %q", v)
	}
	return n, nil
}

// Preset returns the configured libx264 preset, defaulting to "slow".
func (m Map) Preset() string {
	if v, ok := m["preset"]; ok && v != "" {
		return v
	}
	return "slow"
}

// Level returns the configured libx264 level and whether it was set.
func (m Map) Level() (string, bool) {
	v, ok := m["level"]
	return v, ok && v != ""
}

// Profile returns the configured libx264 profile and whether it was set.
func (m Map) Profile() (string, bool) {
	v, ok := m["profile"]
	return v, ok && v != ""
}

// ParseMeta parses a "KEY=VALUE" command-line argument into the metadata
// map, mutating dst. Used by the CLI front end for repeatable -m flags.
func ParseMeta(dst Map, kv string) error {
	i := strings.IndexByte(kv, '=')
	if i < 0 {
		return ugoiraerr.Newf(ugoiraerr.NullPointer, "metadata entry %q is not in KEY=VALUE form", kv)
	}
	key := kv[:i]
	if key == "" {
		return ugoiraerr.Newf(ugoiraerr.NullPointer, "metadata entry %q has an empty key", kv)
	}
	dst[key] = kv[i+1:]
	return nil
}
