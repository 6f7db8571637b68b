// Package naming derives output filenames for downloaded images.
//
// Source URLs are not guaranteed to end in a conventional filename
// (API endpoints with trailing slashes, opaque IDs), so resolution runs
// through an ordered list of fallback strategies. URL-derived names are
// preferred to avoid collisions between records that share an input
// file name prefix but point at distinct media.
package naming

import (
	"fmt"
	"net/url"
	"strings"
)

// WarnFunc receives human-readable warnings about fallback decisions.
// Where the message surfaces depends on the active display mode.
type WarnFunc func(format string, args ...any)

// A strategy attempts to derive an output filename; ok reports whether
// it produced one.
type strategy func(rawURL, fallbackStem string, warn WarnFunc) (name string, ok bool)

// Resolve picks the filename a downloaded image is saved under.
// Strategies run in order and the first match wins. The only error case
// is an empty fallback stem when no URL-based strategy matched.
func Resolve(rawURL, fallbackStem string, warn WarnFunc) (string, error) {
	for _, s := range []strategy{lastPathSegment, stemWithPNGExt} {
		if name, ok := s(rawURL, fallbackStem, warn); ok {
			return name, nil
		}
	}
	return "", fmt.Errorf("could not get a valid file stem as fallback for URL %s", rawURL)
}

// lastPathSegment returns the final non-empty path segment of the URL
// verbatim, including whatever extension it carries. Query strings
// never leak into the name because they are not part of the path.
func lastPathSegment(rawURL, _ string, warn WarnFunc) (string, bool) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		warn("Failed to parse screenshot URL '%s' for filename extraction: %v. Using JSON-derived name.", rawURL, err)
		return "", false
	}

	segments := strings.Split(parsed.Path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i], true
		}
	}

	warn("Could not determine filename from URL path segments: %s. Using JSON-derived name.", rawURL)
	return "", false
}

// stemWithPNGExt names the image after the input file's stem.
func stemWithPNGExt(_, fallbackStem string, _ WarnFunc) (string, bool) {
	if fallbackStem == "" {
		return "", false
	}
	return fallbackStem + ".png", true
}
