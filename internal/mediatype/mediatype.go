package mediatype

import "github.com/gabriel-vasile/mimetype"

// Fallback is the media type used when no known signature matches.
const Fallback = "application/octet-stream"

// Detect classifies content by its magic-number prefix, never by HTTP
// headers (those are not retained past the fetch). Unrecognized content
// comes back as Fallback. Never fails.
func Detect(data []byte) string {
	return mimetype.Detect(data).String()
}
