package catalog

import (
	"regexp"
	"strings"
)

// Some upstream product feeds serialize a missing slug as the literal
// string "undefined"; treat it the same as an absent slug.
const brokenSlug = "undefined"

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9 -]+`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// DeriveSlug resolves the URL slug for a product detail page. Resolution
// order: the stored slug, then the legacy handle, then a slug derived from
// the product name. An empty result means no usable slug exists and the
// caller must suppress the detail link instead of building a broken URL.
func DeriveSlug(slug, handle, name string) string {
	if slug != "" && slug != brokenSlug {
		return slug
	}
	if handle != "" {
		return handle
	}
	return Slugify(name)
}

// Slugify turns a display name into a URL-safe slug: lowercase, drop
// anything that is not alphanumeric, space, or hyphen, then collapse
// whitespace runs into single hyphens. An empty or unusable name yields "".
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonSlugChars.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(strings.TrimSpace(s), "-")
	return s
}
