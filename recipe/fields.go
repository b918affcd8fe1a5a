package recipe

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// durationRe recognises only the hour and minute parts of an ISO-8601
// duration. Days and seconds are ignored; a value with neither H nor M does
// not parse.
var durationRe = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?`)

// leadingIntRe mirrors a lenient integer read: optional whitespace and sign,
// then digits. Everything after the digits is ignored ("4 servings" -> 4).
var leadingIntRe = regexp.MustCompile(`^\s*([+-]?\d+)`)

// parseDuration converts "PT1H30M" style strings to whole minutes.
// Returns nil when v is absent, not a string, or does not match.
func parseDuration(v any) *int {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	m := durationRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil || (m[1] == "" && m[2] == "") {
		return nil
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	total := hours*60 + minutes
	return &total
}

// parseServings reads an integer from recipeYield. Arrays use their first
// entry. Zero and unparseable values yield nil.
func parseServings(v any) *int {
	var n int
	switch y := v.(type) {
	case float64:
		if math.IsNaN(y) || math.IsInf(y, 0) {
			return nil
		}
		n = int(y)
	case string:
		m := leadingIntRe.FindStringSubmatch(y)
		if m == nil {
			return nil
		}
		parsed, err := strconv.Atoi(m[1])
		if err != nil {
			return nil
		}
		n = parsed
	case []any:
		if len(y) == 0 {
			return nil
		}
		return parseServings(y[0])
	default:
		return nil
	}
	if n == 0 {
		return nil
	}
	return &n
}

// parseImage returns image.url for an ImageObject, the value itself for a
// string, and the first usable entry for an array.
func parseImage(v any) string {
	switch img := v.(type) {
	case string:
		return img
	case map[string]any:
		if u, ok := img["url"].(string); ok {
			return u
		}
	case []any:
		if len(img) > 0 {
			return parseImage(img[0])
		}
	}
	return ""
}
