package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxIDLength bounds node ids and type tags; both end up in generated code
// and host document names.
const maxIDLength = 128

// typeTagRegex matches registry type tags such as "stat-card" or "line-chart".
var typeTagRegex = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

// ValidateTypeTag validates a component type tag.
// Tags are lowercase, dash-separated words ("bar-chart", "data-table").
func ValidateTypeTag(tag string) error {
	if tag == "" {
		return New(ErrCodeInvalidInput, "component type cannot be empty")
	}
	if len(tag) > maxIDLength {
		return New(ErrCodeInvalidInput, "component type too long (max %d characters)", maxIDLength)
	}
	if !typeTagRegex.MatchString(tag) {
		return New(ErrCodeInvalidInput, "invalid component type: %q", tag)
	}
	return nil
}

// ValidateNodeID validates a node identifier.
//
// The validation rules are intentionally conservative:
//   - No empty ids
//   - No control characters or whitespace
//   - No quotes, angle brackets or braces (ids are written into generated code)
//   - Maximum length of 128 characters
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidTree, "node id cannot be empty")
	}
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidTree, "node id too long (max %d characters)", maxIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidTree, "node id %q contains whitespace or control characters", id)
		}
	}
	if strings.ContainsAny(id, `"'<>{}`) {
		return New(ErrCodeInvalidTree, "node id %q contains reserved characters", id)
	}
	return nil
}

// ValidateFilename validates an output filename for safety.
// It ensures the filename is a simple basename without path components.
func ValidateFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidPath, "filename cannot be empty")
	}
	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidPath, "filename cannot contain path separators")
	}
	if strings.Contains(filename, "..") {
		return New(ErrCodeInvalidPath, "filename cannot contain path traversal sequences (..)")
	}
	for _, r := range filename {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "filename contains invalid characters")
		}
	}
	return nil
}

// hexColorRegex matches #rgb and #rrggbb colors.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateColor validates a hex color such as "#3b82f6".
func ValidateColor(color string) error {
	if !hexColorRegex.MatchString(color) {
		return New(ErrCodeInvalidColor, "invalid color %q (expected #rgb or #rrggbb)", color)
	}
	return nil
}
