package utils

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/bytedance/sonic"

	"github.com/nounsos/desktop/backend/internal/shared/types"
)

// Size limits (in bytes)
const (
	MaxMetadataSize = 16 * 1024 // 16KB - panel metadata payload
	MaxMessageSize  = 64 * 1024 // 64KB - single websocket message
)

// Limits for request fields
const (
	MaxIDLength       = 128
	MaxNameLength     = 256
	MaxMetadataDepth  = 8
	MaxViewportPixels = 16384
	MaxDimensionValue = 100000
)

// SafeIDPattern allows alphanumeric, hyphens, underscores
var SafeIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateString validates a string field with length and content checks
func ValidateString(value, fieldName string, minLen, maxLen int, required bool) error {
	if required && value == "" {
		return fmt.Errorf("%s is required", fieldName)
	}

	if value == "" && !required {
		return nil
	}

	length := utf8.RuneCountInString(value)
	if length < minLen {
		return fmt.Errorf("%s must be at least %d characters", fieldName, minLen)
	}
	if length > maxLen {
		return fmt.Errorf("%s must not exceed %d characters", fieldName, maxLen)
	}

	if strings.Contains(value, "\x00") {
		return fmt.Errorf("%s contains invalid characters", fieldName)
	}

	return nil
}

// ValidateID validates a panel, app, process or layout id
func ValidateID(id, fieldName string, required bool) error {
	if err := ValidateString(id, fieldName, 1, MaxIDLength, required); err != nil {
		return err
	}

	if id != "" && !SafeIDPattern.MatchString(id) {
		return fmt.Errorf("%s contains invalid characters (only alphanumeric, hyphens, and underscores allowed)", fieldName)
	}

	return nil
}

// ValidateName validates a layout name
func ValidateName(name, fieldName string) error {
	return ValidateString(name, fieldName, 1, MaxNameLength, false)
}

// ValidateMetadata bounds the encoded size and nesting of panel metadata
func ValidateMetadata(metadata map[string]interface{}) error {
	if metadata == nil {
		return nil
	}

	data, err := sonic.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("metadata is not serializable: %w", err)
	}
	if len(data) > MaxMetadataSize {
		return fmt.Errorf("metadata size %d bytes exceeds maximum %d bytes", len(data), MaxMetadataSize)
	}

	return checkDepth(metadata, 0, MaxMetadataDepth)
}

func checkDepth(data interface{}, currentDepth int, maxDepth int) error {
	if currentDepth > maxDepth {
		return fmt.Errorf("metadata nesting depth %d exceeds maximum %d", currentDepth, maxDepth)
	}

	switch v := data.(type) {
	case map[string]interface{}:
		for _, value := range v {
			if err := checkDepth(value, currentDepth+1, maxDepth); err != nil {
				return err
			}
		}
	case []interface{}:
		for _, value := range v {
			if err := checkDepth(value, currentDepth+1, maxDepth); err != nil {
				return err
			}
		}
	}

	return nil
}

// ValidateDimension checks a single width or height
func ValidateDimension(d types.Dimension, fieldName string) error {
	if d.Unit != types.UnitPx && d.Unit != types.UnitRem {
		return fmt.Errorf("%s has unknown unit %q", fieldName, d.Unit)
	}
	if math.IsNaN(d.Value) || math.IsInf(d.Value, 0) || d.Value < 0 || d.Value > MaxDimensionValue {
		return fmt.Errorf("%s must be between 0 and %d", fieldName, MaxDimensionValue)
	}
	return nil
}

// ValidateSize checks both axes of a requested size
func ValidateSize(s types.Size) error {
	if err := ValidateDimension(s.Width, "width"); err != nil {
		return err
	}
	return ValidateDimension(s.Height, "height")
}

// ValidateViewport checks client-reported viewport metrics
func ValidateViewport(width, height int, rootFontSize float64) error {
	if width <= 0 || width > MaxViewportPixels || height <= 0 || height > MaxViewportPixels {
		return fmt.Errorf("viewport %dx%d out of range", width, height)
	}
	if rootFontSize < 0 || rootFontSize > 256 || math.IsNaN(rootFontSize) {
		return fmt.Errorf("root font size %v out of range", rootFontSize)
	}
	return nil
}
