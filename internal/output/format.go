package output

import "strings"

// Format specifies the descriptor serialization format.
type Format string

const (
	// FormatYAML writes the descriptor as YAML.
	FormatYAML Format = "yaml"

	// FormatJSON writes the descriptor as JSON.
	FormatJSON Format = "json"
)

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// Ext returns the file extension for the format, with a leading dot.
func (f Format) Ext() string {
	if f == FormatJSON {
		return ".json"
	}
	return ".yaml"
}

// IsValid checks if the format is a known descriptor format.
func (f Format) IsValid() bool {
	switch f {
	case FormatYAML, FormatJSON:
		return true
	default:
		return false
	}
}

// ParseFormat parses a string into a Format.
// Returns FormatYAML if the string is empty or unknown.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON
	case "yaml", "yml":
		return FormatYAML
	default:
		return FormatYAML
	}
}

// ValidFormats returns the valid descriptor format strings.
func ValidFormats() []string {
	return []string{"yaml", "json"}
}
