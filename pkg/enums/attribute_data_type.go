package enums

import (
	"fmt"
	"strings"
)

// AttributeDataType defines how a category attribute value is validated and decoded.
type AttributeDataType string

const (
	AttributeDataTypeString      AttributeDataType = "string"
	AttributeDataTypeNumber      AttributeDataType = "number"
	AttributeDataTypeSelect      AttributeDataType = "select"
	AttributeDataTypeMultiSelect AttributeDataType = "multi_select"
	AttributeDataTypeBoolean     AttributeDataType = "boolean"
)

var validAttributeDataTypes = []AttributeDataType{
	AttributeDataTypeString,
	AttributeDataTypeNumber,
	AttributeDataTypeSelect,
	AttributeDataTypeMultiSelect,
	AttributeDataTypeBoolean,
}

// String implements fmt.Stringer.
func (t AttributeDataType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known AttributeDataType.
func (t AttributeDataType) IsValid() bool {
	for _, candidate := range validAttributeDataTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseAttributeDataType converts raw input into an AttributeDataType.
// Matching is case-insensitive and tolerates the hyphenated spelling of
// multi_select used by older clients.
func ParseAttributeDataType(value string) (AttributeDataType, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "multiselect", "multi-select":
		normalized = string(AttributeDataTypeMultiSelect)
	}
	for _, candidate := range validAttributeDataTypes {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid attribute data type %q (valid: string, number, select, multi_select, boolean)", value)
}
