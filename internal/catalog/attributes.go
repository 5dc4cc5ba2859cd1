package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/weaponlions/ecommerce-server/pkg/db"
	"github.com/weaponlions/ecommerce-server/pkg/db/models"
	"github.com/weaponlions/ecommerce-server/pkg/enums"
	pkgerrors "github.com/weaponlions/ecommerce-server/pkg/errors"
)

// AttributeValue is one stored value joined with its definition, ready for a
// product detail payload. Value carries the decoded shape the data type
// promises, not the stored string.
type AttributeValue struct {
	Name     string                  `json:"name"`
	Label    string                  `json:"label"`
	DataType enums.AttributeDataType `json:"data_type"`
	Value    any                     `json:"value"`
}

// valueStore validates and persists per-product attribute values against the
// owning category's schema.
type valueStore struct {
	repo *Repository
}

// SaveValues validates the supplied name→value map against the category's
// attribute definitions and replaces the product's stored values wholesale.
// Values for names the category does not define are silently dropped.
func (s *valueStore) SaveValues(ctx context.Context, productID, categoryID uuid.UUID, values map[string]string) error {
	attrs, err := s.repo.ListAttributesForCategory(ctx, categoryID)
	if err != nil {
		return db.Classify(err, "loading category attributes")
	}

	normalized := make(map[string]string, len(values))
	for name, value := range values {
		normalized[strings.ToLower(strings.TrimSpace(name))] = value
	}

	rows := make([]models.ProductAttributeValue, 0, len(attrs))
	for _, attr := range attrs {
		raw, supplied := normalized[attr.Name]
		if !supplied || strings.TrimSpace(raw) == "" {
			if attr.IsRequired {
				return pkgerrors.New(pkgerrors.CodeValidation,
					fmt.Sprintf("attribute %q is required", attr.Name)).
					WithDetails(map[string]any{"attribute": attr.Name})
			}
			continue
		}
		encoded, err := validateValue(attr, raw)
		if err != nil {
			return err
		}
		rows = append(rows, models.ProductAttributeValue{
			ID:                  uuid.New(),
			ProductID:           productID,
			CategoryAttributeID: attr.ID,
			Value:               encoded,
		})
	}

	if err := s.repo.ReplaceValues(ctx, productID, rows); err != nil {
		return db.Classify(err, "replacing attribute values")
	}
	return nil
}

// ClearValues drops every stored value for the product.
func (s *valueStore) ClearValues(ctx context.Context, productID uuid.UUID) error {
	if err := s.repo.ReplaceValues(ctx, productID, nil); err != nil {
		return db.Classify(err, "clearing attribute values")
	}
	return nil
}

// GetValues returns the product's stored values with their definitions.
func (s *valueStore) GetValues(ctx context.Context, productID uuid.UUID) ([]AttributeValue, error) {
	rows, err := s.repo.ListValuesForProduct(ctx, productID)
	if err != nil {
		return nil, db.Classify(err, "loading attribute values")
	}
	out := make([]AttributeValue, 0, len(rows))
	for _, row := range rows {
		out = append(out, AttributeValue{
			Name:     row.CategoryAttribute.Name,
			Label:    row.CategoryAttribute.Label,
			DataType: row.CategoryAttribute.DataType,
			Value:    decodeValue(row.CategoryAttribute.DataType, row.Value),
		})
	}
	return out, nil
}

// decodeValue converts a stored string into the shape its declared type
// promises: numbers as decimals, booleans as bools, multi-selects as string
// arrays. A value that does not parse falls back to the raw string.
func decodeValue(dataType enums.AttributeDataType, raw string) any {
	switch dataType {
	case enums.AttributeDataTypeNumber:
		if n, err := decimal.NewFromString(raw); err == nil {
			return n
		}
		return raw
	case enums.AttributeDataTypeBoolean:
		return strings.EqualFold(raw, "true")
	case enums.AttributeDataTypeMultiSelect:
		if entries := decodeMultiValue(raw); entries != nil {
			return entries
		}
		return raw
	default:
		return raw
	}
}

func validateValue(attr models.CategoryAttribute, raw string) (string, error) {
	raw = strings.TrimSpace(raw)

	switch attr.DataType {
	case enums.AttributeDataTypeString:
		return raw, nil

	case enums.AttributeDataTypeNumber:
		if _, err := decimal.NewFromString(raw); err != nil {
			return "", pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("attribute %q expects a number", attr.Name)).
				WithDetails(map[string]any{"attribute": attr.Name, "value": raw})
		}
		return raw, nil

	case enums.AttributeDataTypeBoolean:
		lowered := strings.ToLower(raw)
		if lowered != "true" && lowered != "false" {
			return "", pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("attribute %q expects true or false", attr.Name)).
				WithDetails(map[string]any{"attribute": attr.Name, "value": raw})
		}
		return lowered, nil

	case enums.AttributeDataTypeSelect:
		if len(attr.Options) == 0 {
			return raw, nil
		}
		for _, option := range attr.Options {
			if strings.EqualFold(option, raw) {
				return option, nil
			}
		}
		return "", pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("attribute %q must be one of its options", attr.Name)).
			WithDetails(map[string]any{"attribute": attr.Name, "allowed": []string(attr.Options)})

	case enums.AttributeDataTypeMultiSelect:
		var entries []string
		if err := json.Unmarshal([]byte(raw), &entries); err != nil {
			return "", pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("attribute %q expects a JSON array of strings", attr.Name)).
				WithDetails(map[string]any{"attribute": attr.Name, "value": raw})
		}
		canonical := make([]string, 0, len(entries))
		var invalid []string
		for _, entry := range entries {
			matched := false
			for _, option := range attr.Options {
				if strings.EqualFold(option, entry) {
					canonical = append(canonical, option)
					matched = true
					break
				}
			}
			if !matched {
				invalid = append(invalid, entry)
			}
		}
		if len(invalid) > 0 {
			return "", pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("attribute %q has entries outside its options", attr.Name)).
				WithDetails(map[string]any{"attribute": attr.Name, "invalid": invalid})
		}
		encoded, err := json.Marshal(canonical)
		if err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding multi-select value")
		}
		return string(encoded), nil

	default:
		return "", pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("attribute %q has an unknown data type", attr.Name))
	}
}

// decodeMultiValue best-effort parses a stored value as a JSON string array.
// Non-array values return nil, which callers treat as a scalar.
func decodeMultiValue(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "[") {
		return nil
	}
	var entries []string
	if err := json.Unmarshal([]byte(trimmed), &entries); err != nil {
		return nil
	}
	return entries
}
