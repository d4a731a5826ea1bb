// Package backup converts ledger data to and from the portable JSON backup
// document and stages parsed files until the user picks an import mode.
package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Veraticus/pocket-ledger/internal/model"
)

// Error kinds reported by Deserialize.
var (
	ErrParse  = errors.New("backup file is not valid JSON")
	ErrSchema = errors.New("backup file has an unexpected structure")
)

// ParseError reports input that is not well-formed JSON.
type ParseError struct {
	Err    error
	Offset int64
}

func (e *ParseError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("%s (at byte %d): %v", ErrParse, e.Offset, e.Err)
	}
	return fmt.Sprintf("%s: %v", ErrParse, e.Err)
}

// Unwrap returns the underlying decoder error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is matches ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// SchemaError reports well-formed JSON that is not a backup document.
type SchemaError struct {
	Err   error
	Field string
}

func (e *SchemaError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrSchema, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrSchema, e.Field)
}

// Unwrap returns the underlying cause, if any.
func (e *SchemaError) Unwrap() error {
	return e.Err
}

// Is matches ErrSchema.
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

// Serialize encodes data as indented JSON. Both top-level keys are always
// present, with an empty array or object rather than null.
func Serialize(data model.AppData) ([]byte, error) {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}
	return out, nil
}

// Deserialize decodes a backup document. It never touches ledger state.
//
// The document must be an object with a "transactions" array and a
// "budgets" object. Transaction entries are otherwise lenient: missing
// fields decode as zero values.
func Deserialize(raw []byte) (model.AppData, error) {
	if !json.Valid(raw) {
		var v any
		err := json.Unmarshal(raw, &v)
		perr := &ParseError{Err: err}
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			perr.Offset = syntaxErr.Offset
		}
		if err == nil {
			perr.Err = errors.New("invalid JSON")
		}
		return model.AppData{}, perr
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil || top == nil {
		return model.AppData{}, &SchemaError{Field: "document", Err: errors.New("top level must be an object")}
	}

	rawTxs, ok := top["transactions"]
	if !ok {
		return model.AppData{}, &SchemaError{Field: "transactions", Err: errors.New("missing")}
	}
	if firstByte(rawTxs) != '[' {
		return model.AppData{}, &SchemaError{Field: "transactions", Err: errors.New("must be an array")}
	}

	rawBudgets, ok := top["budgets"]
	if !ok {
		return model.AppData{}, &SchemaError{Field: "budgets", Err: errors.New("missing")}
	}
	if firstByte(rawBudgets) != '{' {
		return model.AppData{}, &SchemaError{Field: "budgets", Err: errors.New("must be an object")}
	}

	var data model.AppData
	if err := json.Unmarshal(rawTxs, &data.Transactions); err != nil {
		return model.AppData{}, &SchemaError{Field: "transactions", Err: err}
	}
	if err := json.Unmarshal(rawBudgets, &data.Budgets); err != nil {
		return model.AppData{}, &SchemaError{Field: "budgets", Err: err}
	}

	return data.Clone(), nil
}

func firstByte(raw json.RawMessage) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}
