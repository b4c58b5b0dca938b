package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

type Mode int

const (
	// Bootstrap tables are created as an empty array when absent.
	Bootstrap Mode = iota
	// Required tables must exist; absence is a start-up failure.
	Required
)

var emptyArray = []byte("[]")

func LoadTable[T any](ctx context.Context, b Backend, table string, mode Mode) ([]T, error) {
	data, err := b.Load(ctx, table)
	if errors.Is(err, ErrTableNotFound) {
		if mode == Required {
			return nil, fmt.Errorf("load %s: %w", table, err)
		}
		if err := b.Save(ctx, table, emptyArray); err != nil {
			return nil, fmt.Errorf("create %s: %w", table, err)
		}
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", table, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []T{}, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", table, err)
	}

	// Tables are loaded as pointer rows; a null element would come back nil.
	rows := make([]T, 0, len(raw))
	for i, elem := range raw {
		if bytes.Equal(bytes.TrimSpace(elem), []byte("null")) {
			return nil, fmt.Errorf("decode %s: null entry at index %d", table, i)
		}
		var row T
		if err := json.Unmarshal(elem, &row); err != nil {
			return nil, fmt.Errorf("decode %s: entry %d: %w", table, i, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func SaveTable[T any](ctx context.Context, b Backend, table string, rows []T) error {
	if rows == nil {
		rows = []T{}
	}
	data, err := json.MarshalIndent(rows, "", "    ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", table, err)
	}
	if err := b.Save(ctx, table, data); err != nil {
		return fmt.Errorf("save %s: %w", table, err)
	}
	return nil
}
