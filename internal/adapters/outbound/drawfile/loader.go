package drawfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("rdc.drawfile")

// StdinRef names standard input as a draw source.
const StdinRef = "-"

// Loader implements domain.DrawSource over exported draw lists on disk.
type Loader struct {
	stdin io.Reader
}

// New creates a Loader reading "-" from os.Stdin.
func New() *Loader {
	return &Loader{stdin: os.Stdin}
}

// NewWithStdin creates a Loader reading "-" from r.
func NewWithStdin(r io.Reader) *Loader {
	return &Loader{stdin: r}
}

// LoadDraws reads the draw rows stored at ref.
func (l *Loader) LoadDraws(ctx context.Context, ref string) ([]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var r io.Reader
	if ref == StdinRef {
		r = l.stdin
	} else {
		f, err := os.Open(ref)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", ref, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ref, err)
	}
	log.Debugf("loaded %d draws from %s", len(rows), ref)
	return rows, nil
}

// Parse decodes a draw list. Accepted shapes are a JSON array of objects, JSON
// Lines, an object with a "draws" array, and a JSON-RPC response whose result
// holds one of those.
func Parse(data []byte) ([]map[string]any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []map[string]any{}, nil
	}

	if trimmed[0] == '[' {
		dec := newDecoder(trimmed)
		var items []any
		if err := dec.Decode(&items); err != nil {
			return nil, err
		}
		if dec.InputOffset() != int64(len(trimmed)) {
			return nil, fmt.Errorf("unexpected data after draw list at offset %d", dec.InputOffset())
		}
		return toRows(items)
	}

	objects, err := decodeStream(trimmed)
	if err != nil {
		return nil, err
	}
	if len(objects) == 1 {
		if rows, ok, err := unwrap(objects[0]); ok {
			return rows, err
		}
	}
	return objects, nil
}

// newDecoder keeps numbers as json.Number so large eids survive decoding.
func newDecoder(data []byte) *json.Decoder {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec
}

func decodeStream(data []byte) ([]map[string]any, error) {
	dec := newDecoder(data)
	var objects []map[string]any
	for line := 1; ; line++ {
		var obj map[string]any
		err := dec.Decode(&obj)
		if errors.Is(err, io.EOF) {
			return objects, nil
		}
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", line, err)
		}
		objects = append(objects, obj)
	}
}

// unwrap extracts the draw list from an envelope object.
func unwrap(obj map[string]any) ([]map[string]any, bool, error) {
	if result, ok := obj["result"]; ok {
		switch v := result.(type) {
		case []any:
			rows, err := toRows(v)
			return rows, true, err
		case map[string]any:
			return unwrap(v)
		}
	}
	if draws, ok := obj["draws"]; ok {
		items, isList := draws.([]any)
		if !isList {
			return nil, true, fmt.Errorf(`"draws" is %T, want a list`, draws)
		}
		rows, err := toRows(items)
		return rows, true, err
	}
	return nil, false, nil
}

func toRows(items []any) ([]map[string]any, error) {
	rows := make([]map[string]any, 0, len(items))
	for i, item := range items {
		row, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("draw %d is %T, want an object", i, item)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
