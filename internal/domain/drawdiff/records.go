package drawdiff

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/op/go-logging"
	"github.com/spf13/cast"

	"github.com/rdc-cli/rdc/internal/domain"
)

var log = logging.MustGetLogger("rdc.drawdiff")

// fieldAliases lists the accepted row keys per field, preferred name first.
var fieldAliases = map[string][]string{
	"eid":         {"eid", "event_id"},
	"marker":      {"marker", "marker_path"},
	"shader_hash": {"shader_hash", "shader"},
	"topology":    {"topology"},
	"triangles":   {"triangles", "tris"},
	"instances":   {"instances"},
	"pass":        {"pass", "pass_name"},
}

// BuildRecords converts raw draw rows into DrawRecords, preserving order.
// Only a missing or non-numeric eid is an error; other fields fall back to
// their zero value.
func BuildRecords(rows []map[string]any) ([]domain.DrawRecord, error) {
	records := make([]domain.DrawRecord, 0, len(rows))
	for i, row := range rows {
		rec, err := buildRecord(i, row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func buildRecord(index int, row map[string]any) (domain.DrawRecord, error) {
	raw, ok := lookup(row, "eid")
	if !ok {
		return domain.DrawRecord{}, &domain.RecordError{Index: index, Field: "eid", Reason: "is missing"}
	}
	eid, err := parseEID(raw)
	if err != nil {
		return domain.DrawRecord{}, &domain.RecordError{Index: index, Field: "eid", Value: raw, Reason: err.Error()}
	}

	return domain.DrawRecord{
		EID:        eid,
		Marker:     optionalString(index, row, "marker"),
		ShaderHash: optionalString(index, row, domain.FieldShaderHash),
		Topology:   optionalString(index, row, domain.FieldTopology),
		Triangles:  optionalCount(index, row, domain.FieldTriangles),
		Instances:  optionalCount(index, row, domain.FieldInstances),
		Pass:       optionalString(index, row, "pass"),
	}, nil
}

func lookup(row map[string]any, field string) (any, bool) {
	for _, key := range fieldAliases[field] {
		if v, ok := row[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func parseEID(v any) (int64, error) {
	n, err := toInt64(v)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("is negative")
	}
	return n, nil
}

// maxInt64Float is 2^63, the smallest float64 above the int64 range.
const maxInt64Float = 1 << 63

// toInt64 reads a whole number from a decoded JSON value. Strings are decimal
// only, so "010" is ten.
func toInt64(v any) (int64, error) {
	switch x := v.(type) {
	case bool:
		return 0, fmt.Errorf("is not a number")
	case string:
		return parseDecimal(strings.TrimSpace(x))
	case json.Number:
		return parseDecimal(x.String())
	case float64:
		return fromFloat(x)
	case float32:
		return fromFloat(float64(x))
	}
	n, err := cast.ToInt64E(v)
	if err != nil {
		return 0, fmt.Errorf("is not a number")
	}
	return n, nil
}

func parseDecimal(s string) (int64, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, fmt.Errorf("is out of range")
		}
		return 0, fmt.Errorf("is not a number")
	}
	return fromFloat(f)
}

func fromFloat(f float64) (int64, error) {
	switch {
	case math.IsNaN(f) || math.IsInf(f, 0):
		return 0, fmt.Errorf("is not a number")
	case f != math.Trunc(f):
		return 0, fmt.Errorf("is not an integer")
	case f >= maxInt64Float || f < -maxInt64Float:
		return 0, fmt.Errorf("is out of range")
	}
	return int64(f), nil
}

func optionalString(index int, row map[string]any, field string) string {
	v, ok := lookup(row, field)
	if !ok {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		log.Warningf("draw row %d: ignoring %s of type %T", index, field, v)
		return ""
	}
	return strings.TrimSpace(s)
}

func optionalCount(index int, row map[string]any, field string) int64 {
	v, ok := lookup(row, field)
	if !ok {
		return 0
	}
	n, err := toInt64(v)
	if err != nil || n < 0 {
		log.Warningf("draw row %d: ignoring %s=%v", index, field, v)
		return 0
	}
	return n
}
