package sampler

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tidwall/gjson"
)

// Operation is one of the benchmarked data-structure operations.
type Operation string

const (
	OpInsert Operation = "insert"
	OpFind   Operation = "find"
	OpErase  Operation = "erase"
)

// Operations returns the benchmarked operations in reporting order.
func Operations() []Operation {
	return []Operation{OpInsert, OpFind, OpErase}
}

// Percentile is one of the latency percentiles reported by the binary.
type Percentile string

const (
	P0    Percentile = "p0"
	P50   Percentile = "p50"
	P95   Percentile = "p95"
	P99   Percentile = "p99"
	P999  Percentile = "p99_9"
	P9999 Percentile = "p99_99"
)

// Percentiles returns the full percentile ladder in ascending order.
func Percentiles() []Percentile {
	return []Percentile{P0, P50, P95, P99, P999, P9999}
}

// Label returns the human-readable form of a percentile (e.g. "P99.9").
func (p Percentile) Label() string {
	return "P" + strings.ReplaceAll(strings.TrimPrefix(string(p), "p"), "_", ".")
}

// Latencies holds the fixed percentile ladder for one operation,
// in nanoseconds.
type Latencies struct {
	P0    float64 `json:"p0"`
	P50   float64 `json:"p50"`
	P95   float64 `json:"p95"`
	P99   float64 `json:"p99"`
	P999  float64 `json:"p99_9"`
	P9999 float64 `json:"p99_99"`
}

// At returns the latency for the given percentile.
func (l Latencies) At(p Percentile) (float64, bool) {
	switch p {
	case P0:
		return l.P0, true
	case P50:
		return l.P50, true
	case P95:
		return l.P95, true
	case P99:
		return l.P99, true
	case P999:
		return l.P999, true
	case P9999:
		return l.P9999, true
	default:
		return 0, false
	}
}

// Performance holds per-operation latency ladders.
type Performance struct {
	Insert Latencies `json:"insert"`
	Find   Latencies `json:"find"`
	Erase  Latencies `json:"erase"`
}

// Measurement is the raw measurement document produced by one invocation
// of the benchmark binary. It is immutable after parsing.
//
// The document is validated once, at ingestion, against a fixed schema;
// downstream code can rely on every operation/percentile field being
// present.
type Measurement struct {
	Performance Performance `json:"performance"`
}

// Operation returns the latency ladder for the given operation.
func (m *Measurement) Operation(op Operation) (Latencies, bool) {
	switch op {
	case OpInsert:
		return m.Performance.Insert, true
	case OpFind:
		return m.Performance.Find, true
	case OpErase:
		return m.Performance.Erase, true
	default:
		return Latencies{}, false
	}
}

// Value returns the scalar value for one (operation, percentile) pair.
func (m *Measurement) Value(op Operation, p Percentile) (float64, error) {
	lats, ok := m.Operation(op)
	if !ok {
		return 0, fmt.Errorf("unknown operation: %s", op)
	}
	v, ok := lats.At(p)
	if !ok {
		return 0, fmt.Errorf("unknown percentile: %s", p)
	}
	return v, nil
}

// measurementSchema is the contract for the binary's JSON output: the
// three operations, each with the full percentile ladder, all values
// non-negative numbers.
const measurementSchema = `{
  "type": "object",
  "required": ["performance"],
  "properties": {
    "performance": {
      "type": "object",
      "required": ["insert", "find", "erase"],
      "properties": {
        "insert": {"$ref": "#/$defs/latencies"},
        "find": {"$ref": "#/$defs/latencies"},
        "erase": {"$ref": "#/$defs/latencies"}
      }
    }
  },
  "$defs": {
    "latencies": {
      "type": "object",
      "required": ["p0", "p50", "p95", "p99", "p99_9", "p99_99"],
      "properties": {
        "p0": {"type": "number", "minimum": 0},
        "p50": {"type": "number", "minimum": 0},
        "p95": {"type": "number", "minimum": 0},
        "p99": {"type": "number", "minimum": 0},
        "p99_9": {"type": "number", "minimum": 0},
        "p99_99": {"type": "number", "minimum": 0}
      }
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaCompile  error
)

func getSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("measurement.json", strings.NewReader(measurementSchema)); err != nil {
			schemaCompile = err
			return
		}
		compiledSchema, schemaCompile = compiler.Compile("measurement.json")
	})
	return compiledSchema, schemaCompile
}

// ParseMeasurement parses and validates one raw measurement document.
//
// A document that is not JSON, or that is missing any required
// operation/percentile field, is rejected here; nothing downstream ever
// sees a partial structure.
func ParseMeasurement(data []byte) (*Measurement, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("output is not valid JSON: %w", err)
	}

	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("invalid measurement schema: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		if missing := FirstMissingField(data); missing != "" {
			return nil, fmt.Errorf("measurement document is missing field %q (%s)", missing, describeDocument(data))
		}
		return nil, fmt.Errorf("measurement document failed validation: %w", err)
	}

	m := &Measurement{}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("failed to decode measurement document: %w", err)
	}
	return m, nil
}

// FirstMissingField returns the first required operation/percentile path
// absent from the document, or "" if all are present.
func FirstMissingField(data []byte) string {
	if !gjson.GetBytes(data, "performance").Exists() {
		return "performance"
	}
	for _, op := range Operations() {
		opPath := "performance." + string(op)
		if !gjson.GetBytes(data, opPath).Exists() {
			return opPath
		}
		for _, pct := range Percentiles() {
			path := opPath + "." + string(pct)
			if !gjson.GetBytes(data, path).Exists() {
				return path
			}
		}
	}
	return ""
}

// describeDocument summarizes what the document actually contains, for
// error messages about contract violations.
func describeDocument(data []byte) string {
	perf := gjson.GetBytes(data, "performance")
	if !perf.Exists() {
		return "document has no performance section"
	}
	var ops []string
	perf.ForEach(func(key, _ gjson.Result) bool {
		ops = append(ops, key.String())
		return true
	})
	if len(ops) == 0 {
		return "performance section is empty"
	}
	return "operations present: " + strings.Join(ops, ", ")
}
