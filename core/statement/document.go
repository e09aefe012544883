package statement

import (
	"encoding/json"
	"fmt"
	"strings"

	"sigs.k8s.io/yaml"
)

// Document is the loosely-typed, file-friendly form of a Config. Columns and
// Set entries may be plain strings or objects; Where accepts the convenience
// filter forms understood by Where.
type Document struct {
	Operation string     `json:"operation"`
	Table     string     `json:"table,omitempty"`
	Columns   []any      `json:"columns,omitempty"`
	Set       []any      `json:"set,omitempty"`
	Joins     []JoinDoc  `json:"joins,omitempty"`
	Where     any        `json:"where,omitempty"`
	OrderBy   []OrderDoc `json:"orderBy,omitempty"`
	Limit     *int       `json:"limit,omitempty"`
	Offset    *int       `json:"offset,omitempty"`
}

// JoinDoc is a LEFT JOIN entry of a Document. The condition may be given as
// `on` or `condition`.
type JoinDoc struct {
	Table string `json:"table"`
	On    string `json:"on"`
}

// UnmarshalJSON accepts the condition under `on` or `condition`. YAML 1.1
// reads a bare `on` key as the boolean true, which arrives here as "true".
func (j *JoinDoc) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid join: %w", err)
	}
	j.Table, _ = raw["table"].(string)
	for _, key := range []string{"on", "condition", "true"} {
		if on, ok := raw[key].(string); ok && on != "" {
			j.On = on
			break
		}
	}
	return nil
}

// OrderDoc is an ORDER BY entry of a Document.
type OrderDoc struct {
	Direction  string `json:"direction"`
	Expression string `json:"expression"`
}

// ParseDocument decodes YAML or JSON into a Config.
func ParseDocument(data []byte) (Config, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Config{}, fmt.Errorf("failed to parse statement document: %w", err)
	}
	return Decode(doc)
}

// Decode converts a Document into a Config. Entries that cannot be
// normalized fail the whole conversion.
func Decode(doc Document) (Config, error) {
	cfg := Config{
		Operation: ParseOperation(doc.Operation),
		Table:     doc.Table,
		Limit:     doc.Limit,
		Offset:    doc.Offset,
	}
	if doc.Operation == "" {
		cfg.Operation = OperationSelect
	}

	// Entries of any other shape are skipped, as the builder skips invalid
	// columns.
	for _, c := range doc.Columns {
		switch v := c.(type) {
		case string:
			cfg.Columns = append(cfg.Columns, Column{Expression: v})
		case map[string]any:
			col, _ := v["column"].(string)
			alias, _ := v["alias"].(string)
			cfg.Columns = append(cfg.Columns, Column{Expression: col, Alias: alias})
		}
	}

	for _, s := range doc.Set {
		switch v := s.(type) {
		case string:
			cfg.Set = append(cfg.Set, Assignment{Column: v})
		case map[string]any:
			col, _ := v["column"].(string)
			mode, _ := v["mode"].(string)
			a := Assignment{Column: col}
			switch strings.ToLower(mode) {
			case "", "assign":
			case "increment", "add":
				a.Mode = Increment
			default:
				continue
			}
			cfg.Set = append(cfg.Set, a)
		}
	}

	for i, j := range doc.Joins {
		if j.Table == "" || j.On == "" {
			return Config{}, configError(cfg.Operation, ErrMalformedFilter, "join %d needs a table and a condition", i)
		}
		cfg.Joins = append(cfg.Joins, Join{Table: j.Table, On: j.On})
	}
	for _, o := range doc.OrderBy {
		cfg.OrderBy = append(cfg.OrderBy, Order{
			Direction:  Direction(strings.ToUpper(o.Direction)),
			Expression: o.Expression,
		})
	}

	filter, err := Where(doc.Where)
	if err != nil {
		return Config{}, err
	}
	cfg.Filter = filter
	return cfg, nil
}

// Where normalizes the convenience filter forms into a Node:
//
//   - "col" becomes Col("col")
//   - a []string or []any becomes a Group; nested slices become nested
//     Groups
//   - a map with optional "column", "operator", "value" (literal SQL) and
//     "subquery" (a Document-shaped map) becomes an explicit Leaf
//   - a Node is returned unchanged
//
// Any other shape fails with ErrMalformedFilter.
func Where(v any) (Node, error) {
	switch f := v.(type) {
	case nil:
		return nil, nil
	case Node:
		return f, nil
	case map[string]any:
		return leafFromMap(f)
	default:
		return groupOrLeaf(v)
	}
}

func groupOrLeaf(v any) (Node, error) {
	switch f := v.(type) {
	case string:
		if f == "" {
			return nil, configError("", ErrMalformedFilter, "empty column name")
		}
		return Col(f), nil
	case []string:
		g := Group{Children: make([]Node, 0, len(f))}
		for _, s := range f {
			n, err := groupOrLeaf(s)
			if err != nil {
				return nil, err
			}
			g.Children = append(g.Children, n)
		}
		return g, nil
	case []any:
		g := Group{Children: make([]Node, 0, len(f))}
		for _, e := range f {
			var (
				n   Node
				err error
			)
			switch e.(type) {
			case map[string]any, Node:
				n, err = Where(e)
			default:
				n, err = groupOrLeaf(e)
			}
			if err != nil {
				return nil, err
			}
			g.Children = append(g.Children, n)
		}
		return g, nil
	default:
		return nil, configError("", ErrMalformedFilter, "unsupported filter shape %T", v)
	}
}

func leafFromMap(m map[string]any) (Node, error) {
	_, lit := m["value"]
	_, sub := m["subquery"]
	if lit && sub {
		return nil, configError("", ErrMalformedFilter, "leaf has both value and subquery")
	}

	leaf := Leaf{Operator: "=", Value: Placeholder{}}
	for k, v := range m {
		switch k {
		case "column":
			s, ok := v.(string)
			if !ok {
				return nil, configError("", ErrMalformedFilter, "column must be a string, got %T", v)
			}
			leaf.Column = s
		case "operator":
			s, ok := v.(string)
			if !ok {
				return nil, configError("", ErrMalformedFilter, "operator must be a string, got %T", v)
			}
			if s != "" {
				leaf.Operator = s
			}
		case "value":
			s, ok := v.(string)
			if !ok {
				return nil, configError("", ErrMalformedFilter, "value must be a string literal, got %T", v)
			}
			leaf.Value = Literal{SQL: s}
		case "subquery":
			sub, err := subqueryFromAny(v)
			if err != nil {
				return nil, err
			}
			leaf.Value = sub
		default:
			return nil, configError("", ErrMalformedFilter, "unknown leaf key %q", k)
		}
	}
	return leaf, nil
}

func subqueryFromAny(v any) (Subquery, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return Subquery{}, configError("", ErrMalformedFilter, "subquery must be an object, got %T", v)
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return Subquery{}, configError("", ErrMalformedFilter, "subquery: %v", err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Subquery{}, configError("", ErrMalformedFilter, "subquery: %v", err)
	}
	cfg, err := Decode(doc)
	if err != nil {
		return Subquery{}, err
	}
	return Subquery{Config: cfg}, nil
}
