package statement

import "strings"

// PlaceholderCount reports how many values a caller must bind for cfg. It
// walks the configuration in the same order the builder renders it, without
// rendering, so callers can check their parameter list before executing.
func PlaceholderCount(cfg Config) (int, error) {
	switch cfg.Operation {
	case OperationInsert:
		n := 0
		for _, c := range cfg.Columns {
			if err := rawText(OperationInsert, "column", c.Expression); err != nil {
				return 0, err
			}
			if c.Expression != "" {
				n++
			}
		}
		if n == 0 {
			return 0, configError(OperationInsert, ErrEmptyColumnList, "")
		}
		return n, nil
	case OperationUpdate:
		n := 0
		for _, a := range cfg.Set {
			if err := rawText(OperationUpdate, "assignment", a.Column); err != nil {
				return 0, err
			}
			if a.Column != "" && (a.Mode == Assign || a.Mode == Increment) {
				n++
			}
		}
		if n == 0 {
			return 0, configError(OperationUpdate, ErrEmptySetList, "")
		}
		f, err := nodeCount(cfg.Filter)
		return n + f, err
	case OperationSelect:
		if err := selectRawText(cfg); err != nil {
			return 0, err
		}
		return nodeCount(cfg.Filter)
	case OperationDelete:
		return nodeCount(cfg.Filter)
	default:
		return 0, configError(cfg.Operation, ErrUnsupportedOperation, "%q", string(cfg.Operation))
	}
}

func nodeCount(node Node) (int, error) {
	switch n := node.(type) {
	case nil:
		return 0, nil
	case Leaf:
		return leafCount(n)
	case *Leaf:
		if n == nil {
			return 0, configError("", ErrMalformedFilter, "nil leaf")
		}
		return leafCount(*n)
	case Group:
		return groupCount(n)
	case *Group:
		if n == nil {
			return 0, configError("", ErrMalformedFilter, "nil group")
		}
		return groupCount(*n)
	default:
		return 0, configError("", ErrMalformedFilter, "unknown node %T", node)
	}
}

func groupCount(g Group) (int, error) {
	total := 0
	for _, c := range g.Children {
		n, err := nodeCount(c)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

func leafCount(l Leaf) (int, error) {
	n := 0
	if l.Column == "" {
		n++
	} else if err := rawText("", "filter column", l.Column); err != nil {
		return 0, err
	}
	switch v := l.Value.(type) {
	case nil, Placeholder:
		n++
	case Subquery:
		inner, err := subqueryCount(v)
		if err != nil {
			return 0, err
		}
		n += inner
	case *Subquery:
		if v == nil {
			return 0, configError("", ErrMalformedFilter, "nil subquery")
		}
		inner, err := subqueryCount(*v)
		if err != nil {
			return 0, err
		}
		n += inner
	case Literal:
		if err := rawText("", "literal", v.SQL); err != nil {
			return 0, err
		}
	default:
		return 0, configError("", ErrMalformedFilter, "unknown comparand %T", l.Value)
	}
	return n, nil
}

func subqueryCount(s Subquery) (int, error) {
	if err := selectRawText(s.Config); err != nil {
		return 0, err
	}
	return nodeCount(s.Config.Filter)
}

// rawText rejects a `?` in text that is copied into the statement verbatim.
// Only the placeholders the builder emits itself may bind values.
func rawText(op Operation, what, text string) error {
	if strings.Contains(text, "?") {
		return configError(op, ErrRawPlaceholder, "%s %q", what, text)
	}
	return nil
}

// selectRawText checks the verbatim parts of a SELECT: projection, join
// conditions and ordering.
func selectRawText(cfg Config) error {
	for _, c := range cfg.Columns {
		if err := rawText(OperationSelect, "column", c.Expression); err != nil {
			return err
		}
	}
	for _, j := range cfg.Joins {
		if err := rawText(OperationSelect, "join", j.Table+" "+j.On); err != nil {
			return err
		}
	}
	for _, o := range cfg.OrderBy {
		if err := rawText(OperationSelect, "order", o.Expression); err != nil {
			return err
		}
	}
	return nil
}
