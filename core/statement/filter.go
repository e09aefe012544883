package statement

import (
	"fmt"
	"strings"
)

// Node is a filter tree node: a Leaf or a Group. The set is closed.
type Node interface {
	isNode()
}

// Comparand is the right-hand side of a Leaf: Placeholder, Subquery or
// Literal. The set is closed.
type Comparand interface {
	isComparand()
}

// Placeholder binds one caller value.
type Placeholder struct{}

// Subquery renders a nested SELECT in parentheses. It binds nothing itself;
// its own filter binds its own values.
type Subquery struct {
	Config Config
}

// Literal is trusted constant SQL text, such as `0`. It binds nothing and
// must never carry caller input.
type Literal struct {
	SQL string
}

func (Placeholder) isComparand() {}
func (Subquery) isComparand()    {}
func (Literal) isComparand()     {}

// Leaf is a single `column operator comparand` predicate.
type Leaf struct {
	// Column defaults to `?` when empty, binding one extra value.
	Column string
	// Operator defaults to `=`.
	Operator string
	// Value defaults to Placeholder.
	Value Comparand

	bare bool
}

// Group combines its children with AND at even depth and OR at odd depth.
type Group struct {
	Children []Node
}

func (Leaf) isNode()  {}
func (Group) isNode() {}

// Col is the bare-column form: it renders as `column=?`.
func Col(column string) Leaf {
	return Leaf{Column: column, Operator: "=", Value: Placeholder{}, bare: true}
}

// Cond builds an explicit leaf rendered as `column operator value`.
func Cond(column, operator string, value Comparand) Leaf {
	return Leaf{Column: column, Operator: operator, Value: value}
}

// In builds `column in (SELECT ...)`.
func In(column string, sub Config) Leaf {
	return Cond(column, "in", Subquery{Config: sub})
}

// Of groups children into one node.
func Of(children ...Node) Group {
	return Group{Children: children}
}

// Match groups bare columns, e.g. Match("a", "b") renders `a=? AND b=?` at
// the top level.
func Match(columns ...string) Group {
	g := Group{Children: make([]Node, len(columns))}
	for i, c := range columns {
		g.Children[i] = Col(c)
	}
	return g
}

// FilterText renders node as WHERE clause text starting at the given depth and
// returns the number of placeholders it contains. A nil node renders as "".
func FilterText(node Node, depth int) (string, int, error) {
	return Builder{}.FilterText(node, depth)
}

// FilterText renders node using b to resolve subquery tables.
func (b Builder) FilterText(node Node, depth int) (string, int, error) {
	if depth < 0 {
		depth = 0
	}
	switch n := node.(type) {
	case nil:
		return "", 0, nil
	case Leaf:
		return b.leafText(n)
	case *Leaf:
		if n == nil {
			return "", 0, configError("", ErrMalformedFilter, "nil leaf")
		}
		return b.leafText(*n)
	case Group:
		return b.groupText(n, depth, false)
	case *Group:
		if n == nil {
			return "", 0, configError("", ErrMalformedFilter, "nil group")
		}
		return b.groupText(*n, depth, false)
	default:
		return "", 0, configError("", ErrMalformedFilter, "unknown node %T", node)
	}
}

func (b Builder) groupText(g Group, depth int, nested bool) (string, int, error) {
	combinator := " AND "
	if depth%2 == 1 {
		combinator = " OR "
	}

	parts := make([]string, 0, len(g.Children))
	count := 0
	for _, child := range g.Children {
		var (
			text string
			n    int
			err  error
		)
		switch c := child.(type) {
		case Group:
			text, n, err = b.groupText(c, depth+1, true)
		case *Group:
			if c == nil {
				return "", 0, configError("", ErrMalformedFilter, "nil group")
			}
			text, n, err = b.groupText(*c, depth+1, true)
		case Leaf:
			text, n, err = b.leafText(c)
		case *Leaf:
			if c == nil {
				return "", 0, configError("", ErrMalformedFilter, "nil leaf")
			}
			text, n, err = b.leafText(*c)
		default:
			err = configError("", ErrMalformedFilter, "unknown node %T", child)
		}
		if err != nil {
			return "", 0, err
		}
		if text == "" {
			continue
		}
		parts = append(parts, text)
		count += n
	}

	if len(parts) == 0 {
		return "", 0, nil
	}
	text := strings.Join(parts, combinator)
	if nested {
		text = "(" + text + ")"
	}
	return text, count, nil
}

func (b Builder) leafText(l Leaf) (string, int, error) {
	count := 0
	column := l.Column
	if column == "" {
		column = "?"
		count++
	} else if err := rawText("", "filter column", column); err != nil {
		return "", 0, err
	}
	operator := l.Operator
	if operator == "" {
		operator = "="
	}

	var value string
	switch v := l.Value.(type) {
	case nil, Placeholder:
		value = "?"
		count++
	case Subquery:
		text, n, err := b.subqueryText(v)
		if err != nil {
			return "", 0, err
		}
		value = "(" + text + ")"
		count += n
	case *Subquery:
		if v == nil {
			return "", 0, configError("", ErrMalformedFilter, "nil subquery on %s", column)
		}
		text, n, err := b.subqueryText(*v)
		if err != nil {
			return "", 0, err
		}
		value = "(" + text + ")"
		count += n
	case Literal:
		if v.SQL == "" {
			return "", 0, configError("", ErrMalformedFilter, "empty literal on %s", column)
		}
		if err := rawText("", "literal", v.SQL); err != nil {
			return "", 0, err
		}
		value = v.SQL
	default:
		return "", 0, configError("", ErrMalformedFilter, "unknown comparand %T", l.Value)
	}

	if l.bare {
		return column + operator + value, count, nil
	}
	return fmt.Sprintf("%s %s %s", column, operator, value), count, nil
}

func (b Builder) subqueryText(s Subquery) (string, int, error) {
	op := s.Config.Operation
	if op != "" && op != OperationSelect {
		return "", 0, configError(op, ErrMalformedFilter, "subquery must be a SELECT")
	}
	return b.selectText(s.Config)
}
