package statement

import (
	"strconv"
	"strings"
)

// Builder renders Configs into SQL. It carries only the default table of the
// repository it belongs to, so a Builder value is safe for concurrent use.
// The zero Builder has no default table.
type Builder struct {
	table string
}

// NewBuilder returns a Builder that falls back to defaultTable when a Config
// names no table.
func NewBuilder(defaultTable string) Builder {
	return Builder{table: defaultTable}
}

// DefaultTable returns the table used when a Config names none.
func (b Builder) DefaultTable() string {
	return b.table
}

// Build dispatches on cfg.Operation.
func (b Builder) Build(cfg Config) (string, error) {
	switch cfg.Operation {
	case OperationSelect:
		return b.BuildSelect(cfg)
	case OperationInsert:
		return b.BuildInsert(cfg)
	case OperationUpdate:
		return b.BuildUpdate(cfg)
	case OperationDelete:
		return b.BuildDelete(cfg)
	default:
		return "", configError(cfg.Operation, ErrUnsupportedOperation, "%q", string(cfg.Operation))
	}
}

// BuildSelect renders
// `SELECT cols FROM t [LEFT JOIN t ON c]* [WHERE f] [ORDER BY o] [LIMIT n] [OFFSET n]`.
func (b Builder) BuildSelect(cfg Config) (string, error) {
	sql, _, err := b.selectText(cfg)
	return sql, err
}

func (b Builder) selectText(cfg Config) (string, int, error) {
	table, err := b.resolveTable(OperationSelect, cfg)
	if err != nil {
		return "", 0, err
	}
	if err := selectRawText(cfg); err != nil {
		return "", 0, err
	}

	columns := "*"
	if len(cfg.Columns) > 0 {
		var cols []string
		for _, c := range cfg.Columns {
			if c.Expression == "" {
				continue
			}
			if c.Alias != "" {
				cols = append(cols, c.Expression+" AS "+c.Alias)
			} else {
				cols = append(cols, c.Expression)
			}
		}
		if len(cols) == 0 {
			return "", 0, configError(OperationSelect, ErrEmptyColumnList, "no valid projection on %s", table)
		}
		columns = strings.Join(cols, ",")
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(columns)
	sb.WriteString(" FROM ")
	sb.WriteString(table)

	for _, j := range cfg.Joins {
		if j.Table == "" || j.On == "" {
			continue
		}
		sb.WriteString(" LEFT JOIN ")
		sb.WriteString(j.Table)
		sb.WriteString(" ON ")
		sb.WriteString(j.On)
	}

	count, err := b.writeWhere(&sb, OperationSelect, cfg.Filter)
	if err != nil {
		return "", 0, err
	}

	var terms []string
	for _, o := range cfg.OrderBy {
		if o.valid() {
			terms = append(terms, o.Expression+" "+string(o.Direction))
		}
	}
	if len(terms) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(terms, ", "))
	}

	if cfg.Limit != nil && *cfg.Limit >= 0 {
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.Itoa(*cfg.Limit))
	}
	if cfg.Offset != nil && *cfg.Offset >= 0 {
		sb.WriteString(" OFFSET ")
		sb.WriteString(strconv.Itoa(*cfg.Offset))
	}
	return sb.String(), count, nil
}

// BuildInsert renders `INSERT INTO t (a,b) VALUES(?,?)`, one placeholder per
// valid column. Columns with an empty expression are skipped; aliases are
// ignored.
func (b Builder) BuildInsert(cfg Config) (string, error) {
	table, err := b.resolveTable(OperationInsert, cfg)
	if err != nil {
		return "", err
	}

	var cols, marks []string
	for _, c := range cfg.Columns {
		if err := rawText(OperationInsert, "column", c.Expression); err != nil {
			return "", err
		}
		if c.Expression == "" {
			continue
		}
		cols = append(cols, c.Expression)
		marks = append(marks, "?")
	}
	if len(cols) == 0 {
		return "", configError(OperationInsert, ErrEmptyColumnList, "nothing to insert into %s", table)
	}
	return "INSERT INTO " + table + " (" + strings.Join(cols, ",") + ") VALUES(" + strings.Join(marks, ",") + ")", nil
}

// BuildUpdate renders `UPDATE t SET a=?, b = b + ? [WHERE f]`. Assignment
// order is preserved and binds before the filter.
func (b Builder) BuildUpdate(cfg Config) (string, error) {
	table, err := b.resolveTable(OperationUpdate, cfg)
	if err != nil {
		return "", err
	}

	var sets []string
	for _, a := range cfg.Set {
		if err := rawText(OperationUpdate, "assignment", a.Column); err != nil {
			return "", err
		}
		if a.Column == "" {
			continue
		}
		switch a.Mode {
		case Assign:
			sets = append(sets, a.Column+"=?")
		case Increment:
			sets = append(sets, a.Column+" = "+a.Column+" + ?")
		}
	}
	if len(sets) == 0 {
		return "", configError(OperationUpdate, ErrEmptySetList, "nothing to set on %s", table)
	}

	var sb strings.Builder
	sb.WriteString("UPDATE ")
	sb.WriteString(table)
	sb.WriteString(" SET ")
	sb.WriteString(strings.Join(sets, ", "))
	if _, err := b.writeWhere(&sb, OperationUpdate, cfg.Filter); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// BuildDelete renders `DELETE FROM t [WHERE f]`.
func (b Builder) BuildDelete(cfg Config) (string, error) {
	table, err := b.resolveTable(OperationDelete, cfg)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("DELETE FROM ")
	sb.WriteString(table)
	if _, err := b.writeWhere(&sb, OperationDelete, cfg.Filter); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (b Builder) resolveTable(op Operation, cfg Config) (string, error) {
	if cfg.Table != "" {
		return cfg.Table, nil
	}
	if b.table != "" {
		return b.table, nil
	}
	return "", configError(op, ErrMissingTable, "")
}

func (b Builder) writeWhere(sb *strings.Builder, op Operation, filter Node) (int, error) {
	text, count, err := b.FilterText(filter, 0)
	if err != nil {
		if ce, ok := err.(*ConfigurationError); ok && ce.Op == "" {
			ce.Op = op
		}
		return 0, err
	}
	if text != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(text)
	}
	return count, nil
}

// Build renders cfg with no default table.
func Build(cfg Config) (string, error) { return Builder{}.Build(cfg) }

// BuildSelect renders a SELECT with no default table.
func BuildSelect(cfg Config) (string, error) { return Builder{}.BuildSelect(cfg) }

// BuildInsert renders an INSERT with no default table.
func BuildInsert(cfg Config) (string, error) { return Builder{}.BuildInsert(cfg) }

// BuildUpdate renders an UPDATE with no default table.
func BuildUpdate(cfg Config) (string, error) { return Builder{}.BuildUpdate(cfg) }

// BuildDelete renders a DELETE with no default table.
func BuildDelete(cfg Config) (string, error) { return Builder{}.BuildDelete(cfg) }
