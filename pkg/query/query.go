package query

import (
	"regexp"
	"sort"
	"strings"

	"github.com/arthur-debert/tela/pkg/errors"
)

// Op is a clause operator
type Op int

const (
	OpEq Op = iota
	OpNe
	OpGt
	OpGte
	OpLt
	OpLte
	OpContains
	OpStartsWith
	OpEndsWith
	OpRegex
	OpIn
	OpBefore
	OpAfter
)

// Accessor yields the value of one field of one item
type Accessor[T any] func(item T, field string) Value

// Clause is one field comparison. Regex patterns compile at Build
// time; In matches enum discriminants against Set.
type Clause struct {
	Field   string
	Op      Op
	Operand Value
	Set     []string
	Pattern string

	re *regexp.Regexp
}

// OrderBy is one sort key
type OrderBy struct {
	Field string
	Desc  bool
}

// Query is a compiled filter + sort + page over items of T.
// Matching: every AND clause holds, at least one OR clause holds
// (vacuously true when empty), no NOT clause holds.
type Query[T any] struct {
	accessor Accessor[T]
	and      []Clause
	or       []Clause
	not      []Clause
	orderBy  []OrderBy
	offset   int
	limit    int
}

// Builder accumulates clauses before compilation
type Builder[T any] struct {
	q Query[T]
}

// New starts a query over items whose fields are read via accessor
func New[T any](accessor Accessor[T]) *Builder[T] {
	return &Builder[T]{q: Query[T]{accessor: accessor, limit: -1}}
}

// Where adds an AND clause
func (b *Builder[T]) Where(field string, op Op, operand Value) *Builder[T] {
	b.q.and = append(b.q.and, Clause{Field: field, Op: op, Operand: operand})
	return b
}

// WhereRegex adds an AND regex clause; the pattern compiles at Build
func (b *Builder[T]) WhereRegex(field, pattern string) *Builder[T] {
	b.q.and = append(b.q.and, Clause{Field: field, Op: OpRegex, Pattern: pattern})
	return b
}

// WhereIn adds an AND enum-membership clause
func (b *Builder[T]) WhereIn(field string, discriminants ...string) *Builder[T] {
	b.q.and = append(b.q.and, Clause{Field: field, Op: OpIn, Set: discriminants})
	return b
}

// Any adds an OR clause
func (b *Builder[T]) Any(field string, op Op, operand Value) *Builder[T] {
	b.q.or = append(b.q.or, Clause{Field: field, Op: op, Operand: operand})
	return b
}

// Not adds a NOT clause
func (b *Builder[T]) Not(field string, op Op, operand Value) *Builder[T] {
	b.q.not = append(b.q.not, Clause{Field: field, Op: op, Operand: operand})
	return b
}

// OrderBy adds sort keys. A leading "-" on a field name means
// descending, so OrderBy("-priority", "name") sorts by priority
// descending then name ascending.
func (b *Builder[T]) OrderBy(fields ...string) *Builder[T] {
	for _, f := range fields {
		if stripped, ok := strings.CutPrefix(f, "-"); ok {
			b.q.orderBy = append(b.q.orderBy, OrderBy{Field: stripped, Desc: true})
		} else {
			b.q.orderBy = append(b.q.orderBy, OrderBy{Field: f})
		}
	}
	return b
}

// Offset skips the first n items after sorting
func (b *Builder[T]) Offset(n int) *Builder[T] {
	b.q.offset = n
	return b
}

// Limit caps the result length; applied after offset
func (b *Builder[T]) Limit(n int) *Builder[T] {
	b.q.limit = n
	return b
}

// Build compiles the query. The only build-time failure is an invalid
// regex pattern.
func (b *Builder[T]) Build() (*Query[T], error) {
	q := b.q
	for _, group := range [][]Clause{q.and, q.or, q.not} {
		for i := range group {
			c := &group[i]
			if c.Op != OpRegex {
				continue
			}
			re, err := regexp.Compile(c.Pattern)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrQueryCompile,
					"invalid regex %q for field %q", c.Pattern, c.Field)
			}
			c.re = re
		}
	}
	return &q, nil
}

// Matches reports whether a single item satisfies the query
func (q *Query[T]) Matches(item T) bool {
	for _, c := range q.and {
		if !q.clauseMatches(item, c) {
			return false
		}
	}
	if len(q.or) > 0 {
		hit := false
		for _, c := range q.or {
			if q.clauseMatches(item, c) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	for _, c := range q.not {
		if q.clauseMatches(item, c) {
			return false
		}
	}
	return true
}

func (q *Query[T]) clauseMatches(item T, c Clause) bool {
	v := q.accessor(item, c.Field)
	switch c.Op {
	case OpEq:
		return v.equal(c.Operand)
	case OpNe:
		return !v.equal(c.Operand)
	case OpGt, OpGte, OpLt, OpLte, OpBefore, OpAfter:
		if v.Kind != KindNumber && v.Kind != KindTimestamp {
			return false
		}
		cmp, ok := v.compare(c.Operand)
		if !ok {
			return false
		}
		switch c.Op {
		case OpGt, OpAfter:
			return cmp > 0
		case OpGte:
			return cmp >= 0
		case OpLt, OpBefore:
			return cmp < 0
		default:
			return cmp <= 0
		}
	case OpContains:
		return v.Kind == KindString && strings.Contains(v.str, c.Operand.str)
	case OpStartsWith:
		return v.Kind == KindString && strings.HasPrefix(v.str, c.Operand.str)
	case OpEndsWith:
		return v.Kind == KindString && strings.HasSuffix(v.str, c.Operand.str)
	case OpRegex:
		return v.Kind == KindString && c.re != nil && c.re.MatchString(v.str)
	case OpIn:
		if v.Kind != KindEnum {
			return false
		}
		for _, d := range c.Set {
			if v.str == d {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Apply filters, sorts, and pages items. The input slice is not
// modified.
func (q *Query[T]) Apply(items []T) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if q.Matches(it) {
			out = append(out, it)
		}
	}
	q.sortItems(out)

	if q.offset > 0 {
		if q.offset >= len(out) {
			return out[:0]
		}
		out = out[q.offset:]
	}
	if q.limit >= 0 && q.limit < len(out) {
		out = out[:q.limit]
	}
	return out
}

// Count returns how many items match, ignoring offset and limit
func (q *Query[T]) Count(items []T) int {
	n := 0
	for _, it := range items {
		if q.Matches(it) {
			n++
		}
	}
	return n
}

// sortItems is a stable multi-key sort. Missing fields sort last in
// ascending order; a descending key flips that along with everything
// else. Keys that cannot be ordered against each other tie, leaving
// input order intact.
func (q *Query[T]) sortItems(items []T) {
	if len(q.orderBy) == 0 {
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		for _, key := range q.orderBy {
			a := q.accessor(items[i], key.Field)
			b := q.accessor(items[j], key.Field)

			cmp := 0
			switch {
			case a.IsNone() && b.IsNone():
				cmp = 0
			case a.IsNone():
				cmp = 1
			case b.IsNone():
				cmp = -1
			default:
				c, ok := a.compare(b)
				if !ok {
					continue
				}
				cmp = c
			}
			if key.Desc {
				cmp = -cmp
			}
			if cmp != 0 {
				return cmp < 0
			}
		}
		return false
	})
}
