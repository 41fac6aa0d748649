package golistview

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Comparator defines a comparison applied to a keyset boundary column.
type Comparator string

const (
	ComparatorGT Comparator = ">"
	ComparatorLT Comparator = "<"

	// comparatorEq is the equality comparator. It is private because we use it
	// ONLY while expanding a boundary into filtering conditions.
	comparatorEq Comparator = "="
)

func (c Comparator) Valid() bool {
	return c == ComparatorLT || c == ComparatorGT
}

func (c Comparator) ForOrdering() Direction {
	switch c {
	case ComparatorGT:
		return DirectionASC
	case ComparatorLT:
		return DirectionDESC
	default:
		panic(fmt.Errorf("cannot map comparator '%s' to ordering", c))
	}
}

// BoundaryMark is one (column, value, comparator) triple of a keyset boundary.
type BoundaryMark struct {
	Column     string
	Value      any
	Comparator Comparator
}

// Boundary is the keyset position after a fetched page: one mark per ordering
// column, carrying the column values of the page's last row. The next page
// contains exactly the rows sorting strictly after the boundary.
//
// IMPORTANT:
// A boundary is only unambiguous when the marks cover at least one unique
// column.
type Boundary []BoundaryMark

// Apply applies the boundary filter to a gorm query. An empty boundary leaves
// the query unchanged: the first page starts at the beginning of the dataset.
func (b Boundary) Apply(db *gorm.DB) *gorm.DB {
	exp := b.expand().toGORMExpression()
	if exp == nil {
		return db
	}

	return db.Clauses(exp)
}

// ToSQL returns the boundary filter as an SQL expression with placeholder
// values.
//
// Usage:
//
//	query := fmt.Sprintf("SELECT * FROM table WHERE %s", clause)
func (b Boundary) ToSQL() (string, []driver.Value) {
	if len(b) == 0 {
		return "TRUE", nil
	}

	return b.expand().toSQLClause()
}

// expand converts a boundary into the filter selecting every row strictly
// after it. A boundary of marks
//
//	[(C1, O1, V1), (C2, O2, V2)... (Cn, On, Vn)]
//
// becomes, for n=2:
//
//	(C1 O1 V1) OR (C1 = V1 AND C2 O2 V2)
//
// Each mark contributes one group: its own comparison, prefixed with equality
// conditions on every preceding column. The resulting OR-of-ANDs pins the
// position in the dataset exactly.
func (b Boundary) expand() keysetFilter {
	if len(b) == 0 {
		return nil
	}

	filter := make(keysetFilter, 0, len(b))
	for i := range b {
		equalityPrefix := lo.Map(b[:i], func(mark BoundaryMark, _ int) keysetCond {
			return keysetCond{
				Column:     mark.Column,
				Value:      mark.Value,
				Comparator: comparatorEq,
			}
		})

		group := make(keysetGroup, 0, len(equalityPrefix)+1)
		group = append(group, equalityPrefix...)
		group = append(group, keysetCond(b[i]))

		filter = append(filter, group)
	}

	return filter
}

// Getters maps ordering columns to functions extracting the column's value
// from a row. Provide one getter per ordering column used for keyset paging.
//
// Example:
//
//	golistview.Getters[News]{
//		"id":           func(n News) any { return n.ID },
//		"published_at": func(n News) any { return n.PublishedAt },
//	}
type Getters[T any] map[string]func(T) any

// boundaryAfter builds the boundary following last for the given orderings:
// one mark per ordering column, comparing in the direction the sort continues.
func boundaryAfter[T any](last T, sort Orderings, getters Getters[T]) (Boundary, error) {
	ret := make(Boundary, 0, len(sort))
	for _, orderBy := range sort {
		getter, ok := getters[orderBy.Column]
		if !ok {
			return nil, fmt.Errorf("cannot find getter for column '%s' met in ordering", orderBy.Column)
		}

		ret = append(ret, BoundaryMark{
			Column:     orderBy.Column,
			Value:      getter(last),
			Comparator: orderBy.Direction.ForComparator(),
		})
	}

	return ret, nil
}

type (
	keysetCond struct {
		Column     string
		Value      any
		Comparator Comparator
	}

	keysetGroup []keysetCond

	// keysetFilter is the disjunctive normal form of a boundary filter. Groups
	// are joined by OR; the conditions inside a group by AND.
	//
	//	filter = G1 OR G2 ... OR Gn, where Gi = Ci1 AND Ci2 ... AND Cim.
	keysetFilter []keysetGroup
)

// toGORMExpression converts a condition of the form Comparator(Column, Value)
// into an SQL condition "Column Comparator Value" represented as a
// clause.Expression.
//
// IMPORTANT: The method uses the SQL placeholder "?".
//
// Example:
//
//	keysetCond = { Column: "id", Comparator: ">", Value: "123"}
//
// Result:
//
//	"id > 123"
func (c keysetCond) toGORMExpression() clause.Expression {
	sqlClause, arg := c.toSQLClause()

	return clause.Expr{
		SQL:  sqlClause,
		Vars: []any{arg},
	}
}

// toSQLClause converts a condition of the form Comparator(Column, Value) to
// an SQL condition of the form "Column Comparator ?" with a corresponding
// value. Returns the SQL string and the value for the placeholder.
//
// Example:
//
//	keysetCond = { Column: "id", Comparator: ">", Value: 123}
//
// Result:
//
//	("id > ?", 123)
func (c keysetCond) toSQLClause() (string, driver.Value) {
	return fmt.Sprintf("%s %s ?", c.Column, c.Comparator), parseAnyValue(c.Value)
}

func parseAnyValue(v any) any {
	// Try parsing a value as time.Time. If it succeeds, return time.Time.
	// Otherwise return the original value.
	fnParseBytesToTimeOrValue := func(vBytes []byte) any {
		dst := time.Time{}
		err := dst.UnmarshalText(vBytes)
		if err == nil {
			return dst
		}

		return v
	}

	switch vt := v.(type) {
	case string:
		return fnParseBytesToTimeOrValue([]byte(vt))
	case []byte:
		return fnParseBytesToTimeOrValue(vt)
	default:
		return v
	}
}

// toGORMExpression converts a group (K1, K2, K3) into a gorm expression
// "K1 AND K2 AND K3" where each Ki is expanded via keysetCond.toGORMExpression.
func (g keysetGroup) toGORMExpression() clause.Expression {
	andExpressions := make([]clause.Expression, 0, len(g))
	for _, cond := range g {
		andExpressions = append(andExpressions, cond.toGORMExpression())
	}

	if len(andExpressions) == 1 {
		return andExpressions[0]
	} else if len(andExpressions) > 1 {
		return clause.And(andExpressions...)
	}

	return nil
}

// toSQLClause converts a group (K1, K2, K3) into an SQL condition
// "(K1 AND K2 AND K3)" with corresponding values. Returns the SQL string and
// the list of values for placeholders.
//
// Example:
//
//	keysetGroup = {
//		{Column: "id", Comparator: ">", Value: 5},
//		{Column: "name", Comparator: "<", Value: "abc"}
//	}
//
// Result:
//
//	("(id > ? AND name < ?)", [5, "abc"])
func (g keysetGroup) toSQLClause() (string, []driver.Value) {
	andClauses := make([]string, 0, len(g))
	andValues := make([]driver.Value, 0, len(g))

	for _, cond := range g {
		andClause, andValue := cond.toSQLClause()
		andClauses = append(andClauses, andClause)
		andValues = append(andValues, andValue)
	}

	if len(andClauses) >= 1 {
		return fmt.Sprintf("(%s)", strings.Join(andClauses, " AND ")), andValues
	}

	return "", nil
}

// toGORMExpression converts a keysetFilter into a clause.Expression.
// For each group it calls keysetGroup.toGORMExpression and joins groups with OR.
func (f keysetFilter) toGORMExpression() clause.Expression {
	orExpressions := make([]clause.Expression, 0, len(f))

	for _, group := range f {
		andExpressions := group.toGORMExpression()
		if andExpressions == nil {
			continue
		}

		orExpressions = append(orExpressions, andExpressions)
	}

	if len(orExpressions) == 1 {
		return orExpressions[0]
	} else if len(orExpressions) > 1 {
		return clause.Or(orExpressions...)
	}

	return nil
}

// toSQLClause converts a keysetFilter into an SQL condition. For each group it
// calls keysetGroup.toSQLClause and joins groups with OR. Returns the SQL
// string and the list of values for placeholders.
//
// Example:
//
//	keysetFilter = {
//		{{Column: "id", Comparator: "<", Value: 10}},
//		{{Column: "id", Comparator: "=", Value: 10}, {Column: "name", Comparator: "<", Value: "abc"}},
//	}
//
// Result:
//
//	("((id < ?) OR (id = ? AND name < ?))", [10, 10, "abc"])
func (f keysetFilter) toSQLClause() (string, []driver.Value) {
	orClauses := make([]string, 0, len(f))
	values := make([]driver.Value, 0, len(f))

	for _, group := range f {
		orClause, orValues := group.toSQLClause()
		if orClause == "" {
			continue
		}

		orClauses = append(orClauses, orClause)
		values = append(values, orValues...)
	}

	if len(orClauses) >= 1 {
		return fmt.Sprintf("(%s)", strings.Join(orClauses, " OR ")), values
	}

	return "TRUE", nil
}
