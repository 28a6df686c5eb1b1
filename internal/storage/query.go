// internal/storage/query.go
package storage

import (
	"strconv"
	"strings"
	"time"

	"spending-tracker/internal/domain"
)

// Dialect holds the per-backend differences the expense query builder needs.
type Dialect struct {
	Placeholder func(n int) string
	// Like is the case-insensitive LIKE operator.
	Like string
	// DateArg converts a calendar date into a bind argument.
	DateArg func(t time.Time) any
}

var Postgres = Dialect{
	Placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
	Like:        "ILIKE",
	DateArg:     func(t time.Time) any { return t },
}

// SQLite's LIKE is case-insensitive for ASCII already.
var SQLite = Dialect{
	Placeholder: func(int) string { return "?" },
	Like:        "LIKE",
	DateArg:     func(t time.Time) any { return domain.FormatDate(t) },
}

// ExpenseQuery is the WHERE/ORDER/LIMIT tail of a list query plus its arguments.
type ExpenseQuery struct {
	Where   string
	OrderBy string
	Limit   string
	Args    []any
}

// SQL appends the query tail to a SELECT ... FROM expenses prefix.
func (q ExpenseQuery) SQL(selectFrom string) string {
	return selectFrom + " WHERE " + q.Where + " ORDER BY " + q.OrderBy + " " + q.Limit
}

type queryBuilder struct {
	d     Dialect
	conds []string
	args  []any
}

func (b *queryBuilder) add(cond string, args ...any) {
	for _, a := range args {
		b.args = append(b.args, a)
		cond = strings.Replace(cond, "{}", b.d.Placeholder(len(b.args)), 1)
	}
	b.conds = append(b.conds, cond)
}

// BuildExpenseList turns typed filters and a cursor into SQL. It always scopes by
// owner and fetches limit+1 rows so the caller can tell whether more exist.
// Reverse cursors are ordered ascending; the caller flips the rows back.
func BuildExpenseList(d Dialect, ownerID int64, f domain.ExpenseFilter, cur *domain.Cursor, limit int) ExpenseQuery {
	b := &queryBuilder{d: d}
	b.add("owner_id = {}", ownerID)

	if s := strings.TrimSpace(f.Search); s != "" {
		b.add("description "+d.Like+" {} ESCAPE '\\'", "%"+escapeLike(s)+"%")
	}
	if c := strings.TrimSpace(f.Category); c != "" {
		b.add("UPPER(category) = {}", strings.ToUpper(c))
	}
	if f.MinDate != nil {
		b.add("date >= {}", d.DateArg(*f.MinDate))
	}
	if f.MaxDate != nil {
		b.add("date <= {}", d.DateArg(*f.MaxDate))
	}

	order := "date DESC, id DESC"
	if cur != nil {
		if cur.Reverse {
			b.add("(date, id) > ({}, {})", d.DateArg(cur.Date), cur.ID)
			order = "date ASC, id ASC"
		} else {
			b.add("(date, id) < ({}, {})", d.DateArg(cur.Date), cur.ID)
		}
	}

	b.args = append(b.args, limit+1)
	return ExpenseQuery{
		Where:   strings.Join(b.conds, " AND "),
		OrderBy: order,
		Limit:   "LIMIT " + d.Placeholder(len(b.args)),
		Args:    b.args,
	}
}

// TrimPage cuts the extra probe row and restores newest-first order.
func TrimPage(rows []domain.Expense, cur *domain.Cursor, limit int) ([]domain.Expense, bool) {
	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}
	if cur != nil && cur.Reverse {
		for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
			rows[i], rows[j] = rows[j], rows[i]
		}
	}
	return rows, hasMore
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
