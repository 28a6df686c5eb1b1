// internal/domain/pagination.go
package domain

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
)

// PageSize is the number of expenses per list page.
const PageSize = 20

// Cursor marks a position in the newest-first (date desc, id desc) ordering.
// Reverse cursors walk back towards newer rows.
type Cursor struct {
	Date    time.Time
	ID      int64
	Reverse bool
}

type cursorPayload struct {
	D string `json:"d"`
	I int64  `json:"i"`
	R bool   `json:"r,omitempty"`
}

func (c Cursor) Encode() string {
	b, _ := json.Marshal(cursorPayload{D: FormatDate(c.Date), I: c.ID, R: c.Reverse})
	return base64.RawURLEncoding.EncodeToString(b)
}

func DecodeCursor(s string) (*Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}
	var p cursorPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}
	d, err := ParseDate(p.D)
	if err != nil {
		return nil, fmt.Errorf("decode cursor date: %w", err)
	}
	if p.I <= 0 {
		return nil, fmt.Errorf("decode cursor: bad id %d", p.I)
	}
	return &Cursor{Date: d, ID: p.I, Reverse: p.R}, nil
}

type ExpensePage struct {
	Items    []Expense
	Next     *Cursor
	Previous *Cursor
}

// BuildPage turns a store result into a page. items must already be in
// newest-first order; hasMore reports whether the store found a row beyond the
// page in the direction of travel.
func BuildPage(items []Expense, hasMore bool, cur *Cursor) ExpensePage {
	page := ExpensePage{Items: items}
	if len(items) == 0 {
		return page
	}

	first, last := items[0], items[len(items)-1]
	reverse := cur != nil && cur.Reverse

	if reverse {
		page.Next = &Cursor{Date: last.Date, ID: last.ID}
		if hasMore {
			page.Previous = &Cursor{Date: first.Date, ID: first.ID, Reverse: true}
		}
		return page
	}

	if hasMore {
		page.Next = &Cursor{Date: last.Date, ID: last.ID}
	}
	if cur != nil {
		page.Previous = &Cursor{Date: first.Date, ID: first.ID, Reverse: true}
	}
	return page
}
