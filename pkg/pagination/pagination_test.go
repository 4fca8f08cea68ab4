package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateClampsOutOfRangeValues(t *testing.T) {
	p := &PaginationParams{Page: 0, PerPage: 500}
	p.Validate()

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.PerPage)

	p = &PaginationParams{Page: -3, PerPage: 0}
	p.Validate()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 15, p.PerPage)
}

func TestOffset(t *testing.T) {
	p := &PaginationParams{Page: 3, PerPage: 20}
	assert.Equal(t, 40, p.Offset())
}

func TestNewPaginationComputesBounds(t *testing.T) {
	pg := NewPagination(2, 15, 31)

	assert.Equal(t, 3, pg.TotalPages)
	assert.True(t, pg.HasNext)
	assert.True(t, pg.HasPrev)

	last := NewPagination(3, 15, 31)
	assert.False(t, last.HasNext)
	assert.True(t, last.HasPrev)

	empty := NewPagination(1, 15, 0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrev)
}

func TestCursorRoundTrip(t *testing.T) {
	created := time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC)
	encoded := EncodeCursor("abc-123", created)

	params := &CursorParams{Cursor: encoded}
	cursor, err := params.DecodeCursor()
	require.NoError(t, err)
	require.NotNil(t, cursor)
	assert.Equal(t, "abc-123", cursor.ID)
	assert.True(t, created.Equal(cursor.CreatedAt))
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	params := &CursorParams{Cursor: "not base64!!"}
	_, err := params.DecodeCursor()
	assert.Error(t, err)

	empty := &CursorParams{}
	cursor, err := empty.DecodeCursor()
	require.NoError(t, err)
	assert.Nil(t, cursor)
}

func TestCursorParamsValidateClampsLimit(t *testing.T) {
	p := &CursorParams{Limit: 0}
	p.Validate()
	assert.Equal(t, 15, p.Limit)
	assert.Equal(t, CursorDirectionNext, p.Direction)

	p = &CursorParams{Limit: 500, Direction: CursorDirectionPrev}
	p.Validate()
	assert.Equal(t, 100, p.Limit)
	assert.Equal(t, CursorDirectionPrev, p.Direction)
}

type cursorRow struct {
	id      string
	created time.Time
}

func TestNewCursorPaginationTrimsExtraRow(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	rows := []cursorRow{
		{"a", base},
		{"b", base.Add(time.Minute)},
		{"c", base.Add(2 * time.Minute)},
	}

	// Fetched limit+1 rows, so a next page exists
	pag, items := NewCursorPagination(rows, 2,
		func(r cursorRow) string { return r.id },
		func(r cursorRow) time.Time { return r.created },
	)

	require.Len(t, items, 2)
	assert.True(t, pag.HasNext)
	require.NotNil(t, pag.NextCursor)
	assert.Equal(t, EncodeCursor("b", base.Add(time.Minute)), *pag.NextCursor)
	require.NotNil(t, pag.PrevCursor)
	assert.Equal(t, EncodeCursor("a", base), *pag.PrevCursor)

	// Exactly limit rows means this was the last page
	pag, items = NewCursorPagination(rows[:2], 2,
		func(r cursorRow) string { return r.id },
		func(r cursorRow) time.Time { return r.created },
	)
	require.Len(t, items, 2)
	assert.False(t, pag.HasNext)
}
