package pagination

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type row struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

func newTestDB(t *testing.T, count int) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&row{}))

	for i := 0; i < count; i++ {
		require.NoError(t, db.Create(&row{Name: fmt.Sprintf("row%03d", i)}).Error)
	}
	return db
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   Params
		want Params
	}{
		{Params{Page: 0, PageSize: 0}, Params{Page: 1, PageSize: DefaultPageSize}},
		{Params{Page: -5, PageSize: 50}, Params{Page: 1, PageSize: 50}},
		{Params{Page: 2, PageSize: 101}, Params{Page: 2, PageSize: MaxPageSize}},
		{Params{Page: 4, PageSize: 500}, Params{Page: 4, PageSize: MaxPageSize}},
		{Params{Page: 3, PageSize: MaxPageSize}, Params{Page: 3, PageSize: MaxPageSize}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.in.Normalize())
	}
}

func TestTotalPagesCeiling(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 3, TotalPages(25, 10))
}

func TestPaginateMiddleAndLastPage(t *testing.T) {
	db := newTestDB(t, 25)

	page, err := Paginate[row](db.Model(&row{}), Params{Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(25), page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Items, 10)

	last, err := Paginate[row](db.Model(&row{}), Params{Page: 3, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, last.Items, 5)
}

func TestPaginatePastEndIsEmptyNotError(t *testing.T) {
	db := newTestDB(t, 25)

	page, err := Paginate[row](db.Model(&row{}), Params{Page: 9, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(25), page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)
}

func TestPaginateEmptyTable(t *testing.T) {
	db := newTestDB(t, 0)

	page, err := Paginate[row](db.Model(&row{}), Params{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Zero(t, page.TotalCount)
	assert.Zero(t, page.TotalPages)
}

func TestPaginatePreservesFilter(t *testing.T) {
	db := newTestDB(t, 30)

	query := db.Model(&row{}).Where("name < ?", "row010")
	page, err := Paginate[row](query, Params{Page: 1, PageSize: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(10), page.TotalCount)
	assert.Len(t, page.Items, 10)
}
