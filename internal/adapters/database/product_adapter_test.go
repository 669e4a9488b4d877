package database

import (
	"strconv"
	"strings"
	"testing"

	"github.com/doug-martin/goqu/v9"
	"github.com/glowmart/ai-product-search/backend/internal/domain/entities"
	"github.com/glowmart/ai-product-search/backend/internal/domain/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAdapter() *ProductAdapter {
	return &ProductAdapter{db: goqu.New("postgres", nil)}
}

func TestSearchDataset_RelevanceSort_UsesFixedWeightsAndRawQuery(t *testing.T) {
	params := repositories.SearchParams{
		Query:    "cheap waterproof mascara long lasting",
		RawQuery: "cheap waterproof mascara",
		SortBy:   entities.SortByRelevance,
		Limit:    20,
	}

	sql, _, err := testAdapter().searchDataset(params).ToSQL()
	require.NoError(t, err)

	// Filter uses the enhanced query, the relevance tiebreak the raw query.
	assert.Contains(t, sql, "%cheap waterproof mascara long lasting%")
	assert.Contains(t, sql, "rating * 0.3")
	assert.Contains(t, sql, "review_count / 100")
	assert.Contains(t, sql, "* 0.2")
	assert.Contains(t, sql, "CASE WHEN name ILIKE '%cheap waterproof mascara%' THEN 0.5 ELSE 0 END")
	assert.Contains(t, sql, `"in_stock" IS TRUE`)
	// Deterministic ordering for equal scores.
	assert.Contains(t, sql, `"id" ASC`)
}

func TestSearchDataset_SortModes(t *testing.T) {
	cases := []struct {
		sortBy   entities.SortBy
		fragment string
	}{
		{entities.SortByPriceAsc, `"price" ASC`},
		{entities.SortByPriceDesc, `"price" DESC`},
		{entities.SortByRating, `"rating" DESC, "review_count" DESC`},
		{entities.SortByPopularity, `"review_count" DESC, "rating" DESC`},
	}

	for _, tc := range cases {
		t.Run(string(tc.sortBy), func(t *testing.T) {
			sql, _, err := testAdapter().searchDataset(repositories.SearchParams{
				Query:  "serum",
				SortBy: tc.sortBy,
				Limit:  20,
			}).ToSQL()
			require.NoError(t, err)
			assert.Contains(t, sql, tc.fragment)
		})
	}
}

func TestSearchDataset_PriceBoundsBothApplied(t *testing.T) {
	// min > max is not an error: the conjunction simply matches nothing.
	minPrice, maxPrice := 80.5, 20.5
	sql, _, err := testAdapter().searchDataset(repositories.SearchParams{
		MinPrice: &minPrice,
		MaxPrice: &maxPrice,
		SortBy:   entities.SortByPriceAsc,
		Limit:    20,
	}).ToSQL()
	require.NoError(t, err)

	assert.Contains(t, sql, `"price" >= 80.5`)
	assert.Contains(t, sql, `"price" <= 20.5`)
}

func TestSearchAndCount_ShareSamePredicate(t *testing.T) {
	minPrice := 10.5
	params := repositories.SearchParams{
		Query:    "vitamin c serum",
		Category: "skincare",
		Brand:    "GlowLab",
		MinPrice: &minPrice,
		SortBy:   entities.SortByRating,
		Limit:    20,
		Offset:   40,
	}

	adapter := testAdapter()

	searchSQL, _, err := adapter.searchDataset(params).ToSQL()
	require.NoError(t, err)

	countSQL, _, err := adapter.db.From("products").
		Select(goqu.COUNT("*")).
		Where(searchFilter(params)...).
		ToSQL()
	require.NoError(t, err)

	wherePart := func(sql string) string {
		i := strings.Index(sql, "WHERE")
		require.Positive(t, i)
		rest := sql[i:]
		if j := strings.Index(rest, " ORDER BY"); j >= 0 {
			rest = rest[:j]
		}
		return rest
	}

	assert.Equal(t, wherePart(searchSQL), wherePart(countSQL))
}

func TestSearchDataset_EmptyQuerySkipsTextFilter(t *testing.T) {
	sql, _, err := testAdapter().searchDataset(repositories.SearchParams{
		SortBy: entities.SortByPopularity,
		Limit:  20,
	}).ToSQL()
	require.NoError(t, err)

	assert.NotContains(t, sql, "ILIKE")
	assert.Contains(t, sql, `"in_stock" IS TRUE`)
}

func TestFindSimilar_PriceBand(t *testing.T) {
	adapter := testAdapter()
	ref := &entities.Product{ID: "p-1", Category: "skincare", Price: 20}

	sql, _, err := adapter.similarDataset(ref, 6).ToSQL()
	require.NoError(t, err)

	lower := strconv.FormatFloat(ref.Price*similarPriceLowerFactor, 'f', -1, 64)
	upper := strconv.FormatFloat(ref.Price*similarPriceUpperFactor, 'f', -1, 64)
	assert.Contains(t, sql, `"price" >= `+lower)
	assert.Contains(t, sql, `"price" <= `+upper)
	assert.Contains(t, sql, `"category" = 'skincare'`)
	assert.Contains(t, sql, `"id" != 'p-1'`)
	assert.Contains(t, sql, `"in_stock" IS TRUE`)
	assert.Contains(t, sql, `"rating" DESC`)
	assert.Contains(t, sql, "LIMIT 6")
}
