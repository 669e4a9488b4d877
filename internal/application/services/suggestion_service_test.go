package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest_CombinesNamesAndCommonTerms(t *testing.T) {
	products := &fakeProductRepo{
		suggestNamesFn: func(ctx context.Context, partial string, limit int) ([]string, error) {
			assert.Equal(t, "mas", partial)
			assert.Equal(t, 5, limit)
			return []string{"Maybelline Sky High Mascara"}, nil
		},
	}
	svc := NewSuggestionService(products)

	suggestions := svc.Suggest(context.Background(), "mas")

	assert.Equal(t, []string{"Maybelline Sky High Mascara", "mascara"}, suggestions)
}

func TestSuggest_EmptyPartial(t *testing.T) {
	svc := NewSuggestionService(&fakeProductRepo{})

	assert.Empty(t, svc.Suggest(context.Background(), "  "))
}

func TestSuggest_Deduplicates(t *testing.T) {
	products := &fakeProductRepo{
		suggestNamesFn: func(ctx context.Context, partial string, limit int) ([]string, error) {
			return []string{"mascara", "Mascara"}, nil
		},
	}
	svc := NewSuggestionService(products)

	suggestions := svc.Suggest(context.Background(), "mascara")

	assert.Equal(t, []string{"mascara"}, suggestions)
}

func TestSuggest_LookupFailureFallsBackToCommonTerms(t *testing.T) {
	products := &fakeProductRepo{
		suggestNamesFn: func(ctx context.Context, partial string, limit int) ([]string, error) {
			return nil, errors.New("db down")
		},
	}
	svc := NewSuggestionService(products)

	suggestions := svc.Suggest(context.Background(), "lip")

	assert.Equal(t, []string{"lipstick"}, suggestions)
}

func TestSuggest_CappedAtTen(t *testing.T) {
	products := &fakeProductRepo{
		suggestNamesFn: func(ctx context.Context, partial string, limit int) ([]string, error) {
			return []string{"s1", "s2", "s3", "s4", "s5"}, nil
		},
	}
	svc := NewSuggestionService(products)

	// "s" matches many common terms; total candidates exceed the cap
	suggestions := svc.Suggest(context.Background(), "s")

	assert.Len(t, suggestions, 10)
}
