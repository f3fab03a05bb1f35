package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSearchFilter(t *testing.T) {
	tests := []struct {
		name       string
		searchText string
		price      string
		operator   string
		wantPrice  string
		wantOp     PriceOperator
		wantErr    error
	}{
		{name: "text only", searchText: " shirt "},
		{name: "price defaults to equal", price: "10", wantPrice: "10", wantOp: PriceOperatorEqual},
		{name: "less", price: "10.5", operator: "less", wantPrice: "10.5", wantOp: PriceOperatorLess},
		{name: "more is case insensitive", price: "3", operator: "MORE", wantPrice: "3", wantOp: PriceOperatorMore},
		{name: "bad operator", price: "3", operator: "between", wantErr: ErrInvalidSearchFilter},
		{name: "bad price", price: "abc", wantErr: ErrInvalidSearchFilter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := NewSearchFilter(tt.searchText, tt.price, tt.operator)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			if tt.wantPrice == "" {
				assert.False(t, filter.HasPrice())
				assert.Equal(t, "shirt", filter.SearchText)
				return
			}
			require.True(t, filter.HasPrice())
			assert.Equal(t, tt.wantPrice, filter.Price.String())
			assert.Equal(t, tt.wantOp, filter.Operator)
		})
	}
}

func TestPriceOperatorSQL(t *testing.T) {
	assert.Equal(t, "=", PriceOperatorEqual.SQL())
	assert.Equal(t, "<", PriceOperatorLess.SQL())
	assert.Equal(t, ">", PriceOperatorMore.SQL())
	assert.Equal(t, "", PriceOperator("like").SQL())
}
