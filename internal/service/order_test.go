package service

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateOrder(t *testing.T) {
	existing := []float64{1024, 2048, 3072}

	tests := []struct {
		name      string
		candidate string
		want      float64
		wantErr   error
	}{
		{name: "absent", candidate: "", wantErr: ErrMissingOrder},
		{name: "blank", candidate: "   ", wantErr: ErrMissingOrder},
		{name: "not a number", candidate: "abc", wantErr: ErrInvalidOrder},
		{name: "nan", candidate: "NaN", wantErr: ErrInvalidOrder},
		{name: "infinity", candidate: "+Inf", wantErr: ErrInvalidOrder},
		{name: "overflow", candidate: "1e400", wantErr: ErrInvalidOrder},
		{name: "zero", candidate: "0", wantErr: ErrNonPositiveOrder},
		{name: "negative", candidate: "-5", wantErr: ErrNonPositiveOrder},
		{name: "duplicate", candidate: "2048", wantErr: ErrDuplicateOrder},
		{name: "hex float", candidate: "0x1p-2", wantErr: ErrInvalidOrder},
		{name: "signed hex", candidate: "+0X10", wantErr: ErrInvalidOrder},
		{name: "duplicate written differently", candidate: "2.048e3", wantErr: ErrDuplicateOrder},
		{name: "between", candidate: "1536", want: 1536},
		{name: "fraction", candidate: " 0.25 ", want: 0.25},
		{name: "after last", candidate: "4096", want: 4096},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateOrder(tt.candidate, existing)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateOrderChecksInSequence(t *testing.T) {
	// 非數字在重複檢查之前就失敗
	_, err := ValidateOrder("x", []float64{1})
	assert.ErrorIs(t, err, ErrInvalidOrder)

	// 非正數在重複檢查之前就失敗
	_, err = ValidateOrder("-1", []float64{-1})
	assert.ErrorIs(t, err, ErrNonPositiveOrder)
}

func TestValidateOrderInsertBetween(t *testing.T) {
	existing := []float64{1024, 2048}

	got, err := ValidateOrder("1536", existing)
	require.NoError(t, err)

	orders := append(existing, got)
	sort.Float64s(orders)
	assert.Equal(t, []float64{1024, 1536, 2048}, orders)
}

func TestValidateOrderNamesDuplicate(t *testing.T) {
	_, err := ValidateOrder("2.048e3", []float64{2048})
	require.ErrorIs(t, err, ErrDuplicateOrder)
	assert.Contains(t, err.Error(), "2048")
}

func TestFormatOrderRoundTrip(t *testing.T) {
	for _, v := range []float64{1, 1536, 0.1, 1024.0000001} {
		got, err := ValidateOrder(FormatOrder(v), nil)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}
