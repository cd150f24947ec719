package selector

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablekit/pkg/frame"
)

func sampleTable(t *testing.T) *frame.Table {
	t.Helper()
	tbl, err := frame.New(
		&frame.Column{Name: "id", Type: frame.Int64, Values: []any{int64(1), int64(2), int64(3)}},
		&frame.Column{Name: "price", Type: frame.Float64, Values: []any{10.0, 60.0, 40.0}},
		&frame.Column{Name: "city", Type: frame.String, Values: []any{"Baghdad", "Basra", "Erbil"}},
	)
	require.NoError(t, err)
	return tbl
}

func TestByName(t *testing.T) {
	tbl := sampleTable(t)

	got, err := ByName(tbl, []string{"city", "id"})
	require.NoError(t, err)
	assert.Equal(t, []string{"city", "id"}, got.Names())
	assert.Equal(t, 3, got.NumRows())

	_, err = ByName(tbl, []string{"city", "ghost"})
	assert.ErrorIs(t, err, frame.ErrColumnNotFound)
}

func TestByName_ReturnsCopy(t *testing.T) {
	tbl := sampleTable(t)
	got, err := ByName(tbl, []string{"id"})
	require.NoError(t, err)

	got.ColumnAt(0).Values[0] = int64(99)
	orig, _ := tbl.Column("id")
	assert.Equal(t, int64(1), orig.Values[0])
}

func TestByType(t *testing.T) {
	tbl := sampleTable(t)

	assert.Equal(t, []string{"id"}, ByType(tbl, frame.Int64).Names())
	assert.Equal(t, []string{"price"}, ByType(tbl, frame.Float64).Names())
	assert.Equal(t, 0, ByType(tbl, frame.DateTime).NumCols())
}

func TestByCondition(t *testing.T) {
	tbl := sampleTable(t)

	// Keep numeric columns whose sum exceeds 100.
	sumOver100 := ConditionFunc(func(t *frame.Table) ([]bool, error) {
		mask := make([]bool, t.NumCols())
		for i := 0; i < t.NumCols(); i++ {
			xs, _ := t.ColumnAt(i).Floats()
			sum := 0.0
			for _, x := range xs {
				sum += x
			}
			mask[i] = t.ColumnAt(i).Type.IsNumeric() && sum > 100
		}
		return mask, nil
	})

	got, err := ByCondition(tbl, sumOver100)
	require.NoError(t, err)
	assert.Equal(t, []string{"price"}, got.Names())
}

func TestByCondition_Errors(t *testing.T) {
	tbl := sampleTable(t)

	_, err := ByCondition(tbl, ConditionFunc(func(*frame.Table) ([]bool, error) {
		return []bool{true}, nil
	}))
	var cfgErr *frame.ConfigError
	assert.ErrorAs(t, err, &cfgErr)

	wantErr := errors.New("boom")
	_, err = ByCondition(tbl, ConditionFunc(func(*frame.Table) ([]bool, error) {
		return nil, wantErr
	}))
	assert.ErrorIs(t, err, wantErr)
}
