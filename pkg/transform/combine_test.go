package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablekit/pkg/frame"
)

func TestCombine_Vertical(t *testing.T) {
	a, err := frame.New(
		&frame.Column{Name: "a", Type: frame.Int64, Values: []any{int64(1), int64(2)}},
		&frame.Column{Name: "b", Type: frame.String, Values: []any{"x", "y"}},
	)
	require.NoError(t, err)
	b, err := frame.New(
		&frame.Column{Name: "b", Type: frame.String, Values: []any{"p", "q", "r"}},
		&frame.Column{Name: "c", Type: frame.Float64, Values: []any{1.0, 2.0, 3.0}},
	)
	require.NoError(t, err)

	got, err := Combine(a, b, CombineOptions{Direction: Vertical})
	require.NoError(t, err)

	assert.Equal(t, 5, got.NumRows())
	assert.Equal(t, []string{"a", "b", "c"}, got.Names())

	colA, _ := got.Column("a")
	assert.Equal(t, []any{int64(1), int64(2), nil, nil, nil}, colA.Values)
	colB, _ := got.Column("b")
	assert.Equal(t, []any{"x", "y", "p", "q", "r"}, colB.Values)
	colC, _ := got.Column("c")
	assert.Equal(t, []any{nil, nil, 1.0, 2.0, 3.0}, colC.Values)
}

func TestCombine_VerticalPromotesDTypes(t *testing.T) {
	a, err := frame.New(
		&frame.Column{Name: "v", Type: frame.Int64, Values: []any{int64(1)}},
	)
	require.NoError(t, err)
	b, err := frame.New(
		&frame.Column{Name: "v", Type: frame.Float64, Values: []any{2.5}},
	)
	require.NoError(t, err)

	got, err := Combine(a, b, CombineOptions{Direction: Vertical})
	require.NoError(t, err)

	v, _ := got.Column("v")
	assert.Equal(t, frame.Float64, v.Type)
	assert.Equal(t, []any{1.0, 2.5}, v.Values)
}

func TestCombine_HorizontalRequiresJoinColumns(t *testing.T) {
	a, err := frame.New(&frame.Column{Name: "k", Type: frame.Int64, Values: []any{int64(1)}})
	require.NoError(t, err)
	b, err := frame.New(&frame.Column{Name: "k", Type: frame.Int64, Values: []any{int64(1)}})
	require.NoError(t, err)

	_, err = Combine(a, b, CombineOptions{Direction: Horizontal})
	var cfgErr *frame.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "on", cfgErr.Param)
}

func TestCombine_InvalidDirection(t *testing.T) {
	a, err := frame.New(&frame.Column{Name: "k", Type: frame.Int64, Values: []any{int64(1)}})
	require.NoError(t, err)

	_, err = Combine(a, a, CombineOptions{Direction: "diagonal"})
	var cfgErr *frame.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestCombine_InvalidJoinKind(t *testing.T) {
	a, err := frame.New(&frame.Column{Name: "k", Type: frame.Int64, Values: []any{int64(1)}})
	require.NoError(t, err)

	_, err = Combine(a, a, CombineOptions{Direction: Horizontal, How: "cross", On: []string{"k"}})
	var cfgErr *frame.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func joinFixtures(t *testing.T) (*frame.Table, *frame.Table) {
	t.Helper()
	a, err := frame.New(
		&frame.Column{Name: "k", Type: frame.String, Values: []any{"a", "b", "c"}},
		&frame.Column{Name: "left", Type: frame.Int64, Values: []any{int64(1), int64(2), int64(3)}},
	)
	require.NoError(t, err)
	b, err := frame.New(
		&frame.Column{Name: "k", Type: frame.String, Values: []any{"b", "c", "d"}},
		&frame.Column{Name: "right", Type: frame.Int64, Values: []any{int64(20), int64(30), int64(40)}},
	)
	require.NoError(t, err)
	return a, b
}

func TestCombine_HorizontalJoins(t *testing.T) {
	a, b := joinFixtures(t)

	tests := []struct {
		how      JoinKind
		wantKeys []any
	}{
		{InnerJoin, []any{"b", "c"}},
		{LeftJoin, []any{"a", "b", "c"}},
		{RightJoin, []any{"b", "c", "d"}},
		{OuterJoin, []any{"a", "b", "c", "d"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.how), func(t *testing.T) {
			got, err := Combine(a, b, CombineOptions{
				Direction: Horizontal,
				How:       tt.how,
				On:        []string{"k"},
			})
			require.NoError(t, err)

			k, _ := got.Column("k")
			assert.Equal(t, tt.wantKeys, k.Values)
			assert.Equal(t, []string{"k", "left", "right"}, got.Names())
		})
	}
}

func TestCombine_OuterJoinPadsMissing(t *testing.T) {
	a, b := joinFixtures(t)

	got, err := Combine(a, b, CombineOptions{Direction: Horizontal, How: OuterJoin, On: []string{"k"}})
	require.NoError(t, err)

	left, _ := got.Column("left")
	assert.Equal(t, []any{int64(1), int64(2), int64(3), nil}, left.Values)
	right, _ := got.Column("right")
	assert.Equal(t, []any{nil, int64(20), int64(30), int64(40)}, right.Values)
}

func TestCombine_OverlapSuffixes(t *testing.T) {
	a, err := frame.New(
		&frame.Column{Name: "k", Type: frame.String, Values: []any{"a"}},
		&frame.Column{Name: "v", Type: frame.Int64, Values: []any{int64(1)}},
	)
	require.NoError(t, err)
	b, err := frame.New(
		&frame.Column{Name: "k", Type: frame.String, Values: []any{"a"}},
		&frame.Column{Name: "v", Type: frame.Int64, Values: []any{int64(2)}},
	)
	require.NoError(t, err)

	got, err := Combine(a, b, CombineOptions{Direction: Horizontal, How: InnerJoin, On: []string{"k"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"k", "v_x", "v_y"}, got.Names())
}

func TestCombine_DefaultHowIsOuter(t *testing.T) {
	a, b := joinFixtures(t)

	got, err := Combine(a, b, CombineOptions{Direction: Horizontal, On: []string{"k"}})
	require.NoError(t, err)
	assert.Equal(t, 4, got.NumRows())
}
