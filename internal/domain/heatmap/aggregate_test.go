package heatmap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAggregate_CountsDuplicates(t *testing.T) {
	t.Parallel()

	got := Aggregate("x=10;y=20|x=10;y=20|x=11;y=21")

	require.Equal(t, []Point{
		{X: 10, Y: 20, Value: 2},
		{X: 11, Y: 21, Value: 1},
	}, got)
}

func TestAggregate_SkipsMalformedSegments(t *testing.T) {
	t.Parallel()

	got := Aggregate("x=1;y=2||bad|x=;y=3|x=1;z=2|x=4;y=5;x=6| x=1 ; y=2 ")

	require.Equal(t, []Point{{X: 1, Y: 2, Value: 2}}, got)
}

func TestAggregate_Empty(t *testing.T) {
	t.Parallel()

	got := Aggregate("")
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestAggregate_ValuesSumToValidSegments(t *testing.T) {
	t.Parallel()

	raw := "x=1;y=1|x=2;y=2|x=1;y=1|oops|x=3;y=3|x=2;y=2|x=1;y=1"
	got := Aggregate(raw)

	total := 0
	seen := make(map[[2]int]bool)
	for _, p := range got {
		total += p.Value
		key := [2]int{p.X, p.Y}
		if seen[key] {
			t.Fatalf("duplicate cell in output: %v", key)
		}
		seen[key] = true
	}
	if total != 6 {
		t.Fatalf("unexpected sample total: got=%d want=%d", total, 6)
	}
}

func TestAggregate_OrderIndependent(t *testing.T) {
	t.Parallel()

	segments := []string{"x=1;y=1", "x=2;y=2", "x=1;y=1", "oops", "x=3;y=3", "x=2;y=2", "x=1;y=1", "x=40;y=7"}
	reversed := make([]string, len(segments))
	for i, s := range segments {
		reversed[len(segments)-1-i] = s
	}
	rotated := append(append([]string{}, segments[3:]...), segments[:3]...)

	want := countsByCell(Aggregate(strings.Join(segments, "|")))
	for _, order := range [][]string{reversed, rotated} {
		got := countsByCell(Aggregate(strings.Join(order, "|")))
		require.Equal(t, want, got)
	}
}

func countsByCell(points []Point) map[[2]int]int {
	out := make(map[[2]int]int, len(points))
	for _, p := range points {
		out[[2]int{p.X, p.Y}] += p.Value
	}
	return out
}
