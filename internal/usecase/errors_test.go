package usecase

import (
	"fmt"
	"testing"

	crerr "github.com/cockroachdb/errors"
)

func TestKindOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "nil", err: nil, want: KindUnknown},
		{name: "plain", err: fmt.Errorf("boom"), want: KindUnknown},
		{name: "wrapped invalid", err: fmt.Errorf("%w: league id is required", ErrInvalidInput), want: KindInvalidInput},
		{name: "match not found", err: matchNotFoundError("1", "1204"), want: KindNotFound},
		{name: "heatmap pending", err: fmt.Errorf("assemble: %w", heatmapNotAvailableError("1")), want: KindNotYetAvailable},
		{name: "marked upstream", err: crerr.Mark(fmt.Errorf("dial tcp: refused"), ErrUpstreamUnavailable), want: KindUpstreamUnavailable},
		{name: "wrapped decode", err: crerr.Wrap(crerr.Mark(fmt.Errorf("bad json"), ErrDecodeFailure), "fetch"), want: KindDecodeFailure},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := KindOf(tc.err); got != tc.want {
				t.Fatalf("unexpected kind: got=%s want=%s", got, tc.want)
			}
		})
	}
}

func TestErrorMessagesAreUserFacing(t *testing.T) {
	t.Parallel()

	if got, want := matchNotFoundError("3838001", "1204").Error(), "Match ID 3838001 not found in the fixtures feed for League 1204."; got != want {
		t.Fatalf("unexpected message: got=%q want=%q", got, want)
	}
	if got, want := heatmapNotAvailableError("3838001").Error(), "Heatmap data not yet available for Match ID 3838001."; got != want {
		t.Fatalf("unexpected message: got=%q want=%q", got, want)
	}
}
