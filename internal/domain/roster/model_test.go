package roster

import "testing"

func TestRoster_PlayerName(t *testing.T) {
	t.Parallel()

	r := Roster{Players: map[string]string{"10": "Bukayo Saka", "11": ""}}

	tests := []struct {
		id   string
		want string
	}{
		{id: "10", want: "Bukayo Saka"},
		{id: "11", want: "Player ID 11"},
		{id: "99", want: "Player ID 99"},
	}
	for _, tc := range tests {
		if got := r.PlayerName(tc.id); got != tc.want {
			t.Fatalf("unexpected name for %s: got=%q want=%q", tc.id, got, tc.want)
		}
	}
}
