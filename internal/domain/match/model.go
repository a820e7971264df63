package match

import (
	"github.com/riskibarqy/goalserve-heatmap/internal/domain/livestats"
)

const (
	SideHome = "home"
	SideAway = "away"

	rawHomeSide = "localteam"
)

// League identifies the competition a match belongs to.
type League struct {
	Name      string `json:"name"`
	ID        string `json:"id"`
	FileGroup string `json:"file_group"`
	IsCup     bool   `json:"is_cup"`
}

// Team is one side of a match.
type Team struct {
	Name  string `json:"name"`
	ID    string `json:"id"`
	Goals int    `json:"goals"`
}

// Event is a goal, card or substitution reported by the live feed.
type Event struct {
	Type      string `json:"type"`
	Minute    string `json:"minute"`
	ExtraMin  string `json:"extra_min"`
	Team      string `json:"team"`
	Player    string `json:"player"`
	Result    string `json:"result"`
	PlayerID  string `json:"player_id"`
	Assist    string `json:"assist"`
	AssistID  string `json:"assist_id"`
	Timestamp string `json:"timestamp"`
}

// Stats are the named counters decoded from the live stats string.
type Stats struct {
	Corners          livestats.Value `json:"corners"`
	YellowCards      livestats.Value `json:"yellow_cards"`
	RedCards         livestats.Value `json:"red_cards"`
	Possession       livestats.Value `json:"possession"`
	Attacks          livestats.Value `json:"attacks"`
	DangerousAttacks livestats.Value `json:"dangerous_attacks"`
	ShotsOnTarget    livestats.Value `json:"shots_on_target"`
	ShotsOffTarget   livestats.Value `json:"shots_off_target"`
	ThrowIns         livestats.Value `json:"throw_ins"`
	FreeKicks        livestats.Value `json:"free_kicks"`
	GoalKicks        livestats.Value `json:"goal_kicks"`
	Penalties        livestats.Value `json:"penalties"`
	Substitutions    livestats.Value `json:"substitutions"`
}

// Record is one normalized match of the live or today feed.
type Record struct {
	MatchID       string  `json:"match_id"`
	StaticID      string  `json:"static_id"`
	FixID         string  `json:"fix_id"`
	Status        string  `json:"status"`
	Timer         string  `json:"timer"`
	Date          string  `json:"date"`
	Time          string  `json:"time"`
	League        League  `json:"league"`
	HomeTeam      Team    `json:"home_team"`
	AwayTeam      Team    `json:"away_team"`
	HalftimeScore string  `json:"halftime_score"`
	Stats         Stats   `json:"stats"`
	Events        []Event `json:"events"`
}

// Feed is a snapshot of the live or today feed.
type Feed struct {
	Updated string   `json:"updated"`
	Matches []Record `json:"matches"`
}

// FilterByLeague returns the matches whose league id equals leagueID.
func (f Feed) FilterByLeague(leagueID string) []Record {
	out := make([]Record, 0)
	for _, record := range f.Matches {
		if record.League.ID == leagueID {
			out = append(out, record)
		}
	}
	return out
}

// SideFromRaw maps the feed's team marker to "home" or "away".
func SideFromRaw(raw string) string {
	if raw == rawHomeSide {
		return SideHome
	}
	return SideAway
}

// StatsFrom picks the named counters out of a decoded stats string.
func StatsFrom(decoded livestats.Stats) Stats {
	return Stats{
		Corners:          decoded.Value("corner"),
		YellowCards:      decoded.Value("yellowcard"),
		RedCards:         decoded.Value("redcard"),
		Possession:       decoded.Value("posession"),
		Attacks:          decoded.Value("attacks"),
		DangerousAttacks: decoded.Value("dangerousattacks"),
		ShotsOnTarget:    decoded.Value("ontarget"),
		ShotsOffTarget:   decoded.Value("offtarget"),
		ThrowIns:         decoded.Value("throwin"),
		FreeKicks:        decoded.Value("freekick"),
		GoalKicks:        decoded.Value("goalkick"),
		Penalties:        decoded.Value("penalty"),
		Substitutions:    decoded.Value("substitution"),
	}
}
