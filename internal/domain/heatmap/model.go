package heatmap

// Point is one cell of a player's heatmap with the number of samples seen there.
type Point struct {
	X     int `json:"x"`
	Y     int `json:"y"`
	Value int `json:"value"`
}

// PlayerSamples is one player's raw heatmap string as published by the commentary feed.
type PlayerSamples struct {
	PlayerID string
	Raw      string
}

// MatchHeatmap is the heatmap feed entry for a single match.
type MatchHeatmap struct {
	MatchID     string
	Status      string
	Score       string
	Minute      string
	HomePlayers []PlayerSamples
	AwayPlayers []PlayerSamples
}

// PlayerHeatmap is the aggregated heatmap of one player.
type PlayerHeatmap struct {
	Name        string  `json:"name"`
	HeatmapData []Point `json:"heatmap_data"`
}

// Response is the heatmap view of a match served to the visualization front end.
type Response struct {
	MatchID            string                   `json:"match_id"`
	MatchDate          string                   `json:"match_date"`
	LeagueName         string                   `json:"league_name"`
	LocalteamName      string                   `json:"localteam_name"`
	VisitorteamName    string                   `json:"visitorteam_name"`
	FinalScore         string                   `json:"final_score"`
	LiveMinute         string                   `json:"live_minute"`
	MatchStatus        string                   `json:"match_status"`
	LocalteamPlayers   map[string]PlayerHeatmap `json:"localteam_players"`
	VisitorteamPlayers map[string]PlayerHeatmap `json:"visitorteam_players"`
}
