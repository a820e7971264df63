package roster

import "fmt"

const UnknownLeague = "Unknown League"

// Roster is a league's name plus every known player id mapped to a display name.
type Roster struct {
	LeagueName string
	Players    map[string]string
}

// PlayerName returns the roster name for playerID, or a placeholder.
func (r Roster) PlayerName(playerID string) string {
	if name, ok := r.Players[playerID]; ok && name != "" {
		return name
	}
	return Placeholder(playerID)
}

func Placeholder(playerID string) string {
	return fmt.Sprintf("Player ID %s", playerID)
}
