package fixture

import (
	"sort"
	"time"

	"github.com/valyala/bytebufferpool"
)

// NotAvailable fills fixture fields the feed left out.
const NotAvailable = "N/A"

// DateLayout is the day-first date format used by the fixture feeds.
const DateLayout = "02.01.2006"

// Fixture represents one match from the fixtures or history feed.
type Fixture struct {
	MatchID          string `json:"match_id"`
	Date             string `json:"date"`
	Time             string `json:"time"`
	Status           string `json:"status"`
	LocalteamName    string `json:"localteam_name"`
	VisitorteamName  string `json:"visitorteam_name"`
	LocalteamScore   string `json:"localteam_score"`
	VisitorteamScore string `json:"visitorteam_score"`
	Display          string `json:"display"`
}

// List is a league's fixtures ordered by date.
type List struct {
	LeagueName string    `json:"league_name"`
	Fixtures   []Fixture `json:"fixtures"`
}

// Find returns the fixture whose match id equals matchID.
func (l List) Find(matchID string) (Fixture, bool) {
	for _, item := range l.Fixtures {
		if item.MatchID == matchID {
			return item, true
		}
	}
	return Fixture{}, false
}

// BuildDisplay renders "<date> - <home> <homeScore> vs <awayScore> <away> (<status>)".
func BuildDisplay(f Fixture) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(f.Date)
	_, _ = buf.WriteString(" - ")
	_, _ = buf.WriteString(f.LocalteamName)
	_ = buf.WriteByte(' ')
	_, _ = buf.WriteString(f.LocalteamScore)
	_, _ = buf.WriteString(" vs ")
	_, _ = buf.WriteString(f.VisitorteamScore)
	_ = buf.WriteByte(' ')
	_, _ = buf.WriteString(f.VisitorteamName)
	_, _ = buf.WriteString(" (")
	_, _ = buf.WriteString(f.Status)
	_ = buf.WriteByte(')')

	return buf.String()
}

// SortByDate orders fixtures ascending by date. Missing or unparsable dates
// sort first; equal dates keep their feed order.
func SortByDate(items []Fixture) {
	keys := make(map[string]time.Time, len(items))
	dateOf := func(raw string) time.Time {
		if parsed, ok := keys[raw]; ok {
			return parsed
		}
		parsed, err := time.Parse(DateLayout, raw)
		if err != nil {
			parsed = time.Time{}
		}
		keys[raw] = parsed
		return parsed
	}

	sort.SliceStable(items, func(i, j int) bool {
		return dateOf(items[i].Date).Before(dateOf(items[j].Date))
	})
}
