package types

import "time"

// TournamentType distinguishes team events from individual ones
type TournamentType string

const (
	UnknownTournament    TournamentType = "Unknown"
	TeamTournament       TournamentType = "Team"
	IndividualTournament TournamentType = "Individual"
)

// LocationType tells online events from LAN events
type LocationType string

const (
	OnlineLocation LocationType = "Online"
	LANLocation    LocationType = "LAN"
)

// GameVersion is the game title as shown on the wiki, e.g. "Age of Empires II"
type GameVersion string

const (
	Age1      GameVersion = "Age of Empires I"
	Age2      GameVersion = "Age of Empires II"
	Age3      GameVersion = "Age of Empires III"
	Age4      GameVersion = "Age of Empires IV"
	AgeOnline GameVersion = "Age of Empires Online"
	AgeMyth   GameVersion = "Age of Mythology"
)

// Country is a resolved country record
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Amount is a monetary value
type Amount struct {
	Amount float64 `json:"amount"`
	Code   string  `json:"code"`
}

// Link is a stream, VOD or draft reference attached to a match
type Link struct {
	Image string `json:"image,omitempty"`
	Text  string `json:"text"`
	URL   string `json:"url"`
}

// EventPlayer is one player within a game
type EventPlayer struct {
	Civilization string   `json:"civilization,omitempty"`
	Country      *Country `json:"country,omitempty"`
	Name         string   `json:"name,omitempty"`
}

// EventParticipant is one side of a match or placement
type EventParticipant struct {
	Image string `json:"image,omitempty"`
	Name  string `json:"name"`
	Score *Score `json:"score,omitempty"`
}

// PlayoffGame is a single game of a best-of match. Winner is 0 or 1.
type PlayoffGame struct {
	Map     string          `json:"map"`
	Players [][]EventPlayer `json:"players,omitempty"`
	Winner  *int            `json:"winner,omitempty"`
}

// MatchHeader carries a round header that did not merge into its round
type MatchHeader struct {
	Format string `json:"format,omitempty"`
	Name   string `json:"name"`
}

// PlayoffMatch is one match in a bracket, group or showmatch
// Note: keep fields alphabetised for deterministic JSON output
type PlayoffMatch struct {
	BestOf       string             `json:"best-of,omitempty"`
	Games        []PlayoffGame      `json:"games"`
	Header       *MatchHeader       `json:"header,omitempty"`
	Links        []Link             `json:"links"`
	Name         string             `json:"name,omitempty"`
	Note         string             `json:"note,omitempty"`
	Participants []EventParticipant `json:"participants"`
	StartTime    *time.Time         `json:"start-time,omitempty"`
	TwitchStream string             `json:"twitch-stream,omitempty"`
	Winner       *int               `json:"winner,omitempty"`
}

// DeriveWinner sets Winner from the participants' scores. Equal, missing or
// non-numeric scores leave it unset.
func (m *PlayoffMatch) DeriveWinner() {
	m.Winner = nil
	if len(m.Participants) != 2 {
		return
	}
	m.Winner = Winner(m.Participants[0].Score, m.Participants[1].Score)
}

// Winner returns 0 or 1 when both scores are numeric and one is strictly
// greater
func Winner(a, b *Score) *int {
	if a == nil || b == nil || !a.Numeric || !b.Numeric || a.Value == b.Value {
		return nil
	}
	w := 1
	if a.Value > b.Value {
		w = 0
	}
	return &w
}

// PlayoffRound is one column of a bracket
type PlayoffRound struct {
	Format  string         `json:"format,omitempty"`
	ID      string         `json:"id"`
	Matches []PlayoffMatch `json:"matches"`
	Name    string         `json:"name"`
}

// Playoff is a full bracket; a tournament may have several
type Playoff struct {
	Advances []EventParticipant `json:"advances,omitempty"`
	Name     string             `json:"name,omitempty"`
	Rounds   []PlayoffRound     `json:"rounds"`
}

// ScoreTally counts wins, losses and draws
type ScoreTally struct {
	Draw int `json:"draw"`
	Loss int `json:"loss"`
	Win  int `json:"win"`
}

// GroupParticipant is one row of a group standings table
type GroupParticipant struct {
	GameScore  ScoreTally `json:"game-score"`
	Image      string     `json:"image,omitempty"`
	MatchScore ScoreTally `json:"match-score"`
	Name       string     `json:"name"`
	Points     string     `json:"points,omitempty"`
	Position   int        `json:"position"`
	Status     string     `json:"status,omitempty"`
}

// Round is a set of group stage matches
type Round struct {
	ID      string         `json:"id,omitempty"`
	Matches []PlayoffMatch `json:"matches"`
	Name    string         `json:"name"`
}

// Group is a group stage with standings and rounds
type Group struct {
	Name         string             `json:"name"`
	Participants []GroupParticipant `json:"participants"`
	Rounds       []Round            `json:"rounds"`
}

// Prize is one placement of the prize pool table
type Prize struct {
	Participants []EventParticipant `json:"participants"`
	Place        string             `json:"place"`
	Prize        *Amount            `json:"prize,omitempty"`
}

// League is the series a tournament belongs to
type League struct {
	Image string `json:"image,omitempty"`
	Name  string `json:"name"`
	Path  string `json:"path,omitempty"`
}

// Location is where a tournament is held
type Location struct {
	Country *Country     `json:"country,omitempty"`
	Name    string       `json:"name"`
	Type    LocationType `json:"type"`
}

// Tournament is a tournament listing entry
// Note: keep fields alphabetised for deterministic JSON output
type Tournament struct {
	End               *time.Time         `json:"end,omitempty"`
	Game              GameVersion        `json:"game,omitempty"`
	League            *League            `json:"league,omitempty"`
	Location          *Location          `json:"location,omitempty"`
	Name              string             `json:"name"`
	Participants      []EventParticipant `json:"participants"`
	ParticipantsCount *int               `json:"participants-count,omitempty"`
	Path              string             `json:"path"`
	PrizePool         *Amount            `json:"prize-pool,omitempty"`
	Start             *time.Time         `json:"start,omitempty"`
	Tier              Category           `json:"tier"`
	Type              TournamentType     `json:"type"`
}

// TournamentSection is a titled group of listing entries
type TournamentSection struct {
	Data  []Tournament `json:"data"`
	Title string       `json:"title"`
}

// Tab is a link to a related page of a tournament
type Tab struct {
	Active bool   `json:"active"`
	Name   string `json:"name"`
	Path   string `json:"path"`
}

// BroadcastTab is one tab of the broadcast talent section, as markdown
type BroadcastTab struct {
	Content string `json:"content"`
	Name    string `json:"name"`
}

// ScheduleMatch is one row of the schedule table
type ScheduleMatch struct {
	Date         *time.Time         `json:"date,omitempty"`
	Format       string             `json:"format,omitempty"`
	Participants []EventParticipant `json:"participants"`
}

// MapEntry is one map of the tournament map pool
type MapEntry struct {
	Category string `json:"category,omitempty"`
	Image    string `json:"image,omitempty"`
	Name     string `json:"name"`
	Path     string `json:"path,omitempty"`
}

// TournamentDetail is the full tournament page
type TournamentDetail struct {
	Tournament

	BroadcastTalent  []BroadcastTab  `json:"broadcast-talent,omitempty"`
	Description      string          `json:"description"`
	Format           string          `json:"format"`
	GameMode         string          `json:"game-mode,omitempty"`
	Groups           []Group         `json:"groups"`
	Maps             []MapEntry      `json:"maps"`
	Organizer        string          `json:"organizer,omitempty"`
	ParticipantsNote string          `json:"participants-note,omitempty"`
	Playoffs         []Playoff       `json:"playoffs"`
	Prizes           []Prize         `json:"prizes"`
	RedirectedFrom   string          `json:"redirected-from,omitempty"`
	Results          []PlayoffMatch  `json:"results"`
	Rules            string          `json:"rules"`
	Schedule         []ScheduleMatch `json:"schedule"`
	ScheduleNote     string          `json:"schedule-note,omitempty"`
	Tabs             [][]Tab         `json:"tabs"`
	Venue            string          `json:"venue,omitempty"`
	Version          string          `json:"version,omitempty"`
}

// TournamentSummary is a catalogue entry
type TournamentSummary struct {
	ID string `json:"id"`
	Tournament
}

// Catalogue represents the output catalogue structure
type Catalogue struct {
	Spec struct {
		Version int `json:"version"`
	} `json:"spec"`
	Categories     []Category          `json:"categories"`
	Datestamp      string              `json:"datestamp"`
	Total          int                 `json:"total"`
	TournamentList []TournamentSummary `json:"tournament-list"`
}
