package types

import "time"

// Team is an active team from the teams portal
type Team struct {
	Logo   string `json:"logo,omitempty"`
	Name   string `json:"name"`
	Region string `json:"region,omitempty"`
	URL    string `json:"url"`
}

// HeroAttr is the column a civilization is listed under
type HeroAttr string

const (
	HeroStrength     HeroAttr = "strength"
	HeroAgility      HeroAttr = "agility"
	HeroIntelligence HeroAttr = "intelligence"
)

// Hero is a playable civilization
type Hero struct {
	Attr HeroAttr `json:"attr"`
	Img  string   `json:"img"`
	Name string   `json:"name"`
	URL  string   `json:"url"`
}

// MatchTournament is the tournament a listed match belongs to
type MatchTournament struct {
	Image string `json:"image,omitempty"`
	Name  string `json:"name"`
	Path  string `json:"path"`
}

// Match is an upcoming or ongoing match
type Match struct {
	Format       string             `json:"format"`
	Participants []EventParticipant `json:"participants"`
	StartTime    time.Time          `json:"start-time"`
	Tournament   MatchTournament    `json:"tournament"`
	TwitchStream string             `json:"twitch-stream,omitempty"`
	Winner       *int               `json:"winner,omitempty"`
}

// Patch is a game update
type Patch struct {
	Changes string     `json:"changes"`
	Date    *time.Time `json:"date,omitempty"`
	URL     string     `json:"url"`
	Version string     `json:"version"`
}

// TransferTeam is one side of a transfer
type TransferTeam struct {
	Position string `json:"position,omitempty"`
	Team     string `json:"team,omitempty"`
}

// Transfer is a roster move between teams
type Transfer struct {
	Date    *time.Time   `json:"date,omitempty"`
	From    TransferTeam `json:"from"`
	Players []string     `json:"players"`
	To      TransferTeam `json:"to"`
}

// ItemType is the top level grouping of the items portal
type ItemType string

const (
	BasicItem      ItemType = "basic"
	RoshanDropItem ItemType = "roshan-drop"
	UpgradeItem    ItemType = "upgrade"
	NeutralItem    ItemType = "neutral"
)

// ItemCategory is the block an item is listed in within its type
type ItemCategory string

var BasicItemCategories = []ItemCategory{
	"Consumables", "Attributes", "Equipment", "Miscellaneous", "Secret Shop",
}

var UpgradeItemCategories = []ItemCategory{
	"Accessories", "Support", "Magical", "Armor", "Weapons", "Armaments",
}

var NeutralItemTiers = []ItemCategory{
	"Tier 1", "Tier 2", "Tier 3", "Tier 4", "Tier 5",
}

// Item is one entry of the items portal
type Item struct {
	Category ItemCategory `json:"category,omitempty"`
	Img      string       `json:"img"`
	Name     string       `json:"name"`
	Price    *int         `json:"price,omitempty"`
	Type     ItemType     `json:"type"`
	URL      string       `json:"url"`
}

// Player is a player profile. List entries only carry a subset.
// Note: keep fields alphabetised for deterministic JSON output
type Player struct {
	Age           *int       `json:"age,omitempty"`
	Birthdate     *time.Time `json:"birthdate,omitempty"`
	Country       *Country   `json:"country,omitempty"`
	FullName      string     `json:"full-name,omitempty"`
	Image         string     `json:"image,omitempty"`
	Name          string     `json:"name"`
	Overview      string     `json:"overview,omitempty"`
	Path          string     `json:"path,omitempty"`
	Status        string     `json:"status,omitempty"`
	Team          string     `json:"team,omitempty"`
	TotalWinnings *Amount    `json:"total-winnings,omitempty"`
	YearsActive   string     `json:"years-active,omitempty"`
}

// MapDetail is a map page
type MapDetail struct {
	Creator     string `json:"creator,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Name        string `json:"name"`
	Nomad       *bool  `json:"nomad,omitempty"`
	Type        string `json:"type,omitempty"`
	Walls       string `json:"walls,omitempty"`
}
