package configuration

// Matching weight tables for the emergency attorney matcher. These are tuning
// data, not code; values can be changed here without touching the matcher
// logic. Unknown keys fall back to the default weights.

var UrgencyWeights = map[string]int{
	"critical": 100,
	"urgent":   70,
	"high":     70,
	"routine":  40,
}

const DefaultUrgencyWeight = 25

var IssueWeights = map[string]int{
	"court-martial":             50,
	"security-clearance":        40,
	"administrative-separation": 35,
	"article-15":                30,
	"meb-peb":                   25,
	"discharge-upgrade":         20,
	"family-law":                15,
	"finance":                   10,
}

const DefaultIssueWeight = 5

// Bonus points added on top of the base urgency+issue score.
const (
	SpecialtyBonus     = 20
	LocationBonus      = 15
	ContactMethodBonus = 10
	CapacityBonusBase  = 100
	CapacityBonusStep  = 10
)

// Callback offsets in minutes per urgency level. Routine bookings use
// the attorney's configured response time when it is longer.
var ScheduleOffsetMinutes = map[string]int{
	"critical": 5,
	"urgent":   15,
	"high":     15,
	"routine":  30,
}

const DefaultScheduleOffsetMinutes = 30

// Matcher returns at most this many ranked candidates.
const MaxMatchResults = 10
