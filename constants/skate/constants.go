package skate_constants

// LetterSequence is accumulated one character per missed trick; a full
// word eliminates the participant.
const LetterSequence = "SKATE"

const GameCodeLength = 6
const MinPlayers = 2
const DefaultMaxPlayers = 2

// Game lifecycle states
const (
	GameStatusWaiting   = "waiting"
	GameStatusActive    = "active"
	GameStatusCompleted = "completed"
)

// Turn lifecycle states
const (
	TurnStatusSetting    = "setting"
	TurnStatusResponding = "responding"
	TurnStatusCompleted  = "completed"
)

// Points policy
const WinnerPoints = 50  // awarded to the last skater standing
const CheckInPoints = 10 // awarded per spot check-in
