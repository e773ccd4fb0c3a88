package domain

// SessionSource records which entry path produced a session.
type SessionSource string

const (
	SourceTimer  SessionSource = "timer"
	SourceManual SessionSource = "manual"
)

// ValidSessionSources is the canonical set of accepted session sources.
var ValidSessionSources = map[SessionSource]bool{
	SourceTimer:  true,
	SourceManual: true,
}

type Role string

const (
	RoleFreelancer Role = "freelancer"
	RoleClient     Role = "client"
)

// DateLayout is the calendar-date format used for session dates everywhere.
const DateLayout = "2006-01-02"
