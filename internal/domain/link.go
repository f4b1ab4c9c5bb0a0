package domain

import "time"

// LinkState is the lifecycle state of a shared workout link. Only IsUsed is
// stored; Expired is derived from ExpiresAt at read time.
type LinkState int

const (
	LinkActive LinkState = iota
	LinkUsed
	LinkExpired
)

// String returns the lowercase state name used in logs and metrics.
func (s LinkState) String() string {
	switch s {
	case LinkActive:
		return "active"
	case LinkUsed:
		return "used"
	case LinkExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// SharedWorkoutLink lets a client submit one workout for a template without
// an account. Token is a bearer credential embedded in the share URL.
//
// ExpiresAt is fixed at creation. IsUsed flips false→true exactly once, and
// UsedAt/WorkoutID record the submission that consumed it. Rows are never
// deleted.
type SharedWorkoutLink struct {
	ID         string     `json:"id"          gorm:"type:char(36);primaryKey"`
	ClientID   string     `json:"client_id"   gorm:"type:char(36);not null;index"`
	TemplateID string     `json:"template_id" gorm:"type:char(36);not null;index"`
	Token      string     `json:"token"       gorm:"type:varchar(64);not null;uniqueIndex:ux_link_token"`
	ExpiresAt  time.Time  `json:"expires_at"  gorm:"not null"`
	IsUsed     bool       `json:"is_used"     gorm:"not null;default:false"`
	UsedAt     *time.Time `json:"used_at,omitempty"`
	WorkoutID  *string    `json:"workout_id,omitempty" gorm:"type:char(36)"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	Client   Client          `json:"-" gorm:"foreignKey:ClientID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Template WorkoutTemplate `json:"-" gorm:"foreignKey:TemplateID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName returns the database table name for SharedWorkoutLink.
func (SharedWorkoutLink) TableName() string { return "shared_workout_links" }

// State reports the link state at now. A used link stays Used after its
// expiry passes, so callers see "already submitted" rather than "expired".
func (l *SharedWorkoutLink) State(now time.Time) LinkState {
	if l.IsUsed {
		return LinkUsed
	}
	if now.After(l.ExpiresAt) {
		return LinkExpired
	}
	return LinkActive
}
