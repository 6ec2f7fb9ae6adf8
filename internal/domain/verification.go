package domain

import "time"

// ArtifactKind scopes a verification artifact to a quest or a level exam.
type ArtifactKind string

const (
	ArtifactKindQuest ArtifactKind = "quest"
	ArtifactKindLevel ArtifactKind = "level"
)

// ArtifactStatus is the verification lifecycle state.
// Generated is the only non-terminal state.
type ArtifactStatus string

const (
	ArtifactStatusGenerated ArtifactStatus = "generated"
	ArtifactStatusVerified  ArtifactStatus = "verified"
	ArtifactStatusExpired   ArtifactStatus = "expired"
	ArtifactStatusCancelled ArtifactStatus = "cancelled"
)

// Terminal reports whether no further transition is possible.
func (s ArtifactStatus) Terminal() bool {
	return s != ArtifactStatusGenerated
}

// VerificationArtifact is an expiring, single-use proof presented as a QR code.
type VerificationArtifact struct {
	ID          string         `json:"id"`
	Kind        ArtifactKind   `json:"kind"`
	UserID      string         `json:"user_id"`
	QuestID     *string        `json:"quest_id,omitempty"`
	TargetLevel *int           `json:"target_level,omitempty"`
	Payload     string         `json:"payload"`
	Status      ArtifactStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	ExpiresAt   time.Time      `json:"expires_at"`
	ResolvedAt  *time.Time     `json:"resolved_at,omitempty"`
	ConsumedAt  *time.Time     `json:"consumed_at,omitempty"`
	ImageURL    *string        `json:"image_url,omitempty"`
}

// ExpiredAt reports whether the artifact is still pending past its deadline.
func (a *VerificationArtifact) ExpiredAt(now time.Time) bool {
	return a.Status == ArtifactStatusGenerated && !now.Before(a.ExpiresAt)
}

// ArtifactRequest describes a new artifact to create.
type ArtifactRequest struct {
	Kind        ArtifactKind
	UserID      string
	QuestID     string
	TargetLevel int
}
