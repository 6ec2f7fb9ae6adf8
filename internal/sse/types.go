package sse

// VerificationPayload tells a client its QR code changed state
type VerificationPayload struct {
	ArtifactID  string `json:"artifact_id"`
	Kind        string `json:"kind"`
	Status      string `json:"status"`
	QuestID     string `json:"quest_id,omitempty"`
	TargetLevel int    `json:"target_level,omitempty"`
}

// RewardPayload reports a quest or check-in reward
type RewardPayload struct {
	QuestID           string `json:"quest_id"`
	Category          string `json:"category"`
	RewardInspiration int    `json:"reward_inspiration"`
	RewardYC          int    `json:"reward_yc"`
}

// AscensionPayload reports a new level
type AscensionPayload struct {
	PreviousLevel  int      `json:"previous_level"`
	NewLevel       int      `json:"new_level"`
	UnlockedSkills []string `json:"unlocked_skills,omitempty"`
}

// RedemptionPayload reports a shop purchase
type RedemptionPayload struct {
	ItemID  string `json:"item_id"`
	CostYC  int    `json:"cost_yc"`
	YCAfter int    `json:"yc_after"`
}

// CatalogPayload tells every client to refetch a catalog entity
type CatalogPayload struct {
	Entity   string `json:"entity"`
	EntityID string `json:"entity_id"`
	Action   string `json:"action"`
}
