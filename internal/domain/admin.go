package domain

import "time"

// DefaultAdminActor is recorded when a request carries no X-Admin-User header.
const DefaultAdminActor = "admin"

// AuditLogRetention is the number of most recent audit entries kept.
const AuditLogRetention = 50

// AuditEntry records one admin mutation.
type AuditEntry struct {
	ID        int64     `json:"id"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Target    string    `json:"target"`
	CreatedAt time.Time `json:"created_at"`
}

// Dashboard summarises guild activity.
type Dashboard struct {
	UserCount      int `json:"user_count"`
	QuestCount     int `json:"quest_count"`
	ShopItemCount  int `json:"shop_item_count"`
	CompletedToday int `json:"completed_today"`
}
