package models

// AuditLog records ledger writes and maintenance operations per organization.
type AuditLog struct {
	Base
	OrgID        uint   `gorm:"not null;index" json:"org_id"`
	Action       string `gorm:"not null" json:"action"`
	ResourceType string `gorm:"not null" json:"resource_type"`
	ResourceID   uint   `json:"resource_id"`
	IPAddress    string `json:"ip_address"`
	Changes      string `json:"changes,omitempty"`
}
