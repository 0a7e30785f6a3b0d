package models

// AuditLog records mutating API operations.
type AuditLog struct {
	Base
	Action       string `gorm:"size:64;not null" json:"action"`
	ResourceType string `gorm:"size:64;not null;index:idx_audit_logs_resource" json:"resource_type"`
	ResourceID   string `gorm:"size:36;not null;index:idx_audit_logs_resource" json:"resource_id"`
	IPAddress    string `gorm:"size:64;not null" json:"ip_address"`
	Changes      string `gorm:"not null" json:"changes,omitempty"`
}
