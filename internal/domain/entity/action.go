package entity

// Action statuses as written by the external worker. The server does not
// validate transitions; the worker asserts them via the status endpoint.
const (
	ActionStatusWaiting   = "waiting"
	ActionStatusRunning   = "running"
	ActionStatusCompleted = "completed"
	ActionStatusFailed    = "failed"
)

// ActionProgressInitial is the progress text a freshly enqueued action carries.
const ActionProgressInitial = "waiting for processing"

// Action is one gait-analysis job over an original video. A root action has
// ParentID equal to its own ID and anchors the cascade-delete group of every
// action sharing that parent.
type Action struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	ParentID   *uint  `gorm:"index" json:"parent_id"`
	VideoID    uint   `gorm:"index" json:"video_id"`
	PatientID  uint   `gorm:"index" json:"patient_id"`
	Status     string `json:"status"`
	Progress   string `json:"progress"`
	CreateTime string `json:"create_time"`
	UpdateTime string `json:"update_time"`
	IsDeleted  bool   `gorm:"default:false;index" json:"is_deleted,omitempty"`
}

func (Action) TableName() string {
	return "actions"
}

// IsRoot reports whether the action anchors its own cascade group.
func (a *Action) IsRoot() bool {
	return a.ParentID != nil && *a.ParentID == a.ID
}
