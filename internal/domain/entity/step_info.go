package entity

// Leading-leg values carried by StepInfo.FrontLeg.
const (
	LegLeft  = "left"
	LegRight = "right"
)

// StepInfo holds the per-footstep biomechanical measurements produced by the
// pose-analysis worker. StepID is the 1-based position of the step within its
// stage as submitted, not a client-chosen value.
type StepInfo struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	StageID       uint    `gorm:"index" json:"stage_id"`
	StepID        int     `json:"step_id"`
	StartFrame    int     `json:"start_frame"`
	EndFrame      int     `json:"end_frame"`
	StepLength    float64 `json:"step_length"`
	StepSpeed     float64 `json:"step_speed"`
	FrontLeg      string  `json:"front_leg"`
	SupportTime   float64 `json:"support_time"`
	LiftoffHeight float64 `json:"liftoff_height"`
	HipMinDegree  float64 `json:"hip_min_degree"`
	HipMaxDegree  float64 `json:"hip_max_degree"`
	FirstStep     bool    `json:"first_step"`
	StepsDiff     float64 `json:"steps_diff"`
	StrideLength  float64 `json:"stride_length"`
	StepWidth     float64 `json:"step_width"`
	CreateTime    string  `json:"create_time"`
	UpdateTime    string  `json:"update_time"`
	IsDeleted     bool    `gorm:"default:false;index" json:"is_deleted,omitempty"`
}

func (StepInfo) TableName() string {
	return "steps_info"
}
