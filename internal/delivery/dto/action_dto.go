package dto

// Request DTOs

type CreateActionRequest struct {
	PatientID uint  `json:"patient_id" validate:"required,min=1"`
	VideoID   uint  `json:"video_id" validate:"required,min=1"`
	ParentID  *uint `json:"parent_id"`
}

// StepInfoData is one footstep measurement block submitted by the worker.
type StepInfoData struct {
	StartFrame    int     `json:"start_frame"`
	EndFrame      int     `json:"end_frame"`
	StepLength    float64 `json:"step_length"`
	StepSpeed     float64 `json:"step_speed"`
	FrontLeg      string  `json:"front_leg" validate:"required,oneof=left right"`
	SupportTime   float64 `json:"support_time"`
	LiftoffHeight float64 `json:"liftoff_height"`
	HipMinDegree  float64 `json:"hip_min_degree"`
	HipMaxDegree  float64 `json:"hip_max_degree"`
	FirstStep     bool    `json:"first_step"`
	StepsDiff     float64 `json:"steps_diff"`
	StrideLength  float64 `json:"stride_length"`
	StepWidth     float64 `json:"step_width"`
}

// StageData is one walking-trial phase with its steps.
type StageData struct {
	StageN     int            `json:"stage_n"`
	StartFrame int            `json:"start_frame"`
	EndFrame   int            `json:"end_frame"`
	StepsInfo  []StepInfoData `json:"steps_info" validate:"dive"`
}

type UpdateActionRequest struct {
	ActionID uint        `json:"action_id" validate:"required,min=1"`
	Data     []StageData `json:"data" validate:"dive"`
}

type UpdateActionStatusRequest struct {
	ActionID uint   `json:"action_id" validate:"required,min=1"`
	Status   string `json:"status" validate:"required"`
	// Action is the job token the worker holds; anything but a "running"
	// status drops it from the running list.
	Action string `json:"action"`
}

type UpdateActionProgressRequest struct {
	ActionID uint   `json:"action_id" validate:"required,min=1"`
	Progress string `json:"progress" validate:"required"`
}

// Response DTOs

type CreateActionResponse struct {
	ActionID uint `json:"action_id"`
}
