package okr

type CreateGoalRequest struct {
	Goal string `json:"goal" binding:"required"`
	Year int    `json:"year" binding:"required,min=2000,max=2100"`
}

type UpdateGoalRequest struct {
	Goal string `json:"goal" binding:"required"`
	Year int    `json:"year" binding:"required,min=2000,max=2100"`
}

type CreateObjectiveRequest struct {
	CompanyGoalID string `json:"company_goal_id" binding:"required,uuid"`
	Division      string `json:"division" binding:"required,max=255"`
	Objective     string `json:"objective" binding:"required"`
}

type UpdateObjectiveRequest struct {
	Division  string `json:"division" binding:"required,max=255"`
	Objective string `json:"objective" binding:"required"`
}

type CreateKeyResultRequest struct {
	ObjectiveID string   `json:"objective_id" binding:"required,uuid"`
	KeyResult   string   `json:"key_result" binding:"required"`
	Target      float64  `json:"target" binding:"min=0"`
	Actual      float64  `json:"actual" binding:"min=0"`
	Unit        string   `json:"unit" binding:"omitempty,max=50"`
	Weight      *float64 `json:"weight" binding:"omitempty,min=0"`
}

type UpdateKeyResultRequest struct {
	KeyResult string   `json:"key_result" binding:"required"`
	Target    float64  `json:"target" binding:"min=0"`
	Actual    float64  `json:"actual" binding:"min=0"`
	Unit      string   `json:"unit" binding:"omitempty,max=50"`
	Weight    *float64 `json:"weight" binding:"omitempty,min=0"`
}

type CreateActionPlanRequest struct {
	KeyResultID string `json:"key_result_id" binding:"required,uuid"`
	Activity    string `json:"activity" binding:"required"`
}

type UpdateActionPlanRequest struct {
	Activity    string `json:"activity" binding:"required"`
	IsCompleted *bool  `json:"is_completed" binding:"omitempty"`
}

type ActionPlanResponse struct {
	ID          string `json:"id"`
	Activity    string `json:"activity"`
	IsCompleted bool   `json:"is_completed"`
}

type KeyResultNode struct {
	ID          string               `json:"id"`
	KeyResult   string               `json:"key_result"`
	Target      float64              `json:"target"`
	Actual      float64              `json:"actual"`
	Unit        string               `json:"unit"`
	Weight      float64              `json:"weight"`
	Progress    float64              `json:"progress"`
	ActionPlans []ActionPlanResponse `json:"action_plans"`
}

type ObjectiveNode struct {
	ID         string          `json:"id"`
	Division   string          `json:"division"`
	Objective  string          `json:"objective"`
	Progress   float64         `json:"progress"`
	KeyResults []KeyResultNode `json:"key_results"`
}

type GoalNode struct {
	ID         string          `json:"id"`
	Goal       string          `json:"goal"`
	Year       int             `json:"year"`
	Objectives []ObjectiveNode `json:"objectives"`
}

type TreeResponse struct {
	Goals []GoalNode `json:"goals"`
}
