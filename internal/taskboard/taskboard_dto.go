package taskboard

import "time"

type CreateProjectRequest struct {
	Name        string   `json:"name" binding:"required,max=255"`
	Description string   `json:"description" binding:"omitempty"`
	Members     []string `json:"members" binding:"required,min=1,dive,uuid"`
}

type UpdateProjectRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description" binding:"omitempty"`
	Status      string `json:"status" binding:"required"`
}

type LabelRequest struct {
	Label string `json:"label" binding:"required,max=50"`
}

type CreateTaskRequest struct {
	Description string     `json:"description" binding:"required"`
	Category    string     `json:"category" binding:"required,max=100"`
	StoryPoint  int        `json:"story_point" binding:"min=0"`
	Status      string     `json:"status" binding:"required"`
	SprintGroup string     `json:"sprint_group" binding:"omitempty,max=100"`
	MonthGroup  string     `json:"month_group" binding:"omitempty,max=20"`
	AssignedTo  string     `json:"assigned_to" binding:"omitempty,uuid"`
	DueDate     *time.Time `json:"due_date" binding:"omitempty"`
}

type UpdateTaskRequest struct {
	Description string     `json:"description" binding:"required"`
	Category    string     `json:"category" binding:"required,max=100"`
	StoryPoint  int        `json:"story_point" binding:"min=0"`
	Status      string     `json:"status" binding:"required"`
	SprintGroup string     `json:"sprint_group" binding:"omitempty,max=100"`
	MonthGroup  string     `json:"month_group" binding:"omitempty,max=20"`
	AssignedTo  string     `json:"assigned_to" binding:"omitempty,uuid"`
	DueDate     *time.Time `json:"due_date" binding:"omitempty"`
}

type MemberResponse struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

type ProjectResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Labels      []string `json:"labels"`
	TaskCount   int64    `json:"task_count"`
}

type ProjectDetailResponse struct {
	ProjectResponse
	Members []MemberResponse `json:"members"`
	Tasks   []TaskResponse   `json:"tasks"`
}

type TaskResponse struct {
	ID           string     `json:"id"`
	ProjectID    string     `json:"project_id"`
	Description  string     `json:"description"`
	Category     string     `json:"category"`
	StoryPoint   int        `json:"story_point"`
	Status       string     `json:"status"`
	SprintGroup  string     `json:"sprint_group"`
	MonthGroup   string     `json:"month_group"`
	AssignedTo   string     `json:"assigned_to,omitempty"`
	AssigneeName string     `json:"assignee_name,omitempty"`
	DueDate      *time.Time `json:"due_date,omitempty"`
}

type PerformanceReportResponse struct {
	Month        int              `json:"month"`
	Year         int              `json:"year"`
	Performances []PerformanceRow `json:"performances"`
}
