package companyprofile

type UpsertVisionRequest struct {
	Content string `json:"content" binding:"required"`
}

type CreateEntryRequest struct {
	Content string `json:"content" binding:"required"`
}

type UpdateEntryRequest struct {
	Content string `json:"content" binding:"required"`
}

type VisionResponse struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

type EntryResponse struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Order   int    `json:"order"`
}

type ProfileResponse struct {
	Vision     *VisionResponse `json:"vision"`
	Missions   []EntryResponse `json:"missions"`
	CoreValues []EntryResponse `json:"core_values"`
}
