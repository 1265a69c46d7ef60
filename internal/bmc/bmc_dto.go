package bmc

type CreateItemRequest struct {
	Block   string `json:"block" binding:"required"`
	Content string `json:"content" binding:"required"`
	Color   string `json:"color" binding:"omitempty,max=20"`
}

type UpdateItemRequest struct {
	Content string `json:"content" binding:"required"`
	Color   string `json:"color" binding:"omitempty,max=20"`
}

type ItemResponse struct {
	ID      string `json:"id"`
	Block   string `json:"block"`
	Content string `json:"content"`
	Color   string `json:"color"`
}

// CanvasResponse mengelompokkan item per blok; semua blok kanonik selalu
// hadir sebagai key meski kosong.
type CanvasResponse map[string][]ItemResponse
