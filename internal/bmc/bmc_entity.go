package bmc

import (
	"time"

	"github.com/google/uuid"
)

// Sembilan blok kanonik Business Model Canvas.
const (
	BlockKeyPartners           = "key_partners"
	BlockKeyActivities         = "key_activities"
	BlockKeyResources          = "key_resources"
	BlockValuePropositions     = "value_propositions"
	BlockCustomerRelationships = "customer_relationships"
	BlockChannels              = "channels"
	BlockCustomerSegments      = "customer_segments"
	BlockCostStructure         = "cost_structure"
	BlockRevenueStreams        = "revenue_streams"
)

const DefaultColor = "blue"

var CanonicalBlocks = []string{
	BlockKeyPartners,
	BlockKeyActivities,
	BlockKeyResources,
	BlockValuePropositions,
	BlockCustomerRelationships,
	BlockChannels,
	BlockCustomerSegments,
	BlockCostStructure,
	BlockRevenueStreams,
}

func ValidBlock(block string) bool {
	for _, b := range CanonicalBlocks {
		if b == block {
			return true
		}
	}
	return false
}

type Item struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CeoID     uuid.UUID `gorm:"type:uuid;not null;index" json:"ceo_id"`
	Block     string    `gorm:"type:varchar(50);not null;index" json:"block"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Color     string    `gorm:"type:varchar(20);not null;default:blue" json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Item) TableName() string {
	return "bmc_items"
}
