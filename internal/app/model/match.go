package model

import "time"

// Match pairs a lost item report with a found item report. Created OPEN,
// it transitions exactly once to APPROVE or REJECT and is terminal after.
type Match struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	LostItemID  *uint      `gorm:"index" json:"lost_item_id"`
	FoundItemID *uint      `gorm:"index" json:"found_item_id"`
	MatchedByID *uint      `gorm:"index" json:"matched_by_id"`
	MatchDate   time.Time  `json:"match_date"`
	Status      ItemStatus `gorm:"type:varchar(20);default:'OPEN'" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	LostItem  *LostItem  `gorm:"foreignKey:LostItemID" json:"lost_item,omitempty"`
	FoundItem *FoundItem `gorm:"foreignKey:FoundItemID" json:"found_item,omitempty"`
	MatchedBy *User      `gorm:"foreignKey:MatchedByID" json:"matched_by,omitempty"`
}

func (Match) TableName() string {
	return "matches"
}
