package model

import "time"

type Category struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	LostItems  []LostItem  `gorm:"foreignKey:CategoryID" json:"lost_items,omitempty"`
	FoundItems []FoundItem `gorm:"foreignKey:CategoryID" json:"found_items,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}
