package model

import "time"

type LostItem struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	ItemName     string     `gorm:"size:255;not null" json:"item_name"`
	Description  string     `json:"description"`
	LostLocation string     `gorm:"size:255" json:"lost_location"`
	LostDate     time.Time  `json:"lost_date"`
	Status       ItemStatus `gorm:"type:varchar(20);default:'AVAILABLE'" json:"status"`
	CategoryID   *uint      `gorm:"index" json:"category_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Category              *Category            `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	VerificationDetailsID *uint                `json:"verification_details_id,omitempty"`
	VerificationDetails   *VerificationDetails `gorm:"foreignKey:VerificationDetailsID" json:"verification_details,omitempty"`
}

func (LostItem) TableName() string {
	return "lost_items"
}
