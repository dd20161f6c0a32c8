package model

// VerificationDetails captures the identifying marks a claimant must
// describe before an item is handed back.
type VerificationDetails struct {
	ID           uint   `gorm:"primarykey" json:"id"`
	UniqueMark   string `gorm:"size:255" json:"unique_mark"`
	SerialNumber string `gorm:"size:255" json:"serial_number"`
	PhotoURL     string `gorm:"size:512" json:"photo_url"` // S3 URL from the upload API
}

func (VerificationDetails) TableName() string {
	return "item_verification_details"
}
