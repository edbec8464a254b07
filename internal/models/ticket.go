package models

const StatusOpen = "open"

// Ticket is serialized as-is on the wire; the hash-free field set
// {id, title, description, user_id, status} is the public contract.
type Ticket struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `json:"description"`
	UserID      uint   `gorm:"index;not null" json:"user_id"`
	Status      string `gorm:"size:50;not null" json:"status"`
}
