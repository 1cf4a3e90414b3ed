package models

import (
	"time"
)

type User struct {
	ID           uint64 `gorm:"primarykey" json:"id"`
	Username     string `gorm:"type:varchar(80);uniqueIndex;not null" json:"username"`
	Email        string `gorm:"type:varchar(120);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`

	Name string `gorm:"type:varchar(100)" json:"name"`
	Bio  string `gorm:"type:text" json:"bio"`
	// Pfp is the stored filename of the profile picture, empty when none
	// has been uploaded. The file itself lives in the picture store.
	Pfp string `gorm:"type:varchar(255)" json:"pfp"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	ReceivedConfessions []Confession `gorm:"foreignKey:ReceiverID" json:"-"`
	SentConfessions     []Confession `gorm:"foreignKey:SenderID" json:"-"`
}
