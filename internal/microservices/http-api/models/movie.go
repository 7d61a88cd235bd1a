package models

import "time"

type Movie struct {
	ID        int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Title     string     `json:"title" gorm:"not null"`
	Year      int        `json:"year" gorm:"not null"`
	CreatedAt *time.Time `json:"created_at,omitempty" gorm:"autoCreateTime"`
}

func (Movie) TableName() string {
	return "movies"
}
