package models

import "gorm.io/gorm"

type Location struct {
	gorm.Model
	Name string `gorm:"not null" json:"name"`             // Название станции
	Code string `gorm:"uniqueIndex;not null" json:"code"` // Уникальный код станции
}
