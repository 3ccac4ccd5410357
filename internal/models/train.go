package models

import "gorm.io/gorm"

type Train struct {
	gorm.Model
	TrainNumber string `gorm:"uniqueIndex;not null" json:"train_number"` // Номер поезда, например "042А"
	Type        string `gorm:"not null" json:"type"`                     // Тип состава: скорый, пригородный и т.д.
}
