package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// RunningDays — недельный шаблон курсирования: 7 флагов, индекс 0 — понедельник, 6 — воскресенье.
type RunningDays [7]bool

// Value сериализует шаблон в строку из семи символов '0'/'1' для хранения в БД.
func (r RunningDays) Value() (driver.Value, error) {
	buf := make([]byte, 7)
	for i, day := range r {
		if day {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return string(buf), nil
}

// Scan восстанавливает шаблон из строкового представления.
func (r *RunningDays) Scan(value interface{}) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("running_days: неподдерживаемый тип %T", value)
	}
	if len(s) != 7 {
		return errors.New("running_days: ожидается строка из 7 символов")
	}
	for i := 0; i < 7; i++ {
		r[i] = s[i] == '1'
	}
	return nil
}

// GormDataType задаёт тип колонки для миграции.
func (RunningDays) GormDataType() string {
	return "varchar(7)"
}

// Intersects возвращает true, если у двух шаблонов есть хотя бы один общий день недели.
func (r RunningDays) Intersects(other RunningDays) bool {
	for i := 0; i < 7; i++ {
		if r[i] && other[i] {
			return true
		}
	}
	return false
}

// On сообщает, курсирует ли поезд в день недели указанной даты.
func (r RunningDays) On(t time.Time) bool {
	// time.Weekday начинается с воскресенья, наш индекс — с понедельника.
	return r[(int(t.Weekday())+6)%7]
}
