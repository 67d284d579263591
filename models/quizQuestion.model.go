package models

import (
	"gorm.io/gorm"
)

type QuizQuestion struct {
	gorm.Model
	Sector  string `gorm:"index:idx_quiz_sector_date_ord,unique;not null" json:"sector"`
	Date    string `gorm:"index:idx_quiz_sector_date_ord,unique;not null" json:"date"` // YYYY-MM-DD
	Ordinal int    `gorm:"index:idx_quiz_sector_date_ord,unique" json:"ordinal"`

	Question     string `gorm:"not null" json:"question"`
	Options      string `json:"-"` // JSON array of option strings
	CorrectIndex int    `json:"-"`
	Explanation  string `json:"-"`
}

// OptionsList decodes the stored answer options
func (q *QuizQuestion) OptionsList() []string {
	return decodeStringList(q.Options)
}

// SetOptions encodes the answer options for storage
func (q *QuizQuestion) SetOptions(items []string) {
	q.Options = encodeStringList(items)
}
