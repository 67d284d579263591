package models

import (
	"gorm.io/gorm"
)

type QuizResponse struct {
	gorm.Model
	QuestionID    uint   `gorm:"index:idx_response_question_user,unique" json:"questionId"`
	Username      string `gorm:"index:idx_response_question_user,unique;not null" json:"username"`
	SelectedIndex int    `json:"selectedIndex"`
	IsCorrect     bool   `json:"isCorrect"`
}
