package models

import (
	"gorm.io/gorm"
)

type DiscussionReply struct {
	gorm.Model
	DiscussionID uint   `gorm:"index;not null" json:"discussionId"`
	Author       string `gorm:"not null" json:"author"`
	Body         string `gorm:"not null" json:"body"`
}
