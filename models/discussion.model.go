package models

import (
	"gorm.io/gorm"
)

type Discussion struct {
	gorm.Model
	Sector     string `gorm:"index;not null" json:"sector"`
	Author     string `gorm:"not null" json:"author"`
	Title      string `gorm:"not null" json:"title"`
	Body       string `gorm:"not null" json:"body"`
	ReplyCount int    `gorm:"default:0" json:"replyCount"`

	Replies []DiscussionReply `gorm:"foreignKey:DiscussionID" json:"replies,omitempty"`
}
