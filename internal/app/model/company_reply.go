package model

import "time"

// CompanyReply 리뷰에 대한 회사 답글 (리뷰당 최대 1개)
type CompanyReply struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ReviewID uint    `gorm:"not null;uniqueIndex:idx_company_replies_review_id" json:"review_id"`
	Review   *Review `gorm:"foreignKey:ReviewID" json:"-"`

	// 작성 당시 해당 회사의 대표자
	AuthorID uint     `gorm:"not null;index" json:"author_id"`
	Author   *Profile `gorm:"foreignKey:AuthorID" json:"-"`

	Body   string      `gorm:"type:text;not null" json:"body"`
	Status ReplyStatus `gorm:"type:varchar(20);not null;index" json:"status"`
}

func (CompanyReply) TableName() string {
	return "company_replies"
}

// ReplyVote 답글 도움돼요 투표
type ReplyVote struct {
	ReplyID   uint      `gorm:"primaryKey;autoIncrement:false" json:"reply_id"`
	VoterID   uint      `gorm:"primaryKey;autoIncrement:false;index" json:"voter_id"`
	CreatedAt time.Time `json:"created_at"`

	Reply *CompanyReply `gorm:"foreignKey:ReplyID" json:"-"`
}

func (ReplyVote) TableName() string {
	return "reply_votes"
}

// CreateReplyRequest 답글 작성 요청
type CreateReplyRequest struct {
	Body string `json:"body" binding:"required,min=1,max=5000"`
}

// UpdateReplyRequest 답글 수정 요청
type UpdateReplyRequest struct {
	Body string `json:"body" binding:"required,min=1,max=5000"`
}
