package model

import "time"

// Review 회사 리뷰 모델
type Review struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 작성자 (저장 시에는 항상 존재, 익명 여부는 표시 단계에서만 적용)
	AuthorID *uint    `gorm:"index" json:"author_id"`
	Author   *Profile `gorm:"foreignKey:AuthorID" json:"-"`

	CompanyID uint     `gorm:"not null;index" json:"company_id"`
	Company   *Company `gorm:"foreignKey:CompanyID" json:"-"`

	Title *string `gorm:"type:varchar(200)" json:"title,omitempty"`
	Body  *string `gorm:"type:text" json:"body,omitempty"`

	// 세부 평점 (1-5)
	Communication  int `gorm:"not null" json:"communication"`
	Responsiveness int `gorm:"not null" json:"responsiveness"`
	Value          int `gorm:"not null" json:"value"`
	Friendliness   int `gorm:"not null" json:"friendliness"`

	// 작성 시점에 계산되어 저장되는 종합 평점
	OverallRating *float64 `json:"overall_rating"`

	DateOfExperience *time.Time   `gorm:"type:date" json:"date_of_experience,omitempty"`
	IsAnonymous      bool         `gorm:"not null;default:false" json:"is_anonymous"`
	Status           ReviewStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	Reply *CompanyReply `gorm:"foreignKey:ReviewID" json:"-"`
}

func (Review) TableName() string {
	return "reviews"
}

// SubRatings 세부 평점 입력 (nil = 누락)
type SubRatings struct {
	Communication  *int `json:"communication"`
	Responsiveness *int `json:"responsiveness"`
	Value          *int `json:"value"`
	Friendliness   *int `json:"friendliness"`
}

// Any 하나라도 입력되었는지 여부
func (s SubRatings) Any() bool {
	return s.Communication != nil || s.Responsiveness != nil || s.Value != nil || s.Friendliness != nil
}

// RatingsOf 저장된 리뷰의 세부 평점
func RatingsOf(r *Review) SubRatings {
	c, rs, v, f := r.Communication, r.Responsiveness, r.Value, r.Friendliness
	return SubRatings{Communication: &c, Responsiveness: &rs, Value: &v, Friendliness: &f}
}

// ReviewVote 리뷰 도움돼요 투표 (존재 = 투표함)
type ReviewVote struct {
	ReviewID  uint      `gorm:"primaryKey;autoIncrement:false" json:"review_id"`
	VoterID   uint      `gorm:"primaryKey;autoIncrement:false;index" json:"voter_id"`
	CreatedAt time.Time `json:"created_at"`

	Review *Review `gorm:"foreignKey:ReviewID" json:"-"`
}

func (ReviewVote) TableName() string {
	return "review_votes"
}

// CreateReviewRequest 리뷰 작성 요청
type CreateReviewRequest struct {
	SubRatings
	Title            *string `json:"title" binding:"omitempty,max=200"`
	Body             *string `json:"body" binding:"omitempty,max=5000"`
	DateOfExperience *string `json:"date_of_experience"` // YYYY-MM-DD
	IsAnonymous      bool    `json:"is_anonymous"`
}

// UpdateReviewRequest 리뷰 수정 요청 (nil 필드는 변경하지 않음)
type UpdateReviewRequest struct {
	SubRatings
	Title            *string `json:"title" binding:"omitempty,max=200"`
	Body             *string `json:"body" binding:"omitempty,max=5000"`
	DateOfExperience *string `json:"date_of_experience"`
	IsAnonymous      *bool   `json:"is_anonymous"`
}
