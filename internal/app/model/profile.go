package model

import "time"

// Profile 사용자 프로필 (ID는 외부 인증 제공자의 사용자 ID)
type Profile struct {
	ID          uint      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	DisplayName string    `gorm:"type:varchar(100);not null" json:"display_name"`
	IsAdmin     bool      `gorm:"not null;default:false" json:"is_admin"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// Caller 요청자의 신원과 권한 정보
// 요청마다 한 번 조회되어 모든 서비스 호출에 명시적으로 전달된다
type Caller struct {
	ID                    uint   `json:"id"`
	IsAdmin               bool   `json:"is_admin"`
	RepresentedCompanyIDs []uint `json:"represented_company_ids,omitempty"`
}

// Authenticated 로그인한 요청자 여부
func (c Caller) Authenticated() bool {
	return c.ID != 0
}
