package model

import "time"

// Company 부동산 회사
type Company struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name string `gorm:"type:varchar(200);not null" json:"name"`
}

func (Company) TableName() string {
	return "companies"
}

// CompanyRepresentative 회사 대표자 (company_id, profile_id) 소속 정보
type CompanyRepresentative struct {
	CompanyID uint      `gorm:"primaryKey;autoIncrement:false" json:"company_id"`
	ProfileID uint      `gorm:"primaryKey;autoIncrement:false;index" json:"profile_id"`
	CreatedAt time.Time `json:"created_at"`

	Company Company `gorm:"foreignKey:CompanyID" json:"-"`
	Profile Profile `gorm:"foreignKey:ProfileID" json:"-"`
}

func (CompanyRepresentative) TableName() string {
	return "company_representatives"
}
