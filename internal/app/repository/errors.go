package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrDuplicate 유니크 제약 위반 (답글 중복, 투표 중복 등)
	ErrDuplicate = errors.New("duplicate record")
	// ErrStale 조건부 쓰기의 전제(게시 상태, 답글 없음)가 그 사이 바뀜
	ErrStale = errors.New("record state changed before write")
)

// translateError 유니크 제약 위반을 저장소 에러로 변환
// 모든 세션은 db.gormConfig의 TranslateError로 열리므로 gorm.ErrDuplicatedKey만 확인
func translateError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

// staleIfUnaffected 조건부 갱신이 아무 행도 바꾸지 못하면 ErrStale
func staleIfUnaffected(result *gorm.DB) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStale
	}
	return nil
}

// requireAffected 변경된 행이 없으면 gorm.ErrRecordNotFound 반환
func requireAffected(result *gorm.DB) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
