package errors

// 에러 코드 상수 정의
// 형식: CATEGORY_SPECIFIC_DETAIL
// 프론트엔드에서 이 코드를 기반으로 메시지를 매핑함

const (
	// ==================== 인증 (AUTH_) ====================
	AuthUnauthorized = "AUTH_UNAUTHORIZED"  // 로그인 필요
	AuthTokenExpired = "AUTH_TOKEN_EXPIRED" // 토큰 만료
	AuthTokenInvalid = "AUTH_TOKEN_INVALID" // 잘못된 토큰

	// ==================== 인가/권한 (AUTHZ_) ====================
	AuthzForbidden          = "AUTHZ_FORBIDDEN"           // 접근 권한 없음
	AuthzAdminOnly          = "AUTHZ_ADMIN_ONLY"          // 관리자만 가능
	AuthzOwnerOnly          = "AUTHZ_OWNER_ONLY"          // 작성자만 가능
	AuthzRepresentativeOnly = "AUTHZ_REPRESENTATIVE_ONLY" // 회사 대표자만 가능

	// ==================== 검증 (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // 잘못된 입력
	ValidationInvalidID    = "VALIDATION_INVALID_ID"    // 잘못된 ID

	// ==================== 리소스 (RESOURCE_) ====================
	ResourceNotFound = "RESOURCE_NOT_FOUND" // 리소스 없음
	ResourceConflict = "RESOURCE_CONFLICT"  // 충돌

	// ==================== 회사 (COMPANY_) ====================
	CompanyNotFound = "COMPANY_NOT_FOUND" // 회사 없음

	// ==================== 리뷰 (REVIEW_) ====================
	ReviewNotFound = "REVIEW_NOT_FOUND" // 리뷰 없음
	ReviewHasReply = "REVIEW_HAS_REPLY" // 답글이 달려 수정/삭제 불가
	ReviewRemoved  = "REVIEW_REMOVED"   // 관리자가 숨긴 리뷰

	// ==================== 답글 (REPLY_) ====================
	ReplyNotFound      = "REPLY_NOT_FOUND"      // 답글 없음
	ReplyAlreadyExists = "REPLY_ALREADY_EXISTS" // 이미 답글 있음
	ReplyRemoved       = "REPLY_REMOVED"        // 관리자가 숨긴 답글

	// ==================== 신고 (REPORT_) ====================
	ReportNotFound = "REPORT_NOT_FOUND" // 신고 없음

	// ==================== 알림 (NOTIFICATION_) ====================
	NotificationNotFound = "NOTIFICATION_NOT_FOUND" // 알림 없음

	// ==================== 내부 오류 (INTERNAL_) ====================
	InternalServerError = "INTERNAL_SERVER_ERROR" // 서버 오류
)
