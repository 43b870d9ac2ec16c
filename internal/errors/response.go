package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/realty-review-backend/internal/app/service"
	"github.com/ikkim/realty-review-backend/pkg/logger"
)

// LoggingMiddleware가 저장하는 컨텍스트 키 (middleware 패키지 순환 참조 회피)
const (
	requestIDKey = "request_id"
	loggerKey    = "logger"
)

// ErrorResponse 표준 에러 응답
type ErrorResponse struct {
	Error     string            `json:"error"`   // 에러 코드 (codes.go)
	Message   string            `json:"message"` // 사용자에게 보여줄 한글 메시지
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error:     errorCode,
		Message:   message,
		RequestID: c.GetString(requestIDKey),
	})
}

// RespondWithValidationError 필드별 검증 오류 (400)
func RespondWithValidationError(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:     ValidationInvalidInput,
		Message:   "입력값이 올바르지 않습니다",
		Fields:    fields,
		RequestID: c.GetString(requestIDKey),
	})
}

// RespondWithServiceError 서비스 에러 종류에 맞는 상태 코드로 응답, 5xx는 로그 기록
func RespondWithServiceError(c *gin.Context, err error, op string) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		RespondWithValidationError(c, map[string]string{verr.Field: verr.Message})
		return
	}

	info := ParseError(err)
	if info.Status >= http.StatusInternalServerError {
		requestLogger(c).Error(op, err)
	}
	RespondWithError(c, info.Status, info.Code, info.Message)
}

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "로그인이 필요합니다"
	}
	RespondWithError(c, http.StatusUnauthorized, AuthUnauthorized, message)
}

func BadRequest(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusBadRequest, errorCode, message)
}

func requestLogger(c *gin.Context) *logger.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if l, ok := v.(*logger.Logger); ok {
			return l
		}
	}
	return logger.Get()
}
