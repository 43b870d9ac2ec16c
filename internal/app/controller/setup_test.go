package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/realty-review-backend/config"
	"github.com/ikkim/realty-review-backend/internal/app/model"
	"github.com/ikkim/realty-review-backend/internal/app/repository"
	"github.com/ikkim/realty-review-backend/internal/app/service"
	"github.com/ikkim/realty-review-backend/internal/db"
	"github.com/ikkim/realty-review-backend/internal/middleware"
	"github.com/ikkim/realty-review-backend/pkg/util"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "controller-test-secret"

type controllerTestEnv struct {
	db     *gorm.DB
	seed   *db.SeedData
	router *gin.Engine

	adminToken, repToken, memberToken string
}

// setupControllerTest wires every controller the way the production router does
func setupControllerTest(t *testing.T) *controllerTestEnv {
	t.Helper()

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	seed, err := db.Seed(testDB)
	require.NoError(t, err)

	profileRepo := repository.NewProfileRepository(testDB)
	companyRepo := repository.NewCompanyRepository(testDB)
	reviewRepo := repository.NewReviewRepository(testDB)
	replyRepo := repository.NewReplyRepository(testDB)
	voteRepo := repository.NewVoteRepository(testDB)
	reportRepo := repository.NewReportRepository(testDB)
	notificationRepo := repository.NewNotificationRepository(testDB)

	notifications := service.NewNotificationService(notificationRepo, profileRepo, config.LocaleKorean)
	reviews := NewReviewController(service.NewReviewService(reviewRepo, companyRepo, voteRepo, notifications.NotifyNewReview))
	replies := NewReplyController(service.NewReplyService(replyRepo, reviewRepo, notifications))
	engagement := NewEngagementController(
		service.NewEngagementService(voteRepo, reviewRepo, replyRepo),
		service.NewReportService(reportRepo, reviewRepo, replyRepo),
	)
	moderation := NewModerationController(service.NewModerationService(reviewRepo, replyRepo, reportRepo, notifications))
	notificationController := NewNotificationController(notifications)

	auth := middleware.NewAuthMiddleware(testJWTSecret, service.NewIdentityService(profileRepo))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.LoggingMiddleware())

	v1 := router.Group("/api/v1")
	v1.GET("/companies/:id/reviews", auth.OptionalAuthenticate(), reviews.ListCompanyReviews)
	v1.POST("/companies/:id/reviews", auth.Authenticate(), reviews.CreateReview)
	v1.GET("/companies/:id/dashboard", auth.Authenticate(), reviews.GetDashboard)

	authed := v1.Group("", auth.Authenticate())
	authed.PUT("/reviews/:id", reviews.UpdateReview)
	authed.DELETE("/reviews/:id", reviews.DeleteReview)
	authed.POST("/reviews/:id/reply", replies.CreateReply)
	authed.PUT("/replies/:id", replies.UpdateReply)
	authed.DELETE("/replies/:id", replies.DeleteReply)
	authed.POST("/reviews/:id/vote", engagement.ToggleVote(model.TargetReview))
	authed.GET("/reviews/:id/votes", engagement.CountVotes(model.TargetReview))
	authed.POST("/replies/:id/vote", engagement.ToggleVote(model.TargetReply))
	authed.POST("/reviews/:id/reports", engagement.SubmitReport(model.TargetReview))
	authed.GET("/notifications", notificationController.GetNotifications)
	authed.GET("/notifications/unread-count", notificationController.GetUnreadCount)
	authed.PUT("/notifications/read-all", notificationController.MarkAllAsRead)
	authed.PUT("/notifications/:id/read", notificationController.MarkAsRead)

	admin := v1.Group("/admin", auth.Authenticate(), auth.RequireAdmin())
	admin.POST("/reviews/:id/hide", moderation.HideReview)
	admin.DELETE("/reviews/:id", moderation.DeleteReview)
	admin.DELETE("/replies/:id", moderation.DeleteReply)
	admin.GET("/reports", moderation.ListReports)
	admin.PUT("/reports/:kind/:id/status", moderation.UpdateReportStatus)

	return &controllerTestEnv{
		db:          testDB,
		seed:        seed,
		router:      router,
		adminToken:  testToken(t, seed.Admin.ID),
		repToken:    testToken(t, seed.Representative.ID),
		memberToken: testToken(t, seed.Member.ID),
	}
}

func testToken(t *testing.T, userID uint) string {
	t.Helper()
	token, err := util.GenerateToken(userID, testJWTSecret, time.Hour)
	require.NoError(t, err)
	return token
}

// do sends a JSON request; an empty token sends no Authorization header
func (e *controllerTestEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func validReviewBody() gin.H {
	return gin.H{
		"communication":  5,
		"responsiveness": 4,
		"value":          4,
		"friendliness":   5,
		"title":          "친절한 중개",
		"body":           "계약까지 꼼꼼하게 챙겨주셨습니다",
	}
}

// createReview posts a review as the member and returns its id
func (e *controllerTestEnv) createReview(t *testing.T, body gin.H) uint {
	t.Helper()
	w := e.do(t, http.MethodPost, companyPath(e.seed.Company.ID, "reviews"), e.memberToken, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Review model.Review `json:"review"`
	}
	decode(t, w, &resp)
	return resp.Review.ID
}

// createReply posts a reply as the representative and returns its id
func (e *controllerTestEnv) createReply(t *testing.T, reviewID uint) uint {
	t.Helper()
	w := e.do(t, http.MethodPost, reviewPath(reviewID, "reply"), e.repToken, gin.H{"body": "소중한 후기 감사합니다"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Reply model.CompanyReply `json:"reply"`
	}
	decode(t, w, &resp)
	return resp.Reply.ID
}

func companyPath(companyID uint, suffix string) string {
	return fmt.Sprintf("/api/v1/companies/%d/%s", companyID, suffix)
}

func reviewPath(reviewID uint, suffix string) string {
	if suffix == "" {
		return fmt.Sprintf("/api/v1/reviews/%d", reviewID)
	}
	return fmt.Sprintf("/api/v1/reviews/%d/%s", reviewID, suffix)
}
