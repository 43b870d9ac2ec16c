package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ikkim/realty-review-backend/config"
	"github.com/ikkim/realty-review-backend/internal/app/model"
	"github.com/ikkim/realty-review-backend/internal/app/repository"
	"github.com/ikkim/realty-review-backend/internal/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type serviceTestEnv struct {
	db   *gorm.DB
	seed *db.SeedData

	reviewRepo       repository.ReviewRepository
	replyRepo        repository.ReplyRepository
	voteRepo         repository.VoteRepository
	notificationRepo repository.NotificationRepository

	identity      IdentityService
	reviews       ReviewService
	replies       ReplyService
	engagement    EngagementService
	reports       ReportService
	moderation    ModerationService
	notifications NotificationService

	admin, representative, secondRepresentative, member, voter model.Caller
}

// setupServiceTest wires every service against an in-memory database seeded
// with an admin, two representatives of one company, a member and a voter.
func setupServiceTest(t *testing.T, sinks ...NotificationSink) *serviceTestEnv {
	t.Helper()

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	seed, err := db.Seed(testDB)
	require.NoError(t, err)

	require.NoError(t, testDB.Create(&[]model.Profile{
		{ID: 4, DisplayName: "두번째 대표"},
		{ID: 5, DisplayName: "투표자"},
	}).Error)
	require.NoError(t, testDB.Create(&model.CompanyRepresentative{CompanyID: seed.Company.ID, ProfileID: 4}).Error)

	env := &serviceTestEnv{
		db:               testDB,
		seed:             seed,
		reviewRepo:       repository.NewReviewRepository(testDB),
		replyRepo:        repository.NewReplyRepository(testDB),
		voteRepo:         repository.NewVoteRepository(testDB),
		notificationRepo: repository.NewNotificationRepository(testDB),
	}
	env.wire(t, env.notificationRepo, sinks...)
	return env
}

// wire (re)builds the services; notificationRepo may be replaced to inject failures
func (e *serviceTestEnv) wire(t *testing.T, notificationRepo repository.NotificationRepository, sinks ...NotificationSink) {
	t.Helper()

	profileRepo := repository.NewProfileRepository(e.db)
	companyRepo := repository.NewCompanyRepository(e.db)
	reportRepo := repository.NewReportRepository(e.db)

	e.identity = NewIdentityService(profileRepo)
	e.notifications = NewNotificationService(notificationRepo, profileRepo, config.LocaleKorean, sinks...)
	e.reviews = NewReviewService(e.reviewRepo, companyRepo, e.voteRepo, e.notifications.NotifyNewReview)
	e.replies = NewReplyService(e.replyRepo, e.reviewRepo, e.notifications)
	e.engagement = NewEngagementService(e.voteRepo, e.reviewRepo, e.replyRepo)
	e.reports = NewReportService(reportRepo, e.reviewRepo, e.replyRepo)
	e.moderation = NewModerationService(e.reviewRepo, e.replyRepo, reportRepo, e.notifications)

	e.admin = e.caller(t, e.seed.Admin.ID)
	e.representative = e.caller(t, e.seed.Representative.ID)
	e.secondRepresentative = e.caller(t, 4)
	e.member = e.caller(t, e.seed.Member.ID)
	e.voter = e.caller(t, 5)
}

func (e *serviceTestEnv) caller(t *testing.T, id uint) model.Caller {
	t.Helper()
	c, err := e.identity.ResolveCaller(context.Background(), id)
	require.NoError(t, err)
	return c
}

func (e *serviceTestEnv) createReview(t *testing.T, author model.Caller, sub model.SubRatings) *model.Review {
	t.Helper()
	review, err := e.reviews.CreateReview(context.Background(), author, e.seed.Company.ID, &model.CreateReviewRequest{
		SubRatings: sub,
		Body:       strPtr("친절하게 상담해 주셨어요"),
	})
	require.NoError(t, err)
	return review
}

func (e *serviceTestEnv) notificationsFor(t *testing.T, recipientID uint) []model.Notification {
	t.Helper()
	var list []model.Notification
	require.NoError(t, e.db.Where("recipient_id = ?", recipientID).Order("id").Find(&list).Error)
	return list
}

func ratings(c, r, v, f int) model.SubRatings {
	return model.SubRatings{Communication: &c, Responsiveness: &r, Value: &v, Friendliness: &f}
}

func intPtr(v int) *int       { return &v }
func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

// failingNotificationRepo simulates an unavailable store for notification writes
type failingNotificationRepo struct {
	repository.NotificationRepository
}

var errStoreUnavailable = errors.New("store unavailable")

func (failingNotificationRepo) Create(context.Context, *model.Notification) error {
	return errStoreUnavailable
}

// recordingSink captures pushes; err, when set, is returned from every push
type recordingSink struct {
	pushed []*model.Notification
	err    error
}

func (s *recordingSink) Push(_ context.Context, n *model.Notification, _ int64) error {
	s.pushed = append(s.pushed, n)
	return s.err
}
