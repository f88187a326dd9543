package service

import (
	"context"
	"testing"
	"time"

	"rentshare/internal/domain"
	"rentshare/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommentService(t *testing.T, repo domain.Repository) *CommentService {
	t.Helper()
	logger := zerolog.Nop()
	return NewCommentService(repo, fixedClock{now: testNow}, &logger)
}

func seedBookingWithStatus(t *testing.T, repo domain.Repository, itemID, bookerID int64, start, end time.Time, status models.BookingStatus) *models.Booking {
	t.Helper()
	ctx := context.Background()
	b := &models.Booking{ItemID: itemID, BookerID: bookerID, Start: start, End: end, Status: models.StatusWaiting}
	require.NoError(t, repo.CreateBooking(ctx, b))
	if status != models.StatusWaiting {
		updated, err := repo.SetBookingStatus(ctx, b.ID, status)
		require.NoError(t, err)
		require.True(t, updated)
	}
	return b
}

func TestCommentService_Create(t *testing.T) {
	repo := setupRepo(t)
	svc := newTestCommentService(t, repo)
	ctx := context.Background()

	owner := seedUser(t, repo, "Owner", "owner@example.com")
	author := seedUser(t, repo, "Author", "author@example.com")
	item := seedItem(t, repo, owner.ID, "Drill", true)

	// Завершенная подтвержденная аренда открывает право на комментарий.
	seedBookingWithStatus(t, repo, item.ID, author.ID,
		testNow.Add(-72*time.Hour), testNow.Add(-48*time.Hour), models.StatusApproved)

	comment, err := svc.Create(ctx, author.ID, item.ID, "  great tool  ")
	require.NoError(t, err)
	assert.NotZero(t, comment.ID)
	assert.Equal(t, "great tool", comment.Text)
	assert.Equal(t, testNow, comment.Created)

	comments, err := svc.ListByItem(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, comment.ID, comments[0].ID)
}

func TestCommentService_Create_BookingNotApproved(t *testing.T) {
	repo := setupRepo(t)
	svc := newTestCommentService(t, repo)
	ctx := context.Background()

	owner := seedUser(t, repo, "Owner", "owner@example.com")
	author := seedUser(t, repo, "Author", "author@example.com")
	item := seedItem(t, repo, owner.ID, "Drill", true)

	// Аренда завершилась, но так и не была подтверждена.
	seedBookingWithStatus(t, repo, item.ID, author.ID,
		testNow.Add(-72*time.Hour), testNow.Add(-48*time.Hour), models.StatusWaiting)

	_, err := svc.Create(ctx, author.ID, item.ID, "never happened")
	assert.ErrorIs(t, err, domain.ErrCommentNotAuthorized)
}

func TestCommentService_Create_BookingNotFinished(t *testing.T) {
	repo := setupRepo(t)
	svc := newTestCommentService(t, repo)
	ctx := context.Background()

	owner := seedUser(t, repo, "Owner", "owner@example.com")
	author := seedUser(t, repo, "Author", "author@example.com")
	item := seedItem(t, repo, owner.ID, "Drill", true)

	// Подтвержденная, но еще идущая аренда права не дает.
	seedBookingWithStatus(t, repo, item.ID, author.ID,
		testNow.Add(-time.Hour), testNow.Add(time.Hour), models.StatusApproved)

	_, err := svc.Create(ctx, author.ID, item.ID, "too early")
	assert.ErrorIs(t, err, domain.ErrCommentNotAuthorized)
}

func TestCommentService_Create_AnyQualifyingBooking(t *testing.T) {
	repo := setupRepo(t)
	svc := newTestCommentService(t, repo)
	ctx := context.Background()

	owner := seedUser(t, repo, "Owner", "owner@example.com")
	author := seedUser(t, repo, "Author", "author@example.com")
	item := seedItem(t, repo, owner.ID, "Drill", true)

	// Более ранняя отклоненная аренда не должна заслонять
	// подтвержденную завершившуюся.
	seedBookingWithStatus(t, repo, item.ID, author.ID,
		testNow.Add(-120*time.Hour), testNow.Add(-100*time.Hour), models.StatusRejected)
	seedBookingWithStatus(t, repo, item.ID, author.ID,
		testNow.Add(-72*time.Hour), testNow.Add(-48*time.Hour), models.StatusApproved)

	comment, err := svc.Create(ctx, author.ID, item.ID, "second time was a charm")
	require.NoError(t, err)
	assert.NotZero(t, comment.ID)
}

func TestCommentService_Create_NoBooking(t *testing.T) {
	repo := setupRepo(t)
	svc := newTestCommentService(t, repo)
	ctx := context.Background()

	owner := seedUser(t, repo, "Owner", "owner@example.com")
	author := seedUser(t, repo, "Author", "author@example.com")
	item := seedItem(t, repo, owner.ID, "Drill", true)

	_, err := svc.Create(ctx, author.ID, item.ID, "drive-by review")
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestCommentService_Create_MissingAuthorOrItem(t *testing.T) {
	repo := setupRepo(t)
	svc := newTestCommentService(t, repo)
	ctx := context.Background()

	owner := seedUser(t, repo, "Owner", "owner@example.com")
	item := seedItem(t, repo, owner.ID, "Drill", true)

	_, err := svc.Create(ctx, 9999, item.ID, "ghost author")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = svc.Create(ctx, owner.ID, 9999, "ghost item")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}
