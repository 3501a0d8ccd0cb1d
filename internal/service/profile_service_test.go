package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error) {
	args := m.Called(ctx, objectKey, contentType, expires)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	args := m.Called(ctx, objectKey, expires)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) DeleteObject(ctx context.Context, objectKey string) error {
	args := m.Called(ctx, objectKey)
	return args.Error(0)
}

func newTestProfileService() (*MockUserRepository, *MockActivityRepository, *MockGoalRepository, *MockNotificationRepository, *MockFileStorage, ProfileService) {
	userRepo := new(MockUserRepository)
	activityRepo := new(MockActivityRepository)
	goalRepo := new(MockGoalRepository)
	notificationRepo := new(MockNotificationRepository)
	fileStorage := new(MockFileStorage)
	svc := NewProfileService(userRepo, activityRepo, goalRepo, notificationRepo, fileStorage)
	return userRepo, activityRepo, goalRepo, notificationRepo, fileStorage, svc
}

func TestGetProfile_WithPicturePresignsDownload(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	userRepo, _, _, _, fileStorage, svc := newTestProfileService()

	stored := &domain.User{
		ID:                userID,
		Email:             "jane@example.com",
		Username:          "jane",
		PasswordHash:      "hash",
		ProfilePictureKey: "profile-pictures/abc/pic",
	}
	userRepo.On("GetByID", ctx, userID).Return(stored, nil).Once()
	fileStorage.On("GeneratePresignedDownloadURL", ctx, "profile-pictures/abc/pic", mock.Anything).
		Return("https://bucket.example.com/signed", nil).Once()

	profile, err := svc.GetProfile(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, "https://bucket.example.com/signed", profile.ProfilePictureURL)
	assert.Empty(t, profile.User.PasswordHash)
	fileStorage.AssertExpectations(t)
}

func TestGetProfile_UnknownUser(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	userRepo, _, _, _, _, svc := newTestProfileService()

	userRepo.On("GetByID", ctx, userID).Return(nil, repository.ErrNotFound).Once()

	_, err := svc.GetProfile(ctx, userID)

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfile_ChangesUsernameBioAndPassword(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	userRepo, _, _, _, _, svc := newTestProfileService()

	stored := &domain.User{ID: userID, Email: "jane@example.com", Username: "jane", PasswordHash: "old"}
	userRepo.On("GetByID", ctx, userID).Return(stored, nil).Once()
	userRepo.On("GetByUsername", ctx, "jane2").Return(nil, repository.ErrNotFound).Once()
	newPassword := "newpassword1"
	userRepo.On("Update", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.Username == "jane2" &&
			u.Bio == "cyclist" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(newPassword)) == nil
	})).Return(nil).Once()

	profile, err := svc.UpdateProfile(ctx, userID, "jane2", "cyclist", &newPassword)

	require.NoError(t, err)
	assert.Equal(t, "jane2", profile.User.Username)
	assert.Empty(t, profile.User.PasswordHash)
	userRepo.AssertExpectations(t)
}

func TestUpdateProfile_UsernameTaken(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	userRepo, _, _, _, _, svc := newTestProfileService()

	stored := &domain.User{ID: userID, Username: "jane"}
	userRepo.On("GetByID", ctx, userID).Return(stored, nil).Once()
	other := &domain.User{ID: primitive.NewObjectID(), Username: "jane2"}
	userRepo.On("GetByUsername", ctx, "jane2").Return(other, nil).Once()

	_, err := svc.UpdateProfile(ctx, userID, "jane2", "", nil)

	assert.ErrorIs(t, err, ErrUsernameTaken)
	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestRequestPictureUpload_ReservesKeyAndDeletesOld(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	userRepo, _, _, _, fileStorage, svc := newTestProfileService()

	stored := &domain.User{ID: userID, Username: "jane", ProfilePictureKey: "profile-pictures/old-key"}
	userRepo.On("GetByID", ctx, userID).Return(stored, nil).Once()
	fileStorage.On("GeneratePresignedUploadURL", ctx, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "profile-pictures/"+userID.Hex()+"/")
	}), "image/png", mock.Anything).Return("https://bucket.example.com/upload", nil).Once()
	userRepo.On("Update", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return strings.HasPrefix(u.ProfilePictureKey, "profile-pictures/"+userID.Hex()+"/")
	})).Return(nil).Once()
	fileStorage.On("DeleteObject", ctx, "profile-pictures/old-key").Return(nil).Once()

	uploadURL, err := svc.RequestPictureUpload(ctx, userID, "image/png")

	require.NoError(t, err)
	assert.Equal(t, "https://bucket.example.com/upload", uploadURL)
	userRepo.AssertExpectations(t)
	fileStorage.AssertExpectations(t)
}

func TestRequestPictureUpload_OldObjectDeleteFailureIgnored(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	userRepo, _, _, _, fileStorage, svc := newTestProfileService()

	stored := &domain.User{ID: userID, ProfilePictureKey: "profile-pictures/old-key"}
	userRepo.On("GetByID", ctx, userID).Return(stored, nil).Once()
	fileStorage.On("GeneratePresignedUploadURL", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return("https://bucket.example.com/upload", nil).Once()
	userRepo.On("Update", ctx, mock.Anything).Return(nil).Once()
	fileStorage.On("DeleteObject", ctx, "profile-pictures/old-key").Return(assert.AnError).Once()

	uploadURL, err := svc.RequestPictureUpload(ctx, userID, "image/jpeg")

	require.NoError(t, err)
	assert.NotEmpty(t, uploadURL)
}

func TestDeleteAccount_CascadesOwnedData(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	userRepo, activityRepo, goalRepo, notificationRepo, fileStorage, svc := newTestProfileService()

	stored := &domain.User{ID: userID, ProfilePictureKey: "profile-pictures/pic"}
	userRepo.On("GetByID", ctx, userID).Return(stored, nil).Once()
	activityRepo.On("DeleteByOwner", ctx, userID).Return(nil).Once()
	goalRepo.On("DeleteByOwner", ctx, userID).Return(nil).Once()
	notificationRepo.On("DeleteByRecipient", ctx, userID).Return(nil).Once()
	fileStorage.On("DeleteObject", ctx, "profile-pictures/pic").Return(nil).Once()
	userRepo.On("Delete", ctx, userID).Return(nil).Once()

	err := svc.DeleteAccount(ctx, userID)

	require.NoError(t, err)
	userRepo.AssertExpectations(t)
	activityRepo.AssertExpectations(t)
	goalRepo.AssertExpectations(t)
	notificationRepo.AssertExpectations(t)
	fileStorage.AssertExpectations(t)
}

func TestDeleteAccount_StopsOnCascadeFailure(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	userRepo, activityRepo, goalRepo, _, _, svc := newTestProfileService()

	stored := &domain.User{ID: userID}
	userRepo.On("GetByID", ctx, userID).Return(stored, nil).Once()
	activityRepo.On("DeleteByOwner", ctx, userID).Return(assert.AnError).Once()

	err := svc.DeleteAccount(ctx, userID)

	assert.Error(t, err)
	goalRepo.AssertNotCalled(t, "DeleteByOwner", mock.Anything, mock.Anything)
	userRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
