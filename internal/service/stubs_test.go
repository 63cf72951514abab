package service

import (
	"context"

	"clicknet/internal/models"

	"gorm.io/gorm"
)

type userRepoStub struct {
	getByIDFn               func(context.Context, uint) (*models.User, error)
	getByEmailFn            func(context.Context, string) (*models.User, error)
	getByUsernameFn         func(context.Context, string) (*models.User, error)
	getProfileFn            func(context.Context, string) (*models.User, error)
	createFn                func(context.Context, *models.User) error
	updateFn                func(context.Context, *models.User) error
	deleteFn                func(context.Context, uint) error
	listFn                  func(context.Context, int, int) ([]models.User, error)
	countFn                 func(context.Context) (int64, error)
	replaceExperienceFn     func(context.Context, uint, []models.Experience) error
	replaceQualificationsFn func(context.Context, uint, []models.Qualification) error
	suggestionsFn           func(context.Context, []uint, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetProfile(ctx context.Context, username string) (*models.User, error) {
	return s.getProfileFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *userRepoStub) ReplaceExperience(ctx context.Context, userID uint, items []models.Experience) error {
	return s.replaceExperienceFn(ctx, userID, items)
}
func (s *userRepoStub) ReplaceQualifications(ctx context.Context, userID uint, items []models.Qualification) error {
	return s.replaceQualificationsFn(ctx, userID, items)
}
func (s *userRepoStub) Suggestions(ctx context.Context, excludeIDs []uint, limit int) ([]models.User, error) {
	return s.suggestionsFn(ctx, excludeIDs, limit)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:    func(context.Context, string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		getProfileFn:    func(context.Context, string) (*models.User, error) { return &models.User{}, nil },
		createFn:        func(context.Context, *models.User) error { return nil },
		updateFn:        func(context.Context, *models.User) error { return nil },
		deleteFn:        func(context.Context, uint) error { return nil },
		listFn:          func(context.Context, int, int) ([]models.User, error) { return nil, nil },
		countFn:         func(context.Context) (int64, error) { return 0, nil },
		replaceExperienceFn: func(context.Context, uint, []models.Experience) error {
			return nil
		},
		replaceQualificationsFn: func(context.Context, uint, []models.Qualification) error {
			return nil
		},
		suggestionsFn: func(context.Context, []uint, int) ([]models.User, error) { return nil, nil },
	}
}

type connectionRepoStub struct {
	createFn              func(context.Context, *models.ConnectionRequest) error
	getByIDFn             func(context.Context, uint) (*models.ConnectionRequest, error)
	getBetweenFn          func(context.Context, uint, uint, ...models.ConnectionStatus) (*models.ConnectionRequest, error)
	updateStatusFn        func(context.Context, *gorm.DB, uint, models.ConnectionStatus) error
	deleteAcceptedFn      func(context.Context, uint, uint) error
	listIncomingPendingFn func(context.Context, uint) ([]*models.ConnectionRequest, error)
	connectedIDsFn        func(context.Context, uint) ([]uint, error)
	transactionFn         func(context.Context, func(tx *gorm.DB) error) error
}

func (s *connectionRepoStub) Create(ctx context.Context, req *models.ConnectionRequest) error {
	return s.createFn(ctx, req)
}
func (s *connectionRepoStub) GetByID(ctx context.Context, id uint) (*models.ConnectionRequest, error) {
	return s.getByIDFn(ctx, id)
}
func (s *connectionRepoStub) GetBetween(ctx context.Context, a, b uint, statuses ...models.ConnectionStatus) (*models.ConnectionRequest, error) {
	return s.getBetweenFn(ctx, a, b, statuses...)
}
func (s *connectionRepoStub) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.ConnectionStatus) error {
	return s.updateStatusFn(ctx, tx, id, status)
}
func (s *connectionRepoStub) DeleteAcceptedBetween(ctx context.Context, a, b uint) error {
	return s.deleteAcceptedFn(ctx, a, b)
}
func (s *connectionRepoStub) ListIncomingPending(ctx context.Context, userID uint) ([]*models.ConnectionRequest, error) {
	return s.listIncomingPendingFn(ctx, userID)
}
func (s *connectionRepoStub) ConnectedIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.connectedIDsFn(ctx, userID)
}
func (s *connectionRepoStub) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.transactionFn(ctx, fn)
}

func noopConnectionRepo() *connectionRepoStub {
	return &connectionRepoStub{
		createFn: func(context.Context, *models.ConnectionRequest) error { return nil },
		getByIDFn: func(context.Context, uint) (*models.ConnectionRequest, error) {
			return &models.ConnectionRequest{}, nil
		},
		getBetweenFn: func(context.Context, uint, uint, ...models.ConnectionStatus) (*models.ConnectionRequest, error) {
			return nil, nil
		},
		updateStatusFn:   func(context.Context, *gorm.DB, uint, models.ConnectionStatus) error { return nil },
		deleteAcceptedFn: func(context.Context, uint, uint) error { return nil },
		listIncomingPendingFn: func(context.Context, uint) ([]*models.ConnectionRequest, error) {
			return nil, nil
		},
		connectedIDsFn: func(context.Context, uint) ([]uint, error) { return nil, nil },
		transactionFn: func(ctx context.Context, fn func(tx *gorm.DB) error) error {
			return fn(nil)
		},
	}
}

type postRepoStub struct {
	createFn      func(context.Context, *models.Post) error
	getByIDFn     func(context.Context, uint, uint) (*models.Post, error)
	getByUserIDFn func(context.Context, uint, int, int, uint) ([]*models.Post, error)
	feedFn        func(context.Context, []uint, int, int, uint) ([]*models.Post, error)
	listFn        func(context.Context, int, int, uint) ([]*models.Post, error)
	deleteFn      func(context.Context, uint) error
	isLikedFn     func(context.Context, uint, uint) (bool, error)
	likeFn        func(context.Context, uint, uint) (bool, error)
	unlikeFn      func(context.Context, uint, uint) error
	countFn       func(context.Context) (int64, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.getByUserIDFn(ctx, userID, limit, offset, currentUserID)
}
func (s *postRepoStub) Feed(ctx context.Context, authorIDs []uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.feedFn(ctx, authorIDs, limit, offset, currentUserID)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.listFn(ctx, limit, offset, currentUserID)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, postID)
}
func (s *postRepoStub) Like(ctx context.Context, userID, postID uint) (bool, error) {
	return s.likeFn(ctx, userID, postID)
}
func (s *postRepoStub) Unlike(ctx context.Context, userID, postID uint) error {
	return s.unlikeFn(ctx, userID, postID)
}
func (s *postRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:  func(context.Context, *models.Post) error { return nil },
		getByIDFn: func(context.Context, uint, uint) (*models.Post, error) { return &models.Post{}, nil },
		getByUserIDFn: func(context.Context, uint, int, int, uint) ([]*models.Post, error) {
			return nil, nil
		},
		feedFn:   func(context.Context, []uint, int, int, uint) ([]*models.Post, error) { return nil, nil },
		listFn:   func(context.Context, int, int, uint) ([]*models.Post, error) { return nil, nil },
		deleteFn: func(context.Context, uint) error { return nil },
		isLikedFn: func(context.Context, uint, uint) (bool, error) {
			return false, nil
		},
		likeFn:   func(context.Context, uint, uint) (bool, error) { return true, nil },
		unlikeFn: func(context.Context, uint, uint) error { return nil },
		countFn:  func(context.Context) (int64, error) { return 0, nil },
	}
}

type commentRepoStub struct {
	createFn      func(context.Context, *models.Comment) error
	getByIDFn     func(context.Context, uint) (*models.Comment, error)
	getByPostIDFn func(context.Context, uint, int, int) ([]*models.Comment, error)
	listFn        func(context.Context, int, int) ([]*models.Comment, error)
	deleteFn      func(context.Context, uint) error
	countFn       func(context.Context) (int64, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) GetByPostID(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error) {
	return s.getByPostIDFn(ctx, postID, limit, offset)
}
func (s *commentRepoStub) List(ctx context.Context, limit, offset int) ([]*models.Comment, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *commentRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:  func(context.Context, *models.Comment) error { return nil },
		getByIDFn: func(context.Context, uint) (*models.Comment, error) { return &models.Comment{}, nil },
		getByPostIDFn: func(context.Context, uint, int, int) ([]*models.Comment, error) {
			return nil, nil
		},
		listFn:   func(context.Context, int, int) ([]*models.Comment, error) { return nil, nil },
		deleteFn: func(context.Context, uint) error { return nil },
		countFn:  func(context.Context) (int64, error) { return 0, nil },
	}
}

type notificationRepoStub struct {
	createFn          func(context.Context, *gorm.DB, *models.Notification) error
	listByRecipientFn func(context.Context, uint, int, int) ([]models.NotificationView, error)
	markReadFn        func(context.Context, uint, uint) error
	markAllReadFn     func(context.Context, uint) error
	countUnreadFn     func(context.Context, uint) (int64, error)
}

func (s *notificationRepoStub) Create(ctx context.Context, tx *gorm.DB, n *models.Notification) error {
	return s.createFn(ctx, tx, n)
}
func (s *notificationRepoStub) ListByRecipient(ctx context.Context, recipientID uint, limit, offset int) ([]models.NotificationView, error) {
	return s.listByRecipientFn(ctx, recipientID, limit, offset)
}
func (s *notificationRepoStub) MarkRead(ctx context.Context, recipientID, id uint) error {
	return s.markReadFn(ctx, recipientID, id)
}
func (s *notificationRepoStub) MarkAllRead(ctx context.Context, recipientID uint) error {
	return s.markAllReadFn(ctx, recipientID)
}
func (s *notificationRepoStub) CountUnread(ctx context.Context, recipientID uint) (int64, error) {
	return s.countUnreadFn(ctx, recipientID)
}

func noopNotificationRepo() *notificationRepoStub {
	return &notificationRepoStub{
		createFn: func(context.Context, *gorm.DB, *models.Notification) error { return nil },
		listByRecipientFn: func(context.Context, uint, int, int) ([]models.NotificationView, error) {
			return nil, nil
		},
		markReadFn:    func(context.Context, uint, uint) error { return nil },
		markAllReadFn: func(context.Context, uint) error { return nil },
		countUnreadFn: func(context.Context, uint) (int64, error) { return 0, nil },
	}
}

func neverAdmin(context.Context, uint) (bool, error) { return false, nil }
func alwaysAdmin(context.Context, uint) (bool, error) { return true, nil }
