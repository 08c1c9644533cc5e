// internal/service/account_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"finledger/internal/auth"
	"finledger/internal/domain"
	"finledger/internal/util"
	"finledger/pkg/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testTokenTTL = 30 * time.Minute

// newTestAccountService wires an accountService with mocks and a real
// TokenManager. The injected tx funcs hand back the given controller so
// tests can assert on Commit/Rollback.
func newTestAccountService(userRepo *MockUserRepository, txController *MockTxController, tokens *auth.TokenManager) AccountService {
	return NewAccountService(
		nil, // dbBeginner is unused: beginTx is injected below
		new(MockDBExecutor),
		userRepo,
		tokens,
		func(ctx context.Context, dbConn db.DBTxBeginner) (db.TxController, error) {
			return txController, nil
		},
		func(tx db.TxController) error {
			return txController.Commit()
		},
		func(tx db.TxController) {
			_ = txController.Rollback()
		},
	)
}

func TestRegister(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", testTokenTTL)

	t.Run("SuccessfulRegistration", func(t *testing.T) {
		ctx := context.Background()
		mockUserRepo := new(MockUserRepository)
		mockTxController := new(MockTxController)
		svc := newTestAccountService(mockUserRepo, mockTxController, tokens)

		mockUserRepo.On("GetUserByUsername", ctx, mock.Anything, "alice").Return(nil, util.ErrNotFound).Once()
		mockUserRepo.On("GetUserByEmail", ctx, mock.Anything, "a@x.com").Return(nil, util.ErrNotFound).Once()
		mockUserRepo.On("CreateUser", ctx, mock.Anything, mock.AnythingOfType("*domain.User")).
			Run(func(args mock.Arguments) {
				user := args.Get(2).(*domain.User)
				user.ID = 1
			}).Return(nil).Once()
		mockTxController.On("Commit").Return(nil).Once()
		mockTxController.On("Rollback").Return(nil).Maybe()

		user, err := svc.Register(ctx, "alice", "a@x.com", "secret1")

		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, int64(1), user.ID)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "a@x.com", user.Email)
		assert.False(t, user.IsAdmin)
		assert.NotEqual(t, "secret1", user.PasswordHash, "plaintext must never be stored")
		assert.True(t, auth.CheckPassword("secret1", user.PasswordHash))

		mock.AssertExpectationsForObjects(t, mockUserRepo, mockTxController)
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		ctx := context.Background()
		mockUserRepo := new(MockUserRepository)
		mockTxController := new(MockTxController)
		svc := newTestAccountService(mockUserRepo, mockTxController, tokens)

		existing := domain.NewUser("alice", "other@x.com", "hash")
		mockUserRepo.On("GetUserByUsername", ctx, mock.Anything, "alice").Return(existing, nil).Once()
		mockTxController.On("Rollback").Return(nil).Once()

		user, err := svc.Register(ctx, "alice", "a@x.com", "secret1")

		assert.ErrorIs(t, err, util.ErrDuplicateUsername)
		assert.Nil(t, user)
		mockUserRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)
		mockTxController.AssertNotCalled(t, "Commit")

		mock.AssertExpectationsForObjects(t, mockUserRepo, mockTxController)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		ctx := context.Background()
		mockUserRepo := new(MockUserRepository)
		mockTxController := new(MockTxController)
		svc := newTestAccountService(mockUserRepo, mockTxController, tokens)

		existing := domain.NewUser("someone", "a@x.com", "hash")
		mockUserRepo.On("GetUserByUsername", ctx, mock.Anything, "alice").Return(nil, util.ErrNotFound).Once()
		mockUserRepo.On("GetUserByEmail", ctx, mock.Anything, "a@x.com").Return(existing, nil).Once()
		mockTxController.On("Rollback").Return(nil).Once()

		user, err := svc.Register(ctx, "alice", "a@x.com", "secret1")

		assert.ErrorIs(t, err, util.ErrDuplicateEmail)
		assert.Nil(t, user)
		mockUserRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)
		mockTxController.AssertNotCalled(t, "Commit")

		mock.AssertExpectationsForObjects(t, mockUserRepo, mockTxController)
	})

	t.Run("ConstraintViolationWinsOverPreCheck", func(t *testing.T) {
		// A concurrent registration can slip past the pre-checks; the unique
		// constraint reported by the repository must surface as the same
		// conflict error.
		ctx := context.Background()
		mockUserRepo := new(MockUserRepository)
		mockTxController := new(MockTxController)
		svc := newTestAccountService(mockUserRepo, mockTxController, tokens)

		mockUserRepo.On("GetUserByUsername", ctx, mock.Anything, "alice").Return(nil, util.ErrNotFound).Once()
		mockUserRepo.On("GetUserByEmail", ctx, mock.Anything, "a@x.com").Return(nil, util.ErrNotFound).Once()
		mockUserRepo.On("CreateUser", ctx, mock.Anything, mock.AnythingOfType("*domain.User")).
			Return(util.ErrDuplicateUsername).Once()
		mockTxController.On("Rollback").Return(nil).Once()

		user, err := svc.Register(ctx, "alice", "a@x.com", "secret1")

		assert.ErrorIs(t, err, util.ErrDuplicateUsername)
		assert.Nil(t, user)
		mockTxController.AssertNotCalled(t, "Commit")

		mock.AssertExpectationsForObjects(t, mockUserRepo, mockTxController)
	})

	t.Run("EmptyInput", func(t *testing.T) {
		ctx := context.Background()
		mockUserRepo := new(MockUserRepository)
		mockTxController := new(MockTxController)
		svc := newTestAccountService(mockUserRepo, mockTxController, tokens)

		user, err := svc.Register(ctx, "", "a@x.com", "secret1")

		assert.ErrorIs(t, err, util.ErrInvalidInput)
		assert.Nil(t, user)
		mockUserRepo.AssertNotCalled(t, "GetUserByUsername", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", testTokenTTL)

	passwordHash, err := auth.HashPassword("secret1")
	require.NoError(t, err)

	storedUser := &domain.User{
		ID:           1,
		Username:     "alice",
		Email:        "a@x.com",
		PasswordHash: passwordHash,
	}

	t.Run("SuccessfulLogin", func(t *testing.T) {
		ctx := context.Background()
		mockUserRepo := new(MockUserRepository)
		svc := newTestAccountService(mockUserRepo, new(MockTxController), tokens)

		mockUserRepo.On("GetUserByUsername", ctx, mock.Anything, "alice").Return(storedUser, nil).Once()

		token, err := svc.Login(ctx, "alice", "secret1")

		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := tokens.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "alice", claims.Username)

		mock.AssertExpectationsForObjects(t, mockUserRepo)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		ctx := context.Background()
		mockUserRepo := new(MockUserRepository)
		svc := newTestAccountService(mockUserRepo, new(MockTxController), tokens)

		mockUserRepo.On("GetUserByUsername", ctx, mock.Anything, "alice").Return(storedUser, nil).Once()

		token, err := svc.Login(ctx, "alice", "wrong")

		assert.ErrorIs(t, err, util.ErrInvalidCredentials)
		assert.Empty(t, token)

		mock.AssertExpectationsForObjects(t, mockUserRepo)
	})

	t.Run("UnknownUsername", func(t *testing.T) {
		ctx := context.Background()
		mockUserRepo := new(MockUserRepository)
		svc := newTestAccountService(mockUserRepo, new(MockTxController), tokens)

		mockUserRepo.On("GetUserByUsername", ctx, mock.Anything, "ghost").Return(nil, util.ErrNotFound).Once()

		token, err := svc.Login(ctx, "ghost", "secret1")

		// Indistinguishable from a wrong password.
		assert.ErrorIs(t, err, util.ErrInvalidCredentials)
		assert.Empty(t, token)

		mock.AssertExpectationsForObjects(t, mockUserRepo)
	})
}

func TestAuthenticate(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", testTokenTTL)

	t.Run("ValidToken", func(t *testing.T) {
		ctx := context.Background()
		mockUserRepo := new(MockUserRepository)
		svc := newTestAccountService(mockUserRepo, new(MockTxController), tokens)

		storedUser := &domain.User{ID: 1, Username: "alice", Email: "a@x.com"}
		mockUserRepo.On("GetUserByUsername", ctx, mock.Anything, "alice").Return(storedUser, nil).Once()

		token, err := tokens.Issue("alice")
		require.NoError(t, err)

		user, err := svc.Authenticate(ctx, token)

		require.NoError(t, err)
		assert.Equal(t, storedUser, user)

		mock.AssertExpectationsForObjects(t, mockUserRepo)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		ctx := context.Background()
		mockUserRepo := new(MockUserRepository)
		svc := newTestAccountService(mockUserRepo, new(MockTxController), tokens)

		user, err := svc.Authenticate(ctx, "garbage")

		assert.ErrorIs(t, err, util.ErrUnauthenticated)
		assert.Nil(t, user)
		mockUserRepo.AssertNotCalled(t, "GetUserByUsername", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		ctx := context.Background()
		mockUserRepo := new(MockUserRepository)
		svc := newTestAccountService(mockUserRepo, new(MockTxController), tokens)

		expiredIssuer := auth.NewTokenManager("test-secret", -time.Minute)
		token, err := expiredIssuer.Issue("alice")
		require.NoError(t, err)

		user, err := svc.Authenticate(ctx, token)

		assert.ErrorIs(t, err, util.ErrUnauthenticated)
		assert.Nil(t, user)
	})

	t.Run("UserDeletedAfterIssuance", func(t *testing.T) {
		ctx := context.Background()
		mockUserRepo := new(MockUserRepository)
		svc := newTestAccountService(mockUserRepo, new(MockTxController), tokens)

		mockUserRepo.On("GetUserByUsername", ctx, mock.Anything, "alice").Return(nil, util.ErrNotFound).Once()

		token, err := tokens.Issue("alice")
		require.NoError(t, err)

		user, err := svc.Authenticate(ctx, token)

		assert.ErrorIs(t, err, util.ErrUnauthenticated)
		assert.Nil(t, user)

		mock.AssertExpectationsForObjects(t, mockUserRepo)
	})
}
