// internal/service/account_service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"finledger/internal/auth"
	"finledger/internal/domain"
	"finledger/internal/repository"
	"finledger/internal/util"
	"finledger/pkg/db"
)

// AccountService defines the business logic around user accounts:
// registration, credential verification and token-based authentication.
type AccountService interface {
	// Register creates a new user. Duplicate usernames and emails fail with
	// util.ErrDuplicateUsername / util.ErrDuplicateEmail respectively.
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	// Login verifies the credentials and returns a signed bearer token. An
	// unknown username and a wrong password are indistinguishable: both
	// return util.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (string, error)
	// Authenticate resolves a bearer token to the user it was issued to.
	// Every failure, including a token whose subject no longer exists,
	// collapses to util.ErrUnauthenticated.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// accountService implements the AccountService interface.
type accountService struct {
	dbBeginner db.DBTxBeginner       // For starting transactions (e.g., *sqlx.DB)
	dbExecutor repository.DBExecutor // For non-transactional reads (e.g., *sqlx.DB)
	userRepo   repository.UserRepository
	tokens     *auth.TokenManager
	beginTx    db.BeginTxFunc
	commitTx   db.CommitTxFunc
	rollbackTx db.RollbackTxFunc
}

// NewAccountService creates a new instance of AccountService.
func NewAccountService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	tokens *auth.TokenManager,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) AccountService {
	return &accountService{
		dbBeginner: dbBeginner,
		dbExecutor: dbExecutor,
		userRepo:   userRepo,
		tokens:     tokens,
		beginTx:    beginTx,
		commitTx:   commitTx,
		rollbackTx: rollbackTx,
	}
}

// Register creates a new user account. The duplicate pre-checks give the
// caller a friendly error naming the conflicting field; the database's
// unique constraints remain the authoritative guard, so a concurrent
// registration that slips past the pre-check still surfaces as the same
// conflict error from CreateUser.
func (s *accountService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, util.ErrInvalidInput
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("register: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("register: transaction controller does not implement DBExecutor")
	}

	// Fast-path duplicate checks for a friendlier error message.
	if _, err := s.userRepo.GetUserByUsername(ctx, txExecutor, username); err == nil {
		return nil, util.ErrDuplicateUsername
	} else if !errors.Is(err, util.ErrNotFound) {
		return nil, fmt.Errorf("register: failed to check username: %w", err)
	}
	if _, err := s.userRepo.GetUserByEmail(ctx, txExecutor, email); err == nil {
		return nil, util.ErrDuplicateEmail
	} else if !errors.Is(err, util.ErrNotFound) {
		return nil, fmt.Errorf("register: failed to check email: %w", err)
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("register: failed to hash password: %w", err)
	}

	user := domain.NewUser(username, email, passwordHash)
	if err := s.userRepo.CreateUser(ctx, txExecutor, user); err != nil {
		if errors.Is(err, util.ErrDuplicateUsername) || errors.Is(err, util.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("register: failed to create user: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("register: failed to commit transaction: %w", err)
	}

	return user, nil
}

// Login verifies the username/password pair and issues a bearer token.
func (s *accountService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, s.dbExecutor, username)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			// Same error as a wrong password, to avoid username enumeration.
			return "", util.ErrInvalidCredentials
		}
		return "", fmt.Errorf("login: failed to get user: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", util.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		return "", fmt.Errorf("login: failed to issue token: %w", err)
	}
	return token, nil
}

// Authenticate verifies a bearer token and resolves its subject to a stored
// user record.
func (s *accountService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, util.ErrUnauthenticated
	}

	user, err := s.userRepo.GetUserByUsername(ctx, s.dbExecutor, claims.Username)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			// The subject was deleted after the token was issued.
			return nil, util.ErrUnauthenticated
		}
		return nil, fmt.Errorf("authenticate: failed to get user: %w", err)
	}
	return user, nil
}
