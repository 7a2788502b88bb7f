package account

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	appshared "github.com/shop/backend/internal/application/shared"
	"github.com/shop/backend/internal/domain/account"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/domain/wallet"
	"github.com/shop/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// UserService manages user accounts
type UserService struct {
	userRepo  account.UserRepository
	txScope   appshared.TransactionScope
	blacklist auth.TokenBlacklist
	// sessionTTL bounds how long a forced logout must be remembered
	sessionTTL time.Duration
	logger     *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo account.UserRepository,
	txScope appshared.TransactionScope,
	blacklist auth.TokenBlacklist,
	sessionTTL time.Duration,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:   userRepo,
		txScope:    txScope,
		blacklist:  blacklist,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// CreateUser registers a user together with an empty wallet
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	user, err := account.NewUser(req.Email, req.Password, req.FullName)
	if err != nil {
		return nil, err
	}
	if err := user.SetPhoneNumber(req.PhoneNumber); err != nil {
		return nil, err
	}
	if req.IsStaff {
		user.PromoteToStaff()
	}

	err = s.txScope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		exists, err := repos.UserRepo().ExistsByEmail(ctx, user.Email)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainError("ALREADY_EXISTS", "A user with this email already exists")
		}

		w := wallet.NewWallet(user.Email)
		if err := repos.WalletRepo().Create(ctx, w); err != nil {
			return err
		}
		user.AttachWallet(w.ID)
		return repos.UserRepo().Save(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.Bool("is_staff", user.IsStaff))
	resp := ToUserResponse(user)
	return &resp, nil
}

// GetProfile returns the user's own profile
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// ListUsers returns a page of users, optionally filtered by a search term
func (s *UserService) ListUsers(ctx context.Context, filter shared.Filter) (shared.Paginated[UserResponse], error) {
	users, total, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return shared.Paginated[UserResponse]{}, err
	}
	items := make([]UserResponse, len(users))
	for i := range users {
		items[i] = ToUserResponse(&users[i])
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// DeactivateUser blocks a user and invalidates every token issued so far
func (s *UserService) DeactivateUser(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.IsActive {
		return nil
	}
	user.Deactivate()
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	if s.blacklist != nil {
		if err := s.blacklist.AddUserTokensToBlacklist(ctx, userID.String(), s.sessionTTL); err != nil {
			s.logger.Error("Failed to revoke user tokens", zap.String("user_id", userID.String()), zap.Error(err))
		}
	}
	s.logger.Info("User deactivated", zap.String("user_id", userID.String()))
	return nil
}

// EnsureStaff creates a staff user unless the email is already taken.
// Used to seed the first operator account at startup.
func (s *UserService) EnsureStaff(ctx context.Context, email, password string) error {
	_, err := s.CreateUser(ctx, CreateUserRequest{Email: email, Password: password, IsStaff: true})
	if errors.Is(err, shared.ErrAlreadyExists) {
		return nil
	}
	return err
}
