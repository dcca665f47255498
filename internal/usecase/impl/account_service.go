// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"authsvc/config"
	deliverycontext "authsvc/internal/delivery/context"
	"authsvc/internal/domain/entity"
	domainerrors "authsvc/internal/domain/errors"
	"authsvc/internal/domain/repository"
	"authsvc/internal/domain/service"
	"authsvc/internal/errors"
	"authsvc/internal/usecase"

	"go.uber.org/fx"
)

const (
	eventPublishTimeout = 3 * time.Second

	// Subject ids are random, so a collision on insert is retried with a new one.
	maxSubjectAttempts = 3
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager    repository.TransactionManager
	hasher       service.PasswordHasher
	tokenService service.TokenService
	subjects     service.SubjectGenerator
	publisher    service.EventPublisher
	tokenTTL     int
	logger       *slog.Logger
	now          func() time.Time
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	Hasher           service.PasswordHasher
	TokenService     service.TokenService
	SubjectGenerator service.SubjectGenerator
	Publisher        service.EventPublisher
	Config           *config.Config
	Logger           *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager:    params.TxManager,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		subjects:     params.SubjectGenerator,
		publisher:    params.Publisher,
		tokenTTL:     params.Config.Token.TTLMinutes,
		logger:       params.Logger,
		now:          time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.Logger(ctx, srv.logger)
}

// Register creates an account for an unused email and returns a token for it.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.TokenOutput, error) {
	srv.log(ctx).Debug("Starting registration", slog.String("email", input.Email))

	// 1. Reject a taken email before paying for a hash.
	_, err := srv.findAccount(ctx, input.Email)
	if err == nil {
		srv.log(ctx).Info("Registration rejected: email already registered", slog.String("email", input.Email))

		return nil, domainerrors.ErrDuplicateEmail.WrapMessage("register")
	}
	if !errors.Is(err, repository.ErrAccountNotFound) {
		return nil, errors.Wrap(err, "failed to check existing account")
	}

	// 2. Hash outside any transaction (bcrypt is CPU-bound).
	digest, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	// 3. Mint a subject and insert. A concurrent registration of the same email loses here on the unique index.
	account, err := srv.createAccount(ctx, input.Email, digest)
	if err != nil {
		if errors.Is(err, domainerrors.ErrDuplicateEmail) {
			srv.log(ctx).Info("Registration lost a race for the same email", slog.String("email", input.Email))
		}

		return nil, errors.Wrap(err, "failed to create account")
	}

	output, err := srv.issueToken(account)
	if err != nil {
		return nil, err
	}

	srv.publishRegistered(ctx, account)

	srv.log(ctx).Info("Account registered", slog.String("subject_id", account.SubjectID))

	return output, nil
}

// createAccount inserts the account under a freshly minted subject id.
func (srv *accountService) createAccount(ctx context.Context, email, digest string) (*entity.Account, error) {
	var lastErr error
	for range maxSubjectAttempts {
		subjectID, err := srv.subjects.NewSubjectID()
		if err != nil {
			return nil, errors.Wrap(err, "failed to mint subject id")
		}

		account := &entity.Account{
			Email:          email,
			PasswordDigest: digest,
			SubjectID:      subjectID,
		}

		lastErr = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
			return repoFactory.AccountRepo().Create(ctx, account)
		})
		if lastErr == nil {
			return account, nil
		}
		if !errors.Is(lastErr, repository.ErrSubjectIDTaken) {
			return nil, lastErr
		}

		srv.log(ctx).Warn("Subject id collision, minting another", slog.String("subject_id", subjectID))
	}

	return nil, errors.Wrapf(lastErr, "no free subject id after %d attempts", maxSubjectAttempts)
}

// Login verifies credentials and returns a fresh token.
// An unknown email and a wrong password produce the same error.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.TokenOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email))

	account, err := srv.findAccount(ctx, input.Email)
	if errors.Is(err, repository.ErrAccountNotFound) {
		srv.log(ctx).Info("Login failed", slog.String("email", input.Email))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load account for login")
	}

	if !srv.hasher.Check(input.Password, account.PasswordDigest) {
		srv.log(ctx).Info("Login failed", slog.String("email", input.Email))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login")
	}

	output, err := srv.issueToken(account)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Login succeeded", slog.String("subject_id", account.SubjectID))

	return output, nil
}

// findAccount reads from the primary in a short transaction to avoid stale reads on replicas.
func (srv *accountService) findAccount(ctx context.Context, email string) (*entity.Account, error) {
	var account *entity.Account

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var findErr error
		account, findErr = repoFactory.AccountRepo().FindByEmail(ctx, email)

		return findErr
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

func (srv *accountService) issueToken(account *entity.Account) (*usecase.TokenOutput, error) {
	token, err := srv.tokenService.Issue(&entity.Claims{
		Subject: account.SubjectID,
		Email:   account.Email,
	}, srv.tokenTTL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	return &usecase.TokenOutput{
		AccessToken: token,
		TokenType:   entity.TokenTypeBearer,
	}, nil
}

// publishRegistered announces the new account. Failures are logged and never reach the caller.
func (srv *accountService) publishRegistered(ctx context.Context, account *entity.Account) {
	if srv.publisher == nil {
		return
	}

	registeredAt := account.CreatedAt
	if registeredAt.IsZero() {
		registeredAt = srv.now()
	}

	// Detached from the request so a disconnecting client does not drop the event.
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), eventPublishTimeout)
	defer cancel()

	event := &service.AccountRegisteredEvent{
		RequestID:    deliverycontext.RequestID(ctx),
		SubjectID:    account.SubjectID,
		Email:        account.Email,
		RegisteredAt: registeredAt.UTC(),
	}
	if err := srv.publisher.PublishAccountRegistered(publishCtx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish account registered event",
			slog.String("subject_id", account.SubjectID),
			slog.Any("error", err),
		)
	}
}
