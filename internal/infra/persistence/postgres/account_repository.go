package postgres

import (
	"context"

	"authsvc/internal/domain/entity"
	domainerrors "authsvc/internal/domain/errors"
	"authsvc/internal/domain/repository"
	"authsvc/internal/errors"
	"authsvc/internal/infra/persistence/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// accountRepository implements the domain.AccountRepository interface using GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
// It returns the repository as a domain.AccountRepository interface, adhering to dependency inversion.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// FindByEmail retrieves the account whose email matches exactly.
func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var accountM model.AccountModel

	err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		Take(&accountM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, domainerrors.NewStoreUnavailableError(err, "failed to find account by email")
	}

	return toAccountDomain(&accountM), nil
}

// Create persists a new account with a single INSERT.
// A conflict on email inserts nothing; a unique violation that remains can only come from sub.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)

	result := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).
		Create(accountM)
	if err := result.Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return errors.Wrap(repository.ErrSubjectIDTaken, "create account")
		}

		return domainerrors.NewStoreUnavailableError(err, "failed to create account")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrDuplicateEmail.WrapMessage("email already exists")
	}

	account.ID = accountM.ID
	account.CreatedAt = accountM.CreatedAt

	return nil
}

func toAccountDomain(data *model.AccountModel) *entity.Account {
	return &entity.Account{
		ID:             data.ID,
		Email:          data.Email,
		PasswordDigest: data.PasswordDigest,
		SubjectID:      data.SubjectID,
		CreatedAt:      data.CreatedAt,
	}
}

func fromAccountDomain(data *entity.Account) *model.AccountModel {
	return &model.AccountModel{
		ID:             data.ID,
		Email:          data.Email,
		PasswordDigest: data.PasswordDigest,
		SubjectID:      data.SubjectID,
		CreatedAt:      data.CreatedAt,
	}
}
