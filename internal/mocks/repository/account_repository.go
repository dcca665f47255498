package repository

import (
	"context"

	"authsvc/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock of repository.AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

// NewMockAccountRepository creates the mock and asserts its expectations when the test ends.
func NewMockAccountRepository(t mock.TestingT) *MockAccountRepository {
	m := &MockAccountRepository{}
	m.Test(t)
	if c, ok := t.(interface{ Cleanup(func()) }); ok {
		c.Cleanup(func() { m.AssertExpectations(t) })
	}

	return m
}

func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	ret := m.Called(ctx, email)
	account, _ := ret.Get(0).(*entity.Account)

	return account, ret.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, account *entity.Account) error {
	return m.Called(ctx, account).Error(0)
}
