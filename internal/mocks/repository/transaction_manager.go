// Package repository provides testify mocks for the domain repository interfaces.
package repository

import (
	"context"

	"authsvc/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// MockTransactionManager is a mock of repository.TransactionManager.
// Return may be given an error or a func(ctx, fn) error that runs in place of the transaction.
type MockTransactionManager struct {
	mock.Mock
}

// NewMockTransactionManager creates the mock and asserts its expectations when the test ends.
func NewMockTransactionManager(t mock.TestingT) *MockTransactionManager {
	m := &MockTransactionManager{}
	m.Test(t)
	if c, ok := t.(interface{ Cleanup(func()) }); ok {
		c.Cleanup(func() { m.AssertExpectations(t) })
	}

	return m
}

func (m *MockTransactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	ret := m.Called(ctx, fn)
	if rf, ok := ret.Get(0).(func(context.Context, func(repository.RepositoryFactory) error) error); ok {
		return rf(ctx, fn)
	}

	return ret.Error(0)
}

// PassThrough makes Execute run every callback against factory.
func (m *MockTransactionManager) PassThrough(factory repository.RepositoryFactory) *mock.Call {
	return m.On("Execute", mock.Anything, mock.Anything).
		Return(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		})
}

// MockRepositoryFactory is a mock of repository.RepositoryFactory.
type MockRepositoryFactory struct {
	mock.Mock
}

// NewMockRepositoryFactory creates the mock and asserts its expectations when the test ends.
func NewMockRepositoryFactory(t mock.TestingT) *MockRepositoryFactory {
	m := &MockRepositoryFactory{}
	m.Test(t)
	if c, ok := t.(interface{ Cleanup(func()) }); ok {
		c.Cleanup(func() { m.AssertExpectations(t) })
	}

	return m
}

func (m *MockRepositoryFactory) AccountRepo() repository.AccountRepository {
	ret := m.Called()
	repo, _ := ret.Get(0).(repository.AccountRepository)

	return repo
}
