// Package service provides testify mocks for the domain service interfaces.
package service

import (
	"context"

	"authsvc/internal/domain/entity"
	"authsvc/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

func assertOnCleanup(t mock.TestingT, m interface{ AssertExpectations(mock.TestingT) bool }) {
	if c, ok := t.(interface{ Cleanup(func()) }); ok {
		c.Cleanup(func() { m.AssertExpectations(t) })
	}
}

// MockPasswordHasher is a mock of service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

func NewMockPasswordHasher(t mock.TestingT) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Test(t)
	assertOnCleanup(t, m)

	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	ret := m.Called(password)

	return ret.String(0), ret.Error(1)
}

func (m *MockPasswordHasher) Check(password, digest string) bool {
	return m.Called(password, digest).Bool(0)
}

// MockTokenService is a mock of service.TokenService.
type MockTokenService struct {
	mock.Mock
}

func NewMockTokenService(t mock.TestingT) *MockTokenService {
	m := &MockTokenService{}
	m.Test(t)
	assertOnCleanup(t, m)

	return m
}

func (m *MockTokenService) Issue(claims *entity.Claims, ttlMinutes int) (string, error) {
	ret := m.Called(claims, ttlMinutes)

	return ret.String(0), ret.Error(1)
}

func (m *MockTokenService) Validate(token string) (*entity.Claims, error) {
	ret := m.Called(token)
	claims, _ := ret.Get(0).(*entity.Claims)

	return claims, ret.Error(1)
}

// MockSubjectGenerator is a mock of service.SubjectGenerator.
type MockSubjectGenerator struct {
	mock.Mock
}

func NewMockSubjectGenerator(t mock.TestingT) *MockSubjectGenerator {
	m := &MockSubjectGenerator{}
	m.Test(t)
	assertOnCleanup(t, m)

	return m
}

func (m *MockSubjectGenerator) NewSubjectID() (string, error) {
	ret := m.Called()

	return ret.String(0), ret.Error(1)
}

// MockEventPublisher is a mock of service.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

func NewMockEventPublisher(t mock.TestingT) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Test(t)
	assertOnCleanup(t, m)

	return m
}

func (m *MockEventPublisher) PublishAccountRegistered(ctx context.Context, event *service.AccountRegisteredEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockEventPublisher) Close() error {
	return m.Called().Error(0)
}

var (
	_ service.PasswordHasher   = (*MockPasswordHasher)(nil)
	_ service.TokenService     = (*MockTokenService)(nil)
	_ service.SubjectGenerator = (*MockSubjectGenerator)(nil)
	_ service.EventPublisher   = (*MockEventPublisher)(nil)
)
