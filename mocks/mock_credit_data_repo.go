package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"creditscan/internal/domain"
)

// MockCreditDataRepo is a mock implementation of port.CreditDataRepository.
type MockCreditDataRepo struct {
	mock.Mock
}

func (m *MockCreditDataRepo) ReplaceAll(ctx context.Context, reportID uuid.UUID, result *domain.ParsingResult) error {
	args := m.Called(ctx, reportID, result)
	return args.Error(0)
}

func (m *MockCreditDataRepo) Load(ctx context.Context, reportID uuid.UUID) (*domain.ParsingResult, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParsingResult), args.Error(1)
}
