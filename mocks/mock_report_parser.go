package mocks

import (
	"github.com/stretchr/testify/mock"

	"creditscan/internal/domain"
)

// MockReportParser is a mock implementation of port.ReportParser.
type MockReportParser struct {
	mock.Mock
}

func (m *MockReportParser) Parse(rawText, bureauHint string) (*domain.ParsingResult, error) {
	args := m.Called(rawText, bureauHint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParsingResult), args.Error(1)
}
