package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creditscan/internal/domain"
	"creditscan/internal/service"
	"creditscan/mocks"
)

func TestStatsService_GetStats(t *testing.T) {
	repo := new(mocks.MockStatsRepo)
	svc := service.NewStatsService(repo)

	expected := &domain.Stats{TotalReports: 7, ParsingCompleted: 5, TierHigh: 3, AvgConfidence: 61.5}
	repo.On("GetStats", context.Background()).Return(expected, nil)

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, expected, stats)
	repo.AssertExpectations(t)
}

func TestStatsService_GetStats_Error(t *testing.T) {
	repo := new(mocks.MockStatsRepo)
	svc := service.NewStatsService(repo)

	repo.On("GetStats", context.Background()).Return(nil, errors.New("db down"))

	stats, err := svc.GetStats(context.Background())
	assert.Error(t, err)
	assert.Nil(t, stats)
}
