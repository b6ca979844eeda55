package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

const analysisKeyPrefix = "analysis:"

var (
	ErrAnalysisNotFound  = errors.New("analysis not found")
	ErrAnalysisCorrupted = errors.New("analysis is corrupted")
)

type AnalysisRepository interface {
	Set(ctx context.Context, analysis *entity.Analysis) error
	Get(ctx context.Context, board tictactoe.Board) (*entity.Analysis, error)
	Delete(ctx context.Context, board tictactoe.Board) error
}

type dbAnalysis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAnalysisRepository caches analyses keyed by the compact board form.
// A zero ttl keeps entries until they are deleted.
func NewAnalysisRepository(client *redis.Client, ttl time.Duration) AnalysisRepository {
	return &dbAnalysis{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbAnalysis) Set(ctx context.Context, analysis *entity.Analysis) error {
	analysisJSON, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("could not marshal analysis: %w", err)
	}

	err = that.client.Set(ctx, analysisKey(analysis.Board), analysisJSON, that.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to set analysis: %w", err)
	}

	return nil
}

func (that *dbAnalysis) Get(ctx context.Context, board tictactoe.Board) (*entity.Analysis, error) {
	response, err := that.client.Get(ctx, analysisKey(board)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrAnalysisNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	var existingAnalysis entity.Analysis
	if err = json.Unmarshal([]byte(response), &existingAnalysis); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal analysis: %w", ErrAnalysisCorrupted, err)
	}

	return &existingAnalysis, nil
}

func (that *dbAnalysis) Delete(ctx context.Context, board tictactoe.Board) error {
	deleted, err := that.client.Del(ctx, analysisKey(board)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}

	if deleted == 0 {
		return ErrAnalysisNotFound
	}

	return nil
}

func analysisKey(board tictactoe.Board) string {
	return analysisKeyPrefix + board.String()
}
