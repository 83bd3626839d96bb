package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

const solutionKeyPrefix = "solution:"

var ErrSolutionNotFound = errors.New("solution not found")

type SolutionRepository interface {
	Save(ctx context.Context, solution *entity.Solution) error
	GetByBoard(ctx context.Context, board entity.Board) (*entity.Solution, error)
	DeleteByBoard(ctx context.Context, board entity.Board) error
}

type dbSolution struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSolutionRepository - stores solutions as JSON keyed by board. A zero ttl keeps them forever.
func NewSolutionRepository(client *redis.Client, ttl time.Duration) SolutionRepository {
	return &dbSolution{
		client: client,
		ttl:    ttl,
	}
}

func solutionKey(board entity.Board) string {
	return solutionKeyPrefix + board.Key()
}

func (that *dbSolution) Save(ctx context.Context, solution *entity.Solution) error {
	solutionJSON, err := json.Marshal(solution)
	if err != nil {
		return fmt.Errorf("could not marshal solution: %w", err)
	}

	if err = that.client.Set(ctx, solutionKey(solution.Board), solutionJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set solution: %w", err)
	}

	return nil
}

func (that *dbSolution) GetByBoard(ctx context.Context, board entity.Board) (*entity.Solution, error) {
	response, err := that.client.Get(ctx, solutionKey(board)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSolutionNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get solution: %w", err)
	}

	var solution entity.Solution
	if err = json.Unmarshal([]byte(response), &solution); err != nil {
		// a corrupt entry is dropped so the next solve can store a fresh one
		if delErr := that.DeleteByBoard(ctx, board); delErr != nil && !errors.Is(delErr, ErrSolutionNotFound) {
			return nil, fmt.Errorf("failed to drop corrupt solution: %w", delErr)
		}
		return nil, fmt.Errorf("%w: dropped corrupt entry: %w", ErrSolutionNotFound, err)
	}

	return &solution, nil
}

func (that *dbSolution) DeleteByBoard(ctx context.Context, board entity.Board) error {
	deleted, err := that.client.Del(ctx, solutionKey(board)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete solution: %w", err)
	}

	if deleted == 0 {
		return ErrSolutionNotFound
	}

	return nil
}
