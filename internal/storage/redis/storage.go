package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quizhall/quizhall/internal/model"
	"github.com/quizhall/quizhall/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Identity operations

func (s *Storage) CreateIdentity(ctx context.Context, identity *model.Identity, player *model.PlayerProfile, admin *model.AdminProfile) error {
	identityData, err := json.Marshal(identity)
	if err != nil {
		return err
	}

	// Claim the username first; SETNX makes the duplicate check atomic
	claimed, err := s.client.SetNX(ctx, usernameIndexKey(identity.Username), string(identity.ID), 0).Result()
	if err != nil {
		return err
	}
	if !claimed {
		return model.ErrUsernameTaken
	}

	// Pipeline identity + profiles so the registration lands as one write
	pipe := s.client.Pipeline()
	pipe.Set(ctx, identityKey(identity.ID), identityData, 0)
	if player != nil {
		playerData, err := json.Marshal(player)
		if err != nil {
			return err
		}
		pipe.Set(ctx, playerProfileKey(identity.ID), playerData, 0)
	}
	if admin != nil {
		adminData, err := json.Marshal(admin)
		if err != nil {
			return err
		}
		pipe.Set(ctx, adminProfileKey(identity.ID), adminData, 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		// Release the claimed username so a retry can succeed
		_ = s.client.Del(ctx, usernameIndexKey(identity.Username)).Err()
		return err
	}
	return nil
}

func (s *Storage) GetIdentity(ctx context.Context, id model.IdentityID) (*model.Identity, error) {
	data, err := s.client.Get(ctx, identityKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrIdentityNotFound
		}
		return nil, err
	}

	var identity model.Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

func (s *Storage) GetIdentityByUsername(ctx context.Context, username string) (*model.Identity, error) {
	idStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrIdentityNotFound
		}
		return nil, err
	}

	return s.GetIdentity(ctx, model.IdentityID(idStr))
}

// Profile operations

func (s *Storage) GetPlayerProfile(ctx context.Context, id model.IdentityID) (*model.PlayerProfile, error) {
	data, err := s.client.Get(ctx, playerProfileKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrProfileNotFound
		}
		return nil, err
	}

	var profile model.PlayerProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *Storage) GetAdminProfile(ctx context.Context, id model.IdentityID) (*model.AdminProfile, error) {
	data, err := s.client.Get(ctx, adminProfileKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrProfileNotFound
		}
		return nil, err
	}

	var profile model.AdminProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Question operations

func (s *Storage) CreateQuestion(ctx context.Context, question *model.Question) error {
	id, err := s.client.Incr(ctx, questionSeqKey()).Result()
	if err != nil {
		return err
	}
	question.ID = model.QuestionID(id)

	data, err := json.Marshal(question)
	if err != nil {
		return err
	}

	// Pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, questionKey(question.ID), data, 0)
	pipe.ZAdd(ctx, questionIndexKey(), redis.Z{Score: float64(id), Member: strconv.FormatInt(id, 10)})
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetQuestion(ctx context.Context, id model.QuestionID) (*model.Question, error) {
	data, err := s.client.Get(ctx, questionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrQuestionNotFound
		}
		return nil, err
	}

	var question model.Question
	if err := json.Unmarshal(data, &question); err != nil {
		return nil, err
	}
	return &question, nil
}

func (s *Storage) UpdateQuestion(ctx context.Context, question *model.Question) error {
	data, err := json.Marshal(question)
	if err != nil {
		return err
	}

	// Last write wins; only existence is checked
	ok, err := s.client.Exists(ctx, questionKey(question.ID)).Result()
	if err != nil {
		return err
	}
	if ok == 0 {
		return model.ErrQuestionNotFound
	}

	return s.client.Set(ctx, questionKey(question.ID), data, 0).Err()
}

func (s *Storage) DeleteQuestion(ctx context.Context, id model.QuestionID) error {
	removed, err := s.client.ZRem(ctx, questionIndexKey(), strconv.FormatInt(int64(id), 10)).Result()
	if err != nil {
		return err
	}
	if removed == 0 {
		return model.ErrQuestionNotFound
	}
	return s.client.Del(ctx, questionKey(id)).Err()
}

func (s *Storage) ListQuestions(ctx context.Context, offset, limit int) ([]*model.Question, error) {
	stop := int64(-1)
	if limit >= 0 {
		stop = int64(offset + limit - 1)
	}

	ids, err := s.client.ZRange(ctx, questionIndexKey(), int64(offset), stop).Result()
	if err != nil {
		return nil, err
	}

	questions := make([]*model.Question, 0, len(ids))
	for _, idStr := range ids {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			return nil, err
		}
		question, err := s.GetQuestion(ctx, model.QuestionID(id))
		if err != nil {
			if errors.Is(err, model.ErrQuestionNotFound) {
				continue
			}
			return nil, err
		}
		questions = append(questions, question)
	}
	return questions, nil
}

func (s *Storage) CountQuestions(ctx context.Context) (int, error) {
	n, err := s.client.ZCard(ctx, questionIndexKey()).Result()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
