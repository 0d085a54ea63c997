package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/quizhall/quizhall/internal/model"
	"github.com/quizhall/quizhall/internal/storage"
)

// Storage is a SQLite-backed implementation of the storage interface.
// This is the durable backend; registration uses a real transaction so
// an identity can never exist without its player profile.
type Storage struct {
	db *sql.DB
}

// New opens (or creates) the database at path and applies the schema
func New(path string) (*Storage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the underlying database
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Identity operations

func (s *Storage) CreateIdentity(ctx context.Context, identity *model.Identity, player *model.PlayerProfile, admin *model.AdminProfile) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	adminCapable := 0
	if identity.IsAdminCapable {
		adminCapable = 1
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO identities (id, username, email, password_hash, is_admin_capable, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		string(identity.ID), identity.Username, identity.Email, identity.PasswordHash, adminCapable, formatTime(identity.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrUsernameTaken
		}
		return fmt.Errorf("failed to create identity: %w", err)
	}

	if player != nil {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO player_profiles (identity_id, display_name, created_at) VALUES (?, ?, ?)",
			string(player.IdentityID), player.DisplayName, formatTime(player.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("failed to create player profile: %w", err)
		}
	}

	if admin != nil {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO admin_profiles (identity_id, staff_note, created_at) VALUES (?, ?, ?)",
			string(admin.IdentityID), admin.StaffNote, formatTime(admin.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("failed to create admin profile: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Storage) GetIdentity(ctx context.Context, id model.IdentityID) (*model.Identity, error) {
	return s.scanIdentity(s.db.QueryRowContext(ctx,
		"SELECT id, username, email, password_hash, is_admin_capable, created_at FROM identities WHERE id = ?",
		string(id),
	))
}

func (s *Storage) GetIdentityByUsername(ctx context.Context, username string) (*model.Identity, error) {
	return s.scanIdentity(s.db.QueryRowContext(ctx,
		"SELECT id, username, email, password_hash, is_admin_capable, created_at FROM identities WHERE username = ?",
		username,
	))
}

func (s *Storage) scanIdentity(row *sql.Row) (*model.Identity, error) {
	identity := &model.Identity{}
	var id, createdAt string
	var adminCapable int
	err := row.Scan(&id, &identity.Username, &identity.Email, &identity.PasswordHash, &adminCapable, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrIdentityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get identity: %w", err)
	}
	identity.ID = model.IdentityID(id)
	identity.IsAdminCapable = adminCapable == 1
	identity.CreatedAt = parseTime(createdAt)
	return identity, nil
}

// Profile operations

func (s *Storage) GetPlayerProfile(ctx context.Context, id model.IdentityID) (*model.PlayerProfile, error) {
	profile := &model.PlayerProfile{}
	var identityID, createdAt string
	err := s.db.QueryRowContext(ctx,
		"SELECT identity_id, display_name, created_at FROM player_profiles WHERE identity_id = ?",
		string(id),
	).Scan(&identityID, &profile.DisplayName, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player profile: %w", err)
	}
	profile.IdentityID = model.IdentityID(identityID)
	profile.CreatedAt = parseTime(createdAt)
	return profile, nil
}

func (s *Storage) GetAdminProfile(ctx context.Context, id model.IdentityID) (*model.AdminProfile, error) {
	profile := &model.AdminProfile{}
	var identityID, createdAt string
	err := s.db.QueryRowContext(ctx,
		"SELECT identity_id, staff_note, created_at FROM admin_profiles WHERE identity_id = ?",
		string(id),
	).Scan(&identityID, &profile.StaffNote, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin profile: %w", err)
	}
	profile.IdentityID = model.IdentityID(identityID)
	profile.CreatedAt = parseTime(createdAt)
	return profile, nil
}

// Question operations

func (s *Storage) CreateQuestion(ctx context.Context, question *model.Question) error {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO questions (text, option_a, option_b, option_c, option_d, correct) VALUES (?, ?, ?, ?, ?, ?)",
		question.Text, question.OptionA, question.OptionB, question.OptionC, question.OptionD, question.Correct,
	)
	if err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read question id: %w", err)
	}
	question.ID = model.QuestionID(id)
	return nil
}

func (s *Storage) GetQuestion(ctx context.Context, id model.QuestionID) (*model.Question, error) {
	question := &model.Question{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, text, option_a, option_b, option_c, option_d, correct FROM questions WHERE id = ?",
		int64(id),
	).Scan(&question.ID, &question.Text, &question.OptionA, &question.OptionB, &question.OptionC, &question.OptionD, &question.Correct)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrQuestionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return question, nil
}

func (s *Storage) UpdateQuestion(ctx context.Context, question *model.Question) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE questions SET text = ?, option_a = ?, option_b = ?, option_c = ?, option_d = ?, correct = ? WHERE id = ?",
		question.Text, question.OptionA, question.OptionB, question.OptionC, question.OptionD, question.Correct, int64(question.ID),
	)
	if err != nil {
		return fmt.Errorf("failed to update question: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return model.ErrQuestionNotFound
	}
	return nil
}

func (s *Storage) DeleteQuestion(ctx context.Context, id model.QuestionID) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM questions WHERE id = ?", int64(id))
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return model.ErrQuestionNotFound
	}
	return nil
}

func (s *Storage) ListQuestions(ctx context.Context, offset, limit int) ([]*model.Question, error) {
	if limit < 0 {
		limit = -1 // SQLite treats a negative LIMIT as unbounded
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, text, option_a, option_b, option_c, option_d, correct FROM questions ORDER BY id ASC LIMIT ? OFFSET ?",
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	var questions []*model.Question
	for rows.Next() {
		question := &model.Question{}
		if err := rows.Scan(&question.ID, &question.Text, &question.OptionA, &question.OptionB, &question.OptionC, &question.OptionD, &question.Correct); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, question)
	}
	return questions, rows.Err()
}

func (s *Storage) CountQuestions(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM questions").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return count, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
