package repo

import (
	"context"
	"database/sql"
	"time"
)

type Profile struct {
	ID          int    `json:"id"`
	Login       string `json:"login"`
	Email       string `json:"email"`
	Description string `json:"description"`
	AvatarURL   string `json:"avatar_url"`
}

// Analysis is a persisted stress computation: the parameter hash that
// names it and the archive path the codec wrote.
type Analysis struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	Name        string    `json:"name"`
	ParamHash   string    `json:"param_hash"`
	ArchivePath string    `json:"archive_path"`
	CreatedAt   time.Time `json:"created_at"`
}

type Repository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetByLogin(ctx context.Context, login string) (int, string, error)
	GetProfileByID(ctx context.Context, id int) (Profile, error)
	UpdateProfile(ctx context.Context, id int, login, description string) error
	UpdateAvatar(ctx context.Context, id int, avatarURL string) error

	InsertAnalysis(ctx context.Context, userID int, name, paramHash, archivePath string) (int, error)
	ListAnalyses(ctx context.Context, userID int) ([]Analysis, error)
	GetAnalysis(ctx context.Context, id, userID int) (Analysis, error)
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresDB(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, err
}

func (r *PostgresRepository) GetByLogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, "", nil
		}
		return 0, "", err
	}
	return id, hash, nil
}

func (r *PostgresRepository) GetProfileByID(ctx context.Context, id int) (Profile, error) {
	var p Profile
	query := "SELECT id, login, email, COALESCE(description, ''), COALESCE(avatar_url, '') FROM users WHERE id=$1"
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&p.ID, &p.Login, &p.Email, &p.Description, &p.AvatarURL)
	return p, err
}

func (r *PostgresRepository) UpdateProfile(ctx context.Context, id int, login, description string) error {
	query := "UPDATE users SET login=$2, description=$3 WHERE id=$1"
	_, err := r.db.ExecContext(ctx, query, id, login, description)
	return err
}

func (r *PostgresRepository) UpdateAvatar(ctx context.Context, id int, avatarURL string) error {
	query := "UPDATE users SET avatar_url=$2 WHERE id=$1"
	_, err := r.db.ExecContext(ctx, query, id, avatarURL)
	return err
}

func (r *PostgresRepository) InsertAnalysis(ctx context.Context, userID int, name, paramHash, archivePath string) (int, error) {
	var id int
	query := `INSERT INTO analyses (user_id, name, param_hash, archive_path, created_at)
		VALUES ($1, $2, $3, $4, NOW()) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, userID, name, paramHash, archivePath).Scan(&id)
	return id, err
}

func (r *PostgresRepository) ListAnalyses(ctx context.Context, userID int) ([]Analysis, error) {
	query := `SELECT id, user_id, name, param_hash, archive_path, created_at
		FROM analyses WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Analysis
	for rows.Next() {
		var a Analysis
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.ParamHash, &a.ArchivePath, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetAnalysis(ctx context.Context, id, userID int) (Analysis, error) {
	var a Analysis
	query := `SELECT id, user_id, name, param_hash, archive_path, created_at
		FROM analyses WHERE id=$1 AND user_id=$2`
	err := r.db.QueryRowContext(ctx, query, id, userID).
		Scan(&a.ID, &a.UserID, &a.Name, &a.ParamHash, &a.ArchivePath, &a.CreatedAt)
	return a, err
}
