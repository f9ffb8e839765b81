package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pixelvault/auth-service/internal/auth/domain"
)

// DBTX is satisfied by *pgxpool.Pool in production and by pgxmock in tests.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db DBTX
}

func NewPostgresRepository(db DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, name, email, password_hash, is_email_verified, email_verification_token,
	google_id, facebook_id, profile_picture, failed_login_attempts, last_failed_login,
	lockout_end, last_login_ip, last_login_user_agent, role, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.IsEmailVerified,
		&user.EmailVerificationToken, &user.GoogleID, &user.FacebookID, &user.ProfilePicture,
		&user.FailedLoginAttempts, &user.LastFailedLogin, &user.LockoutEnd,
		&user.LastLoginIP, &user.LastLoginUserAgent, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan user row: %w", err)
	}

	return &user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 LIMIT 1`

	return scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 LIMIT 1`

	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *PostgresRepository) GetByVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email_verification_token = $1 LIMIT 1`

	return scanUser(r.db.QueryRow(ctx, query, token))
}

// GetBySocialIDOrEmail matches a user by provider id first, falling back to
// email so an existing password account can adopt the social identity instead
// of spawning a duplicate.
func (r *PostgresRepository) GetBySocialIDOrEmail(ctx context.Context, provider domain.Provider,
	externalID, email string) (*domain.User, error) {
	column, err := providerColumn(provider)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = $1 OR email = $2 LIMIT 1`

	return scanUser(r.db.QueryRow(ctx, query, externalID, email))
}

func (r *PostgresRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, is_email_verified, email_verification_token,
			google_id, facebook_id, profile_picture, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.IsEmailVerified, user.EmailVerificationToken,
		user.GoogleID, user.FacebookID, user.ProfilePicture, user.Role,
		user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *PostgresRepository) RecordFailedLogin(ctx context.Context, userID, attempts int,
	lastFailed time.Time, lockoutEnd *time.Time) error {
	query := `
		UPDATE users
		SET failed_login_attempts = $2, last_failed_login = $3, lockout_end = $4, updated_at = now()
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, userID, attempts, lastFailed, lockoutEnd)
	if err != nil {
		return fmt.Errorf("failed to record failed login: %w", err)
	}

	return nil
}

func (r *PostgresRepository) RecordSuccessfulLogin(ctx context.Context, userID int, ip, userAgent string) error {
	query := `
		UPDATE users
		SET failed_login_attempts = 0, lockout_end = NULL,
			last_login_ip = $2, last_login_user_agent = $3, updated_at = now()
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, userID, ip, userAgent)
	if err != nil {
		return fmt.Errorf("failed to record successful login: %w", err)
	}

	return nil
}

func (r *PostgresRepository) MarkEmailVerified(ctx context.Context, userID int) error {
	query := `
		UPDATE users
		SET is_email_verified = TRUE, email_verification_token = NULL, updated_at = now()
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to mark email verified: %w", err)
	}

	return nil
}

func (r *PostgresRepository) AttachSocialIdentity(ctx context.Context, userID int, provider domain.Provider,
	externalID string, pictureURL *string) error {
	column, err := providerColumn(provider)
	if err != nil {
		return err
	}

	query := `
		UPDATE users
		SET ` + column + ` = $2, profile_picture = COALESCE($3, profile_picture),
			is_email_verified = TRUE, updated_at = now()
		WHERE id = $1`

	_, err = r.db.Exec(ctx, query, userID, externalID, pictureURL)
	if err != nil {
		return fmt.Errorf("failed to attach %s identity: %w", provider, err)
	}

	return nil
}

func (r *PostgresRepository) UpdateProfilePicture(ctx context.Context, userID int, picture *string) error {
	query := `UPDATE users SET profile_picture = $2, updated_at = now() WHERE id = $1`

	_, err := r.db.Exec(ctx, query, userID, picture)
	if err != nil {
		return fmt.Errorf("failed to update profile picture: %w", err)
	}

	return nil
}

func (r *PostgresRepository) StoreRefreshToken(ctx context.Context, rt *domain.RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (user_id, token, device_id, expires_at, revoked, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		rt.UserID, rt.Token, rt.DeviceID, rt.ExpiresAt, rt.Revoked, rt.CreatedAt,
	).Scan(&rt.ID)
	if err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetRefreshToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	query := `
		SELECT id, user_id, token, device_id, expires_at, revoked, created_at
		FROM refresh_tokens
		WHERE token = $1
		LIMIT 1`

	var rt domain.RefreshToken
	err := r.db.QueryRow(ctx, query, token).Scan(
		&rt.ID, &rt.UserID, &rt.Token, &rt.DeviceID, &rt.ExpiresAt, &rt.Revoked, &rt.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}

	return &rt, nil
}

func (r *PostgresRepository) RevokeRefreshToken(ctx context.Context, id int) error {
	query := `UPDATE refresh_tokens SET revoked = TRUE WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return nil
}

func (r *PostgresRepository) RecordLoginAttempt(ctx context.Context, attempt *domain.LoginAttempt) error {
	query := `
		INSERT INTO login_attempts (user_id, success, ip_address, user_agent, attempted_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query,
		attempt.UserID, attempt.Success, attempt.IPAddress, attempt.UserAgent, attempt.AttemptedAt)
	if err != nil {
		return fmt.Errorf("failed to record login attempt: %w", err)
	}

	return nil
}

func providerColumn(provider domain.Provider) (string, error) {
	switch provider {
	case domain.ProviderGoogle:
		return "google_id", nil
	case domain.ProviderFacebook:
		return "facebook_id", nil
	default:
		return "", fmt.Errorf("unknown social provider: %s", provider)
	}
}
