package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edutec/campus-backend/internal/domain"
)

// AccountRepository defines persistence access for user accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	Update(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
}

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	const query = `
        INSERT INTO accounts (first_name, last_name, email, password_hash, role,
            cycle_number, section_id, career_id, department_id, avatar_url, phone)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		account.FirstName,
		account.LastName,
		account.Email,
		account.PasswordHash,
		account.Role,
		account.CycleNumber,
		account.SectionID,
		account.CareerID,
		account.DepartmentID,
		account.AvatarURL,
		account.Phone,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
}

func (r *accountRepository) Update(ctx context.Context, account *domain.Account) error {
	const query = `
        UPDATE accounts SET first_name=$1, last_name=$2, email=$3, password_hash=$4,
            role=$5, cycle_number=$6, section_id=$7, career_id=$8, department_id=$9,
            avatar_url=$10, phone=$11, updated_at=NOW()
        WHERE id=$12`

	cmd, err := r.pool.Exec(ctx, query,
		account.FirstName,
		account.LastName,
		account.Email,
		account.PasswordHash,
		account.Role,
		account.CycleNumber,
		account.SectionID,
		account.CareerID,
		account.DepartmentID,
		account.AvatarURL,
		account.Phone,
		account.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *accountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	const query = `
        SELECT id, first_name, last_name, email, password_hash, role, cycle_number,
            section_id, career_id, department_id, avatar_url, phone, created_at, updated_at
        FROM accounts WHERE id=$1`

	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	const query = `
        SELECT id, first_name, last_name, email, password_hash, role, cycle_number,
            section_id, career_id, department_id, avatar_url, phone, created_at, updated_at
        FROM accounts WHERE email=$1`

	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *accountRepository) scanOne(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	if err := row.Scan(
		&account.ID,
		&account.FirstName,
		&account.LastName,
		&account.Email,
		&account.PasswordHash,
		&account.Role,
		&account.CycleNumber,
		&account.SectionID,
		&account.CareerID,
		&account.DepartmentID,
		&account.AvatarURL,
		&account.Phone,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &account, nil
}
