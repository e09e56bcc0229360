package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/edutec/campus-backend/internal/auth"
	"github.com/edutec/campus-backend/internal/domain"
	"github.com/edutec/campus-backend/internal/events"
)

type memoryAccountRepo struct {
	accounts map[string]*domain.Account
	nextID   int64
	creates  int
	updates  int
	reads    int
}

func newMemoryAccountRepo(accounts ...*domain.Account) *memoryAccountRepo {
	repo := &memoryAccountRepo{accounts: make(map[string]*domain.Account), nextID: 1}
	for _, account := range accounts {
		if account.ID == 0 {
			account.ID = repo.nextID
		}
		repo.nextID = account.ID + 1
		repo.accounts[account.Email] = account
	}
	return repo
}

func (r *memoryAccountRepo) Create(_ context.Context, account *domain.Account) error {
	r.creates++
	account.ID = r.nextID
	r.nextID++
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	copied := *account
	r.accounts[account.Email] = &copied
	return nil
}

func (r *memoryAccountRepo) Update(_ context.Context, account *domain.Account) error {
	r.updates++
	if _, ok := r.accounts[account.Email]; !ok {
		return pgx.ErrNoRows
	}
	copied := *account
	r.accounts[account.Email] = &copied
	return nil
}

func (r *memoryAccountRepo) GetByID(_ context.Context, id int64) (*domain.Account, error) {
	for _, account := range r.accounts {
		if account.ID == id {
			copied := *account
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.reads++
	account, ok := r.accounts[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *account
	return &copied, nil
}

type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func newTestLinker(t *testing.T, repo *memoryAccountRepo, dispatcher events.Dispatcher) *IdentityLinker {
	t.Helper()
	tm, err := auth.NewTokenManager("linker-test-secret", 60)
	require.NoError(t, err)
	return NewIdentityLinker(repo, tm, dispatcher, "@tecsup.edu.pe", 4, zap.NewNop())
}

func TestLinkRejectsForeignDomainBeforeAnyAccountAccess(t *testing.T) {
	repo := newMemoryAccountRepo()
	linker := newTestLinker(t, repo, nil)

	_, err := linker.Link(context.Background(), domain.Identity{Email: "intruso@gmail.com"})
	require.Error(t, err)
	assert.Equal(t, 0, repo.reads, "the allowlist decision must not touch the store")
	assert.Equal(t, 0, repo.creates)
}

func TestLinkProvisionsNewAccount(t *testing.T) {
	repo := newMemoryAccountRepo()
	dispatcher := &recordingDispatcher{}
	linker := newTestLinker(t, repo, dispatcher)

	result, err := linker.Link(context.Background(), domain.Identity{
		Email:      "nuevo@tecsup.edu.pe",
		GivenName:  "Nuevo",
		FamilyName: "Alumno",
		AvatarURL:  "https://lh3.googleusercontent.com/a/photo",
	})
	require.NoError(t, err)

	assert.True(t, result.IsNew)
	assert.True(t, result.RequiresCompletion, "a fresh account has no career, cycle or section yet")
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, domain.RoleStudent, result.Account.Role)
	require.NotNil(t, result.Account.DepartmentID)
	assert.Equal(t, int64(1), *result.Account.DepartmentID)
	assert.Nil(t, result.Account.CareerID)
	assert.NotEmpty(t, result.Account.PasswordHash)

	require.Len(t, dispatcher.published, 1)
	assert.Equal(t, events.EventAccountLinked, dispatcher.published[0].Type)
}

func TestLinkIsIdempotent(t *testing.T) {
	repo := newMemoryAccountRepo()
	linker := newTestLinker(t, repo, nil)
	identity := domain.Identity{Email: "nuevo@tecsup.edu.pe", GivenName: "Nuevo", FamilyName: "Alumno"}

	first, err := linker.Link(context.Background(), identity)
	require.NoError(t, err)
	second, err := linker.Link(context.Background(), identity)
	require.NoError(t, err)

	assert.True(t, first.IsNew)
	assert.False(t, second.IsNew)
	assert.Equal(t, first.Account.ID, second.Account.ID)
	assert.Equal(t, 1, repo.creates)
}

func TestLinkMergesNames(t *testing.T) {
	existing := &domain.Account{
		Email:        "alumno@tecsup.edu.pe",
		FirstName:    "Viejo",
		LastName:     "Nombre",
		PasswordHash: "x",
		Role:         domain.RoleStudent,
	}
	repo := newMemoryAccountRepo(existing)
	linker := newTestLinker(t, repo, nil)

	result, err := linker.Link(context.Background(), domain.Identity{
		Email:      "alumno@tecsup.edu.pe",
		GivenName:  "Nuevo",
		FamilyName: "Nombre",
	})
	require.NoError(t, err)
	assert.False(t, result.IsNew)
	assert.Equal(t, "Nuevo", result.Account.FirstName)
	assert.Equal(t, 1, repo.updates)
}

func TestLinkSkipsUpdateWhenNothingChanged(t *testing.T) {
	existing := &domain.Account{
		Email:        "alumno@tecsup.edu.pe",
		FirstName:    "Igual",
		LastName:     "Siempre",
		PasswordHash: "x",
		Role:         domain.RoleStudent,
	}
	repo := newMemoryAccountRepo(existing)
	linker := newTestLinker(t, repo, nil)

	_, err := linker.Link(context.Background(), domain.Identity{
		Email:      "alumno@tecsup.edu.pe",
		GivenName:  "Igual",
		FamilyName: "Siempre",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, repo.updates)
}

func TestLinkAvatarPolicy(t *testing.T) {
	const fresh = "https://lh3.googleusercontent.com/a/new-photo"

	tests := []struct {
		name   string
		stored string
		want   string
	}{
		{"empty stored avatar is filled", "", fresh},
		{"provider-sourced avatar is refreshed", "https://lh3.googleusercontent.com/a/old-photo", fresh},
		{"custom avatar is preserved", "https://cdn.example.com/custom.png", "https://cdn.example.com/custom.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemoryAccountRepo(&domain.Account{
				Email:        "alumno@tecsup.edu.pe",
				FirstName:    "Alumno",
				LastName:     "Prueba",
				PasswordHash: "x",
				Role:         domain.RoleStudent,
				AvatarURL:    tt.stored,
			})
			linker := newTestLinker(t, repo, nil)

			result, err := linker.Link(context.Background(), domain.Identity{
				Email:      "alumno@tecsup.edu.pe",
				GivenName:  "Alumno",
				FamilyName: "Prueba",
				AvatarURL:  fresh,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Account.AvatarURL)
		})
	}
}

func TestLinkCompleteProfileDoesNotRequireCompletion(t *testing.T) {
	careerID, sectionID, departmentID := int64(2), int64(3), int64(1)
	cycle := 4
	repo := newMemoryAccountRepo(&domain.Account{
		Email:        "alumno@tecsup.edu.pe",
		FirstName:    "Alumno",
		LastName:     "Completo",
		PasswordHash: "x",
		Role:         domain.RoleStudent,
		CareerID:     &careerID,
		SectionID:    &sectionID,
		DepartmentID: &departmentID,
		CycleNumber:  &cycle,
	})
	linker := newTestLinker(t, repo, nil)

	result, err := linker.Link(context.Background(), domain.Identity{
		Email:      "alumno@tecsup.edu.pe",
		GivenName:  "Alumno",
		FamilyName: "Completo",
	})
	require.NoError(t, err)
	assert.False(t, result.RequiresCompletion)
}
