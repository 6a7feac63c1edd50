package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ucetportal/campus-api/internal/core/domain"
	"github.com/ucetportal/campus-api/internal/core/token"
)

type stubUserRepo struct {
	users    []*domain.User
	profiles []*domain.Profile
	nextID   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByIdentifier(_ context.Context, identifier string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == identifier || u.Email == identifier {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User, profile *domain.Profile) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("user_%d", r.nextID)

	p := *profile
	p.UserID = created.ID
	r.users = append(r.users, cloneUser(created))
	r.profiles = append(r.profiles, &p)
	return created, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for i := len(r.users) - 1; i >= 0; i-- {
		out = append(out, cloneUser(r.users[i]))
	}
	return out, nil
}

func newTestAuthService(repo *stubUserRepo) (*AuthService, *token.Issuer) {
	issuer := token.NewIssuer("secret", time.Hour)
	return NewAuthService(repo, issuer, zerolog.Nop()), issuer
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)

	id, err := svc.Register(context.Background(), "alice", "alice@example.com", "pw123", "student")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if id == "" {
		t.Fatalf("expected an id, got empty string")
	}

	stored := repo.users[0]
	if stored.PasswordHash == "pw123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pw123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if stored.Role != domain.RoleStudent {
		t.Fatalf("unexpected role: %s", stored.Role)
	}
}

func TestAuthService_Register_CreatesRoleProfile(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)

	id, err := svc.Register(context.Background(), "bob", "bob@example.com", "pw", "alumni")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if len(repo.profiles) != 1 {
		t.Fatalf("expected one profile, got %d", len(repo.profiles))
	}
	p := repo.profiles[0]
	if p.UserID != id || p.Role != domain.RoleAlumni {
		t.Fatalf("unexpected profile: %+v", p)
	}
	if p.GraduationYear != time.Now().Year()-1 {
		t.Fatalf("unexpected default graduation year: %d", p.GraduationYear)
	}
}

func TestAuthService_Register_DefaultsToStudent(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)

	if _, err := svc.Register(context.Background(), "carol", "carol@example.com", "pw", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if repo.users[0].Role != domain.RoleStudent {
		t.Fatalf("expected student role, got %s", repo.users[0].Role)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)

	if _, err := svc.Register(context.Background(), "", "a@example.com", "pw", "student"); !errors.Is(err, domain.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "dave", "dave@example.com", "pw", "superuser"); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("no user should have been created, got %d", len(repo.users))
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)

	if _, err := svc.Register(context.Background(), "erin", "erin@example.com", "pw", "student"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	// Different username, same email: must fail and create nothing.
	if _, err := svc.Register(context.Background(), "erin2", "erin@example.com", "pw2", "student"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected a single user, got %d", len(repo.users))
	}
}

func TestAuthService_RegisterThenLogin_RoundTrip(t *testing.T) {
	repo := newStubUserRepo()
	svc, issuer := newTestAuthService(repo)

	if _, err := svc.Register(context.Background(), "alice", "alice@x.com", "pw123", "student"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	result, err := svc.Login(context.Background(), "alice@x.com", "pw123", "")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Role != domain.RoleStudent || result.Username != "alice" || result.Email != "alice@x.com" {
		t.Fatalf("unexpected login result: %+v", result)
	}

	claims, err := issuer.Verify(result.Token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.Role != domain.RoleStudent {
		t.Fatalf("expected role student in token, got %s", claims.Role)
	}
}

func TestAuthService_Login_ByUsername(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)

	_, _ = svc.Register(context.Background(), "frank", "frank@example.com", "pw", "alumni")
	if _, err := svc.Login(context.Background(), "frank", "pw", ""); err != nil {
		t.Fatalf("login by username failed: %v", err)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)

	_, _ = svc.Register(context.Background(), "grace", "grace@example.com", "goodpass", "student")
	if _, err := svc.Login(context.Background(), "grace@example.com", "badpass", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownIdentifierIsIndistinguishable(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)

	// Unknown identifier must surface the same error as a wrong password so
	// login cannot be used to probe account existence.
	if _, err := svc.Login(context.Background(), "ghost@example.com", "pw", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_RoleMismatch(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)

	_, _ = svc.Register(context.Background(), "henry", "henry@example.com", "pw", "student")

	// Correct password but the caller asserts admin: distinct failure.
	_, err := svc.Login(context.Background(), "henry@example.com", "pw", "admin")
	if !errors.Is(err, domain.ErrRoleMismatch) {
		t.Fatalf("expected ErrRoleMismatch, got %v", err)
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("role mismatch must not be reported as invalid credentials")
	}
}

func TestAuthService_ListUsers_OmitsHashes(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)

	_, _ = svc.Register(context.Background(), "ivy", "ivy@example.com", "pw", "student")
	_, _ = svc.Register(context.Background(), "jack", "jack@example.com", "pw", "admin")

	users, err := svc.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("list users failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	// Stub returns newest first; jack registered last.
	if users[0].Username != "jack" || users[0].Role != domain.RoleAdmin {
		t.Fatalf("unexpected first summary: %+v", users[0])
	}
}
