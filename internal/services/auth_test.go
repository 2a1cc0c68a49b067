package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"evalboard/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserRepo is an in-memory UserRepository for tests.
type fakeUserRepo struct {
	byEmail map[string]*domain.User
	nextID  int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*domain.User), nextID: 1}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return domain.ErrDuplicateEmail
	}
	u.ID = fmt.Sprintf("u-%d", f.nextID)
	f.nextID++
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

// fakeHasher records the salted password verbatim so Compare is a string check.
type fakeHasher struct{}

func (fakeHasher) GenerateSalt() (string, error) { return "salt", nil }

func (fakeHasher) Hash(salt, password string) (string, error) {
	return salt + ":" + password, nil
}

func (fakeHasher) Compare(hash, salt, password string) error {
	if hash != salt+":"+password {
		return errors.New("password mismatch")
	}
	return nil
}

type fakeIssuer struct {
	err error
}

func (f fakeIssuer) Issue(userID, email string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-for-" + userID, nil
}

type fakeEmailService struct {
	welcomed []domain.WelcomeEmailData
	err      error
}

func (f *fakeEmailService) SendWelcome(ctx context.Context, data domain.WelcomeEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.welcomed = append(f.welcomed, data)
	return nil
}

func newTestAuthService(repo domain.UserRepository, issuer domain.TokenIssuer, emails domain.EmailService) domain.AuthService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAuthService(repo, fakeHasher{}, issuer, emails, logger, time.Hour)
}

func TestAuthService_SignUp(t *testing.T) {
	repo := newFakeUserRepo()
	emails := &fakeEmailService{}
	svc := newTestAuthService(repo, fakeIssuer{}, emails)

	user, token, err := svc.SignUp(context.Background(), "  Ada@Example.com ", "correct-horse", "Ada")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, "Ada", user.Name)
	assert.Equal(t, "token-for-"+user.ID, token)
	assert.Equal(t, []domain.WelcomeEmailData{{Email: "ada@example.com", Name: "Ada"}}, emails.welcomed)
}

func TestAuthService_SignUp_Validation(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), fakeIssuer{}, &fakeEmailService{})

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"bad email", "not-an-email", "correct-horse"},
		{"empty email", "", "correct-horse"},
		{"short password", "ada@example.com", "short"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.SignUp(context.Background(), tt.email, tt.password, "Ada")
			require.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestAuthService_SignUp_DuplicateEmail(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), fakeIssuer{}, &fakeEmailService{})

	_, _, err := svc.SignUp(context.Background(), "ada@example.com", "correct-horse", "Ada")
	require.NoError(t, err)

	_, _, err = svc.SignUp(context.Background(), "ada@example.com", "correct-horse", "Ada again")
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestAuthService_SignUp_MailFailureIsNotFatal(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), fakeIssuer{}, &fakeEmailService{err: errors.New("ses throttled")})

	user, token, err := svc.SignUp(context.Background(), "ada@example.com", "correct-horse", "Ada")
	require.NoError(t, err)
	assert.NotNil(t, user)
	assert.NotEmpty(t, token)
}

func TestAuthService_Login(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, fakeIssuer{}, &fakeEmailService{})

	_, _, err := svc.SignUp(context.Background(), "ada@example.com", "correct-horse", "Ada")
	require.NoError(t, err)

	user, token, err := svc.Login(context.Background(), "ADA@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, "token-for-"+user.ID, token)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, fakeIssuer{}, &fakeEmailService{})

	_, _, err := svc.SignUp(context.Background(), "ada@example.com", "correct-horse", "Ada")
	require.NoError(t, err)

	// Wrong password and unknown user both yield the same opaque error.
	_, _, err = svc.Login(context.Background(), "ada@example.com", "wrong-password")
	require.EqualError(t, err, "invalid credentials")

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "correct-horse")
	require.EqualError(t, err, "invalid credentials")
}
