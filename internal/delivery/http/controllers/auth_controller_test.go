package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"evalboard/internal/delivery/http/helpers"
	"evalboard/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	signUpErr    error
	loginErr     error
	user         *domain.User
	token        string
	lastEmail    string
	lastPassword string
	lastName     string
}

func (f *fakeAuthService) SignUp(ctx context.Context, email, password, name string) (*domain.User, string, error) {
	f.lastEmail = email
	f.lastPassword = password
	f.lastName = name
	if f.signUpErr != nil {
		return nil, "", f.signUpErr
	}
	return f.user, f.token, nil
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	f.lastEmail = email
	f.lastPassword = password
	if f.loginErr != nil {
		return nil, "", f.loginErr
	}
	return f.user, f.token, nil
}

func TestAuthController_SignUp(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svc        *fakeAuthService
		wantStatus int
		wantCode   string
	}{
		{
			name: "success",
			body: `{"email":"ada@example.com","password":"correct-horse","name":"Ada"}`,
			svc: &fakeAuthService{
				user:  &domain.User{ID: "u-1", Email: "ada@example.com", Name: "Ada"},
				token: "jwt-token",
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "email required",
			body:       `{"password":"correct-horse"}`,
			svc:        &fakeAuthService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "invalid input from service",
			body:       `{"email":"bad","password":"correct-horse"}`,
			svc:        &fakeAuthService{signUpErr: domain.ErrInvalidInput},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "duplicate email",
			body:       `{"email":"ada@example.com","password":"correct-horse"}`,
			svc:        &fakeAuthService{signUpErr: domain.ErrDuplicateEmail},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "service failure",
			body:       `{"email":"ada@example.com","password":"correct-horse"}`,
			svc:        &fakeAuthService{signUpErr: errors.New("db down")},
			wantStatus: http.StatusInternalServerError,
			wantCode:   helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAuthController(testLogger, tt.svc)

			req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			ctrl.SignUp(w, req)

			require.Equal(t, tt.wantStatus, w.Code)
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&envelope))
			if tt.wantCode != "" {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantCode, envelope.Error.Code)
				return
			}
			require.Nil(t, envelope.Error)

			data, err := json.Marshal(envelope.Data)
			require.NoError(t, err)
			var payload AuthResponse
			require.NoError(t, json.Unmarshal(data, &payload))
			assert.Equal(t, "jwt-token", payload.Token)
			assert.Equal(t, "ada@example.com", payload.User.Email)
		})
	}
}

func TestAuthController_Login(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svc        *fakeAuthService
		wantStatus int
	}{
		{
			name: "success",
			body: `{"email":"ada@example.com","password":"correct-horse"}`,
			svc: &fakeAuthService{
				user:  &domain.User{ID: "u-1", Email: "ada@example.com"},
				token: "jwt-token",
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing password",
			body:       `{"email":"ada@example.com"}`,
			svc:        &fakeAuthService{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bad credentials",
			body:       `{"email":"ada@example.com","password":"wrong"}`,
			svc:        &fakeAuthService{loginErr: errors.New("invalid credentials")},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAuthController(testLogger, tt.svc)

			req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			ctrl.Login(w, req)

			require.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
