package controllers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"planbook/internal/delivery/http/helpers"
	"planbook/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuthService implements domain.AuthService for controller tests.
type fakeAuthService struct {
	user  *domain.User
	token string
	err   error
}

func (f *fakeAuthService) SignUp(ctx context.Context, email, password, name string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if f.err != nil {
		return "", nil, f.err
	}
	return f.token, f.user, nil
}

func newAuthController(svc domain.AuthService) *AuthController {
	return NewAuthController(slog.New(slog.NewTextHandler(io.Discard, nil)), svc)
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
			name:       "success",
			body:       `{"email":"a@b.com","password":"longenough","name":"Ada"}`,
			svc:        &fakeAuthService{user: &domain.User{ID: "user-1", Email: "a@b.com"}},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "invalid email",
			body:       `{"email":"nope","password":"longenough"}`,
			svc:        &fakeAuthService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "short password",
			body:       `{"email":"a@b.com","password":"short"}`,
			svc:        &fakeAuthService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "duplicate email",
			body:       `{"email":"a@b.com","password":"longenough"}`,
			svc:        &fakeAuthService{err: domain.ErrDuplicateEmail},
			wantStatus: http.StatusConflict,
			wantCode:   helpers.ErrCodeConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := newAuthController(tt.svc)
			req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewReader([]byte(tt.body)))
			rec := httptest.NewRecorder()
			ctrl.SignUp(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				resp := decodeEnvelope(t, rec)
				require.NotNil(t, resp.Error)
				assert.Equal(t, tt.wantCode, resp.Error.Code)
			}
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
			name:       "success",
			body:       `{"email":"a@b.com","password":"longenough"}`,
			svc:        &fakeAuthService{token: "tok", user: &domain.User{ID: "user-1"}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "bad credentials",
			body:       `{"email":"a@b.com","password":"wrong"}`,
			svc:        &fakeAuthService{err: errors.New("invalid credentials")},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing fields",
			body:       `{}`,
			svc:        &fakeAuthService{},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := newAuthController(tt.svc)
			req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader([]byte(tt.body)))
			rec := httptest.NewRecorder()
			ctrl.Login(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
