package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	sessionerrors "marketplace/internal/session/errors"
	"marketplace/internal/session/validator"
	"marketplace/internal/store"
	"marketplace/pkg/config"
	apperrors "marketplace/pkg/errors"
	"marketplace/pkg/model"
	"marketplace/pkg/sanitizer"
	"marketplace/pkg/validation"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type SessionService interface {
	LoginAsUser(ctx context.Context, id string) (*model.Session, error)
	LoginAsProvider(ctx context.Context, id string) (*model.Session, error)
	Login(ctx context.Context, credentials *model.Credentials) (*model.Session, error)
	Register(ctx context.Context, registration *model.Registration) (*model.Session, error)
	Logout(token string) error
	Current(token string) (*model.User, error)
	UpdateProfile(ctx context.Context, token string, update *model.UserUpdate) (*model.User, error)
	SetTheme(token string, theme string) error
	Theme(token string) (string, error)
	Graph(user *model.User) string
	Clear()
	Stop()
}

const sessionSweepPeriod = time.Minute

type session struct {
	user      *model.User
	theme     string
	expiresAt time.Time
}

type sessionService struct {
	repo      store.UserRepository
	validator *validator.SessionValidator
	cfg       *config.Config

	mu       sync.Mutex
	sessions map[string]*session

	now        func() time.Time
	bcryptCost int

	stopCh   chan struct{}
	stopOnce sync.Once
}

func NewSessionService(repo store.UserRepository, validator *validator.SessionValidator, cfg *config.Config) SessionService {
	s := &sessionService{
		repo:       repo,
		validator:  validator,
		cfg:        cfg,
		sessions:   make(map[string]*session),
		now:        time.Now,
		bcryptCost: bcrypt.DefaultCost,
		stopCh:     make(chan struct{}),
	}

	go s.sweep()

	return s
}

func (s *sessionService) LoginAsUser(ctx context.Context, id string) (*model.Session, error) {
	return s.demoLogin(ctx, id, model.RoleUser)
}

func (s *sessionService) LoginAsProvider(ctx context.Context, id string) (*model.Session, error) {
	return s.demoLogin(ctx, id, model.RoleProvider)
}

func (s *sessionService) demoLogin(ctx context.Context, id, role string) (*model.Session, error) {
	if !s.cfg.DemoLoginEnabled {
		return nil, apperrors.Forbidden(sessionerrors.ErrDemoLoginDisabled.Error())
	}

	id = sanitizer.TrimAndNormalize(id)
	user, err := s.repo.FindUserByID(ctx, id)
	if err != nil {
		return nil, store.AppError(err, "User", id, "demo login")
	}
	if user.Role != role {
		s.cfg.Log.Warn("Demo login rejected", "user_id", id, "role", user.Role, "requested", role, "error", sessionerrors.ErrRoleMismatch)
		resource := "User"
		if role == model.RoleProvider {
			resource = "Provider"
		}
		return nil, apperrors.NotFoundWithID(resource, id)
	}

	return s.open(user)
}

func (s *sessionService) Login(ctx context.Context, credentials *model.Credentials) (*model.Session, error) {
	credentials.Email = sanitizer.NormalizeEmail(credentials.Email)
	if err := s.validator.ValidateCredentials(credentials); err != nil {
		return nil, validation.AppError("Login validation failed", err)
	}

	user, err := s.repo.FindUserByEmail(ctx, credentials.Email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.Unauthorized(sessionerrors.ErrInvalidCredentials.Error())
	}
	if err != nil {
		return nil, store.AppError(err, "User", credentials.Email, "login")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credentials.Password)); err != nil {
		s.cfg.Log.Warn("Login rejected", "user_id", user.ID)
		return nil, apperrors.Unauthorized(sessionerrors.ErrInvalidCredentials.Error())
	}

	return s.open(user)
}

func (s *sessionService) Register(ctx context.Context, r *model.Registration) (*model.Session, error) {
	r.Name = sanitizer.NormalizeName(r.Name)
	r.Email = sanitizer.NormalizeEmail(r.Email)
	r.BusinessName = sanitizer.TrimAndNormalize(r.BusinessName)
	r.Phone = sanitizer.TrimAndNormalize(r.Phone)
	r.State = sanitizer.TrimAndNormalize(r.State)
	if err := s.validator.ValidateRegistration(r); err != nil {
		s.cfg.Log.Warn("Registration validation failed", "email", r.Email, "error", err)
		return nil, validation.AppError("Registration validation failed", err)
	}
	s.validator.Canonicalize(&r.Phone, &r.State)

	hash, err := bcrypt.GenerateFromPassword([]byte(r.Password), s.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, validation.AppError("Registration validation failed",
			validation.Field("password", fmt.Sprintf("password must be at most %d bytes", validation.MaxPasswordBytes)))
	}
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password", err)
	}

	user := &model.User{
		Name:         r.Name,
		Email:        r.Email,
		Role:         r.Role,
		Phone:        r.Phone,
		State:        r.State,
		PasswordHash: string(hash),
	}
	if r.Role == model.RoleProvider {
		user.BusinessName = r.BusinessName
	}

	err = s.repo.ExecuteTransaction(ctx, func(tx *store.Tx) error {
		if _, err := tx.FindUserByEmail(user.Email); err == nil {
			return apperrors.Conflict(sessionerrors.ErrEmailTaken.Error())
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		return tx.CreateUser(user)
	})
	if err != nil {
		s.cfg.Log.Error("Failed to register user", "email", user.Email, "error", err)
		return nil, store.AppError(err, "User", user.Email, "register user")
	}

	s.cfg.Log.Info("User registered", "user_id", user.ID, "role", user.Role)
	return s.open(user)
}

func (s *sessionService) Logout(token string) error {
	id, _, err := s.parse(token)
	if err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

func (s *sessionService) Current(token string) (*model.User, error) {
	sess, err := s.lookup(token)
	if err != nil {
		return nil, err
	}
	user := *sess.user
	return &user, nil
}

func (s *sessionService) UpdateProfile(ctx context.Context, token string, update *model.UserUpdate) (*model.User, error) {
	id, userID, err := s.parse(token)
	if err != nil {
		return nil, err
	}
	if _, err := s.lookup(token); err != nil {
		return nil, err
	}

	update.Name = sanitizer.NormalizeName(update.Name)
	update.Phone = sanitizer.TrimAndNormalize(update.Phone)
	update.State = sanitizer.TrimAndNormalize(update.State)
	update.BusinessName = sanitizer.TrimAndNormalize(update.BusinessName)
	update.Avatar = sanitizer.TrimAndNormalize(update.Avatar)
	if err := s.validator.ValidateProfile(update); err != nil {
		return nil, validation.AppError("Profile validation failed", err)
	}
	s.validator.Canonicalize(&update.Phone, &update.State)

	var updated *model.User
	err = s.repo.ExecuteTransaction(ctx, func(tx *store.Tx) error {
		user, err := tx.FindUserByID(userID)
		if err != nil {
			return err
		}
		mergeProfile(user, update)
		if err := tx.UpdateUser(user); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to update profile", "user_id", userID, "error", err)
		return nil, store.AppError(err, "User", userID, "update profile")
	}

	s.mu.Lock()
	if sess, ok := s.sessions[id]; ok {
		snapshot := *updated
		sess.user = &snapshot
	}
	s.mu.Unlock()

	return updated, nil
}

func (s *sessionService) SetTheme(token string, theme string) error {
	t := &model.ThemeUpdate{Theme: sanitizer.TrimAndNormalize(theme)}
	if err := s.validator.ValidateTheme(t); err != nil {
		return validation.AppError("Theme validation failed", err)
	}

	id, _, err := s.parse(token)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return apperrors.Unauthorized(sessionerrors.ErrSessionNotFound.Error())
	}
	sess.theme = t.Theme
	return nil
}

func (s *sessionService) Theme(token string) (string, error) {
	sess, err := s.lookup(token)
	if err != nil {
		return "", err
	}
	return sess.theme, nil
}

// Clear drops every session, e.g. after the store is reset to seed and the
// signed-in users may no longer exist.
func (s *sessionService) Clear() {
	s.mu.Lock()
	n := len(s.sessions)
	clear(s.sessions)
	s.mu.Unlock()

	s.cfg.Log.Info("Sessions cleared", "count", n)
}

func (s *sessionService) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

func (s *sessionService) sweep() {
	ticker := time.NewTicker(sessionSweepPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := s.removeExpired(); n > 0 {
				s.cfg.Log.Debug("Expired sessions removed", "count", n)
			}
		case <-s.stopCh:
			return
		}
	}
}

func (s *sessionService) removeExpired() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		if !now.Before(sess.expiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *sessionService) Graph(user *model.User) string {
	return Graph(user)
}

// Graph selects the navigation graph for user; nil means signed out.
func Graph(user *model.User) string {
	switch {
	case user == nil:
		return model.GraphAuth
	case user.IsProvider():
		return model.GraphProvider
	default:
		return model.GraphUser
	}
}

func (s *sessionService) open(user *model.User) (*model.Session, error) {
	now := s.now()
	id := uuid.NewString()
	expiresAt := now.Add(s.cfg.SessionTTL)

	claims := jwt.RegisteredClaims{
		ID:        id,
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.SessionSecret))
	if err != nil {
		return nil, apperrors.Internal("Failed to sign session token", err)
	}

	s.mu.Lock()
	snapshot := *user
	s.sessions[id] = &session{user: &snapshot, theme: model.ThemeSystem, expiresAt: expiresAt}
	s.mu.Unlock()

	s.cfg.Log.Info("Session opened", "user_id", user.ID, "role", user.Role)
	return &model.Session{
		Token:     token,
		User:      user,
		Theme:     model.ThemeSystem,
		Graph:     Graph(user),
		ExpiresAt: expiresAt,
	}, nil
}

// parse verifies the token signature and returns the session id and the
// user id it was issued for.
func (s *sessionService) parse(token string) (string, string, error) {
	if token == "" {
		return "", "", apperrors.Unauthorized("Missing session token")
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.SessionSecret), nil
	})
	if err != nil || claims.ID == "" {
		return "", "", apperrors.Unauthorized(sessionerrors.ErrSessionNotFound.Error())
	}
	return claims.ID, claims.Subject, nil
}

func (s *sessionService) lookup(token string) (*session, error) {
	id, _, err := s.parse(token)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, apperrors.Unauthorized(sessionerrors.ErrSessionNotFound.Error())
	}
	if !s.now().Before(sess.expiresAt) {
		delete(s.sessions, id)
		return nil, apperrors.Unauthorized(sessionerrors.ErrSessionNotFound.Error())
	}
	return sess, nil
}

func mergeProfile(user *model.User, update *model.UserUpdate) {
	if update.Name != "" {
		user.Name = update.Name
	}
	if update.Phone != "" {
		user.Phone = update.Phone
	}
	if update.State != "" {
		user.State = update.State
	}
	if update.Avatar != "" {
		user.Avatar = update.Avatar
	}
	if update.BusinessName != "" && user.IsProvider() {
		user.BusinessName = update.BusinessName
	}
}
