package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/repository"
	"github.com/alexanderramin/tempo/internal/validate"
	"github.com/google/uuid"
)

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailInUse         = errors.New("email already in use")
)

const MinPasswordLength = 6

type credentials struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
}

// LocalProvider keeps accounts in the local SQLite store and remembers the
// signed-in user in a single auth_sessions row so the identity survives
// between CLI invocations.
type LocalProvider struct {
	users    repository.UserRepo
	sessions repository.AuthSessionRepo
	params   HashParams
	now      func() time.Time

	mu        sync.Mutex
	observers map[int]func(*domain.Identity)
	nextObs   int
}

// Option configures a LocalProvider.
type Option func(*LocalProvider)

// WithHashParams overrides the argon2id cost parameters.
func WithHashParams(p HashParams) Option {
	return func(lp *LocalProvider) { lp.params = p }
}

// WithNow overrides the clock used for account creation timestamps.
func WithNow(now func() time.Time) Option {
	return func(lp *LocalProvider) { lp.now = now }
}

func NewLocalProvider(users repository.UserRepo, sessions repository.AuthSessionRepo, opts ...Option) *LocalProvider {
	lp := &LocalProvider{
		users:     users,
		sessions:  sessions,
		params:    DefaultHashParams,
		now:       time.Now,
		observers: make(map[int]func(*domain.Identity)),
	}
	for _, opt := range opts {
		opt(lp)
	}
	return lp
}

var _ Provider = (*LocalProvider)(nil)

func (p *LocalProvider) SignUp(ctx context.Context, email, password string) (string, error) {
	const op = "sign up"
	email = normalizeEmail(email)
	if err := validate.Struct(credentials{Email: email, Password: password}); err != nil {
		return "", &domain.AuthError{Op: op, Err: err}
	}

	hash, err := HashPassword(password, p.params)
	if err != nil {
		return "", &domain.AuthError{Op: op, Err: err}
	}

	u := &domain.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleFreelancer,
		CreatedAt:    p.now().UTC(),
	}
	if err := p.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return "", &domain.AuthError{Op: op, Err: ErrEmailInUse}
		}
		return "", domain.WrapStore(op, err)
	}

	if err := p.sessions.Put(ctx, u.ID); err != nil {
		return "", domain.WrapStore(op, err)
	}
	p.notify(&domain.Identity{UserID: u.ID, Email: u.Email})
	return u.ID, nil
}

func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (string, error) {
	const op = "sign in"
	email = normalizeEmail(email)
	if err := validate.Struct(credentials{Email: email, Password: password}); err != nil {
		return "", &domain.AuthError{Op: op, Err: err}
	}

	u, err := p.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", &domain.AuthError{Op: op, Err: ErrInvalidCredentials}
		}
		return "", domain.WrapStore(op, err)
	}

	ok, err := VerifyPassword(password, u.PasswordHash)
	if err != nil || !ok {
		return "", &domain.AuthError{Op: op, Err: ErrInvalidCredentials}
	}

	if err := p.sessions.Put(ctx, u.ID); err != nil {
		return "", domain.WrapStore(op, err)
	}
	p.notify(&domain.Identity{UserID: u.ID, Email: u.Email})
	return u.ID, nil
}

func (p *LocalProvider) SignOut(ctx context.Context) error {
	if err := p.sessions.Clear(ctx); err != nil {
		return domain.WrapStore("sign out", err)
	}
	p.notify(nil)
	return nil
}

func (p *LocalProvider) Current(ctx context.Context) (*domain.Identity, error) {
	userID, err := p.sessions.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, domain.WrapStore("current user", err)
	}
	u, err := p.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, domain.WrapStore("current user", err)
	}
	return &domain.Identity{UserID: u.ID, Email: u.Email}, nil
}

func (p *LocalProvider) ObserveSession(ctx context.Context, fn func(*domain.Identity)) func() {
	id, _ := p.Current(ctx)
	fn(id)

	p.mu.Lock()
	key := p.nextObs
	p.nextObs++
	p.observers[key] = fn
	p.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.observers, key)
			p.mu.Unlock()
		})
	}
}

func (p *LocalProvider) notify(id *domain.Identity) {
	p.mu.Lock()
	fns := make([]func(*domain.Identity), 0, len(p.observers))
	for _, fn := range p.observers {
		fns = append(fns, fn)
	}
	p.mu.Unlock()

	for _, fn := range fns {
		fn(id)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
