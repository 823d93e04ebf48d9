package test

import (
	"context"
	"errors"
	"strconv"
	"strings"

	domainErrors "github.com/stitchcraft/stitchcraft/internal/domain/errors"
	"github.com/stitchcraft/stitchcraft/internal/domain/model"
	pkgAuth "github.com/stitchcraft/stitchcraft/internal/pkg/auth"
	"github.com/stitchcraft/stitchcraft/internal/usecase"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
	Burned    *int
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	if len(password) < pkgAuth.MinPasswordLength {
		return "", pkgAuth.ErrWeakPassword
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// Burn counts calls made for unknown accounts.
func (h HasherStub) Burn(string) {
	if h.Burned != nil {
		*h.Burned++
	}
}

// StrategyStub issues "token-<id>" and parses it back.
type StrategyStub struct {
	IssueFn func(int64) (string, error)
	ParseFn func(string) (pkgAuth.Session, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(userID int64) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(userID)
	}
	return TokenFor(userID), nil
}

// ParseToken parses previously issued token strings.
func (s StrategyStub) ParseToken(token string) (pkgAuth.Session, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	rest, ok := strings.CutPrefix(token, "token-")
	if !ok {
		return pkgAuth.Session{}, pkgAuth.ErrInvalidToken
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || id <= 0 {
		return pkgAuth.Session{}, pkgAuth.ErrInvalidToken
	}
	return pkgAuth.Session{UserID: id}, nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// TokenFor returns the token StrategyStub issues for userID.
func TokenFor(userID int64) string {
	return "token-" + strconv.FormatInt(userID, 10)
}

// ActorResolverStub implements the middleware actor resolution contract.
type ActorResolverStub struct {
	Actor     *model.Actor
	Err       error
	ResolveFn func(context.Context, string) (*model.Actor, error)
}

// ResolveActor either delegates to the override or returns the predefined result.
func (s ActorResolverStub) ResolveActor(ctx context.Context, token string) (*model.Actor, error) {
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, token)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Actor == nil {
		return nil, domainErrors.ErrUnauthorized
	}
	return s.Actor, nil
}

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}

// AuthFacadeStub implements the handlers' authentication contract.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, usecase.RegisterInput) (*usecase.Session, error)
	AuthenticateFn func(context.Context, string, string) (*usecase.Session, error)
	ActorResolverStub
}

// Register returns a tailor session unless overridden.
func (s AuthFacadeStub) Register(ctx context.Context, in usecase.RegisterInput) (*usecase.Session, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, in)
	}
	return &usecase.Session{
		User:         &model.User{ID: 1, Email: in.Email, Name: in.Name, Role: model.RoleTailor, Active: true},
		Organization: &model.Organization{ID: 1, OwnerID: 1, Name: in.BusinessName},
		Token:        TokenFor(1),
	}, nil
}

// Authenticate returns a session for user 1 unless overridden.
func (s AuthFacadeStub) Authenticate(ctx context.Context, email, password string) (*usecase.Session, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return &usecase.Session{User: &model.User{ID: 1, Email: email, Role: model.RoleTailor, Active: true}, Token: TokenFor(1)}, nil
}
