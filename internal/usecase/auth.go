package usecase

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"

	domainErrors "github.com/stitchcraft/stitchcraft/internal/domain/errors"
	"github.com/stitchcraft/stitchcraft/internal/domain/model"
	"github.com/stitchcraft/stitchcraft/internal/domain/repository"
	pkgAuth "github.com/stitchcraft/stitchcraft/internal/pkg/auth"
)

// AuthUseCase handles registration, login and session resolution.
type AuthUseCase struct {
	users   repository.UserRepository
	orgs    repository.OrganizationRepository
	clients repository.ClientRepository
	hasher  pkgAuth.PasswordHasher
	tokens  pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, orgs repository.OrganizationRepository, clients repository.ClientRepository,
	hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, orgs: orgs, clients: clients, hasher: hasher, tokens: strategy}
}

// RegisterInput carries the tailor sign-up form.
type RegisterInput struct {
	Name         string
	Email        string
	Password     string
	BusinessName string
}

// Session is an authenticated user with its token.
type Session struct {
	User         *model.User
	Organization *model.Organization
	Token        string
}

// Register creates a tailor together with their organization and returns a session.
func (u *AuthUseCase) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.BusinessName = strings.TrimSpace(in.BusinessName)

	verr := &domainErrors.ValidationError{}
	validateAccount(verr, in.Name, in.Email, in.Password)
	if in.BusinessName == "" {
		verr.Add("businessName", "is required")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	owner := model.User{Email: in.Email, Name: in.Name, PasswordHash: hash, Role: model.RoleTailor, Active: true}
	org := model.Organization{Name: in.BusinessName, Slug: Slugify(in.BusinessName) + "-" + uuid.NewString()[:8]}
	user, created, err := u.orgs.CreateWithOwner(ctx, owner, org)
	if err != nil {
		return nil, err
	}

	token, err := u.tokens.IssueToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Organization: created, Token: token}, nil
}

// Authenticate validates credentials and returns a session. Inactive users are refused.
func (u *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			u.hasher.Burn(password)
			return nil, domainErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, domainErrors.ErrInvalidCredentials
	}
	if !usr.Active {
		return nil, domainErrors.ErrForbidden
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, err
	}
	return &Session{User: usr, Token: token}, nil
}

// ResolveActor turns a session token into the request actor.
func (u *AuthUseCase) ResolveActor(ctx context.Context, token string) (*model.Actor, error) {
	if token == "" {
		return nil, domainErrors.ErrUnauthorized
	}
	session, err := u.tokens.ParseToken(token)
	if err != nil {
		return nil, domainErrors.ErrUnauthorized
	}

	usr, err := u.users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrUnauthorized
		}
		return nil, err
	}

	actor := &model.Actor{User: *usr}
	switch usr.Role {
	case model.RoleTailor, model.RoleWorker:
		membership, err := u.orgs.MembershipByUser(ctx, usr.ID)
		if err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
			return nil, err
		}
		if membership != nil {
			actor.Membership = membership
			actor.OrganizationID = membership.OrganizationID
		}
	case model.RoleClient:
		client, err := u.clients.GetByUserID(ctx, usr.ID)
		if err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
			return nil, err
		}
		if client != nil {
			actor.ClientID = client.ID
			actor.OrganizationID = client.OrganizationID
		}
	}
	return actor, nil
}

// CreateAdmin provisions a platform administrator.
func (u *AuthUseCase) CreateAdmin(ctx context.Context, email, name, password string) (*model.User, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)

	verr := &domainErrors.ValidationError{}
	validateAccount(verr, name, email, password)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	return u.users.Create(ctx, model.User{Email: email, Name: name, PasswordHash: hash, Role: model.RoleAdmin, Active: true})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateAccount(verr *domainErrors.ValidationError, name, email, password string) {
	if name == "" {
		verr.Add("name", "is required")
	}
	if !strings.Contains(email, "@") || strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@") {
		verr.Add("email", "must be a valid email address")
	}
	if len(password) < pkgAuth.MinPasswordLength {
		verr.Add("password", "must be at least 8 characters")
	}
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s and joins its alphanumeric runs with dashes.
func Slugify(s string) string {
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
	if slug == "" {
		return "studio"
	}
	return slug
}
