package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/stitchcraft/stitchcraft/internal/config"
	domainErrors "github.com/stitchcraft/stitchcraft/internal/domain/errors"
	"github.com/stitchcraft/stitchcraft/internal/domain/model"
	"github.com/stitchcraft/stitchcraft/internal/domain/repository"
	"github.com/stitchcraft/stitchcraft/internal/pkg/policy"
)

// TokenError names why a tracking token was rejected.
type TokenError string

const (
	TokenInvalid  TokenError = "INVALID"
	TokenInactive TokenError = "INACTIVE"
	TokenExpired  TokenError = "EXPIRED"
)

// TokenValidation is the result of checking a tracking token.
// Client and Tailor are only set when Valid is true.
type TokenValidation struct {
	Valid   bool
	Client  *model.Client
	Tailor  *model.Tailor
	Error   TokenError
	TokenID int64
}

// TokenRejectedError is returned by portal operations for unusable tokens.
type TokenRejectedError struct {
	Reason TokenError
}

func (e *TokenRejectedError) Error() string {
	return "tracking token rejected: " + strings.ToLower(string(e.Reason))
}

// Is makes rejected tokens match ErrNotFound.
func (e *TokenRejectedError) Is(target error) bool {
	return target == domainErrors.ErrNotFound
}

// Portal is everything a client sees through a tracking link.
type Portal struct {
	Client   *model.Client
	Tailor   *model.Tailor
	Orders   []model.Order
	Payments []model.Payment
}

// IssuedToken is a new tracking token with its shareable link.
type IssuedToken struct {
	Token *model.TrackingToken
	URL   string
}

// TrackingUseCase validates and manages client tracking tokens.
type TrackingUseCase struct {
	guard    *Guard
	tokens   repository.TrackingTokenRepository
	clients  repository.ClientRepository
	orgs     repository.OrganizationRepository
	users    repository.UserRepository
	orders   repository.OrderRepository
	payments repository.PaymentRepository
	baseURL  string
	logger   *zap.Logger
	now      func() time.Time
}

// TrackingDeps groups the repositories TrackingUseCase reads.
type TrackingDeps struct {
	Tokens   repository.TrackingTokenRepository
	Clients  repository.ClientRepository
	Orgs     repository.OrganizationRepository
	Users    repository.UserRepository
	Orders   repository.OrderRepository
	Payments repository.PaymentRepository
}

// NewTrackingUseCase constructs TrackingUseCase.
func NewTrackingUseCase(guard *Guard, deps TrackingDeps, cfg *config.Config, logger *zap.Logger) *TrackingUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	baseURL := ""
	if cfg != nil {
		baseURL = strings.TrimRight(cfg.PublicBaseURL, "/")
	}
	return &TrackingUseCase{
		guard:    guard,
		tokens:   deps.Tokens,
		clients:  deps.Clients,
		orgs:     deps.Orgs,
		users:    deps.Users,
		orders:   deps.Orders,
		payments: deps.Payments,
		baseURL:  baseURL,
		logger:   logger,
		now:      time.Now,
	}
}

// Validate checks a token without changing state.
func (u *TrackingUseCase) Validate(ctx context.Context, token string) (*TokenValidation, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return &TokenValidation{Error: TokenInvalid}, nil
	}

	record, err := u.tokens.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return &TokenValidation{Error: TokenInvalid}, nil
		}
		return nil, err
	}
	if !record.Active {
		return &TokenValidation{Error: TokenInactive}, nil
	}
	if record.Expired(u.now()) {
		return &TokenValidation{Error: TokenExpired}, nil
	}

	client, err := u.clients.Get(ctx, record.OrganizationID, record.ClientID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return &TokenValidation{Error: TokenInvalid}, nil
		}
		return nil, err
	}
	tailor, err := u.tailor(ctx, record.OrganizationID)
	if err != nil {
		return nil, err
	}
	return &TokenValidation{Valid: true, Client: client, Tailor: tailor, TokenID: record.ID}, nil
}

func (u *TrackingUseCase) tailor(ctx context.Context, orgID int64) (*model.Tailor, error) {
	org, err := u.orgs.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	owner, err := u.users.GetByID(ctx, org.OwnerID)
	if err != nil {
		return nil, err
	}
	owner.PasswordHash = ""
	return &model.Tailor{Organization: *org, Owner: *owner}, nil
}

// Require validates token and turns a rejection into TokenRejectedError.
func (u *TrackingUseCase) Require(ctx context.Context, token string) (*TokenValidation, error) {
	result, err := u.Validate(ctx, token)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, &TokenRejectedError{Reason: result.Error}
	}
	return result, nil
}

// Portal loads the client's orders and payments concurrently and marks the token used.
func (u *TrackingUseCase) Portal(ctx context.Context, token string) (*Portal, error) {
	result, err := u.Require(ctx, token)
	if err != nil {
		return nil, err
	}

	portal := &Portal{Client: result.Client, Tailor: result.Tailor}
	orgID, clientID := result.Client.OrganizationID, result.Client.ID

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		orders, err := u.orders.ListByClient(gctx, orgID, clientID)
		portal.Orders = orders
		return err
	})
	g.Go(func() error {
		payments, err := u.payments.ListByClient(gctx, orgID, clientID)
		portal.Payments = payments
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := u.tokens.Touch(ctx, result.TokenID, u.now().UTC()); err != nil {
		u.logger.Warn("touch tracking token", zap.Int64("token_id", result.TokenID), zap.Error(err))
	}
	return portal, nil
}

// Issue creates a tracking token for a client. A zero ttl never expires.
func (u *TrackingUseCase) Issue(ctx context.Context, clientID int64, ttl time.Duration) (*IssuedToken, error) {
	actor, err := u.guard.Authorize(ctx, policy.TrackingManage)
	if err != nil {
		return nil, err
	}
	if ttl < 0 {
		return nil, domainErrors.Validation("ttl", "must not be negative")
	}
	if _, err := u.clients.Get(ctx, actor.OrganizationID, clientID); err != nil {
		return nil, err
	}

	record := model.TrackingToken{
		Token:          strings.ReplaceAll(uuid.NewString(), "-", ""),
		ClientID:       clientID,
		OrganizationID: actor.OrganizationID,
		Active:         true,
	}
	if ttl > 0 {
		expires := u.now().UTC().Add(ttl)
		record.ExpiresAt = &expires
	}

	created, err := u.tokens.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return &IssuedToken{Token: created, URL: u.TrackingURL(created.Token)}, nil
}

// TrackingURL builds the public link for token.
func (u *TrackingUseCase) TrackingURL(token string) string {
	return u.baseURL + "/track/" + token
}

func (u *TrackingUseCase) List(ctx context.Context, clientID int64) ([]model.TrackingToken, error) {
	actor, err := u.guard.Authorize(ctx, policy.TrackingManage)
	if err != nil {
		return nil, err
	}
	if _, err := u.clients.Get(ctx, actor.OrganizationID, clientID); err != nil {
		return nil, err
	}
	return u.tokens.ListByClient(ctx, actor.OrganizationID, clientID)
}

func (u *TrackingUseCase) Deactivate(ctx context.Context, tokenID int64) error {
	actor, err := u.guard.Authorize(ctx, policy.TrackingManage)
	if err != nil {
		return err
	}
	return u.tokens.Deactivate(ctx, actor.OrganizationID, tokenID)
}
