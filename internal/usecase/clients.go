package usecase

import (
	"context"
	"strings"
	"time"

	domainErrors "github.com/stitchcraft/stitchcraft/internal/domain/errors"
	"github.com/stitchcraft/stitchcraft/internal/domain/model"
	"github.com/stitchcraft/stitchcraft/internal/domain/repository"
	pkgAuth "github.com/stitchcraft/stitchcraft/internal/pkg/auth"
	"github.com/stitchcraft/stitchcraft/internal/pkg/policy"
)

// ClientUseCase manages client records, their portal logins and measurements.
type ClientUseCase struct {
	guard        *Guard
	clients      repository.ClientRepository
	measurements repository.MeasurementRepository
	hasher       pkgAuth.PasswordHasher
	now          func() time.Time
}

// NewClientUseCase constructs ClientUseCase.
func NewClientUseCase(guard *Guard, clients repository.ClientRepository, measurements repository.MeasurementRepository, hasher pkgAuth.PasswordHasher) *ClientUseCase {
	return &ClientUseCase{guard: guard, clients: clients, measurements: measurements, hasher: hasher, now: time.Now}
}

// ClientInput holds editable client fields.
type ClientInput struct {
	Name  string
	Phone string
	Email string
	Notes string
}

func (in ClientInput) normalize() (ClientInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = normalizeEmail(in.Email)
	in.Notes = strings.TrimSpace(in.Notes)

	verr := &domainErrors.ValidationError{}
	if in.Name == "" {
		verr.Add("name", "is required")
	}
	if in.Email != "" && !strings.Contains(in.Email, "@") {
		verr.Add("email", "must be a valid email address")
	}
	return in, verr.OrNil()
}

func (u *ClientUseCase) Create(ctx context.Context, in ClientInput) (*model.Client, error) {
	actor, err := u.guard.Authorize(ctx, policy.ClientsWrite)
	if err != nil {
		return nil, err
	}
	in, err = in.normalize()
	if err != nil {
		return nil, err
	}
	return u.clients.Create(ctx, model.Client{
		OrganizationID: actor.OrganizationID,
		Name:           in.Name,
		Phone:          in.Phone,
		Email:          in.Email,
		Notes:          in.Notes,
	})
}

func (u *ClientUseCase) List(ctx context.Context) ([]model.Client, error) {
	actor, err := u.guard.Authorize(ctx, policy.ClientsRead)
	if err != nil {
		return nil, err
	}
	return u.clients.List(ctx, actor.OrganizationID)
}

func (u *ClientUseCase) Get(ctx context.Context, id int64) (*model.Client, error) {
	actor, err := u.guard.Authorize(ctx, policy.ClientsRead)
	if err != nil {
		return nil, err
	}
	return u.clients.Get(ctx, actor.OrganizationID, id)
}

func (u *ClientUseCase) Update(ctx context.Context, id int64, in ClientInput) (*model.Client, error) {
	actor, err := u.guard.Authorize(ctx, policy.ClientsWrite)
	if err != nil {
		return nil, err
	}
	in, err = in.normalize()
	if err != nil {
		return nil, err
	}
	return u.clients.Update(ctx, model.Client{
		ID:             id,
		OrganizationID: actor.OrganizationID,
		Name:           in.Name,
		Phone:          in.Phone,
		Email:          in.Email,
		Notes:          in.Notes,
	})
}

// CreateLogin gives a client record its own CLIENT account for self-service.
func (u *ClientUseCase) CreateLogin(ctx context.Context, clientID int64, email, password string) (*model.User, error) {
	actor, err := u.guard.Authorize(ctx, policy.ClientsWrite)
	if err != nil {
		return nil, err
	}
	client, err := u.clients.Get(ctx, actor.OrganizationID, clientID)
	if err != nil {
		return nil, err
	}

	email = normalizeEmail(email)
	verr := &domainErrors.ValidationError{}
	validateAccount(verr, client.Name, email, password)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	return u.clients.AttachUser(ctx, actor.OrganizationID, client.ID, model.User{
		Email:        email,
		Name:         client.Name,
		PasswordHash: hash,
		Role:         model.RoleClient,
		Active:       true,
	})
}

// MeasurementInput is a labelled set of measurements, in centimetres or inches as the studio prefers.
type MeasurementInput struct {
	Label   string
	Values  map[string]float64
	TakenAt *time.Time
}

func (u *ClientUseCase) AddMeasurement(ctx context.Context, clientID int64, in MeasurementInput) (*model.Measurement, error) {
	actor, err := u.guard.Authorize(ctx, policy.MeasurementsWrite)
	if err != nil {
		return nil, err
	}
	if _, err := u.clients.Get(ctx, actor.OrganizationID, clientID); err != nil {
		return nil, err
	}

	verr := &domainErrors.ValidationError{}
	label := strings.TrimSpace(in.Label)
	if label == "" {
		verr.Add("label", "is required")
	}
	if len(in.Values) == 0 {
		verr.Add("values", "must not be empty")
	}
	values := make(map[string]float64, len(in.Values))
	for name, v := range in.Values {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" || v <= 0 {
			verr.Add("values."+name, "must be a positive number")
			continue
		}
		values[key] = v
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	takenAt := u.now().UTC()
	if in.TakenAt != nil {
		takenAt = in.TakenAt.UTC()
	}
	return u.measurements.Create(ctx, model.Measurement{
		OrganizationID: actor.OrganizationID,
		ClientID:       clientID,
		Label:          label,
		Values:         values,
		TakenAt:        takenAt,
	})
}

func (u *ClientUseCase) ListMeasurements(ctx context.Context, clientID int64) ([]model.Measurement, error) {
	actor, err := u.guard.Authorize(ctx, policy.MeasurementsRead)
	if err != nil {
		return nil, err
	}
	if _, err := u.clients.Get(ctx, actor.OrganizationID, clientID); err != nil {
		return nil, err
	}
	return u.measurements.ListByClient(ctx, actor.OrganizationID, clientID)
}
