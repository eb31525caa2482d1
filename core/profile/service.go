package profile

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/missingwork/core"
)

var (
	// errors
	ErrNotConfigured     = errors.New("setup required")
	ErrIncompleteSetup   = errors.New("name, app name and school logo are all required")
	ErrAlreadyConfigured = errors.New("setup is already complete")
)

type (
	Repository interface {
		// GetProfile returns ErrNotConfigured if no profile is stored.
		GetProfile(ctx context.Context) (Profile, error)
		// CreateProfile returns ErrAlreadyConfigured if a profile is stored.
		CreateProfile(ctx context.Context, p Profile) (Profile, error)
	}

	Service struct {
		repo Repository
		v    *core.Validator
	}
)

func NewService(repo Repository, v *core.Validator) *Service {
	return &Service{repo: repo, v: v}
}

// CompleteSetup stores the operator profile. It can only be done once.
func (svc *Service) CompleteSetup(ctx context.Context, s Setup) (Profile, error) {
	if err := s.Validate(svc.v); err != nil {
		return Profile{}, err
	}
	return svc.repo.CreateProfile(ctx, Profile{Name: s.Name, Logo: s.Logo, AppName: s.AppName})
}

func (svc *Service) IsConfigured(ctx context.Context) (bool, error) {
	if _, err := svc.repo.GetProfile(ctx); err != nil {
		if errors.Is(err, ErrNotConfigured) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (svc *Service) Get(ctx context.Context) (Profile, error) {
	return svc.repo.GetProfile(ctx)
}
