package profile

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"staybook/internal/app/uow"
	domainprofile "staybook/internal/domain/profile"
	"staybook/internal/infra/security"
)

// Ensurer reconciles a verified identity with the durable profile record.
type Ensurer interface {
	Ensure(ctx context.Context, identity security.Identity) (*domainprofile.Profile, error)
}

// EnsureService lazily creates a profile on first authenticated access.
// Token metadata seeds the new record exactly once; afterwards the profile
// row wins every disagreement, including role.
type EnsureService struct {
	UoWFactory uow.UoWFactory
	Logger     *slog.Logger
}

func (s *EnsureService) Ensure(ctx context.Context, identity security.Identity) (*domainprofile.Profile, error) {
	if s.UoWFactory == nil {
		return nil, uow.ErrUnitOfWorkMissing
	}
	unit, err := s.UoWFactory.Begin(ctx, uow.TxOptions{})
	if err != nil {
		return nil, err
	}
	execCtx := uow.ContextWithUnitOfWork(ctx, unit)
	committed := false
	defer func() {
		if !committed {
			_ = unit.Rollback(execCtx)
		}
	}()

	existing, err := unit.Profiles().ByID(execCtx, identity.Subject)
	if err == nil {
		if commitErr := unit.Commit(execCtx); commitErr != nil {
			return nil, commitErr
		}
		committed = true
		return existing, nil
	}
	if !errors.Is(err, domainprofile.ErrNotFound) {
		return nil, err
	}

	role, err := domainprofile.ParseRole(identity.Role)
	if err != nil {
		role = domainprofile.RoleClient
	}
	name := identity.Name
	if name == "" {
		name = identity.Email
	}
	created, err := domainprofile.NewProfile(domainprofile.CreateParams{
		ID:        identity.Subject,
		Email:     identity.Email,
		Name:      name,
		Role:      role,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return nil, err
	}

	if err := unit.Profiles().Insert(execCtx, created); err != nil {
		// Lost the creation race: someone inserted between our read and
		// write. The stored row is authoritative, fetch it.
		if errors.Is(err, domainprofile.ErrAlreadyExists) {
			stored, fetchErr := unit.Profiles().ByID(execCtx, identity.Subject)
			if fetchErr != nil {
				return nil, fetchErr
			}
			if commitErr := unit.Commit(execCtx); commitErr != nil {
				return nil, commitErr
			}
			committed = true
			return stored, nil
		}
		return nil, err
	}
	if err := unit.Commit(execCtx); err != nil {
		return nil, err
	}
	committed = true
	if s.Logger != nil {
		s.Logger.Info("profile created", "profile_id", created.ID, "role", created.Role)
	}
	return created, nil
}

var _ Ensurer = (*EnsureService)(nil)
