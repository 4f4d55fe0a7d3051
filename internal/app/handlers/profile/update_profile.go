package profile

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"staybook/internal/app/commands"
	"staybook/internal/app/dto"
	handlersupport "staybook/internal/app/handlers/support"
	"staybook/internal/app/queries"
	"staybook/internal/app/uow"
	domainprofile "staybook/internal/domain/profile"
)

const (
	updateProfileKey = "profile.update"
	getProfileKey    = "profile.get"
)

type UpdateProfileCommand struct {
	ProfileID string
	Name      *string
	AvatarURL *string
	Role      *string
}

func (c UpdateProfileCommand) Key() string { return updateProfileKey }

// UpdateProfileHandler applies self-service edits: display name, avatar and
// role. Role changes are not gated beyond owning the identity.
type UpdateProfileHandler struct {
	Logger *slog.Logger
}

func (h *UpdateProfileHandler) Handle(ctx context.Context, cmd UpdateProfileCommand) (dto.ProfileView, error) {
	id := strings.TrimSpace(cmd.ProfileID)
	if id == "" {
		return dto.ProfileView{}, domainprofile.ErrIDRequired
	}
	unit, ok := uow.FromContext(ctx)
	if !ok {
		return dto.ProfileView{}, uow.ErrUnitOfWorkMissing
	}
	p, err := unit.Profiles().ByID(ctx, id)
	if err != nil {
		return dto.ProfileView{}, err
	}

	now := time.Now()
	if cmd.Name != nil {
		if err := p.UpdateName(*cmd.Name, now); err != nil {
			return dto.ProfileView{}, err
		}
	}
	if cmd.AvatarURL != nil {
		p.SetAvatar(*cmd.AvatarURL, now)
	}
	if cmd.Role != nil {
		role, err := domainprofile.ParseRole(*cmd.Role)
		if err != nil {
			return dto.ProfileView{}, err
		}
		if err := p.ChangeRole(role, now); err != nil {
			return dto.ProfileView{}, err
		}
	}

	if err := unit.Profiles().Save(ctx, p); err != nil {
		return dto.ProfileView{}, err
	}
	if h.Logger != nil {
		h.Logger.Info("profile updated", "profile_id", p.ID, "role", p.Role)
	}
	return dto.MapProfileView(p), nil
}

type GetProfileQuery struct {
	ProfileID string
}

func (q GetProfileQuery) Key() string { return getProfileKey }

type GetProfileHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *GetProfileHandler) Handle(ctx context.Context, q GetProfileQuery) (dto.ProfileView, error) {
	id := strings.TrimSpace(q.ProfileID)
	if id == "" {
		return dto.ProfileView{}, domainprofile.ErrIDRequired
	}
	unit, execCtx, cleanup, err := handlersupport.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.ProfileView{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	p, err := unit.Profiles().ByID(execCtx, id)
	if err != nil {
		return dto.ProfileView{}, err
	}
	return dto.MapProfileView(p), nil
}

var _ commands.Handler[UpdateProfileCommand, dto.ProfileView] = (*UpdateProfileHandler)(nil)
var _ queries.Handler[GetProfileQuery, dto.ProfileView] = (*GetProfileHandler)(nil)
