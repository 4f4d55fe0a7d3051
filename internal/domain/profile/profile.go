package profile

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound      = errors.New("profile: not found")
	ErrAlreadyExists = errors.New("profile: already exists")
	ErrIDRequired    = errors.New("profile: id is required")
	ErrEmailRequired = errors.New("profile: email is required")
	ErrNameRequired  = errors.New("profile: name is required")
	ErrInvalidRole   = errors.New("profile: invalid role")
)

type Role string

const (
	RoleHost   Role = "host"
	RoleClient Role = "client"
)

// Profile is the durable record behind an identity-provider subject.
// The profile row, not the identity token, is the source of truth for role.
type Profile struct {
	ID        string
	Email     string
	Name      string
	AvatarURL string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Repository interface {
	ByID(ctx context.Context, id string) (*Profile, error)
	// Insert stores a new profile and returns ErrAlreadyExists when the id
	// is already taken, so lazy creation can fall back to a fetch.
	Insert(ctx context.Context, profile *Profile) error
	Save(ctx context.Context, profile *Profile) error
}

type CreateParams struct {
	ID        string
	Email     string
	Name      string
	AvatarURL string
	Role      Role
	CreatedAt time.Time
}

func NewProfile(params CreateParams) (*Profile, error) {
	id := strings.TrimSpace(params.ID)
	if id == "" {
		return nil, ErrIDRequired
	}
	email := strings.TrimSpace(strings.ToLower(params.Email))
	if email == "" {
		return nil, ErrEmailRequired
	}
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	role, err := normalizeRole(params.Role)
	if err != nil {
		return nil, err
	}
	now := params.CreatedAt
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()
	return &Profile{
		ID:        id,
		Email:     email,
		Name:      name,
		AvatarURL: strings.TrimSpace(params.AvatarURL),
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (p *Profile) ChangeRole(role Role, now time.Time) error {
	normalized, err := normalizeRole(role)
	if err != nil {
		return err
	}
	p.Role = normalized
	p.touch(now)
	return nil
}

func (p *Profile) UpdateName(name string, now time.Time) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrNameRequired
	}
	p.Name = trimmed
	p.touch(now)
	return nil
}

func (p *Profile) SetAvatar(url string, now time.Time) {
	p.AvatarURL = strings.TrimSpace(url)
	p.touch(now)
}

func (p *Profile) IsClient() bool { return p.Role == RoleClient }

func (p *Profile) IsHost() bool { return p.Role == RoleHost }

func (p *Profile) touch(now time.Time) {
	p.UpdatedAt = now.UTC()
}

// ParseRole maps external role strings onto the known roles, defaulting to
// client when the value is empty.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleHost:
		return RoleHost, nil
	case RoleClient, "":
		return RoleClient, nil
	default:
		return "", ErrInvalidRole
	}
}

func normalizeRole(role Role) (Role, error) {
	return ParseRole(string(role))
}
