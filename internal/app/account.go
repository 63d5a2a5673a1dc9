package app

import (
	"context"
	"fmt"

	"github.com/kosthub/kosthub/internal/domain"
)

// AccountService bridges the identity provider and the profile store:
// sign-up creates both the credential and the marketplace profile, and
// token verification resolves the acting identity for every request.
type AccountService struct {
	identity domain.IdentityProvider
	profiles domain.ProfileRepository
	blobs    domain.BlobStore
}

// NewAccountService creates a service with the given adapters.
func NewAccountService(identity domain.IdentityProvider, profiles domain.ProfileRepository, blobs domain.BlobStore) *AccountService {
	return &AccountService{
		identity: identity,
		profiles: profiles,
		blobs:    blobs,
	}
}

// SignUp registers a credential with the identity provider and creates the
// matching profile. Only tenant and owner roles are self-assignable; the
// role is immutable afterwards.
func (s *AccountService) SignUp(ctx context.Context, email, password, fullName, phone string, role domain.Role) (domain.Profile, error) {
	if role != domain.RoleTenant && role != domain.RoleOwner {
		return domain.Profile{}, &domain.ValidationError{Field: "role", Reason: "must be tenant or owner"}
	}
	if fullName == "" {
		return domain.Profile{}, &domain.ValidationError{Field: "full_name", Reason: "must not be empty"}
	}

	user, err := s.identity.SignUp(ctx, email, password)
	if err != nil {
		return domain.Profile{}, err
	}

	profile := domain.NewProfile(user.ID, role, fullName, phone)
	if err := s.profiles.Create(ctx, profile); err != nil {
		return domain.Profile{}, fmt.Errorf("creating profile: %w", err)
	}
	return profile, nil
}

// SignIn authenticates a credential and returns the session and profile.
func (s *AccountService) SignIn(ctx context.Context, email, password string) (domain.Session, domain.Profile, error) {
	session, err := s.identity.SignIn(ctx, email, password)
	if err != nil {
		return domain.Session{}, domain.Profile{}, err
	}

	profile, err := s.profiles.GetByID(ctx, session.User.ID)
	if err != nil {
		return domain.Session{}, domain.Profile{}, err
	}
	return session, profile, nil
}

// SignOut invalidates a session token.
func (s *AccountService) SignOut(ctx context.Context, token string) error {
	return s.identity.SignOut(ctx, token)
}

// ActorFor resolves a bearer token to the acting identity, carrying the
// profile's role. Used by the HTTP middleware on every authenticated request.
func (s *AccountService) ActorFor(ctx context.Context, token string) (domain.Actor, error) {
	user, err := s.identity.Verify(ctx, token)
	if err != nil {
		return domain.Actor{}, domain.ErrUnauthorized
	}

	profile, err := s.profiles.GetByID(ctx, user.ID)
	if err != nil {
		return domain.Actor{}, domain.ErrUnauthorized
	}
	return domain.Actor{ID: profile.ID, Role: profile.Role}, nil
}

// GetProfile returns the actor's own profile.
func (s *AccountService) GetProfile(ctx context.Context, actor domain.Actor) (domain.Profile, error) {
	if actor.ID == "" {
		return domain.Profile{}, domain.ErrUnauthorized
	}
	return s.profiles.GetByID(ctx, actor.ID)
}

// UpdateProfile edits the actor's display fields. The avatar is optional and
// stored in the public avatars bucket. Role is never touched here.
func (s *AccountService) UpdateProfile(ctx context.Context, actor domain.Actor, fullName, phone string, avatar []byte) (domain.Profile, error) {
	if actor.ID == "" {
		return domain.Profile{}, domain.ErrUnauthorized
	}

	profile, err := s.profiles.GetByID(ctx, actor.ID)
	if err != nil {
		return domain.Profile{}, err
	}

	if fullName != "" {
		profile.FullName = fullName
	}
	if phone != "" {
		profile.Phone = phone
	}
	if len(avatar) > 0 {
		path := fmt.Sprintf("avatar/%s.jpg", actor.ID)
		profile.AvatarRef, err = s.blobs.Upload(ctx, domain.BucketAvatars, path, avatar, "image/jpeg")
		if err != nil {
			return domain.Profile{}, fmt.Errorf("uploading avatar: %w", err)
		}
	}

	if err := s.profiles.Update(ctx, profile); err != nil {
		return domain.Profile{}, fmt.Errorf("updating profile: %w", err)
	}
	return profile, nil
}
