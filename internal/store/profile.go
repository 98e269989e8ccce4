package store

import (
	"errors"
	"strings"

	"github.com/pbaille/aura/internal/domain"
	"github.com/pbaille/aura/internal/fileutils"
)

// Profile is the user profile file
type Profile struct {
	path    string
	profile domain.UserProfile
}

// OpenProfile loads the profile at path; a missing file is an empty profile
func OpenProfile(path string) (*Profile, error) {
	p := &Profile{path: path}
	if _, err := fileutils.ReadJSONStrict(path, &p.profile); err != nil {
		return nil, &domain.StartupError{Path: path, Err: err}
	}
	return p, nil
}

// Name returns the stored name, empty before onboarding
func (p *Profile) Name() string {
	return p.profile.Name
}

// SetName stores the user's name and persists the profile
func (p *Profile) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("name is required")
	}

	prev := p.profile
	p.profile.Name = name
	if err := fileutils.WriteJSONFileAtomic(p.path, p.profile); err != nil {
		p.profile = prev
		return &domain.StorageError{Op: "save profile", Err: err}
	}
	return nil
}
