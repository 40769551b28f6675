package service

import "github.com/sefazor/campus-events-backend/internal/models"

// Every check runs before any write.

func requireSession(caller *models.Principal) error {
	if caller == nil || caller.ID == "" {
		return ErrUnauthorized
	}
	return nil
}

func requireAdmin(caller *models.Principal) error {
	if err := requireSession(caller); err != nil {
		return err
	}
	if !caller.IsAdmin() {
		return ErrUnauthorized
	}
	return nil
}

// requireOwnerOrAdmin passes for the owning organization and for admins.
func requireOwnerOrAdmin(caller *models.Principal, ownerID string) error {
	if err := requireSession(caller); err != nil {
		return err
	}
	if caller.IsAdmin() || caller.ID == ownerID {
		return nil
	}
	return ErrUnauthorized
}
