package service

import (
	"context"
	"testing"

	"github.com/sefazor/campus-events-backend/internal/models"
	"github.com/stretchr/testify/require"
)

func TestProvisionRequiresAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	org := f.signUp(t, "club@campus.test", "secret1", models.RoleOrganization)

	for name, caller := range map[string]*models.Principal{"anonymous": nil, "organization": org} {
		t.Run(name, func(t *testing.T) {
			_, err := f.orgs.Provision(ctx, caller, models.ProvisionOrganizationRequest{Email: "new@campus.test"})
			require.ErrorIs(t, err, ErrUnauthorized)

			_, err = f.db.Organizations().GetByEmail(ctx, "new@campus.test")
			require.Error(t, err)
		})
	}
}

func TestProvisionLoginChangePassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.admin(t)

	resp, err := f.orgs.Provision(ctx, admin, models.ProvisionOrganizationRequest{Email: "org@example.com"})
	require.NoError(t, err)
	require.Len(t, resp.TempPassword, tempPasswordLength)
	require.Equal(t, "org", resp.Organization.Name)
	require.Equal(t, models.RoleOrganization, resp.Organization.Role)
	require.True(t, resp.Organization.IsFirstLogin)
	require.Contains(t, f.reval.Paths(), PathDashboard)

	login, err := f.auth.SignInEmail(ctx, "org@example.com", resp.TempPassword, models.SessionMeta{})
	require.NoError(t, err)

	caller, err := f.auth.GetSession(ctx, login.Token)
	require.NoError(t, err)
	require.True(t, caller.IsFirstLogin)

	result, err := f.orgs.ChangePassword(ctx, caller, models.ChangePasswordRequest{
		CurrentPassword: "not-the-temp",
		NewPassword:     "brand-new-password",
	})
	require.NoError(t, err)
	require.Equal(t, &models.ChangePasswordResult{Success: false, Error: models.ErrCodeInvalidCurrentPassword}, result)

	caller, err = f.auth.GetSession(ctx, login.Token)
	require.NoError(t, err)
	require.True(t, caller.IsFirstLogin)

	result, err = f.orgs.ChangePassword(ctx, caller, models.ChangePasswordRequest{
		CurrentPassword: resp.TempPassword,
		NewPassword:     "brand-new-password",
	})
	require.NoError(t, err)
	require.True(t, result.Success)

	caller, err = f.auth.GetSession(ctx, login.Token)
	require.NoError(t, err)
	require.False(t, caller.IsFirstLogin)
}

func TestProvisionWithGivenPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.admin(t)

	resp, err := f.orgs.Provision(ctx, admin, models.ProvisionOrganizationRequest{Email: "org@example.com", TempPassword: "chosen1"})
	require.NoError(t, err)
	require.Equal(t, "chosen1", resp.TempPassword)

	_, err = f.orgs.Provision(ctx, admin, models.ProvisionOrganizationRequest{Email: "ORG@example.com"})
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.admin(t)
	a := f.signUp(t, "a@campus.test", "secret1", models.RoleOrganization)
	b := f.signUp(t, "b@campus.test", "secret1", models.RoleOrganization)

	name := "Robotics Club"
	contacts := []models.Contact{{Type: models.ContactEmail, Value: "hello@robotics.test"}}

	updated, err := f.orgs.UpdateProfile(ctx, a, a.ID, models.UpdateOrganizationRequest{Name: &name, Contacts: &contacts})
	require.NoError(t, err)
	require.Equal(t, name, updated.Name)
	require.Equal(t, contacts, updated.Contacts)
	require.Equal(t, models.RoleOrganization, updated.Role)

	t.Run("other organization", func(t *testing.T) {
		other := "Hijacked"
		_, err := f.orgs.UpdateProfile(ctx, b, a.ID, models.UpdateOrganizationRequest{Name: &other})
		require.ErrorIs(t, err, ErrUnauthorized)

		org, err := f.orgs.Get(ctx, a.ID)
		require.NoError(t, err)
		require.Equal(t, name, org.Name)
	})

	t.Run("admin", func(t *testing.T) {
		description := "Builds robots"
		org, err := f.orgs.UpdateProfile(ctx, admin, a.ID, models.UpdateOrganizationRequest{Description: &description})
		require.NoError(t, err)
		require.Equal(t, description, org.Description)
		require.Equal(t, name, org.Name)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := f.orgs.UpdateProfile(ctx, admin, "missing", models.UpdateOrganizationRequest{Name: &name})
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDeleteOrganizationCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.admin(t)
	a := f.signUp(t, "a@campus.test", "secret1", models.RoleOrganization)

	event, err := f.events.Create(ctx, a, eventRequest("Hack night"))
	require.NoError(t, err)

	require.ErrorIs(t, f.orgs.Delete(ctx, a, a.ID), ErrUnauthorized)
	require.NoError(t, f.orgs.Delete(ctx, admin, a.ID))

	_, err = f.events.Get(ctx, event.ID)
	require.ErrorIs(t, err, ErrEventNotFound)
	require.ErrorIs(t, f.orgs.Delete(ctx, admin, a.ID), ErrOrganizationNotFound)
}

func TestListOrganizations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.admin(t)
	b := f.signUp(t, "b@campus.test", "secret1", models.RoleOrganization)
	f.signUp(t, "a@campus.test", "secret1", models.RoleOrganization)

	options, err := f.orgs.ListForFilter(ctx)
	require.NoError(t, err)
	require.Len(t, options, 2)
	require.Equal(t, "a@campus.test", options[0].Name)

	_, err = f.orgs.ListAll(ctx, b)
	require.ErrorIs(t, err, ErrUnauthorized)

	all, err := f.orgs.ListAll(ctx, admin)
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestOrganizationMutationsRevalidatePages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.admin(t)
	a := f.signUp(t, "a@campus.test", "secret1", models.RoleOrganization)

	first, err := f.events.Create(ctx, a, eventRequest("Hack night"))
	require.NoError(t, err)
	second, err := f.events.Create(ctx, a, eventRequest("Demo day"))
	require.NoError(t, err)
	eventPages := []string{EventPath(first.ID), EventPath(second.ID)}

	t.Run("provision", func(t *testing.T) {
		f.reval.Reset()
		_, err := f.orgs.Provision(ctx, admin, models.ProvisionOrganizationRequest{Email: "new@campus.test"})
		require.NoError(t, err)
		require.Subset(t, f.reval.Paths(), []string{PathHome, PathDashboard})
	})

	t.Run("profile update", func(t *testing.T) {
		f.reval.Reset()
		name := "Robotics Club"
		_, err := f.orgs.UpdateProfile(ctx, a, a.ID, models.UpdateOrganizationRequest{Name: &name})
		require.NoError(t, err)
		require.Subset(t, f.reval.Paths(), append([]string{PathHome, PathDashboard}, eventPages...))
	})

	t.Run("delete", func(t *testing.T) {
		f.reval.Reset()
		require.NoError(t, f.orgs.Delete(ctx, admin, a.ID))
		require.Subset(t, f.reval.Paths(), append([]string{PathHome, PathDashboard}, eventPages...))
	})
}
