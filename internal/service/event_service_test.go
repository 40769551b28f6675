package service

import (
	"context"
	"testing"

	"github.com/sefazor/campus-events-backend/internal/models"
	"github.com/stretchr/testify/require"
)

func TestCreateEvent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.admin(t)
	a := f.signUp(t, "a@campus.test", "secret1", models.RoleOrganization)
	b := f.signUp(t, "b@campus.test", "secret1", models.RoleOrganization)

	_, err := f.events.Create(ctx, nil, eventRequest("Hack night"))
	require.ErrorIs(t, err, ErrUnauthorized)

	event, err := f.events.Create(ctx, a, eventRequest("Hack night"))
	require.NoError(t, err)
	require.Equal(t, a.ID, event.OrgID)
	require.ElementsMatch(t, []string{PathHome, PathDashboard, EventPath(event.ID)}, f.reval.Paths())

	t.Run("organization cannot create for another", func(t *testing.T) {
		req := eventRequest("Spoofed")
		req.OrgID = b.ID
		_, err := f.events.Create(ctx, a, req)
		require.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("admin on behalf of organization", func(t *testing.T) {
		req := eventRequest("Welcome week")
		req.OrgID = b.ID
		event, err := f.events.Create(ctx, admin, req)
		require.NoError(t, err)
		require.Equal(t, b.ID, event.OrgID)

		req.OrgID = "missing"
		_, err = f.events.Create(ctx, admin, req)
		require.ErrorIs(t, err, ErrOrganizationNotFound)
	})

	t.Run("banner required", func(t *testing.T) {
		req := eventRequest("No banner")
		req.Banner = " "
		_, err := f.events.Create(ctx, a, req)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, "banner", verr.Field)
	})
}

func TestUpdateEventOwnerOrAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.admin(t)
	a := f.signUp(t, "a@campus.test", "secret1", models.RoleOrganization)
	b := f.signUp(t, "b@campus.test", "secret1", models.RoleOrganization)

	event, err := f.events.Create(ctx, a, eventRequest("Hack night"))
	require.NoError(t, err)

	title := "Taken over"
	_, err = f.events.Update(ctx, b, event.ID, models.UpdateEventRequest{Title: &title})
	require.ErrorIs(t, err, ErrUnauthorized)

	stored, err := f.events.Get(ctx, event.ID)
	require.NoError(t, err)
	require.Equal(t, "Hack night", stored.Title)

	title = "Hack night II"
	categories := []uint{3, 1}
	updated, err := f.events.Update(ctx, a, event.ID, models.UpdateEventRequest{Title: &title, Categories: &categories})
	require.NoError(t, err)
	require.Equal(t, title, updated.Title)
	require.Equal(t, []uint{3, 1}, updated.Categories)
	require.Equal(t, event.Banner, updated.Banner)

	t.Run("organization cannot move event", func(t *testing.T) {
		_, err := f.events.Update(ctx, a, event.ID, models.UpdateEventRequest{OrgID: &b.ID})
		require.ErrorIs(t, err, ErrUnauthorized)

		stored, err := f.events.Get(ctx, event.ID)
		require.NoError(t, err)
		require.Equal(t, a.ID, stored.OrgID)
	})

	t.Run("same org id is a no-op", func(t *testing.T) {
		_, err := f.events.Update(ctx, a, event.ID, models.UpdateEventRequest{OrgID: &a.ID})
		require.NoError(t, err)
	})

	t.Run("admin moves event", func(t *testing.T) {
		moved, err := f.events.Update(ctx, admin, event.ID, models.UpdateEventRequest{OrgID: &b.ID})
		require.NoError(t, err)
		require.Equal(t, b.ID, moved.OrgID)
	})

	t.Run("missing event", func(t *testing.T) {
		_, err := f.events.Update(ctx, admin, "missing", models.UpdateEventRequest{Title: &title})
		require.ErrorIs(t, err, ErrEventNotFound)
	})

	t.Run("clearing optional link", func(t *testing.T) {
		empty := ""
		updated, err := f.events.Update(ctx, admin, event.ID, models.UpdateEventRequest{RegistrationLink: &empty})
		require.NoError(t, err)
		require.Nil(t, updated.RegistrationLink)
	})
}

func TestDeleteEventScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.admin(t)
	a := f.signUp(t, "a@campus.test", "secret1", models.RoleOrganization)
	b := f.signUp(t, "b@campus.test", "secret1", models.RoleOrganization)

	event, err := f.events.Create(ctx, a, eventRequest("Hack night"))
	require.NoError(t, err)

	require.ErrorIs(t, f.events.Delete(ctx, b, event.ID), ErrUnauthorized)
	_, err = f.events.Get(ctx, event.ID)
	require.NoError(t, err)

	require.NoError(t, f.events.Delete(ctx, admin, event.ID))
	_, err = f.events.Get(ctx, event.ID)
	require.ErrorIs(t, err, ErrEventNotFound)

	require.ErrorIs(t, f.events.Delete(ctx, admin, event.ID), ErrNotFound)
}

func TestListEvents(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.signUp(t, "a@campus.test", "secret1", models.RoleOrganization)
	b := f.signUp(t, "b@campus.test", "secret1", models.RoleOrganization)

	early := eventRequest("Early")
	late := eventRequest("Late")
	late.StartDate = late.StartDate.AddDate(0, 1, 0)
	late.EndDate = late.EndDate.AddDate(0, 1, 0)

	_, err := f.events.Create(ctx, a, early)
	require.NoError(t, err)
	_, err = f.events.Create(ctx, b, late)
	require.NoError(t, err)

	all, err := f.events.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "Late", all[0].Title)

	own, err := f.events.ListByOrganization(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, own, 1)
	require.Equal(t, "Early", own[0].Title)
}

func TestUpdateEventRegistrationLink(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.signUp(t, "a@campus.test", "secret1", models.RoleOrganization)

	req := eventRequest("Hack night")
	link := "https://forms.campus.test/hack"
	req.RegistrationLink = &link
	event, err := f.events.Create(ctx, a, req)
	require.NoError(t, err)

	bad := "not a url"
	_, err = f.events.Update(ctx, a, event.ID, models.UpdateEventRequest{RegistrationLink: &bad})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "registration_link", verr.Field)

	stored, err := f.events.Get(ctx, event.ID)
	require.NoError(t, err)
	require.Equal(t, link, *stored.RegistrationLink)

	next := "https://forms.campus.test/hack-2"
	updated, err := f.events.Update(ctx, a, event.ID, models.UpdateEventRequest{RegistrationLink: &next})
	require.NoError(t, err)
	require.Equal(t, next, *updated.RegistrationLink)

	empty := ""
	updated, err = f.events.Update(ctx, a, event.ID, models.UpdateEventRequest{RegistrationLink: &empty})
	require.NoError(t, err)
	require.Nil(t, updated.RegistrationLink)

	t.Run("create rejects a bad link", func(t *testing.T) {
		req := eventRequest("Bad link")
		req.RegistrationLink = &bad
		_, err := f.events.Create(ctx, a, req)
		require.ErrorAs(t, err, &verr)
		require.Equal(t, "registration_link", verr.Field)
	})
}
