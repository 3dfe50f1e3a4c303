package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akib-17/CSE471-Sheba/entity"
	"github.com/Akib-17/CSE471-Sheba/pkg/apperr"
	"github.com/Akib-17/CSE471-Sheba/services"
)

func TestUserCreatesComplaintWithProviderUniqueID(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "test_user", entity.RoleUser)
	seedProvider(t, db, "test_provider", "PROV-001")
	svc := services.NewComplaintService(db)

	view, err := svc.Create(asIdentity(user), services.CreateComplaintInput{
		Title:            "Bad service",
		Description:      "late and rude",
		ProviderUniqueID: "PROV-001",
	})

	require.NoError(t, err)
	require.NotNil(t, view.ProviderUniqueID)
	assert.Equal(t, "PROV-001", *view.ProviderUniqueID)
	assert.Equal(t, entity.ComplaintPending, view.Status)
	assert.Equal(t, user.ID, view.UserID)
	assert.Nil(t, view.AdminResponse)
}

func TestCreateComplaintUnknownProviderFails(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "test_user", entity.RoleUser)
	svc := services.NewComplaintService(db)

	_, err := svc.Create(asIdentity(user), services.CreateComplaintInput{
		Title:            "x",
		Description:      "y",
		ProviderUniqueID: "PROV-404",
	})

	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestCreateComplaintRoleAndValidation(t *testing.T) {
	db := newTestDB(t)
	provider := seedProvider(t, db, "test_provider", "PROV-001")
	user := seedUser(t, db, "test_user", entity.RoleUser)
	svc := services.NewComplaintService(db)

	// only the user role may file complaints
	_, err := svc.Create(asIdentity(provider), services.CreateComplaintInput{
		Title: "x", Description: "y",
	})
	assert.Equal(t, apperr.Authorization, apperr.KindOf(err))

	// title and description are both required
	_, err = svc.Create(asIdentity(user), services.CreateComplaintInput{
		Title: "", Description: "y",
	})
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestAdminReplyMarksReviewed(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "test_user", entity.RoleUser)
	admin := seedUser(t, db, "test_admin", entity.RoleAdmin)
	seedProvider(t, db, "test_provider", "PROV-001")
	svc := services.NewComplaintService(db)

	view, err := svc.Create(asIdentity(user), services.CreateComplaintInput{
		Title: "Bad service", Description: "late and rude", ProviderUniqueID: "PROV-001",
	})
	require.NoError(t, err)

	updated, err := svc.Reply(asIdentity(admin), view.ID, "We are looking into it")
	require.NoError(t, err)
	assert.Equal(t, entity.ComplaintReviewed, updated.Status)
	require.NotNil(t, updated.AdminResponse)
	assert.Equal(t, "We are looking into it", *updated.AdminResponse)

	// non-admins cannot reply
	_, err = svc.Reply(asIdentity(user), view.ID, "nope")
	assert.Equal(t, apperr.Authorization, apperr.KindOf(err))

	// unknown complaint
	_, err = svc.Reply(asIdentity(admin), 9999, "hello")
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestReplyOverwritesWithoutRegressingStatus(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "test_user", entity.RoleUser)
	admin := seedUser(t, db, "test_admin", entity.RoleAdmin)
	svc := services.NewComplaintService(db)

	view, err := svc.Create(asIdentity(user), services.CreateComplaintInput{
		Title: "x", Description: "y",
	})
	require.NoError(t, err)

	first, err := svc.Reply(asIdentity(admin), view.ID, "first answer")
	require.NoError(t, err)
	assert.Equal(t, entity.ComplaintReviewed, first.Status)

	second, err := svc.Reply(asIdentity(admin), view.ID, "second answer")
	require.NoError(t, err)
	assert.Equal(t, entity.ComplaintReviewed, second.Status, "reply must not reopen the complaint")
	assert.Equal(t, "second answer", *second.AdminResponse)

	// replies after resolution keep the terminal status
	_, err = svc.Resolve(asIdentity(admin), view.ID)
	require.NoError(t, err)
	third, err := svc.Reply(asIdentity(admin), view.ID, "post-mortem note")
	require.NoError(t, err)
	assert.Equal(t, entity.ComplaintResolved, third.Status)
}

func TestResolveOnlyFromReviewed(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "test_user", entity.RoleUser)
	admin := seedUser(t, db, "test_admin", entity.RoleAdmin)
	svc := services.NewComplaintService(db)

	view, err := svc.Create(asIdentity(user), services.CreateComplaintInput{
		Title: "x", Description: "y",
	})
	require.NoError(t, err)

	// pending → resolved skips review and must fail
	_, err = svc.Resolve(asIdentity(admin), view.ID)
	assert.Equal(t, apperr.InvalidState, apperr.KindOf(err))

	_, err = svc.Reply(asIdentity(admin), view.ID, "looked at it")
	require.NoError(t, err)

	resolved, err := svc.Resolve(asIdentity(admin), view.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ComplaintResolved, resolved.Status)

	// terminal state, no further transitions
	_, err = svc.Resolve(asIdentity(admin), view.ID)
	assert.Equal(t, apperr.InvalidState, apperr.KindOf(err))
}

func TestListComplaintsRoleScoped(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice", entity.RoleUser)
	bob := seedUser(t, db, "bob", entity.RoleUser)
	admin := seedUser(t, db, "test_admin", entity.RoleAdmin)
	target := seedProvider(t, db, "target_provider", "PROV-001")
	other := seedProvider(t, db, "other_provider", "PROV-002")
	svc := services.NewComplaintService(db)

	_, err := svc.Create(asIdentity(alice), services.CreateComplaintInput{
		Title: "about target", Description: "d", ProviderUniqueID: "PROV-001",
	})
	require.NoError(t, err)
	_, err = svc.Create(asIdentity(bob), services.CreateComplaintInput{
		Title: "untargeted", Description: "d",
	})
	require.NoError(t, err)

	mine, err := svc.List(asIdentity(alice))
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, alice.ID, mine[0].UserID)

	against, err := svc.List(asIdentity(target))
	require.NoError(t, err)
	require.Len(t, against, 1)
	assert.Equal(t, "about target", against[0].Title)

	none, err := svc.List(asIdentity(other))
	require.NoError(t, err)
	assert.Empty(t, none)

	all, err := svc.List(asIdentity(admin))
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDeleteComplaintCascades(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "test_user", entity.RoleUser)
	admin := seedUser(t, db, "test_admin", entity.RoleAdmin)
	provider := seedProvider(t, db, "test_provider", "PROV-001")
	svc := services.NewComplaintService(db)
	warnings := services.NewWarningService(db, newTestNotifier(db))
	chat := services.NewChatService(db)

	view, err := svc.Create(asIdentity(user), services.CreateComplaintInput{
		Title: "x", Description: "y", ProviderUniqueID: "PROV-001",
	})
	require.NoError(t, err)
	_, err = svc.Reply(asIdentity(admin), view.ID, "on it")
	require.NoError(t, err)
	_, err = warnings.Issue(asIdentity(admin), view.ID, "behave")
	require.NoError(t, err)
	cid := view.ID
	_, err = chat.Post(asIdentity(user), services.ThreadRef{ComplaintID: &cid}, "hello?")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(asIdentity(admin), view.ID))

	// no orphan audit rows: the provider's warnings are gone too
	left, err := warnings.List(asIdentity(provider))
	require.NoError(t, err)
	assert.Empty(t, left)

	// and the thread's parent no longer exists
	_, err = chat.List(asIdentity(admin), services.ThreadRef{ComplaintID: &cid}, 0, 0)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}
