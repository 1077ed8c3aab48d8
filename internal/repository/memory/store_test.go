package memory

import (
	"context"
	"testing"
	"time"

	"github.com/flatmatch/flatmatch-backend/internal/domain"
	"github.com/flatmatch/flatmatch-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(t *testing.T, store *repository.Store, handle string) *domain.User {
	t.Helper()
	user := &domain.User{Handle: handle, PasswordHash: "x"}
	require.NoError(t, store.Users.Create(context.Background(), user))
	return user
}

func intPtr(i int) *int { return &i }

func strPtr(s string) *string { return &s }

func TestUserCreateRejectsDuplicateHandle(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	newUser(t, store, "sam")

	err := store.Users.Create(ctx, &domain.User{Handle: "sam", PasswordHash: "x"})
	assert.ErrorIs(t, err, domain.ErrDuplicateHandle)

	// Handles are unique regardless of case.
	err = store.Users.Create(ctx, &domain.User{Handle: "SAM", PasswordHash: "x"})
	assert.ErrorIs(t, err, domain.ErrDuplicateHandle)
}

func TestUserGetByHandleIsCaseInsensitive(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	created := newUser(t, store, "Sam")

	got, err := store.Users.GetByHandle(ctx, "sAM")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = store.Users.GetByHandle(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserUpdatePreservesBadges(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	user := newUser(t, store, "sam")
	require.NoError(t, store.Users.AwardBadge(ctx, user.ID, domain.UserBadge{
		BadgeID: 1, Name: "Profile Starter", AwardedAt: time.Now(),
	}))

	// A profile update that carries no badges must not drop the award.
	user.Bio = strPtr("hello")
	user.Badges = nil
	require.NoError(t, store.Users.Update(ctx, user))

	got, err := store.Users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, got.Badges, 1)
	assert.Equal(t, "Profile Starter", got.Badges[0].Name)
	require.NotNil(t, got.Bio)
	assert.Equal(t, "hello", *got.Bio)
}

func TestUserUpdateDoesNotTouchIdentityFields(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	user := newUser(t, store, "oldname")
	require.NoError(t, store.Users.UpdateCompletion(ctx, user.ID, 44))

	// Handle, credential and completion are owned elsewhere; a profile
	// update carrying changed values must not persist them.
	user.Handle = "newname"
	user.PasswordHash = "y"
	user.Completion = 99
	user.Bio = strPtr("hello")
	require.NoError(t, store.Users.Update(ctx, user))

	got, err := store.Users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "oldname", got.Handle)
	assert.Equal(t, "x", got.PasswordHash)
	assert.Equal(t, 44, got.Completion)
	require.NotNil(t, got.Bio)
	assert.Equal(t, "hello", *got.Bio)

	// The handle index still resolves the original handle and nothing else.
	byHandle, err := store.Users.GetByHandle(ctx, "oldname")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byHandle.ID)
	assert.Equal(t, "oldname", byHandle.Handle)
	_, err = store.Users.GetByHandle(ctx, "newname")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAwardBadgeIsIdempotent(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	user := newUser(t, store, "sam")
	badge := domain.UserBadge{BadgeID: 7, Name: "Halfway There", AwardedAt: time.Now()}

	require.NoError(t, store.Users.AwardBadge(ctx, user.ID, badge))
	require.NoError(t, store.Users.AwardBadge(ctx, user.ID, badge))

	badges, err := store.Users.GetBadges(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, badges, 1)
}

func TestGetByIDReturnsACopy(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	user := newUser(t, store, "sam")

	got, err := store.Users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	got.Handle = "mutated"
	got.Preferences = append(got.Preferences, "Smoker")

	again, err := store.Users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "sam", again.Handle)
	assert.Empty(t, again.Preferences)
}

func TestRoommateUpsertAndList(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	alice := newUser(t, store, "alice")
	bob := newUser(t, store, "bob")

	require.NoError(t, store.Roommates.Upsert(ctx, &domain.RoommateProfile{
		UserID: alice.ID, Budget: 800, DurationMonths: 6, LookingForRoom: true,
	}))
	require.NoError(t, store.Roommates.Upsert(ctx, &domain.RoommateProfile{
		UserID: bob.ID, Budget: 1200, DurationMonths: 12,
	}))

	// Upsert replaces in place, it never duplicates.
	require.NoError(t, store.Roommates.Upsert(ctx, &domain.RoommateProfile{
		UserID: alice.ID, Budget: 950, DurationMonths: 6, LookingForRoom: true,
	}))

	pool, err := store.Roommates.List(ctx, repository.RoommateFilter{})
	require.NoError(t, err)
	require.Len(t, pool, 2)
	assert.Equal(t, alice.ID, pool[0].User.ID)
	assert.Equal(t, 950, pool[0].Profile.Budget)
	assert.Equal(t, bob.ID, pool[1].User.ID)
}

func TestRoommateListAgeBounds(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	young := &domain.User{Handle: "young", PasswordHash: "x", Age: intPtr(21)}
	require.NoError(t, store.Users.Create(ctx, young))
	older := &domain.User{Handle: "older", PasswordHash: "x", Age: intPtr(34)}
	require.NoError(t, store.Users.Create(ctx, older))
	unaged := newUser(t, store, "unaged")

	for _, u := range []*domain.User{young, older, unaged} {
		require.NoError(t, store.Roommates.Upsert(ctx, &domain.RoommateProfile{UserID: u.ID}))
	}

	got, err := store.Roommates.List(ctx, repository.RoommateFilter{MinAge: intPtr(21), MaxAge: intPtr(30)})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "young", got[0].User.Handle)

	// An undeclared age never satisfies an age bound.
	got, err = store.Roommates.List(ctx, repository.RoommateFilter{MinAge: intPtr(0)})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestRoommateListTagsMatchAnyCaseInsensitively(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	vegan := &domain.User{Handle: "vegan", PasswordHash: "x", Preferences: []string{"Vegan"}}
	require.NoError(t, store.Users.Create(ctx, vegan))
	gym := &domain.User{Handle: "gym", PasswordHash: "x", Preferences: []string{"Gym"}}
	require.NoError(t, store.Users.Create(ctx, gym))
	for _, u := range []*domain.User{vegan, gym} {
		require.NoError(t, store.Roommates.Upsert(ctx, &domain.RoommateProfile{UserID: u.ID}))
	}

	got, err := store.Roommates.List(ctx, repository.RoommateFilter{Tags: []string{"vegan"}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "vegan", got[0].User.Handle)

	// Any of the requested tags is enough.
	got, err = store.Roommates.List(ctx, repository.RoommateFilter{Tags: []string{"VEGAN", "smoker"}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "vegan", got[0].User.Handle)
}

func TestListingVisibility(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	owner := newUser(t, store, "owner")
	other := newUser(t, store, "other")

	private := &domain.Listing{OwnerID: owner.ID, Title: "spare room", IsPublic: false}
	require.NoError(t, store.Listings.Create(ctx, private))
	public := &domain.Listing{OwnerID: owner.ID, Title: "loft", IsPublic: true}
	require.NoError(t, store.Listings.Create(ctx, public))

	// Anonymous viewers see only public listings.
	got, err := store.Listings.List(ctx, repository.ListingFilter{}, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, public.ID, got[0].ID)

	// The owner sees both, newest first.
	got, err = store.Listings.List(ctx, repository.ListingFilter{}, &owner.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, public.ID, got[0].ID)
	assert.Equal(t, private.ID, got[1].ID)

	// Another signed-in user is no different from anonymous.
	got, err = store.Listings.List(ctx, repository.ListingFilter{}, &other.ID)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestListingFilters(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	owner := newUser(t, store, "owner")
	now := time.Now()

	require.NoError(t, store.Listings.Create(ctx, &domain.Listing{
		OwnerID: owner.ID, Title: "cheap", Location: "Brooklyn, NY", Price: 700,
		RoomType: "shared", Amenities: []string{"Laundry"}, IsPublic: true,
		AvailableFrom: now.AddDate(0, 0, -1),
	}))
	require.NoError(t, store.Listings.Create(ctx, &domain.Listing{
		OwnerID: owner.ID, Title: "pricey", Location: "Manhattan, NY", Price: 2400,
		RoomType: "private", Amenities: []string{"Gym", "Doorman"}, IsPublic: true,
		AvailableFrom: now.AddDate(0, 1, 0),
	}))

	got, err := store.Listings.List(ctx, repository.ListingFilter{MaxPrice: intPtr(1000)}, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "cheap", got[0].Title)

	got, err = store.Listings.List(ctx, repository.ListingFilter{Location: "manhattan"}, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "pricey", got[0].Title)

	got, err = store.Listings.List(ctx, repository.ListingFilter{RoomType: "Private"}, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "pricey", got[0].Title)

	got, err = store.Listings.List(ctx, repository.ListingFilter{Amenities: []string{"Laundry", "Pool"}}, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "cheap", got[0].Title)

	// Amenity matching ignores case.
	got, err = store.Listings.List(ctx, repository.ListingFilter{Amenities: []string{"laundry"}}, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "cheap", got[0].Title)

	// Pattern metacharacters in a location filter are literal text.
	got, err = store.Listings.List(ctx, repository.ListingFilter{Location: "%"}, nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = store.Listings.List(ctx, repository.ListingFilter{AvailableNow: true, Now: now}, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "cheap", got[0].Title)
}

func TestListFeaturedLimitAndOrder(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	owner := newUser(t, store, "owner")
	var featured []*domain.Listing
	for i := 0; i < 5; i++ {
		l := &domain.Listing{OwnerID: owner.ID, Title: "f", IsPublic: true, IsFeatured: true}
		require.NoError(t, store.Listings.Create(ctx, l))
		featured = append(featured, l)
	}
	// A featured private listing never surfaces.
	require.NoError(t, store.Listings.Create(ctx, &domain.Listing{
		OwnerID: owner.ID, Title: "hidden", IsFeatured: true,
	}))

	got, err := store.Listings.ListFeatured(ctx, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, featured[4].ID, got[0].ID)
	assert.Equal(t, featured[3].ID, got[1].ID)
	assert.Equal(t, featured[2].ID, got[2].ID)
}

func TestListingGetByIDUnknown(t *testing.T) {
	store := NewStore()
	_, err := store.Listings.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

func TestMessageRoundTrip(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	alice := newUser(t, store, "alice")
	bob := newUser(t, store, "bob")
	carol := newUser(t, store, "carol")

	send := func(from, to int, body string) {
		require.NoError(t, store.Messages.Create(ctx, &domain.Message{
			SenderID: from, ReceiverID: to, Content: body,
		}))
	}
	send(alice.ID, bob.ID, "hi bob")
	send(bob.ID, alice.ID, "hi alice")
	send(alice.ID, carol.ID, "hi carol")

	thread, err := store.Messages.GetBetween(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.Equal(t, "hi bob", thread[0].Content)
	assert.Equal(t, "hi alice", thread[1].Content)
	assert.False(t, thread[0].IsRead)

	all, err := store.Messages.ListForUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestMarkReadBetweenOnlyFlipsInbound(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	alice := newUser(t, store, "alice")
	bob := newUser(t, store, "bob")

	require.NoError(t, store.Messages.Create(ctx, &domain.Message{
		SenderID: alice.ID, ReceiverID: bob.ID, Content: "from alice",
	}))
	require.NoError(t, store.Messages.Create(ctx, &domain.Message{
		SenderID: bob.ID, ReceiverID: alice.ID, Content: "from bob",
	}))

	require.NoError(t, store.Messages.MarkReadBetween(ctx, bob.ID, alice.ID))

	thread, err := store.Messages.GetBetween(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.True(t, thread[0].IsRead)  // alice -> bob, bob read it
	assert.False(t, thread[1].IsRead) // bob -> alice, still unread
}

func TestMessageGetByIDs(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	alice := newUser(t, store, "alice")
	bob := newUser(t, store, "bob")

	first := &domain.Message{SenderID: alice.ID, ReceiverID: bob.ID, Content: "one"}
	require.NoError(t, store.Messages.Create(ctx, first))
	second := &domain.Message{SenderID: bob.ID, ReceiverID: alice.ID, Content: "two"}
	require.NoError(t, store.Messages.Create(ctx, second))

	got, err := store.Messages.GetByIDs(ctx, []int{second.ID, 999})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "two", got[0].Content)
}

func TestBadgeEnsureByName(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	first := &domain.Badge{Name: "Profile Pro", Description: "Reach 100%", Category: "profile"}
	require.NoError(t, store.Badges.EnsureByName(ctx, first))
	assert.NotZero(t, first.ID)

	// Re-ensuring returns the existing catalog row untouched.
	second := &domain.Badge{Name: "Profile Pro", Description: "something else"}
	require.NoError(t, store.Badges.EnsureByName(ctx, second))
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Reach 100%", second.Description)

	got, err := store.Badges.GetByName(ctx, "Profile Pro")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	_, err = store.Badges.GetByName(ctx, "Unheard Of")
	assert.ErrorIs(t, err, domain.ErrBadgeNotFound)
}

func TestContextCancellationIsHonored(t *testing.T) {
	store := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Users.Create(ctx, &domain.User{Handle: "late", PasswordHash: "x"})
	assert.ErrorIs(t, err, context.Canceled)
}
