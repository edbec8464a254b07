package storage_test

import (
	"context"
	"errors"
	"testing"

	"helpdesk/internal/models"
	"helpdesk/internal/storage"
	"helpdesk/internal/testutil"
)

func newUser(username string) *models.User {
	return &models.User{
		Username:     username,
		PasswordHash: "x",
		Role:         models.RoleUser,
	}
}

func TestCreateUser_AssignsSequentialIDs(t *testing.T) {
	store := testutil.NewTestStore(t)
	ctx := context.Background()

	for i, name := range []string{"alice", "bob", "carol"} {
		u := newUser(name)
		if err := store.CreateUser(ctx, u); err != nil {
			t.Fatalf("CreateUser(%s): %v", name, err)
		}
		if want := uint(i + 1); u.ID != want {
			t.Errorf("user %s got id %d, want %d", name, u.ID, want)
		}
	}
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	store := testutil.NewTestStore(t)
	ctx := context.Background()

	if err := store.CreateUser(ctx, newUser("alice")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	err := store.CreateUser(ctx, newUser("alice"))
	if !errors.Is(err, storage.ErrUsernameTaken) {
		t.Errorf("duplicate username error = %v, want ErrUsernameTaken", err)
	}
}

func TestUserLookups(t *testing.T) {
	store := testutil.NewTestStore(t)
	ctx := context.Background()

	u := newUser("alice")
	if err := store.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	byID, err := store.UserByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("UserByID: %v", err)
	}
	if byID.Username != "alice" {
		t.Errorf("UserByID username = %q, want alice", byID.Username)
	}

	byName, err := store.UserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("UserByUsername: %v", err)
	}
	if byName.ID != u.ID {
		t.Errorf("UserByUsername id = %d, want %d", byName.ID, u.ID)
	}

	if _, err := store.UserByID(ctx, 999); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("UserByID(999) error = %v, want ErrNotFound", err)
	}
	if _, err := store.UserByUsername(ctx, "nobody"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("UserByUsername(nobody) error = %v, want ErrNotFound", err)
	}
}

func TestSetUserRole(t *testing.T) {
	store := testutil.NewTestStore(t)
	ctx := context.Background()

	u := newUser("alice")
	if err := store.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if err := store.SetUserRole(ctx, u.ID, models.RoleAdmin); err != nil {
		t.Fatalf("SetUserRole: %v", err)
	}
	got, err := store.UserByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("UserByID: %v", err)
	}
	if got.Role != models.RoleAdmin {
		t.Errorf("role = %q, want admin", got.Role)
	}

	if err := store.SetUserRole(ctx, 999, models.RoleAdmin); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("SetUserRole(999) error = %v, want ErrNotFound", err)
	}
}

func TestListTicketsByOwner_Filters(t *testing.T) {
	store := testutil.NewTestStore(t)
	ctx := context.Background()

	alice := newUser("alice")
	bob := newUser("bob")
	for _, u := range []*models.User{alice, bob} {
		if err := store.CreateUser(ctx, u); err != nil {
			t.Fatalf("CreateUser: %v", err)
		}
	}

	for _, tk := range []*models.Ticket{
		{Title: "a1", Description: "d", UserID: alice.ID, Status: models.StatusOpen},
		{Title: "b1", Description: "d", UserID: bob.ID, Status: models.StatusOpen},
		{Title: "a2", Description: "d", UserID: alice.ID, Status: models.StatusOpen},
	} {
		if err := store.CreateTicket(ctx, tk); err != nil {
			t.Fatalf("CreateTicket(%s): %v", tk.Title, err)
		}
	}

	all, err := store.ListTickets(ctx)
	if err != nil {
		t.Fatalf("ListTickets: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("ListTickets returned %d tickets, want 3", len(all))
	}

	mine, err := store.ListTicketsByOwner(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListTicketsByOwner: %v", err)
	}
	if len(mine) != 2 || mine[0].Title != "a1" || mine[1].Title != "a2" {
		t.Errorf("ListTicketsByOwner = %+v, want a1, a2 in order", mine)
	}
}

func TestListTickets_EmptyIsNotNil(t *testing.T) {
	store := testutil.NewTestStore(t)

	tickets, err := store.ListTickets(context.Background())
	if err != nil {
		t.Fatalf("ListTickets: %v", err)
	}
	if tickets == nil {
		t.Fatal("ListTickets returned nil slice; must serialize as []")
	}
}

func TestDeleteTicket_IDsNeverReused(t *testing.T) {
	store := testutil.NewTestStore(t)
	ctx := context.Background()

	owner := newUser("alice")
	if err := store.CreateUser(ctx, owner); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	var last uint
	for i := 0; i < 3; i++ {
		tk := &models.Ticket{Title: "t", Description: "d", UserID: owner.ID, Status: models.StatusOpen}
		if err := store.CreateTicket(ctx, tk); err != nil {
			t.Fatalf("CreateTicket: %v", err)
		}
		last = tk.ID
	}
	if last != 3 {
		t.Fatalf("third ticket id = %d, want 3", last)
	}

	// Deleting the highest id must not free it for reuse.
	if err := store.DeleteTicket(ctx, last); err != nil {
		t.Fatalf("DeleteTicket: %v", err)
	}
	if _, err := store.TicketByID(ctx, last); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("TicketByID after delete = %v, want ErrNotFound", err)
	}

	tk := &models.Ticket{Title: "t", Description: "d", UserID: owner.ID, Status: models.StatusOpen}
	if err := store.CreateTicket(ctx, tk); err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}
	if tk.ID != 4 {
		t.Errorf("ticket id after delete = %d, want 4", tk.ID)
	}

	if err := store.DeleteTicket(ctx, 999); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("DeleteTicket(999) error = %v, want ErrNotFound", err)
	}
}
