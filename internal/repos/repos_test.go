package repos_test

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lrkr/internal/cart"
	"lrkr/internal/domain"
	"lrkr/internal/repos"
)

func openDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:", repos.Admin{Email: "admin@lrkr.test", Password: "Passw0rd!"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestOpenDBSeedsCatalog(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	cats, err := repos.NewCategoryRepo(db).List(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 4)
	assert.Equal(t, "Essential | Spice Oil", cats[0].Name)

	p, err := repos.NewProductRepo(db).Get(ctx, "mustard-oil")
	require.NoError(t, err)
	assert.Equal(t, "Pure Mustard Oil", p.Name)
	assert.Equal(t, 180.0, p.Price)
	assert.Equal(t, "Range of Carrier Oil", p.Category)
	assert.Equal(t, []string{"Cold-Pressed", "Unrefined", "Vegan"}, p.Characteristics)
	require.NotNil(t, p.Stock)
	assert.Equal(t, 100, *p.Stock)
	assert.True(t, p.IsFeatured)
}

func TestOpenDBIsIdempotent(t *testing.T) {
	path := t.TempDir() + "/lrkr.db"
	admin := repos.Admin{Email: "admin@lrkr.test", Password: "Passw0rd!"}
	db, err := repos.OpenDB(path, admin)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = repos.OpenDB(path, admin)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM products`))
	assert.Equal(t, 6, n)
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM users`))
	assert.Equal(t, 1, n)
}

func TestOpenDBFailsOnBrokenSchema(t *testing.T) {
	path := t.TempDir() + "/broken.db"
	raw, err := sqlx.Open("sqlite", path)
	require.NoError(t, err)
	_, err = raw.Exec(`CREATE TABLE categories(id TEXT)`)
	require.NoError(t, err)
	require.NoError(t, raw.Close())

	db, err := repos.OpenDB(path)
	assert.Error(t, err)
	assert.Nil(t, db)

	_, err = repos.OpenDB(t.TempDir() + "/no/such/dir/lrkr.db")
	assert.Error(t, err)
}

func TestProductLookups(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	r := repos.NewProductRepo(db)

	all, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 6)

	_, err = r.Get(ctx, "missing")
	assert.ErrorIs(t, err, repos.ErrNotFound)

	feat, err := r.ListFeatured(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, feat, 3)
	for _, p := range feat {
		assert.True(t, p.IsFeatured)
	}
	one, err := r.ListFeatured(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, one, 1)

	byName, err := r.ListByCategory(ctx, "range of carrier oil")
	require.NoError(t, err)
	bySlug, err := r.ListByCategory(ctx, "carrier-oil")
	require.NoError(t, err)
	assert.Len(t, byName, 2)
	assert.Equal(t, byName, bySlug)

	none, err := r.ListByCategory(ctx, "Ghee")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestInventoryStock(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	inv := repos.NewInventoryRepo(db)

	s, err := inv.Stock(ctx, "ginger-extract")
	require.NoError(t, err)
	assert.Nil(t, s)

	n := 2
	require.NoError(t, inv.SetStock(ctx, "ginger-extract", &n))
	s, err = inv.Stock(ctx, "ginger-extract")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, 2, *s)

	_, err = inv.Stock(ctx, "nope")
	assert.ErrorIs(t, err, repos.ErrNotFound)
	assert.ErrorIs(t, inv.SetStock(ctx, "nope", nil), repos.ErrNotFound)

	rows, err := inv.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 6)
}

func TestOrderCreateAndGet(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	r := repos.NewOrderRepo(db)

	o := domain.Order{
		ID: "o-1", UserID: "user-1", TotalAmount: 1110, Status: domain.OrderPending,
		TransactionID: "sim_1_abc", CreatedAt: "2025-01-01T10:00:00Z",
		ShippingAddress: domain.ShippingAddress{CustomerName: "Asha", City: "Kanpur", Country: "India"},
		Items: []domain.OrderItem{
			{ProductID: "mustard-oil", Name: "Pure Mustard Oil", Price: 180, Quantity: 2},
			{ProductID: "clove-oil", Name: "Clove Bud Oil", Price: 750, Quantity: 1},
		},
	}
	require.NoError(t, r.Create(ctx, o))

	got, err := r.Get(ctx, "o-1")
	require.NoError(t, err)
	assert.Equal(t, o, got)

	require.NoError(t, r.UpdateStatus(ctx, "o-1", domain.OrderShipped))
	list, err := r.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.OrderShipped, list[0].Status)
	assert.Equal(t, "Kanpur", list[0].ShippingAddress.City)

	assert.ErrorIs(t, r.UpdateStatus(ctx, "o-404", domain.OrderShipped), repos.ErrNotFound)
	_, err = r.Get(ctx, "o-404")
	assert.ErrorIs(t, err, repos.ErrNotFound)

	latest, err := r.ListLatest(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, latest, 1)
}

func TestSubmissions(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	r := repos.NewSubmissionRepo(db)

	require.NoError(t, r.CreateContact(ctx, domain.ContactSubmission{
		ID: "c1", Name: "A", Email: "a@b.co", Subject: "Bulk", Message: "Hi", Status: domain.SubmissionNew, CreatedAt: "2025-01-01T00:00:00Z",
	}))
	require.NoError(t, r.CreateFeedback(ctx, domain.FeedbackSubmission{
		ID: "f1", Name: "B", Rating: 5, Message: "Great", Status: domain.SubmissionNew, CreatedAt: "2025-01-01T00:00:00Z",
	}))

	fb, err := r.ListFeedback(ctx, "")
	require.NoError(t, err)
	require.Len(t, fb, 1)
	assert.Nil(t, fb[0].Email)

	require.NoError(t, r.UpdateStatus(ctx, repos.KindContact, "c1", domain.SubmissionRead))
	read, err := r.ListContact(ctx, domain.SubmissionRead)
	require.NoError(t, err)
	assert.Len(t, read, 1)
	fresh, err := r.ListContact(ctx, domain.SubmissionNew)
	require.NoError(t, err)
	assert.Empty(t, fresh)

	assert.ErrorIs(t, r.UpdateStatus(ctx, "spam", "c1", "new"), repos.ErrNotFound)
	assert.ErrorIs(t, r.UpdateStatus(ctx, repos.KindFeedback, "zzz", "approved"), repos.ErrNotFound)
	// the table CHECK rejects statuses that do not belong to the kind
	assert.Error(t, r.UpdateStatus(ctx, repos.KindFeedback, "f1", domain.SubmissionRead))
}

func TestSessionBinding(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	r := repos.NewUserRepo(db)

	u, err := r.ByEmail(ctx, "ADMIN@lrkr.test")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, u.Role)

	require.NoError(t, r.BindSession(ctx, "sid-1", u.ID))
	su, err := r.SessionUser(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, su.ID)

	require.NoError(t, r.UnbindSession(ctx, "sid-1"))
	_, err = r.SessionUser(ctx, "sid-1")
	assert.Error(t, err)
}

func TestCartSlotRepo(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	slot := repos.NewCartSlotRepo(db)
	a := cart.NewAdapter(slot, cart.SlotKey("sid-9"))

	lines := []cart.Line{{ProductID: "mustard-oil", Name: "Pure Mustard Oil", Price: 180, Quantity: 2}}
	require.NoError(t, a.Save(ctx, lines))
	got, err := a.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, lines, got)

	require.NoError(t, a.Save(ctx, nil))
	_, err = slot.Get(ctx, cart.SlotKey("sid-9"))
	assert.ErrorIs(t, err, cart.ErrSlotEmpty)

	require.NoError(t, slot.Put(ctx, "old", []byte("[]")))
	n, err := slot.PurgeOlderThan(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
