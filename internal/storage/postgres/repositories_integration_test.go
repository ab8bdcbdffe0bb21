package postgres_test

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/planora/server/internal/domain/coupons"
	"github.com/planora/server/internal/domain/guests"
	"github.com/planora/server/internal/storage/postgres"
)

// setupRepository starts a disposable postgres container and runs the real
// migrations against it, so every test below sees a fresh schema with all
// identity sequences at their initial value.
func setupRepository(t *testing.T) *postgres.Repository {
	t.Helper()
	if testing.Short() {
		t.Skip("requires docker")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancel)

	container, err := tcpostgres.Run(
		ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("planora"),
		tcpostgres.WithUsername("planora"),
		tcpostgres.WithPassword("planora_dev"),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	dbURL, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, migrateWithRetry(dbURL, migrationsDir(t), 10*time.Second))

	pool, err := pgxpool.New(ctx, dbURL)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	repo, err := postgres.NewRepository(pool)
	require.NoError(t, err)
	return repo
}

func migrationsDir(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(file), "migrations")
}

func migrateWithRetry(databaseURL string, migrationsPath string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		if err := postgres.MigrateUp(databaseURL, migrationsPath); err != nil {
			if time.Now().After(deadline) {
				return err
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}
		return nil
	}
}

func TestCouponRepositoryLifecycle(t *testing.T) {
	repo := setupRepository(t).Coupons()
	ctx := context.Background()

	first, err := repo.Create(ctx, coupons.CreateParams{
		Code:              "SUMMER10",
		Name:              "Summer sale",
		Description:       "Ten off",
		Price:             10,
		MinOrderAmount:    50,
		MaxDiscountAmount: 10,
		UsageLimit:        100,
		CreatedBy:         1,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), first.CouponCodeID)

	second, err := repo.Create(ctx, coupons.CreateParams{
		Code:      "WINTER20",
		Name:      "Winter sale",
		Price:     20,
		CreatedBy: 1,
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), second.CouponCodeID)

	_, err = repo.Create(ctx, coupons.CreateParams{
		Code:      "SUMMER10",
		Name:      "Duplicate code",
		CreatedBy: 1,
	})
	require.ErrorIs(t, err, coupons.ErrCodeTaken)

	fetched, err := repo.GetByID(ctx, first.CouponCodeID)
	require.NoError(t, err)
	require.Equal(t, "SUMMER10", fetched.Code)
	require.Equal(t, "Summer sale", fetched.Name)
	require.Equal(t, "Ten off", fetched.Description)
	require.Equal(t, float64(10), fetched.Price)
	require.Equal(t, float64(50), fetched.MinOrderAmount)
	require.Equal(t, 100, fetched.UsageLimit)
	require.Equal(t, int64(1), fetched.CreatedBy)
	require.True(t, fetched.Status)
	require.Nil(t, fetched.UpdatedBy)

	price := 15.0
	updated, err := repo.Update(ctx, first.CouponCodeID, coupons.UpdateParams{
		Price:     &price,
		UpdatedBy: 2,
	})
	require.NoError(t, err)
	require.Equal(t, float64(15), updated.Price)
	require.Equal(t, "SUMMER10", updated.Code)
	require.Equal(t, "Summer sale", updated.Name)
	require.Equal(t, "Ten off", updated.Description)
	require.Equal(t, float64(50), updated.MinOrderAmount)
	require.Equal(t, 100, updated.UsageLimit)
	require.NotNil(t, updated.UpdatedBy)
	require.Equal(t, int64(2), *updated.UpdatedBy)

	require.NoError(t, repo.SoftDelete(ctx, first.CouponCodeID, 2))

	_, err = repo.GetByID(ctx, first.CouponCodeID)
	require.ErrorIs(t, err, coupons.ErrNotFound)

	_, err = repo.Update(ctx, first.CouponCodeID, coupons.UpdateParams{Price: &price, UpdatedBy: 2})
	require.ErrorIs(t, err, coupons.ErrNotFound)

	err = repo.SoftDelete(ctx, first.CouponCodeID, 2)
	require.ErrorIs(t, err, coupons.ErrNotFound)

	remaining, err := repo.GetByID(ctx, second.CouponCodeID)
	require.NoError(t, err)
	require.Equal(t, "WINTER20", remaining.Code)
}

func TestGuestRepositoryHardDelete(t *testing.T) {
	repo := setupRepository(t).Guests()
	ctx := context.Background()

	eventID := int64(7)
	created, err := repo.Create(ctx, guests.CreateParams{
		EventID:    &eventID,
		Name:       "Maya Iyer",
		Email:      "maya@example.com",
		RSVPStatus: guests.RSVPAccepted,
		Seats:      2,
		CreatedBy:  1,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), created.GuestID)

	fetched, err := repo.GetByID(ctx, created.GuestID)
	require.NoError(t, err)
	require.Equal(t, "Maya Iyer", fetched.Name)
	require.Equal(t, guests.RSVPAccepted, fetched.RSVPStatus)
	require.Equal(t, 2, fetched.Seats)
	require.NotNil(t, fetched.EventID)
	require.Equal(t, eventID, *fetched.EventID)

	require.NoError(t, repo.HardDelete(ctx, created.GuestID))

	_, err = repo.GetByID(ctx, created.GuestID)
	require.ErrorIs(t, err, guests.ErrNotFound)

	err = repo.HardDelete(ctx, created.GuestID)
	require.ErrorIs(t, err, guests.ErrNotFound)
}
