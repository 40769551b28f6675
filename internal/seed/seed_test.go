package seed

import (
	"context"
	"testing"
	"time"

	"github.com/sefazor/campus-events-backend/internal/models"
	"github.com/sefazor/campus-events-backend/internal/service"
	"github.com/sefazor/campus-events-backend/internal/service/servicetest"
	"github.com/sefazor/campus-events-backend/pkg/jwt"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := servicetest.NewDB()
	auth := service.NewAuthService(db.Organizations(), db.Sessions(), jwt.NewManager("0123456789abcdef0123456789abcdef", time.Hour, "campus-events"), zap.NewNop())
	seeder := NewSeeder(auth, db.Categories(), zap.NewNop())

	for i := 0; i < 2; i++ {
		require.NoError(t, seeder.Run(ctx, "admin@campus.test", "admin123"))
	}

	admin, err := db.Organizations().GetByEmail(ctx, "admin@campus.test")
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, admin.Role)
	require.False(t, admin.IsFirstLogin)

	categories, err := db.Categories().List(ctx)
	require.NoError(t, err)
	require.Len(t, categories, len(DefaultCategories))

	_, err = auth.SignInEmail(ctx, "admin@campus.test", "admin123", models.SessionMeta{})
	require.NoError(t, err)
}

func TestSeedRequiresCredentials(t *testing.T) {
	seeder := NewSeeder(nil, nil, zap.NewNop())
	require.Error(t, seeder.Run(context.Background(), "", "secret"))
}
