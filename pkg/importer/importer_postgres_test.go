package importer

import (
	"context"
	"strings"
	"testing"
	"time"

	"recipehub/entities"
	"recipehub/internal/testinfra"
	"recipehub/pkg/recipe"
	"recipehub/pkg/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_RepeatedAgainstPostgres(t *testing.T) {
	db := testinfra.NewPostgresDB(t)
	im := NewImporter(user.NewUserRepository(db), recipe.NewRecipeRepository(db), time.UTC)
	ctx := context.Background()

	first, err := im.Run(ctx, strings.NewReader(sample), Options{})
	require.NoError(t, err)
	assert.Equal(t, 3, first.Imported)

	second, err := im.Run(ctx, strings.NewReader(sample), Options{StartRow: 1})
	require.NoError(t, err)
	assert.Zero(t, second.Imported)
	assert.Zero(t, second.Failed)
	assert.Equal(t, 3, second.Skipped)

	var owners int64
	require.NoError(t, db.Model(&entities.User{}).Where("username = ?", AnonymousUsername).Count(&owners).Error)
	assert.EqualValues(t, 1, owners)

	var recipes int64
	require.NoError(t, db.Model(&entities.Recipe{}).Count(&recipes).Error)
	assert.EqualValues(t, 3, recipes)
}
