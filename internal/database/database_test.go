package database

import (
	"testing"

	"mural/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMigrate(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	for _, table := range []string{"users", "posts", "notifications"} {
		assert.True(t, db.Migrator().HasTable(table), "table %q should exist", table)
	}

	// a post round-trips through the JSON document columns
	post := models.Post{
		UserID:   "u1",
		Title:    "Sunset",
		Media:    []string{"/media/a.jpg"},
		Comments: []models.Comment{{ID: "c1", UserID: "u2", Content: "nice"}},
	}
	require.NoError(t, db.Create(&post).Error)
	require.NotEmpty(t, post.ID)

	var loaded models.Post
	require.NoError(t, db.First(&loaded, "id = ?", post.ID).Error)
	assert.Equal(t, []string{"/media/a.jpg"}, []string(loaded.Media))
	require.Len(t, loaded.Comments, 1)
	assert.Equal(t, "nice", loaded.Comments[0].Content)
}
