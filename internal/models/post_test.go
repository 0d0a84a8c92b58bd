package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPost_ToggleLike(t *testing.T) {
	t.Parallel()
	post := &Post{}

	assert.False(t, post.LikedBy("alice"), "absent entry reads as not liked")

	assert.True(t, post.ToggleLike("alice"))
	assert.True(t, post.LikedBy("alice"))

	assert.False(t, post.ToggleLike("alice"))
	assert.False(t, post.LikedBy("alice"))

	// toggling one user leaves others untouched
	post.ToggleLike("bob")
	assert.True(t, post.LikedBy("bob"))
	assert.False(t, post.LikedBy("alice"))
}

func TestPost_RemoveMedia(t *testing.T) {
	t.Parallel()
	post := &Post{Media: []string{"/media/a.jpg", "/media/b.jpg", "/media/c.jpg"}}

	assert.True(t, post.RemoveMedia("/media/b.jpg"))
	assert.Equal(t, []string{"/media/a.jpg", "/media/c.jpg"}, []string(post.Media))

	assert.False(t, post.RemoveMedia("/media/b.jpg"), "second removal finds nothing")
	assert.Len(t, post.Media, 2)
}

func TestPost_BeforeCreate_AssignsID(t *testing.T) {
	t.Parallel()

	post := &Post{}
	assert.NoError(t, post.BeforeCreate(nil))
	assert.NotEmpty(t, post.ID)

	kept := &Post{ID: "fixed"}
	assert.NoError(t, kept.BeforeCreate(nil))
	assert.Equal(t, "fixed", kept.ID)
}
