// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"mural/internal/media"
	"mural/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var categories = []string{
	"Travel", "Food", "Technology", "Fitness", "Art",
	"Music", "Photography", "Gaming", "Nature", "DIY",
}

// placeholderPNG is a 1x1 transparent PNG used as seeded media content.
var placeholderPNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x62, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

// Seeder builds demo users, posts, comments, likes and notifications.
type Seeder struct {
	db    *gorm.DB
	store *media.Store
	rng   *rand.Rand
}

// NewSeeder creates a Seeder bound to the given DB and media store.
func NewSeeder(db *gorm.DB, store *media.Store) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:    db,
		store: store,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded rows.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	for _, model := range []interface{}{
		&models.Notification{}, &models.Post{}, &models.User{},
	} {
		if err := s.db.Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

// Seed populates the database with numUsers users and numPosts posts,
// each post carrying stored media files, likes and comments.
func (s *Seeder) Seed(numUsers, numPosts int) error {
	log.Printf("Seeding %d users and %d posts...", numUsers, numPosts)

	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user, err := s.createUser()
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		users = append(users, user)
	}

	for i := 0; i < numPosts; i++ {
		author := users[s.rng.Intn(len(users))]
		post, err := s.createPost(author)
		if err != nil {
			return fmt.Errorf("create post: %w", err)
		}
		if err := s.decoratePost(post, author, users); err != nil {
			return fmt.Errorf("decorate post: %w", err)
		}
	}

	log.Println("Seeding complete")
	return nil
}

func (s *Seeder) createUser() (*models.User, error) {
	user := &models.User{
		FullName: gofakeit.Name(),
		Email:    gofakeit.Email(),
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Seeder) createPost(author *models.User) (*models.Post, error) {
	numFiles := 1 + s.rng.Intn(3)
	mediaURLs := make([]string, 0, numFiles)
	for i := 0; i < numFiles; i++ {
		url, err := s.store.Save("placeholder.png", placeholderPNG)
		if err != nil {
			return nil, err
		}
		mediaURLs = append(mediaURLs, url)
	}

	post := &models.Post{
		UserID:      author.ID,
		Title:       gofakeit.Sentence(4),
		Description: gofakeit.Paragraph(1, 2, 8, "\n"),
		Category:    categories[s.rng.Intn(len(categories))],
		Media:       mediaURLs,
	}
	if err := s.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// decoratePost adds random likes and comments from other users, with the
// matching notifications for the post owner.
func (s *Seeder) decoratePost(post *models.Post, author *models.User, users []*models.User) error {
	likes := map[string]bool{}
	for _, user := range users {
		if user.ID == author.ID || s.rng.Intn(4) != 0 {
			continue
		}
		likes[user.ID] = true
		if err := s.createNotification(author.ID,
			fmt.Sprintf("%s liked your post: %s", user.FullName, post.Title)); err != nil {
			return err
		}
	}
	post.Likes = datatypes.NewJSONType(likes)

	numComments := s.rng.Intn(4)
	comments := make([]models.Comment, 0, numComments)
	for i := 0; i < numComments; i++ {
		commenter := users[s.rng.Intn(len(users))]
		comments = append(comments, models.Comment{
			ID:           uuid.NewString(),
			UserID:       commenter.ID,
			UserFullName: commenter.FullName,
			Content:      gofakeit.Sentence(8),
		})
		if commenter.ID != author.ID {
			if err := s.createNotification(author.ID,
				fmt.Sprintf("%s commented on your post: %s", commenter.FullName, post.Title)); err != nil {
				return err
			}
		}
	}
	post.Comments = comments

	return s.db.Save(post).Error
}

func (s *Seeder) createNotification(userID, message string) error {
	notification := &models.Notification{
		UserID:    userID,
		Message:   message,
		CreatedAt: time.Now().Format(models.TimestampLayout),
	}
	return s.db.Create(notification).Error
}
