// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"clicknet/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// SeedPassword is the shared plaintext password for every seeded account.
const SeedPassword = "Password123"

var postOpeners = []string{
	"Golden hour at", "Scouting locations near", "Test shots from", "Behind the scenes at",
	"First frames with the new lens at", "Editing the set from", "Throwback to",
	"Client shoot wrapped at", "Chasing light around", "Long exposure night at",
}

var commentLines = []string{
	"Love the tones in this one.",
	"What lens did you shoot this on?",
	"The composition is spot on.",
	"Booking you for our next event!",
	"That light is unreal.",
	"Teach me your editing workflow please.",
	"Stunning work as always.",
	"This belongs in a gallery.",
}

// Seed populates the database with test data.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding database with %d users and %d posts...", opts.NumUsers, opts.NumPosts)
	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("warning: could not clear all existing data, continuing anyway")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("created %d users", len(users))

	requests, err := createConnections(db, users)
	if err != nil {
		return fmt.Errorf("failed to create connections: %w", err)
	}
	log.Printf("created %d connection requests", len(requests))

	posts, err := createPosts(db, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("created %d posts", len(posts))

	if err := createEngagement(db, users, posts); err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}

	log.Println("database seeding completed")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("clearing existing data...")
	if db.Dialector.Name() == "postgres" {
		sql := `TRUNCATE TABLE notifications, likes, comments, posts, connection_requests,
			experiences, qualifications, users RESTART IDENTITY CASCADE;`
		return db.Exec(sql).Error
	}
	for _, table := range []string{
		"notifications", "likes", "comments", "posts",
		"connection_requests", "experiences", "qualifications", "users",
	} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(db *gorm.DB, count int) ([]models.User, error) {
	// One bcrypt hash shared by all seed accounts keeps seeding fast.
	hashed, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		first := gofakeit.FirstName()
		last := gofakeit.LastName()
		user := models.User{
			Username:       fmt.Sprintf("%s_%s%d", first, last, gofakeit.Number(10, 999)),
			Name:           first + " " + last,
			Email:          fmt.Sprintf("%s.%s%d@example.com", first, last, i),
			Password:       string(hashed),
			Bio:            gofakeit.Sentence(12),
			Location:       gofakeit.City(),
			ProfilePicture: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		}

		// Roughly 40% of seeded accounts are photographers with a filled
		// out professional profile.
		if gofakeit.Number(1, 10) <= 4 {
			user.IsPhotographer = true
			user.Website = gofakeit.URL()
			user.CoverPhoto = fmt.Sprintf("https://picsum.photos/seed/%s/1200/400", gofakeit.UUID())
			user.SocialLinks = models.SocialLinks{
				Instagram: "https://instagram.com/" + gofakeit.Username(),
				Portfolio: gofakeit.URL(),
			}
			user.Experience = []models.Experience{
				{
					Title:     gofakeit.JobTitle() + " photography",
					Location:  gofakeit.City(),
					BestPhoto: fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()),
				},
			}
			user.Qualifications = []models.Qualification{
				{
					Title:       "Certificate in " + gofakeit.Hobby(),
					Institution: gofakeit.Company(),
				},
			}
		}

		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func createConnections(db *gorm.DB, users []models.User) ([]models.ConnectionRequest, error) {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	var requests []models.ConnectionRequest
	seen := make(map[[2]uint]bool)
	for i := range users {
		// Each user reaches out to a handful of later users so no pair is
		// generated twice.
		targets := r.Intn(4) + 1
		for t := 0; t < targets; t++ {
			j := i + 1 + r.Intn(len(users))
			if j >= len(users) || seen[[2]uint{users[i].ID, users[j].ID}] {
				continue
			}
			seen[[2]uint{users[i].ID, users[j].ID}] = true

			status := models.ConnectionStatusAccepted
			switch r.Intn(10) {
			case 0:
				status = models.ConnectionStatusRejected
			case 1, 2:
				status = models.ConnectionStatusPending
			}

			req := models.ConnectionRequest{
				SenderID:    users[i].ID,
				RecipientID: users[j].ID,
				Status:      status,
			}
			if err := db.Create(&req).Error; err != nil {
				return nil, err
			}
			requests = append(requests, req)

			if status == models.ConnectionStatusAccepted {
				n := models.Notification{
					RecipientID: req.SenderID,
					ActorID:     req.RecipientID,
					Type:        models.NotificationTypeConnectionAccepted,
				}
				if err := db.Create(&n).Error; err != nil {
					return nil, err
				}
			}
		}
	}
	return requests, nil
}

func createPosts(db *gorm.DB, users []models.User, count int) ([]models.Post, error) {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	posts := make([]models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[r.Intn(len(users))]
		post := models.Post{
			UserID:  author.ID,
			Content: fmt.Sprintf("%s %s. %s", postOpeners[r.Intn(len(postOpeners))], gofakeit.City(), gofakeit.Sentence(10)),
		}
		if r.Intn(3) != 0 {
			post.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
		}
		if err := db.Create(&post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func createEngagement(db *gorm.DB, users []models.User, posts []models.Post) error {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	var comments, likes int
	for _, post := range posts {
		for c := r.Intn(4); c > 0; c-- {
			commenter := users[r.Intn(len(users))]
			comment := models.Comment{
				PostID:  post.ID,
				UserID:  commenter.ID,
				Content: commentLines[r.Intn(len(commentLines))],
			}
			if err := db.Create(&comment).Error; err != nil {
				return err
			}
			comments++

			if commenter.ID != post.UserID {
				postID := post.ID
				n := models.Notification{
					RecipientID: post.UserID,
					ActorID:     commenter.ID,
					Type:        models.NotificationTypeComment,
					PostID:      &postID,
				}
				if err := db.Create(&n).Error; err != nil {
					return err
				}
			}
		}

		for l := r.Intn(6); l > 0; l-- {
			liker := users[r.Intn(len(users))]
			like := models.Like{PostID: post.ID, UserID: liker.ID}
			res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				continue
			}
			likes++

			if liker.ID != post.UserID {
				postID := post.ID
				n := models.Notification{
					RecipientID: post.UserID,
					ActorID:     liker.ID,
					Type:        models.NotificationTypeLike,
					PostID:      &postID,
				}
				if err := db.Create(&n).Error; err != nil {
					return err
				}
			}
		}
	}

	log.Printf("created %d comments and %d likes", comments, likes)
	return nil
}
