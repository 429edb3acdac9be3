// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Command seed fills the database with synthetic users, posts, likes,
// and comments. Likes and comments go through the interaction engine,
// so the denormalized counters come out consistent with the rows.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"

	uuid "github.com/gofrs/uuid"
	"golang.org/x/crypto/bcrypt"

	authmodels "github.com/redsocial/api/auth/models"
	authrepository "github.com/redsocial/api/auth/repository"
	interactionrepository "github.com/redsocial/api/interactions/repository"
	interactionservices "github.com/redsocial/api/interactions/services"
	"github.com/redsocial/api/internal/database/postgres"
	"github.com/redsocial/api/internal/pkg/log"
	platformconfig "github.com/redsocial/api/internal/platform/config"
	"github.com/redsocial/api/internal/types"
	postsmodels "github.com/redsocial/api/posts/models"
	postsrepository "github.com/redsocial/api/posts/repository"
)

func main() {
	userCount := flag.Int("users", 10, "number of users to create")
	postsPerUser := flag.Int("posts", 3, "number of posts per user")
	likeRatio := flag.Float64("like-ratio", 0.4, "probability a user likes any given post")
	commentRatio := flag.Float64("comment-ratio", 0.2, "probability a user comments on any given post")
	password := flag.String("password", "correct-horse-battery", "password shared by seeded accounts")
	flag.Parse()

	cfg, err := platformconfig.LoadFromEnv()
	if err != nil {
		log.Error("failed to load config: %v", err)
		os.Exit(1)
	}

	ctx := context.Background()

	pgClient, err := postgres.NewClient(ctx, &cfg.Database.Postgres)
	if err != nil {
		log.Error("failed to connect to postgres: %v", err)
		os.Exit(1)
	}
	defer pgClient.Close()

	if err := pgClient.EnsureSchema(ctx); err != nil {
		log.Error("failed to ensure schema: %v", err)
		os.Exit(1)
	}

	authRepo := authrepository.NewPostgresAuthRepository(pgClient)
	postRepo := postsrepository.NewPostgresPostRepository(pgClient)
	commentRepo := postsrepository.NewPostgresCommentRepository(pgClient)
	likeRepo := interactionrepository.NewPostgresLikeRepository(pgClient)
	postLocker := interactionrepository.NewPostgresPostLocker(pgClient, cfg.Realtime.LockTimeout)
	engine := interactionservices.NewInteractionService(likeRepo, postLocker, commentRepo, nil)

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to hash password: %v", err)
		os.Exit(1)
	}

	users := make([]types.UserContext, 0, *userCount)
	for i := 0; i < *userCount; i++ {
		user := authmodels.UserAuth{
			ObjectId:     uuid.Must(uuid.NewV4()),
			Username:     fmt.Sprintf("user%02d", i),
			Email:        fmt.Sprintf("user%02d@example.com", i),
			PasswordHash: hash,
		}
		if err := authRepo.Create(ctx, &user); err != nil {
			log.Warn("skipping user %s: %v", user.Username, err)
			continue
		}
		users = append(users, types.UserContext{
			UserID:   user.ObjectId,
			Username: user.Username,
			Email:    user.Email,
		})
	}
	log.Info("created %d users", len(users))

	var postIDs []uuid.UUID
	for _, user := range users {
		for i := 0; i < *postsPerUser; i++ {
			post := postsmodels.Post{
				ObjectId:    uuid.Must(uuid.NewV4()),
				Content:     fmt.Sprintf("Post %d by %s", i+1, user.Username),
				OwnerUserId: user.UserID,
			}
			if err := postRepo.Create(ctx, &post); err != nil {
				log.Warn("skipping post by %s: %v", user.Username, err)
				continue
			}
			postIDs = append(postIDs, post.ObjectId)
		}
	}
	log.Info("created %d posts", len(postIDs))

	var likes, comments int
	for _, postID := range postIDs {
		for _, user := range users {
			if rand.Float64() < *likeRatio {
				if _, err := engine.ToggleLike(ctx, user, postID); err != nil {
					log.Warn("like failed: %v", err)
				} else {
					likes++
				}
			}
			if rand.Float64() < *commentRatio {
				content := fmt.Sprintf("%s says hi on this post", user.Username)
				if _, err := engine.AddComment(ctx, user, postID, content); err != nil {
					log.Warn("comment failed: %v", err)
				} else {
					comments++
				}
			}
		}
	}
	log.Info("created %d likes and %d comments", likes, comments)
}
