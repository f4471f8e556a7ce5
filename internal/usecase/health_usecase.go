package usecase

import (
	"context"

	"area1337-backend/internal/domain"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	posts       domain.PostRepository
	redisStatus func(ctx context.Context) string
}

// NewHealthUsecase reports content availability and the rate-limit store state.
// redisStatus may be nil when Redis is not part of the deployment.
func NewHealthUsecase(posts domain.PostRepository, redisStatus func(ctx context.Context) string) HealthUsecase {
	return &healthUsecase{posts: posts, redisStatus: redisStatus}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	status := map[string]string{
		"status":  "ok",
		"redis":   "disabled",
		"content": "ok",
	}
	if u.redisStatus != nil {
		status["redis"] = u.redisStatus(ctx)
	}
	if err := u.posts.Ping(ctx); err != nil {
		status["content"] = "error"
	}
	return status
}
