// Package projects imports a user's public GitHub repositories as portfolio
// projects, keyed on (user_id, github_url) so repeated syncs are idempotent.
package projects

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/Crax-AI/crax.app/internal/db"
	"github.com/Crax-AI/crax.app/internal/errmsg"
	"github.com/Crax-AI/crax.app/internal/events"
	"github.com/Crax-AI/crax.app/internal/models"
	"github.com/Crax-AI/crax.app/internal/utils"

	"github.com/gofiber/fiber/v3"
	"github.com/google/go-github/v60/github"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type handlers struct {
	store   *db.Store
	emitter *events.Emitter
	gh      *github.Client
}

type syncRequest struct {
	Username string `json:"username"`
}

// syncHandler imports the profile's public repositories as projects.
// @Summary Sync a user's GitHub repositories into projects
// @Tags Admin
// @Security OperatorAuth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 400 {object} errmsg._ProjectSyncInvalidRequest
// @Failure 404 {object} errmsg._ProjectProfileNotFound
// @Router /admin/projects/sync [post]
func (h *handlers) syncHandler(c fiber.Ctx) error {
	var req syncRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return utils.StatusError(c, errmsg.ProjectSyncInvalidRequest)
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		return utils.StatusError(c, errmsg.ProjectSyncInvalidRequest)
	}

	var profile models.Profile
	err := h.store.Profiles.FindOne(h.store.Ctx, bson.M{
		"username": req.Username,
	}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.StatusError(c, errmsg.ProjectProfileNotFound(req.Username))
		}
		return utils.StatusError(c, errmsg.InternalServerError(err))
	}

	login := githubLogin(profile.GithubURL)
	if login == "" {
		return utils.StatusError(c, errmsg.ProjectSyncFailed.WithCause(
			errors.New("profile has no usable github_url"),
		))
	}

	synced, err := h.syncRepositories(c, profile.ID, login)
	if err != nil {
		log.Error().Err(err).Str("login", login).Msg("project sync failed")
		return utils.StatusError(c, errmsg.ProjectSyncFailed.WithCause(err))
	}

	var operator models.Operator
	utils.GetLocals(c, "operator", &operator)
	h.emitter.ProjectsSynced(operator.Username, req.Username, synced)

	log.Info().
		Str("login", login).
		Int("projects", synced).
		Msg("projects synced from GitHub")

	return c.JSON(fiber.Map{
		"message":         "Projects synced successfully",
		"projects_synced": synced,
	})
}

// syncRepositories pages through the user's repositories and upserts one
// project per public, non-fork repo.
func (h *handlers) syncRepositories(c fiber.Ctx, userID, login string) (int, error) {
	synced := 0
	opts := &github.RepositoryListByUserOptions{
		Type:        "owner",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	for {
		repos, resp, err := h.gh.Repositories.ListByUser(c, login, opts)
		if err != nil {
			return synced, err
		}

		for _, repo := range repos {
			if repo.GetPrivate() || repo.GetFork() {
				continue
			}

			if err := h.upsertProject(userID, repo); err != nil {
				return synced, err
			}
			synced++
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return synced, nil
}

func (h *handlers) upsertProject(userID string, repo *github.Repository) error {
	project := models.Project{
		ID:           uuid.NewString(),
		UserID:       userID,
		Title:        repo.GetName(),
		Tagline:      repo.GetDescription(),
		GithubURL:    repo.GetHTMLURL(),
		ThumbnailURL: repo.GetOwner().GetAvatarURL(),
		StartedAt:    repo.GetCreatedAt().Time,
		Type:         models.ProjectTypeCodebase,
		IsPublic:     true,
	}

	filter := bson.M{
		"user_id":    project.UserID,
		"github_url": project.GithubURL,
	}

	update := bson.M{
		"$set": bson.M{
			"title":         project.Title,
			"tagline":       project.Tagline,
			"thumbnail_url": project.ThumbnailURL,
			"started_at":    project.StartedAt,
			"type":          project.Type,
			"is_public":     project.IsPublic,
		},
		"$setOnInsert": bson.M{
			"id":         project.ID,
			"user_id":    project.UserID,
			"github_url": project.GithubURL,
		},
	}

	_, err := h.store.Projects.UpdateOne(
		h.store.Ctx,
		filter,
		update,
		options.Update().SetUpsert(true),
	)

	return err
}

// githubLogin extracts the login from a stored profile URL.
func githubLogin(githubURL string) string {
	trimmed := strings.TrimSuffix(strings.TrimSpace(githubURL), "/")
	const prefix = "https://github.com/"
	if !strings.HasPrefix(trimmed, prefix) {
		return ""
	}

	login := strings.TrimPrefix(trimmed, prefix)
	if strings.Contains(login, "/") {
		return ""
	}

	return login
}
