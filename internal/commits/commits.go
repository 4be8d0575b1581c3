// Package commits lets operators inspect the commit rows the webhook
// pipeline has ingested.
package commits

import (
	"strconv"
	"strings"

	"github.com/Crax-AI/crax.app/internal/db"
	"github.com/Crax-AI/crax.app/internal/errmsg"
	"github.com/Crax-AI/crax.app/internal/models"
	"github.com/Crax-AI/crax.app/internal/utils"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultLimit = 50

type handlers struct {
	store *db.Store
}

// Routes wires the commit browsing endpoint onto the admin router.
func Routes(admin fiber.Router, store *db.Store) {
	h := &handlers{store: store}

	admin.Get("/commits", h.listCommitsHandler)
}

// listCommitsHandler lists recently stored commits, optionally filtered by
// profile username or repository id.
// @Summary Browse ingested commits
// @Tags Admin
// @Security OperatorAuth
// @Produce json
// @Param username query string false "filter by profile username"
// @Param repository_id query int false "filter by GitHub repository id"
// @Param limit query int false "max rows, default 50"
// @Success 200 {array} models.Commit
// @Failure 500 {object} errmsg._InternalServerError
// @Router /admin/commits [get]
func (h *handlers) listCommitsHandler(c fiber.Ctx) error {
	filter := bson.M{}

	if username := strings.TrimSpace(c.Query("username")); username != "" {
		var profile models.Profile
		err := h.store.Profiles.FindOne(h.store.Ctx, bson.M{
			"username": username,
		}).Decode(&profile)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				return c.JSON([]models.Commit{})
			}
			return utils.StatusError(c, errmsg.InternalServerError(err))
		}
		filter["user_id"] = profile.ID
	}

	if raw := strings.TrimSpace(c.Query("repository_id")); raw != "" {
		repoID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return utils.Error(c, fiber.StatusBadRequest, err)
		}
		filter["repository_id"] = repoID
	}

	limit := defaultLimit
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err == nil && parsed > 0 && parsed <= 500 {
			limit = parsed
		}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "committed_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := h.store.Commits.Find(h.store.Ctx, filter, opts)
	if err != nil {
		return utils.StatusError(c, errmsg.InternalServerError(err))
	}

	commits := []models.Commit{}
	if err := cursor.All(h.store.Ctx, &commits); err != nil {
		return utils.StatusError(c, errmsg.InternalServerError(err))
	}

	return c.JSON(commits)
}
