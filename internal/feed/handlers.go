package feed

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/Crax-AI/crax.app/internal/db"
	"github.com/Crax-AI/crax.app/internal/errmsg"
	"github.com/Crax-AI/crax.app/internal/utils"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100

	firstPageCacheKey = "feed:posts:first"
	firstPageCacheTTL = 30 * time.Second
)

// InvalidateCache drops the cached first feed page. Called by the webhook
// pipeline whenever a post is created.
func InvalidateCache(store *db.Store) error {
	return store.CacheDel(firstPageCacheKey)
}

// listPostsHandler serves one page of the feed, newest first. The first page
// with default sizing is cached in Redis for a short window since it is the
// page every client loads.
// @Summary List feed posts
// @Tags Feed
// @Produce json
// @Param page query int false "page number, 1-based"
// @Param per_page query int false "page size, default 20"
// @Success 200 {object} map[string]any
// @Failure 400 {object} errmsg._FeedInvalidPagination
// @Router /feed/posts [get]
func (h *handlers) listPostsHandler(c fiber.Ctx) error {
	page, perPage, err := pagination(c)
	if err != nil {
		return utils.StatusError(c, errmsg.FeedInvalidPagination)
	}

	cacheable := page == 1 && perPage == defaultPerPage
	if cacheable {
		if cached, err := h.store.CacheGet(firstPageCacheKey); err == nil {
			c.Set("Content-Type", "application/json")
			return c.Send(cached)
		}
	}

	entries, err := listPosts(h.store, page, perPage)
	if err != nil {
		return utils.StatusError(c, errmsg.InternalServerError(err))
	}

	body, err := json.Marshal(fiber.Map{
		"posts":    entries,
		"page":     page,
		"per_page": perPage,
	})
	if err != nil {
		return utils.StatusError(c, errmsg.InternalServerError(err))
	}

	if cacheable {
		if err := h.store.CacheSet(firstPageCacheKey, body, firstPageCacheTTL); err != nil {
			log.Warn().Err(err).Msg("failed to cache feed page")
		}
	}

	c.Set("Content-Type", "application/json")
	return c.Send(body)
}

// getPostHandler serves one post with its linked commits.
// @Summary Get one post with linked commits
// @Tags Feed
// @Produce json
// @Param id path string true "post id"
// @Success 200 {object} map[string]any
// @Failure 404 {object} errmsg._PostNotFound
// @Router /feed/posts/{id} [get]
func (h *handlers) getPostHandler(c fiber.Ctx) error {
	post, commits, err := getPost(h.store, c.Params("id"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.StatusError(c, errmsg.PostNotFound)
		}
		return utils.StatusError(c, errmsg.InternalServerError(err))
	}

	return c.JSON(fiber.Map{
		"post":    post,
		"commits": commits,
	})
}

func pagination(c fiber.Ctx) (page, perPage int, err error) {
	page, perPage = 1, defaultPerPage

	if raw := c.Query("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil || page < 1 {
			return 0, 0, errmsg.FeedInvalidPagination
		}
	}

	if raw := c.Query("per_page"); raw != "" {
		perPage, err = strconv.Atoi(raw)
		if err != nil || perPage < 1 {
			return 0, 0, errmsg.FeedInvalidPagination
		}
		if perPage > maxPerPage {
			perPage = maxPerPage
		}
	}

	return page, perPage, nil
}
