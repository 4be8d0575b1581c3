// Package operators authenticates the staff accounts allowed to use the
// /admin surface.
package operators

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/Crax-AI/crax.app/internal/errmsg"
	"github.com/Crax-AI/crax.app/internal/models"
	"github.com/Crax-AI/crax.app/internal/utils"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// loginHandler checks operator credentials and issues a bearer token.
// @Summary Operator login
// @Tags Operators
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 400 {object} errmsg._OperatorInvalidPayload
// @Failure 401 {object} errmsg._OperatorWrongPassword
// @Failure 404 {object} errmsg._OperatorNotExists
// @Router /operators/login [post]
func (h *handlers) loginHandler(c fiber.Ctx) error {
	var body models.Operator
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return utils.StatusError(c, errmsg.OperatorInvalidPayload)
	}

	body.Username = strings.TrimSpace(body.Username)
	body.Password = strings.TrimSpace(body.Password)
	if body.Username == "" || body.Password == "" {
		return utils.StatusError(c, errmsg.OperatorInvalidPayload)
	}

	var operator models.Operator
	err := h.store.Operators.FindOne(h.store.Ctx, bson.M{
		"username": body.Username,
	}).Decode(&operator)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.StatusError(c, errmsg.OperatorNotExists)
		}
		return utils.StatusError(c, errmsg.InternalServerError(err))
	}

	if bcrypt.CompareHashAndPassword(
		[]byte(operator.Password),
		[]byte(body.Password),
	) != nil {
		return utils.StatusError(c, errmsg.OperatorWrongPassword)
	}

	token := operator.GenToken()

	h.emitter.OperatorLogin(operator.Username)

	operator.Password = ""

	return c.JSON(fiber.Map{
		"token":    token,
		"operator": operator,
	})
}
