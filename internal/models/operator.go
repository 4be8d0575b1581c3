package models

import (
	"strings"
	"time"

	"github.com/Crax-AI/crax.app/internal/env"
	"github.com/Crax-AI/crax.app/internal/errmsg"
	"github.com/Crax-AI/crax.app/internal/utils"

	sj "github.com/brianvoe/sjwt"
	"github.com/gofiber/fiber/v3"
)

// Operator is a staff account allowed to use the /admin surface. Passwords
// are stored bcrypt-hashed; rows are provisioned out of band.
type Operator struct {
	Username string `json:"username" bson:"username"`
	Password string `json:"password,omitempty" bson:"password"`
}

func (op *Operator) GenToken() string {
	claims, _ := sj.ToClaims(Operator{Username: op.Username})
	claims.SetExpiresAt(time.Now().Add(30 * 24 * time.Hour))

	return claims.Generate(env.JWT_SECRET)
}

func (op *Operator) ParseToken(token string) error {
	if !sj.Verify(token, env.JWT_SECRET) {
		return errmsg.OperatorNoToken
	}

	claims, _ := sj.Parse(token)
	if err := claims.Validate(); err != nil {
		return err
	}
	claims.ToStruct(&op)

	return nil
}

// OperatorMiddleware guards admin routes with a bearer token issued by the
// login handler. The parsed operator is stored in locals as "operator".
func OperatorMiddleware(c fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer") {
		return utils.StatusError(c, errmsg.OperatorNoToken)
	}

	fields := strings.Fields(authHeader)
	if len(fields) != 2 {
		return utils.StatusError(c, errmsg.OperatorNoToken)
	}

	var operator Operator
	if err := operator.ParseToken(fields[1]); err != nil {
		return utils.StatusError(c, errmsg.OperatorNoToken)
	}

	if operator.Username == "" {
		return utils.StatusError(c, errmsg.OperatorNoToken)
	}

	utils.SetLocals(c, "operator", operator)

	return c.Next()
}
