package helpers

import (
	"encoding/json"
	"testing"

	"github.com/Crax-AI/crax.app/internal/db"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// SeedOperator upserts an operator account with a bcrypt-hashed password.
func SeedOperator(t *testing.T, store *db.Store, username, password string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	_, err = store.Operators.UpdateOne(
		store.Ctx,
		bson.M{"username": username},
		bson.M{"$set": bson.M{"username": username, "password": string(hash)}},
		options.Update().SetUpsert(true),
	)
	require.NoError(t, err)
}

// API_OperatorsLogin posts credentials to the login endpoint.
func API_OperatorsLogin(
	t *testing.T,
	app *fiber.App,
	username string,
	password string,
) (bodyBytes []byte, statusCode int) {
	payload := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{
		Username: username,
		Password: password,
	}

	sendBytes, err := json.Marshal(payload)
	require.NoError(t, err)

	return RequestRunner(t, app,
		"POST",
		"/operators/login",
		sendBytes,
		nil,
	)
}

// OperatorToken seeds an operator and returns a valid bearer token for it.
func OperatorToken(t *testing.T, app *fiber.App, store *db.Store) string {
	t.Helper()

	SeedOperator(t, store, "root", "root-password")

	body, status := API_OperatorsLogin(t, app, "root", "root-password")
	require.Equal(t, fiber.StatusOK, status)

	var parsed struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &parsed))
	require.NotEmpty(t, parsed.Token)

	return parsed.Token
}
