package utils

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v3"
)

// GetLocals decodes a JSON value stored in request locals, e.g. the operator
// set by the admin middleware.
func GetLocals(c fiber.Ctx, name string, result any) {
	json.Unmarshal(fmt.Appendf(nil, "%v", c.Locals(name)), &result)
}

// SetLocals stores a value in request locals as JSON.
func SetLocals(c fiber.Ctx, name string, data any) {
	bytes, _ := json.Marshal(data)
	c.Locals(name, string(bytes))
}
