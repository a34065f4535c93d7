package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/play2earn/backend/pkg/practice"
)

// StartingHearts is returned with every exercise. Nothing decrements it.
const StartingHearts = 3

const (
	errInvalidLevel     = "Invalid level or level not found."
	errVerifyIncomplete = "User translation, correct translation, user_id, and level are required."
)

// Practice serves translation exercises and checks answers.
type Practice struct {
	Texts *practice.Table
}

func (p *Practice) Prefix() string { return "/" }

func (p *Practice) Register(r fiber.Router) {
	r.Get("/generate_paragraph", p.generateParagraph)
	r.Post("/verify", p.verify)
}

type paragraphResponse struct {
	French  string `json:"french"`
	English string `json:"english"`
	Hearts  int    `json:"hearts"`
}

func (p *Practice) generateParagraph(c *fiber.Ctx) error {
	level := c.Query("level")
	if level == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": errInvalidLevel})
	}
	sentence, ok := p.Texts.Random(level)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": errInvalidLevel})
	}

	return c.JSON(paragraphResponse{
		French:  sentence.French,
		English: sentence.English,
		Hearts:  StartingHearts,
	})
}

// user_id and level are accepted as any JSON type; only their presence matters.
type verifyRequest struct {
	UserTranslation    string      `json:"user_translation"`
	CorrectTranslation string      `json:"correct_translation"`
	UserID             interface{} `json:"user_id"`
	Level              interface{} `json:"level"`
}

func (p *Practice) verify(c *fiber.Ctx) error {
	var req verifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": errVerifyIncomplete})
	}
	if req.UserTranslation == "" || req.CorrectTranslation == "" || !present(req.UserID) || !present(req.Level) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": errVerifyIncomplete})
	}

	return c.JSON(fiber.Map{
		"is_correct": practice.IsCorrect(req.UserTranslation, req.CorrectTranslation),
	})
}

// present reports whether a decoded JSON value is set and not a zero value.
func present(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case float64:
		return val != 0
	case bool:
		return val
	default:
		return true
	}
}
