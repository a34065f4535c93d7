package routes

import (
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/play2earn/backend/pkg/auth"
	"github.com/play2earn/backend/pkg/store"
)

// TextTag stores user-labelled snippets of text.
type TextTag struct {
	Auth     *auth.Auth
	TextTags store.TextTags
}

func (m *TextTag) Prefix() string { return "/api/texttag" }

func (m *TextTag) Register(r fiber.Router) {
	r.Use(m.Auth.Middleware)
	r.Get("/", m.list)
	r.Post("/", m.create)
	r.Delete("/:id", m.delete)
}

func (m *TextTag) list(c *fiber.Ctx) error {
	id, err := currentUserID(c)
	if err != nil {
		return err
	}
	tags, err := m.TextTags.ListByUser(c.UserContext(), id)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(tags)
}

type createTextTagRequest struct {
	Text string   `json:"text"`
	Tags []string `json:"tags"`
}

func (m *TextTag) create(c *fiber.Ctx) error {
	id, err := currentUserID(c)
	if err != nil {
		return err
	}
	owner, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
	}

	var req createTextTagRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return fiber.NewError(fiber.StatusBadRequest, "text is required")
	}
	tags := normalizeTags(req.Tags)
	if len(tags) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "at least one tag is required")
	}

	tag := &store.TextTag{UserID: owner, Text: text, Tags: tags}
	if err := m.TextTags.Create(c.UserContext(), tag); err != nil {
		return storeError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(tag)
}

func (m *TextTag) delete(c *fiber.Ctx) error {
	id, err := currentUserID(c)
	if err != nil {
		return err
	}
	if err := m.TextTags.Delete(c.UserContext(), id, c.Params("id")); err != nil {
		return storeError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// normalizeTags lowercases, trims and de-duplicates tags, keeping first-seen order.
func normalizeTags(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// WordCount counts words and characters of submitted text. It is public.
type WordCount struct{}

func (m *WordCount) Prefix() string { return "/api/wordcount" }

func (m *WordCount) Register(r fiber.Router) {
	r.Post("/", m.count)
}

type wordCountRequest struct {
	Text string `json:"text"`
}

func (m *WordCount) count(c *fiber.Ctx) error {
	var req wordCountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Text) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "text is required")
	}

	return c.JSON(fiber.Map{
		"words":      len(strings.Fields(req.Text)),
		"characters": utf8.RuneCountInString(req.Text),
	})
}
