package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const flashKey = "flash"

// setFlash stores a one-shot message for the next page render.
func setFlash(c *fiber.Ctx, store *session.Store, msg string) error {
	sess, err := store.Get(c)
	if err != nil {
		return err
	}
	sess.Set(flashKey, msg)
	return sess.Save()
}

// popFlash returns and clears the pending message, if any.
func popFlash(c *fiber.Ctx, store *session.Store) (string, error) {
	sess, err := store.Get(c)
	if err != nil {
		return "", err
	}

	msg, _ := sess.Get(flashKey).(string)
	if msg != "" {
		sess.Delete(flashKey)
	}
	return msg, sess.Save()
}
