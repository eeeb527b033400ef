package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "lrkr/internal/log"
	"lrkr/internal/services"
)

type SubmissionHandler struct {
	Submissions *services.SubmissionService
}

// POST /api/submit-contact-form
func (h *SubmissionHandler) Contact(c *fiber.Ctx) error {
	var in services.ContactInput
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	id, err := h.Submissions.SubmitContact(c.UserContext(), in)
	if handled, rerr := inputError(c, err); handled {
		applog.Security(c, "contact.invalid", map[string]any{"reason": err.Error()})
		return rerr
	}
	if err != nil {
		applog.Error(c, "contact.create.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to submit message.",
			"details": "Please try again later.",
		})
	}
	applog.Audit(c, "contact.create", map[string]any{"submission_id": id})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":      "Message submitted successfully!",
		"submissionId": id,
	})
}

// POST /api/submit-feedback
func (h *SubmissionHandler) Feedback(c *fiber.Ctx) error {
	var in services.FeedbackInput
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	id, err := h.Submissions.SubmitFeedback(c.UserContext(), in)
	if handled, rerr := inputError(c, err); handled {
		applog.Security(c, "feedback.invalid", map[string]any{"reason": err.Error()})
		return rerr
	}
	if err != nil {
		applog.Error(c, "feedback.create.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to submit feedback.",
			"details": "Please try again later.",
		})
	}
	applog.Audit(c, "feedback.create", map[string]any{"submission_id": id, "rating": *in.Rating})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":      "Feedback submitted successfully!",
		"submissionId": id,
	})
}
