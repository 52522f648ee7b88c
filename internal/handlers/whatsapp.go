package handlers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/twilio/twilio-go/twiml"

	"github.com/vicsaltechstyle-dot/ChatVicSal/internal/services"
)

// WhatsAppHandler handles the Twilio WhatsApp webhook
type WhatsAppHandler struct {
	intake *services.IntakeService
}

// NewWhatsAppHandler creates a new WhatsApp handler
func NewWhatsAppHandler(intake *services.IntakeService) *WhatsAppHandler {
	return &WhatsAppHandler{intake: intake}
}

// TwilioWebhookPayload represents an incoming WhatsApp message from Twilio
type TwilioWebhookPayload struct {
	MessageSid string `form:"MessageSid"`
	AccountSid string `form:"AccountSid"`
	From       string `form:"From"` // WhatsApp number (whatsapp:+5215512345678)
	To         string `form:"To"`   // Your Twilio number
	Body       string `form:"Body"` // Message text
	NumMedia   string `form:"NumMedia"`
}

// HandleWebhook processes an inbound message and replies with a TwiML
// document that Twilio delivers back to the sender.
func (h *WhatsAppHandler) HandleWebhook(c *fiber.Ctx) error {
	var payload TwilioWebhookPayload

	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing webhook: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid webhook payload",
		})
	}

	log.Printf("📱 WhatsApp message from %s: %s", payload.From, payload.Body)

	if payload.From == "" {
		// Status callbacks and other non-message events: acknowledge only
		return c.SendStatus(fiber.StatusOK)
	}

	// BodyParser form values alias fasthttp's reused request buffer; copy
	// them before they are retained beyond this handler (session storage).
	from := strings.Clone(strings.TrimPrefix(payload.From, "whatsapp:"))
	body := strings.Clone(payload.Body)

	reply, err := h.intake.ProcessMessage(c.Context(), from, body)
	if err != nil {
		log.Printf("Error processing message: %v", err)
		reply = "❓ Error inesperado. Escribe 'reiniciar' para empezar de nuevo."
	}

	return sendTwiML(c, reply)
}

// TestWebhookPayload is the JSON body for the development test endpoint
type TestWebhookPayload struct {
	From    string `json:"from"`
	Message string `json:"message"`
}

// HandleTestWebhook processes test messages without Twilio (development)
func (h *WhatsAppHandler) HandleTestWebhook(c *fiber.Ctx) error {
	var payload TestWebhookPayload

	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid test payload",
		})
	}

	log.Printf("🧪 Test webhook received from %s: %s", payload.From, payload.Message)

	reply, err := h.intake.ProcessMessage(c.Context(), payload.From, payload.Message)
	if err != nil {
		log.Printf("Error processing message: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"response": reply,
	})
}

func sendTwiML(c *fiber.Ctx, reply string) error {
	message := &twiml.MessagingMessage{Body: reply}
	doc, err := twiml.Messages([]twiml.Element{message})
	if err != nil {
		log.Printf("Error rendering TwiML: %v", err)
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	c.Set(fiber.HeaderContentType, "text/xml")
	return c.SendString(doc)
}
