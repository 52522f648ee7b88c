package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vicsaltechstyle-dot/ChatVicSal/internal/models"
)

// MainMenu is the fixed list of services offered, numbered 1..5 in the
// user-facing text.
var MainMenu = []string{
	"Curso Excel",
	"Chat bot para negocio",
	"Automatización de Procesos con Python",
	"Diseño de Dashboards y análisis de datos en Excel",
	"Consultoría en Tecnología",
}

// Reset keywords jump back to the main menu from any state
var resetKeywords = []string{"reiniciar", "start"}

const (
	msgInvalidOption  = "🚫 Opción inválida. Por favor escribe un número válido del menú."
	msgInvalidService = "🚫 Opción inválida. Por favor escribe 1 para Cotización o 2 para Solicitar servicio."
	msgAskName        = "📝 Perfecto. Por favor escribe tu nombre completo:"
	msgAskPhone       = "📞 Gracias. Por favor escribe tu número de teléfono:"
	msgAskEmail       = "📧 Entendido. Por favor escribe tu correo electrónico:"
	msgCompleted      = "✅ ¡Registro Completado! ¡Muchas Gracias!. Uno de nuestros expertos se pondrá en contacto contigo a la brevedad. Escribe 'reiniciar' si quieres empezar de nuevo."
	msgUnexpected     = "❓ Error inesperado. Escribe 'reiniciar' para empezar de nuevo."
	msgSaveFailed     = "⚠️ Registramos tus datos pero no pudimos guardarlos en este momento. Por favor escríbenos de nuevo más tarde o escribe 'reiniciar' para reintentar."
)

// Result is the outcome of one engine step. A nil Session means the
// sender's session must be removed from the store. A non-nil Lead means
// the dialogue completed and the lead must be appended to the sink.
type Result struct {
	Session *models.Session
	Reply   string
	Lead    *models.Lead
}

// Engine is the pure dialogue state machine. It never touches the store
// or the sink; the intake service applies its results.
type Engine struct {
	now func() time.Time
}

// NewEngine creates a dialogue engine
func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// NewEngineWithClock creates an engine with a fixed clock (tests)
func NewEngineWithClock(now func() time.Time) *Engine {
	return &Engine{now: now}
}

// Advance computes one dialogue transition for the given sender.
// A nil session means the sender is fresh.
func (e *Engine) Advance(session *models.Session, senderID, input string) Result {
	input = strings.TrimSpace(input)

	if session == nil || isReset(input) {
		next := models.NewSession(senderID)
		return Result{Session: next, Reply: renderMainMenu()}
	}

	switch session.State {
	case models.StateAwaitingMenuChoice:
		return e.handleMenuChoice(session, input)
	case models.StateAwaitingSubmenuChoice:
		return e.handleSubmenuChoice(session, input)
	case models.StateAwaitingName:
		session.Name = input
		session.State = models.StateAwaitingPhone
		return Result{Session: session, Reply: msgAskPhone}
	case models.StateAwaitingPhone:
		session.Phone = input
		session.State = models.StateAwaitingEmail
		return Result{Session: session, Reply: msgAskEmail}
	case models.StateAwaitingEmail:
		session.Email = input
		return Result{Reply: msgCompleted, Lead: e.buildLead(session)}
	default:
		// Unrecognized state: drop the session so the sender starts fresh
		return Result{Reply: msgUnexpected}
	}
}

func (e *Engine) handleMenuChoice(session *models.Session, input string) Result {
	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > len(MainMenu) {
		return Result{Session: session, Reply: msgInvalidOption}
	}

	session.SelectedOption = MainMenu[n-1]
	session.State = models.StateAwaitingSubmenuChoice
	reply := fmt.Sprintf("Elegiste: %s\n1. Cotización\n2. Solicitar servicio\nEscribe el número:", session.SelectedOption)
	return Result{Session: session, Reply: reply}
}

func (e *Engine) handleSubmenuChoice(session *models.Session, input string) Result {
	switch input {
	case "1":
		session.ServiceKind = models.ServiceKindQuote
	case "2":
		session.ServiceKind = models.ServiceKindRequest
	default:
		return Result{Session: session, Reply: msgInvalidService}
	}

	session.State = models.StateAwaitingName
	return Result{Session: session, Reply: msgAskName}
}

func (e *Engine) buildLead(session *models.Session) *models.Lead {
	return &models.Lead{
		Timestamp:      e.now(),
		Name:           session.Name,
		Phone:          session.Phone,
		Email:          session.Email,
		SelectedOption: session.SelectedOption,
		ServiceKind:    session.ServiceKind,
	}
}

func isReset(input string) bool {
	lowered := strings.ToLower(input)
	for _, kw := range resetKeywords {
		if lowered == kw {
			return true
		}
	}
	return false
}

func renderMainMenu() string {
	var b strings.Builder
	b.WriteString("Hola, bienvenido a VicSalTech 😄\n¿Cómo puedo ayudarte?\n")
	for i, option := range MainMenu {
		fmt.Fprintf(&b, "%d. %s\n", i+1, option)
	}
	b.WriteString("Por favor escribe el número de tu opción.")
	return b.String()
}
