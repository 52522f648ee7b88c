package services

import (
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vicsaltechstyle-dot/ChatVicSal/internal/models"
)

func TestAdvanceFreshSenderGetsMainMenu(t *testing.T) {
	engine := NewEngine()

	result := engine.Advance(nil, "+5215512345678", "hola")

	require.NotNil(t, result.Session)
	assert.Equal(t, models.StateAwaitingMenuChoice, result.Session.State)
	assert.Nil(t, result.Lead)

	assert.Contains(t, result.Reply, "bienvenido a VicSalTech")
	for i, option := range MainMenu {
		assert.Contains(t, result.Reply, fmt.Sprintf("%d. %s", i+1, option))
	}
}

func TestAdvanceResetKeywordFromAnyState(t *testing.T) {
	engine := NewEngine()

	states := []models.State{
		models.StateAwaitingMenuChoice,
		models.StateAwaitingSubmenuChoice,
		models.StateAwaitingName,
		models.StateAwaitingPhone,
		models.StateAwaitingEmail,
	}

	for _, state := range states {
		for _, keyword := range []string{"reiniciar", "REINICIAR", "start", "Start"} {
			session := &models.Session{
				SenderID:       "+521",
				State:          state,
				SelectedOption: "Curso Excel",
				Name:           "stale",
			}

			result := engine.Advance(session, "+521", keyword)

			require.NotNil(t, result.Session, "state %s keyword %s", state, keyword)
			assert.Equal(t, models.StateAwaitingMenuChoice, result.Session.State)
			assert.Empty(t, result.Session.SelectedOption, "reset must drop collected fields")
			assert.Contains(t, result.Reply, "1. Curso Excel")
		}
	}
}

func TestAdvanceMenuChoiceSelectsOption(t *testing.T) {
	engine := NewEngine()

	for n := 1; n <= len(MainMenu); n++ {
		session := models.NewSession("+521")

		result := engine.Advance(session, "+521", strconv.Itoa(n))

		require.NotNil(t, result.Session)
		assert.Equal(t, MainMenu[n-1], result.Session.SelectedOption)
		assert.Equal(t, models.StateAwaitingSubmenuChoice, result.Session.State)
		assert.Contains(t, result.Reply, "Elegiste: "+MainMenu[n-1])
	}
}

func TestAdvanceMenuChoiceRejectsInvalidInput(t *testing.T) {
	engine := NewEngine()

	for _, input := range []string{"0", "6", "9", "-1", "abc", "", "1.5"} {
		session := models.NewSession("+521")

		result := engine.Advance(session, "+521", input)

		require.NotNil(t, result.Session, "input %q", input)
		assert.Equal(t, models.StateAwaitingMenuChoice, result.Session.State)
		assert.Empty(t, result.Session.SelectedOption)
		assert.Contains(t, result.Reply, "Opción inválida")
	}
}

func TestAdvanceSubmenuChoice(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		input string
		kind  string
	}{
		{"1", models.ServiceKindQuote},
		{"2", models.ServiceKindRequest},
	}

	for _, tt := range tests {
		session := &models.Session{
			SenderID:       "+521",
			State:          models.StateAwaitingSubmenuChoice,
			SelectedOption: "Curso Excel",
		}

		result := engine.Advance(session, "+521", tt.input)

		require.NotNil(t, result.Session)
		assert.Equal(t, tt.kind, result.Session.ServiceKind)
		assert.Equal(t, models.StateAwaitingName, result.Session.State)
		assert.Contains(t, result.Reply, "nombre completo")
	}
}

func TestAdvanceSubmenuChoiceRejectsInvalidInput(t *testing.T) {
	engine := NewEngine()

	for _, input := range []string{"3", "0", "si", ""} {
		session := &models.Session{
			SenderID: "+521",
			State:    models.StateAwaitingSubmenuChoice,
		}

		result := engine.Advance(session, "+521", input)

		require.NotNil(t, result.Session, "input %q", input)
		assert.Equal(t, models.StateAwaitingSubmenuChoice, result.Session.State)
		assert.Empty(t, result.Session.ServiceKind)
		assert.Contains(t, result.Reply, "Opción inválida")
	}
}

func TestAdvanceFreeTextFieldsStoredVerbatim(t *testing.T) {
	engine := NewEngine()

	session := &models.Session{SenderID: "+521", State: models.StateAwaitingName}
	result := engine.Advance(session, "+521", "Juan Pérez")
	require.NotNil(t, result.Session)
	assert.Equal(t, "Juan Pérez", result.Session.Name)
	assert.Equal(t, models.StateAwaitingPhone, result.Session.State)

	result = engine.Advance(result.Session, "+521", "not-a-phone!!")
	require.NotNil(t, result.Session)
	assert.Equal(t, "not-a-phone!!", result.Session.Phone)
	assert.Equal(t, models.StateAwaitingEmail, result.Session.State)
}

func TestAdvanceEmailCompletesDialogue(t *testing.T) {
	fixed := time.Date(2026, 8, 29, 14, 30, 0, 0, time.Local)
	engine := NewEngineWithClock(func() time.Time { return fixed })

	session := &models.Session{
		SenderID:       "+521",
		State:          models.StateAwaitingEmail,
		SelectedOption: "Chat bot para negocio",
		ServiceKind:    models.ServiceKindQuote,
		Name:           "Juan Pérez",
		Phone:          "5551234",
	}

	result := engine.Advance(session, "+521", "juan@x.com")

	assert.Nil(t, result.Session, "session must be deleted after completion")
	assert.Contains(t, result.Reply, "¡Registro Completado!")

	require.NotNil(t, result.Lead)
	assert.Equal(t, []interface{}{
		"2026-08-29 14:30:00",
		"Juan Pérez",
		"5551234",
		"juan@x.com",
		"Chat bot para negocio",
		"Cotización",
	}, result.Lead.Row())
}

func TestAdvanceUnknownStateDropsSession(t *testing.T) {
	engine := NewEngine()

	session := &models.Session{SenderID: "+521", State: models.State("corrupted")}

	result := engine.Advance(session, "+521", "hola")

	assert.Nil(t, result.Session)
	assert.Nil(t, result.Lead)
	assert.Contains(t, result.Reply, "Error inesperado")
}

func TestLeadRowFallsBackToNA(t *testing.T) {
	lead := &models.Lead{
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local),
		Name:      "Ana",
		Phone:     "555",
		Email:     "ana@x.com",
	}

	row := lead.Row()
	assert.Equal(t, "N/A", row[4])
	assert.Equal(t, "N/A", row[5])
}
