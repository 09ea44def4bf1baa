package notifications

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildMessage(t *testing.T) {
	msg := buildMessage(
		"Slotbook Team <noreply@slotbook.local>",
		"Jane Barber <jane@example.com>",
		"Appointment canceled",
		"Hello Jane,\n\nThe appointment was canceled.",
	)

	assert.Contains(t, msg, "From: Slotbook Team <noreply@slotbook.local>\r\n")
	assert.Contains(t, msg, "To: Jane Barber <jane@example.com>\r\n")
	assert.Contains(t, msg, "Subject: Appointment canceled\r\n")
	assert.Contains(t, msg, "Content-Type: text/plain; charset=utf-8\r\n\r\nHello Jane,")
}

func TestEnvelopeAddress(t *testing.T) {
	t.Run("strips display name", func(t *testing.T) {
		assert.Equal(t, "jane@example.com", envelopeAddress("Jane Barber <jane@example.com>"))
	})

	t.Run("bare address unchanged", func(t *testing.T) {
		assert.Equal(t, "jane@example.com", envelopeAddress(" jane@example.com "))
	})
}
