package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInviteURL(t *testing.T) {
	assert.Equal(t, "https://example.com/invite/abc",
		InviteURL("https://example.com", "abc"))
	// trailing slash on the base must not double up
	assert.Equal(t, "https://example.com/invite/abc",
		InviteURL("https://example.com/", "abc"))
}

func TestInviteMessage(t *testing.T) {
	msg := InviteMessage("Maria", "Ana & João", "12/12/2026", "https://example.com/invite/abc")
	assert.Equal(t, "Olá, Maria! Você está convidado(a) para o casamento de Ana & João, em 12/12/2026. Confirme sua presença: https://example.com/invite/abc", msg)
}

func TestInviteMessageDegradesWithoutCoupleNames(t *testing.T) {
	msg := InviteMessage("Maria", "", "", "https://example.com/invite/abc")
	assert.Equal(t, "Olá, Maria! Confirme sua presença: https://example.com/invite/abc", msg)
}

func TestInviteEmailSubject(t *testing.T) {
	assert.Equal(t, "Convite de casamento", InviteEmailSubject(""))
	assert.Equal(t, "Convite de casamento - Ana & João", InviteEmailSubject("Ana & João"))
}
