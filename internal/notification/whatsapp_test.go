package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("+55 (11) 99999-9999", "Olá, Maria! Confirme: https://example.com/invite/abc")

	assert.Equal(t,
		"https://wa.me/5511999999999?text=Ol%C3%A1%2C+Maria%21+Confirme%3A+https%3A%2F%2Fexample.com%2Finvite%2Fabc",
		link)
}

func TestWhatsAppLinkNoDigits(t *testing.T) {
	assert.Equal(t, "", WhatsAppLink("", "hi"))
	assert.Equal(t, "", WhatsAppLink("n/a", "hi"))
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"+55 11 99999-9999", "5511999999999"},
		{"(11) 3333 4444", "1133334444"},
		{"5511999999999", "5511999999999"},
		{"abc", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizePhone(tt.in), tt.in)
	}
}
