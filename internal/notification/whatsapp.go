package notification

import (
	"net/url"
	"strings"
)

// WhatsAppLink builds a wa.me deep link that opens a chat with the
// guest's number and the invitation text prefilled.  No provider call
// is involved; the admin clicks the link and WhatsApp takes over.
// Returns an empty string when the phone has no usable digits.
func WhatsAppLink(phone, message string) string {
	digits := normalizePhone(phone)
	if digits == "" {
		return ""
	}
	return "https://wa.me/" + digits + "?text=" + url.QueryEscape(message)
}

// normalizePhone strips formatting characters, keeping digits only.
// wa.me expects the number in international format without the plus
// sign, e.g. 5511999999999.
func normalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
