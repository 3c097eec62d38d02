package notification

import (
	"fmt"
	"strings"
)

// InviteURL joins the public base URL with a guest's invite token.
func InviteURL(baseURL, token string) string {
	return strings.TrimRight(baseURL, "/") + "/invite/" + token
}

// InviteMessage renders the invitation text shared by SMS and WhatsApp.
// coupleNames and weddingDate are optional; the message degrades to a
// plain link when they are not configured.
func InviteMessage(guestName, coupleNames, weddingDate, inviteURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Olá, %s!", guestName)
	if coupleNames != "" {
		fmt.Fprintf(&b, " Você está convidado(a) para o casamento de %s", coupleNames)
		if weddingDate != "" {
			fmt.Fprintf(&b, ", em %s", weddingDate)
		}
		b.WriteString(".")
	}
	fmt.Fprintf(&b, " Confirme sua presença: %s", inviteURL)
	return b.String()
}

// InviteEmailSubject renders the subject line for email invitations.
func InviteEmailSubject(coupleNames string) string {
	if coupleNames == "" {
		return "Convite de casamento"
	}
	return "Convite de casamento - " + coupleNames
}
