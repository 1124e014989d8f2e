package service

import (
	"fmt"
	"strings"

	"github.com/frostlinehq/frostline/internal/model"
)

func leadNotificationTemplate(lead *model.Lead, appName string) (subject, body string) {
	if lead.Emergency {
		subject = fmt.Sprintf("[EMERGENCY] Service request from %s", lead.Name)
	} else {
		subject = fmt.Sprintf("New service request from %s", lead.Name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "New request via the %s website.\n\n", appName)
	fmt.Fprintf(&b, "Name:    %s\n", lead.Name)
	fmt.Fprintf(&b, "Phone:   %s\n", lead.Phone)
	if lead.Email != "" {
		fmt.Fprintf(&b, "Email:   %s\n", lead.Email)
	}
	if lead.Service != "" {
		fmt.Fprintf(&b, "Service: %s\n", lead.Service)
	}
	if lead.Emergency {
		b.WriteString("Type:    EMERGENCY (customer expects a same-day callback)\n")
	}
	if lead.Message != "" {
		fmt.Fprintf(&b, "\nMessage:\n%s\n", lead.Message)
	}

	return subject, b.String()
}

func magicLinkEmailTemplate(magicURL, appName string) (subject, body string) {
	subject = fmt.Sprintf("Sign in to %s", appName)
	body = fmt.Sprintf(`Click the link below to sign in:

%s

This link expires in 10 minutes. If you didn't request it, you can ignore this email.

- %s`, magicURL, appName)
	return subject, body
}

func welcomeEmailTemplate(name, appName string) (subject, body string) {
	subject = fmt.Sprintf("Welcome to %s", appName)
	greeting := "Hi"
	if name != "" {
		greeting = fmt.Sprintf("Hi %s", name)
	}
	body = fmt.Sprintf(`%s,

Thanks for creating an account. You can now post in the community forum
and track your service requests.

- The %s team`, greeting, appName)
	return subject, body
}

func membershipReceiptTemplate(name, appName string) (subject, body string) {
	subject = "Your Pro membership is active"
	greeting := "Hi"
	if name != "" {
		greeting = fmt.Sprintf("Hi %s", name)
	}
	body = fmt.Sprintf(`%s,

Your Pro membership is now active. Maintenance guides, seasonal
checklists, and the Pro lounge are unlocked.

- The %s team`, greeting, appName)
	return subject, body
}
