// Package respond renders customer-facing acknowledgements for workflow
// outcomes. Every template carries a rich HTML body plus a plain-text
// fallback for clients that strip markup. Rendering is pure: the same
// inputs always produce the same template.
package respond

import (
	"fmt"
	"strings"
)

// Template is a rendered customer-facing message.
type Template struct {
	Subject           string `json:"subject"`
	HTMLContent       string `json:"htmlContent"`
	PlainTextFallback string `json:"plainTextFallback"`
}

// UnlockOutcome is the closed set of account-unlock results a template exists for.
type UnlockOutcome string

const (
	UnlockAuto      UnlockOutcome = "auto_unlocked"
	UnlockEscalated UnlockOutcome = "escalated"
	UnlockNotLocked UnlockOutcome = "not_locked"
)

// AccessOutcome covers access-request results.
type AccessOutcome string

const (
	AccessProvisioned     AccessOutcome = "provisioned"
	AccessPendingApproval AccessOutcome = "pending_approval"
)

// CourseOutcome covers course-completion results.
type CourseOutcome string

const (
	CourseAutoCompleted CourseOutcome = "auto_completed"
	CourseEscalated     CourseOutcome = "escalated"
)

// HealthOutcome covers notification-health results.
type HealthOutcome string

const (
	HealthResolved  HealthOutcome = "resolved"
	HealthEscalated HealthOutcome = "escalated"
)

func greetingName(customerName string) string {
	if strings.TrimSpace(customerName) == "" {
		return "there"
	}
	return customerName
}

// htmlShell wraps a body fragment in the shared email layout.
func htmlShell(heading, body string) string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"></head>\n<body>\n")
	sb.WriteString("<div style=\"max-width:600px;margin:0 auto;font-family:sans-serif;line-height:1.6;color:#333\">\n")
	fmt.Fprintf(&sb, "<h1 style=\"font-size:20px\">%s</h1>\n", heading)
	sb.WriteString(body)
	sb.WriteString("<p>Best regards,<br><strong>Support Team</strong></p>\n")
	sb.WriteString("</div>\n</body>\n</html>")
	return sb.String()
}

// AccountUnlock renders the account-unlock acknowledgement.
func AccountUnlock(customerName string, outcome UnlockOutcome) Template {
	name := greetingName(customerName)

	switch outcome {
	case UnlockAuto:
		body := fmt.Sprintf(`<p>Hi %s,</p>
<p>Good news! We've successfully unlocked your account. You can now log in using your existing password.</p>
<p><strong>To prevent future lockouts:</strong></p>
<ul>
<li>Ensure you're entering the correct password</li>
<li>Check that Caps Lock is off</li>
<li>Consider using a password manager</li>
</ul>
`, name)
		return Template{
			Subject:           "Account Unlocked - You Can Now Log In",
			HTMLContent:       htmlShell("Account Unlocked Successfully", body),
			PlainTextFallback: fmt.Sprintf("Hi %s,\n\nGood news! Your account has been unlocked. You can now log in with your existing password.\n\nBest regards,\nSupport Team", name),
		}
	case UnlockNotLocked:
		body := fmt.Sprintf(`<p>Hi %s,</p>
<p>We checked your account and it's not currently locked. You should be able to log in.</p>
<p>If you're still having trouble logging in, please try:</p>
<ul>
<li>Verify you're using the correct password</li>
<li>Check that Caps Lock is off</li>
<li>Clear your browser cache and try again</li>
</ul>
<p>If problems persist, reply to this email and we'll escalate to our IT team.</p>
`, name)
		return Template{
			Subject:           "Account Status: Not Locked",
			HTMLContent:       htmlShell("Account Status", body),
			PlainTextFallback: fmt.Sprintf("Hi %s,\n\nYour account is not locked. Please verify your password and try again.\n\nBest regards,\nSupport Team", name),
		}
	default: // UnlockEscalated
		body := fmt.Sprintf(`<p>Hi %s,</p>
<p>We've received your account unlock request and our IT team is working on it right away.</p>
<p><strong>Your request requires manual verification.</strong> An IT specialist will unlock your account within 1-2 hours.</p>
<p>You'll receive a notification once your account is unlocked.</p>
`, name)
		return Template{
			Subject:           "Account Unlock Request Received",
			HTMLContent:       htmlShell("Account Unlock in Progress", body),
			PlainTextFallback: fmt.Sprintf("Hi %s,\n\nYour account unlock request is being processed by our IT team. You'll receive a notification within 1-2 hours.\n\nBest regards,\nSupport Team", name),
		}
	}
}

// AccessRequest renders the access-request acknowledgement.
func AccessRequest(customerName, accessType string, outcome AccessOutcome) Template {
	name := greetingName(customerName)

	if outcome == AccessProvisioned {
		body := fmt.Sprintf(`<p>Hi %s,</p>
<p>Great news! We've granted you access to <strong>%s</strong>. You can start using it immediately.</p>
<p><strong>Getting started:</strong></p>
<ul>
<li>Log in using your company credentials</li>
<li>Check your email for any additional setup instructions</li>
<li>Contact IT if you encounter any access issues</li>
</ul>
`, name, accessType)
		return Template{
			Subject:           fmt.Sprintf("Access Granted: %s", accessType),
			HTMLContent:       htmlShell("Access Granted", body),
			PlainTextFallback: fmt.Sprintf("Hi %s,\n\nAccess granted to %s! You can start using it immediately.\n\nBest regards,\nSupport Team", name, accessType),
		}
	}

	body := fmt.Sprintf(`<p>Hi %s,</p>
<p>We've received your request for access to <strong>%s</strong>.</p>
<p><strong>Your request is awaiting manager approval.</strong> You'll be notified once approved (typically within 24 hours).</p>
`, name, accessType)
	return Template{
		Subject:           fmt.Sprintf("Access Request Received: %s", accessType),
		HTMLContent:       htmlShell("Access Request Pending", body),
		PlainTextFallback: fmt.Sprintf("Hi %s,\n\nYour access request for %s is pending approval. You'll be notified within 24 hours.\n\nBest regards,\nSupport Team", name, accessType),
	}
}

// CourseCompletion renders the course-completion acknowledgement.
func CourseCompletion(customerName, courseName string, outcome CourseOutcome) Template {
	name := greetingName(customerName)

	if outcome == CourseAutoCompleted {
		body := fmt.Sprintf(`<p>Hi %s,</p>
<p>Great news! We've successfully marked <strong>%s</strong> as complete.</p>
<p>Your certificate will be available in the learning system within 24 hours. You can view your completion status in your dashboard.</p>
`, name, courseName)
		return Template{
			Subject:           fmt.Sprintf("Course Complete: %s", courseName),
			HTMLContent:       htmlShell("Course Marked Complete", body),
			PlainTextFallback: fmt.Sprintf("Hi %s,\n\nCourse %q has been marked complete! Your certificate will be available within 24 hours.\n\nBest regards,\nSupport Team", name, courseName),
		}
	}

	body := fmt.Sprintf(`<p>Hi %s,</p>
<p>We've received your request to mark <strong>%s</strong> as complete.</p>
<p>Our training team will verify your completion and update your record within 24 hours.</p>
`, name, courseName)
	return Template{
		Subject:           fmt.Sprintf("Course Completion Review: %s", courseName),
		HTMLContent:       htmlShell("Course Completion Review", body),
		PlainTextFallback: fmt.Sprintf("Hi %s,\n\nYour request for %q completion is under review. We'll update your record within 24 hours.\n\nBest regards,\nSupport Team", name, courseName),
	}
}

// NotificationHealth renders the email-notification acknowledgement.
func NotificationHealth(customerName string, outcome HealthOutcome) Template {
	name := greetingName(customerName)

	if outcome == HealthResolved {
		body := fmt.Sprintf(`<p>Hi %s,</p>
<p>Our notification service is running normally, so the issue is most likely in your local settings. Please try:</p>
<ul>
<li>Check your spam/junk folder</li>
<li>Verify your notification preferences are enabled</li>
<li>Add our sending address to your safe-senders list</li>
</ul>
<p>Please let us know if you still don't receive expected notifications.</p>
`, name)
		return Template{
			Subject:           "Email Notifications - Resolution Steps",
			HTMLContent:       htmlShell("Email Notification Check", body),
			PlainTextFallback: fmt.Sprintf("Hi %s,\n\nOur notification service is healthy. Check your spam folder and notification preferences; let us know if issues persist.\n\nBest regards,\nSupport Team", name),
		}
	}

	body := fmt.Sprintf(`<p>Hi %s,</p>
<p>We've detected a system-level issue with email notifications and have alerted our operations team.</p>
<p><strong>Our technical team is investigating.</strong> We'll update you as soon as the issue is resolved.</p>
`, name)
	return Template{
		Subject:           "Email Notification Issue - Technical Team Investigating",
		HTMLContent:       htmlShell("Operations Team Notified", body),
		PlainTextFallback: fmt.Sprintf("Hi %s,\n\nWe've alerted our operations team about the email notification issue. We'll update you soon.\n\nBest regards,\nSupport Team", name),
	}
}

// PrinterGuide renders the first-contact printer troubleshooting guide.
func PrinterGuide(customerName string) Template {
	name := greetingName(customerName)

	body := fmt.Sprintf(`<p>Hi %s,</p>
<p>Let's get your printer working again! Follow these troubleshooting steps:</p>
<p><strong>Step 1: Check connections.</strong> Ensure the printer is powered on, the USB/network cable is connected, and the printer shows as "Ready".</p>
<p><strong>Step 2: Check the print queue.</strong> Open "Printers &amp; Scanners", cancel any stuck print jobs, and try printing again.</p>
<p><strong>Step 3: Restart everything.</strong> Turn the printer off for 30 seconds, restart your computer, then turn the printer back on.</p>
<p>If these steps don't resolve the issue, reply to this email and we'll create an IT ticket for in-person support.</p>
`, name)
	return Template{
		Subject:           "Printer Troubleshooting Guide",
		HTMLContent:       htmlShell("Printer Troubleshooting Guide", body),
		PlainTextFallback: fmt.Sprintf("Hi %s,\n\nPrinter troubleshooting:\n1. Check connections and power\n2. Clear print queue\n3. Restart printer and computer\n\nStill not working? Reply for IT support.\n\nBest regards,\nSupport Team", name),
	}
}

// PrinterTicket renders the follow-up acknowledgement after a hardware ticket
// has been filed.
func PrinterTicket(customerName, ticketKey, ticketURL string) Template {
	name := greetingName(customerName)

	body := fmt.Sprintf(`<p>Hi %s,</p>
<p>Since the troubleshooting steps didn't resolve your printer issue, we've created an IT support ticket for in-person assistance.</p>
<p><strong>Ticket:</strong> %s</p>
<p>An IT technician will visit your location within 4 business hours to resolve the printer issue.</p>
<p>Track your ticket: <a href="%s">%s</a></p>
`, name, ticketKey, ticketURL, ticketURL)
	return Template{
		Subject:           "IT Support Ticket Created for Printer Issue",
		HTMLContent:       htmlShell("IT Ticket Created", body),
		PlainTextFallback: fmt.Sprintf("Hi %s,\n\nIT ticket created: %s. Track at: %s\n\nBest regards,\nSupport Team", name, ticketKey, ticketURL),
	}
}

// KnowledgeArticle renders the self-service answer pointing at a
// knowledge-base article.
func KnowledgeArticle(customerName, articleTitle, articleURL string) Template {
	name := greetingName(customerName)

	body := fmt.Sprintf(`<p>Hi %s,</p>
<p>We found a helpful article that should answer your question:</p>
<p><strong>%s</strong></p>
<p><a href="%s">Read the full article</a></p>
<p>If this article doesn't fully answer your question, please reply to this email and a support specialist will assist you directly.</p>
`, name, articleTitle, articleURL)
	return Template{
		Subject:           fmt.Sprintf("Support Article: %s", articleTitle),
		HTMLContent:       htmlShell("Support Article Found", body),
		PlainTextFallback: fmt.Sprintf("Hi %s,\n\nWe found a helpful article: %q\n\nRead it here: %s\n\nIf this doesn't answer your question, reply to this email.\n\nBest regards,\nSupport Team", name, articleTitle, articleURL),
	}
}

// TicketCreated renders the acknowledgement for a general support ticket.
func TicketCreated(customerName, ticketKey, ticketURL string) Template {
	name := greetingName(customerName)

	body := fmt.Sprintf(`<p>Hi %s,</p>
<p>We've created a support ticket for your request: <strong>%s</strong></p>
<p>A support specialist will review your inquiry and get back to you within 24 hours.</p>
<p>You can track your ticket at: <a href="%s">%s</a></p>
`, name, ticketKey, ticketURL, ticketURL)
	return Template{
		Subject:           "Support Request Received",
		HTMLContent:       htmlShell("Support Request Received", body),
		PlainTextFallback: fmt.Sprintf("Hi %s,\n\nSupport ticket created: %s. Track at: %s\n\nBest regards,\nSupport Team", name, ticketKey, ticketURL),
	}
}
