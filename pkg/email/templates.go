package email

import (
	"fmt"
	"time"
)

// PasswordResetData contains the data needed for the password reset email.
type PasswordResetData struct {
	Name     string
	Email    string
	ResetURL string
	AppName  string
	TTL      time.Duration
}

// BuildPasswordResetEmail creates the message sent by the forgot-password flow.
func BuildPasswordResetEmail(data PasswordResetData) Message {
	appName := data.AppName
	if appName == "" {
		appName = "MindManager"
	}

	name := data.Name
	if name == "" {
		name = "there"
	}

	minutes := int(data.TTL.Minutes())
	if minutes <= 0 {
		minutes = 30
	}

	subject := fmt.Sprintf("Reset your %s password", appName)

	textBody := fmt.Sprintf(`Hi %s,

We received a request to reset your %s password.

Use the link below to choose a new password:
%s

This link expires in %d minutes. If you did not request a reset, you can
safely ignore this email.

Thanks,
The %s Team`,
		name, appName, data.ResetURL, minutes, appName)

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #2563eb;">Hi %s,</h2>
    <p>We received a request to reset your %s password.</p>
    <p style="text-align: center; margin: 30px 0;">
        <a href="%s" style="background-color: #2563eb; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Reset Password</a>
    </p>
    <p style="color: #6b7280; font-size: 14px;"><em>This link expires in %d minutes. If you did not request a reset, you can safely ignore this email.</em></p>
    <p style="color: #6b7280; font-size: 14px; margin-top: 30px;">Thanks,<br>The %s Team</p>
</body>
</html>`,
		name, appName, data.ResetURL, minutes, appName)

	return Message{
		To:       []string{data.Email},
		Subject:  subject,
		TextBody: textBody,
		HTMLBody: htmlBody,
	}
}

// AppointmentReminderData contains the data needed for appointment reminders.
type AppointmentReminderData struct {
	Name            string
	Email           string
	AppointmentDate time.Time
	Psychologist    string
	AppName         string
}

// BuildAppointmentReminderEmail creates the reminder message staged when an
// appointment is scheduled.
func BuildAppointmentReminderEmail(data AppointmentReminderData) Message {
	appName := data.AppName
	if appName == "" {
		appName = "MindManager"
	}

	name := data.Name
	if name == "" {
		name = "there"
	}

	when := data.AppointmentDate.Format("Monday, 02 January 2006 at 15:04")

	subject := fmt.Sprintf("Appointment reminder - %s", when)

	textBody := fmt.Sprintf(`Hi %s,

This is a reminder of your upcoming appointment:

Date: %s
Psychologist: %s

If you cannot attend, please cancel or reschedule in advance.

Thanks,
The %s Team`,
		name, when, data.Psychologist, appName)

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #2563eb;">Hi %s,</h2>
    <p>This is a reminder of your upcoming appointment:</p>
    <p style="background-color: #f3f4f6; padding: 10px 15px; border-radius: 4px;">
        <strong>Date:</strong> %s<br>
        <strong>Psychologist:</strong> %s
    </p>
    <p style="color: #6b7280; font-size: 14px;"><em>If you cannot attend, please cancel or reschedule in advance.</em></p>
    <p style="color: #6b7280; font-size: 14px; margin-top: 30px;">Thanks,<br>The %s Team</p>
</body>
</html>`,
		name, when, data.Psychologist, appName)

	return Message{
		To:       []string{data.Email},
		Subject:  subject,
		TextBody: textBody,
		HTMLBody: htmlBody,
	}
}
