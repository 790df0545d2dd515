package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendEscalationNotice(toEmail, sessionId, severity, reason string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendEscalationNotice(toEmail, sessionId, severity, reason string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("[%s] Support escalation for session %s", severity, sessionId))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>A chat session needs a human agent</h2>
			<p><b>Session:</b> %s</p>
			<p><b>Severity:</b> %s</p>
			<p><b>Reason:</b> %s</p>
			<p>Open the agent console to review the full conversation.</p>
		</div>
	`, sessionId, severity, reason)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send escalation notice to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Escalation notice sent to %s\n", toEmail)
	return nil
}
