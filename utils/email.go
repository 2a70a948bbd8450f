package utils

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/gomail.v2"
)

// SendPasswordResetEmail mails a temporary password to a member
func SendPasswordResetEmail(email, firstName, tempPassword string) {
	body := fmt.Sprintf("Dear %s,\n\n"+
		"Your password has been reset. Your new temporary password is: %s\n"+
		"Please log in with this password and change it immediately under your profile screen for security reasons.\n\n"+
		"Manpower Group Savings", firstName, tempPassword)

	sendEmail(email, "Password Reset", body)
}

// SendLoanDecisionEmail notifies a borrower that their loan was approved or rejected
func SendLoanDecisionEmail(email, firstName, status, amount string) {
	body := fmt.Sprintf("Dear %s,\n\n"+
		"Your loan request of KES %s has been %s.\n\n"+
		"Manpower Group Savings", firstName, amount, status)

	sendEmail(email, "Loan "+status, body)
}

func sendEmail(to, subject, body string) {
	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_SENDER"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(
		os.Getenv("SMTP_HOST"),
		465,
		os.Getenv("SMTP_USER"),
		os.Getenv("SMTP_PASS"),
	)

	if err := d.DialAndSend(m); err != nil {
		log.Printf("Failed to send email to %s: %v", to, err)
		return
	}

	log.Printf("Email successfully sent to %s", to)
}
