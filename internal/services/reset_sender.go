package services

import "log"

// ResetCodeSender delivers a password reset code out-of-band. Swapping in a
// real email/SMS channel must not change the auth flow contract.
type ResetCodeSender interface {
	SendResetCode(email, code string) error
}

// LogResetSender writes the code to the server log. Stand-in delivery channel
// until a real mail integration lands.
type LogResetSender struct{}

func (LogResetSender) SendResetCode(email, code string) error {
	log.Println("========================================")
	log.Printf("PASSWORD RESET TOKEN FOR %s: %s", email, code)
	log.Println("========================================")
	return nil
}
