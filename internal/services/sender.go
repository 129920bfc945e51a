package services

import "log"

// ChallengeSender delivers a second-factor code through an out-of-band
// channel. Deliver returns the code to echo back to the caller, or "" when
// the channel is real and the code must stay secret.
type ChallengeSender interface {
	Deliver(email string, code string) (string, error)
}

// ConsoleSender is the demonstration channel: it logs the code and echoes it
// back in the response, because no mail or SMS dispatcher is wired up. A real
// dispatcher replaces it without touching the challenge state machine.
type ConsoleSender struct{}

func (ConsoleSender) Deliver(email string, code string) (string, error) {
	log.Printf("2FA code for %s: %s", email, code)
	return code, nil
}
