package port

//go:generate mockgen -source=mailer_port.go -destination=../mocks/mock_mailer_port.go

import "context"

// EmailSender defines the outbound email channel used for passcode
// dispatch.
type EmailSender interface {
	Send(ctx context.Context, to, subject, bodyHTML string) error
}
