package mail

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	applog "github.com/janisto/travel-profiles/internal/platform/logging"
)

// ErrUnavailable indicates the outbox could not be reached and the send may be retried.
var ErrUnavailable = errors.New("mail outbox unavailable")

// FirestoreOutbox queues messages as documents for the Firebase Trigger Email extension.
type FirestoreOutbox struct {
	client     *firestore.Client
	collection string
}

var _ Mailer = (*FirestoreOutbox)(nil)

func NewFirestoreOutbox(client *firestore.Client, collection string) *FirestoreOutbox {
	return &FirestoreOutbox{client: client, collection: collection}
}

type outboxMessage struct {
	Subject string `firestore:"subject"`
	Text    string `firestore:"text"`
}

type outboxDocument struct {
	To        string        `firestore:"to"`
	Message   outboxMessage `firestore:"message"`
	CreatedAt any           `firestore:"createdAt"`
}

func (o *FirestoreOutbox) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	doc := outboxDocument{
		To:        msg.To,
		Message:   outboxMessage{Subject: msg.Subject, Text: msg.Text},
		CreatedAt: firestore.ServerTimestamp,
	}
	ref := o.client.Collection(o.collection).NewDoc()
	if _, err := ref.Create(ctx, doc); err != nil {
		applog.LogError(ctx, "mail outbox write failed", err)
		return categorizeError(err)
	}
	return nil
}

func categorizeError(err error) error {
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	default:
		return fmt.Errorf("queue mail: %w", err)
	}
}
