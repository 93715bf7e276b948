package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
)

type fakeSES struct {
	input *sesv2.SendEmailInput
	out   *sesv2.SendEmailOutput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, input *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = input
	return f.out, f.err
}

func TestSESTransport_Send(t *testing.T) {
	ses := &fakeSES{out: &sesv2.SendEmailOutput{MessageId: aws.String("ses-abc")}}
	tr := &SESTransport{client: ses}

	id, err := tr.Send(context.Background(), testMessage())
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if id != "ses-abc" {
		t.Errorf("id = %q, want ses-abc", id)
	}

	if got := aws.ToString(ses.input.FromEmailAddress); got != "Example <noreply@example.com>" {
		t.Errorf("from = %q", got)
	}
	if got := ses.input.Destination.ToAddresses; len(got) != 1 || got[0] != "user@example.com" {
		t.Errorf("to = %v", got)
	}
	body := ses.input.Content.Simple.Body
	if body.Text == nil || aws.ToString(body.Text.Data) != "hi" {
		t.Errorf("text body = %v, want plain-text alternative set", body.Text)
	}
}

func TestSESTransport_BareFromAddress(t *testing.T) {
	ses := &fakeSES{out: &sesv2.SendEmailOutput{MessageId: aws.String("ses-abc")}}
	tr := &SESTransport{client: ses}

	msg := testMessage()
	msg.FromName = ""
	if _, err := tr.Send(context.Background(), msg); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got := aws.ToString(ses.input.FromEmailAddress); got != "noreply@example.com" {
		t.Errorf("from = %q, want bare address", got)
	}
}

func TestSESTransport_SendError(t *testing.T) {
	ses := &fakeSES{err: errors.New("AccessDenied")}
	tr := &SESTransport{client: ses}

	if _, err := tr.Send(context.Background(), testMessage()); err == nil {
		t.Fatal("want error from SES client")
	}
}
