package validator

import (
	"context"
	"errors"
	"net"
	"net/smtp"
	"net/textproto"
	"time"
)

// ErrRecipientRejected is returned by the prober when the mail exchanger
// gives a permanent (5xx) rejection for the recipient.
var ErrRecipientRejected = errors.New("recipient rejected by mail exchanger")

// netProber performs a minimal SMTP conversation: HELO, MAIL FROM, RCPT TO,
// QUIT. It never sends message data.
type netProber struct {
	helo    string
	timeout time.Duration
}

func (p *netProber) Probe(ctx context.Context, host, from, to string) error {
	timeout := p.timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(host, "25"))
	if err != nil {
		return err
	}
	conn.SetDeadline(time.Now().Add(timeout))

	c, err := smtp.NewClient(conn, host)
	if err != nil {
		conn.Close()
		return err
	}
	defer c.Close()

	if err := c.Hello(p.helo); err != nil {
		return err
	}
	if err := c.Mail(from); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		var tpErr *textproto.Error
		if errors.As(err, &tpErr) && tpErr.Code >= 500 {
			return ErrRecipientRejected
		}
		return err
	}
	return c.Quit()
}
