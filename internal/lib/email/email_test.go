package email

import (
	"errors"
	"testing"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []*resend.SendEmailRequest
	err  error
}

func (f *fakeSender) Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, params)
	return &resend.SendEmailResponse{Id: "email-1"}, nil
}

func TestRender_PreviewData(t *testing.T) {
	for name, data := range PreviewData {
		html, err := Render(name, data)
		require.NoError(t, err, name)
		for _, v := range data {
			assert.Contains(t, html, v)
		}
	}
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, err := Render("missing", nil)
	assert.Error(t, err)
}

func TestSendWelcomeEmail(t *testing.T) {
	fake := &fakeSender{}
	logger := zerolog.Nop()
	client := &Client{emails: fake, from: "Print Gallery <hello@example.com>", logger: &logger}

	require.NoError(t, client.SendWelcomeEmail("alice@example.com", "alice", "Alice <Liddell>"))
	require.Len(t, fake.sent, 1)

	req := fake.sent[0]
	assert.Equal(t, []string{"alice@example.com"}, req.To)
	assert.Equal(t, "Print Gallery <hello@example.com>", req.From)
	assert.Equal(t, "Welcome to Print Gallery!", req.Subject)
	assert.Contains(t, req.Html, "@alice")
	assert.Contains(t, req.Html, "Alice &lt;Liddell&gt;")
}

func TestSendEmail_ProviderError(t *testing.T) {
	logger := zerolog.Nop()
	client := &Client{emails: &fakeSender{err: errors.New("rate limited")}, logger: &logger}

	err := client.SendWelcomeEmail("alice@example.com", "alice", "Alice")
	assert.ErrorContains(t, err, "rate limited")
}
