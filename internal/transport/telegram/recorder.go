package telegram

import (
	"bytes"
	"io"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// maxRecordedBody bounds how much of a response is kept for error reports.
const maxRecordedBody = 64 << 10

// recordingClient keeps the status and raw body of the last response so a
// failed send can be reported verbatim. tgbotapi only exposes the decoded
// description.
type recordingClient struct {
	next   tgbotapi.HTTPClient
	status int
	body   []byte
}

func (c *recordingClient) Do(req *http.Request) (*http.Response, error) {
	resp, err := c.next.Do(req)
	if err != nil {
		return nil, err
	}

	c.status = resp.StatusCode
	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxRecordedBody))
	_ = resp.Body.Close()
	c.body = body
	if readErr != nil {
		return nil, readErr
	}

	resp.Body = io.NopCloser(bytes.NewReader(body))
	return resp, nil
}

func (c *recordingClient) reset() {
	c.status = 0
	c.body = nil
}

func (c *recordingClient) last() (int, string) {
	return c.status, string(c.body)
}
