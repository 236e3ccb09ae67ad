// Package e2e drives a running arcade server over HTTP the way the browser
// and the remote scoreboard backend do.
package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/retrogamehub/arcade/api"
	"github.com/retrogamehub/arcade/contact"
	"github.com/retrogamehub/arcade/scoreboard"
)

type client struct {
	apiURL string
	apiKey string
	client *http.Client
}

func (c *client) boardURL(board string) string {
	return fmt.Sprintf("%s/scores/%s", c.apiURL, board)
}

func (c *client) scores(board string) ([]scoreboard.Entry, error) {
	resp, err := c.client.Get(c.boardURL(board))
	if err != nil {
		return nil, err
	}
	doc := api.Document{}
	err = json.NewDecoder(resp.Body).Decode(&doc)
	if cErr := resp.Body.Close(); err == nil {
		err = cErr
	}
	return doc.Record, err
}

func (c *client) saveScore(board string, e scoreboard.Entry) (int, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequest(http.MethodPost, c.boardURL(board), bytes.NewReader(data))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set(api.AccessKeyHeader, c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	return resp.StatusCode, resp.Body.Close()
}

func (c *client) sendContact(name, email, message string) (int, *contact.Response, error) {
	form := url.Values{"name": {name}, "email": {email}, "message": {message}}
	resp, err := c.client.Post(c.apiURL+"/contact", "application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()))
	if err != nil {
		return 0, nil, err
	}
	res := &contact.Response{}
	err = json.NewDecoder(resp.Body).Decode(res)
	if cErr := resp.Body.Close(); err == nil {
		err = cErr
	}
	return resp.StatusCode, res, err
}
