// cmd/announcer/discord.go
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/shiburizu/concerto-server/internal/cache"
)

const (
	embedColor = 9906987
	maxEmbeds  = 10
)

// Webhook is one Discord message kept up to date by editing it in place.
type Webhook struct {
	URL       string
	MessageID string
}

// Endpoint is the PATCH target for the webhook's message.
func (w Webhook) Endpoint() string {
	return strings.TrimSuffix(w.URL, "/") + "/messages/" + w.MessageID
}

// webhooksFromEnv reads DISCORD_0/MSG_0, DISCORD_1/MSG_1, ... until a pair is missing.
func webhooksFromEnv() []Webhook {
	var hooks []Webhook
	for n := 0; ; n++ {
		url, ok := os.LookupEnv("DISCORD_" + strconv.Itoa(n))
		if !ok {
			break
		}
		msg, ok := os.LookupEnv("MSG_" + strconv.Itoa(n))
		if !ok {
			break
		}
		hooks = append(hooks, Webhook{URL: url, MessageID: msg})
	}
	return hooks
}

type embedField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type embed struct {
	Title  string       `json:"title"`
	URL    string       `json:"url"`
	Color  int          `json:"color"`
	Fields []embedField `json:"fields"`
}

// message is the body of a Discord "edit webhook message" request.
type message struct {
	Content string  `json:"content"`
	Embeds  []embed `json:"embeds"`
}

// render builds the public lobby message for a.
func render(a cache.Announcement, inviteBase, homepage string) message {
	m := message{
		Content: fmt.Sprintf("**__Public Lobbies__**\nLobbies created with Concerto: <%s>\n%d playing now.\n", homepage, a.Players),
		Embeds:  []embed{},
	}
	for _, l := range a.Lobbies {
		if len(m.Embeds) >= maxEmbeds {
			break
		}
		code := strconv.Itoa(l.Code)
		e := embed{
			Title:  "Lobby #" + code,
			URL:    inviteBase + code,
			Color:  embedColor,
			Fields: []embedField{},
		}
		var playing strings.Builder
		for _, p := range l.Playing {
			playing.WriteString(p[0] + " vs " + p[1] + "\n")
		}
		if playing.Len() > 0 {
			e.Fields = append(e.Fields, embedField{Name: "Playing", Value: playing.String()})
		}
		if len(l.Idle) > 0 {
			e.Fields = append(e.Fields, embedField{Name: "Idle", Value: strings.Join(l.Idle, "\n") + "\n"})
		}
		m.Embeds = append(m.Embeds, e)
	}
	if len(a.Lobbies) > 0 {
		m.Content += "Click on the lobby name to join."
	}
	return m
}

// patch edits the webhook's message to m.
func patch(ctx context.Context, client *http.Client, hook Webhook, m message) error {
	body, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, hook.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook %s answered %s", hook.MessageID, resp.Status)
	}
	return nil
}
