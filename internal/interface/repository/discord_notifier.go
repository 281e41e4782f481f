package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"eda-booking-service/internal/domain/entity"
	"eda-booking-service/internal/domain/repository"
	"eda-booking-service/pkg/logger"
)

const embedColor = 3447003

// DiscordNotifier posts workflow events to a Discord webhook. Delivery is
// best-effort: every failure mode is logged and collapsed into the boolean
// return so the workflow never sees an error from this path.
type DiscordNotifier struct {
	logger     logger.Logger
	webhookURL string
	client     *http.Client
}

// NewDiscordNotifier creates a new Discord webhook notifier
func NewDiscordNotifier(webhookURL string, logger logger.Logger) repository.Notifier {
	return &DiscordNotifier{
		logger:     logger,
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordEmbedFooter struct {
	Text string `json:"text"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Color       int                 `json:"color"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
	Footer      discordEmbedFooter  `json:"footer"`
	Timestamp   string              `json:"timestamp"`
}

type discordMessage struct {
	Embeds []discordEmbed `json:"embeds"`
}

// Send posts one embed describing the event and reports whether the remote
// call succeeded
func (n *DiscordNotifier) Send(ctx context.Context, notification *entity.Notification) bool {
	if n.webhookURL == "" {
		n.logger.Warn("Discord webhook URL not configured, skipping notification",
			"title", notification.Title)
		return false
	}

	fields := make([]discordEmbedField, 0, len(notification.Fields))
	for _, f := range notification.Fields {
		value := f.Value
		if value == "" {
			value = "N/A"
		}
		fields = append(fields, discordEmbedField{
			Name:   f.Name,
			Value:  value,
			Inline: f.Inline,
		})
	}

	msg := discordMessage{
		Embeds: []discordEmbed{{
			Title:       notification.Title,
			Description: notification.Description,
			Color:       embedColor,
			Fields:      fields,
			Footer: discordEmbedFooter{
				Text: fmt.Sprintf("ID: %s", notification.RecordID),
			},
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}},
	}

	jsonData, err := json.Marshal(msg)
	if err != nil {
		n.logger.Error("Failed to marshal Discord payload",
			"title", notification.Title,
			"error", err)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, "POST", n.webhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		n.logger.Error("Failed to create Discord request", "error", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Error("Failed to send Discord notification",
			"title", notification.Title,
			"error", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		n.logger.Error("Discord webhook rejected notification",
			"title", notification.Title,
			"status", resp.StatusCode,
			"body", errorBody)
		return false
	}

	n.logger.Info("Discord notification sent",
		"title", notification.Title,
		"recordType", notification.RecordType,
		"recordId", notification.RecordID)

	return true
}
