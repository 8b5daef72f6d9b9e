package hooks

import (
	"webprint/internal/notification"
	"webprint/pkg/scanner"

	log "github.com/sirupsen/logrus"
)

// NotifierHook announces a finished scan batch on Discord
type NotifierHook struct{}

func NewNotifierHook() *NotifierHook {
	return &NotifierHook{}
}

func (n *NotifierHook) Name() string {
	return "notification"
}

func (n *NotifierHook) Description() string {
	return "Sends a Discord notification when a scan batch completes"
}

func (n *NotifierHook) PostHook(ctx scanner.HookContext) error {
	discord, err := notification.NewNotificationClient()
	if err != nil {
		log.Errorf("Error creating discord client: %v", err)
		return err
	}
	defer discord.Close()

	if err := discord.SendScanCompleteMessage(ctx.OutputDir, ctx.Summary.Total, ctx.Summary.Failed); err != nil {
		log.Errorf("Failed to send Discord notification: %v", err)
		return err
	}

	return nil
}
