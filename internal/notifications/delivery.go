package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"govpub/internal/jobs"
)

// DeliveryHandler handles deliver_mail jobs. Messages are written to the log;
// there is no mail transport.
func DeliveryHandler(logger *slog.Logger) jobs.HandlerFunc {
	return func(ctx context.Context, job jobs.Job) error {
		var msg Message
		if err := json.Unmarshal(job.Payload, &msg); err != nil {
			return fmt.Errorf("decode mail: %w", err)
		}
		filenames := make([]string, 0, len(msg.Attachments))
		for _, a := range msg.Attachments {
			filenames = append(filenames, a.Filename)
		}
		logger.InfoContext(ctx, "mail delivered",
			"job_id", job.ID,
			"kind", msg.Kind,
			"from", msg.From,
			"to", msg.To,
			"subject", msg.Subject,
			"attachments", filenames,
		)
		return nil
	}
}
