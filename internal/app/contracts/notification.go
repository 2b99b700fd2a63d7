package contracts

import (
	"appointmed-service/internal/pkg/dto/requests"
	"context"
)

// WhatsAppService enqueues outbound messages for the delivery worker. Send
// failures never roll back the operation that triggered them.
type WhatsAppService interface {
	SendWhatsAppMessage(ctx context.Context, request *requests.WhatsAppMessage) error
}
