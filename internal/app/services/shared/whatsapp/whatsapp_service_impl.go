package whatsapp

import (
	"context"
	"fmt"
	"sync"

	"appointmed-service/internal/app/contracts"
	"appointmed-service/internal/app/services/shared/ratelimiter"
	"appointmed-service/internal/pkg/constvars"
	"appointmed-service/internal/pkg/dto/requests"
	"appointmed-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const outboundLimiterGroup = "whatsapp-outbound"

type whatsAppService struct {
	Channel      *amqp091.Channel
	Queue        string
	Limiter      *ratelimiter.ResourceLimiter
	MaxPerMinute int
	Log          *zap.Logger
}

var (
	whatsAppServiceInstance contracts.WhatsAppService
	onceWhatsAppService     sync.Once
	whatsAppServiceError    error
)

func NewWhatsAppService(rabbitMQConnection *amqp091.Connection, limiter *ratelimiter.ResourceLimiter, maxPerMinute int, logger *zap.Logger, queue string) (contracts.WhatsAppService, error) {
	onceWhatsAppService.Do(func() {
		channel, err := rabbitMQConnection.Channel()
		if err != nil {
			whatsAppServiceError = err
			return
		}
		instance := &whatsAppService{
			Channel:      channel,
			Queue:        queue,
			Limiter:      limiter,
			MaxPerMinute: maxPerMinute,
			Log:          logger,
		}
		whatsAppServiceInstance = instance
	})
	return whatsAppServiceInstance, whatsAppServiceError
}

func (s *whatsAppService) SendWhatsAppMessage(ctx context.Context, request *requests.WhatsAppMessage) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	s.Log.Info("whatsAppService.SendWhatsAppMessage called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	// per-recipient quota keeps a reminder storm from flooding one phone
	if s.Limiter != nil && s.MaxPerMinute > 0 {
		allowed, err := s.Limiter.ApplyResourceLimiter(ctx, &ratelimiter.ApplyResourceLimiterInput{
			ResourceName:      request.To,
			LimiterGroupName:  outboundLimiterGroup,
			WindowDurationSec: 60,
			MaxQuota:          s.MaxPerMinute,
		})
		if err != nil {
			s.Log.Warn("whatsAppService.SendWhatsAppMessage limiter unavailable, sending anyway",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		} else if !allowed.Allowed {
			s.Log.Warn("whatsAppService.SendWhatsAppMessage recipient quota exhausted",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Int("retry_after_secs", allowed.RetryAfterSecs),
			)
			return exceptions.ErrRateLimitExceeded(fmt.Errorf("retry after %d seconds", allowed.RetryAfterSecs))
		}
	}

	body, err := json.Marshal(request)
	if err != nil {
		s.Log.Error("whatsAppService.SendWhatsAppMessage error marshaling JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrCannotMarshalJSON(err)
	}

	headers := amqp091.Table{
		"message_type":     "JSON",
		"requeue_strategy": "DROP",
	}

	message := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		Priority:     0,
		Headers:      headers,
	}

	s.Log.Info("whatsAppService.SendWhatsAppMessage publishing message",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueNameKey, s.Queue),
	)

	err = s.Channel.PublishWithContext(ctx, "", s.Queue, false, false, message)
	if err != nil {
		s.Log.Error("whatsAppService.SendWhatsAppMessage error publishing message",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQueueNameKey, s.Queue),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublishMessage(err, s.Queue)
	}

	s.Log.Info("whatsAppService.SendWhatsAppMessage succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueNameKey, s.Queue),
	)

	return nil
}
