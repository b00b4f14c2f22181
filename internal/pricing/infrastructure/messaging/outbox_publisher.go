// Package messaging 基于 Outbox 模式的领域事件发布
// 事件先落库，再由中继异步投递到 Kafka，保证与业务数据同库持久化
package messaging

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quantbase/equitypricing/internal/pricing/domain"
	"github.com/quantbase/equitypricing/pkg/logger"
	"github.com/quantbase/equitypricing/pkg/mq"
)

const (
	statusPending = "PENDING"
	statusSent    = "SENT"
)

// OutboxMessage Outbox 消息实体
type OutboxMessage struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	Topic     string    `gorm:"type:varchar(128);index:idx_status_created,priority:2"`
	Key       string    `gorm:"type:varchar(64)"`
	EventType string    `gorm:"type:varchar(64)"`
	Payload   []byte    `gorm:"type:blob"`
	Status    string    `gorm:"type:varchar(16);index:idx_status_created,priority:1"`
	CreatedAt time.Time
	SentAt    *time.Time
}

// TableName 指定表名
func (OutboxMessage) TableName() string {
	return "pricing_outbox_messages"
}

// OutboxPublisher domain.EventPublisher 的 Outbox 实现
type OutboxPublisher struct {
	db    *gorm.DB
	topic string
}

// NewOutboxPublisher 创建新的 OutboxPublisher 实例
func NewOutboxPublisher(db *gorm.DB, topic string) *OutboxPublisher {
	return &OutboxPublisher{db: db, topic: topic}
}

func (p *OutboxPublisher) store(eventType, key string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	msg := &OutboxMessage{
		ID:        uuid.NewString(),
		Topic:     p.topic,
		Key:       key,
		EventType: eventType,
		Payload:   payload,
		Status:    statusPending,
		CreatedAt: time.Now(),
	}
	return p.db.Create(msg).Error
}

func (p *OutboxPublisher) PublishOptionPriced(event domain.OptionPricedEvent) error {
	return p.store(domain.OptionPricedEventType, event.Symbol, event)
}

func (p *OutboxPublisher) PublishGreeksCalculated(event domain.GreeksCalculatedEvent) error {
	return p.store(domain.GreeksCalculatedEventType, event.Symbol, event)
}

func (p *OutboxPublisher) PublishValidationCompleted(event domain.ValidationCompletedEvent) error {
	return p.store(domain.ValidationCompletedEventType, event.Symbol, event)
}

func (p *OutboxPublisher) PublishPricingError(event domain.PricingErrorEvent) error {
	return p.store(domain.PricingErrorEventType, event.Symbol, event)
}

// OutboxRelay 轮询 Outbox 表并把待发消息投递到 Kafka
type OutboxRelay struct {
	db        *gorm.DB
	producer  *mq.KafkaProducer
	interval  time.Duration
	batchSize int
}

// NewOutboxRelay 创建新的 OutboxRelay 实例
func NewOutboxRelay(db *gorm.DB, producer *mq.KafkaProducer, interval time.Duration, batchSize int) *OutboxRelay {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return &OutboxRelay{
		db:        db,
		producer:  producer,
		interval:  interval,
		batchSize: batchSize,
	}
}

// Start 启动中继循环，ctx 取消后返回
func (r *OutboxRelay) Start(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.relayOnce(ctx); err != nil {
				logger.Error(ctx, "outbox relay iteration failed", "error", err)
			}
		}
	}
}

// relayOnce 投递一批待发消息，逐条发送并标记
func (r *OutboxRelay) relayOnce(ctx context.Context) error {
	var msgs []OutboxMessage
	err := r.db.WithContext(ctx).
		Where("status = ?", statusPending).
		Order("created_at ASC").
		Limit(r.batchSize).
		Find(&msgs).Error
	if err != nil {
		return err
	}

	for _, msg := range msgs {
		if err := r.producer.SendRaw(ctx, msg.Topic, msg.Key, msg.Payload); err != nil {
			// 保持 PENDING，下一轮重试
			logger.Warn(ctx, "outbox message delivery failed",
				"message_id", msg.ID,
				"event_type", msg.EventType,
				"error", err,
			)
			continue
		}

		now := time.Now()
		if err := r.db.WithContext(ctx).Model(&OutboxMessage{}).
			Where("id = ?", msg.ID).
			Updates(map[string]any{"status": statusSent, "sent_at": &now}).Error; err != nil {
			return err
		}
	}
	return nil
}
