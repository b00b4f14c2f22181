package domain

// EventPublisher 事件发布者接口
type EventPublisher interface {
	// PublishOptionPriced 发布期权定价完成事件
	PublishOptionPriced(event OptionPricedEvent) error

	// PublishGreeksCalculated 发布希腊字母计算完成事件
	PublishGreeksCalculated(event GreeksCalculatedEvent) error

	// PublishValidationCompleted 发布校验完成事件
	PublishValidationCompleted(event ValidationCompletedEvent) error

	// PublishPricingError 发布定价失败事件
	PublishPricingError(event PricingErrorEvent) error
}
