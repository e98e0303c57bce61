package observer

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// ModelCallEvent describes one model call's lifecycle
type ModelCallEvent struct {
	EventType      EventType              `json:"event_type"`
	Task           string                 `json:"task"`
	Model          string                 `json:"model"`
	Timestamp      time.Time              `json:"timestamp"`
	ProcessingTime time.Duration          `json:"processing_time"`
	Success        bool                   `json:"success"`
	ErrorMessage   string                 `json:"error_message,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// EventType represents the type of model call event
type EventType string

const (
	// CallStarted when a model call begins
	CallStarted EventType = "model_call_started"
	// CallCompleted when a model call returns and normalizes cleanly
	CallCompleted EventType = "model_call_completed"
	// CallFailed when a model call or its normalization fails
	CallFailed EventType = "model_call_failed"
)

// Observer defines the interface for event observers
type Observer interface {
	OnEvent(ctx context.Context, event ModelCallEvent)
	GetObserverName() string
}

// Subject defines the interface for event publishers
type Subject interface {
	Subscribe(observer Observer)
	NotifyObservers(ctx context.Context, event ModelCallEvent)
}

// LoggingObserver logs model call events
type LoggingObserver struct {
	logger *logrus.Logger
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(logger *logrus.Logger) Observer {
	return &LoggingObserver{logger: logger}
}

// OnEvent handles events by logging them
func (o *LoggingObserver) OnEvent(ctx context.Context, event ModelCallEvent) {
	fields := logrus.Fields{
		"event_type":      event.EventType,
		"task":            event.Task,
		"model":           event.Model,
		"processing_time": event.ProcessingTime,
		"success":         event.Success,
	}
	if event.ErrorMessage != "" {
		fields["error"] = event.ErrorMessage
	}
	for k, v := range event.Metadata {
		fields[k] = v
	}

	switch event.EventType {
	case CallStarted:
		o.logger.WithFields(fields).Debug("Model call started")
	case CallCompleted:
		o.logger.WithFields(fields).Info("Model call completed")
	case CallFailed:
		o.logger.WithFields(fields).Error("Model call failed")
	default:
		o.logger.WithFields(fields).Info("Model call event occurred")
	}
}

// GetObserverName returns the observer name
func (o *LoggingObserver) GetObserverName() string {
	return "logging_observer"
}

// MetricsObserver collects counters from model call events
type MetricsObserver struct {
	mu              sync.RWMutex
	totalCalls      int64
	successfulCalls int64
	failedCalls     int64
	totalDuration   time.Duration
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{}
}

// OnEvent handles events by updating counters
func (o *MetricsObserver) OnEvent(ctx context.Context, event ModelCallEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	switch event.EventType {
	case CallStarted:
		o.totalCalls++
	case CallCompleted:
		o.successfulCalls++
		o.totalDuration += event.ProcessingTime
	case CallFailed:
		o.failedCalls++
	}
}

// GetObserverName returns the observer name
func (o *MetricsObserver) GetObserverName() string {
	return "metrics_observer"
}

// GetMetrics returns current counters
func (o *MetricsObserver) GetMetrics() map[string]interface{} {
	o.mu.RLock()
	defer o.mu.RUnlock()

	avg := time.Duration(0)
	if o.successfulCalls > 0 {
		avg = o.totalDuration / time.Duration(o.successfulCalls)
	}
	return map[string]interface{}{
		"total_calls":         o.totalCalls,
		"successful_calls":    o.successfulCalls,
		"failed_calls":        o.failedCalls,
		"avg_processing_time": avg,
	}
}

// EventPublisher implements the Subject interface
type EventPublisher struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher() *EventPublisher {
	return &EventPublisher{}
}

// Subscribe adds an observer
func (p *EventPublisher) Subscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, observer)
}

// NotifyObservers notifies all observers of an event
func (p *EventPublisher) NotifyObservers(ctx context.Context, event ModelCallEvent) {
	p.mu.RLock()
	observers := make([]Observer, len(p.observers))
	copy(observers, p.observers)
	p.mu.RUnlock()

	for _, observer := range observers {
		func(obs Observer) {
			defer func() {
				if r := recover(); r != nil {
					logrus.WithField("observer", obs.GetObserverName()).
						WithField("panic", r).
						Error("Observer panicked while handling event")
				}
			}()
			obs.OnEvent(ctx, event)
		}(observer)
	}
}
