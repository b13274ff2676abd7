package lessons_notifier_service

import (
	"context"
	"log/slog"
	"time"

	"github.com/N08I40K/schedule-parser-next/domain/app"
	"github.com/N08I40K/schedule-parser-next/internal/metrics"
)

const (
	tickInterval = time.Minute

	NotificationLessonsStart = "lessons-start"
)

// LessonsNotifier раз в минуту проверяет время и в заданную минуту суток
// рассылает уведомление о начале занятий
type LessonsNotifier struct {
	hour, minute int
	loc          *time.Location
	topic        string
	dispatcher   app.NotificationDispatcher
	metrics      *metrics.Metrics
	log          *slog.Logger

	now       func() time.Time
	firedDate string
}

func New(
	hour, minute int,
	loc *time.Location,
	topic string,
	dispatcher app.NotificationDispatcher,
	metrics *metrics.Metrics,
	log *slog.Logger,
) *LessonsNotifier {
	if loc == nil {
		loc = time.UTC
	}
	return &LessonsNotifier{
		hour:       hour,
		minute:     minute,
		loc:        loc,
		topic:      topic,
		dispatcher: dispatcher,
		metrics:    metrics,
		log:        log,
		now:        time.Now,
	}
}

// Tick одна проверка; true, если уведомление отправлено
func (this *LessonsNotifier) Tick(ctx context.Context) bool {
	now := this.now().In(this.loc)
	if now.Hour() != this.hour || now.Minute() != this.minute {
		return false
	}

	// тикер может сработать дважды в одну минуту
	date := now.Format(time.DateOnly)
	if this.firedDate == date {
		return false
	}
	this.firedDate = date

	payload := map[string]string{"type": NotificationLessonsStart}
	err := this.dispatcher.SendByTopic(ctx, this.topic, payload)
	this.metrics.ObserveNotification(NotificationLessonsStart, err)
	if err != nil {
		this.log.Error("lessons-start notification failed", slog.Any("error", err))
		return false
	}
	this.log.Info("lessons-start notification sent", slog.String("topic", this.topic))
	return true
}

// Run блокируется до отмены ctx
func (this *LessonsNotifier) Run(ctx context.Context) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			this.Tick(ctx)
		}
	}
}
