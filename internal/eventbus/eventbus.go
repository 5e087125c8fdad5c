package eventbus

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/shacklabs/house-gateway/internal/logging"
)

// ActionEvent — одно успешно замайненное игровое действие.
// Публикуется для внешних потребителей (индексация, аналитика, нотификации);
// HTTP-ответ пользователю от публикации не зависит.
type ActionEvent struct {
	Action    string    `json:"action"`
	User      string    `json:"user"`
	TokenID   string    `json:"token_id"`
	TxHash    string    `json:"tx_hash"`
	Block     uint64    `json:"block"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher публикует события действий. Реализации: NATS и no-op.
type Publisher interface {
	PublishAction(ev ActionEvent)
	Close()
}

// NoopPublisher используется, когда шина событий не сконфигурирована.
type NoopPublisher struct{}

func (NoopPublisher) PublishAction(ActionEvent) {}
func (NoopPublisher) Close()                    {}

// NatsPublisher шлёт события в сабжекты gateway.actions.<action>.
type NatsPublisher struct {
	conn *nats.Conn
}

// NewNatsPublisher подключается к NATS-серверу.
func NewNatsPublisher(url string) (*NatsPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("house-gateway"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("подключение к NATS: %w", err)
	}
	return &NatsPublisher{conn: conn}, nil
}

// PublishAction публикует событие fire-and-forget; ошибка только логируется.
func (p *NatsPublisher) PublishAction(ev ActionEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		logging.Error("сериализация события %s: %v", ev.Action, err)
		return
	}
	subject := "gateway.actions." + ev.Action
	if err := p.conn.Publish(subject, data); err != nil {
		logging.Warn("публикация события %s не удалась: %v", subject, err)
	}
}

// Close дожидается отправки буфера и закрывает соединение.
func (p *NatsPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		logging.Warn("drain NATS: %v", err)
	}
}
