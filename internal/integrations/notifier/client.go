package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client отправляет уведомления о бронированиях на вебхук
type Client struct {
	url        string
	secret     string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента вебхука
func NewClient(url, secret string, timeout time.Duration, log Logger) *Client {
	return &Client{
		url:    url,
		secret: secret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Notify отправляет уведомление о созданном бронировании.
// Любая ошибка доставки оборачивается в ErrNotificationFailed.
func (c *Client) Notify(ctx context.Context, bookingID string, summary Summary) error {
	summary.BookingID = bookingID

	body, err := json.Marshal(envelope{Event: EventBookingCreated, Booking: summary})
	if err != nil {
		return fmt.Errorf("%w: %w: failed to encode payload: %v", ErrNotificationFailed, ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %w: failed to create request: %v", ErrNotificationFailed, ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Event-Type", EventBookingCreated)
	if c.secret != "" {
		req.Header.Set("X-Signature", Sign(c.secret, body))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrNotificationFailed, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrNotificationFailed, resp.StatusCode, string(data))
	}

	c.log.Info("Notifier: booking=%s delivered to webhook", bookingID)
	return nil
}

// Nop не отправляет уведомления, используется при выключенном вебхуке
type Nop struct{}

// Notify ничего не делает
func (Nop) Notify(context.Context, string, Summary) error {
	return nil
}
