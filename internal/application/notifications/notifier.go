package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"wasteline-backend/internal/domain"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const brevoAPI = "https://api.brevo.com/v3/smtp/email"

// registrationQueue is the Redis list downstream consumers read registration
// events from. Push is best-effort; nothing waits on it.
const registrationQueue = "notifications:registrations"

// Sender sends the post-registration welcome email. Nil = no-op.
type Sender interface {
	SendWelcome(ctx context.Context, toEmail, fullName string) error
}

// BrevoClient sends transactional email via the Brevo API.
type BrevoClient struct {
	APIKey   string
	MailFrom string
	Client   *http.Client
}

type brevoSendRequest struct {
	Sender      brevoParty   `json:"sender"`
	To          []brevoParty `json:"to"`
	Subject     string       `json:"subject"`
	HTMLContent string       `json:"htmlContent"`
}

type brevoParty struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

func (c *BrevoClient) from() string {
	if c.MailFrom != "" {
		return c.MailFrom
	}
	return "noreply@wasteline.app"
}

// SendWelcome sends the welcome email after account creation.
func (c *BrevoClient) SendWelcome(ctx context.Context, toEmail, fullName string) error {
	if c.APIKey == "" {
		return nil
	}
	if fullName == "" {
		fullName = "there"
	}
	body := brevoSendRequest{
		Sender:      brevoParty{Email: c.from(), Name: "Wasteline"},
		To:          []brevoParty{{Email: toEmail}},
		Subject:     "Welcome to Wasteline!",
		HTMLContent: welcomeHTML(fullName),
	}
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, brevoAPI, bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}
	req.Header.Set("api-key", c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.Client == nil {
		c.Client = &http.Client{Timeout: 15 * time.Second}
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("brevo send failed: status %d", resp.StatusCode)
	}
	return nil
}

func welcomeHTML(fullName string) string {
	return fmt.Sprintf(`
    <h1>Welcome, %s!</h1>
    <p>Your <strong>Wasteline</strong> account has been created. You can now report illegal
    dumping in your area, list reusable waste on the marketplace, and connect with local
    collectors.</p>
    <p>— The Wasteline Team</p>
`, fullName)
}

// Dispatcher publishes registration events. Dispatch is fire and forget: one
// goroutine per event, no retry, no ordering guarantee relative to the HTTP
// response, dropped on process shutdown.
type Dispatcher struct {
	Sender Sender
	Rdb    *redis.Client
}

// RegisteredEvent is the payload pushed to the registration queue.
type RegisteredEvent struct {
	UserID    uint      `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// NotifyRegistered dispatches the welcome email and queue event for a newly
// registered user. Failures are logged, never surfaced.
func (d *Dispatcher) NotifyRegistered(u *domain.User) {
	if d == nil {
		return
	}
	email, name := u.Email, u.FullName
	event := RegisteredEvent{UserID: u.ID, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if d.Rdb != nil {
			b, _ := json.Marshal(event)
			if err := d.Rdb.LPush(ctx, registrationQueue, b).Err(); err != nil {
				log.Warn().Err(err).Uint("user_id", event.UserID).Msg("registration event push failed")
			}
		}
		if d.Sender != nil {
			if err := d.Sender.SendWelcome(ctx, email, name); err != nil {
				log.Warn().Err(err).Str("email", email).Msg("welcome email failed")
			}
		}
	}()
}

// RegistrationQueueKey exposes the queue key for consumers and tests.
func RegistrationQueueKey() string {
	return registrationQueue
}
