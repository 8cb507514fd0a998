// Package notification delivers doctor alerts for newly reported symptom
// entries. Delivery is channel-agnostic behind sender interfaces, with
// template rendering, bounded retry, and an in-memory dispatch log.
package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Alert represents a single outbound doctor alert.
type Alert struct {
	ID         string            `json:"id"`
	Recipient  string            `json:"recipient"`
	Body       string            `json:"body"`
	TemplateID string            `json:"template_id,omitempty"`
	Status     string            `json:"status"`
	Attempts   int               `json:"attempts"`
	CreatedAt  time.Time         `json:"created_at"`
	SentAt     *time.Time        `json:"sent_at,omitempty"`
	Error      string            `json:"error,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// Sender delivers a rendered alert body to a recipient address
// (phone number, pager id, or similar).
type Sender interface {
	Send(ctx context.Context, to, body string) error
}

// LogSender is the default Sender: it writes the alert to the structured
// log. Swap in a gateway-backed Sender to deliver over SMS or push.
type LogSender struct {
	Logger zerolog.Logger
}

func (s *LogSender) Send(_ context.Context, to, body string) error {
	s.Logger.Info().Str("recipient", to).Str("body", body).Msg("doctor alert")
	return nil
}

// Template defines a reusable alert template with {{key}} placeholders.
type Template struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Body string `json:"body"`
}

// TemplateEngine manages alert templates and renders them with data.
type TemplateEngine struct {
	mu        sync.RWMutex
	templates map[string]*Template
}

// NewTemplateEngine creates a TemplateEngine with the built-in templates
// pre-registered.
func NewTemplateEngine() *TemplateEngine {
	e := &TemplateEngine{templates: make(map[string]*Template)}
	e.registerBuiltIn()
	return e
}

// TemplateSymptomEntry is the template used for new symptom entries.
const TemplateSymptomEntry = "symptom-entry"

func (e *TemplateEngine) registerBuiltIn() {
	builtIn := []Template{
		{
			ID:   TemplateSymptomEntry,
			Name: "New Symptom Entry",
			Body: "Patient {{patient_name}} ({{phone}}) reported: {{symptoms}}. Assessment: {{result}}.",
		},
		{
			ID:   "sync-complete",
			Name: "Entries Synced",
			Body: "{{count}} pending symptom entries have been synced.",
		},
	}
	for i := range builtIn {
		t := builtIn[i]
		e.templates[t.ID] = &t
	}
}

// RegisterTemplate adds or replaces a template in the engine.
func (e *TemplateEngine) RegisterTemplate(t Template) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.templates[t.ID] = &t
}

// Render looks up a template by ID and performs {{key}} replacement using
// the supplied data map. Keys present in the template but absent from data
// are left as-is.
func (e *TemplateEngine) Render(templateID string, data map[string]string) (string, error) {
	e.mu.RLock()
	t, ok := e.templates[templateID]
	e.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("template %q not found", templateID)
	}

	body := t.Body
	for k, v := range data {
		body = strings.ReplaceAll(body, "{{"+k+"}}", v)
	}
	return body, nil
}

// Dispatcher orchestrates rendering, sending, retry, and the dispatch log.
type Dispatcher struct {
	sender     Sender
	templates  *TemplateEngine
	maxRetries int
	mu         sync.RWMutex
	alerts     map[string]*Alert
	order      []string
}

// NewDispatcher constructs a Dispatcher. maxRetries counts additional
// attempts after the first failed send.
func NewDispatcher(sender Sender, tpl *TemplateEngine, maxRetries int) *Dispatcher {
	return &Dispatcher{
		sender:     sender,
		templates:  tpl,
		maxRetries: maxRetries,
		alerts:     make(map[string]*Alert),
	}
}

// Dispatch renders the template and sends the alert, retrying on failure.
// The alert is recorded in the dispatch log regardless of outcome.
func (d *Dispatcher) Dispatch(ctx context.Context, recipient, templateID string, data map[string]string) (*Alert, error) {
	body, err := d.templates.Render(templateID, data)
	if err != nil {
		return nil, err
	}

	a := &Alert{
		ID:         uuid.New().String(),
		Recipient:  recipient,
		Body:       body,
		TemplateID: templateID,
		Status:     "pending",
		CreatedAt:  time.Now().UTC(),
		Metadata:   data,
	}

	var sendErr error
	for attempt := 0; attempt <= d.maxRetries; attempt++ {
		a.Attempts = attempt + 1
		if sendErr = d.sender.Send(ctx, recipient, body); sendErr == nil {
			break
		}
		if ctx.Err() != nil {
			sendErr = ctx.Err()
			break
		}
	}

	if sendErr != nil {
		a.Status = "failed"
		a.Error = sendErr.Error()
	} else {
		a.Status = "sent"
		sentAt := time.Now().UTC()
		a.SentAt = &sentAt
	}

	d.mu.Lock()
	d.alerts[a.ID] = a
	d.order = append(d.order, a.ID)
	d.mu.Unlock()

	if sendErr != nil {
		return a, fmt.Errorf("dispatch alert to %s: %w", recipient, sendErr)
	}
	return a, nil
}

// List returns all recorded alerts in dispatch order.
func (d *Dispatcher) List() []*Alert {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]*Alert, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.alerts[id])
	}
	return out
}

// Get returns a recorded alert by id.
func (d *Dispatcher) Get(id string) (*Alert, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	a, ok := d.alerts[id]
	if !ok {
		return nil, fmt.Errorf("alert %q not found", id)
	}
	return a, nil
}

// MockSender is a test double for Sender.
type MockSender struct {
	mu         sync.Mutex
	calls      []string
	FailFirst  int // fail this many initial calls
	FailAlways bool
}

func (m *MockSender) Send(_ context.Context, to, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, to+": "+body)
	if m.FailAlways || len(m.calls) <= m.FailFirst {
		return errors.New("send failed")
	}
	return nil
}

// Calls returns a copy of recorded sends.
func (m *MockSender) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}
