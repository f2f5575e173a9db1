package queue_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/kamaubrian/customerhub-backend/internal/model"
	"github.com/kamaubrian/customerhub-backend/internal/queue"
)

func TestPublishWithoutSubscriberFails(t *testing.T) {
	q := queue.NewInMemoryQueue()

	if err := q.Publish("welcome_sends", 1); err == nil {
		t.Errorf("expected error publishing without subscribers, got nil")
	}
}

func TestPublishDeliversToSubscriber(t *testing.T) {
	q := queue.NewInMemoryQueue()

	received := make(chan any, 1)
	q.Subscribe("welcome_sends", func(payload any) error {
		received <- payload
		return nil
	})

	if err := q.Publish("welcome_sends", 42); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	select {
	case payload := <-received:
		if payload != 42 {
			t.Errorf("expected payload 42, got %v", payload)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for delivery")
	}
}

func TestPublishRetriesFailedHandler(t *testing.T) {
	q := queue.NewInMemoryQueue()

	var mu sync.Mutex
	attempts := 0
	done := make(chan bool, 1)

	q.Subscribe("welcome_sends", func(payload any) error {
		mu.Lock()
		attempts++
		n := attempts
		mu.Unlock()

		if n < 2 {
			return fmt.Errorf("transient failure")
		}
		done <- true
		return nil
	})

	if err := q.Publish("welcome_sends", 7); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for retry")
	}

	mu.Lock()
	defer mu.Unlock()
	if attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts)
	}
}

// --- Welcome subscriber ---

type MockNotificationRepo struct {
	mu            sync.Mutex
	notifications map[int]*model.Notification
}

func (m *MockNotificationRepo) Create(n *model.Notification) error { return nil }

func (m *MockNotificationRepo) GetByID(id int) (*model.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n, ok := m.notifications[id]; ok {
		copied := *n
		return &copied, nil
	}
	return nil, nil
}

func (m *MockNotificationRepo) GetCustomerNotification(customerID int, kind string) (*model.Notification, error) {
	return nil, nil
}

func (m *MockNotificationRepo) Update(n *model.Notification) error { return nil }

func (m *MockNotificationRepo) UpdateStatus(id int, status, lastError string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n, ok := m.notifications[id]; ok {
		n.Status = status
		n.LastError = lastError
	}
	return nil
}

func (m *MockNotificationRepo) MarkFailed(id int, lastError string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n, ok := m.notifications[id]; ok {
		n.Status = "failed"
		n.LastError = lastError
		n.RetryCount++
	}
	return nil
}

func (m *MockNotificationRepo) UpdateContent(id int, content string) error { return nil }

func (m *MockNotificationRepo) GetCustomerStats(customerID int) (map[string]int, error) {
	return map[string]int{}, nil
}

// publishWhenSubscribed retries until the subscriber goroutine has registered
func publishWhenSubscribed(t *testing.T, q queue.Queue, payload any) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		if err := q.Publish("welcome_sends", payload); err == nil {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for subscriber registration")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func waitForStatus(t *testing.T, repo *MockNotificationRepo, id int, status string) *model.Notification {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		n, _ := repo.GetByID(id)
		if n != nil && n.Status == status {
			return n
		}
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for notification %d to become %s", id, status)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestWelcomeSubscriberMarksSentWithoutRetryBump(t *testing.T) {
	repo := &MockNotificationRepo{
		notifications: map[int]*model.Notification{
			1: {ID: 1, CustomerID: 1, Kind: "welcome", Status: "pending", RenderedContent: "Hi Alice"},
		},
	}

	q := queue.NewInMemoryQueue()
	queue.StartWelcomeSendSubscriber(q, repo, func(payload any) error {
		return nil // delivery always succeeds
	})

	publishWhenSubscribed(t, q, 1)

	n := waitForStatus(t, repo, 1, "sent")
	if n.RetryCount != 0 {
		t.Errorf("successful send must not bump retry count, got %d", n.RetryCount)
	}
	if n.LastError != "" {
		t.Errorf("expected empty last_error after send, got %q", n.LastError)
	}
}

func TestWelcomeSubscriberRecordsFailure(t *testing.T) {
	repo := &MockNotificationRepo{
		notifications: map[int]*model.Notification{
			1: {ID: 1, CustomerID: 1, Kind: "welcome", Status: "pending", RenderedContent: "Hi Alice"},
		},
	}

	q := queue.NewInMemoryQueue()
	queue.StartWelcomeSendSubscriber(q, repo, func(payload any) error {
		return fmt.Errorf("smtp unreachable")
	})

	publishWhenSubscribed(t, q, 1)

	n := waitForStatus(t, repo, 1, "failed")
	if n.RetryCount < 1 {
		t.Errorf("failed send must bump retry count, got %d", n.RetryCount)
	}
	if n.LastError != "smtp unreachable" {
		t.Errorf("expected last_error to be recorded, got %q", n.LastError)
	}
}
