// Package integration contains integration tests for the outbox relay.
// These tests verify the relay works correctly against real PostgreSQL
// and RabbitMQ instances. They are gated on TEST_DB_CONNECTION_STRING
// and TEST_RABBITMQ_URL:
//
//	TEST_DB_CONNECTION_STRING='postgres://...' TEST_RABBITMQ_URL='amqp://...' go test ./test/relay/integration/...
package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/muhammadMilon/BloodBridge/internal/adapters/messaging"
	"github.com/muhammadMilon/BloodBridge/internal/adapters/outbox"
	"github.com/muhammadMilon/BloodBridge/internal/core/ports"
)

var (
	testDB       *sql.DB
	testDBURL    string
	testRabbitMQ *messaging.RabbitMQBroker
)

// TestMain sets up the integration test environment.
func TestMain(m *testing.M) {
	testDBURL = os.Getenv("TEST_DB_CONNECTION_STRING")
	if testDBURL == "" {
		fmt.Println("Skipping relay integration tests: TEST_DB_CONNECTION_STRING not set")
		os.Exit(0)
	}

	rabbitURL := os.Getenv("TEST_RABBITMQ_URL")
	if rabbitURL == "" {
		fmt.Println("Skipping relay integration tests: TEST_RABBITMQ_URL not set")
		os.Exit(0)
	}

	var err error
	testDB, err = sql.Open("postgres", testDBURL)
	if err != nil {
		fmt.Printf("Failed to connect to test database: %v\n", err)
		os.Exit(1)
	}
	defer testDB.Close()

	if err := testDB.Ping(); err != nil {
		fmt.Printf("Failed to ping test database: %v\n", err)
		os.Exit(1)
	}

	testRabbitMQ, err = messaging.NewRabbitMQBroker(rabbitURL, "test_donations")
	if err != nil {
		fmt.Printf("Failed to connect to RabbitMQ: %v\n", err)
		os.Exit(1)
	}
	defer testRabbitMQ.Close()

	if err := setupRelayTestSchema(testDB); err != nil {
		fmt.Printf("Failed to setup test schema: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	cleanupRelayTestData(testDB)

	os.Exit(code)
}

// setupRelayTestSchema creates the outbox table and NOTIFY trigger.
func setupRelayTestSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS outbox_events (
			id           UUID PRIMARY KEY,
			event_type   TEXT NOT NULL,
			payload      JSONB NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			processed_at TIMESTAMPTZ
		);

		CREATE OR REPLACE FUNCTION notify_outbox_insert()
		RETURNS TRIGGER AS $$
		BEGIN
			PERFORM pg_notify('outbox_channel', NEW.id::text);
			RETURN NEW;
		END;
		$$ LANGUAGE plpgsql;

		DROP TRIGGER IF EXISTS outbox_notify_trigger ON outbox_events;
		CREATE TRIGGER outbox_notify_trigger
		AFTER INSERT ON outbox_events
		FOR EACH ROW
		EXECUTE FUNCTION notify_outbox_insert();
	`
	_, err := db.Exec(schema)
	return err
}

func cleanupRelayTestData(db *sql.DB) {
	_, _ = db.Exec("DELETE FROM outbox_events")
}

func insertCompletionEvent(t *testing.T, requestID string) string {
	t.Helper()

	event := ports.DonationCompletedEvent{
		RequestID:   requestID,
		DonorEmail:  "donor@example.com",
		DonorName:   "Integration Donor",
		BloodGroup:  "O+",
		District:    "Dhaka",
		CompletedAt: time.Now(),
	}
	payload, _ := json.Marshal(event)

	eventID := uuid.New().String()
	_, err := testDB.Exec(`
		INSERT INTO outbox_events (id, event_type, payload, created_at)
		VALUES ($1, $2, $3, $4)
	`, eventID, "donation.completed", payload, time.Now())
	if err != nil {
		t.Fatalf("failed to insert outbox event: %v", err)
	}
	return eventID
}

// TestIntegration_RelayProcessesEvent tests end-to-end event processing
// through LISTEN/NOTIFY.
func TestIntegration_RelayProcessesEvent(t *testing.T) {
	if testDB == nil || testRabbitMQ == nil {
		t.Skip("Integration tests require database and RabbitMQ")
	}

	cleanupRelayTestData(testDB)

	relay := outbox.NewRelay(testDB, testDBURL, testRabbitMQ)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	go func() {
		_ = relay.Start(ctx)
	}()

	// Give relay time to start listening
	time.Sleep(100 * time.Millisecond)

	eventID := insertCompletionEvent(t, "req-integration-1")

	// Wait for relay to process
	time.Sleep(500 * time.Millisecond)

	var processedAt sql.NullTime
	err := testDB.QueryRow("SELECT processed_at FROM outbox_events WHERE id = $1", eventID).Scan(&processedAt)
	if err != nil {
		t.Fatalf("failed to query event: %v", err)
	}

	if !processedAt.Valid {
		t.Error("event should be marked as processed")
	}
}

// TestIntegration_RelayHealthEndpoints tests the relay health state.
func TestIntegration_RelayHealthEndpoints(t *testing.T) {
	if testDB == nil || testRabbitMQ == nil {
		t.Skip("Integration tests require database and RabbitMQ")
	}

	relay := outbox.NewRelay(testDB, testDBURL, testRabbitMQ)

	if !relay.IsHealthy() {
		t.Error("new relay should be healthy")
	}

	// IsReady depends on lastProcessed time and circuit breaker state;
	// full verification needs a running relay.
}

// TestIntegration_RelayProcessesUnprocessedOnStartup tests catch-up processing.
func TestIntegration_RelayProcessesUnprocessedOnStartup(t *testing.T) {
	if testDB == nil || testRabbitMQ == nil {
		t.Skip("Integration tests require database and RabbitMQ")
	}

	cleanupRelayTestData(testDB)

	// Insert events BEFORE starting the relay (simulate backlog)
	for i := 1; i <= 3; i++ {
		insertCompletionEvent(t, fmt.Sprintf("req-backlog-%d", i))
	}

	relay := outbox.NewRelay(testDB, testDBURL, testRabbitMQ)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	go func() {
		_ = relay.Start(ctx)
	}()

	// Wait for catch-up processing
	time.Sleep(2 * time.Second)

	var unprocessedCount int
	err := testDB.QueryRow("SELECT COUNT(*) FROM outbox_events WHERE processed_at IS NULL").Scan(&unprocessedCount)
	if err != nil {
		t.Fatalf("failed to count unprocessed events: %v", err)
	}

	if unprocessedCount != 0 {
		t.Errorf("expected 0 unprocessed events, got %d", unprocessedCount)
	}
}

// TestIntegration_RelayskipsUnknownEventTypes verifies foreign event types
// are marked processed without publishing.
func TestIntegration_RelaySkipsUnknownEventTypes(t *testing.T) {
	if testDB == nil || testRabbitMQ == nil {
		t.Skip("Integration tests require database and RabbitMQ")
	}

	cleanupRelayTestData(testDB)

	eventID := uuid.New().String()
	_, err := testDB.Exec(`
		INSERT INTO outbox_events (id, event_type, payload, created_at)
		VALUES ($1, $2, $3, $4)
	`, eventID, "unrelated.event", []byte(`{}`), time.Now())
	if err != nil {
		t.Fatalf("failed to insert event: %v", err)
	}

	relay := outbox.NewRelay(testDB, testDBURL, testRabbitMQ)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	go func() {
		_ = relay.Start(ctx)
	}()

	time.Sleep(1 * time.Second)

	// Unknown events are marked processed to avoid infinite retries.
	var processedAt sql.NullTime
	err = testDB.QueryRow("SELECT processed_at FROM outbox_events WHERE id = $1", eventID).Scan(&processedAt)
	if err != nil {
		t.Fatalf("failed to query event: %v", err)
	}

	if !processedAt.Valid {
		t.Error("unknown event type should be marked as processed")
	}
}
