package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/pubsub/v2"
	pubsubpb "cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
	"cloud.google.com/go/pubsub/v2/pstest"
	"github.com/google/go-cmp/cmp"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"bundlepacks/constants"
	"bundlepacks/logger"
)

const testTopic = "projects/test-project/topics/bundle-packs"

// newTestServer starts an in-memory Pub/Sub server with testTopic created
func newTestServer(t *testing.T) (*pstest.Server, option.ClientOption) {
	t.Helper()
	ctx := context.Background()

	srv := pstest.NewServer()
	t.Cleanup(func() { _ = srv.Close() })

	conn, err := grpc.NewClient(srv.Addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("Failed to dial test server: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	client, err := pubsub.NewClient(ctx, "test-project", option.WithGRPCConn(conn))
	if err != nil {
		t.Fatalf("Failed to create admin client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	if _, err := client.TopicAdminClient.CreateTopic(ctx, &pubsubpb.Topic{Name: testTopic}); err != nil {
		t.Fatalf("Failed to create topic: %v", err)
	}

	return srv, option.WithGRPCConn(conn)
}

func testPlan() *Plan {
	return &Plan{
		Names:  []string{"a.zip", "b.zip", "c.zip"},
		Groups: [][]string{{"a.zip", "b.zip"}, {"c.zip"}},
		Value:  "a.zip,b.zip|c.zip",
		Source: constants.SourceManifest,
	}
}

func TestPublishGroupsToPubSub(t *testing.T) {
	srv, connOpt := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	publisher, err := NewPubSubPublisher(ctx, testTopic, connOpt)
	if err != nil {
		t.Fatalf("Failed to create publisher: %v", err)
	}
	defer publisher.Close()

	published, err := PublishGroups(ctx, publisher, testPlan(), "batch-1", logger.NewNopLogger())
	if err != nil {
		t.Fatalf("PublishGroups returned error: %v", err)
	}
	if published != 2 {
		t.Fatalf("Expected 2 published groups, got %d", published)
	}

	messages := srv.Messages()
	if len(messages) != 2 {
		t.Fatalf("Expected 2 messages on the server, got %d", len(messages))
	}

	expected := []struct {
		data       string
		attributes map[string]string
	}{
		{
			data: "a.zip,b.zip",
			attributes: map[string]string{
				constants.AttrBatchID:    "batch-1",
				constants.AttrGroupIndex: "0",
				constants.AttrGroupCount: "2",
				constants.AttrSource:     constants.SourceManifest,
			},
		},
		{
			data: "c.zip",
			attributes: map[string]string{
				constants.AttrBatchID:    "batch-1",
				constants.AttrGroupIndex: "1",
				constants.AttrGroupCount: "2",
				constants.AttrSource:     constants.SourceManifest,
			},
		},
	}
	for i, want := range expected {
		if string(messages[i].Data) != want.data {
			t.Errorf("Message %d data = %q, want %q", i, messages[i].Data, want.data)
		}
		if diff := cmp.Diff(want.attributes, messages[i].Attributes); diff != "" {
			t.Errorf("Message %d attributes mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestNewPubSubPublisherRejectsBadTopic(t *testing.T) {
	for _, topic := range []string{"", "bundle-packs", "projects/p/subscriptions/s", "projects/p/topics/t/extra"} {
		if _, err := NewPubSubPublisher(context.Background(), topic); err == nil {
			t.Errorf("Expected error for topic %q", topic)
		}
	}
}

// failingPublisher fails after accepting a fixed number of messages
type failingPublisher struct {
	accept   int
	received []*Message
}

func (p *failingPublisher) Publish(ctx context.Context, message *Message) (string, error) {
	if len(p.received) >= p.accept {
		return "", errors.New("publish rejected")
	}
	p.received = append(p.received, message)
	return "id", nil
}

func (p *failingPublisher) Close() error { return nil }

func TestPublishGroupsStopsAtFirstFailure(t *testing.T) {
	publisher := &failingPublisher{accept: 1}

	published, err := PublishGroups(context.Background(), publisher, testPlan(), "batch-2", logger.NewNopLogger())
	if err == nil {
		t.Fatal("Expected an error")
	}
	if published != 1 || len(publisher.received) != 1 {
		t.Errorf("Expected exactly one published group, got %d (received %d)", published, len(publisher.received))
	}
}

func TestGroupMessagesFallbackSource(t *testing.T) {
	resolver := NewPackResolver(CommandConfig{DefaultPacks: constants.DefaultBundlePacks}, logger.NewNopLogger())
	messages := GroupMessages(resolver.Fallback(), "b")

	if len(messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(messages))
	}
	if got := string(messages[1].Data); got != "FullPatch_102.zip,FullPatch_103.zip" {
		t.Errorf("Unexpected data %q", got)
	}
	if got := messages[0].Attributes[constants.AttrSource]; got != constants.SourceFallback {
		t.Errorf("Expected fallback source, got %q", got)
	}
}

func TestPublishBatchTagsLogEntries(t *testing.T) {
	buf := &bytes.Buffer{}
	publisher := &failingPublisher{accept: 1}

	published, err := PublishBatch(context.Background(), publisher, testPlan(), BatchInfo{
		ID:      "batch-3",
		Topic:   testTopic,
		Timeout: 5 * time.Second,
	}, logger.NewLoggerWithLevel(buf, true))
	if err == nil {
		t.Fatal("Expected an error")
	}
	if published != 1 {
		t.Errorf("Expected 1 published group, got %d", published)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected debug, info and error entries, got:\n%s", buf.String())
	}
	for _, line := range lines {
		if !strings.Contains(line, `"batchID": "batch-3"`) || !strings.Contains(line, `"topic": "`+testTopic+`"`) {
			t.Errorf("Expected batch fields on every entry, got: %s", line)
		}
	}
	if !strings.Contains(lines[0], `"timeout": "5s"`) {
		t.Errorf("Expected the timeout on the debug entry, got: %s", lines[0])
	}
	if !strings.Contains(lines[2], "ERROR") || !strings.Contains(lines[2], "Publishing stopped") ||
		!strings.Contains(lines[2], `"published": 1`) || !strings.Contains(lines[2], "publish rejected") {
		t.Errorf("Unexpected error entry: %s", lines[2])
	}
}
