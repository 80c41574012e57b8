package bot

import (
	"context"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type fakeSource struct {
	ch      chan tgbotapi.Update
	stopped chan struct{}
}

func (f *fakeSource) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel { return f.ch }
func (f *fakeSource) StopReceivingUpdates()                                       { close(f.stopped) }

func TestPoll_HandlesUpdatesUntilCanceled(t *testing.T) {
	h := newHarness(t)
	src := &fakeSource{ch: make(chan tgbotapi.Update, 1), stopped: make(chan struct{})}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.bot.Poll(ctx, src)
		close(done)
	}()

	src.ch <- command(customerID, "/menu")

	deadline := time.After(2 * time.Second)
	for {
		h.api.mu.Lock()
		n := len(h.api.messages)
		h.api.mu.Unlock()
		if n > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("update was not handled")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Poll did not return after cancel")
	}
	select {
	case <-src.stopped:
	default:
		t.Fatalf("StopReceivingUpdates not called")
	}
}

func TestRegisterCommandsAndWebhook(t *testing.T) {
	api := &fakeAPI{}

	if err := RegisterCommands(api); err != nil {
		t.Fatalf("RegisterCommands: %v", err)
	}
	cmds, ok := api.requests[0].(tgbotapi.SetMyCommandsConfig)
	if !ok || len(cmds.Commands) != len(Commands) {
		t.Fatalf("unexpected request: %#v", api.requests[0])
	}

	if err := SetWebhook(api, "https://cafe.example.com/", "1:SECRET"); err != nil {
		t.Fatalf("SetWebhook: %v", err)
	}
	wh, ok := api.requests[1].(tgbotapi.WebhookConfig)
	if !ok || wh.URL.String() != "https://cafe.example.com/botSECRET" {
		t.Fatalf("unexpected webhook: %#v", api.requests[1])
	}

	if err := DeleteWebhook(api); err != nil {
		t.Fatalf("DeleteWebhook: %v", err)
	}
	if _, ok := api.requests[2].(tgbotapi.DeleteWebhookConfig); !ok {
		t.Fatalf("unexpected request: %#v", api.requests[2])
	}
}
