// Command tunerkit-demo exercises the interception layer against a small
// fake client: it opens a session, makes one proxied call and one
// wrapped-function call, and closes the session. Point TUNERKIT_BASE_URL at
// a backend (or leave it unset to watch deliveries fail harmlessly on the
// diagnostic logger) and run it.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	tunerkit "github.com/tunerkit/tunerkit-go"
	"github.com/tunerkit/tunerkit-go/providers/console"
)

// fakeAPI mimics a nested client namespace like an OpenAI SDK.
type fakeAPI struct {
	Chat *chatService
}

type chatService struct {
	Completions *completionService
}

type completionService struct{}

func (s *completionService) Create(ctx context.Context, params tunerkit.Params) (any, error) {
	return map[string]any{
		"model":   params["model"],
		"message": "hello from the fake backend",
	}, nil
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	api := &fakeAPI{Chat: &chatService{Completions: &completionService{}}}

	client, err := tunerkit.NewClientFromEnv(api,
		tunerkit.WithLogger(logger),
		tunerkit.WithSink(console.NewSink(os.Stdout)),
	)
	if err != nil {
		logger.Fatal("building client", zap.Error(err))
	}

	ctx := context.Background()

	headers := client.StartSession(tunerkit.Params{"topic": "demo"}, "demo-dataset")

	resp, err := client.Call(ctx, "chat.completions.create", tunerkit.Params{
		"model":    "gpt-4o",
		"messages": []map[string]string{{"role": "user", "content": "say hello"}},
	})
	if err != nil {
		logger.Fatal("proxied call failed", zap.Error(err))
	}
	fmt.Printf("proxied response: %v\n", resp)

	summarize := client.WrapFunc("summarize", func(ctx context.Context, params tunerkit.Params) (any, error) {
		return fmt.Sprintf("summary of %v", params["text"]), nil
	})
	summary, err := summarize(ctx, tunerkit.Params{"text": resp})
	if err != nil {
		logger.Fatal("wrapped call failed", zap.Error(err))
	}
	fmt.Printf("wrapped response: %v\n", summary)

	client.EndSession(tunerkit.Params{"summary": summary}, headers)

	flushCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Flush(flushCtx); err != nil {
		logger.Warn("flush timed out", zap.Error(err))
	}
}
