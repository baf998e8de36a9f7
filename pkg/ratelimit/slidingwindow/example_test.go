package slidingwindow_test

import (
	"context"
	"fmt"
	"time"

	"github.com/llmops/loadgate/pkg/ratelimit/slidingwindow"
)

func ExampleLimiter() {
	store := slidingwindow.NewMemoryStore()
	limiter, err := slidingwindow.New(store, 3, time.Minute)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	for i := 0; i < 4; i++ {
		d := limiter.Check(ctx, "client-42")
		fmt.Printf("allowed=%v remaining=%d\n", d.Allowed, d.Remaining)
	}

	// Output:
	// allowed=true remaining=2
	// allowed=true remaining=1
	// allowed=true remaining=0
	// allowed=false remaining=0
}

func ExampleConfig_failOpen() {
	// A limiter protecting a request path should prefer availability over
	// strict quota enforcement when its store is down. The hook observes
	// each occurrence.
	limiter, err := slidingwindow.NewWithConfig(slidingwindow.Config{
		Store:  slidingwindow.NewMemoryStore(),
		Limit:  100,
		Window: time.Minute,
		OnFailOpen: func(ev slidingwindow.FailOpenEvent) {
			fmt.Printf("fail-open for %s: %v\n", ev.Key, ev.Err)
		},
	})
	if err != nil {
		panic(err)
	}

	d := limiter.Check(context.Background(), "client-42")
	fmt.Printf("allowed=%v\n", d.Allowed)

	// Output:
	// allowed=true
}
