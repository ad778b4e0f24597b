//go:build e2e

package e2e

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/cucumber/godog/colors"
)

var opts = godog.Options{
	Output: colors.Colored(os.Stdout),
	Format: "pretty",
	Paths:  []string{"features"},
	Tags:   os.Getenv("E2E_TAGS"),
}

func init() {
	godog.BindCommandLineFlags("godog.", &opts)
}

// TestFeatures runs the feature files against a server at BASE_URL that was
// started with the same API_KEY as this process.
func TestFeatures(t *testing.T) {
	flag.Parse()
	opts.TestingT = t

	if err := waitForServer(NewTestContext(), 10*time.Second); err != nil {
		t.Skipf("no server to test against: %v", err)
	}

	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options:             &opts,
	}
	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

// waitForServer polls the liveness probe until it answers 200 or the wait
// runs out.
func waitForServer(tc *TestContext, wait time.Duration) error {
	deadline := time.Now().Add(wait)
	for {
		err := tc.Do(http.MethodGet, "/health/live", nil)
		if err == nil && tc.GetLastResponseStatus() == http.StatusOK {
			return nil
		}
		if time.Now().After(deadline) {
			if err == nil {
				err = fmt.Errorf("liveness returned %d", tc.GetLastResponseStatus())
			}
			return err
		}
		time.Sleep(250 * time.Millisecond)
	}
}

func InitializeScenario(sc *godog.ScenarioContext) {
	tc := NewTestContext()

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		*tc = *NewTestContext()
		return ctx, nil
	})

	// Notes created by a scenario are removed so reruns start from the same
	// data. A note the scenario already deleted answers 404, which is fine.
	sc.After(func(ctx context.Context, s *godog.Scenario, err error) (context.Context, error) {
		if err != nil {
			fmt.Printf("Scenario failed: %s\nLast Response: %s\n", s.Name, string(tc.LastResponseBody))
		}
		tc.UseAPIKey()
		for _, id := range tc.SavedNoteIDs() {
			_ = tc.Do(http.MethodDelete, "/notes/"+id, nil)
		}
		return ctx, nil
	})

	RegisterSteps(sc, tc)
}
